package entity

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownColor возвращается, если имя цвета не входит в кодировку резисторов.
var ErrUnknownColor = errors.New("unknown resistor color")

// Color цвет полосы резистора
type Color uint8

const (
	Black Color = iota
	Brown
	Red
	Orange
	Yellow
	Green
	Blue
	Violet
	Gray
	White
	Gold
	Silver

	colorCount
)

// RGB образец цвета в диапазоне 0–255
type RGB struct {
	R, G, B float64
}

// ColorCode строка таблицы кодировки цвета.
// Поля Has* отмечают, какие значения цвет вообще кодирует.
type ColorCode struct {
	Name string

	Digit    int
	HasDigit bool

	Multiplier    float64
	HasMultiplier bool

	Tolerance    float64 // допуск, %
	HasTolerance bool

	TempCoeff    float64 // ppm/°C
	HasTempCoeff bool

	Centroid RGB     // эталон для классификации по среднему цвету
	Radius   float64 // радиус принятия вокруг эталона
	Hex      string  // цвет для отрисовки
}

// colorCodes единственный источник истины для кодировки цветов.
// Порядок совпадает с порядком констант и задаёт порядок перебора при классификации.
var colorCodes = [colorCount]ColorCode{
	Black: {
		Name: "black",
		Digit: 0, HasDigit: true,
		Multiplier: 1, HasMultiplier: true,
		Centroid: RGB{0, 0, 0}, Radius: 50, Hex: "#000000",
	},
	Brown: {
		Name: "brown",
		Digit: 1, HasDigit: true,
		Multiplier: 10, HasMultiplier: true,
		Tolerance: 1, HasTolerance: true,
		TempCoeff: 100, HasTempCoeff: true,
		Centroid: RGB{139, 69, 19}, Radius: 60, Hex: "#8B4513",
	},
	Red: {
		Name: "red",
		Digit: 2, HasDigit: true,
		Multiplier: 100, HasMultiplier: true,
		Tolerance: 2, HasTolerance: true,
		TempCoeff: 50, HasTempCoeff: true,
		Centroid: RGB{255, 0, 0}, Radius: 70, Hex: "#FF0000",
	},
	Orange: {
		Name: "orange",
		Digit: 3, HasDigit: true,
		Multiplier: 1e3, HasMultiplier: true,
		TempCoeff: 15, HasTempCoeff: true,
		Centroid: RGB{255, 165, 0}, Radius: 70, Hex: "#FFA500",
	},
	Yellow: {
		Name: "yellow",
		Digit: 4, HasDigit: true,
		Multiplier: 1e4, HasMultiplier: true,
		TempCoeff: 25, HasTempCoeff: true,
		Centroid: RGB{255, 255, 0}, Radius: 80, Hex: "#FFFF00",
	},
	Green: {
		Name: "green",
		Digit: 5, HasDigit: true,
		Multiplier: 1e5, HasMultiplier: true,
		Tolerance: 0.5, HasTolerance: true,
		TempCoeff: 20, HasTempCoeff: true,
		Centroid: RGB{0, 158, 0}, Radius: 70, Hex: "#009E00",
	},
	Blue: {
		Name: "blue",
		Digit: 6, HasDigit: true,
		Multiplier: 1e6, HasMultiplier: true,
		Tolerance: 0.25, HasTolerance: true,
		TempCoeff: 10, HasTempCoeff: true,
		Centroid: RGB{0, 0, 255}, Radius: 70, Hex: "#0000FF",
	},
	Violet: {
		Name: "violet",
		Digit: 7, HasDigit: true,
		Multiplier: 1e7, HasMultiplier: true,
		Tolerance: 0.1, HasTolerance: true,
		TempCoeff: 5, HasTempCoeff: true,
		Centroid: RGB{139, 0, 255}, Radius: 70, Hex: "#8B00FF",
	},
	Gray: {
		Name: "gray",
		Digit: 8, HasDigit: true,
		Multiplier: 1e8, HasMultiplier: true,
		Tolerance: 0.05, HasTolerance: true,
		TempCoeff: 1, HasTempCoeff: true,
		Centroid: RGB{128, 128, 128}, Radius: 60, Hex: "#808080",
	},
	White: {
		Name: "white",
		Digit: 9, HasDigit: true,
		Multiplier: 1e9, HasMultiplier: true,
		Centroid: RGB{255, 255, 255}, Radius: 50, Hex: "#FFFFFF",
	},
	Gold: {
		Name: "gold",
		Multiplier: 0.1, HasMultiplier: true,
		Tolerance: 5, HasTolerance: true,
		Centroid: RGB{181, 151, 0}, Radius: 70, Hex: "#B59700",
	},
	Silver: {
		Name: "silver",
		Multiplier: 0.01, HasMultiplier: true,
		Tolerance: 10, HasTolerance: true,
		Centroid: RGB{192, 192, 192}, Radius: 60, Hex: "#C0C0C0",
	},
}

// AllColors возвращает все цвета в порядке таблицы.
func AllColors() []Color {
	colors := make([]Color, 0, colorCount)
	for c := Color(0); c < colorCount; c++ {
		colors = append(colors, c)
	}
	return colors
}

// Valid сообщает, входит ли цвет в таблицу.
func (c Color) Valid() bool {
	return c < colorCount
}

// Code возвращает строку таблицы для цвета. Для неизвестного цвета возвращает нулевое значение.
func (c Color) Code() ColorCode {
	if !c.Valid() {
		return ColorCode{}
	}
	return colorCodes[c]
}

func (c Color) String() string {
	if !c.Valid() {
		return "unknown"
	}
	return colorCodes[c].Name
}

// Digit возвращает цифру полосы.
func (c Color) Digit() (int, bool) {
	code := c.Code()
	return code.Digit, code.HasDigit
}

// Multiplier возвращает множитель полосы.
func (c Color) Multiplier() (float64, bool) {
	code := c.Code()
	return code.Multiplier, code.HasMultiplier
}

// Tolerance возвращает допуск в процентах.
func (c Color) Tolerance() (float64, bool) {
	code := c.Code()
	return code.Tolerance, code.HasTolerance
}

// TempCoeff возвращает температурный коэффициент в ppm/°C.
func (c Color) TempCoeff() (float64, bool) {
	code := c.Code()
	return code.TempCoeff, code.HasTempCoeff
}

// ParseColor разбирает английское имя цвета (без учёта регистра, "grey" допустим).
func ParseColor(name string) (Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "grey" {
		name = "gray"
	}
	for c := Color(0); c < colorCount; c++ {
		if colorCodes[c].Name == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColor, name)
}

// ParseColors разбирает последовательность имён цветов.
func ParseColors(names []string) ([]Color, error) {
	colors := make([]Color, 0, len(names))
	for _, name := range names {
		c, err := ParseColor(name)
		if err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	return colors, nil
}
