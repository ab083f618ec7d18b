package vision

import (
	"errors"
	"image/color"
	"strconv"
	"strings"

	"resistor-vision/internal/domain/port"
)

// ErrDetectorDisabled возвращается функциями OpenCV в сборке без тега gocv.
var ErrDetectorDisabled = errors.New("gocv build tag is not enabled")

// Inspector проверка качества снимка и отрисовка найденных полос на OpenCV.
type Inspector struct {
	MinImageSide          int
	MinSharpnessEdgeRatio float64
	MaxOverexposedRatio   float64
	MaxUnderexposedRatio  float64
	MaxGlareRatio         float64
	LineThickness         int
}

// NewInspector создаёт инспектор с порогами по умолчанию.
func NewInspector() *Inspector {
	return &Inspector{
		MinImageSide:          400,
		MinSharpnessEdgeRatio: 0.008,
		MaxOverexposedRatio:   0.35,
		MaxUnderexposedRatio:  0.45,
		MaxGlareRatio:         0.08,
		LineThickness:         2,
	}
}

// hexColor разбирает "#RRGGBB"; некорректная строка даёт зелёный.
func hexColor(hex string) color.RGBA {
	green := color.RGBA{G: 255, A: 255}
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return green
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return green
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

var (
	_ port.QualityGate     = (*Inspector)(nil)
	_ port.BandHighlighter = (*Inspector)(nil)
)
