// Package resistance переводит последовательность цветных полос в номинал резистора.
package resistance

import (
	"errors"
	"fmt"

	"resistor-vision/internal/domain/entity"
)

// ErrBandCountMismatch возвращается, если цветов меньше, чем требует режим.
var ErrBandCountMismatch = errors.New("not enough colors for band mode")

// Code набор полос одного конкретного режима.
// Каждый режим хранит ровно те полосы, которые он использует.
type Code interface {
	Mode() entity.BandMode
	Colors() []entity.Color
	Reading() entity.ResistanceReading

	code()
}

// ThreeBand две значащие цифры и множитель, без допуска
type ThreeBand struct {
	First, Second, Multiplier entity.Color
}

// FourBand две значащие цифры, множитель и допуск
type FourBand struct {
	First, Second, Multiplier, Tolerance entity.Color
}

// FiveBand три значащие цифры, множитель и допуск
type FiveBand struct {
	First, Second, Third, Multiplier, Tolerance entity.Color
}

// SixBand как FiveBand плюс температурный коэффициент
type SixBand struct {
	First, Second, Third, Multiplier, Tolerance, TempCoeff entity.Color
}

// NewCode собирает набор полос режима mode из первых mode цветов.
func NewCode(mode entity.BandMode, colors []entity.Color) (Code, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %d", entity.ErrInvalidBandMode, mode)
	}
	if len(colors) < int(mode) {
		return nil, fmt.Errorf("%w: mode %d, got %d colors", ErrBandCountMismatch, mode, len(colors))
	}

	switch mode {
	case entity.ThreeBands:
		return ThreeBand{colors[0], colors[1], colors[2]}, nil
	case entity.FourBands:
		return FourBand{colors[0], colors[1], colors[2], colors[3]}, nil
	case entity.FiveBands:
		return FiveBand{colors[0], colors[1], colors[2], colors[3], colors[4]}, nil
	default:
		return SixBand{colors[0], colors[1], colors[2], colors[3], colors[4], colors[5]}, nil
	}
}

// Decode вычисляет номинал по цветам и режиму.
func Decode(mode entity.BandMode, colors []entity.Color) (entity.ResistanceReading, error) {
	code, err := NewCode(mode, colors)
	if err != nil {
		return entity.ResistanceReading{}, err
	}
	return code.Reading(), nil
}

func (ThreeBand) Mode() entity.BandMode { return entity.ThreeBands }
func (FourBand) Mode() entity.BandMode  { return entity.FourBands }
func (FiveBand) Mode() entity.BandMode  { return entity.FiveBands }
func (SixBand) Mode() entity.BandMode   { return entity.SixBands }

func (b ThreeBand) Colors() []entity.Color {
	return []entity.Color{b.First, b.Second, b.Multiplier}
}

func (b FourBand) Colors() []entity.Color {
	return []entity.Color{b.First, b.Second, b.Multiplier, b.Tolerance}
}

func (b FiveBand) Colors() []entity.Color {
	return []entity.Color{b.First, b.Second, b.Third, b.Multiplier, b.Tolerance}
}

func (b SixBand) Colors() []entity.Color {
	return []entity.Color{b.First, b.Second, b.Third, b.Multiplier, b.Tolerance, b.TempCoeff}
}

func (b ThreeBand) Reading() entity.ResistanceReading {
	return entity.ResistanceReading{
		Ohms: twoDigits(b.First, b.Second) * multiplier(b.Multiplier),
	}
}

func (b FourBand) Reading() entity.ResistanceReading {
	return entity.ResistanceReading{
		Ohms:      twoDigits(b.First, b.Second) * multiplier(b.Multiplier),
		Tolerance: tolerance(b.Tolerance),
	}
}

func (b FiveBand) Reading() entity.ResistanceReading {
	return entity.ResistanceReading{
		Ohms:      threeDigits(b.First, b.Second, b.Third) * multiplier(b.Multiplier),
		Tolerance: tolerance(b.Tolerance),
	}
}

func (b SixBand) Reading() entity.ResistanceReading {
	return entity.ResistanceReading{
		Ohms:      threeDigits(b.First, b.Second, b.Third) * multiplier(b.Multiplier),
		Tolerance: tolerance(b.Tolerance),
		TempCoeff: tempCoeff(b.TempCoeff),
	}
}

func (ThreeBand) code() {}
func (FourBand) code()  {}
func (FiveBand) code()  {}
func (SixBand) code()   {}

// digit цифра полосы; цвет без цифры даёт 0.
func digit(c entity.Color) float64 {
	d, ok := c.Digit()
	if !ok {
		return 0
	}
	return float64(d)
}

// multiplier множитель полосы; цвет без множителя даёт 1.
func multiplier(c entity.Color) float64 {
	m, ok := c.Multiplier()
	if !ok {
		return 1
	}
	return m
}

func tolerance(c entity.Color) *float64 {
	t, ok := c.Tolerance()
	if !ok {
		return nil
	}
	return &t
}

func tempCoeff(c entity.Color) *float64 {
	tc, ok := c.TempCoeff()
	if !ok {
		return nil
	}
	return &tc
}

func twoDigits(a, b entity.Color) float64 {
	return digit(a)*10 + digit(b)
}

func threeDigits(a, b, c entity.Color) float64 {
	return digit(a)*100 + digit(b)*10 + digit(c)
}
