package entity

import (
	"errors"
	"fmt"
)

// ErrInvalidBandMode возвращается для числа полос вне 3–6.
var ErrInvalidBandMode = errors.New("band mode must be 3, 4, 5 or 6")

// BandMode число полос на резисторе
type BandMode int

const (
	ThreeBands BandMode = 3
	FourBands  BandMode = 4
	FiveBands  BandMode = 5
	SixBands   BandMode = 6
)

// MinBands минимальное число полос, из которого можно получить номинал.
const MinBands = int(ThreeBands)

// MaxBands максимальное число полос.
const MaxBands = int(SixBands)

// DefaultBandMode режим по умолчанию для нового пользователя.
const DefaultBandMode = FourBands

// ParseBandMode проверяет число полос.
func ParseBandMode(n int) (BandMode, error) {
	mode := BandMode(n)
	if !mode.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidBandMode, n)
	}
	return mode, nil
}

// ModeForCount подбирает режим по числу найденных полос (3–6).
func ModeForCount(n int) BandMode {
	if n < MinBands {
		n = MinBands
	}
	if n > MaxBands {
		n = MaxBands
	}
	return BandMode(n)
}

// Valid сообщает, поддерживается ли режим.
func (m BandMode) Valid() bool {
	return m >= ThreeBands && m <= SixBands
}

// ResistanceReading номинал, вычисленный из последовательности цветов
type ResistanceReading struct {
	Ohms      float64
	Tolerance *float64 // допуск, %; nil если полоса не задаёт допуск
	TempCoeff *float64 // ppm/°C; только для 6 полос
}

// HasTolerance сообщает, задан ли допуск.
func (r ResistanceReading) HasTolerance() bool {
	return r.Tolerance != nil
}

// HasTempCoeff сообщает, задан ли температурный коэффициент.
func (r ResistanceReading) HasTempCoeff() bool {
	return r.TempCoeff != nil
}

// DefaultColors цвета по умолчанию для ручного ввода; режим берёт первые N.
func DefaultColors(mode BandMode) []Color {
	defaults := []Color{Brown, Black, Red, Gold, Brown, Brown}
	n := int(ModeForCount(int(mode)))
	out := make([]Color, n)
	copy(out, defaults[:n])
	return out
}
