package resistance

import (
	"math"
	"strconv"
	"strings"

	"resistor-vision/internal/domain/entity"
)

type unit struct {
	threshold float64
	suffix    string
}

// Единицы от большей к меньшей.
var units = []unit{
	{1e9, "GΩ"},
	{1e6, "MΩ"},
	{1e3, "kΩ"},
	{1, "Ω"},
}

// FormatOhms форматирует сопротивление в наибольшей единице, не превышающей значение:
// два знака после запятой, без хвостовых нулей.
func FormatOhms(ohms float64) string {
	// Убираем шум плавающей точки вроде 10.200000000001.
	value := roundTo(ohms, 10)

	suffix := "Ω"
	for _, u := range units {
		if value >= u.threshold {
			value /= u.threshold
			suffix = u.suffix
			break
		}
	}

	value = roundTo(value, 2)
	return trimNumber(value, 2) + suffix
}

// FormatPercent форматирует допуск: "±5%", "±0.25%".
func FormatPercent(tolerance float64) string {
	return "±" + strconv.FormatFloat(tolerance, 'f', -1, 64) + "%"
}

// FormatTempCoeff форматирует температурный коэффициент: "100ppm/°C".
func FormatTempCoeff(ppm float64) string {
	return strconv.FormatFloat(ppm, 'f', -1, 64) + "ppm/°C"
}

// Format форматирует полный результат: "1kΩ ±5% 100ppm/°C".
func Format(r entity.ResistanceReading) string {
	parts := []string{FormatOhms(r.Ohms)}
	if r.Tolerance != nil {
		parts = append(parts, FormatPercent(*r.Tolerance))
	}
	if r.TempCoeff != nil {
		parts = append(parts, FormatTempCoeff(*r.TempCoeff))
	}
	return strings.Join(parts, " ")
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

func trimNumber(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}
