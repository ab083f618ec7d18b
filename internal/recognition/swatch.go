package recognition

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"resistor-vision/internal/domain/entity"
)

// ErrUnrecognizedSwatch возвращается, если образец не попал ни в один эталон.
var ErrUnrecognizedSwatch = errors.New("swatch color is not recognized")

// SwatchError указывает номер нераспознанного образца
type SwatchError struct {
	Index int
	RGB   entity.RGB
}

func (e *SwatchError) Error() string {
	return fmt.Sprintf("%v: swatch %d rgb(%.0f,%.0f,%.0f)", ErrUnrecognizedSwatch, e.Index+1, e.RGB.R, e.RGB.G, e.RGB.B)
}

func (e *SwatchError) Unwrap() error {
	return ErrUnrecognizedSwatch
}

// AverageColor усредняет пиксели прямоугольника и возвращает RGB в диапазоне 0–255 с округлением.
// Пустой прямоугольник даёт чёрный.
func AverageColor(buf *entity.PixelBuffer, rect PixelRect) entity.RGB {
	if rect.Empty() {
		return entity.RGB{}
	}
	n := rect.Dx() * rect.Dy()
	rs := make([]float64, 0, n)
	gs := make([]float64, 0, n)
	bs := make([]float64, 0, n)
	for y := rect.Y1; y < rect.Y2; y++ {
		for x := rect.X1; x < rect.X2; x++ {
			r, g, b := buf.At(x, y)
			rs = append(rs, float64(r))
			gs = append(gs, float64(g))
			bs = append(bs, float64(b))
		}
	}
	count := float64(n)
	return entity.RGB{
		R: math.Round(floats.Sum(rs) / count * 255),
		G: math.Round(floats.Sum(gs) / count * 255),
		B: math.Round(floats.Sum(bs) / count * 255),
	}
}

// SegmentBands делит корпус резистора на count образцов полос:
// ширина сегмента bounds/(count+2), образец занимает половину сегмента, первый сегмент занят полем.
func SegmentBands(bounds PixelRect, count int) []PixelRect {
	if count <= 0 || bounds.Empty() {
		return nil
	}
	segment := float64(bounds.Dx()) / float64(count+2)
	rects := make([]PixelRect, 0, count)
	for i := 0; i < count; i++ {
		x := float64(bounds.X1) + segment*float64(i+1)
		rects = append(rects, PixelRect{
			X1: int(math.Round(x)),
			Y1: bounds.Y1,
			X2: int(math.Round(x + segment*0.5)),
			Y2: bounds.Y2,
		})
	}
	return rects
}

// CenterStrip область, где ожидается резистор при съёмке по направляющей:
// 60% ширины и 20% высоты по центру.
func CenterStrip(side int) PixelRect {
	s := float64(side)
	return PixelRect{
		X1: int(math.Round(s * 0.2)),
		Y1: int(math.Round(s * 0.4)),
		X2: int(math.Round(s * 0.8)),
		Y2: int(math.Round(s * 0.6)),
	}
}

// ClassifySwatches распознаёт цвета образцов по порядку.
// Первый нераспознанный образец прерывает разбор с *SwatchError.
func ClassifySwatches(samples []entity.RGB) ([]entity.Color, error) {
	colors := make([]entity.Color, 0, len(samples))
	for i, rgb := range samples {
		c, ok := ClassifyRGB(rgb)
		if !ok {
			return nil, &SwatchError{Index: i, RGB: rgb}
		}
		colors = append(colors, c)
	}
	return colors, nil
}

// SampleBands усредняет цвета count сегментов внутри bounds.
func SampleBands(buf *entity.PixelBuffer, bounds PixelRect, count int) []entity.RGB {
	segments := SegmentBands(bounds, count)
	samples := make([]entity.RGB, 0, len(segments))
	for _, seg := range segments {
		samples = append(samples, AverageColor(buf, seg))
	}
	return samples
}
