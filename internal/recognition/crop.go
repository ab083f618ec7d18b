package recognition

import (
	"math"

	"resistor-vision/internal/domain/entity"
)

// PixelRect прямоугольник в пикселях: [X1,X2) × [Y1,Y2)
type PixelRect struct {
	X1, Y1, X2, Y2 int
}

// Dx возвращает ширину прямоугольника.
func (r PixelRect) Dx() int { return r.X2 - r.X1 }

// Dy возвращает высоту прямоугольника.
func (r PixelRect) Dy() int { return r.Y2 - r.Y1 }

// Empty сообщает, что прямоугольник вырожден.
func (r PixelRect) Empty() bool { return r.Dx() <= 0 || r.Dy() <= 0 }

// BoxToPixels переводит нормированную рамку в пиксели буфера стороны side.
// Центр и размер округляются, левый верхний угол смещается на половину размера,
// границы обрезаются до [0, side].
func BoxToPixels(box entity.NormalizedBox, side int) PixelRect {
	s := float64(side)
	centerX := math.Round(box.CenterX * s)
	centerY := math.Round(box.CenterY * s)
	width := math.Round(box.Width * s)
	height := math.Round(box.Height * s)

	x1 := clamp(centerX-math.Floor(width/2), 0, s)
	y1 := clamp(centerY-math.Floor(height/2), 0, s)
	x2 := clamp(x1+width, 0, s)
	y2 := clamp(y1+height, 0, s)

	return PixelRect{X1: int(x1), Y1: int(y1), X2: int(x2), Y2: int(y2)}
}

// CropResize вырезает область box из src и растягивает её ближайшим соседом
// до той же стороны без сохранения пропорций.
// Вырожденная область даёт буфер из нулей.
func CropResize(src *entity.PixelBuffer, box entity.NormalizedBox) *entity.PixelBuffer {
	side := src.Side()
	rect := BoxToPixels(box, side)
	cropW, cropH := rect.Dx(), rect.Dy()
	empty := rect.Empty()

	out, _ := entity.NewPixelBufferFunc(side, func(x, y int) (r, g, b float32) {
		if empty {
			return 0, 0, 0
		}
		srcX := rect.X1 + int(math.Floor(float64(x)/float64(side)*float64(cropW)))
		srcY := rect.Y1 + int(math.Floor(float64(y)/float64(side)*float64(cropH)))
		return src.At(srcX, srcY)
	})
	return out
}

// ProjectBox переводит рамку из пространства кропа области region обратно во входной буфер.
func ProjectBox(region entity.NormalizedBox, side int, box entity.NormalizedBox) entity.NormalizedBox {
	rect := BoxToPixels(region, side)
	s := float64(side)
	x1, y1 := float64(rect.X1)/s, float64(rect.Y1)/s
	w, h := float64(rect.Dx())/s, float64(rect.Dy())/s
	if rect.Empty() {
		w, h = 0, 0
	}
	return entity.NormalizedBox{
		CenterX: x1 + box.CenterX*w,
		CenterY: y1 + box.CenterY*h,
		Width:   box.Width * w,
		Height:  box.Height * h,
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
