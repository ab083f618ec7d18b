package vision

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"resistor-vision/internal/domain/entity"
	"resistor-vision/internal/domain/port"
)

// ImageDecoder превращает фотографию во входной буфер моделей:
// квадрат по центру, масштабирование ближайшим соседом, каналы в [0,1].
type ImageDecoder struct {
	Side      int     // сторона выходного буфера
	CropRatio float64 // доля ширины фото, берущаяся в квадрат
}

// NewImageDecoder создаёт декодер под сторону side.
func NewImageDecoder(side int, cropRatio float64) *ImageDecoder {
	return &ImageDecoder{Side: side, CropRatio: cropRatio}
}

// Decode декодирует фото и возвращает нормализованный буфер.
func (d *ImageDecoder) Decode(ctx context.Context, photo []byte) (*entity.PixelBuffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(photo))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	b := img.Bounds()
	crop := int(math.Round(float64(b.Dx()) * d.CropRatio))
	crop = min(max(crop, 1), b.Dx(), b.Dy())
	if crop <= 0 {
		return nil, fmt.Errorf("decode image: empty %s image", format)
	}

	square := imaging.CropCenter(img, crop, crop)
	resized := imaging.Resize(square, d.Side, d.Side, imaging.NearestNeighbor)

	return bufferFromNRGBA(resized)
}

// bufferFromNRGBA переводит 8-битные каналы в [0,1].
func bufferFromNRGBA(img *image.NRGBA) (*entity.PixelBuffer, error) {
	side := img.Bounds().Dx()
	return entity.NewPixelBufferFunc(side, func(x, y int) (float32, float32, float32) {
		i := y*img.Stride + x*4
		return float32(img.Pix[i]) / 255, float32(img.Pix[i+1]) / 255, float32(img.Pix[i+2]) / 255
	})
}

// bufferToNRGBA обратное преобразование для отрисовки.
func bufferToNRGBA(buf *entity.PixelBuffer) *image.NRGBA {
	side := buf.Side()
	img := image.NewNRGBA(image.Rect(0, 0, side, side))
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			r, g, b := buf.At(x, y)
			i := y*img.Stride + x*4
			img.Pix[i] = to8(r)
			img.Pix[i+1] = to8(g)
			img.Pix[i+2] = to8(b)
			img.Pix[i+3] = 255
		}
	}
	return img
}

func to8(v float32) uint8 {
	return uint8(math.Round(float64(min(max(v, 0), 1)) * 255))
}

var _ port.ImageDecoder = (*ImageDecoder)(nil)
