package vision

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"resistor-vision/internal/domain/entity"
)

// encodePNG рисует w×h изображение фона bg с квадратом fg стороны inner по центру.
func encodePNG(t *testing.T, w, h, inner int, bg, fg color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	x0, y0 := (w-inner)/2, (h-inner)/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := bg
			if x >= x0 && x < x0+inner && y >= y0 && y < y0+inner {
				c = fg
			}
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageDecoder_CentreCrop(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}
	photo := encodePNG(t, 200, 200, 80, blue, red)

	buf, err := NewImageDecoder(16, 0.35).Decode(context.Background(), photo)
	require.NoError(t, err)
	require.Equal(t, 16, buf.Side())

	// Квадрат 70 пикселей целиком внутри красной области
	for _, p := range [][2]int{{0, 0}, {15, 15}, {8, 3}} {
		r, g, b := buf.At(p[0], p[1])
		require.Equal(t, [3]float32{1, 0, 0}, [3]float32{r, g, b})
	}
}

func TestImageDecoder_CropClampedToShorterSide(t *testing.T) {
	gray := color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	photo := encodePNG(t, 100, 40, 0, gray, gray)

	buf, err := NewImageDecoder(8, 1).Decode(context.Background(), photo)
	require.NoError(t, err)
	r, _, _ := buf.At(7, 7)
	require.InDelta(t, 128.0/255, r, 1e-6)
}

func TestImageDecoder_Errors(t *testing.T) {
	_, err := NewImageDecoder(8, 0.35).Decode(context.Background(), []byte("not an image"))
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewImageDecoder(8, 0.35).Decode(ctx, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestBufferRoundTrip(t *testing.T) {
	buf, err := entity.NewPixelBufferFunc(4, func(x, y int) (float32, float32, float32) {
		return float32(x) / 3, float32(y) / 3, 1
	})
	require.NoError(t, err)

	img := bufferToNRGBA(buf)
	back, err := bufferFromNRGBA(img)
	require.NoError(t, err)

	r, g, b := back.At(3, 0)
	require.Equal(t, [3]float32{1, 0, 1}, [3]float32{r, g, b})
}

func TestHexColor(t *testing.T) {
	require.Equal(t, color.RGBA{R: 0x8B, G: 0x45, B: 0x13, A: 255}, hexColor(entity.Brown.Code().Hex))
	require.Equal(t, color.RGBA{G: 255, A: 255}, hexColor("bogus"))
}
