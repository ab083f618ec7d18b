//go:build !gocv
// +build !gocv

package vision

import (
	"context"

	"resistor-vision/internal/domain/entity"
)

// CheckQuality без OpenCV пропускает любой снимок.
func (d *Inspector) CheckQuality(ctx context.Context, photo []byte) error {
	return ctx.Err()
}

// Highlight возвращает ошибку, если сборка без тега gocv.
func (d *Inspector) Highlight(input *entity.PixelBuffer, resistor entity.Detection, bands []entity.BandDetection) ([]byte, error) {
	_ = input
	_ = resistor
	_ = bands
	return nil, ErrDetectorDisabled
}
