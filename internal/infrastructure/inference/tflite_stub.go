//go:build !tflite
// +build !tflite

package inference

import (
	"context"

	"resistor-vision/internal/domain/entity"
)

// TFLiteRunner заглушка для сборки без тега tflite.
type TFLiteRunner struct{}

// NewTFLiteRunner возвращает ErrTFLiteDisabled.
func NewTFLiteRunner(name, path string, threads int) (*TFLiteRunner, error) {
	_ = name
	_ = path
	_ = threads
	return nil, ErrTFLiteDisabled
}

// Run возвращает ErrTFLiteDisabled.
func (r *TFLiteRunner) Run(ctx context.Context, input *entity.PixelBuffer) ([]float32, error) {
	return nil, ErrTFLiteDisabled
}

// Close ничего не делает.
func (r *TFLiteRunner) Close() error {
	return nil
}
