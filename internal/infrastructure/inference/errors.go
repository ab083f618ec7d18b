// Package inference запускает модели детекции локально (TFLite) или через HTTP-сервис.
package inference

import "errors"

var (
	ErrTFLiteDisabled = errors.New("tflite build tag is not enabled")
	ErrModelLoad      = errors.New("model cannot be loaded")
	ErrShapeMismatch  = errors.New("tensor shape mismatch")
)
