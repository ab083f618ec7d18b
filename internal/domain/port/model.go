package port

import (
	"context"

	"resistor-vision/internal/domain/entity"
)

// ModelRunner интерфейс модели детекции
type ModelRunner interface {
	// Run запускает модель на буфере и возвращает плоский выходной тензор (каналы подряд)
	Run(ctx context.Context, input *entity.PixelBuffer) ([]float32, error)
}

// BandRecognizer двухстадийное распознавание полос по входному буферу
type BandRecognizer interface {
	// Recognize возвращает итог распознавания; неудача распознавания не является ошибкой
	Recognize(ctx context.Context, input *entity.PixelBuffer) (*entity.Recognition, error)
}
