package port

import (
	"context"
	"errors"

	"resistor-vision/internal/domain/entity"
)

// ImageDecoder приводит фотографию к входному буферу моделей
type ImageDecoder interface {
	// Decode декодирует фото, вырезает центр и масштабирует до стороны буфера
	Decode(ctx context.Context, photo []byte) (*entity.PixelBuffer, error)
}

// QualityGate проверка качества фотографии перед распознаванием
type QualityGate interface {
	// CheckQuality возвращает ошибку, если фото слишком размыто, тёмное или засвеченное
	CheckQuality(ctx context.Context, photo []byte) error
}

// BandHighlighter рисует найденный резистор и полосы
type BandHighlighter interface {
	// Highlight возвращает JPEG входного буфера с обведёнными рамками
	Highlight(input *entity.PixelBuffer, resistor entity.Detection, bands []entity.BandDetection) ([]byte, error)
}

// ErrPoorImageQuality оборачивается QualityGate, когда снимок не годится для распознавания
var ErrPoorImageQuality = errors.New("poor image quality")
