package recognition

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"resistor-vision/internal/domain/entity"
	"resistor-vision/internal/domain/port"
)

// Recognizer двухстадийное распознавание: модель локализации находит резистор,
// модель цветов находит полосы на увеличенном кропе.
type Recognizer struct {
	locator    port.ModelRunner
	classifier port.ModelRunner
	cfg        Config
	logger     *zap.Logger
}

// NewRecognizer создаёт распознаватель над двумя моделями.
func NewRecognizer(locator, classifier port.ModelRunner, cfg Config, logger *zap.Logger) *Recognizer {
	cfg.Validate()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recognizer{
		locator:    locator,
		classifier: classifier,
		cfg:        cfg,
		logger:     logger,
	}
}

// Config возвращает действующие параметры.
func (r *Recognizer) Config() Config {
	return r.cfg
}

// Recognize распознаёт полосы на входном буфере.
// Отсутствие резистора или полос возвращается как неуспешный результат, а не ошибка;
// ошибка означает сбой вызова модели или отмену контекста.
func (r *Recognizer) Recognize(ctx context.Context, input *entity.PixelBuffer) (*entity.Recognition, error) {
	if r.locator == nil || r.classifier == nil {
		return nil, errors.New("models are not configured")
	}
	if input == nil {
		return nil, entity.ErrInvalidBuffer
	}

	id := uuid.NewString()
	log := r.logger.With(zap.String("request_id", id))
	result := &entity.Recognition{RequestID: id}

	// Стадия 1: где резистор
	resistor, err := r.locate(ctx, input, log)
	if err != nil {
		return nil, err
	}
	if resistor == nil {
		log.Info("resistor not found")
		result.Reason = entity.ReasonResistorNotFound
		return result, nil
	}
	result.Resistor = resistor

	// Стадия 2: кроп области резистора
	crop := CropResize(input, resistor.Box)
	if rect := BoxToPixels(resistor.Box, input.Side()); rect.Empty() {
		log.Debug("degenerate resistor crop", zap.Any("box", resistor.Box))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Стадия 3: полосы и их цвета
	output, err := r.classifier.Run(ctx, crop)
	if err != nil {
		return nil, fmt.Errorf("run color model: %w", err)
	}
	candidates := DecodeTensor(output, r.cfg.proposals(len(output), NumColorClasses), NumColorClasses, r.cfg.ConfidenceThreshold)
	log.Debug("band candidates decoded", zap.Int("count", len(candidates)))
	if len(candidates) == 0 {
		log.Info("no bands detected")
		result.Reason = entity.ReasonNoBandsDetected
		return result, nil
	}

	kept := NonMaxSuppression(candidates, r.cfg.IoUThreshold)
	bands := ClassifyBands(kept)
	for _, b := range bands {
		if b.FallbackClass {
			log.Warn("class id outside color table, using fallback color",
				zap.Int("class_id", b.ClassID), zap.Stringer("fallback", b.Color))
		}
	}

	seq := SequenceBands(bands)
	result.Bands = seq.Bands
	result.Colors = seq.Colors
	result.BandCount = len(seq.Bands)

	if !seq.Enough {
		log.Info("not enough bands", zap.Int("count", result.BandCount))
		result.Reason = entity.ReasonNotEnoughBands
		return result, nil
	}

	result.Success = true
	result.Mode = seq.Mode
	log.Info("bands recognized",
		zap.Int("count", result.BandCount),
		zap.Stringers("colors", result.Colors))
	return result, nil
}

// locate возвращает самую уверенную рамку резистора или nil.
func (r *Recognizer) locate(ctx context.Context, input *entity.PixelBuffer, log *zap.Logger) (*entity.Detection, error) {
	output, err := r.locator.Run(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("run locator model: %w", err)
	}
	candidates := DecodeTensor(output, r.cfg.proposals(len(output), 0), 0, r.cfg.ConfidenceThreshold)
	kept := NonMaxSuppression(candidates, r.cfg.IoUThreshold)
	log.Debug("resistor candidates decoded", zap.Int("count", len(candidates)), zap.Int("kept", len(kept)))
	if len(kept) == 0 {
		return nil, nil
	}
	best := kept[0]
	return &best, nil
}
