package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"resistor-vision/internal/domain/entity"
	"resistor-vision/internal/domain/port"
	"resistor-vision/internal/recognition"
	"resistor-vision/internal/resistance"
)

// PhotoOutput результат обработки фотографии
type PhotoOutput struct {
	Recognition *entity.Recognition
	Reading     *entity.ResistanceReading // заполнен только при успехе
	Formatted   string
	Highlighted []byte // JPEG с рамками, если доступна отрисовка
}

// Calculation результат расчёта по последовательности цветов
type Calculation struct {
	Colors    []entity.Color
	Mode      entity.BandMode
	Reading   entity.ResistanceReading
	Formatted string
}

// RecognitionService управляет распознаванием фото, ручным вводом и историей.
type RecognitionService struct {
	users       *UserService
	decoder     port.ImageDecoder
	gate        port.QualityGate
	recognizer  port.BandRecognizer
	highlighter port.BandHighlighter
	history     port.HistoryRepository
	logger      *zap.Logger
	now         func() time.Time
}

// NewRecognitionService создаёт сервис. gate и highlighter необязательны.
func NewRecognitionService(
	users *UserService,
	decoder port.ImageDecoder,
	gate port.QualityGate,
	recognizer port.BandRecognizer,
	highlighter port.BandHighlighter,
	history port.HistoryRepository,
	logger *zap.Logger,
) *RecognitionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecognitionService{
		users:       users,
		decoder:     decoder,
		gate:        gate,
		recognizer:  recognizer,
		highlighter: highlighter,
		history:     history,
		logger:      logger,
		now:         time.Now,
	}
}

// ProcessPhoto распознаёт резистор на фото и возвращает пользователя в главное меню.
// Неудачное распознавание возвращается в PhotoOutput; ошибка означает сбой хранилища.
// Состояние сбрасывается в главное меню и при ошибке.
func (s *RecognitionService) ProcessPhoto(ctx context.Context, userID, chatID int64, photo []byte) (out *PhotoOutput, err error) {
	if s.decoder == nil || s.recognizer == nil {
		return nil, errors.New("recognizer is not configured")
	}
	if _, err := s.users.SetState(ctx, userID, chatID, entity.StateProcessing); err != nil {
		return nil, err
	}
	defer func() {
		if _, resetErr := s.users.SetState(ctx, userID, chatID, entity.StateMainMenu); resetErr != nil && err == nil {
			out, err = nil, resetErr
		}
	}()

	out = s.recognize(ctx, userID, photo)
	if !out.Recognition.Success {
		return out, nil
	}

	reading, err := resistance.Decode(out.Recognition.Mode, out.Recognition.Colors)
	if err != nil {
		return nil, err
	}
	out.Reading = &reading
	out.Formatted = resistance.Format(reading)

	if _, err := s.users.SetColors(ctx, userID, chatID, out.Recognition.Colors, out.Recognition.Mode); err != nil {
		return nil, err
	}
	if err := s.remember(ctx, userID, out.Recognition.Colors, out.Recognition.Mode, reading, entity.SourcePhoto); err != nil {
		return nil, err
	}
	return out, nil
}

// recognize проходит проверку качества, декодирование и распознавание.
// Любой сбой превращается в неуспешный результат с причиной.
func (s *RecognitionService) recognize(ctx context.Context, userID int64, photo []byte) *PhotoOutput {
	log := s.logger.With(zap.Int64("user_id", userID), zap.Int("photo_bytes", len(photo)))
	failed := func(reason entity.FailureReason, err error) *PhotoOutput {
		return &PhotoOutput{Recognition: &entity.Recognition{Reason: reason, ErrMessage: err.Error()}}
	}

	if s.gate != nil {
		if err := s.gate.CheckQuality(ctx, photo); err != nil {
			if errors.Is(err, port.ErrPoorImageQuality) {
				log.Info("photo rejected by quality gate", zap.Error(err))
				return failed(entity.ReasonPoorImageQuality, err)
			}
			log.Warn("quality gate failed", zap.Error(err))
		}
	}

	input, err := s.decoder.Decode(ctx, photo)
	if err != nil {
		log.Warn("decode photo", zap.Error(err))
		return failed(entity.ReasonProcessingError, err)
	}

	result, err := s.recognizer.Recognize(ctx, input)
	if err != nil {
		log.Error("recognition failed", zap.Error(err))
		return failed(entity.ReasonProcessingError, err)
	}

	out := &PhotoOutput{Recognition: result}
	if result.Success && s.highlighter != nil && result.Resistor != nil {
		out.Highlighted, _ = s.highlighter.Highlight(input, *result.Resistor, result.Bands)
	}
	return out
}

// Calculate считает сопротивление по названиям цветов; число цветов задаёт режим.
func (s *RecognitionService) Calculate(ctx context.Context, userID, chatID int64, names []string) (*Calculation, error) {
	colors, err := entity.ParseColors(names)
	if err != nil {
		return nil, err
	}
	calc, err := calculate(colors)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.SetColors(ctx, userID, chatID, calc.Colors, calc.Mode); err != nil {
		return nil, err
	}
	if err := s.remember(ctx, userID, calc.Colors, calc.Mode, calc.Reading, entity.SourceManual); err != nil {
		return nil, err
	}
	return calc, nil
}

// Swatches распознаёт цвета по образцам RGB и считает сопротивление.
func (s *RecognitionService) Swatches(ctx context.Context, userID int64, samples []entity.RGB) (*Calculation, error) {
	colors, err := recognition.ClassifySwatches(samples)
	if err != nil {
		return nil, err
	}
	calc, err := calculate(colors)
	if err != nil {
		return nil, err
	}
	if err := s.remember(ctx, userID, calc.Colors, calc.Mode, calc.Reading, entity.SourceSwatch); err != nil {
		return nil, err
	}
	return calc, nil
}

// History возвращает последние измерения пользователя, новые первыми.
func (s *RecognitionService) History(ctx context.Context, userID int64) ([]entity.HistoryEntry, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.List(ctx, userID)
}

// ClearHistory удаляет историю пользователя.
func (s *RecognitionService) ClearHistory(ctx context.Context, userID int64) error {
	if s.history == nil {
		return nil
	}
	return s.history.Clear(ctx, userID)
}

func (s *RecognitionService) remember(ctx context.Context, userID int64, colors []entity.Color, mode entity.BandMode, reading entity.ResistanceReading, source entity.ReadingSource) error {
	if s.history == nil {
		return nil
	}
	err := s.history.Add(ctx, userID, entity.HistoryEntry{
		ID:        uuid.NewString(),
		Colors:    colors,
		Mode:      mode,
		Reading:   reading,
		Source:    source,
		CreatedAt: s.now(),
	})
	if err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// calculate проверяет позиции и декодирует последовательность.
func calculate(colors []entity.Color) (*Calculation, error) {
	mode, err := entity.ParseBandMode(len(colors))
	if err != nil {
		return nil, err
	}
	if err := resistance.Validate(mode, colors); err != nil {
		return nil, err
	}
	reading, err := resistance.Decode(mode, colors)
	if err != nil {
		return nil, err
	}
	return &Calculation{
		Colors:    colors,
		Mode:      mode,
		Reading:   reading,
		Formatted: resistance.Format(reading),
	}, nil
}
