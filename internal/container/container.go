package container

import (
	"go.uber.org/zap"

	app "resistor-vision/internal/application"
	"resistor-vision/internal/domain/port"
)

type Container struct {
	UserService        *app.UserService
	RecognitionService *app.RecognitionService
}

// Deps внешние зависимости сервисов
type Deps struct {
	Users       port.UserRepository
	History     port.HistoryRepository
	Decoder     port.ImageDecoder
	Gate        port.QualityGate
	Recognizer  port.BandRecognizer
	Highlighter port.BandHighlighter
	Logger      *zap.Logger
}

func New(d Deps) *Container {
	userService := app.NewUserService(d.Users)
	recognitionService := app.NewRecognitionService(
		userService, d.Decoder, d.Gate, d.Recognizer, d.Highlighter, d.History, d.Logger,
	)

	return &Container{
		UserService:        userService,
		RecognitionService: recognitionService,
	}
}
