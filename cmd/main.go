package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"resistor-vision/config"
	telegram "resistor-vision/internal/api"
	"resistor-vision/internal/container"
	"resistor-vision/internal/infrastructure/inference"
	"resistor-vision/internal/infrastructure/storage"
	"resistor-vision/internal/infrastructure/vision"
	"resistor-vision/internal/logger"
	"resistor-vision/internal/messages"
	"resistor-vision/internal/recognition"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logg.Sync() }()

	if cfg.TelegramToken == "" {
		logg.Fatal("TELEGRAM_TOKEN is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Модели распознавания
	settings := inference.Settings{
		URL:            cfg.InferenceURL,
		LocatorPath:    cfg.LocatorModelPath,
		ClassifierPath: cfg.ClassifierModelPath,
		Threads:        cfg.ModelThreads,
	}
	runners, err := inference.NewRunners(settings)
	if err != nil {
		logg.Fatal("failed to load models", zap.Stringer("source", settings), zap.Error(err))
	}
	defer func() { _ = runners.Close() }()
	if runners.Remote != nil {
		if err := runners.Remote.CheckHealth(ctx); err != nil {
			logg.Warn("inference service is not healthy yet", zap.Error(err))
		}
	}
	logg.Info("models ready", zap.Stringer("source", settings))

	// Создаём хранилища пользователей и истории
	userRepo, err := storage.NewMemoryUserRepository(cfg.MaxUsers)
	if err != nil {
		logg.Fatal("failed to create user storage", zap.Error(err))
	}
	historyRepo, err := storage.NewMemoryHistoryRepository(cfg.MaxUsers, cfg.HistorySize)
	if err != nil {
		logg.Fatal("failed to create history storage", zap.Error(err))
	}

	inspector := vision.NewInspector()

	// Собираем сервисы приложения
	appContainer := container.New(container.Deps{
		Users:       userRepo,
		History:     historyRepo,
		Decoder:     vision.NewImageDecoder(cfg.InputSide, cfg.CenterCropRatio),
		Gate:        inspector,
		Recognizer:  recognition.NewRecognizer(runners.Locator, runners.Classifier, cfg.RecognitionConfig(), logg.Named("recognition")),
		Highlighter: inspector,
		Logger:      logg.Named("app"),
	})

	tr, err := messages.NewTranslator()
	if err != nil {
		logg.Fatal("failed to load translations", zap.Error(err))
	}

	// Создаём бота
	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer, tr, logg.Named("bot"))
	if err != nil {
		logg.Fatal("failed to create bot", zap.Error(err))
	}

	logg.Info("bot is running")
	if err := bot.Run(ctx); err != nil {
		logg.Fatal("bot error", zap.Error(err))
	}
	logg.Info("bot stopped")
}
