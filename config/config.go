package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"resistor-vision/internal/recognition"
)

const (
	DefaultCenterCropRatio = 0.35
	DefaultHistorySize     = 10
	DefaultMaxUsers        = 1024
	DefaultModelThreads    = 4
)

type Config struct {
	TelegramToken string

	LocatorModelPath    string // модель локализации резистора (.tflite)
	ClassifierModelPath string // модель цветов полос (.tflite)
	InferenceURL        string // внешний сервис вывода; если задан, локальные модели не грузятся

	InputSide           int
	NumProposals        int
	ConfidenceThreshold float64
	IoUThreshold        float64
	CenterCropRatio     float64

	HistorySize  int
	MaxUsers     int
	ModelThreads int

	LogLevel  string
	LogFormat string
}

// DefaultConfig возвращает конфигурацию со значениями по умолчанию
func DefaultConfig() *Config {
	rc := recognition.DefaultConfig()
	return &Config{
		InputSide:           rc.InputSide,
		NumProposals:        rc.NumProposals,
		ConfidenceThreshold: rc.ConfidenceThreshold,
		IoUThreshold:        rc.IoUThreshold,
		CenterCropRatio:     DefaultCenterCropRatio,
		HistorySize:         DefaultHistorySize,
		MaxUsers:            DefaultMaxUsers,
		ModelThreads:        DefaultModelThreads,
		LogLevel:            "info",
		LogFormat:           "console",
	}
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := DefaultConfig()
	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	cfg.LocatorModelPath = os.Getenv("LOCATOR_MODEL_PATH")
	cfg.ClassifierModelPath = os.Getenv("CLASSIFIER_MODEL_PATH")
	cfg.InferenceURL = os.Getenv("INFERENCE_URL")
	stringEnv("LOG_LEVEL", &cfg.LogLevel)
	stringEnv("LOG_FORMAT", &cfg.LogFormat)

	ints := map[string]*int{
		"INPUT_SIDE":    &cfg.InputSide,
		"NUM_PROPOSALS": &cfg.NumProposals,
		"HISTORY_SIZE":  &cfg.HistorySize,
		"MAX_USERS":     &cfg.MaxUsers,
		"MODEL_THREADS": &cfg.ModelThreads,
	}
	for key, dst := range ints {
		if err := intEnv(key, dst); err != nil {
			return nil, err
		}
	}

	floats := map[string]*float64{
		"CONFIDENCE_THRESHOLD": &cfg.ConfidenceThreshold,
		"IOU_THRESHOLD":        &cfg.IoUThreshold,
		"CENTER_CROP_RATIO":    &cfg.CenterCropRatio,
	}
	for key, dst := range floats {
		if err := floatEnv(key, dst); err != nil {
			return nil, err
		}
	}

	cfg.Validate()
	return cfg, nil
}

// Validate заменяет недопустимые значения значениями по умолчанию
func (c *Config) Validate() {
	rc := c.RecognitionConfig()
	rc.Validate()
	c.InputSide = rc.InputSide
	c.NumProposals = rc.NumProposals
	c.ConfidenceThreshold = rc.ConfidenceThreshold
	c.IoUThreshold = rc.IoUThreshold

	if c.CenterCropRatio <= 0 || c.CenterCropRatio > 1 {
		c.CenterCropRatio = DefaultCenterCropRatio
	}
	if c.HistorySize <= 0 {
		c.HistorySize = DefaultHistorySize
	}
	if c.MaxUsers <= 0 {
		c.MaxUsers = DefaultMaxUsers
	}
	if c.ModelThreads <= 0 {
		c.ModelThreads = DefaultModelThreads
	}
}

// RecognitionConfig параметры распознавания
func (c *Config) RecognitionConfig() recognition.Config {
	return recognition.Config{
		InputSide:           c.InputSide,
		NumProposals:        c.NumProposals,
		ConfidenceThreshold: c.ConfidenceThreshold,
		IoUThreshold:        c.IoUThreshold,
	}
}

func stringEnv(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func intEnv(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	*dst = n
	return nil
}

func floatEnv(key string, dst *float64) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	*dst = f
	return nil
}
