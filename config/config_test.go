package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "token")
	for _, key := range []string{"INPUT_SIDE", "NUM_PROPOSALS", "CONFIDENCE_THRESHOLD", "IOU_THRESHOLD", "CENTER_CROP_RATIO", "HISTORY_SIZE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "token", cfg.TelegramToken)
	require.Equal(t, 640, cfg.InputSide)
	require.Equal(t, 8400, cfg.NumProposals)
	require.Equal(t, 0.3, cfg.ConfidenceThreshold)
	require.Equal(t, 0.35, cfg.CenterCropRatio)
	require.Equal(t, 10, cfg.HistorySize)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("INPUT_SIDE", "320")
	t.Setenv("NUM_PROPOSALS", "2100")
	t.Setenv("IOU_THRESHOLD", "0.45")
	t.Setenv("HISTORY_SIZE", "-3")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 320, cfg.InputSide)
	require.Equal(t, 2100, cfg.NumProposals)
	require.Equal(t, 0.45, cfg.RecognitionConfig().IoUThreshold)
	require.Equal(t, DefaultHistorySize, cfg.HistorySize)
}

func TestLoad_BadNumber(t *testing.T) {
	t.Setenv("CONFIDENCE_THRESHOLD", "high")
	_, err := Load()
	require.ErrorContains(t, err, "CONFIDENCE_THRESHOLD")
}

func TestValidate_ClampsThresholds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConfidenceThreshold = 1.5
	cfg.CenterCropRatio = 0
	cfg.Validate()
	require.Equal(t, 0.3, cfg.ConfidenceThreshold)
	require.Equal(t, DefaultCenterCropRatio, cfg.CenterCropRatio)
}
