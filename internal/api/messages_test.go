package telegram

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	app "resistor-vision/internal/application"
	"resistor-vision/internal/domain/entity"
	"resistor-vision/internal/messages"
)

func newTranslator(t *testing.T) *messages.Translator {
	t.Helper()
	tr, err := messages.NewTranslator()
	require.NoError(t, err)
	return tr
}

func TestRecognitionText(t *testing.T) {
	tr := newTranslator(t)

	ok := &app.PhotoOutput{
		Recognition: &entity.Recognition{
			Success: true,
			Colors:  []entity.Color{entity.Brown, entity.Black, entity.Red, entity.Gold},
			Mode:    entity.FourBands,
		},
		Formatted: "1kΩ ±5%",
	}
	text := recognitionText(tr, "en", ok)
	require.Contains(t, text, "brown → black → red → gold")
	require.Contains(t, text, "1kΩ ±5%")
	require.Contains(t, text, "4 bands")

	partial := &app.PhotoOutput{Recognition: &entity.Recognition{
		Reason:    entity.ReasonNotEnoughBands,
		BandCount: 2,
		Colors:    []entity.Color{entity.Red, entity.Violet},
	}}
	text = recognitionText(tr, "en", partial)
	require.Contains(t, text, "At least 3 bands")
	require.Contains(t, text, "Found 2 bands.")
	require.Contains(t, text, "red → violet")

	notFound := &app.PhotoOutput{Recognition: &entity.Recognition{Reason: entity.ReasonResistorNotFound}}
	require.NotContains(t, recognitionText(tr, "en", notFound), "Found")
}

func TestHistoryText(t *testing.T) {
	tr := newTranslator(t)
	require.Equal(t, "History is empty.", historyText(tr, "en", nil))

	tol := 5.0
	text := historyText(tr, "en", []entity.HistoryEntry{{
		Colors:    []entity.Color{entity.Yellow, entity.Violet, entity.Orange, entity.Gold},
		Reading:   entity.ResistanceReading{Ohms: 47000, Tolerance: &tol},
		Source:    entity.SourceManual,
		CreatedAt: time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC),
	}})
	require.Contains(t, text, "1. 47kΩ ±5% · yellow → violet → orange → gold · manual 09.03 14:05")
}

func TestColorsText(t *testing.T) {
	tr := newTranslator(t)
	text := colorsText(tr, "en")
	require.Contains(t, text, "gold (gold): — · ×0.1 · ±5% · —")
	require.Contains(t, text, "brown (brown): 1 · ×10 · ±1% · 100ppm/°C")
}

func TestParseArgs(t *testing.T) {
	n, ok := parseMode(" 5 ")
	require.True(t, ok)
	require.Equal(t, 5, n)

	_, ok = parseMode("five")
	require.False(t, ok)

	require.Equal(t, []string{"brown", "black", "red", "gold"}, parseColorArgs("brown, black  red,gold"))
	require.Empty(t, parseColorArgs("  "))
}
