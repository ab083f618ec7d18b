package telegram

import (
	"fmt"
	"strings"

	app "resistor-vision/internal/application"
	"resistor-vision/internal/domain/entity"
	"resistor-vision/internal/messages"
	"resistor-vision/internal/resistance"
)

// recognitionText ответ на обработанную фотографию.
func recognitionText(t *messages.Translator, lang string, out *app.PhotoOutput) string {
	rec := out.Recognition
	if !rec.Success {
		reason := rec.Reason
		if reason == entity.ReasonNone {
			reason = entity.ReasonProcessingError
		}
		lines := []string{t.T(lang, string(reason), nil)}
		if rec.BandCount > 0 {
			lines = append(lines, t.Plural(lang, "bandsFound", rec.BandCount))
			lines = append(lines, t.T(lang, "resultColors", map[string]any{"Colors": t.ColorNames(lang, rec.Colors)}))
		}
		return strings.Join(lines, "\n")
	}

	return strings.Join([]string{
		t.T(lang, "resultTitle", nil),
		"",
		t.T(lang, "resultColors", map[string]any{"Colors": t.ColorNames(lang, rec.Colors)}),
		t.T(lang, "resultValue", map[string]any{"Value": out.Formatted}),
		t.T(lang, "resultMode", map[string]any{"Mode": int(rec.Mode)}),
	}, "\n")
}

// calculationText ответ на ручной расчёт.
func calculationText(t *messages.Translator, lang string, calc *app.Calculation) string {
	return strings.Join([]string{
		t.T(lang, "resultColors", map[string]any{"Colors": t.ColorNames(lang, calc.Colors)}),
		t.T(lang, "resultValue", map[string]any{"Value": calc.Formatted}),
	}, "\n")
}

// historyText список последних измерений.
func historyText(t *messages.Translator, lang string, entries []entity.HistoryEntry) string {
	if len(entries) == 0 {
		return t.T(lang, "historyEmpty", nil)
	}
	var sb strings.Builder
	sb.WriteString(t.T(lang, "historyTitle", nil))
	for i, e := range entries {
		fmt.Fprintf(&sb, "\n%d. %s · %s · %s %s",
			i+1,
			resistance.Format(e.Reading),
			t.ColorNames(lang, e.Colors),
			t.T(lang, "source."+string(e.Source), nil),
			e.CreatedAt.Format("02.01 15:04"),
		)
	}
	return sb.String()
}

// colorsText таблица значений цветов.
func colorsText(t *messages.Translator, lang string) string {
	var sb strings.Builder
	sb.WriteString(t.T(lang, "colorsTitle", nil))
	for _, c := range entity.AllColors() {
		fmt.Fprintf(&sb, "\n%s (%s): %s · %s · %s · %s",
			t.ColorName(lang, c),
			c.String(),
			optional(c.Digit()),
			optionalMultiplier(c),
			optionalPercent(c),
			optionalTempCoeff(c),
		)
	}
	return sb.String()
}

func optional(d int, ok bool) string {
	if !ok {
		return "—"
	}
	return fmt.Sprint(d)
}

func optionalMultiplier(c entity.Color) string {
	m, ok := c.Multiplier()
	if !ok {
		return "—"
	}
	return "×" + strings.TrimSuffix(resistance.FormatOhms(m), "Ω")
}

func optionalPercent(c entity.Color) string {
	tol, ok := c.Tolerance()
	if !ok {
		return "—"
	}
	return resistance.FormatPercent(tol)
}

func optionalTempCoeff(c entity.Color) string {
	tc, ok := c.TempCoeff()
	if !ok {
		return "—"
	}
	return resistance.FormatTempCoeff(tc)
}
