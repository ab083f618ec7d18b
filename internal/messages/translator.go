// Package messages хранит переводы интерфейса (ru, en, pl).
package messages

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"resistor-vision/internal/domain/entity"
)

//go:embed locales/*.toml
var localeFS embed.FS

// supportedLanguages первый язык используется по умолчанию
var supportedLanguages = []language.Tag{language.Russian, language.English, language.Polish}

// Translator локализует сообщения бота
type Translator struct {
	bundle  *i18n.Bundle
	matcher language.Matcher
}

// NewTranslator загружает встроенные переводы.
func NewTranslator() (*Translator, error) {
	bundle := i18n.NewBundle(supportedLanguages[0])
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(localeFS, "locales/*.toml")
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if _, err := bundle.LoadMessageFileFS(localeFS, f); err != nil {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	return &Translator{
		bundle:  bundle,
		matcher: language.NewMatcher(supportedLanguages),
	}, nil
}

// Match сводит код языка клиента ("en-US", "pl") к поддерживаемому; неизвестный даёт ru.
func (t *Translator) Match(code string) string {
	if code == "" {
		return supportedLanguages[0].String()
	}
	_, idx, confidence := t.matcher.Match(language.Make(code))
	if confidence == language.No {
		return supportedLanguages[0].String()
	}
	return supportedLanguages[idx].String()
}

// T возвращает перевод id; при отсутствии перевода возвращается сам id.
func (t *Translator) T(lang, id string, data map[string]any) string {
	return t.localize(lang, &i18n.LocalizeConfig{MessageID: id, TemplateData: data})
}

// Plural переводит id с учётом формы множественного числа для count.
func (t *Translator) Plural(lang, id string, count int) string {
	return t.localize(lang, &i18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
}

func (t *Translator) localize(lang string, cfg *i18n.LocalizeConfig) string {
	s, err := i18n.NewLocalizer(t.bundle, lang).Localize(cfg)
	if err != nil && s == "" {
		return cfg.MessageID
	}
	return s
}

// ColorName переводит название цвета.
func (t *Translator) ColorName(lang string, c entity.Color) string {
	return t.T(lang, "color."+c.String(), nil)
}

// ColorNames переводит цвета и соединяет стрелками слева направо.
func (t *Translator) ColorNames(lang string, colors []entity.Color) string {
	names := make([]string, len(colors))
	for i, c := range colors {
		names[i] = t.ColorName(lang, c)
	}
	return strings.Join(names, " → ")
}
