package translator

import (
	"os"
	"path/filepath"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var Translator *i18n.Bundle

type Config struct {
	TranslationFolder  string
	SupportedLanguages []string
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

// InitTranslator loads every <lang>.toml file of the folder into a fresh
// bundle. A missing folder leaves an empty bundle, so callers get message keys
// back instead of translations.
func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := os.ReadDir(cfg.TranslationFolder)
	if err != nil {
		zap.L().Error("failed to list translation folder", zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".toml" {
			continue
		}

		path := filepath.Join(cfg.TranslationFolder, entry.Name())
		if _, err := Translator.LoadMessageFile(path); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", entry.Name()), zap.Error(err))
		}
	}

	if len(cfg.SupportedLanguages) > 0 {
		loaded := make(map[string]struct{})
		for _, tag := range Translator.LanguageTags() {
			loaded[tag.String()] = struct{}{}
		}
		for _, lang := range cfg.SupportedLanguages {
			if _, ok := loaded[lang]; !ok {
				zap.L().Warn("no translation file for supported language", zap.String("lang", lang))
			}
		}
	}
}

// Match picks the loaded language that best serves an Accept-Language header
// and returns its base code. Anything unparsable or unsupported gets English.
func Match(acceptLanguage string) string {
	if Translator == nil || acceptLanguage == "" {
		return LanguageEn
	}

	wanted, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(wanted) == 0 {
		return LanguageEn
	}

	// The bundle lists its default language first, so it is the matcher's fallback.
	loaded := Translator.LanguageTags()
	_, index, confidence := language.NewMatcher(loaded).Match(wanted...)
	if confidence == language.No {
		return LanguageEn
	}
	base, _ := loaded[index].Base()
	return base.String()
}
