// Package i18n localizes the navigation labels (english & vietnamese).
package i18n

import (
	"embed"
	"fmt"
	"sync"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localesFS embed.FS

const (
	LangEN = "en"
	LangVI = "vi"
)

var (
	supported = []language.Tag{language.English, language.Vietnamese}
	matcher   = language.NewMatcher(supported)

	localeFiles = []string{"locales/active.en.toml", "locales/active.vi.toml"}

	bundleOnce sync.Once
	bundle     *goi18n.Bundle
)

// Bundle returns the message bundle, loading the embedded locales on first use.
func Bundle() *goi18n.Bundle {
	bundleOnce.Do(func() {
		bundle = goi18n.NewBundle(language.English)
		bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
		for _, fp := range localeFiles {
			if _, err := bundle.LoadMessageFileFS(localesFS, fp); err != nil {
				panic(fmt.Sprintf("i18n: loading %s: %v", fp, err))
			}
		}
	})
	return bundle
}

// ParseLang returns the supported language best matching accept (a tag or an Accept-Language header).
// It falls back to english.
func ParseLang(accept string) string {
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return LangEN
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return LangEN
	}
	base, _ := supported[idx].Base()
	return base.String()
}

// IsSupported reports whether lang is exactly one of the supported languages.
func IsSupported(lang string) bool {
	return lang == LangEN || lang == LangVI
}

// Localizer translates message IDs to one language.
type Localizer struct {
	lang string
	loc  *goi18n.Localizer
}

func NewLocalizer(lang string) *Localizer {
	if !IsSupported(lang) {
		lang = ParseLang(lang)
	}
	return &Localizer{lang: lang, loc: goi18n.NewLocalizer(Bundle(), lang)}
}

func (l *Localizer) Lang() string { return l.lang }

// T returns the translation of id, or id itself when it has none.
func (l *Localizer) T(id string) string {
	s, err := l.loc.Localize(&goi18n.LocalizeConfig{MessageID: id})
	if err != nil || s == "" {
		return id
	}
	return s
}
