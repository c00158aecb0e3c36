package i18n

import "strings"

// Localizer resolves message keys into translated text with named-placeholder
// substitution. Unsupported languages fall back to the default language, and
// a key missing from a language falls back to the default language's text, so
// callers always get human-readable output rather than raw keys.
type Localizer struct {
	defaultLang string
}

func NewLocalizer(defaultLang string) *Localizer {
	if _, ok := catalog[defaultLang]; !ok {
		defaultLang = "en"
	}
	return &Localizer{defaultLang: defaultLang}
}

// T renders the message key in lang, substituting {name} placeholders from
// params. Only supplied params are substituted; unknown placeholders in user
// templates are left verbatim, never evaluated.
func (l *Localizer) T(lang, key string, params map[string]string) string {
	messages, ok := catalog[lang]
	if !ok {
		messages = catalog[l.defaultLang]
	}

	text, ok := messages[key]
	if !ok {
		text, ok = catalog[l.defaultLang][key]
		if !ok {
			return Render("", params)
		}
	}

	return Render(text, params)
}

// Render substitutes {name} placeholders in an arbitrary template body. Used
// for both catalog texts and per-assistant template overrides.
func Render(template string, params map[string]string) string {
	if len(params) == 0 {
		return template
	}
	pairs := make([]string, 0, len(params)*2)
	for name, value := range params {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Supported reports whether the language has its own catalog.
func Supported(lang string) bool {
	_, ok := catalog[lang]
	return ok
}
