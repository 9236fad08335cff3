package models

// Locale selects which localized columns a read should resolve. It is an
// explicit parameter on every localized query, never ambient state.
type Locale string

const (
	LocaleEnglish    Locale = "en"
	LocaleIndonesian Locale = "id"
)

// Locales lists every supported locale.
var Locales = []Locale{LocaleEnglish, LocaleIndonesian}

// NormalizeLocale maps an arbitrary caller-supplied tag to a supported
// locale, defaulting to English.
func NormalizeLocale(tag string) Locale {
	switch Locale(tag) {
	case LocaleIndonesian:
		return LocaleIndonesian
	default:
		return LocaleEnglish
	}
}

// NameColumn returns the localized course name column for the locale. Only
// whitelisted suffixes are produced, so the value is safe to interpolate
// into a query.
func (l Locale) NameColumn() string {
	if l == LocaleIndonesian {
		return "name_id"
	}
	return "name_en"
}
