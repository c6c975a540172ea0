// Package languages holds the static catalog of transcription languages.
package languages

// entry pairs a language code with its human-readable display name.
type entry struct {
	Code string
	Name string
}

// catalog is ordered; the /language keyboard renders it top to bottom.
var catalog = []entry{
	{"en", "English"},
	{"so", "Soomaali"},
	{"ar", "عربي (Arabic)"},
	{"fr", "Français (French)"},
	{"es", "Español (Spanish)"},
	{"de", "Deutsch (German)"},
	{"it", "Italiano (Italian)"},
	{"tr", "Türkçe (Turkish)"},
	{"ru", "Русский (Russian)"},
	{"hi", "हिन्दी (Hindi)"},
}

// Default is the language assumed for users who never picked one.
const Default = "en"

// Codes returns the supported language codes in catalog order.
func Codes() []string {
	codes := make([]string, len(catalog))
	for i, e := range catalog {
		codes[i] = e.Code
	}
	return codes
}

// Name returns the display name for a code, or "English" for unknown codes.
func Name(code string) string {
	for _, e := range catalog {
		if e.Code == code {
			return e.Name
		}
	}
	return "English"
}

// Contains reports whether code is a supported language code.
func Contains(code string) bool {
	for _, e := range catalog {
		if e.Code == code {
			return true
		}
	}
	return false
}
