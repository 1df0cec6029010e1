package translation

import (
	"strings"

	"golang.org/x/text/language"
)

// languageTags maps the human-readable language names produced by the
// transcription stage to BCP 47 tags.
var languageTags = map[string]language.Tag{
	"english":   language.English,
	"hindi":     language.MustParse("hi"),
	"bengali":   language.MustParse("bn"),
	"bangla":    language.MustParse("bn"),
	"kannada":   language.MustParse("kn"),
	"tamil":     language.MustParse("ta"),
	"telugu":    language.MustParse("te"),
	"marathi":   language.MustParse("mr"),
	"gujarati":  language.MustParse("gu"),
	"malayalam": language.MustParse("ml"),
	"punjabi":   language.MustParse("pa"),
	"odia":      language.MustParse("or"),
	"oriya":     language.MustParse("or"),
	"assamese":  language.MustParse("as"),
	"urdu":      language.MustParse("ur"),
	"nepali":    language.MustParse("ne"),
	"santali":   language.MustParse("sat"),
}

// LanguageCode returns the ISO 639 base code for a language name such as
// "Hindi", or for a string that already is a language tag ("hi", "ta-IN").
func LanguageCode(name string) (string, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return "", false
	}
	tag, ok := languageTags[n]
	if !ok {
		parsed, err := language.Parse(n)
		if err != nil {
			return "", false
		}
		tag = parsed
	}
	base, conf := tag.Base()
	if conf == language.No {
		return "", false
	}
	return base.String(), true
}
