package config

// cjkCodes lists the language-code prefixes treated as CJK. Both ISO 639-1
// and 639-2 forms appear because transcription providers are inconsistent
// about which they return.
var cjkCodes = map[string]bool{
	"zho": true,
	"jpn": true,
	"kor": true,
	"chi": true,
	"zh":  true,
	"ja":  true,
	"ko":  true,
}

// IsCJK reports whether the language code names Chinese, Japanese, or
// Korean. Only the first three characters of the code are inspected.
func IsCJK(langCode string) bool {
	if len(langCode) > 3 {
		langCode = langCode[:3]
	}
	return cjkCodes[langCode]
}
