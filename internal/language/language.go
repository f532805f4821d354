package language

import "strings"

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	code3   string   // ISO 639-2 primary (3-letter)
	alt3    string   // ISO 639-2 alternate (e.g. "fre" vs "fra")
	display string   // Human-readable name
	aliases []string // Word forms and country codes seen in file names
}

var languages = []entry{
	{"en", "eng", "", "English", []string{"english", "us", "uk"}},
	{"ko", "kor", "", "Korean", []string{"korean", "kr", "kor-kr"}},
	{"ja", "jpn", "", "Japanese", []string{"japanese", "jp"}},
	{"zh", "zho", "chi", "Chinese", []string{"chinese", "cn", "tw"}},
	{"es", "spa", "", "Spanish", []string{"spanish"}},
	{"fr", "fra", "fre", "French", []string{"french"}},
	{"de", "deu", "ger", "German", []string{"german"}},
	{"it", "ita", "", "Italian", []string{"italian"}},
	{"pt", "por", "", "Portuguese", []string{"portuguese", "br"}},
	{"ru", "rus", "", "Russian", []string{"russian"}},
	{"vi", "vie", "", "Vietnamese", []string{"vietnamese", "vn"}},
	{"th", "tha", "", "Thai", []string{"thai"}},
}

var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byAlias map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byAlias = make(map[string]*entry, len(languages)*2)
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		for _, a := range e.aliases {
			byAlias[a] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byAlias[code]; ok {
		return e
	}
	return nil
}

// ToISO2 converts a recognized language code, word, or file-name alias to
// ISO 639-1. Unrecognized input yields an empty string.
func ToISO2(code string) string {
	if e := lookup(code); e != nil {
		return e.code2
	}
	return ""
}

// Canonical returns the ISO 639-1 code for recognized input and the trimmed,
// lowercased input otherwise, so arbitrary track suffixes still compare.
func Canonical(code string) string {
	if iso := ToISO2(code); iso != "" {
		return iso
	}
	return strings.ToLower(strings.TrimSpace(code))
}

// Same reports whether two codes name the same language ("kr" and "kor" do).
func Same(a, b string) bool {
	ca, cb := Canonical(a), Canonical(b)
	return ca != "" && ca == cb
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}
