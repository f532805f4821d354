package subtitles

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var adPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)opensubtitles`),
	regexp.MustCompile(`(?i)subtitles? by`),
	regexp.MustCompile(`(?i)synced? and corrected`),
	regexp.MustCompile(`(?i)advertise (your|yours?) product`),
	regexp.MustCompile(`(?i)http(s)?://`),
	regexp.MustCompile(`(?i)\bwww\.`),
	regexp.MustCompile(`(?i)\bsubscene\b`),
	regexp.MustCompile(`(?i)\byts\b`),
	regexp.MustCompile(`(?i)\byify\b`),
}

var (
	annotationRe = regexp.MustCompile(`\[.*?\]|\(.*?\)`)
	markupRe     = regexp.MustCompile(`<[^>]*>`)
	forbiddenRe  = regexp.MustCompile(`[^0-9a-zA-Z가-힣\s\-.,?!]`)
)

// DefaultNonDialogueKeywords marks credit and header lines that never carry
// dialogue.
var DefaultNonDialogueKeywords = []string{
	"배급:", "제공:", "감독:", "제작:",
	"Presented by", "Director:", "Production:", "WEBVTT",
}

// CleanOptions controls which lines and characters survive extraction.
type CleanOptions struct {
	// NonDialogueKeywords drops any text line containing one of these.
	NonDialogueKeywords []string
	// StripAnnotations removes [bracketed] and (parenthesized) sound cues.
	StripAnnotations bool
	// StripForbidden keeps only Latin letters, digits, Hangul syllables,
	// whitespace, and - . , ? !
	StripForbidden bool
	// DropAdvertisements removes whole cues that look like release credits.
	DropAdvertisements bool
}

// DefaultCleanOptions returns the cleaning rules used when no configuration
// overrides them.
func DefaultCleanOptions() CleanOptions {
	return CleanOptions{
		NonDialogueKeywords: append([]string(nil), DefaultNonDialogueKeywords...),
		StripAnnotations:    true,
		StripForbidden:      true,
		DropAdvertisements:  true,
	}
}

// CleanLine applies the text-level rules to a single subtitle line. Input is
// NFC-normalized first so decomposed Hangul survives the character filter.
func CleanLine(line string, opts CleanOptions) string {
	line = norm.NFC.String(line)
	line = markupRe.ReplaceAllString(line, "")
	if opts.StripAnnotations {
		line = annotationRe.ReplaceAllString(line, "")
	}
	if opts.StripForbidden {
		line = forbiddenRe.ReplaceAllString(line, "")
	}
	return strings.TrimSpace(line)
}

func isNonDialogue(line string, keywords []string) bool {
	for _, keyword := range keywords {
		if keyword != "" && strings.Contains(line, keyword) {
			return true
		}
	}
	return false
}

func isAdvertisement(textLines []string) bool {
	payload := strings.TrimSpace(strings.ToLower(strings.Join(textLines, " ")))
	if payload == "" {
		return false
	}
	for _, pattern := range adPatterns {
		if pattern.MatchString(payload) {
			return true
		}
	}
	return false
}

// isNumeric reports whether value is a bare cue number. Signs are not
// digits, so dialogue such as "-5" survives.
func isNumeric(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	return true
}
