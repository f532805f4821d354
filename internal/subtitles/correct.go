package subtitles

import (
	"cmp"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DefaultCorrections holds known typos in Korean subtitle releases.
func DefaultCorrections() map[string]string {
	return map[string]string{
		"필요고 없지": "필요도 없지",
	}
}

type correction struct {
	from string
	to   string
}

// Corrector rewrites known typos in subtitle text. A nil Corrector leaves text
// unchanged.
type Corrector struct {
	rules []correction
}

// NewCorrector builds a corrector from a typo -> fix dictionary. Longer keys
// are applied first so a specific fix wins over a shorter overlapping one;
// equal lengths apply in lexical order.
func NewCorrector(dict map[string]string) *Corrector {
	keys := slices.Collect(maps.Keys(dict))
	slices.SortFunc(keys, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	rules := make([]correction, 0, len(keys))
	for _, key := range keys {
		if key == "" || key == dict[key] {
			continue
		}
		rules = append(rules, correction{from: key, to: dict[key]})
	}
	return &Corrector{rules: rules}
}

// Correct applies every rule to text.
func (c *Corrector) Correct(text string) string {
	if c == nil {
		return text
	}
	for _, rule := range c.rules {
		text = strings.ReplaceAll(text, rule.from, rule.to)
	}
	return text
}

// Len reports the number of active rules.
func (c *Corrector) Len() int {
	if c == nil {
		return 0
	}
	return len(c.rules)
}

type correctionFile struct {
	Corrections map[string]string `toml:"corrections"`
}

// LoadCorrections reads a TOML dictionary with a [corrections] table of
// "typo" = "fix" entries.
func LoadCorrections(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corrections: %w", err)
	}
	var file correctionFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse corrections %s: %w", path, err)
	}
	if file.Corrections == nil {
		return map[string]string{}, nil
	}
	return file.Corrections, nil
}
