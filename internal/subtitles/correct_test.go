package subtitles

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCorrectorDefaults(t *testing.T) {
	c := NewCorrector(DefaultCorrections())
	got := c.Correct("그럴 필요고 없지.")
	if got != "그럴 필요도 없지." {
		t.Fatalf("Correct = %q", got)
	}
}

func TestCorrectorLongestKeyFirst(t *testing.T) {
	c := NewCorrector(map[string]string{
		"teh":     "the",
		"teh end": "The End",
		"same":    "same",
	})
	if c.Len() != 2 {
		t.Fatalf("expected identity rule to be skipped, got %d rules", c.Len())
	}
	if got := c.Correct("teh end of teh road"); got != "The End of the road" {
		t.Fatalf("Correct = %q", got)
	}
}

func TestNilCorrector(t *testing.T) {
	var c *Corrector
	if c.Correct("as is") != "as is" || c.Len() != 0 {
		t.Fatal("nil corrector should be a no-op")
	}
}

func TestLoadCorrections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typos.toml")
	content := "[corrections]\n\"안녕하새요\" = \"안녕하세요\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write dictionary: %v", err)
	}
	dict, err := LoadCorrections(path)
	if err != nil {
		t.Fatalf("LoadCorrections: %v", err)
	}
	if dict["안녕하새요"] != "안녕하세요" {
		t.Fatalf("unexpected dictionary %v", dict)
	}

	if _, err := LoadCorrections(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing dictionary")
	}
}
