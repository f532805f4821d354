package subtitles

import (
	"testing"

	"golang.org/x/text/unicode/norm"
)

func TestCleanLine(t *testing.T) {
	opts := DefaultCleanOptions()
	tests := []struct {
		input    string
		expected string
	}{
		{"[MUSIC PLAYING] Hello there!", "Hello there!"},
		{"(sighs) 괜찮아?", "괜찮아?"},
		{"<i>Don't go.</i>", "Dont go."},
		{"♪ la la la ♪", "la la la"},
		{"- 뭐라고? - Nothing.", "- 뭐라고? - Nothing."},
		{"  spaced   out  ", "spaced   out"},
		{"[door slams]", ""},
	}
	for _, tt := range tests {
		if got := CleanLine(tt.input, opts); got != tt.expected {
			t.Errorf("CleanLine(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestCleanLineRecomposesHangul(t *testing.T) {
	decomposed := norm.NFD.String("한국어")
	if decomposed == "한국어" {
		t.Fatal("expected NFD form to differ")
	}
	if got := CleanLine(decomposed, DefaultCleanOptions()); got != "한국어" {
		t.Fatalf("CleanLine(NFD) = %q, want 한국어", got)
	}
}

func TestCleanLineRespectsOptions(t *testing.T) {
	opts := CleanOptions{}
	if got := CleanLine("[laughs] ★ ok", opts); got != "[laughs] ★ ok" {
		t.Fatalf("expected annotations and symbols kept, got %q", got)
	}
}

func TestIsAdvertisement(t *testing.T) {
	if !isAdvertisement([]string{"Subtitles by AwesomeSubs"}) {
		t.Fatal("expected credit line to be flagged")
	}
	if !isAdvertisement([]string{"Visit www.example.com"}) {
		t.Fatal("expected url to be flagged")
	}
	if isAdvertisement([]string{"Hello there!"}) {
		t.Fatal("dialogue flagged as advertisement")
	}
}
