package main

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"dualsub/internal/cue"
	"dualsub/internal/testsupport"
)

func TestSyncCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	primary := filepath.Join(env.cfg.Paths.InputDir, "ep01_en.vtt")
	secondary := filepath.Join(env.cfg.Paths.InputDir, "ep01_kr.vtt")
	testsupport.WriteVTT(t, primary, cue.Cue{Start: 1, End: 3, Text: "Hello"}, cue.Cue{Start: 9, End: 10, Text: "Alone"})
	testsupport.WriteVTT(t, secondary, cue.Cue{Start: 1.5, End: 2.5, Text: "안녕"})

	out, _, err := runCLI(t, []string{"sync", primary, secondary}, env.configPath)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	requireContains(t, out, "1 synchronized")
	requireContains(t, out, "2 read, 1 unmatched")
	requireContains(t, out, filepath.Join(env.cfg.Paths.OutputDir, "ep01_kr_FINAL.vtt"))

	got := testsupport.ReadFile(t, filepath.Join(env.cfg.Paths.OutputDir, "ep01_en_FINAL.vtt"))
	if got != "WEBVTT\n\n1\n00:00:01.000 --> 00:00:03.000\nHello\n\n" {
		t.Fatalf("unexpected primary output %q", got)
	}
}

func TestSyncCommandJSONAndFlags(t *testing.T) {
	env := setupCLITestEnv(t)
	primary := filepath.Join(env.cfg.Paths.InputDir, "a.vtt")
	secondary := filepath.Join(env.cfg.Paths.InputDir, "b.vtt")
	testsupport.WriteVTT(t, primary, cue.Cue{Start: 0, End: 2, Text: "Hi"})
	testsupport.WriteVTT(t, secondary, cue.Cue{Start: 0, End: 2, Text: "안녕"})
	outDir := t.TempDir()

	out, _, err := runCLI(t, []string{"sync", primary, secondary, "-o", outDir, "--name", "custom?", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	var payload struct {
		Name    string   `json:"name"`
		Pairs   int      `json:"pairs"`
		Outputs []string `json:"outputs"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode JSON: %v (%q)", err, out)
	}
	if payload.Name != "custom" || payload.Pairs != 1 || len(payload.Outputs) != 2 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.Outputs[0] != filepath.Join(outDir, "custom_en_FINAL.vtt") {
		t.Fatalf("unexpected output path: %s", payload.Outputs[0])
	}
}

func TestSyncCommandNoPairs(t *testing.T) {
	env := setupCLITestEnv(t)
	primary := filepath.Join(env.cfg.Paths.InputDir, "x_en.vtt")
	secondary := filepath.Join(env.cfg.Paths.InputDir, "x_kr.vtt")
	testsupport.WriteVTT(t, primary, cue.Cue{Start: 0, End: 1, Text: "A"})
	testsupport.WriteVTT(t, secondary, cue.Cue{Start: 2, End: 3, Text: "가"})

	out, _, err := runCLI(t, []string{"sync", primary, secondary, "--json"}, env.configPath)
	if err == nil {
		t.Fatal("expected no-pairs error")
	}
	requireContains(t, out, `"error_kind": "no_pairs"`)
}

func TestDeriveName(t *testing.T) {
	tests := []struct {
		path string
		lang string
		want string
	}{
		{path: "/subs/ep01_en.vtt", lang: "en", want: "ep01"},
		{path: "/subs/ep01_eng.srt", lang: "en", want: "ep01"},
		{path: "show_s01_en.vtt", lang: "en", want: "show_s01"},
		{path: "ep01_fr.vtt", lang: "en", want: "ep01_fr"},
		{path: "movie.vtt", lang: "en", want: "movie"},
	}
	for _, tc := range tests {
		if got := deriveName(tc.path, tc.lang); got != tc.want {
			t.Errorf("deriveName(%q, %q) = %q, want %q", tc.path, tc.lang, got, tc.want)
		}
	}
}

func TestSyncCommandRejectsUnusableName(t *testing.T) {
	env := setupCLITestEnv(t)
	primary := filepath.Join(env.cfg.Paths.InputDir, "a.vtt")
	secondary := filepath.Join(env.cfg.Paths.InputDir, "b.vtt")
	testsupport.WriteVTT(t, primary, cue.Cue{Start: 0, End: 2, Text: "Hi"})
	testsupport.WriteVTT(t, secondary, cue.Cue{Start: 0, End: 2, Text: "안녕"})

	if _, _, err := runCLI(t, []string{"sync", primary, secondary, "--name", "..."}, env.configPath); err == nil {
		t.Fatal("expected unusable --name to fail")
	}
}
