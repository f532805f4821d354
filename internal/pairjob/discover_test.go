package pairjob_test

import (
	"path/filepath"
	"testing"

	"dualsub/internal/pairjob"
	"dualsub/internal/testsupport"
)

func TestDiscover(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	runner := newRunner(t, cfg, nil)
	in := cfg.Paths.InputDir

	for _, name := range []string{
		"ep02_en.vtt", "ep02_kr.vtt",
		"ep01_en.vtt", "ep01_ko.vtt",
		"ep03_en.vtt",
		"ep04_kor.VTT",
		"ep05_en.srt", "ep05_kr.srt",
		"notes.txt",
		"ep01_en_FINAL.vtt",
		"ep06_fr.vtt",
	} {
		testsupport.WriteFile(t, filepath.Join(in, name), "WEBVTT\n")
	}

	specs, err := runner.Discover(in, cfg.Paths.OutputDir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	want := []pairjob.Spec{
		{Name: "ep01", PrimaryPath: filepath.Join(in, "ep01_en.vtt"), SecondaryPath: filepath.Join(in, "ep01_ko.vtt")},
		{Name: "ep02", PrimaryPath: filepath.Join(in, "ep02_en.vtt"), SecondaryPath: filepath.Join(in, "ep02_kr.vtt")},
		{Name: "ep03", PrimaryPath: filepath.Join(in, "ep03_en.vtt"), Missing: "kr"},
		{Name: "ep04", SecondaryPath: filepath.Join(in, "ep04_kor.VTT"), Missing: "en"},
	}
	if len(specs) != len(want) {
		t.Fatalf("expected %d specs, got %d: %+v", len(want), len(specs), specs)
	}
	for i, w := range want {
		w.OutputDir = cfg.Paths.OutputDir
		if specs[i] != w {
			t.Fatalf("spec %d = %+v, want %+v", i, specs[i], w)
		}
	}
}

func TestDiscoverPrefersExactSuffix(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	runner := newRunner(t, cfg, nil)
	in := cfg.Paths.InputDir
	for _, name := range []string{"ep_en.vtt", "ep_ko.vtt", "ep_kr.vtt", "ep_kor.vtt"} {
		testsupport.WriteFile(t, filepath.Join(in, name), "")
	}

	specs, err := runner.Discover(in, cfg.Paths.OutputDir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(specs) != 1 || specs[0].SecondaryPath != filepath.Join(in, "ep_kr.vtt") {
		t.Fatalf("expected exact kr suffix to win, got %+v", specs)
	}
}

func TestDiscoverNameFilter(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	runner := newRunner(t, cfg, nil)
	in := cfg.Paths.InputDir
	for _, name := range []string{"a_en.vtt", "a_kr.vtt", "b_en.vtt", "b_kr.vtt"} {
		testsupport.WriteFile(t, filepath.Join(in, name), "")
	}

	names := []string{"zzz", "b", "b"}
	specs, err := runner.Discover(in, cfg.Paths.OutputDir, names...)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(specs) != 2 {
		t.Fatalf("expected 2 specs, got %+v", specs)
	}
	if specs[0].Name != "b" || specs[0].Skipped() {
		t.Fatalf("unexpected first spec: %+v", specs[0])
	}
	if specs[1].Name != "zzz" || specs[1].Missing != "both" {
		t.Fatalf("unexpected second spec: %+v", specs[1])
	}
	if names[0] != "zzz" {
		t.Fatal("Discover reordered the caller's names")
	}
}

func TestDiscoverMissingDir(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	runner := newRunner(t, cfg, nil)
	_, err := runner.Discover(filepath.Join(cfg.Paths.InputDir, "nope"), cfg.Paths.OutputDir)
	if pairjob.KindOf(err) != string(pairjob.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}
