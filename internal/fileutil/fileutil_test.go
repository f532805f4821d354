package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "nested", "out.vtt")

	if err := WriteFileAtomic(dst, []byte("first"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(dst, []byte("second"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Fatalf("content mismatch: got %q", got)
	}
	assertNoTemps(t, filepath.Dir(dst))
}

func TestStagedCommit(t *testing.T) {
	dir := t.TempDir()
	var staged Staged
	staged.Add(filepath.Join(dir, "a.vtt"), []byte("a"))
	staged.Add(filepath.Join(dir, "b.vtt"), []byte("b"))
	staged.Add(filepath.Join(dir, "a.vtt"), []byte("a2"))

	if n := len(staged.paths); n != 2 {
		t.Fatalf("expected 2 staged paths, got %d", n)
	}
	if err := staged.Commit(0o644); err != nil {
		t.Fatal(err)
	}
	for name, want := range map[string]string{"a.vtt": "a2", "b.vtt": "b"} {
		got, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != want {
			t.Fatalf("%s: got %q want %q", name, got, want)
		}
	}
	assertNoTemps(t, dir)
}

func TestStagedCommitFailureTouchesNothing(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	var staged Staged
	good := filepath.Join(dir, "good.vtt")
	staged.Add(good, []byte("good"))
	// A regular file where a directory is expected makes the temp write fail.
	staged.Add(filepath.Join(blocker, "bad.vtt"), []byte("bad"))

	if err := staged.Commit(0o644); err == nil {
		t.Fatal("expected commit to fail")
	}
	if _, err := os.Stat(good); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be absent, stat err=%v", good, err)
	}
	assertNoTemps(t, dir)
}

func assertNoTemps(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".*.tmp"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Fatalf("leftover temp files: %v", matches)
	}
}
