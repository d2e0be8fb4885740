package sensor

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStatic(t *testing.T) {
	got, ok := Static(DefaultPayload).Read()
	if !ok || got != "Sensor Payload" {
		t.Errorf("got (%q, %v)", got, ok)
	}

	if _, ok := Static("").Read(); ok {
		t.Error("empty static payload should read as absent")
	}
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "temp")
	if err := os.WriteFile(path, []byte("  42500 \nignored\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	f := &File{Path: path}
	got, ok := f.Read()
	if !ok || got != "42500" {
		t.Errorf("got (%q, %v)", got, ok)
	}

	if err := os.WriteFile(path, []byte("43000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got, _ := f.Read(); got != "43000" {
		t.Errorf("file should be re-read on every call, got %q", got)
	}
}

func TestFileAbsent(t *testing.T) {
	dir := t.TempDir()

	f := &File{Path: filepath.Join(dir, "missing")}
	if _, ok := f.Read(); ok {
		t.Error("missing file should read as absent")
	}
	if f.lastErr == "" {
		t.Error("expected error to be remembered")
	}

	empty := filepath.Join(dir, "empty")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := (&File{Path: empty}).Read(); ok {
		t.Error("empty file should read as absent")
	}
}
