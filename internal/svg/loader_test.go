package svg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.svg")
	markup := `<svg viewBox="0 0 10 10"><rect width="10" height="10" fill="#102030"/></svg>`
	if err := os.WriteFile(path, []byte(markup), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got != markup {
		t.Error("content altered on load")
	}
}

func TestLoadFileRejectsNonSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-logo.txt")
	if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(path)
	if err == nil || !strings.Contains(err.Error(), "SVG") {
		t.Errorf("expected an SVG sniff failure, got %v", err)
	}
}

func TestValidateDocumentPath(t *testing.T) {
	if err := ValidateDocumentPath(""); err == nil {
		t.Error("empty path accepted")
	}
	if err := ValidateDocumentPath(filepath.Join(t.TempDir(), "absent.svg")); err == nil {
		t.Error("missing file accepted")
	}
	if err := ValidateDocumentPath(t.TempDir()); err == nil {
		t.Error("directory accepted")
	}
}
