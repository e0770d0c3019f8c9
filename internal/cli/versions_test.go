package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/inkform/internal/palette"
)

func TestRunVersionsEmitsJSON(t *testing.T) {
	dir := t.TempDir()
	svgPath := filepath.Join(dir, "logo.svg")
	markup := `<svg viewBox="0 0 100 100">
		<rect x="0" y="0" width="100" height="100" fill="#ffffff"/>
		<rect x="20" y="20" width="50" height="50" fill="#000080"/>
	</svg>`
	if err := os.WriteFile(svgPath, []byte(markup), 0o600); err != nil {
		t.Fatal(err)
	}

	outPath := filepath.Join(dir, "versions.json")
	versionsOutput = outPath
	t.Cleanup(func() { versionsOutput = "" })

	if err := runVersions(versionsCmd, []string{svgPath}); err != nil {
		t.Fatalf("runVersions: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	var versions []palette.Version
	if err := json.Unmarshal(data, &versions); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(versions) != 4 {
		t.Fatalf("got %d versions, want 4", len(versions))
	}

	full := versions[0]
	if full.Spec.Name != "Full Color" {
		t.Errorf("first version = %q, want Full Color", full.Spec.Name)
	}
	if !strings.Contains(full.Markup, "<svg") {
		t.Error("full colour version should carry the original markup")
	}

	for _, v := range versions[1:] {
		if v.Spec.MaxColours > 0 && len(v.Palette) > v.Spec.MaxColours {
			t.Errorf("%s palette has %d colours, limit %d", v.Spec.Name, len(v.Palette), v.Spec.MaxColours)
		}
		if len(v.Mapping) == 0 {
			t.Errorf("%s has no paint mapping", v.Spec.Name)
		}
	}
}

func TestRunVersionsRejectsMissingFile(t *testing.T) {
	versionsOutput = ""
	if err := runVersions(versionsCmd, []string{filepath.Join(t.TempDir(), "absent.svg")}); err == nil {
		t.Error("expected an error for a missing document")
	}
}
