package svg

import (
	"fmt"
	"os"
	"strings"
)

// maxDocumentSize caps how much markup LoadFile reads. Logo documents
// run to kilobytes; anything larger is almost certainly not an input
// this tool should chew on.
const maxDocumentSize = 32 << 20

// ValidateDocumentPath checks that a path points at a readable SVG
// document before any parsing happens.
func ValidateDocumentPath(path string) error {
	if path == "" {
		return fmt.Errorf("document path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("document not found: %s", path)
		}
		return fmt.Errorf("failed to access document: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("document path is a directory: %s", path)
	}
	if info.Size() > maxDocumentSize {
		return fmt.Errorf("document too large: %d bytes", info.Size())
	}
	return nil
}

// LoadFile validates and reads an SVG document from disk. The content
// is sniffed for an svg root element so a stray PNG fed to the
// analyser fails early with a clear message.
func LoadFile(path string) (string, error) {
	if err := ValidateDocumentPath(path); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path) // #nosec G304 - user-specified document path, intended to be read
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}

	markup := string(data)
	if !strings.Contains(markup, "<svg") {
		return "", fmt.Errorf("%s does not look like an SVG document", path)
	}
	return markup, nil
}
