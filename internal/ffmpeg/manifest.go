package ffmpeg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// WriteManifest writes the concat demuxer input list: one "file '<path>'"
// line per input, in the exact given order. The name carries a UUID so two
// runs against the same output directory never race on the manifest.
//
// The caller owns cleanup; [Execute] removes the manifest on every exit
// path.
func WriteManifest(dir string, inputs []string) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("concat_%s.txt", uuid.NewString()))

	var b strings.Builder
	for _, input := range inputs {
		b.WriteString("file '")
		b.WriteString(quotePath(input))
		b.WriteString("'\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write concat manifest: %w", err)
	}
	return path, nil
}

// quotePath escapes single quotes for the concat demuxer's single-quoted
// file directive: ' becomes '\'' (close quote, escaped quote, reopen).
func quotePath(path string) string {
	return strings.ReplaceAll(path, "'", `'\''`)
}
