package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanError means the input directory itself could not be read. Fatal for
// the run, unlike per-file metadata problems.
type ScanError struct {
	Dir string
	Err error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan %s: %v", e.Dir, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }

// Discover lists the candidate video files directly inside inputDir.
// GoPro cards keep all chapters flat in one directory, so the scan is not
// recursive. Only .mp4 files qualify. Paths come back sorted
// lexicographically so resolution order is reproducible; chronological
// ordering happens later from metadata.
func Discover(inputDir string) ([]string, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, &ScanError{Dir: inputDir, Err: err}
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".mp4") {
			files = append(files, filepath.Join(inputDir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
