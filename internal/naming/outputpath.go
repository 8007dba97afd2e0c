// Package naming derives the output artifact path for a merge run.
package naming

import (
	"fmt"
	"path/filepath"
	"time"
)

// OutputName builds the output filename from the earliest segment's date,
// the codec token, and the build timestamp:
//
//	gopro_merged_20231012_h264_20260116_073000.mp4
//
// The build timestamp makes repeated runs over the same footage unique
// within one directory; date and codec keep the name meaningful when
// several merges of different days or codecs coexist.
func OutputName(earliest time.Time, codec string, buildTime time.Time) string {
	return fmt.Sprintf("gopro_merged_%s_%s_%s.mp4",
		earliest.Format("20060102"),
		codec,
		buildTime.Format("20060102_150405"))
}

// OutputPath joins the output directory and the derived name.
func OutputPath(dir string, earliest time.Time, codec string, buildTime time.Time) string {
	return filepath.Join(dir, OutputName(earliest, codec, buildTime))
}
