// Package display provides human-readable formatting and the pre-merge
// segment table.
package display

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dallagrana/gopromerge/internal/term"
)

// FormatDuration renders a duration as HH:MM:SS.
func FormatDuration(d time.Duration) string {
	s := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}

// FormatSize renders a byte count in binary units (MiB, GiB, ...).
func FormatSize(bytes int64) string {
	return humanize.IBytes(uint64(bytes))
}

// PrintBanner prints the startup banner; magenta when colors are enabled.
func PrintBanner() {
	fmt.Fprint(os.Stdout, term.Magenta)
	fmt.Fprint(os.Stdout, `
  __ _  ___  _ __  _ __ ___  _ __ ___   ___ _ __ __ _  ___
 / _`+"`"+` |/ _ \| '_ \| '__/ _ \| '_ `+"`"+` _ \ / _ \ '__/ _`+"`"+` |/ _ \
| (_| | (_) | |_) | | | (_) | | | | | |  __/ | | (_| |  __/
 \__, |\___/| .__/|_|  \___/|_| |_| |_|\___|_|  \__, |\___|
 |___/      |_|                                 |___/
`)
	fmt.Fprintln(os.Stdout, term.NC)
}
