package ffmpeg

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"
)

// readProgress consumes the key=value records ffmpeg emits on the
// -progress pipe and calls advance with the current output timestamp.
// Unparseable lines are skipped; the stream format is stable but tool
// versions differ in which keys they emit (out_time_us vs out_time_ms).
func readProgress(r io.Reader, advance func(time.Duration)) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(sc.Text()), "=")
		if !ok {
			continue
		}
		switch key {
		case "out_time_us", "out_time_ms":
			// Both keys are microseconds in current ffmpeg.
			if us, err := strconv.ParseInt(value, 10, 64); err == nil && us >= 0 {
				advance(time.Duration(us) * time.Microsecond)
			}
		}
	}
}
