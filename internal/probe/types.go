package probe

import (
	"strconv"
	"time"
)

// FormatInfo holds container-level metadata from ffprobe's format section.
type FormatInfo struct {
	Filename string
	Duration float64 // Seconds; 0 when ffprobe could not determine it.
	Size     int64
	Tags     map[string]string
}

// VideoStream holds the parsed properties of the primary video stream.
type VideoStream struct {
	Index        int
	Codec        string
	Width        int
	Height       int
	AvgFrameRate string
}

// Result is the fully parsed output of a single ffprobe JSON call.
// PrimaryVideo is the first non-attached-pic video stream (nil if none).
type Result struct {
	Format       FormatInfo
	PrimaryVideo *VideoStream
}

// creationTags are the container tags consulted for a capture timestamp, in
// priority order. GoPro writes creation_time; QuickTime-derived files may
// carry the Apple variant instead.
var creationTags = []string{
	"creation_time",
	"date",
	"com.apple.quicktime.creationdate",
}

// creationLayouts are the timestamp formats accepted from container tags.
var creationLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// CreationTime returns the capture timestamp embedded in the container tags,
// or false when no recognized tag parses. Malformed values in a
// higher-priority tag do not mask a valid lower-priority one.
func (r *Result) CreationTime() (time.Time, bool) {
	for _, tag := range creationTags {
		raw, ok := r.Format.Tags[tag]
		if !ok || raw == "" {
			continue
		}
		for _, layout := range creationLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// DurationValue returns the container duration, or false when unknown.
func (r *Result) DurationValue() (time.Duration, bool) {
	if r.Format.Duration <= 0 {
		return 0, false
	}
	return time.Duration(r.Format.Duration * float64(time.Second)), true
}

// Resolution returns "WxH" for the primary video stream, or "unknown".
func (r *Result) Resolution() string {
	v := r.PrimaryVideo
	if v == nil || v.Width <= 0 || v.Height <= 0 {
		return "unknown"
	}
	return strconv.Itoa(v.Width) + "x" + strconv.Itoa(v.Height)
}
