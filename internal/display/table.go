package display

import (
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/dallagrana/gopromerge/internal/segment"
)

// SegmentTable renders the ordered sequence as the pre-merge confirmation
// listing: position, filename, effective timestamp, duration, size. Unknown
// durations show as "unknown" rather than a zero that would look like an
// empty clip.
func SegmentTable(ordered []segment.Segment) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "File", "Timestamp", "Duration", "Size"})

	for i, s := range ordered {
		duration := "unknown"
		if s.HasDuration() {
			duration = FormatDuration(s.Duration)
		}
		tw.AppendRow(table.Row{
			i + 1,
			filepath.Base(s.Path),
			s.EffectiveTime().Format("2006-01-02 15:04:05"),
			duration,
			FormatSize(s.Size),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	return tw.Render()
}
