package segment

import (
	"sort"
	"time"
)

// Order returns the segments sorted chronologically: ascending effective
// timestamp, ties broken by ascending path. The input is not modified.
//
// The path tie-break makes the order deterministic when timestamp precision
// cannot separate two chapters of one recording; GoPro chapter names are
// monotonic within a recording, so the tie-break reassembles them correctly.
// Ordering an already-ordered sequence yields the same sequence.
func Order(segments []Segment) []Segment {
	out := make([]Segment, len(segments))
	copy(out, segments)
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].EffectiveTime(), out[j].EffectiveTime()
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return out[i].Path < out[j].Path
	})
	return out
}

// Collision names two segments whose effective timestamps are identical, so
// their relative order came from the path tie-break alone.
type Collision struct {
	Time  time.Time
	Paths []string
}

// Collisions reports groups of equal-timestamp segments in an ordered
// sequence. Callers surface these to the user: when colliding files belong
// to distinct recordings the filename order is a guess, not a fact.
func Collisions(ordered []Segment) []Collision {
	var out []Collision
	for i := 0; i < len(ordered); {
		j := i + 1
		for j < len(ordered) && ordered[j].EffectiveTime().Equal(ordered[i].EffectiveTime()) {
			j++
		}
		if j-i > 1 {
			c := Collision{Time: ordered[i].EffectiveTime()}
			for _, s := range ordered[i:j] {
				c.Paths = append(c.Paths, s.Path)
			}
			out = append(out, c)
		}
		i = j
	}
	return out
}

// TotalDuration sums the known durations of the sequence. Segments with
// unknown duration contribute nothing; the second return value reports
// whether every duration was known.
func TotalDuration(segments []Segment) (time.Duration, bool) {
	var total time.Duration
	complete := true
	for _, s := range segments {
		if !s.HasDuration() {
			complete = false
			continue
		}
		total += s.Duration
	}
	return total, complete
}
