package planner

import "fmt"

// Filter is one video filter descriptor: a name for display and the ffmpeg
// filter expression.
type Filter struct {
	Name string
	Expr string
}

// BuildFilters emits the filter chain for the option set. The order is
// fixed at scale, fps, stabilize regardless of which filters are enabled.
// All keep-original plus stabilization off yields an empty chain, so the
// encode runs without a filter graph at all.
func BuildFilters(o EncodingOptions) []Filter {
	var filters []Filter

	if o.Resolution != nil {
		filters = append(filters, Filter{
			Name: "scale",
			Expr: fmt.Sprintf("scale=%s:flags=lanczos", o.Resolution),
		})
	}
	if o.FrameRate > 0 {
		filters = append(filters, Filter{
			Name: "fps",
			Expr: fmt.Sprintf("fps=%d", o.FrameRate),
		})
	}
	if o.Stabilize {
		filters = append(filters, Filter{
			Name: "stabilize",
			Expr: "vidstabtransform=smoothing=30:zoom=5",
		})
	}
	return filters
}

// FilterGraph joins the chain into the single -vf expression, or "" for an
// empty chain.
func FilterGraph(filters []Filter) string {
	graph := ""
	for i, f := range filters {
		if i > 0 {
			graph += ","
		}
		graph += f.Expr
	}
	return graph
}
