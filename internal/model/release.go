package model

// Kind distinguishes singles from albums. Type-specific tuning lives in a
// per-kind profile rather than in branches on the kind.
type Kind string

const (
	KindSingle Kind = "SINGLE"
	KindAlbum  Kind = "ALBUM"
)

// Release is a published song or album together with its running statistics.
type Release struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Artist  string  `json:"artist"`
	Genre   string  `json:"genre"`
	Kind    Kind    `json:"kind"`
	Price   float64 `json:"price"`
	Quality float64 `json:"quality"` // 0 ~ 100, fixed at creation
	Hype    float64 `json:"hype"`

	// Tracks holds value snapshots of the songs an album was built from.
	Tracks []Release `json:"tracks,omitempty"`

	DailyStreams int     `json:"daily_streams"`
	TotalStreams int     `json:"total_streams"`
	TotalSales   int     `json:"total_sales"`
	Earnings     float64 `json:"earnings"`
	Age          float64 `json:"age"` // seconds since release
}

// IsAlbum reports whether the release is an album.
func (r *Release) IsAlbum() bool { return r.Kind == KindAlbum }

// Dead reports whether hype has fallen to the commercially-dead threshold.
func (r *Release) Dead(threshold float64) bool { return r.Hype <= threshold }

// Expired reports whether the release has outlived the given lifetime.
func (r *Release) Expired(lifetime float64) bool { return r.Age >= lifetime }

// Snapshot returns a deep copy, so later edits to r never reach the copy.
func (r *Release) Snapshot() Release {
	cp := *r
	if r.Tracks != nil {
		cp.Tracks = make([]Release, len(r.Tracks))
		for i := range r.Tracks {
			cp.Tracks[i] = r.Tracks[i].Snapshot()
		}
	}
	return cp
}

// TrackQualities lists the quality of each album track in order.
func (r *Release) TrackQualities() []float64 {
	out := make([]float64, len(r.Tracks))
	for i, t := range r.Tracks {
		out[i] = t.Quality
	}
	return out
}
