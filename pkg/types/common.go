package types

import (
	"csv2kml/pkg/fields"
)

// Value is one raw cell held by a Row. Valid is false when the column is
// absent from the layout, which is distinct from a present-but-empty cell.
type Value struct {
	S     string
	Valid bool
}

// Null reports whether the value is unusable: absent column or blank cell.
func (v Value) Null() bool {
	return !v.Valid || v.S == ""
}

func (v Value) Or(def string) string {
	if v.Null() {
		return def
	}
	return v.S
}

// Row holds the extracted logical fields of one accepted data line, plus the
// parsed flight time used for decimation. Never mutated once assembled.
type Row struct {
	Vals       [fields.NumFields]Value
	FlightTime int64 // milliseconds
}

func (r *Row) Get(f fields.Field) Value {
	return r.Vals[f]
}

// Track is an ordered run of rows sharing one track-identifier value.
type Track struct {
	ID   string
	Rows []*Row
}

// TrackSet keys tracks by identifier and preserves first-appearance order.
type TrackSet struct {
	order  []string
	tracks map[string]*Track
	total  int
}

func NewTrackSet() *TrackSet {
	return &TrackSet{tracks: make(map[string]*Track)}
}

func (ts *TrackSet) Append(id string, r *Row) {
	t, ok := ts.tracks[id]
	if !ok {
		t = &Track{ID: id}
		ts.tracks[id] = t
		ts.order = append(ts.order, id)
	}
	t.Rows = append(t.Rows, r)
	ts.total++
}

// Tracks returns the tracks in first-appearance order. Empty tracks are
// never materialized, so every returned track has at least one row.
func (ts *TrackSet) Tracks() []*Track {
	out := make([]*Track, 0, len(ts.order))
	for _, id := range ts.order {
		out = append(out, ts.tracks[id])
	}
	return out
}

func (ts *TrackSet) Total() int {
	return ts.total
}

// Stats tallies per-category row skips; reported once after ingestion.
type Stats struct {
	PreHeader int
	NullTime  int
	TimeDelta int
	NullFix   int
	Accepted  int
}
