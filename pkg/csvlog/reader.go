package csvlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"csv2kml/pkg/fields"
	"csv2kml/pkg/types"
)

// ErrNoRows: the stream was read to EOF but nothing survived filtering.
var ErrNoRows = errors.New("no usable rows in input")

// ErrNoHeader: data was seen but no header matched a known model and no
// explicit field map was supplied, so column order cannot be guessed.
var ErrNoHeader = errors.New("no recognized header found and no field map supplied")

// Result is everything ingestion produces: the assembled tracks, the skip
// tallies and the layout the rows were decoded with.
type Result struct {
	Tracks *types.TrackSet
	Stats  types.Stats
	Model  fields.Model
	Map    fields.ColumnMap
}

// Ingest consumes the whole stream. If cm is nil the header is auto-detected
// from the first line matching a known model; otherwise header detection is
// skipped and every line is treated as data. Interval is the decimation
// threshold in flight-time milliseconds; 0 keeps every sample.
func Ingest(rd io.Reader, cm *fields.ColumnMap, interval int64) (*Result, error) {
	res := &Result{Tracks: types.NewTrackSet(), Model: fields.ModelNone}

	mapped := cm != nil
	if mapped {
		res.Map = *cm
	}

	r := csv.NewReader(rd)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.Comment = '#'

	haveMap := mapped
	var last int64

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// banner noise before the header is free-form text; count it
			var perr *csv.ParseError
			if !haveMap && errors.As(err, &perr) {
				res.Stats.PreHeader++
				continue
			}
			return res, fmt.Errorf("csv read: %w", err)
		}

		if !haveMap {
			if m := fields.Detect(record); m != fields.ModelNone {
				res.Map, err = fields.Resolve(record, m)
				if err != nil {
					return res, err
				}
				res.Model = m
				haveMap = true
			} else {
				res.Stats.PreHeader++
			}
			continue
		}

		// concatenated logs repeat their header; drop it quietly
		if !mapped && fields.Detect(record) != fields.ModelNone {
			continue
		}

		t, ok := flightTime(record, res.Map)
		if !ok {
			res.Stats.NullTime++
			continue
		}
		if res.Stats.Accepted > 0 && t-last < interval {
			res.Stats.TimeDelta++
			continue
		}

		row := decode(record, res.Map, t)
		if nullFix(row, res.Map) {
			res.Stats.NullFix++
			continue
		}

		res.Stats.Accepted++
		last = t
		res.Tracks.Append(row.Get(fields.F_TRACK).Or(""), row)
	}

	if !haveMap {
		return res, ErrNoHeader
	}
	if res.Stats.Accepted == 0 {
		return res, ErrNoRows
	}
	return res, nil
}

// flightTime extracts the decimation clock: flight-time when mapped, else
// the tick counter.
func flightTime(record []string, cm fields.ColumnMap) (int64, bool) {
	f := fields.F_FLIGHT_TIME
	if !cm.Has(f) {
		f = fields.F_TICK
	}
	s, ok := cm.Cell(record, f)
	if !ok || s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	// some exports carry fractional milliseconds
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(v), true
	}
	return 0, false
}

func decode(record []string, cm fields.ColumnMap, t int64) *types.Row {
	row := &types.Row{FlightTime: t}
	for f := fields.Field(0); int(f) < fields.NumFields; f++ {
		if s, ok := cm.Cell(record, f); ok {
			row.Vals[f] = types.Value{S: strings.TrimSpace(s), Valid: true}
		}
	}
	return row
}

func zeroish(v types.Value) bool {
	if v.Null() {
		return false
	}
	n, err := strconv.ParseFloat(v.S, 64)
	return err == nil && n == 0
}

// nullFix recognizes the two no-fix signatures: all three coordinates null,
// or all three the zero sentinel. A row with no primary position is still
// kept when a base location is mapped; the line and cone shapes render from
// it.
func nullFix(row *types.Row, cm fields.ColumnMap) bool {
	lon := row.Get(fields.F_GPS_LONG)
	lat := row.Get(fields.F_GPS_LAT)
	alt := row.Get(fields.F_GPS_ALT)

	if zeroish(lon) && zeroish(lat) && zeroish(alt) {
		return true
	}
	if lon.Null() && lat.Null() && alt.Null() {
		if cm.Has(fields.F_BASE_LONG) && cm.Has(fields.F_BASE_LAT) &&
			!row.Get(fields.F_BASE_LONG).Null() && !row.Get(fields.F_BASE_LAT).Null() {
			return false
		}
		return true
	}
	return false
}

func comma(n int) string {
	return humanize.Comma(int64(n))
}

// Summary renders the skip tallies for the completion report.
func (r *Result) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "accepted %s rows into %d track(s)",
		comma(r.Stats.Accepted), len(r.Tracks.Tracks()))
	if r.Model != fields.ModelNone {
		fmt.Fprintf(&sb, " [%s]", r.Model)
	}
	skips := [...]struct {
		n    int
		what string
	}{
		{r.Stats.PreHeader, "pre-header"},
		{r.Stats.NullTime, "null timestamp"},
		{r.Stats.TimeDelta, "below interval"},
		{r.Stats.NullFix, "null fix"},
	}
	for _, s := range skips {
		if s.n > 0 {
			fmt.Fprintf(&sb, ", skipped %s (%s)", comma(s.n), s.what)
		}
	}
	return sb.String()
}
