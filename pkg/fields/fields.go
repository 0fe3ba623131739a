package fields

import (
	"fmt"
	"strings"
)

// Field identifies one logical column of a flight log, independent of the
// physical layout of any particular CSV export.
type Field int

const (
	F_TICK Field = iota
	F_FLIGHT_TIME
	F_GPS_TS
	F_GPS_LONG
	F_GPS_LAT
	F_GPS_ALT
	F_FLYC_STATE
	F_HEADING
	F_DISTANCE
	F_BASE_LONG
	F_BASE_LAT
	F_BASE_ALT
	F_VTX1_LONG
	F_VTX1_LAT
	F_VTX2_LONG
	F_VTX2_LAT
	F_TRACK
	NumFields int = iota
)

var fnames = [NumFields]string{
	"F_TICK", "F_FLIGHT_TIME", "F_GPS_TS", "F_GPS_LONG", "F_GPS_LAT",
	"F_GPS_ALT", "F_FLYC_STATE", "F_HEADING", "F_DISTANCE", "F_BASE_LONG",
	"F_BASE_LAT", "F_BASE_ALT", "F_VTX1_LONG", "F_VTX1_LAT", "F_VTX2_LONG",
	"F_VTX2_LAT", "F_TRACK",
}

func (f Field) String() string {
	if f < 0 || int(f) >= NumFields {
		return fmt.Sprintf("F_%d", int(f))
	}
	return fnames[f]
}

// Absent marks a field with no column in the active layout.
const Absent = -1

// ColumnMap maps each logical field to its zero-based column index, or
// Absent. Built once per input stream, read-only thereafter.
type ColumnMap [NumFields]int

func NewColumnMap() ColumnMap {
	var cm ColumnMap
	for i := range cm {
		cm[i] = Absent
	}
	return cm
}

func (cm ColumnMap) Has(f Field) bool {
	return cm[f] != Absent
}

func (cm ColumnMap) Index(f Field) int {
	return cm[f]
}

// Cell returns the raw value of f within record, distinguishing an absent
// column (ok == false) from a present-but-blank one.
func (cm ColumnMap) Cell(record []string, f Field) (string, bool) {
	i := cm[f]
	if i == Absent || i >= len(record) {
		return "", false
	}
	return record[i], true
}

// canonName reduces a header cell to its canonical label: the UTF-8 BOM,
// bracketed qualifiers ("roll[1]"), unit suffixes ("time(millisecond)") and a
// trailing colon are stripped. Every header-label comparison in this package
// goes through here.
func canonName(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '['); i > 0 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, '('); i > 0 {
		s = s[:i]
	}
	s = strings.TrimSuffix(s, ":")
	return strings.TrimSpace(s)
}
