package fields

import (
	"fmt"
	"strings"
)

// Model is a supported source layout. Each model carries an immutable
// field-label table; detection is a pure function of the header text.
type Model int

const (
	ModelNone Model = iota
	ModelDatCon
	ModelAirData
)

var mnames = []string{"none", "DatCon", "AirData"}

func (m Model) String() string {
	return mnames[m]
}

type modelTable struct {
	key      Field
	labels   [NumFields]string // empty label: not applicable to this model
	required []Field
}

var modelTables = map[Model]modelTable{
	ModelDatCon: {
		key: F_TICK,
		labels: [NumFields]string{
			F_TICK:        "Tick#",
			F_FLIGHT_TIME: "flightTime",
			F_GPS_TS:      "GPS:dateTimeStamp",
			F_GPS_LONG:    "Longitude",
			F_GPS_LAT:     "Latitude",
			F_GPS_ALT:     "GPS:heightMSL",
			F_FLYC_STATE:  "flyCState",
			F_HEADING:     "Yaw",
			F_DISTANCE:    "distanceTravelled",
			F_BASE_LONG:   "HP:Long",
			F_BASE_LAT:    "HP:Lat",
			F_BASE_ALT:    "HP:Alt",
		},
		required: []Field{F_TICK, F_FLIGHT_TIME, F_GPS_LONG, F_GPS_LAT, F_GPS_ALT},
	},
	ModelAirData: {
		key: F_FLIGHT_TIME,
		labels: [NumFields]string{
			F_FLIGHT_TIME: "time",
			F_GPS_TS:      "datetime",
			F_GPS_LONG:    "longitude",
			F_GPS_LAT:     "latitude",
			F_GPS_ALT:     "altitude",
			F_FLYC_STATE:  "flycState",
			F_HEADING:     "compass_heading",
			F_DISTANCE:    "distance",
			F_BASE_LONG:   "home_longitude",
			F_BASE_LAT:    "home_latitude",
		},
		required: []Field{F_FLIGHT_TIME, F_GPS_LONG, F_GPS_LAT, F_GPS_ALT},
	},
}

// detection order matters: the most specific key label first
var detectOrder = []Model{ModelDatCon, ModelAirData}

// Detect selects the model whose key-field label is a prefix of the header's
// first recognized cell, or ModelNone.
func Detect(header []string) Model {
	if len(header) == 0 {
		return ModelNone
	}
	first := canonName(header[0])
	if first == "" {
		return ModelNone
	}
	for _, m := range detectOrder {
		t := modelTables[m]
		if strings.HasPrefix(first, canonName(t.labels[t.key])) {
			return m
		}
	}
	return ModelNone
}

// Resolve builds a ColumnMap for a detected model from its header record.
// Not-applicable fields resolve to Absent without searching; a required field
// with no matching column is a configuration error.
func Resolve(header []string, m Model) (ColumnMap, error) {
	cm := NewColumnMap()
	t, ok := modelTables[m]
	if !ok {
		return cm, fmt.Errorf("no field table for model %s", m)
	}

	canon := make([]string, len(header))
	for i, h := range header {
		canon[i] = canonName(h)
	}

	for f := Field(0); int(f) < NumFields; f++ {
		label := t.labels[f]
		if label == "" {
			continue
		}
		for i, c := range canon {
			if c == label {
				cm[f] = i
				break
			}
		}
	}

	for _, f := range t.required {
		if !cm.Has(f) {
			return cm, fmt.Errorf("%s: required column %q (%s) not found in header",
				m, t.labels[f], f)
		}
	}
	return cm, nil
}
