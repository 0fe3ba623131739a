package fields

import (
	"strings"
	"testing"
)

const datconHeader = "Tick#,flightTime,GPS:dateTimeStamp,Longitude,Latitude," +
	"GPS:heightMSL,flyCState,Yaw,distanceTravelled,HP:Long,HP:Lat,HP:Alt"

func splitHeader(s string) []string {
	return strings.Split(s, ",")
}

func TestCanonName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Tick#", "Tick#"},
		{"\ufeffTick#", "Tick#"},
		{"Tick#:", "Tick#"},
		{"time(millisecond)", "time"},
		{"Longitude[1]", "Longitude"},
		{" compass_heading(degrees) ", "compass_heading"},
		{"GPS:dateTimeStamp", "GPS:dateTimeStamp"},
	}
	for _, c := range cases {
		if got := canonName(c.in); got != c.want {
			t.Errorf("canonName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDetect(t *testing.T) {
	if m := Detect(splitHeader(datconHeader)); m != ModelDatCon {
		t.Fatalf("expected DatCon, got %s", m)
	}
	air := "time(millisecond),datetime(utc),latitude,longitude,altitude(feet),flycState"
	if m := Detect(splitHeader(air)); m != ModelAirData {
		t.Fatalf("expected AirData, got %s", m)
	}
	if m := Detect(splitHeader("a,b,c")); m != ModelNone {
		t.Fatalf("expected no model, got %s", m)
	}
	if m := Detect(nil); m != ModelNone {
		t.Fatalf("expected no model for empty header, got %s", m)
	}
}

func TestResolveDatCon(t *testing.T) {
	cm, err := Resolve(splitHeader(datconHeader), ModelDatCon)
	if err != nil {
		t.Fatal(err)
	}
	want := map[Field]int{
		F_TICK:        0,
		F_FLIGHT_TIME: 1,
		F_GPS_TS:      2,
		F_GPS_LONG:    3,
		F_GPS_LAT:     4,
		F_GPS_ALT:     5,
		F_FLYC_STATE:  6,
		F_HEADING:     7,
		F_DISTANCE:    8,
		F_BASE_LONG:   9,
		F_BASE_LAT:    10,
		F_BASE_ALT:    11,
	}
	for f, idx := range want {
		if cm.Index(f) != idx {
			t.Errorf("%s: got index %d, want %d", f, cm.Index(f), idx)
		}
	}
	// not applicable to this model
	for _, f := range []Field{F_VTX1_LONG, F_VTX1_LAT, F_VTX2_LONG, F_VTX2_LAT, F_TRACK} {
		if cm.Has(f) {
			t.Errorf("%s should be absent", f)
		}
	}
}

// Decorative prefixes/suffixes on header cells must not change resolution.
func TestResolveDecorationInvariance(t *testing.T) {
	plain := splitHeader(datconHeader)
	decorated := splitHeader("\ufeffTick#:,flightTime(ms),GPS:dateTimeStamp," +
		"Longitude[1],Latitude[1],GPS:heightMSL(meters),flyCState,Yaw(deg)," +
		"distanceTravelled,HP:Long,HP:Lat,HP:Alt")

	a, err := Resolve(plain, ModelDatCon)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Resolve(decorated, ModelDatCon)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("column maps differ:\nplain     %v\ndecorated %v", a, b)
	}
}

func TestResolveMissingRequired(t *testing.T) {
	hdr := splitHeader("Tick#,flightTime,Latitude,GPS:heightMSL")
	if _, err := Resolve(hdr, ModelDatCon); err == nil {
		t.Fatal("expected error for missing Longitude column")
	}
}

func TestResolveOptionalAbsent(t *testing.T) {
	hdr := splitHeader("Tick#,flightTime,Longitude,Latitude,GPS:heightMSL")
	cm, err := Resolve(hdr, ModelDatCon)
	if err != nil {
		t.Fatal(err)
	}
	if cm.Has(F_FLYC_STATE) || cm.Has(F_DISTANCE) {
		t.Fatal("optional columns should resolve to absent without error")
	}
}

func TestCellBounds(t *testing.T) {
	cm := NewColumnMap()
	cm[F_TICK] = 5
	if _, ok := cm.Cell([]string{"a", "b"}, F_TICK); ok {
		t.Fatal("index beyond record width must read as absent")
	}
	if _, ok := cm.Cell([]string{"a"}, F_GPS_LAT); ok {
		t.Fatal("absent field must not resolve a cell")
	}
}
