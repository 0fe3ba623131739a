package fields

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseMap(t *testing.T) {
	cm, err := ParseMap("F_TICK:0,F_FLIGHT_TIME:1,F_GPS_LONG:2,F_GPS_LAT:3,F_GPS_ALT:4,F_TRACK:7")
	if err != nil {
		t.Fatal(err)
	}
	if cm.Index(F_GPS_LONG) != 2 || cm.Index(F_TRACK) != 7 {
		t.Fatalf("unexpected map: %v", cm)
	}
	if cm.Has(F_FLYC_STATE) {
		t.Fatal("unmapped field should be absent")
	}
}

func TestParseMapUnknownField(t *testing.T) {
	_, err := ParseMap("F_TICK:0,F_GPS_LONG:2,F_GPS_LAT:3,F_GPS_ALT:4,F_WIBBLE:5")
	if err == nil || !strings.Contains(err.Error(), "unknown field") {
		t.Fatalf("expected unknown-field error, got %v", err)
	}
}

func TestParseMapAbsentMarker(t *testing.T) {
	cm, err := ParseMap("F_TICK:0,F_GPS_LONG:1,F_GPS_LAT:2,F_GPS_ALT:3,F_TRACK:-")
	if err != nil {
		t.Fatal(err)
	}
	if cm.Has(F_TRACK) {
		t.Fatal("'-' must record the field as absent")
	}
}

func TestParseMapBadIndex(t *testing.T) {
	for _, spec := range []string{"F_TICK:x", "F_TICK:-2", "F_TICK"} {
		if _, err := ParseMap(spec); err == nil {
			t.Errorf("expected error for %q", spec)
		}
	}
}

func TestParseMapNoTimeSource(t *testing.T) {
	_, err := ParseMap("F_GPS_LONG:0,F_GPS_LAT:1,F_GPS_ALT:2")
	if err == nil {
		t.Fatal("expected error for map without a time source")
	}
}

func TestParseMapBaseOnly(t *testing.T) {
	// base-location columns are a valid position source for line/cone shapes
	if _, err := ParseMap("F_TICK:0,F_BASE_LONG:1,F_BASE_LAT:2"); err != nil {
		t.Fatal(err)
	}
}

func TestLoadMap(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "map.txt")
	content := "# comment\nF_TICK:0\nF_FLIGHT_TIME:1\n\nF_GPS_LONG:2\nF_GPS_LAT:3\nF_GPS_ALT:4\n"
	if err := os.WriteFile(fn, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cm, err := LoadMap(fn)
	if err != nil {
		t.Fatal(err)
	}
	if cm.Index(F_GPS_ALT) != 4 {
		t.Fatalf("unexpected map: %v", cm)
	}
}

func TestLoadMapMissing(t *testing.T) {
	if _, err := LoadMap(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
