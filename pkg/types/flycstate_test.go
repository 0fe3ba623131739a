package types

import "testing"

func TestCanonState(t *testing.T) {
	cases := []struct{ in, want string }{
		{"GPS_Atti", "GPS_Atti"},
		{"GPS", "GPS_Atti"},
		{"Assited_Takeoff", "AssistedTakeoff"}, // firmware typo
		{"Auto_Landing", "AutoLanding"},
		{"Hovering", "Hover"},
		{"SomethingNew", "SomethingNew"}, // unknown passes through
	}
	for _, c := range cases {
		if got := CanonState(c.in); got != c.want {
			t.Errorf("CanonState(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestStateIndex(t *testing.T) {
	if StateIndex("Go_Home") != FS_GOHOME {
		t.Error("Go_Home should fold onto FS_GOHOME")
	}
	if StateIndex("whatever") != FS_UNKNOWN {
		t.Error("unknown state should map to FS_UNKNOWN")
	}
}

func TestTrackSetOrdering(t *testing.T) {
	ts := NewTrackSet()
	for _, id := range []string{"2", "2", "1", "3", "1"} {
		ts.Append(id, &Row{})
	}
	tracks := ts.Tracks()
	if len(tracks) != 3 {
		t.Fatalf("expected 3 tracks, got %d", len(tracks))
	}
	for i, want := range []string{"2", "1", "3"} {
		if tracks[i].ID != want {
			t.Errorf("track %d: got id %q, want %q", i, tracks[i].ID, want)
		}
	}
	if len(tracks[0].Rows) != 2 || len(tracks[1].Rows) != 2 || len(tracks[2].Rows) != 1 {
		t.Error("row counts do not preserve arrival order grouping")
	}
	if ts.Total() != 5 {
		t.Errorf("total rows: got %d, want 5", ts.Total())
	}
}

func TestValueNull(t *testing.T) {
	if !(Value{}).Null() {
		t.Error("zero Value must be null")
	}
	if !(Value{S: "", Valid: true}).Null() {
		t.Error("blank cell must be null")
	}
	if (Value{S: "0", Valid: true}).Null() {
		t.Error("a real value must not be null")
	}
	if got := (Value{}).Or("x"); got != "x" {
		t.Errorf("Or: got %q", got)
	}
}
