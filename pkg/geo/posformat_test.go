package geo

import "testing"

func TestPositionFormatDecimal(t *testing.T) {
	got := PositionFormat(54.125, -3.25, false)
	if got != "54.125000 -3.250000" {
		t.Errorf("got %q", got)
	}
}

func TestPositionFormatDMS(t *testing.T) {
	got := PositionFormat(54.5, -3.25, true)
	if got != "54:30:00.0N 003:15:00.0W" {
		t.Errorf("got %q", got)
	}
}

func TestDMSHemispheres(t *testing.T) {
	if got := LatFormat(-54.5, true); got != "54:30:00.0S" {
		t.Errorf("got %q", got)
	}
	if got := LonFormat(3.25, true); got != "003:15:00.0E" {
		t.Errorf("got %q", got)
	}
}
