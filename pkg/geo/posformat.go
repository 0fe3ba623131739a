package geo

import (
	"fmt"
	"math"
	"strings"
)

func LatFormat(lat float64, dms bool) string {
	if !dms {
		return fmt.Sprintf("%.6f", lat)
	}
	return dmsFormat(lat, "%02d:%02d:%04.1f%c", "NS")
}

func LonFormat(lon float64, dms bool) string {
	if !dms {
		return fmt.Sprintf("%.6f", lon)
	}
	return dmsFormat(lon, "%03d:%02d:%04.1f%c", "EW")
}

// PositionFormat renders "lat lon", decimal degrees or DD:MM:SS.s.
func PositionFormat(lat float64, lon float64, dms bool) string {
	var sb strings.Builder
	sb.WriteString(LatFormat(lat, dms))
	sb.WriteByte(' ')
	sb.WriteString(LonFormat(lon, dms))
	return sb.String()
}

func dmsFormat(coord float64, ofmt string, ind string) string {
	neg := coord < 0.0
	ds := math.Abs(coord)
	d := int(ds)
	rem := (ds - float64(d)) * 3600.0
	m := int(rem / 60)
	s := rem - float64(m*60)
	if int(s*10) == 600 {
		m += 1
		s = 0
	}
	if m == 60 {
		m = 0
		d += 1
	}
	q := ind[0]
	if neg {
		q = ind[1]
	}
	return fmt.Sprintf(ofmt, d, m, s, q)
}
