package kmlout

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"csv2kml/pkg/fields"
	"csv2kml/pkg/geo"
	"csv2kml/pkg/types"
)

// Shape selects the geometry rendered for each track or row.
type Shape int

const (
	ShapeTrack Shape = iota
	ShapePoint
	ShapeLine
	ShapeCone
)

func ParseShape(s string) (Shape, error) {
	switch s {
	case "track":
		return ShapeTrack, nil
	case "placemark":
		return ShapePoint, nil
	case "line":
		return ShapeLine, nil
	case "cone":
		return ShapeCone, nil
	}
	return ShapeTrack, fmt.Errorf("unknown mode %q (track, placemark, line or cone)", s)
}

const (
	xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>`
	kmlNode   = `kml xmlns="http://earth.google.com/kml/2.0"`
	nameTrunc = 10
)

type Config struct {
	Shape       Shape
	Absolute    bool
	Extrude     bool
	Dms         bool
	StateMarks  bool
	Flat        bool
	LineColor   string // aabbggrr
	LineWidth   int
	PolyColor   string // aabbggrr
	StateColors []string
}

// Builder streams one KML document: header, styles, optional state markers,
// per-track geometry, footer. No tree is held in memory.
type Builder struct {
	e         *Emitter
	cm        fields.ColumnMap
	c         Config
	haveState bool
}

func NewBuilder(w io.Writer, cm fields.ColumnMap, c Config) *Builder {
	return &Builder{
		e:         NewEmitter(w, !c.Flat),
		cm:        cm,
		c:         c,
		haveState: cm.Has(fields.F_FLYC_STATE),
	}
}

// checkShape validates shape prerequisites against the resolved columns
// before anything is emitted, so a bad configuration cannot leave a torn
// document behind.
func (b *Builder) checkShape() error {
	need := func(fs ...fields.Field) error {
		for _, f := range fs {
			if !b.cm.Has(f) {
				return fmt.Errorf("shape prerequisite: column for %s not mapped", f)
			}
		}
		return nil
	}
	switch b.c.Shape {
	case ShapeTrack, ShapePoint:
		return need(fields.F_GPS_LONG, fields.F_GPS_LAT)
	case ShapeLine:
		return need(fields.F_GPS_LONG, fields.F_GPS_LAT, fields.F_BASE_LONG, fields.F_BASE_LAT)
	case ShapeCone:
		return need(fields.F_BASE_LONG, fields.F_BASE_LAT,
			fields.F_VTX1_LONG, fields.F_VTX1_LAT, fields.F_VTX2_LONG, fields.F_VTX2_LAT)
	}
	return fmt.Errorf("unhandled shape %d", b.c.Shape)
}

// Generate emits the whole document for the assembled tracks and flushes
// the sink. Every Open is balanced by a Close; the depth invariant is
// re-checked at the footer.
func (b *Builder) Generate(ts *types.TrackSet) error {
	if err := b.checkShape(); err != nil {
		return err
	}
	e := b.e
	e.Line(xmlHeader)
	e.Open(kmlNode)
	e.Open("Document")

	b.writeStyles()

	if b.c.StateMarks && b.haveState {
		b.writeStateMarks(ts)
	}

	for _, t := range ts.Tracks() {
		switch b.c.Shape {
		case ShapeTrack:
			b.writeTrack(t)
		case ShapePoint, ShapeLine, ShapeCone:
			for _, r := range t.Rows {
				b.writePlacemark(r)
			}
		}
	}

	e.Close()
	e.Close()
	if e.Depth() != 0 {
		panic("kmlout: document depth not zero at footer")
	}
	return e.Flush()
}

func (b *Builder) altMode() string {
	if b.c.Absolute {
		return "absolute"
	}
	return "relativeToGround"
}

func (b *Builder) coord(r *types.Row) (string, bool) {
	lon := r.Get(fields.F_GPS_LONG)
	lat := r.Get(fields.F_GPS_LAT)
	if lon.Null() || lat.Null() {
		return "", false
	}
	return lon.S + "," + lat.S + "," + r.Get(fields.F_GPS_ALT).Or("0"), true
}

func (b *Builder) baseCoord(r *types.Row) (string, bool) {
	lon := r.Get(fields.F_BASE_LONG)
	lat := r.Get(fields.F_BASE_LAT)
	if lon.Null() || lat.Null() {
		return "", false
	}
	return lon.S + "," + lat.S + "," + r.Get(fields.F_BASE_ALT).Or("0"), true
}

// ring builds the cone's closed four-point boundary: base, both vertices,
// back to base. Vertex altitudes follow the base altitude.
func (b *Builder) ring(r *types.Row) (string, bool) {
	base, ok := b.baseCoord(r)
	if !ok {
		return "", false
	}
	alt := r.Get(fields.F_BASE_ALT).Or("0")
	vtx := func(flon, flat fields.Field) (string, bool) {
		lon := r.Get(flon)
		lat := r.Get(flat)
		if lon.Null() || lat.Null() {
			return "", false
		}
		return lon.S + "," + lat.S + "," + alt, true
	}
	v1, ok := vtx(fields.F_VTX1_LONG, fields.F_VTX1_LAT)
	if !ok {
		return "", false
	}
	v2, ok := vtx(fields.F_VTX2_LONG, fields.F_VTX2_LAT)
	if !ok {
		return "", false
	}
	return strings.Join([]string{base, v1, v2, base}, "\n"), true
}

func (b *Builder) nameFor(r *types.Row) string {
	if s := r.Get(fields.F_FLYC_STATE); !s.Null() {
		n := types.CanonState(s.S)
		if rn := []rune(n); len(rn) > nameTrunc {
			n = string(rn[:nameTrunc])
		}
		return n
	}
	if t := r.Get(fields.F_TICK); !t.Null() {
		return "#" + t.S
	}
	return "#" + strconv.FormatInt(r.FlightTime, 10)
}

func (b *Builder) position(r *types.Row) string {
	lon := r.Get(fields.F_GPS_LONG)
	lat := r.Get(fields.F_GPS_LAT)
	if lon.Null() || lat.Null() {
		lon = r.Get(fields.F_BASE_LONG)
		lat = r.Get(fields.F_BASE_LAT)
	}
	if lon.Null() || lat.Null() {
		return "n/a"
	}
	flat, err1 := strconv.ParseFloat(lat.S, 64)
	flon, err2 := strconv.ParseFloat(lon.S, 64)
	if err1 != nil || err2 != nil {
		return lat.S + " " + lon.S
	}
	return geo.PositionFormat(flat, flon, b.c.Dms)
}

func (b *Builder) describe(r *types.Row) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tick: %s\n", r.Get(fields.F_TICK).Or(strconv.FormatInt(r.FlightTime, 10)))
	fmt.Fprintf(&sb, "Time: %s\n", r.Get(fields.F_GPS_TS).Or("n/a"))
	fmt.Fprintf(&sb, "Position: %s\n", b.position(r))
	fmt.Fprintf(&sb, "Altitude: %s\n", r.Get(fields.F_GPS_ALT).Or("n/a"))
	fmt.Fprintf(&sb, "Distance: %s\n", r.Get(fields.F_DISTANCE).Or("n/a"))
	fmt.Fprintf(&sb, "State: %s", types.CanonState(r.Get(fields.F_FLYC_STATE).Or("n/a")))
	return sb.String()
}

func (b *Builder) writePointGeom(r *types.Row) {
	c, ok := b.coord(r)
	if !ok {
		return
	}
	e := b.e
	e.Open("Point")
	if b.c.Extrude {
		e.Element("extrude", "1")
	} else {
		e.Element("extrude", "0")
	}
	e.Element("altitudeMode", b.altMode())
	e.Element("coordinates", c)
	e.Close()
}

func (b *Builder) writePoint(r *types.Row, style string) {
	e := b.e
	e.Open("Placemark")
	e.Element("name", b.nameFor(r))
	e.Element("description", b.describe(r))
	e.Element("styleUrl", style)
	b.writePointGeom(r)
	e.Close()
}

func (b *Builder) writeStateMarks(ts *types.TrackSet) {
	e := b.e
	e.Open("Folder")
	e.Element("name", "State changes")
	for _, t := range ts.Tracks() {
		prev := ""
		for i, r := range t.Rows {
			s := types.CanonState(r.Get(fields.F_FLYC_STATE).Or(""))
			if i > 0 && s != prev {
				if c, ok := b.coord(r); ok {
					e.Open("Placemark")
					e.Element("name", prev+":"+s)
					e.Element("styleUrl", "#iconStateChange")
					e.Open("Point")
					e.Element("altitudeMode", b.altMode())
					e.Element("coordinates", c)
					e.Close()
					e.Close()
				}
			}
			prev = s
		}
	}
	e.Close()
}

func trackName(t *types.Track) string {
	if t.ID == "" {
		return "Track"
	}
	return "Track " + t.ID
}

// writeTrack emits the folder pair for one track: start/end markers, then
// the connected path.
func (b *Builder) writeTrack(t *types.Track) {
	e := b.e
	e.Open("Folder")
	b.writePoint(t.Rows[0], "#iconPathStart")
	b.writePoint(t.Rows[len(t.Rows)-1], "#iconPathEnd")
	e.Close()

	e.Open("Folder")
	e.Element("name", trackName(t))
	e.Open("Placemark")
	e.Element("name", "Flight Trace")
	e.Element("description", "")
	e.Element("styleUrl", "#lineStyle1")
	e.Open("LineString")
	e.Element("extrude", "0")
	e.Element("tessellate", "0")
	e.Element("altitudeMode", b.altMode())
	var pts []string
	for _, r := range t.Rows {
		if c, ok := b.coord(r); ok {
			pts = append(pts, c)
		}
	}
	e.Element("coordinates", strings.Join(pts, "\n"))
	e.Close()
	e.Close()
	e.Close()
}

// writePlacemark emits one row in the point, line or cone shape. Rows whose
// geometry inputs are null are dropped here rather than rendered torn.
func (b *Builder) writePlacemark(r *types.Row) {
	e := b.e
	switch b.c.Shape {
	case ShapePoint:
		e.Open("Placemark")
		e.Element("name", b.nameFor(r))
		e.Element("description", b.describe(r))
		if b.haveState {
			st := types.StateNames[types.StateIndex(r.Get(fields.F_FLYC_STATE).Or(""))]
			e.Element("styleUrl", "#styleState"+st)
		}
		if hd := r.Get(fields.F_HEADING); !hd.Null() {
			e.Open("Style")
			e.Open("IconStyle")
			e.Element("heading", hd.S)
			e.Open("Icon")
			e.Element("href", hrefPoint)
			e.Close()
			e.Close()
			e.Close()
		}
		b.writePointGeom(r)
		e.Close()

	case ShapeLine:
		c, ok := b.coord(r)
		if !ok {
			return
		}
		base, ok := b.baseCoord(r)
		if !ok {
			return
		}
		e.Open("Placemark")
		e.Element("name", b.nameFor(r))
		e.Element("description", b.describe(r))
		e.Element("styleUrl", "#lineStyle1")
		e.Open("LineString")
		e.Element("tessellate", "0")
		e.Element("altitudeMode", b.altMode())
		e.Element("coordinates", c+"\n"+base)
		e.Close()
		e.Close()

	case ShapeCone:
		ring, ok := b.ring(r)
		if !ok {
			return
		}
		e.Open("Placemark")
		e.Element("name", b.nameFor(r))
		e.Element("description", b.describe(r))
		e.Element("styleUrl", "#polyStyle1")
		e.Open("Polygon")
		e.Element("extrude", "0")
		e.Element("tessellate", "0")
		e.Element("altitudeMode", b.altMode())
		e.Open("outerBoundaryIs")
		e.Open("LinearRing")
		e.Element("coordinates", ring)
		e.Close()
		e.Close()
		e.Close()
		e.Close()

	case ShapeTrack:
		// tracks render via writeTrack
	}
}
