package kmlout

import (
	"fmt"

	"github.com/mazznoer/colorgrad"
	"github.com/mazznoer/csscolorparser"
	"github.com/twpayne/go-kml/icon"

	"csv2kml/pkg/types"
)

var (
	hrefPathStart = icon.PaletteHref(2, 13)
	hrefPathEnd   = icon.PaddleHref("red-circle")
	hrefPoint     = icon.PaletteHref(2, 18)
	hrefStateMark = icon.PaddleHref("wht-circle-lv")
)

// KMLColor parses a CSS color (name or hex) into KML aabbggrr hex form.
func KMLColor(spec string) (string, error) {
	c, err := csscolorparser.Parse(spec)
	if err != nil {
		return "", fmt.Errorf("invalid color %q: %w", spec, err)
	}
	r, g, b, a := c.RGBA255()
	return fmt.Sprintf("%02x%02x%02x%02x", a, b, g, r), nil
}

// StateColors samples a preset gradient into one icon color per canonical
// flight state. Gradient names follow the generated palette sets.
func StateColors(name string) ([]string, error) {
	var grad colorgrad.Gradient
	switch name {
	case "red":
		grad = colorgrad.Reds()
	case "rdylgn":
		grad = colorgrad.RdYlGn()
	case "ylorrd":
		grad = colorgrad.YlOrRd()
	default:
		return nil, fmt.Errorf("invalid gradient %q (red, rdylgn or ylorrd)", name)
	}
	n := len(types.StateNames)
	cols := make([]string, n)
	for i := range cols {
		c := grad.At(float64(i) / float64(n-1))
		r, g, b, a := c.RGBA()
		cols[i] = fmt.Sprintf("%02x%02x%02x%02x",
			uint8(a>>8), uint8(b>>8), uint8(g>>8), uint8(r>>8))
	}
	return cols, nil
}

func writeIconStyle(e *Emitter, id, href, color string, scale float64) {
	e.Open(fmt.Sprintf("Style id=%q", id))
	e.Open("IconStyle")
	if color != "" {
		e.Element("color", color)
	}
	if scale > 0 {
		e.Element("scale", fmt.Sprintf("%.1f", scale))
	}
	e.Open("Icon")
	e.Element("href", href)
	e.Close()
	e.Close()
	e.Close()
}

// writeStyles emits every shared style the document references, each one
// self-contained.
func (b *Builder) writeStyles() {
	e := b.e

	e.Open(`Style id="lineStyle1"`)
	e.Open("LineStyle")
	e.Element("color", b.c.LineColor)
	e.Element("width", fmt.Sprintf("%d", b.c.LineWidth))
	e.Close()
	e.Close()

	writeIconStyle(e, "iconPathStart", hrefPathStart, "", 0)
	writeIconStyle(e, "iconPathEnd", hrefPathEnd, "", 0)

	if b.c.Shape == ShapePoint && b.haveState {
		for i, n := range types.StateNames {
			color := ""
			if len(b.c.StateColors) == len(types.StateNames) {
				color = b.c.StateColors[i]
			}
			writeIconStyle(e, "styleState"+n, hrefPoint, color, 0.5)
		}
	}

	if b.c.StateMarks && b.haveState {
		writeIconStyle(e, "iconStateChange", hrefStateMark, "", 0.8)
	}

	if b.c.Shape == ShapeCone {
		e.Open(`Style id="polyStyle1"`)
		e.Open("LineStyle")
		e.Element("color", b.c.LineColor)
		e.Element("width", fmt.Sprintf("%d", b.c.LineWidth))
		e.Close()
		e.Open("PolyStyle")
		e.Element("color", b.c.PolyColor)
		e.Element("outline", "1")
		e.Close()
		e.Close()
	}
}
