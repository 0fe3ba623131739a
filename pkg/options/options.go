package options

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	Output       string
	Mode         string = "track"
	Interval     int    = 1000
	Absolute     bool   = false
	Extrude      bool   = false
	Dms          bool   = false
	StateMarks   bool   = false
	Flat         bool   = false
	FieldMap     string
	FieldMapFile string
	LineColor    string = "yellow"
	PolyColor    string = "green"
	LineWidth    int    = 4
	Gradient     string
)

func Usage() {
	flag.Usage()
}

// ParseCLI parses $CSV2KML_OPTS defaults then the command line, returning
// the input file arguments (none means stdin).
func ParseCLI(gv func() string) []string {
	app := filepath.Base(os.Args[0])

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s [options] [file...]\n", app)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintln(os.Stderr, gv())
	}

	defs := os.Getenv("CSV2KML_OPTS")
	var parts []string
	for _, p := range strings.Split(defs, " ") {
		if p != "" {
			parts = append(parts, p)
		}
	}

	envflags := flag.NewFlagSet("$CSV2KML_OPTS", flag.ExitOnError)
	mode := envflags.String("mode", Mode, "mode")
	intvl := envflags.Int("interval", Interval, "interval")
	dms := envflags.Bool("dms", Dms, "dms")
	extrude := envflags.Bool("extrude", Extrude, "extrude")
	lcol := envflags.String("line-color", LineColor, "line-color")
	pcol := envflags.String("poly-color", PolyColor, "poly-color")
	grad := envflags.String("gradient", Gradient, "gradient")
	envflags.Parse(parts)
	Mode = *mode
	Interval = *intvl
	Dms = *dms
	Extrude = *extrude
	LineColor = *lcol
	PolyColor = *pcol
	Gradient = *grad

	flag.StringVar(&Output, "o", "", "Output file name (default stdout)")
	flag.StringVar(&Mode, "mode", Mode, "Rendering [track,placemark,line,cone]")
	flag.IntVar(&Interval, "interval", Interval, "Minimum flight-time delta between samples (ms), 0 keeps all")
	flag.BoolVar(&Absolute, "absolute", Absolute, "Use absolute altitude mode (vice relativeToGround)")
	flag.BoolVar(&Extrude, "extrude", Extrude, "Extend point placemarks to ground")
	flag.BoolVar(&Dms, "dms", Dms, "Show positions as DD:MM:SS.s (vice decimal degrees)")
	flag.BoolVar(&StateMarks, "state-marks", StateMarks, "Add a folder of flight-state change markers")
	flag.BoolVar(&Flat, "flat", Flat, "Disable output indentation")
	flag.StringVar(&FieldMap, "map", "", "Explicit field map, comma separated FIELD:index pairs")
	flag.StringVar(&FieldMapFile, "map-file", "", "File of FIELD:index pairs, one per line")
	flag.StringVar(&LineColor, "line-color", LineColor, "Track/line colour (CSS name or hex)")
	flag.StringVar(&PolyColor, "poly-color", PolyColor, "Cone fill colour (CSS name or hex)")
	flag.IntVar(&LineWidth, "line-width", LineWidth, "Track/line width")
	flag.StringVar(&Gradient, "gradient", Gradient, "Colour flight-state icons from a gradient [red,rdylgn,ylorrd]")

	flag.Parse()
	return flag.Args()
}
