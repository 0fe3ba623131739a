package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/yookoala/realpath"

	"csv2kml/pkg/csvlog"
	"csv2kml/pkg/fields"
	"csv2kml/pkg/kmlout"
	"csv2kml/pkg/options"
)

var GitCommit = "local"
var GitTag = "0.0.0"

func GetVersion() string {
	return fmt.Sprintf("%s %s commit:%s", filepath.Base(os.Args[0]), GitTag, GitCommit)
}

func buildConfig() kmlout.Config {
	shape, err := kmlout.ParseShape(options.Mode)
	if err != nil {
		log.Fatalf("csv2kml: %v\n", err)
	}
	lcol, err := kmlout.KMLColor(options.LineColor)
	if err != nil {
		log.Fatalf("csv2kml: %v\n", err)
	}
	pcol, err := kmlout.KMLColor(options.PolyColor)
	if err != nil {
		log.Fatalf("csv2kml: %v\n", err)
	}
	var scols []string
	if options.Gradient != "" {
		scols, err = kmlout.StateColors(options.Gradient)
		if err != nil {
			log.Fatalf("csv2kml: %v\n", err)
		}
	}
	return kmlout.Config{
		Shape:       shape,
		Absolute:    options.Absolute,
		Extrude:     options.Extrude,
		Dms:         options.Dms,
		StateMarks:  options.StateMarks,
		Flat:        options.Flat,
		LineColor:   lcol,
		LineWidth:   options.LineWidth,
		PolyColor:   pcol,
		StateColors: scols,
	}
}

func fieldMap() *fields.ColumnMap {
	var cm fields.ColumnMap
	var err error
	switch {
	case options.FieldMap != "":
		cm, err = fields.ParseMap(options.FieldMap)
	case options.FieldMapFile != "":
		cm, err = fields.LoadMap(options.FieldMapFile)
	default:
		return nil
	}
	if err != nil {
		log.Fatalf("csv2kml: %v\n", err)
	}
	return &cm
}

func main() {
	files := options.ParseCLI(GetVersion)
	if len(files) > 1 {
		options.Usage()
		os.Exit(1)
	}

	cfg := buildConfig()
	cm := fieldMap()

	in := os.Stdin
	inName := "stdin"
	if len(files) == 1 && files[0] != "-" {
		fh, err := os.Open(files[0])
		if err != nil {
			log.Fatalf("csv2kml: input %s: %v\n", files[0], err)
		}
		defer fh.Close()
		in = fh
		inName = files[0]
	}

	out := os.Stdout
	if options.Output != "" && options.Output != "-" {
		fh, err := os.Create(options.Output)
		if err != nil {
			log.Fatalf("csv2kml: output %s: %v\n", options.Output, err)
		}
		defer fh.Close()
		out = fh
	}

	res, err := csvlog.Ingest(in, cm, int64(options.Interval))
	if err != nil {
		log.Fatalf("csv2kml: %s: %v\n", inName, err)
	}
	fmt.Fprintf(os.Stderr, "%s: %s\n", inName, res.Summary())

	b := kmlout.NewBuilder(out, res.Map, cfg)
	if err = b.Generate(res.Tracks); err != nil {
		log.Fatalf("csv2kml: %v\n", err)
	}

	// the document is only claimed complete once it is on stable storage
	if st, serr := out.Stat(); serr == nil && st.Mode().IsRegular() &&
		!isatty.IsTerminal(out.Fd()) {
		if err = out.Sync(); err != nil {
			log.Fatalf("csv2kml: sync %s: %v\n", options.Output, err)
		}
	}
	show_output(options.Output)
}

func show_output(outfn string) {
	if outfn != "" {
		rp, err := realpath.Realpath(outfn)
		if err != nil || rp == "" {
			rp = outfn
		}
		fmt.Fprintf(os.Stderr, "%-8.8s : %s\n", "Output", rp)
	}
}
