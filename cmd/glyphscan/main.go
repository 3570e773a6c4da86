/*
Command glyphscan cuts scanned pages into glyph images, helps curating them
and converts curated glyphs into SVG outlines.

	glyphscan [flags] segment [-out DIR] PAGE|DIR …
	glyphscan [flags] vectorize [-out DIR] [-workers N] GLYPHDIR
	glyphscan [flags] curate GLYPHDIR
	glyphscan [flags] label FILE CHAR
	glyphscan [flags] split FILE CHARS x0,y0,x1,y1 …
	glyphscan [flags] discard FILE

Parameters are read from an optional NestedText configuration file
(glyphscan.nt in the user's configuration directory) and may be overridden by
flags.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/npillmayer/glyphscan/core"
	"github.com/npillmayer/glyphscan/core/parameters"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'glyphscan.cli'
func tracer() tracing.Trace {
	return tracing.Select("glyphscan.cli")
}

// tracerKeys are the tracers of the module, set to the level of flag -trace.
var tracerKeys = []string{
	"glyphscan.cli",
	"glyphscan.raster",
	"glyphscan.contour",
	"glyphscan.segment",
	"glyphscan.vectorize",
	"glyphscan.store",
	"glyphscan.svg",
	"glyphscan.config",
}

// command is a subcommand, receiving the arguments following its name.
type command func(args []string, p *parameters.Parameters) error

var commands = map[string]command{
	"segment":   segmentCmd,
	"vectorize": vectorizeCmd,
	"curate":    curateCmd,
	"label":     labelCmd,
	"split":     splitCmd,
	"discard":   discardCmd,
}

func main() {
	initDisplay()
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)

	// command line flags
	defaults := parameters.Defaults()
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	threshold := flag.Int("threshold", int(defaults.Threshold), "Gray value below which a page pixel is ink")
	minsize := flag.Int("minsize", defaults.MinSize, "Minimum width and height of a glyph component")
	padding := flag.Int("padding", defaults.Padding, "Pixels of margin around a cropped glyph")
	fillrule := flag.String("fillrule", "", "SVG hole rendering [painter|evenodd|nonzero]")
	overwrite := flag.Bool("overwrite", false, "Replace files of earlier runs")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}
	cmd, ok := commands[flag.Arg(0)]
	if !ok {
		pterm.Error.Printfln("unknown command %q", flag.Arg(0))
		usage()
		os.Exit(2)
	}

	// set up configuration and logging
	overrides := map[string]string{}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "threshold":
			overrides[parameters.KeyThreshold] = strconv.Itoa(*threshold)
		case "minsize":
			overrides[parameters.KeyMinSize] = strconv.Itoa(*minsize)
		case "padding":
			overrides[parameters.KeyPadding] = strconv.Itoa(*padding)
		case "fillrule":
			overrides[parameters.KeyFillRule] = *fillrule
		case "overwrite":
			overrides[parameters.KeyOverwrite] = strconv.FormatBool(*overwrite)
		}
	})
	conf, err := configure(overrides, *tlevel)
	if err != nil {
		fmt.Printf("error configuring tracing: %v\n", err)
		os.Exit(1)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	p := parameters.FromConfig(conf)
	//
	if err := cmd(flag.Args()[1:], p); err != nil {
		if core.Is(err, core.EEMPTYINPUT) {
			pterm.Info.Println(core.UserMessage(err))
			return
		}
		core.UserError(err)
		os.Exit(1)
	}
}

// configure loads the configuration file, applies overrides and sets up
// tracing with every module tracer at level tlevel.
func configure(overrides map[string]string, tlevel string) (schuko.Configuration, error) {
	conf := koanfadapter.New(nil, "glyphscan", []string{"nt"})
	conf.InitDefaults()
	for key, value := range overrides {
		conf.Set(key, value)
	}
	conf.Set("trace.root", tlevel)
	for _, key := range tracerKeys {
		conf.Set("trace."+key, tlevel)
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return nil, err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return conf, nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Success.Prefix = pterm.Prefix{
		Text:  " OK ",
		Style: pterm.NewStyle(pterm.BgGreen, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s [flags] command [arguments]\n\n", os.Args[0])
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  segment [-out DIR] PAGE|DIR …          cut pages into glyph images")
	fmt.Fprintln(out, "  vectorize [-out DIR] [-workers N] DIR  write SVG outlines of glyphs")
	fmt.Fprintln(out, "  curate DIR                             label glyphs interactively")
	fmt.Fprintln(out, "  label FILE CHAR                        name a glyph by its character")
	fmt.Fprintln(out, "  split FILE CHARS x0,y0,x1,y1 …         cut a glyph into characters")
	fmt.Fprintln(out, "  discard FILE                           move a glyph to the bin")
	fmt.Fprintln(out, "\nFlags:")
	flag.PrintDefaults()
}
