package main

import (
	"context"
	"flag"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/npillmayer/glyphscan/core"
	"github.com/npillmayer/glyphscan/core/locate/glyphstore"
	"github.com/npillmayer/glyphscan/core/parameters"
	"github.com/npillmayer/glyphscan/engine/segment"
	"github.com/npillmayer/glyphscan/engine/vectorize"
	"github.com/pterm/pterm"
)

func segmentCmd(args []string, p *parameters.Parameters) error {
	fs := flag.NewFlagSet("segment", flag.ExitOnError)
	out := fs.String("out", ".", "Directory to create glyph directories in")
	fs.Parse(args)
	if fs.NArg() == 0 {
		return core.Error(core.EINVALID, "segment needs a page image or a directory of pages")
	}
	total, err := segmentAll(segment.New(p), fs.Args(), *out)
	if err != nil {
		if total.Pages > 0 {
			pterm.Info.Printfln("%d pages segmented before failure", total.Pages)
		}
		return err
	}
	for _, dir := range total.Dirs {
		tracer().Infof("glyph directory %s", dir)
	}
	pterm.Success.Printfln("%d glyphs from %d pages", total.Glyphs, total.Pages)
	return nil
}

// segmentAll segments pages and directories of pages in argument order. It
// stops at the first failing page; directories without pages are reported
// and skipped.
func segmentAll(s *segment.Segmenter, inputs []string, out string) (segment.Report, error) {
	total := segment.Report{}
	for _, in := range inputs {
		var r segment.Report
		var err error
		if isDir(in) {
			r, err = s.SegmentDir(in, out)
		} else {
			r, err = s.SegmentFile(in, out)
		}
		total.Pages += r.Pages
		total.Glyphs += r.Glyphs
		total.Dirs = append(total.Dirs, r.Dirs...)
		if core.Is(err, core.EEMPTYINPUT) {
			pterm.Info.Println(core.UserMessage(err))
			continue
		} else if err != nil {
			return total, err
		}
	}
	return total, nil
}

func vectorizeCmd(args []string, p *parameters.Parameters) error {
	fs := flag.NewFlagSet("vectorize", flag.ExitOnError)
	out := fs.String("out", vectorize.DefaultOutDir, "Directory for SVG documents")
	workers := fs.Int("workers", p.Workers, "Glyphs to vectorize concurrently")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return core.Error(core.EINVALID, "vectorize needs exactly one glyph directory")
	}
	dir := fs.Arg(0)
	if *workers < 1 {
		return core.Error(core.EINVALID, "number of workers must be at least 1")
	}
	p.Workers = *workers
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	report, err := vectorize.New(p).VectorizeDir(ctx, dir, *out)
	if err != nil {
		return err
	}
	for _, f := range report.Failures {
		pterm.Error.Printfln("%s: %s", filepath.Base(f.Path), core.UserMessage(f.Err))
	}
	pterm.Success.Printfln("%d SVG documents written to %s, %d glyphs failed",
		len(report.Documents), *out, len(report.Failures))
	return nil
}

func labelCmd(args []string, p *parameters.Parameters) error {
	if len(args) != 2 {
		return core.Error(core.EINVALID, "label needs a glyph file and a character")
	}
	path, err := glyphstore.Label(args[0], args[1])
	if err != nil {
		return err
	}
	pterm.Success.Printfln("glyph is now %s", path)
	return nil
}

func splitCmd(args []string, p *parameters.Parameters) error {
	if len(args) < 3 {
		return core.Error(core.EINVALID, "split needs a glyph file, characters and rectangles")
	}
	rects, err := parseRects(args[2:])
	if err != nil {
		return err
	}
	paths, err := glyphstore.Split(args[0], args[1], rects)
	if err != nil {
		return err
	}
	pterm.Success.Printfln("glyph split into %s", strings.Join(basenames(paths), " "))
	return nil
}

func discardCmd(args []string, p *parameters.Parameters) error {
	if len(args) != 1 {
		return core.Error(core.EINVALID, "discard needs a glyph file")
	}
	path, err := glyphstore.Discard(args[0])
	if err != nil {
		return err
	}
	pterm.Success.Printfln("glyph moved to %s", path)
	return nil
}

// --- Arguments -------------------------------------------------------------

// parseRect reads a rectangle given as "x0,y0,x1,y1".
func parseRect(s string) (image.Rectangle, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 4 {
		return image.Rectangle{}, core.Error(core.EINVALID, "rectangle %q is not x0,y0,x1,y1", s)
	}
	var n [4]int
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return image.Rectangle{}, core.WrapError(err, core.EINVALID, "rectangle %q is not x0,y0,x1,y1", s)
		}
		n[i] = v
	}
	r := image.Rect(n[0], n[1], n[2], n[3])
	if r.Empty() {
		return r, core.Error(core.EINVALID, "rectangle %q is empty", s)
	}
	return r, nil
}

func parseRects(args []string) ([]image.Rectangle, error) {
	rects := make([]image.Rectangle, len(args))
	for i, a := range args {
		r, err := parseRect(a)
		if err != nil {
			return nil, err
		}
		rects[i] = r
	}
	return rects, nil
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

func basenames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}
