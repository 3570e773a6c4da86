package main

import (
	"fmt"
	"image"
	"math"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/glyphscan/core"
	"github.com/npillmayer/glyphscan/core/locate/glyphstore"
	"github.com/npillmayer/glyphscan/core/parameters"
	"github.com/npillmayer/glyphscan/core/raster"
	"github.com/pterm/pterm"
	"golang.org/x/image/draw"
)

// Preview size in terminal cells. A cell is about twice as high as wide.
const (
	previewCols = 64
	previewRows = 32
)

func curateCmd(args []string, p *parameters.Parameters) error {
	if len(args) != 1 {
		return core.Error(core.EINVALID, "curate needs a glyph directory")
	}
	glyphs, err := glyphstore.ListImages(args[0])
	if err != nil {
		return err
	}
	if len(glyphs) == 0 {
		return core.Error(core.EEMPTYINPUT, "no glyph images in %s", args[0])
	}
	repl, err := readline.New("glyph > ")
	if err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot open terminal")
	}
	defer repl.Close()
	intp := &Intp{repl: repl, threshold: p.Threshold}
	pterm.Info.Println("Type the character shown, :d to discard, :s CHARS x0,y0,x1,y1 … to split,")
	pterm.Info.Println("<return> to skip, :q or <ctrl>D to quit")
	intp.REPL(glyphs)
	pterm.Success.Printfln("%d labeled, %d discarded, %d split, %d skipped",
		intp.tally[labeling], intp.tally[discarding], intp.tally[splitting], intp.tally[skipping])
	return nil
}

// Intp is the interpreter for glyph curation.
type Intp struct {
	repl      *readline.Instance
	threshold uint8
	tally     [quitting]int
}

// REPL shows one glyph after the other and applies the user's decisions.
func (intp *Intp) REPL(glyphs []string) {
	shown := -1
	for i := 0; i < len(glyphs); {
		if shown != i {
			intp.show(glyphs[i], i, len(glyphs))
			shown = i
		}
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		c, err := parseCuration(line)
		if err != nil {
			pterm.Error.Println(core.UserMessage(err))
			continue
		}
		if c.op == quitting {
			break
		}
		if err := intp.execute(glyphs[i], c); err != nil {
			pterm.Error.Println(core.UserMessage(err))
			continue
		}
		intp.tally[c.op]++
		i++
	}
}

func (intp *Intp) show(path string, i, n int) {
	pterm.Info.Printfln("%s (%d of %d)", filepath.Base(path), i+1, n)
	img, err := raster.Load(path)
	if err != nil {
		pterm.Error.Println(core.UserMessage(err))
		return
	}
	b := img.Bounds()
	pterm.Info.Printfln("%d×%d pixels", b.Dx(), b.Dy())
	fmt.Print(preview(img, intp.threshold))
}

func (intp *Intp) execute(path string, c curation) error {
	switch c.op {
	case labeling:
		to, err := glyphstore.Label(path, c.chars)
		if err == nil {
			tracer().Infof("%s → %s", filepath.Base(path), filepath.Base(to))
		}
		return err
	case discarding:
		_, err := glyphstore.Discard(path)
		return err
	case splitting:
		paths, err := glyphstore.Split(path, c.chars, c.rects)
		if err == nil {
			tracer().Infof("%s → %s", filepath.Base(path), strings.Join(basenames(paths), " "))
		}
		return err
	}
	return nil
}

type curationOp int

const (
	skipping curationOp = iota
	labeling
	discarding
	splitting
	quitting
)

type curation struct {
	op    curationOp
	chars string
	rects []image.Rectangle
}

// parseCuration reads a curation command. A line consisting of anything but a
// command is a label.
func parseCuration(line string) (curation, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return curation{op: skipping}, nil
	}
	if !strings.HasPrefix(line, ":") || line == ":" {
		return curation{op: labeling, chars: line}, nil
	}
	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		return curation{}, core.Error(core.EINVALID, "missing command after ':'")
	}
	switch fields[0] {
	case "q", "quit":
		return curation{op: quitting}, nil
	case "d", "discard":
		return curation{op: discarding}, nil
	case "s", "split":
		if len(fields) < 3 {
			return curation{}, core.Error(core.EINVALID, "usage: :s CHARS x0,y0,x1,y1 …")
		}
		rects, err := parseRects(fields[2:])
		if err != nil {
			return curation{}, err
		}
		return curation{op: splitting, chars: fields[1], rects: rects}, nil
	}
	return curation{}, core.Error(core.EINVALID, "unknown command %q", fields[0])
}

// preview renders img as text, scaled down to fit previewCols×previewRows
// cells.
func preview(img image.Image, threshold uint8) string {
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())/2
	scale := math.Min(1, math.Min(previewCols/w, previewRows/h))
	cells := image.Rect(0, 0, max(1, int(math.Round(w*scale))), max(1, int(math.Round(h*scale))))
	small := image.NewGray(cells)
	draw.ApproxBiLinear.Scale(small, cells, img, b, draw.Src, nil)
	m, err := raster.FixedBinarizer(threshold).Binarize(small)
	if err != nil {
		return ""
	}
	return m.String()
}
