package vectorize

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/npillmayer/glyphscan/backend/svg"
	"github.com/npillmayer/glyphscan/core"
	"github.com/npillmayer/glyphscan/core/locate/glyphstore"
	"github.com/npillmayer/glyphscan/core/parameters"
	"golang.org/x/sync/errgroup"
)

// DefaultOutDir is the directory name for SVG documents.
const DefaultOutDir = "svg"

// Vectorizer writes SVG documents for a directory of glyphs.
type Vectorizer struct {
	Tracer    *Tracer
	Emitter   svg.Emitter
	Workers   int  // glyphs processed concurrently, at least 1
	Overwrite bool // replace documents of earlier runs
}

// New creates a vectorizer from parameters. A nil parameter set selects the
// defaults.
func New(p *parameters.Parameters) *Vectorizer {
	if p == nil {
		p = parameters.Defaults()
	}
	return &Vectorizer{
		Tracer:    NewTracer(p),
		Emitter:   svg.NewEmitter(p),
		Workers:   p.Workers,
		Overwrite: p.Overwrite,
	}
}

// Failure records a glyph which could not be vectorized.
type Failure struct {
	Path string
	Err  error
}

// Report summarizes a vectorization run. Documents and failures are listed in
// file order.
type Report struct {
	Documents []string // paths of written SVG documents
	Failures  []Failure
}

// VectorizeFile vectorizes the glyph image at path.
func (v *Vectorizer) VectorizeFile(ctx context.Context, path string) (*svg.Document, error) {
	img, err := glyphstore.ResolveImage(path).Image(ctx)
	if err != nil {
		return nil, err
	}
	return v.Tracer.Document(img)
}

// VectorizeDir vectorizes every glyph image in dir and writes
// <basename>.svg into outDir. Glyphs failing to vectorize are recorded in the
// report and skipped. A directory without glyph images yields
// core.EEMPTYINPUT. VectorizeDir returns an error for failures of the run as a
// whole only, i.e. if dir or outDir are not accessible or ctx is canceled.
func (v *Vectorizer) VectorizeDir(ctx context.Context, dir string, outDir string) (Report, error) {
	report := Report{}
	glyphs, err := glyphstore.ListImages(dir)
	if err != nil {
		return report, err
	}
	if len(glyphs) == 0 {
		return report, core.Error(core.EEMPTYINPUT, "no glyph images in %s", dir)
	}
	store, err := glyphstore.Open(outDir, v.Overwrite)
	if err != nil {
		return report, err
	}
	results := make([]outcome, len(glyphs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, v.Workers))
	for i, path := range glyphs {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := v.vectorizeTo(ctx, store, path)
			if err != nil && ctx.Err() != nil {
				return ctx.Err()
			} else if err != nil {
				tracer().Errorf("%s: %v", filepath.Base(path), err)
			}
			results[i] = outcome{glyph: path, svg: out, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, core.WrapError(err, core.EINTERNAL, "vectorization canceled")
	}
	for _, r := range results {
		if r.err != nil {
			report.Failures = append(report.Failures, Failure{Path: r.glyph, Err: r.err})
		} else {
			report.Documents = append(report.Documents, r.svg)
		}
	}
	tracer().Infof("%d glyphs vectorized, %d failed", len(report.Documents), len(report.Failures))
	return report, nil
}

type outcome struct {
	glyph, svg string
	err        error
}

func (v *Vectorizer) vectorizeTo(ctx context.Context, store *glyphstore.Store, path string) (string, error) {
	doc, err := v.VectorizeFile(ctx, path)
	if err != nil {
		return "", err
	}
	data, err := v.Emitter.Bytes(doc)
	if err != nil {
		return "", err
	}
	base := filepath.Base(path)
	return store.PutBytes(strings.TrimSuffix(base, filepath.Ext(base))+".svg", data)
}
