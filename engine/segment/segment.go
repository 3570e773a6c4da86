package segment

import (
	"image"
	"path/filepath"

	"github.com/npillmayer/glyphscan/core"
	"github.com/npillmayer/glyphscan/core/contour"
	"github.com/npillmayer/glyphscan/core/locate/glyphstore"
	"github.com/npillmayer/glyphscan/core/parameters"
	"github.com/npillmayer/glyphscan/core/raster"
)

// Segmenter cuts pages into glyphs.
type Segmenter struct {
	Binarizer raster.Binarizer
	Merger    *Merger
	Cropper   Cropper
	Overwrite bool // replace glyph files of earlier runs
}

// New creates a segmenter from parameters. A nil parameter set selects the
// defaults.
func New(p *parameters.Parameters) *Segmenter {
	if p == nil {
		p = parameters.Defaults()
	}
	return &Segmenter{
		Binarizer: raster.FixedBinarizer(p.Threshold),
		Merger:    NewMerger(p),
		Cropper:   Cropper{Padding: p.Padding},
		Overwrite: p.Overwrite,
	}
}

// Report summarizes a segmentation run.
type Report struct {
	Pages  int      // pages segmented
	Glyphs int      // glyph images written
	Dirs   []string // one glyph directory per page
}

// Segment cuts page into glyphs, ordered left-to-right and indexed from 0.
func (s *Segmenter) Segment(page image.Image) ([]Glyph, error) {
	mask, err := s.Binarizer.Binarize(page)
	if err != nil {
		return nil, err
	}
	set := contour.Find(mask, contour.External)
	comps := s.Merger.Merge(set.Boxes())
	return s.Cropper.Crop(page, comps), nil
}

// SegmentFile segments the page image at path and writes its glyphs as
// char_<index>.png into a new directory below outRoot. Files already written
// remain if a later write fails.
func (s *Segmenter) SegmentFile(path string, outRoot string) (Report, error) {
	report := Report{}
	page, err := raster.Load(path)
	if err != nil {
		return report, err
	}
	glyphs, err := s.Segment(page)
	if err != nil {
		return report, core.WrapError(err, core.Code(err), "cannot segment %s", path)
	}
	store, err := glyphstore.Open(filepath.Join(outRoot, glyphstore.SegmentDirName(path)), s.Overwrite)
	if err != nil {
		return report, err
	}
	report.Pages = 1
	report.Dirs = append(report.Dirs, store.Dir)
	for _, g := range glyphs {
		if _, err := store.Put(glyphstore.GlyphName(g.Index), g.Image); err != nil {
			return report, err
		}
		report.Glyphs++
	}
	tracer().Infof("%s: %d glyphs written to %s", filepath.Base(path), report.Glyphs, store.Dir)
	return report, nil
}

// SegmentDir segments every page image in dir, in natural file order. The
// first page that fails aborts the run. A directory without page images
// yields core.EEMPTYINPUT.
func (s *Segmenter) SegmentDir(dir string, outRoot string) (Report, error) {
	report := Report{}
	pages, err := glyphstore.ListImages(dir)
	if err != nil {
		return report, err
	}
	if len(pages) == 0 {
		return report, core.Error(core.EEMPTYINPUT, "no page images in %s", dir)
	}
	for _, page := range pages {
		r, err := s.SegmentFile(page, outRoot)
		report.add(r)
		if err != nil {
			return report, err
		}
	}
	return report, nil
}

func (r *Report) add(o Report) {
	r.Pages += o.Pages
	r.Glyphs += o.Glyphs
	r.Dirs = append(r.Dirs, o.Dirs...)
}
