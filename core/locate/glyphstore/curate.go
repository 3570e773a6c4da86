package glyphstore

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"github.com/npillmayer/glyphscan/core"
	"github.com/npillmayer/glyphscan/core/raster"
	"github.com/npillmayer/uax/grapheme"
	"golang.org/x/text/unicode/norm"
)

// BinDirName is the name of the directory receiving discarded glyphs. It is
// a sibling of the glyph directory.
const BinDirName = "temp_bin"

var setupGraphemes sync.Once

// Graphemes splits s, after NFC normalization, into grapheme clusters.
func Graphemes(s string) []string {
	if s = norm.NFC.String(s); s == "" {
		return nil
	}
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	gstr := grapheme.StringFromString(s)
	l := gstr.Len()
	gs := make([]string, 0, l)
	for i := 0; i < l; i++ {
		gs = append(gs, gstr.Nth(i))
	}
	return gs
}

// FileLabel turns a single grapheme into a file name stem. Graphemes which
// are unusable as file names are spelled as code points (“U+002F”).
func FileLabel(g string) string {
	if g == "." || g == ".." || strings.ContainsAny(g, `/\`) || strings.IndexFunc(g, notPrintable) >= 0 {
		var b strings.Builder
		for i, r := range g {
			if i > 0 {
				b.WriteByte('_')
			}
			fmt.Fprintf(&b, "U+%04X", r)
		}
		return b.String()
	}
	return g
}

func notPrintable(r rune) bool {
	return !unicode.IsPrint(r) || unicode.IsSpace(r)
}

// Label renames the glyph file at path to the character label it shows,
// keeping its extension. label has to be a single grapheme cluster. If a
// glyph with the same label exists, the name is suffixed with
// “(iteration1)”, “(iteration2)”, …. Label returns the new path.
func Label(path string, label string) (string, error) {
	gs := Graphemes(label)
	if len(gs) != 1 {
		return "", core.Error(core.EINVALID, "label %q is not a single character", label)
	}
	if _, err := os.Stat(path); err != nil {
		return "", core.WrapError(err, core.EMISSING, "glyph %s not found", path)
	}
	dir, ext := filepath.Dir(path), filepath.Ext(path)
	stem := FileLabel(gs[0])
	if filepath.Base(path) == stem+ext {
		return path, nil
	}
	dest, err := moveFree(path, dir, stem, ext)
	if err != nil {
		return "", err
	}
	tracer().Infof("labeled %s as %q", filepath.Base(path), gs[0])
	return dest, nil
}

// Discard moves the glyph file at path into the bin directory next to the
// glyph's directory, creating the bin if necessary. It returns the new path.
func Discard(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", core.WrapError(err, core.EINVALID, "invalid path %s", path)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", core.WrapError(err, core.EMISSING, "glyph %s not found", path)
	}
	bin, err := Open(filepath.Join(filepath.Dir(filepath.Dir(abs)), BinDirName), false)
	if err != nil {
		return "", err
	}
	ext := filepath.Ext(abs)
	stem := strings.TrimSuffix(filepath.Base(abs), ext)
	dest, err := moveFree(abs, bin.Dir, stem, ext)
	if err != nil {
		return "", err
	}
	tracer().Infof("discarded %s", filepath.Base(path))
	return dest, nil
}

// Split cuts the glyph image at path into one image per grapheme of chars,
// taking rectangle rects[i] for the i-th grapheme. Rectangles are given in
// image coordinates and clipped to the image. The pieces are stored as
// <grapheme>.png next to the source, which is removed after all pieces have
// been written. Split returns the paths of the pieces.
func Split(path string, chars string, rects []image.Rectangle) ([]string, error) {
	gs := Graphemes(chars)
	if len(gs) == 0 || len(gs) != len(rects) {
		return nil, core.Error(core.EINVALID, "%d characters for %d rectangles", len(gs), len(rects))
	}
	img, err := raster.Load(path)
	if err != nil {
		return nil, err
	}
	origin := img.Bounds().Min
	clipped := make([]image.Rectangle, len(rects))
	for i, r := range rects {
		clipped[i] = r.Canon().Add(origin).Intersect(img.Bounds())
		if clipped[i].Empty() {
			return nil, core.Error(core.EINVALID, "rectangle %v for %q lies outside of image", r, gs[i])
		}
	}
	store := &Store{Dir: filepath.Dir(path)}
	paths := make([]string, 0, len(gs))
	for i, g := range gs {
		p, err := putFree(store, FileLabel(g), ".png", raster.Crop(img, clipped[i]))
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	if err := os.Remove(path); err != nil {
		return paths, core.WrapError(err, core.EINTERNAL, "cannot remove %s", path)
	}
	tracer().Infof("split %s into %d glyphs", filepath.Base(path), len(paths))
	return paths, nil
}

// maxIterations limits the search for a free file name.
const maxIterations = 10000

func iterationName(stem, ext string, n int) string {
	if n == 0 {
		return stem + ext
	}
	return fmt.Sprintf("%s(iteration%d)%s", stem, n, ext)
}

// moveFree moves src into dir under the first free name derived from stem.
// Hard-linking fails for existing targets, so no file is ever replaced.
func moveFree(src, dir, stem, ext string) (string, error) {
	for n := 0; n < maxIterations; n++ {
		dest := filepath.Join(dir, iterationName(stem, ext, n))
		err := os.Link(src, dest)
		if errors.Is(err, fs.ErrExist) {
			continue
		} else if err != nil {
			return rename(src, dest)
		}
		if err = os.Remove(src); err != nil {
			return "", core.WrapError(err, core.EINTERNAL, "cannot remove %s", src)
		}
		return dest, nil
	}
	return "", core.Error(core.EEXISTS, "no free name for %s%s in %s", stem, ext, dir)
}

// rename is the fallback for file systems without hard links.
func rename(src, dest string) (string, error) {
	if _, err := os.Lstat(dest); err == nil {
		return "", core.Error(core.EEXISTS, "file %s exists, will not overwrite", dest)
	}
	if err := os.Rename(src, dest); err != nil {
		return "", core.WrapError(err, core.EINTERNAL, "cannot move %s", src)
	}
	return dest, nil
}

// putFree stores img under the first free name derived from stem.
func putFree(store *Store, stem, ext string, img image.Image) (string, error) {
	for n := 0; n < maxIterations; n++ {
		p, err := store.Put(iterationName(stem, ext, n), img)
		if core.Is(err, core.EEXISTS) {
			continue
		}
		return p, err
	}
	return "", core.Error(core.EEXISTS, "no free name for %s%s in %s", stem, ext, store.Dir)
}
