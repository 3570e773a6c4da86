package glyphstore

import (
	"bufio"
	"errors"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/npillmayer/glyphscan/core"
)

// Store is a directory of glyph files.
type Store struct {
	Dir       string
	Overwrite bool // replace existing files instead of refusing to write
}

// Open checks and possibly creates directory dir (with permissions 755),
// including non-existing parent directories.
func Open(dir string, overwrite bool) (*Store, error) {
	if dir == "" {
		return nil, core.Error(core.EINVALID, "store directory not set")
	}
	fi, err := os.Stat(dir)
	if os.IsNotExist(err) {
		tracer().Debugf("creating store directory %s", dir)
		if err = os.MkdirAll(dir, 0755); err != nil {
			return nil, core.WrapError(err, core.EINTERNAL, "cannot create directory %s", dir)
		}
	} else if err != nil {
		return nil, core.WrapError(err, core.EINTERNAL, "cannot access directory %s", dir)
	} else if !fi.IsDir() {
		return nil, core.Error(core.EINVALID, "%s is not a directory", dir)
	}
	return &Store{Dir: dir, Overwrite: overwrite}, nil
}

// Path returns the path of file name within the store.
func (s *Store) Path(name string) string {
	return filepath.Join(s.Dir, name)
}

// Put writes img as a PNG file. It returns the path of the new file.
func (s *Store) Put(name string, img image.Image) (string, error) {
	f, path, err := s.create(name)
	if err != nil {
		return "", err
	}
	w := bufio.NewWriter(f)
	err = png.Encode(w, img)
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", core.WrapError(err, core.EINTERNAL, "cannot write image %s", path)
	}
	tracer().Debugf("stored %s", path)
	return path, nil
}

// PutBytes writes data to file name. It returns the path of the new file.
func (s *Store) PutBytes(name string, data []byte) (string, error) {
	f, path, err := s.create(name)
	if err != nil {
		return "", err
	}
	_, err = f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", core.WrapError(err, core.EINTERNAL, "cannot write %s", path)
	}
	tracer().Debugf("stored %s", path)
	return path, nil
}

func (s *Store) create(name string) (*os.File, string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, "", core.Error(core.EINVALID, "invalid file name %q", name)
	}
	path := s.Path(name)
	flags := os.O_WRONLY | os.O_CREATE
	if s.Overwrite {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0644)
	if errors.Is(err, fs.ErrExist) {
		return nil, path, core.WrapError(err, core.EEXISTS, "file %s exists, will not overwrite", path)
	} else if err != nil {
		return nil, path, core.WrapError(err, core.EINTERNAL, "cannot create %s", path)
	}
	return f, path, nil
}

// SegmentDirName is the name of the directory receiving the glyphs of page:
// cropped_<basename without extension>_characters.
func SegmentDirName(page string) string {
	base := filepath.Base(page)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return "cropped_" + base + "_characters"
}

// GlyphName is the file name of the glyph with a given index.
func GlyphName(index int) string {
	return "char_" + strconv.Itoa(index) + ".png"
}
