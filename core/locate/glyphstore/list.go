package glyphstore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/glyphscan/core"
	"github.com/npillmayer/glyphscan/core/raster"
)

// ListImages returns the paths of all raster images in dir, in natural
// order of their file names. Sub-directories and hidden files are skipped.
func ListImages(dir string) ([]string, error) {
	return listFiles(dir, raster.IsRasterFile)
}

// ListFiles returns the paths of all files in dir with extension ext
// (case-insensitive), in natural order.
func ListFiles(dir string, ext string) ([]string, error) {
	ext = strings.ToLower(ext)
	return listFiles(dir, func(name string) bool {
		return strings.ToLower(filepath.Ext(name)) == ext
	})
}

func listFiles(dir string, accept func(string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.WrapError(err, core.EMISSING, "directory %s not found", dir)
		}
		return nil, core.WrapError(err, core.EINTERNAL, "cannot read directory %s", dir)
	}
	files := treemap.NewWith(naturalComparator)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !accept(name) {
			continue
		}
		files.Put(name, filepath.Join(dir, name))
	}
	paths := make([]string, 0, files.Size())
	it := files.Iterator()
	for it.Next() {
		paths = append(paths, it.Value().(string))
	}
	tracer().Debugf("%d files in %s", len(paths), dir)
	return paths, nil
}

func naturalComparator(a, b interface{}) int {
	return NaturalCompare(a.(string), b.(string))
}

// NaturalCompare compares strings with runs of decimal digits compared by
// numeric value. Ties between equal values with different numbers of leading
// zeros, and all remaining ties, are broken by plain string comparison.
func NaturalCompare(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			si, sj := i, j
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			na := strings.TrimLeft(a[si:i], "0")
			nb := strings.TrimLeft(b[sj:j], "0")
			if len(na) != len(nb) {
				return sign(len(na) - len(nb))
			}
			if c := strings.Compare(na, nb); c != 0 {
				return c
			}
			continue
		}
		if ca != cb {
			return sign(int(ca) - int(cb))
		}
		i++
		j++
	}
	if i < len(a) {
		return 1
	}
	if j < len(b) {
		return -1
	}
	return strings.Compare(a, b)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
