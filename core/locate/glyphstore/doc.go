/*
Package glyphstore persists glyph images and vector documents in plain
directories.

A store is a directory into which single files are written. Writes are
non-overwriting unless the store has been opened for replacement: a file
that already exists is an error (core.EEXISTS), so a repeated segmentation run
never silently clobbers curated glyphs.

Listing a directory yields its raster images in natural order, i.e. numeric
runs within file names are compared by value, and “char_2.png” sorts before
“char_10.png”.

Images are loaded in an async/await fashion: ResolveImage returns a promise,
which the client will call later to receive the decoded image. The call to the
promise will then block until loading has completed or its context is done.

The package also provides the file operations of glyph curation: labeling a
glyph with the character it shows, splitting an image holding several
characters, and discarding noise into a bin directory.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package glyphstore

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphscan.store'
func tracer() tracing.Trace {
	return tracing.Select("glyphscan.store")
}
