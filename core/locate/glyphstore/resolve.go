package glyphstore

import (
	"context"
	"image"

	"github.com/npillmayer/glyphscan/core/raster"
)

// ImagePromise delivers an image which is loaded in the background.
type ImagePromise interface {
	// Image blocks until the image is decoded or ctx is done.
	Image(ctx context.Context) (image.Image, error)
}

type imgPlusErr struct {
	img image.Image
	err error
}

type imageLoader struct {
	await func(ctx context.Context) (image.Image, error)
}

func (loader imageLoader) Image(ctx context.Context) (image.Image, error) {
	return loader.await(ctx)
}

// ResolveImage starts decoding the raster image at path. Decoding errors
// are delivered by the promise, with the codes of raster.Load.
func ResolveImage(path string) ImagePromise {
	ch := make(chan imgPlusErr, 1)
	go func(ch chan<- imgPlusErr) {
		result := imgPlusErr{}
		result.img, result.err = raster.Load(path)
		ch <- result
		close(ch)
	}(ch)
	return imageLoader{
		await: func(ctx context.Context) (image.Image, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r := <-ch:
				return r.img, r.err
			}
		},
	}
}
