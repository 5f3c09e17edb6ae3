package port

import (
	"image"
	"io"
)

// Transcoder defines stateless, in-memory image transformations. No
// filesystem or network access.
type Transcoder interface {
	// Decode reads jpeg, png or webp bytes into an image.
	Decode(r io.Reader) (image.Image, error)
	// Resize fits the image inside maxWidth×maxHeight preserving aspect
	// ratio. Images already inside the box are returned untouched, never
	// enlarged.
	Resize(img image.Image, maxWidth, maxHeight int) image.Image
	// Encode re-encodes the image as lossy webp at the given quality.
	Encode(img image.Image, quality int) ([]byte, error)
}
