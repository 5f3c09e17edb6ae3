package transcoder

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/webp"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"github.com/venueo/media-pipeline-go/internal/port"
)

// WebPTranscoder decodes common raster formats and re-encodes to lossy
// WebP. All transformations run over in-memory buffers.
type WebPTranscoder struct{}

// compile-time check: *WebPTranscoder must satisfy port.Transcoder
var _ port.Transcoder = (*WebPTranscoder)(nil)

func NewWebPTranscoder() *WebPTranscoder {
	return &WebPTranscoder{}
}

func (t *WebPTranscoder) Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("transcoder: failed to decode image: %w", err)
	}
	return img, nil
}

// Resize fits the image inside the bounding box. imaging.Fit preserves the
// aspect ratio and leaves images already inside the box untouched.
func (t *WebPTranscoder) Resize(img image.Image, maxWidth, maxHeight int) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxWidth && b.Dy() <= maxHeight {
		return img
	}
	return imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
}

func (t *WebPTranscoder) Encode(img image.Image, quality int) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, fmt.Errorf("transcoder: failed to encode WebP: %w", err)
	}
	return buf.Bytes(), nil
}
