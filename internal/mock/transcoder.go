package mock

import (
	"image"
	"io"
)

// Transcoder implements the transcoder interface for tests. EncodeSizes
// maps a quality to the byte length of the fake output, so compression
// behaviour can be scripted without a codec.
type Transcoder struct {
	DecodeOut   image.Image
	ResizeOut   image.Image
	EncodeOut   []byte
	EncodeSizes map[int]int

	DecodeErr error
	EncodeErr error

	DecodeCalled    bool
	ResizeCalled    bool
	ResizeMaxWidth  int
	ResizeMaxHeight int
	EncodeQualities []int
}

func (m *Transcoder) Decode(r io.Reader) (image.Image, error) {
	m.DecodeCalled = true
	if m.DecodeErr != nil {
		return nil, m.DecodeErr
	}
	if m.DecodeOut != nil {
		return m.DecodeOut, nil
	}
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

func (m *Transcoder) Resize(img image.Image, maxWidth, maxHeight int) image.Image {
	m.ResizeCalled = true
	m.ResizeMaxWidth = maxWidth
	m.ResizeMaxHeight = maxHeight
	if m.ResizeOut != nil {
		return m.ResizeOut
	}
	return img
}

func (m *Transcoder) Encode(img image.Image, quality int) ([]byte, error) {
	m.EncodeQualities = append(m.EncodeQualities, quality)
	if m.EncodeErr != nil {
		return nil, m.EncodeErr
	}
	if m.EncodeSizes != nil {
		return make([]byte, m.EncodeSizes[quality]), nil
	}
	if m.EncodeOut != nil {
		return m.EncodeOut, nil
	}
	return []byte("webp"), nil
}
