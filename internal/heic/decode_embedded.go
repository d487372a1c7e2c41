//go:build !heic

package heic

import (
	"bytes"
	"fmt"
	"image"

	wasm "github.com/gen2brain/heic"
)

// Decoder names the linked decoder. The default build needs no cgo.
func Decoder() string {
	return "embedded"
}

// decode returns the primary image. The embedded decoder exposes no other
// images of a multi-image container.
func decode(data []byte) (image.Image, error) {
	img, err := wasm.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	return img, nil
}
