//go:build heic

package heic

import (
	"fmt"
	"image"

	"github.com/strukturag/libheif-go"
)

// Decoder names the linked decoder.
func Decoder() string {
	return "libheif"
}

func decode(data []byte) (image.Image, error) {
	ctx, err := libheif.NewContext()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	if err := ctx.ReadFromMemory(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	handle, err := firstHandle(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	decoded, err := handle.DecodeImage(libheif.ColorspaceRGB, libheif.ChromaInterleavedRGB, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	img, err := decoded.GetImage()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	return img, nil
}

func firstHandle(ctx *libheif.Context) (*libheif.ImageHandle, error) {
	if ids := ctx.GetListOfTopLevelImageIDs(); len(ids) > 0 {
		return ctx.GetImageHandle(ids[0])
	}
	return ctx.GetPrimaryImageHandle()
}
