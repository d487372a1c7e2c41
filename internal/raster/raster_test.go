package raster_test

import (
	"bytes"
	"crypto/rand"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/file-lab/internal/anchor"
	"github.com/JaimeStill/file-lab/internal/files"
	"github.com/JaimeStill/file-lab/internal/raster"
)

func solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, img image.Image, q int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: q}))
	return buf.Bytes()
}

func surface(t *testing.T, img image.Image) *raster.Surface {
	t.Helper()
	s, err := raster.NewSurface(img)
	require.NoError(t, err)
	return s
}

func TestDecode_SupportedFormats(t *testing.T) {
	src := gradient(64, 48)

	tests := []struct {
		name string
		data []byte
	}{
		{"png", encodePNG(t, src)},
		{"jpeg", encodeJPEG(t, src, 90)},
	}

	s := surface(t, src)
	webpData, err := raster.Encode(s, raster.WebP, 0.9)
	require.NoError(t, err)
	tests = append(tests, struct {
		name string
		data []byte
	}{"webp", webpData})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := raster.Decode(tt.data)
			require.NoError(t, err)
			assert.Equal(t, 64, got.Width())
			assert.Equal(t, 48, got.Height())
		})
	}
}

func TestDecode_CorruptInput(t *testing.T) {
	random := make([]byte, 512)
	_, _ = rand.Read(random)

	valid := encodePNG(t, gradient(32, 32))

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"zero bytes", []byte{}},
		{"random", random},
		{"truncated png", valid[:len(valid)/2]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := raster.Decode(tt.data)
			assert.ErrorIs(t, err, raster.ErrDecode)
			assert.Nil(t, got)
		})
	}
}

func TestEncode_Formats(t *testing.T) {
	s := surface(t, gradient(40, 30))

	for _, f := range []raster.Format{raster.JPEG, raster.PNG, raster.WebP, raster.GIF, raster.BMP, raster.TIFF} {
		t.Run(string(f), func(t *testing.T) {
			out, err := raster.Encode(s, f, 0.8)
			require.NoError(t, err)
			assert.Equal(t, f.MIME(), files.Detect(out))

			back, err := raster.Decode(out)
			require.NoError(t, err)
			assert.Equal(t, 40, back.Width())
			assert.Equal(t, 30, back.Height())
		})
	}
}

func TestEncode_Rejects(t *testing.T) {
	s := surface(t, gradient(8, 8))

	_, err := raster.Encode(s, raster.Format("avif"), 0.8)
	assert.ErrorIs(t, err, raster.ErrEncode)
	assert.ErrorIs(t, err, raster.ErrUnsupportedFormat)

	_, err = raster.Encode(s, raster.JPEG, 1.5)
	assert.ErrorIs(t, err, raster.ErrEncode)

	_, err = raster.Encode(nil, raster.PNG, 0.5)
	assert.ErrorIs(t, err, raster.ErrEncode)

	_, err = raster.NewSurface(image.NewNRGBA(image.Rect(0, 0, 0, 10)))
	assert.ErrorIs(t, err, raster.ErrEncode)
}

func TestEncode_JPEGQualityOrdersSize(t *testing.T) {
	s := surface(t, gradient(256, 256))

	low, err := raster.Encode(s, raster.JPEG, 0.2)
	require.NoError(t, err)
	high, err := raster.Encode(s, raster.JPEG, 0.95)
	require.NoError(t, err)

	assert.Less(t, len(low), len(high))
}

func TestCompress_SavingsLaw(t *testing.T) {
	data := encodePNG(t, gradient(200, 150))

	for _, q := range []float64{0.1, 0.5, 0.9} {
		res, err := raster.Compress(data, raster.JPEG, q)
		require.NoError(t, err)

		assert.Equal(t, int64(len(data)), res.OriginalSize)
		assert.Equal(t, int64(len(res.Output)), res.OutputSize)
		assert.Equal(t, files.Savings(res.OriginalSize, res.OutputSize), res.SavingsPercent)

		_, err = raster.Decode(res.Output)
		require.NoError(t, err)
		assert.Equal(t, files.MIMEJPEG, files.Detect(res.Output))
	}
}

func TestCompress_NeverReturnsInputOnFailure(t *testing.T) {
	res, err := raster.Compress([]byte("definitely not an image"), raster.JPEG, 0.8)
	assert.ErrorIs(t, err, raster.ErrDecode)
	assert.Nil(t, res)
}

func TestResizeToFrame_Letterbox(t *testing.T) {
	tests := []struct {
		name          string
		srcW, srcH    int
		frameW, frame int
	}{
		{"wide into square", 400, 100, 1080, 1080},
		{"tall into wide", 100, 400, 1500, 500},
		{"tiny upscaled", 3, 2, 1200, 630},
		{"exact ratio", 200, 100, 1000, 500},
		{"portrait pin", 1000, 1000, 1000, 1500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := surface(t, solid(tt.srcW, tt.srcH, color.NRGBA{R: 200, A: 255}))

			out, err := raster.ResizeToFrame(s, tt.frameW, tt.frame)
			require.NoError(t, err)
			assert.Equal(t, tt.frameW, out.Width())
			assert.Equal(t, tt.frame, out.Height())
		})
	}
}

func TestResizeToFrame_FillsWhiteAndNeverCrops(t *testing.T) {
	s := surface(t, solid(400, 100, color.NRGBA{R: 255, A: 255}))

	out, err := raster.ResizeToFrame(s, 400, 400)
	require.NoError(t, err)

	img := out.Image()
	top := color.NRGBAModel.Convert(img.At(200, 10)).(color.NRGBA)
	mid := color.NRGBAModel.Convert(img.At(200, 200)).(color.NRGBA)
	left := color.NRGBAModel.Convert(img.At(2, 200)).(color.NRGBA)

	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, top, "padding is white")
	assert.Equal(t, uint8(255), mid.R)
	assert.Less(t, mid.G, uint8(10), "content occupies the band")
	assert.Less(t, left.G, uint8(10), "content spans full width, nothing cropped")
}

func TestResizeToFrame_InvalidFrame(t *testing.T) {
	s := surface(t, gradient(10, 10))
	_, err := raster.ResizeToFrame(s, 0, 100)
	assert.ErrorIs(t, err, raster.ErrEncode)
}

func TestOverlayText_LeavesInputUntouched(t *testing.T) {
	src := solid(400, 300, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	s := surface(t, src)

	out, err := raster.OverlayText(s, raster.Watermark{
		Text:     "CONFIDENTIAL",
		Opacity:  0.5,
		Position: anchor.Center,
	})
	require.NoError(t, err)

	assert.Equal(t, 400, out.Width())
	assert.Equal(t, 300, out.Height())
	assert.Equal(t, src, s.Image(), "input surface is not modified")
	assert.NotEqual(t, s.Image(), out.Image(), "watermark changed some pixels")
}

func TestOverlayText_OpacityScopedToText(t *testing.T) {
	base := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	s := surface(t, solid(400, 300, base))

	out, err := raster.OverlayText(s, raster.Watermark{
		Text:     "Mark",
		Opacity:  0.3,
		Position: anchor.TopLeft,
	})
	require.NoError(t, err)

	far := color.NRGBAModel.Convert(out.Image().At(390, 290)).(color.NRGBA)
	assert.Equal(t, base, far, "pixels away from the text are unchanged")

	stamped, err := raster.OverlayImage(out, surface(t, solid(10, 10, color.NRGBA{G: 255, A: 255})), 1.0, anchor.BottomRight, 5)
	require.NoError(t, err)

	after := color.NRGBAModel.Convert(stamped.Image().At(390, 290)).(color.NRGBA)
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, after, "later draws are fully opaque")
}

func TestOverlayText_Invalid(t *testing.T) {
	s := surface(t, gradient(100, 100))

	tests := []struct {
		name string
		wm   raster.Watermark
		want error
	}{
		{"empty text", raster.Watermark{Opacity: 0.5}, raster.ErrInvalidOption},
		{"opacity", raster.Watermark{Text: "x", Opacity: 1.2}, raster.ErrInvalidOption},
		{"color", raster.Watermark{Text: "x", Opacity: 0.5, Color: "chartreuse-ish"}, raster.ErrInvalidOption},
		{"position", raster.Watermark{Text: "x", Opacity: 0.5, Position: "middle"}, anchor.ErrInvalidPosition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := raster.OverlayText(s, tt.wm)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOverlayImage_ScalesLargeMarks(t *testing.T) {
	s := surface(t, solid(1000, 1000, color.White))
	mark := surface(t, solid(800, 400, color.NRGBA{B: 255, A: 255}))

	out, err := raster.OverlayImage(s, mark, 1.0, anchor.TopLeft, 0)
	require.NoError(t, err)

	img := out.Image()
	inside := color.NRGBAModel.Convert(img.At(60, 60)).(color.NRGBA)
	beyond := color.NRGBAModel.Convert(img.At(50+310, 60)).(color.NRGBA)

	assert.Equal(t, uint8(255), inside.B)
	assert.Equal(t, uint8(0), inside.R)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, beyond, "mark limited to 30% of width")
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#FFFFFF", color.NRGBA{255, 255, 255, 255}},
		{"#f00", color.NRGBA{255, 0, 0, 255}},
		{"#80808080", color.NRGBA{128, 128, 128, 128}},
		{"rgb(1, 2, 3)", color.NRGBA{1, 2, 3, 255}},
		{"rgba(0,0,0,0.5)", color.NRGBA{0, 0, 0, 128}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := raster.ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := raster.ParseColor("#12345")
	assert.ErrorIs(t, err, raster.ErrInvalidOption)
}

func TestParseFormat(t *testing.T) {
	tests := map[string]raster.Format{
		"jpg":        raster.JPEG,
		"image/jpeg": raster.JPEG,
		".PNG":       raster.PNG,
		"webp":       raster.WebP,
		"tif":        raster.TIFF,
	}

	for in, want := range tests {
		got, err := raster.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := raster.ParseFormat("heic")
	assert.ErrorIs(t, err, raster.ErrUnsupportedFormat)
	assert.Equal(t, raster.JPEG, raster.FormatOf("image/heic"))
}
