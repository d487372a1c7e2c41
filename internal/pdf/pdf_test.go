package pdf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/file-lab/internal/anchor"
	"github.com/JaimeStill/file-lab/internal/files"
	"github.com/JaimeStill/file-lab/internal/pdf"
	"github.com/JaimeStill/file-lab/internal/pdf/pdftest"
)

func widths(t *testing.T, data []byte) []float64 {
	t.Helper()
	doc, err := pdf.Load(data)
	require.NoError(t, err)

	sizes, err := doc.PageSizes()
	require.NoError(t, err)

	out := make([]float64, len(sizes))
	for i, s := range sizes {
		out[i] = s.Width
	}
	return out
}

func TestLoad(t *testing.T) {
	doc, err := pdf.Load(pdftest.New(3))
	require.NoError(t, err)
	assert.Equal(t, 3, doc.PageCount())

	sizes, err := doc.PageSizes()
	require.NoError(t, err)
	require.Len(t, sizes, 3)
	for i, s := range sizes {
		assert.InDelta(t, pdftest.Width(i), s.Width, 0.01)
		assert.InDelta(t, 300, s.Height, 0.01)
	}
}

func TestLoad_Corrupt(t *testing.T) {
	valid := pdftest.New(2)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"random", []byte("definitely not a pdf document at all")},
		{"truncated", valid[:len(valid)/3]},
		{"image", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pdf.Load(tt.data)
			require.ErrorIs(t, err, pdf.ErrParse)
		})
	}
}

func TestMerge_ConcatenatesInOrder(t *testing.T) {
	a := pdftest.New(2)
	b := pdftest.Build(pdftest.Options{}, pdftest.Page{Width: 500, Height: 400, Label: "only"})

	out, err := pdf.Merge([][]byte{a, b})
	require.NoError(t, err)

	got := widths(t, out)
	require.Len(t, got, 3)
	assert.InDelta(t, 200, got[0], 0.01)
	assert.InDelta(t, 210, got[1], 0.01)
	assert.InDelta(t, 500, got[2], 0.01)

	out, err = pdf.Merge([][]byte{b, a})
	require.NoError(t, err)

	got = widths(t, out)
	require.Len(t, got, 3)
	assert.InDelta(t, 500, got[0], 0.01)
	assert.InDelta(t, 200, got[1], 0.01)
	assert.InDelta(t, 210, got[2], 0.01)
}

func TestMerge_AbortsOnBadInput(t *testing.T) {
	_, err := pdf.Merge([][]byte{pdftest.New(1), []byte("garbage"), pdftest.New(1)})
	require.ErrorIs(t, err, pdf.ErrParse)
	assert.Contains(t, err.Error(), "input 1")
}

func TestMerge_NoInputs(t *testing.T) {
	_, err := pdf.Merge(nil)
	require.ErrorIs(t, err, pdf.ErrEmptyDocument)
}

func TestSplit(t *testing.T) {
	src := pdftest.New(3)

	tests := []struct {
		name    string
		indices []int
	}{
		{"subset", []int{0, 2}},
		{"reorder", []int{2, 1, 0}},
		{"duplicates", []int{1, 1, 0, 1}},
		{"identity", []int{0, 1, 2}},
		{"single", []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := pdf.Split(src, tt.indices)
			require.NoError(t, err)

			got := widths(t, out)
			require.Len(t, got, len(tt.indices))
			for i, idx := range tt.indices {
				assert.InDelta(t, pdftest.Width(idx), got[i], 0.01)
			}
		})
	}
}

func TestSplit_Idempotent(t *testing.T) {
	src := pdftest.New(4)

	once, err := pdf.Split(src, []int{0, 1, 2, 3})
	require.NoError(t, err)
	twice, err := pdf.Split(once, []int{0, 1, 2, 3})
	require.NoError(t, err)

	assert.Equal(t, widths(t, src), widths(t, once))
	assert.Equal(t, widths(t, once), widths(t, twice))
}

func TestSplit_Errors(t *testing.T) {
	src := pdftest.New(2)

	_, err := pdf.Split(src, []int{0, 2})
	require.ErrorIs(t, err, pdf.ErrIndexOutOfRange)

	_, err = pdf.Split(src, []int{-1})
	require.ErrorIs(t, err, pdf.ErrIndexOutOfRange)

	_, err = pdf.Split(src, nil)
	require.ErrorIs(t, err, pdf.ErrEmptyDocument)

	_, err = pdf.Split([]byte("nope"), []int{0})
	require.ErrorIs(t, err, pdf.ErrParse)
}

func TestBuilder(t *testing.T) {
	a, err := pdf.Load(pdftest.New(2))
	require.NoError(t, err)
	b, err := pdf.Load(pdftest.New(3))
	require.NoError(t, err)

	builder := pdf.NewBuilder()
	_, err = builder.Build()
	require.ErrorIs(t, err, pdf.ErrEmptyDocument)

	require.NoError(t, builder.AppendPages(b, []int{2}))
	require.NoError(t, builder.AppendAll(a))
	assert.Equal(t, 3, builder.PageCount())

	err = builder.AppendPages(a, []int{0, 5})
	require.ErrorIs(t, err, pdf.ErrIndexOutOfRange)
	assert.Equal(t, 3, builder.PageCount())

	doc, err := builder.Build()
	require.NoError(t, err)

	out, err := doc.Save(pdf.SaveOptions{})
	require.NoError(t, err)
	assert.Equal(t, []float64{220, 200, 210}, widths(t, out))
}

func TestCompress(t *testing.T) {
	src := pdftest.New(3)

	t.Run("low scales pages", func(t *testing.T) {
		res, err := pdf.Compress(src, pdf.QualityLow)
		require.NoError(t, err)

		got := widths(t, res.Output)
		require.Len(t, got, 3)
		for i, w := range got {
			assert.InDelta(t, pdftest.Width(i)*pdf.LowQualityScale, w, 0.5)
		}
	})

	for _, q := range []pdf.Quality{pdf.QualityMedium, pdf.QualityHigh} {
		t.Run(string(q)+" keeps pages", func(t *testing.T) {
			res, err := pdf.Compress(src, q)
			require.NoError(t, err)
			assert.Equal(t, q, res.Quality)
			assert.Equal(t, widths(t, src), widths(t, res.Output))
		})
	}

	t.Run("savings law", func(t *testing.T) {
		res, err := pdf.Compress(src, pdf.QualityMedium)
		require.NoError(t, err)
		assert.Equal(t, int64(len(src)), res.OriginalSize)
		assert.Equal(t, int64(len(res.Output)), res.OutputSize)
		assert.Equal(t, files.Savings(res.OriginalSize, res.OutputSize), res.SavingsPercent)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := pdf.Compress(src, "extreme")
		require.ErrorIs(t, err, pdf.ErrInvalidOption)

		_, err = pdf.Compress([]byte("x"), pdf.QualityLow)
		require.ErrorIs(t, err, pdf.ErrParse)
	})
}

func TestParseQuality(t *testing.T) {
	q, err := pdf.ParseQuality("")
	require.NoError(t, err)
	assert.Equal(t, pdf.QualityMedium, q)

	q, err = pdf.ParseQuality(" LOW ")
	require.NoError(t, err)
	assert.Equal(t, pdf.QualityLow, q)

	_, err = pdf.ParseQuality("ultra")
	require.ErrorIs(t, err, pdf.ErrInvalidOption)
}

func TestScalePages_Invalid(t *testing.T) {
	doc, err := pdf.Load(pdftest.New(1))
	require.NoError(t, err)

	for _, f := range []float64{0, -1, 10.5} {
		_, err := doc.ScalePages(f)
		require.ErrorIs(t, err, pdf.ErrInvalidOption)
	}

	same, err := doc.ScalePages(1)
	require.NoError(t, err)
	assert.Same(t, doc, same)
}

func TestWatermark(t *testing.T) {
	src := pdftest.Build(pdftest.Options{},
		pdftest.Page{Width: 612, Height: 792, Label: "letter"},
		pdftest.Page{Width: 842, Height: 595, Label: "a4 landscape"},
	)

	for _, pos := range anchor.Positions {
		t.Run(string(pos), func(t *testing.T) {
			out, err := pdf.Watermark(src, pdf.WatermarkOptions{
				Text:     "CONFIDENTIAL",
				Opacity:  0.5,
				Position: pos,
			})
			require.NoError(t, err)
			assert.Equal(t, widths(t, src), widths(t, out))
		})
	}
}

func TestWatermark_Invalid(t *testing.T) {
	src := pdftest.New(1)

	_, err := pdf.Watermark(src, pdf.WatermarkOptions{Opacity: 0.5})
	require.ErrorIs(t, err, pdf.ErrInvalidOption)

	_, err = pdf.Watermark(src, pdf.WatermarkOptions{Text: "x", Opacity: 0.5, Position: "middle"})
	require.ErrorIs(t, err, anchor.ErrInvalidPosition)

	_, err = pdf.Watermark(src, pdf.WatermarkOptions{Text: "x", Opacity: 1.5})
	require.ErrorIs(t, err, pdf.ErrInvalidOption)

	_, err = pdf.Watermark([]byte("x"), pdf.WatermarkOptions{Text: "x", Opacity: 0.5})
	require.ErrorIs(t, err, pdf.ErrParse)
}

func TestTextWidth(t *testing.T) {
	short := pdf.TextWidth("ab", pdf.DefaultFontSize)
	long := pdf.TextWidth("abcdef", pdf.DefaultFontSize)
	assert.Greater(t, short, 0.0)
	assert.Greater(t, long, short)
}

func TestProtect_Encrypt(t *testing.T) {
	src := pdftest.New(3)

	res, err := pdf.Protect(src, pdf.ProtectOptions{
		Mode:         pdf.ModeEncrypt,
		UserPassword: "Secret#2024x",
	})
	require.NoError(t, err)
	assert.True(t, res.Info.Encrypted)
	assert.Equal(t, "AES-256", res.Info.Algorithm)
	assert.Equal(t, pdf.PermissionsNone, res.Info.Permissions)
	assert.Equal(t, pdf.StrengthStrong, res.Info.Strength)
	assert.Equal(t, int64(len(res.Output)), res.Info.OutputSize)

	_, err = pdf.Load(res.Output)
	require.ErrorIs(t, err, pdf.ErrParse)

	doc, err := pdf.LoadWithPassword(res.Output, "Secret#2024x")
	require.NoError(t, err)
	assert.Equal(t, 3, doc.PageCount())
}

func TestProtect_Passthrough(t *testing.T) {
	res, err := pdf.Protect(pdftest.New(2), pdf.ProtectOptions{
		Mode:         pdf.ModePassthrough,
		UserPassword: "hunter",
	})
	require.NoError(t, err)
	assert.False(t, res.Info.Encrypted)
	assert.Equal(t, pdf.NoticePassthrough, res.Info.Notice)
	assert.Empty(t, res.Info.Algorithm)

	doc, err := pdf.Load(res.Output)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.PageCount())
}

func TestProtect_Invalid(t *testing.T) {
	src := pdftest.New(1)

	_, err := pdf.Protect(src, pdf.ProtectOptions{UserPassword: "longenough"})
	require.ErrorIs(t, err, pdf.ErrInvalidProtection)

	_, err = pdf.Protect(src, pdf.ProtectOptions{Mode: pdf.ModeEncrypt, UserPassword: "abc"})
	require.ErrorIs(t, err, pdf.ErrWeakPassword)

	_, err = pdf.Protect(src, pdf.ProtectOptions{Mode: pdf.ModeEncrypt, UserPassword: "abcd", Permissions: "some"})
	require.ErrorIs(t, err, pdf.ErrInvalidOption)

	_, err = pdf.Protect([]byte("x"), pdf.ProtectOptions{Mode: pdf.ModePassthrough, UserPassword: "abcd"})
	require.ErrorIs(t, err, pdf.ErrParse)
}

func TestParseMode(t *testing.T) {
	m, err := pdf.ParseMode("Encrypt")
	require.NoError(t, err)
	assert.Equal(t, pdf.ModeEncrypt, m)

	_, err = pdf.ParseMode("")
	require.ErrorIs(t, err, pdf.ErrInvalidProtection)
}

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		pw   string
		want pdf.Strength
	}{
		{"abc", pdf.StrengthWeak},
		{"abcde", pdf.StrengthWeak},
		{"abcdef", pdf.StrengthGood},
		{"Abcdef1!", pdf.StrengthGood},
		{"abcdefghijkl", pdf.StrengthGood},
		{"Abcdefghij1", pdf.StrengthGood},
		{"Abcdefghi1!", pdf.StrengthStrong},
	}

	for _, tt := range tests {
		t.Run(tt.pw, func(t *testing.T) {
			assert.Equal(t, tt.want, pdf.PasswordStrength(tt.pw))
		})
	}
}

func TestInfo(t *testing.T) {
	doc, err := pdf.Load(pdftest.New(2))
	require.NoError(t, err)

	info, err := doc.Info()
	require.NoError(t, err)
	assert.Equal(t, 2, info.PageCount)
	assert.Len(t, info.PageSizes, 2)
	assert.False(t, info.Encrypted)
	assert.NotEmpty(t, info.Version)
}

func TestPageCount(t *testing.T) {
	n, err := pdf.PageCount(pdftest.New(5))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}
