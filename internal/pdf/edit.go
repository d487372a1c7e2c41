package pdf

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/font"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// FontName is the standard font used for all drawn text.
const FontName = "Helvetica"

// MaxScale bounds ScalePages factors.
const MaxScale = 10

// TextStamp is a run of text drawn at a baseline position in points.
type TextStamp struct {
	Text     string
	X        float64
	Y        float64
	FontSize int
	Color    color.Color
	Opacity  float64
}

// TextWidth returns the advance width of text set in FontName at size.
func TextWidth(text string, size int) float64 {
	return font.TextWidth(text, FontName, size)
}

// ScalePages scales every page and its content uniformly by factor.
func (d *Document) ScalePages(factor float64) (*Document, error) {
	if factor <= 0 || factor > MaxScale || math.IsNaN(factor) {
		return nil, fmt.Errorf("%w: scale factor %g must be in (0, %d]", ErrInvalidOption, factor, MaxScale)
	}
	if factor == 1 {
		return d, nil
	}

	res := &model.Resize{
		Scale: factor,
		Unit:  types.POINTS,
	}

	var buf bytes.Buffer
	if err := api.Resize(bytes.NewReader(d.data), &buf, nil, res, d.config()); err != nil {
		return nil, fmt.Errorf("%w: scale pages: %v", ErrWrite, err)
	}
	return LoadWithPassword(buf.Bytes(), d.password)
}

// DrawText stamps text onto pages. Keys are one-based page numbers. The
// stamp's baseline starts at (X, Y) measured from the lower-left corner of
// the page's media box. Text is never rotated, and opacity applies to the
// stamp only: existing content is isolated in its own graphics state and
// the stamp restores the state it changed.
func (d *Document) DrawText(stamps map[int]TextStamp) (*Document, error) {
	if len(stamps) == 0 {
		return d, nil
	}

	for page, st := range stamps {
		if page < 1 || page > d.PageCount() {
			return nil, fmt.Errorf("%w: page %d, document has %d pages", ErrIndexOutOfRange, page, d.PageCount())
		}
		if err := st.validate(); err != nil {
			return nil, err
		}
	}

	ctx, err := read(d.data, d.config())
	if err != nil {
		return nil, err
	}

	s := &stamper{ctx: ctx, states: make(map[string]types.IndirectRef)}
	for page, st := range stamps {
		if err := s.stamp(page, st); err != nil {
			return nil, fmt.Errorf("%w: draw text on page %d: %v", ErrWrite, page, err)
		}
	}

	var buf bytes.Buffer
	if err := api.WriteContext(ctx, &buf); err != nil {
		return nil, fmt.Errorf("%w: draw text: %v", ErrWrite, err)
	}
	return LoadWithPassword(buf.Bytes(), d.password)
}

func (st TextStamp) validate() error {
	if st.Text == "" {
		return fmt.Errorf("%w: text is required", ErrInvalidOption)
	}
	if st.FontSize <= 0 {
		return fmt.Errorf("%w: font size %d must be positive", ErrInvalidOption, st.FontSize)
	}
	if st.Opacity < 0 || st.Opacity > 1 || math.IsNaN(st.Opacity) {
		return fmt.Errorf("%w: opacity %g must be in [0, 1]", ErrInvalidOption, st.Opacity)
	}
	return nil
}

// stamper appends text objects to page content streams of one context,
// sharing a single font object and one graphics state per opacity.
type stamper struct {
	ctx    *model.Context
	font   *types.IndirectRef
	states map[string]types.IndirectRef
}

func (s *stamper) stamp(page int, st TextStamp) error {
	pageDict, _, inherited, err := s.ctx.PageDict(page, false)
	if err != nil {
		return err
	}

	res, err := s.resources(pageDict, inherited)
	if err != nil {
		return err
	}

	fontRef, err := s.fontRef()
	if err != nil {
		return err
	}
	gsRef, err := s.stateRef(st.Opacity)
	if err != nil {
		return err
	}

	fonts, err := s.subDict(res, "Font")
	if err != nil {
		return err
	}
	states, err := s.subDict(res, "ExtGState")
	if err != nil {
		return err
	}

	fontID := fonts.NewIDForPrefix("FLF", 0)
	fonts.Insert(fontID, *fontRef)
	gsID := states.NewIDForPrefix("FLGS", 0)
	states.Insert(gsID, gsRef)

	var x, y float64
	if inherited != nil && inherited.MediaBox != nil {
		x, y = inherited.MediaBox.LL.X, inherited.MediaBox.LL.Y
	}

	n := color.NRGBAModel.Convert(fill(st.Color)).(color.NRGBA)
	content := fmt.Sprintf("Q q /%s gs %.4f %.4f %.4f rg BT /%s %d Tf %.2f %.2f Td (%s) Tj ET Q",
		gsID,
		float64(n.R)/255, float64(n.G)/255, float64(n.B)/255,
		fontID, st.FontSize,
		x+st.X, y+st.Y,
		literal(st.Text),
	)

	return s.wrapContents(pageDict, content)
}

// resources returns the page's own resource dictionary, materializing the
// inherited one on the page when it has none.
func (s *stamper) resources(pageDict types.Dict, inherited *model.InheritedPageAttrs) (types.Dict, error) {
	if obj, found := pageDict.Find("Resources"); found && obj != nil {
		res, err := s.ctx.DereferenceDict(obj)
		if err != nil || res != nil {
			return res, err
		}
	}

	res := types.NewDict()
	if inherited != nil {
		for k, v := range inherited.Resources {
			res[k] = v
		}
	}
	pageDict.Update("Resources", res)
	return res, nil
}

func (s *stamper) subDict(res types.Dict, key string) (types.Dict, error) {
	obj, found := res.Find(key)
	if !found || obj == nil {
		d := types.NewDict()
		res.Update(key, d)
		return d, nil
	}

	d, err := s.ctx.DereferenceDict(obj)
	if err != nil {
		return nil, err
	}
	if d == nil {
		d = types.NewDict()
		res.Update(key, d)
	}
	return d, nil
}

func (s *stamper) fontRef() (*types.IndirectRef, error) {
	if s.font != nil {
		return s.font, nil
	}

	d := types.NewDict()
	d.InsertName("Type", "Font")
	d.InsertName("Subtype", "Type1")
	d.InsertName("BaseFont", FontName)
	d.InsertName("Encoding", "WinAnsiEncoding")

	ref, err := s.ctx.IndRefForNewObject(d)
	if err != nil {
		return nil, err
	}
	s.font = ref
	return ref, nil
}

func (s *stamper) stateRef(opacity float64) (types.IndirectRef, error) {
	key := fmt.Sprintf("%.4f", opacity)
	if ref, ok := s.states[key]; ok {
		return ref, nil
	}

	d := types.NewDict()
	d.InsertName("Type", "ExtGState")
	d.Insert("ca", types.Float(opacity))
	d.Insert("CA", types.Float(opacity))

	ref, err := s.ctx.IndRefForNewObject(d)
	if err != nil {
		return types.IndirectRef{}, err
	}
	s.states[key] = *ref
	return *ref, nil
}

// wrapContents brackets the existing page content in q/Q and appends stamp,
// which must begin by closing that bracket.
func (s *stamper) wrapContents(pageDict types.Dict, stamp string) error {
	var existing types.Array

	if obj, found := pageDict.Find("Contents"); found && obj != nil {
		deref, err := s.ctx.Dereference(obj)
		if err != nil {
			return err
		}
		switch o := deref.(type) {
		case types.Array:
			existing = o
		case types.StreamDict:
			ref, ok := obj.(types.IndirectRef)
			if !ok {
				return fmt.Errorf("page contents stream is not an indirect object")
			}
			existing = types.Array{ref}
		case nil:
		default:
			return fmt.Errorf("unexpected page contents %T", deref)
		}
	}

	pre, err := s.stream("q")
	if err != nil {
		return err
	}
	post, err := s.stream(stamp)
	if err != nil {
		return err
	}

	contents := make(types.Array, 0, len(existing)+2)
	contents = append(contents, *pre)
	contents = append(contents, existing...)
	contents = append(contents, *post)
	pageDict.Update("Contents", contents)
	return nil
}

func (s *stamper) stream(content string) (*types.IndirectRef, error) {
	sd, err := s.ctx.NewStreamDictForBuf([]byte(content))
	if err != nil {
		return nil, err
	}
	if err := sd.Encode(); err != nil {
		return nil, err
	}
	return s.ctx.IndRefForNewObject(*sd)
}

// literal encodes text as the body of a PDF string literal in WinAnsi.
func literal(text string) string {
	raw := model.DecodeUTF8ToByte(text)

	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '(' || c == ')' || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c < 0x20 || c > 0x7E:
			fmt.Fprintf(&b, "\\%03o", c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func fill(c color.Color) color.Color {
	if c == nil {
		return DefaultColor
	}
	return c
}
