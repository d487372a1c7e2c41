// Package pdf loads, edits, and serializes PDF documents.
//
// A Document is immutable: every edit (scaling pages, drawing text, copying
// pages into a Builder) produces a new Document from freshly serialized bytes.
// All object graph work is delegated to pdfcpu.
package pdf

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

func newConfig() *model.Configuration {
	disableConfigDir.Do(api.DisableConfigDir)
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Size is a page size in points.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Document is a parsed PDF together with the bytes it was parsed from and
// the password that opened it, which every re-read of those bytes reuses.
type Document struct {
	ctx      *model.Context
	data     []byte
	password string
}

// Load parses data. Empty, truncated, non-PDF, and password-protected input
// fail with ErrParse, as does a document without pages.
func Load(data []byte) (*Document, error) {
	return LoadWithPassword(data, "")
}

// LoadWithPassword parses data, decrypting it with password when the
// document is encrypted.
func LoadWithPassword(data []byte, password string) (*Document, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty buffer", ErrParse)
	}

	doc := &Document{data: data, password: password}

	ctx, err := read(data, doc.config())
	if err != nil {
		return nil, err
	}

	if ctx.PageCount < 1 {
		return nil, fmt.Errorf("%w: document has no pages", ErrParse)
	}

	doc.ctx = ctx
	return doc, nil
}

func (d *Document) config() *model.Configuration {
	conf := newConfig()
	if d.password != "" {
		conf.UserPW = d.password
	}
	return conf
}

func read(data []byte, conf *model.Configuration) (*model.Context, error) {
	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return ctx, nil
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return d.ctx.PageCount
}

// PageSizes returns the effective size of every page in order.
func (d *Document) PageSizes() ([]Size, error) {
	dims, err := d.ctx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("%w: page dimensions: %v", ErrParse, err)
	}

	sizes := make([]Size, len(dims))
	for i, dim := range dims {
		sizes[i] = Size{Width: dim.Width, Height: dim.Height}
	}
	return sizes, nil
}

// Bytes returns the serialized form the document was loaded from.
func (d *Document) Bytes() []byte {
	return d.data
}

// SaveOptions controls serialization.
type SaveOptions struct {
	// UseObjectStreams packs objects and the cross-reference table into
	// compressed streams.
	UseObjectStreams bool
}

// Save serializes the document. A document opened with a password keeps
// its encryption.
func (d *Document) Save(opts SaveOptions) ([]byte, error) {
	conf := d.config()
	conf.WriteObjectStream = opts.UseObjectStreams
	conf.WriteXRefStream = opts.UseObjectStreams

	ctx, err := read(d.data, conf)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := api.WriteContext(ctx, &buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return buf.Bytes(), nil
}

// PageCount parses data and returns its page count.
func PageCount(data []byte) (int, error) {
	doc, err := Load(data)
	if err != nil {
		return 0, err
	}
	return doc.PageCount(), nil
}
