package pdf

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Builder assembles a destination document from pages of other documents.
// Pages appear in the order they were appended.
type Builder struct {
	parts [][]byte
	pages int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// PageCount returns the number of pages appended so far.
func (b *Builder) PageCount() int {
	return b.pages
}

// AppendPages copies the pages of src at the zero-based indices in the given
// order. Indices may repeat or omit pages. When any index is out of range
// nothing is appended.
func (b *Builder) AppendPages(src *Document, indices []int) error {
	if len(indices) == 0 {
		return nil
	}

	n := src.PageCount()
	selected := make([]string, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= n {
			return fmt.Errorf("%w: index %d, document has %d pages", ErrIndexOutOfRange, idx, n)
		}
		selected[i] = strconv.Itoa(idx + 1)
	}

	if sequential(indices, n) {
		b.parts = append(b.parts, src.data)
		b.pages += n
		return nil
	}

	var buf bytes.Buffer
	if err := api.Collect(bytes.NewReader(src.data), &buf, selected, newConfig()); err != nil {
		return fmt.Errorf("%w: copy pages: %v", ErrWrite, err)
	}

	b.parts = append(b.parts, buf.Bytes())
	b.pages += len(indices)
	return nil
}

// AppendAll copies every page of src in its original order.
func (b *Builder) AppendAll(src *Document) error {
	indices := make([]int, src.PageCount())
	for i := range indices {
		indices[i] = i
	}
	return b.AppendPages(src, indices)
}

// Build returns the assembled document.
func (b *Builder) Build() (*Document, error) {
	if b.pages == 0 {
		return nil, ErrEmptyDocument
	}

	if len(b.parts) == 1 {
		return Load(b.parts[0])
	}

	readers := make([]io.ReadSeeker, len(b.parts))
	for i, part := range b.parts {
		readers[i] = bytes.NewReader(part)
	}

	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, newConfig()); err != nil {
		return nil, fmt.Errorf("%w: merge: %v", ErrWrite, err)
	}
	return Load(buf.Bytes())
}

func sequential(indices []int, n int) bool {
	if len(indices) != n {
		return false
	}
	for i, idx := range indices {
		if idx != i {
			return false
		}
	}
	return true
}
