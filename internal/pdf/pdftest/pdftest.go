// Package pdftest builds small, valid PDF files in memory for tests.
//
// Every page gets its own MediaBox so tests can identify pages after copy,
// merge, or reorder operations by their dimensions alone.
package pdftest

import (
	"bytes"
	"fmt"
	"strings"
)

// Page describes one generated page in points.
type Page struct {
	Width  float64
	Height float64
	Label  string
}

// Options controls optional document metadata.
type Options struct {
	Title  string
	Author string
}

// Pages returns n pages with distinct widths: page i (zero-based) is
// (200+10i) x 300 points and labelled "page <i+1>".
func Pages(n int) []Page {
	pages := make([]Page, n)
	for i := range pages {
		pages[i] = Page{
			Width:  Width(i),
			Height: 300,
			Label:  fmt.Sprintf("page %d", i+1),
		}
	}
	return pages
}

// Width is the MediaBox width Pages assigns to the zero-based index i.
func Width(i int) float64 {
	return 200 + float64(i)*10
}

// New builds a document with n pages as produced by Pages.
func New(n int) []byte {
	return Build(Options{}, Pages(n)...)
}

// Build writes a PDF 1.4 file with a classic cross-reference table.
func Build(opts Options, pages ...Page) []byte {
	w := &writer{}
	w.buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	const (
		catalogID = 1
		pagesID   = 2
		fontID    = 3
	)
	first := 4
	infoID := first + 2*len(pages)

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", first+2*i)
	}

	w.object(catalogID, fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", pagesID))
	w.object(pagesID, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	w.object(fontID, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	for i, p := range pages {
		pageID := first + 2*i
		contentID := pageID + 1

		w.object(pageID, fmt.Sprintf(
			"<< /Type /Page /Parent %d 0 R /MediaBox [0 0 %s %s] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
			pagesID, num(p.Width), num(p.Height), fontID, contentID,
		))

		content := fmt.Sprintf("BT /F1 12 Tf 20 20 Td (%s) Tj ET", escape(p.Label))
		w.object(contentID, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	size := infoID
	info := ""
	if opts.Title != "" || opts.Author != "" {
		var fields []string
		if opts.Title != "" {
			fields = append(fields, fmt.Sprintf("/Title (%s)", escape(opts.Title)))
		}
		if opts.Author != "" {
			fields = append(fields, fmt.Sprintf("/Author (%s)", escape(opts.Author)))
		}
		w.object(infoID, fmt.Sprintf("<< %s >>", strings.Join(fields, " ")))
		size = infoID + 1
		info = fmt.Sprintf(" /Info %d 0 R", infoID)
	}

	xref := w.buf.Len()
	fmt.Fprintf(&w.buf, "xref\n0 %d\n", size)
	w.buf.WriteString("0000000000 65535 f \n")
	for id := 1; id < size; id++ {
		fmt.Fprintf(&w.buf, "%010d 00000 n \n", w.offsets[id])
	}

	const id = "<66696c652d6c61622d7465737420696400><66696c652d6c61622d7465737420696400>"
	fmt.Fprintf(&w.buf, "trailer\n<< /Size %d /Root %d 0 R%s /ID [%s] >>\nstartxref\n%d\n%%%%EOF\n",
		size, catalogID, info, id, xref)

	return w.buf.Bytes()
}

type writer struct {
	buf     bytes.Buffer
	offsets map[int]int
}

func (w *writer) object(id int, body string) {
	if w.offsets == nil {
		w.offsets = make(map[int]int)
	}
	w.offsets[id] = w.buf.Len()
	fmt.Fprintf(&w.buf, "%d 0 obj\n%s\nendobj\n", id, body)
}

func num(f float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`)
	return r.Replace(s)
}
