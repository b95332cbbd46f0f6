// Package testutil writes small, valid PDF files for tests.
package testutil

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kpauljoseph/pdfprint/pkg/models"
)

var (
	A4          = models.PageDimensions{Width: 595.28, Height: 841.89}
	A4Landscape = models.PageDimensions{Width: 841.89, Height: 595.28}
	Slide4x3    = models.PageDimensions{Width: 720, Height: 540}
	Slide16x9   = models.PageDimensions{Width: 960, Height: 540}
	Letter      = models.PageDimensions{Width: 612, Height: 792}
	Square      = models.PageDimensions{Width: 500, Height: 500}
)

// Pages repeats dim n times.
func Pages(dim models.PageDimensions, n int) []models.PageDimensions {
	pages := make([]models.PageDimensions, n)
	for i := range pages {
		pages[i] = dim
	}
	return pages
}

// Page is a generated page whose dictionary carries Extra, for example
// "/Rotate 90", after its media box.
type Page struct {
	models.PageDimensions
	Extra string
}

// WritePDF writes a PDF with one empty page per entry of pages, creating
// parent directories as needed.
func WritePDF(path string, pages ...models.PageDimensions) error {
	return WritePages(path, plain(pages)...)
}

// WritePages is WritePDF for pages with extra dictionary entries.
func WritePages(path string, pages ...Page) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, BuildPages(pages...), 0644)
}

// BuildPDF returns the bytes of a PDF with one empty page per entry of pages.
func BuildPDF(pages ...models.PageDimensions) []byte {
	return BuildPages(plain(pages)...)
}

func plain(dims []models.PageDimensions) []Page {
	pages := make([]Page, len(dims))
	for i, dim := range dims {
		pages[i] = Page{PageDimensions: dim}
	}
	return pages
}

// BuildPages returns the bytes of a PDF with one empty page per entry of
// pages. Object 1 is the catalog, object 2 the page tree, pages follow.
func BuildPages(pages ...Page) []byte {
	var buf bytes.Buffer
	offsets := make([]int, 0, len(pages)+2)

	buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	writeObject := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	writeObject("<< /Type /Catalog /Pages 2 0 R >>")

	var kids bytes.Buffer
	for i := range pages {
		if i > 0 {
			kids.WriteByte(' ')
		}
		fmt.Fprintf(&kids, "%d 0 R", i+3)
	}
	writeObject(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids.String(), len(pages)))

	for _, page := range pages {
		writeObject(fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %.2f %.2f] %s/Resources << >> >>",
			page.Width, page.Height, extra(page.Extra),
		))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	return buf.Bytes()
}

func extra(entries string) string {
	if entries == "" {
		return ""
	}
	return entries + " "
}

// WriteCorruptPDF writes a file that sniffs as PDF but has no readable structure.
func WriteCorruptPDF(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte("%PDF-1.4\nthis is not a pdf body\n"), 0644)
}

// WriteFakePDF writes a plain text file with a .pdf name.
func WriteFakePDF(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte("dummy pdf content"), 0644)
}
