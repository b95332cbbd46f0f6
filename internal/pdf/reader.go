package pdf

import (
	"fmt"
	"os"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/kpauljoseph/pdfprint/pkg/models"
)

const (
	ReaderPdfcpu = "pdfcpu"
	ReaderFitz   = "fitz"
)

// NewPageReader returns the reader registered under name. An empty name
// selects pdfcpu.
func NewPageReader(name string) (PageReader, error) {
	switch name {
	case "", ReaderPdfcpu:
		return PdfcpuReader{}, nil
	case ReaderFitz:
		return FitzReader{}, nil
	default:
		return nil, fmt.Errorf("unknown page reader %q (expected %q or %q)", name, ReaderPdfcpu, ReaderFitz)
	}
}

// PdfcpuReader reads media boxes with pdfcpu, in pure Go. Dimensions are
// those of the media box as stored, a /Rotate entry does not swap them.
type PdfcpuReader struct{}

func (PdfcpuReader) PageDims(path string) ([]models.PageDimensions, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ctx, err := api.ReadAndValidate(f, newConfiguration())
	if err != nil {
		return nil, err
	}

	boundaries, err := ctx.PageBoundaries(nil)
	if err != nil {
		return nil, err
	}
	if len(boundaries) != ctx.PageCount {
		return nil, fmt.Errorf("found %d media boxes for %d pages", len(boundaries), ctx.PageCount)
	}

	pages := make([]models.PageDimensions, 0, len(boundaries))
	for i, pb := range boundaries {
		mediaBox := pb.MediaBox()
		if mediaBox == nil {
			return nil, fmt.Errorf("page %d has no media box", i+1)
		}
		dim := mediaBox.Dimensions()
		pages = append(pages, models.PageDimensions{Width: dim.Width, Height: dim.Height})
	}
	return pages, nil
}

// FitzReader reads page bounds through MuPDF. go-fitz only exposes the
// bounds of the rendered page: the crop box, rotated, in whole points. The
// results are close to the media box for plain pages and differ for cropped
// or rotated ones, and a 595.28pt A4 width reads as 20cm instead of 21cm.
type FitzReader struct{}

func (FitzReader) PageDims(path string) ([]models.PageDimensions, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	//Page numbers are zero indexed in the fitz package.
	pages := make([]models.PageDimensions, 0, doc.NumPage())
	for pageNum := 0; pageNum < doc.NumPage(); pageNum++ {
		bounds, err := doc.Bound(pageNum)
		if err != nil {
			return nil, fmt.Errorf("failed to get bounds for page %d: %w", pageNum, err)
		}
		pages = append(pages, models.PageDimensions{
			Width:  float64(bounds.Dx()),
			Height: float64(bounds.Dy()),
		})
	}
	return pages, nil
}

func newConfiguration() *model.Configuration {
	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed
	return cfg
}
