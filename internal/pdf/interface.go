package pdf

import (
	"context"

	"github.com/kpauljoseph/pdfprint/pkg/models"
)

// PageReader returns the media box size of every page of a PDF, in page order.
type PageReader interface {
	PageDims(path string) ([]models.PageDimensions, error)
}

type DocumentLoader interface {
	Load(path string) models.Document
}

type PageMerger interface {
	Merge(ctx context.Context, docs []models.Document, output string) error
	Cleanup() error
}
