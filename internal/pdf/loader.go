package pdf

import (
	"fmt"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/kpauljoseph/pdfprint/pkg/logger"
	"github.com/kpauljoseph/pdfprint/pkg/models"
)

const pdfMIME = "application/pdf"

// Loader measures and classifies PDF files. Failures are logged and kept on
// the returned document so one bad file never stops a scan.
type Loader struct {
	reader PageReader
	logger *logger.Logger
}

func NewLoader(reader PageReader, logger *logger.Logger) *Loader {
	return &Loader{
		reader: reader,
		logger: logger,
	}
}

func (l *Loader) Load(path string) models.Document {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	doc := models.Document{Path: absPath}

	pages, heightCm, widthCm, err := l.measure(absPath)
	if err != nil {
		l.logger.Warn("%s -- %v", absPath, err)
		doc.HeightCm = models.UnreadableSize
		doc.WidthCm = models.UnreadableSize
		doc.Type = models.Unknown
		doc.Err = err
		return doc
	}

	doc.Pages = pages
	doc.HeightCm = heightCm
	doc.WidthCm = widthCm
	doc.Type = Classify(heightCm, widthCm)
	l.logger.Debug("Loaded %s: %d pages, %dx%d cm, %s", absPath, pages, heightCm, widthCm, doc.Type)
	return doc
}

func (l *Loader) measure(path string) (pages, heightCm, widthCm int, err error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	if !mtype.Is(pdfMIME) {
		return 0, 0, 0, fmt.Errorf("%w: content is %s", ErrUnreadable, mtype.String())
	}

	dims, err := l.reader.PageDims(path)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	for i, dim := range dims {
		l.logger.Trace("Page %d dimensions: %.2f x %.2f", i, dim.Width, dim.Height)
	}

	heightCm, widthCm, err = Geometry(dims)
	if err != nil {
		return 0, 0, 0, err
	}

	return len(dims), heightCm, widthCm, nil
}
