package concat

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/kpauljoseph/pdfprint/internal/pdf"
	"github.com/kpauljoseph/pdfprint/internal/scanner"
	"github.com/kpauljoseph/pdfprint/pkg/logger"
	"github.com/kpauljoseph/pdfprint/pkg/models"
)

const pdfExt = ".pdf"

type DocumentScanner interface {
	ScanDocuments(ctx context.Context, dir string, opts scanner.Options) ([]models.Document, error)
}

// Engine merges every A4 document under a directory into one file.
type Engine struct {
	scanner DocumentScanner
	merger  pdf.PageMerger
	logger  *logger.Logger
}

func NewEngine(scanner DocumentScanner, merger pdf.PageMerger, logger *logger.Logger) *Engine {
	return &Engine{
		scanner: scanner,
		merger:  merger,
		logger:  logger,
	}
}

// OutputName appends the .pdf extension when name lacks it.
func OutputName(name string) string {
	if strings.HasSuffix(name, pdfExt) {
		return name
	}
	return name + pdfExt
}

// Run deletes any previous output, then merges the A4 documents found under
// root into output in scan order. Other documents are returned as failed.
// Output is not written when no document qualifies.
func (e *Engine) Run(ctx context.Context, root, output string, exclude *regexp.Regexp) (models.ScanResult, error) {
	var result models.ScanResult

	if err := SafeDelete(output, e.logger); err != nil {
		return result, err
	}

	opts := scanner.Options{
		Exclude:   exclude,
		SkipNames: []string{filepath.Base(output)},
	}

	docs, err := e.scanner.ScanDocuments(ctx, root, opts)
	if err != nil {
		if !errors.Is(err, scanner.ErrNoPDFs) {
			return result, err
		}
		e.logger.Info("%v", err)
	}

	for _, doc := range docs {
		if doc.Type != models.A4 {
			result.Failed = append(result.Failed, doc)
			continue
		}
		result.Succeeded = append(result.Succeeded, doc)
	}

	if len(result.Succeeded) == 0 {
		e.logger.Info("No A4 documents found, %s was not written", output)
		return result, nil
	}

	if err := e.merger.Merge(ctx, result.Succeeded, output); err != nil {
		return result, err
	}

	return result, nil
}

// SafeDelete removes path if it exists. A missing file is not an error.
func SafeDelete(path string, logger *logger.Logger) error {
	err := os.Remove(path)
	switch {
	case err == nil:
		logger.Info("Removed old %q", path)
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("failed to remove old output %s: %w", path, err)
	}
}
