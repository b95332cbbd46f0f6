package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/kpauljoseph/pdfprint/internal/pdf"
	"github.com/kpauljoseph/pdfprint/pkg/logger"
	"github.com/kpauljoseph/pdfprint/pkg/models"
)

const (
	pdfExt = ".pdf"

	// DefaultOutputName is the merge output file, never read back as input.
	DefaultOutputName = "compact_pdf.pdf"
)

var ErrNoPDFs = errors.New("no PDF files found")

type Options struct {
	// Exclude drops every file whose forward-slash path matches.
	Exclude *regexp.Regexp
	// SkipNames drops files with one of these base names, such as a previous merge output.
	SkipNames []string
}

type DirectoryScanner struct {
	loader pdf.DocumentLoader
	logger *logger.Logger
}

func New(loader pdf.DocumentLoader, logger *logger.Logger) *DirectoryScanner {
	return &DirectoryScanner{
		loader: loader,
		logger: logger,
	}
}

// FindPDFs returns the absolute paths of the PDF files under dir in
// lexicographic order.
func (s *DirectoryScanner) FindPDFs(ctx context.Context, dir string, opts Options) ([]string, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	var pdfs []string
	if err := filepath.WalkDir(root, s.visit(ctx, root, opts, &pdfs)); err != nil {
		return nil, err
	}

	if len(pdfs) == 0 {
		return nil, fmt.Errorf("%w in %s or its subdirectories", ErrNoPDFs, root)
	}

	sort.Strings(pdfs)
	return pdfs, nil
}

// visit collects matching PDFs into pdfs. Entries below root that cannot be
// read are logged and skipped; only a failure on root itself ends the walk.
func (s *DirectoryScanner) visit(ctx context.Context, root string, opts Options, pdfs *[]string) fs.WalkDirFunc {
	return func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			if path == root {
				return fmt.Errorf("error accessing path %s: %w", path, err)
			}
			s.logger.Warn("Skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			s.logger.Trace("Scanning directory: %s", path)
			return nil
		}

		if !strings.HasSuffix(path, pdfExt) {
			return nil
		}

		if skipped(filepath.Base(path), opts.SkipNames) {
			s.logger.Debug("Skipping output file: %s", path)
			return nil
		}

		if opts.Exclude != nil && opts.Exclude.MatchString(filepath.ToSlash(path)) {
			s.logger.Debug("Excluded by pattern: %s", path)
			return nil
		}

		*pdfs = append(*pdfs, path)
		return nil
	}
}

// ScanDocuments finds the PDFs under dir and loads each one. Unreadable files
// come back as documents carrying their error.
func (s *DirectoryScanner) ScanDocuments(ctx context.Context, dir string, opts Options) ([]models.Document, error) {
	paths, err := s.FindPDFs(ctx, dir, opts)
	if err != nil {
		return nil, err
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		root = dir
	}

	docs := make([]models.Document, 0, len(paths))
	for i, path := range paths {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			relPath = path
		}
		s.logger.Debug("Processing PDF (%d/%d): %s", i+1, len(paths), relPath)

		docs = append(docs, s.loader.Load(path))
	}

	return docs, nil
}

func skipped(name string, names []string) bool {
	for _, n := range names {
		if n != "" && name == n {
			return true
		}
	}
	return false
}
