package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/kpauljoseph/pdfprint/pkg/logger"
	"github.com/kpauljoseph/pdfprint/pkg/models"
)

// Merger joins documents into a single PDF. A document with an odd page
// count is followed by one blank page so every source starts on a new sheet
// when printed duplex.
type Merger struct {
	tempDir string
	conf    *model.Configuration
	logger  *logger.Logger
}

func NewMerger(tempDir string, logger *logger.Logger) (*Merger, error) {
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	return &Merger{
		tempDir: tempDir,
		conf:    newConfiguration(),
		logger:  logger,
	}, nil
}

// Merge writes docs, in order, to output. Nothing is written until every
// document has been prepared. The same documents always produce a file of
// the same length.
func (m *Merger) Merge(ctx context.Context, docs []models.Document, output string) error {
	if len(docs) == 0 {
		return ErrNothingToMerge
	}

	inFiles := make([]string, 0, len(docs))
	for i, doc := range docs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		inFile := doc.Path
		if NeedsPadding(doc.Pages) {
			padded, err := m.pad(i, doc)
			if err != nil {
				return err
			}
			inFile = padded
		}
		inFiles = append(inFiles, inFile)
	}

	m.logger.Debug("Merging %d documents into %s", len(inFiles), output)
	merged, err := m.mergeContext(ctx, inFiles)
	if err != nil {
		return err
	}

	if err := canonicalize(merged); err != nil {
		return fmt.Errorf("failed to renumber objects for %s: %w", output, err)
	}

	if err := api.WriteContextFile(merged, output); err != nil {
		os.Remove(output)
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	return nil
}

// mergeContext appends the page trees of inFiles to the first one. Object
// and cross reference streams are turned off so that the written length only
// depends on the objects themselves.
func (m *Merger) mergeContext(ctx context.Context, inFiles []string) (*model.Context, error) {
	conf := newConfiguration()
	conf.Cmd = model.MERGECREATE
	conf.CreateBookmarks = false
	conf.WriteObjectStream = false
	conf.WriteXRefStream = false

	dest, err := readContext(inFiles[0], conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", inFiles[0], err)
	}
	dest.EnsureVersionForWriting()

	for _, inFile := range inFiles[1:] {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		src, err := readContext(inFile, conf)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", inFile, err)
		}

		if dest.XRefTable.Version() < model.V20 && src.XRefTable.Version() == model.V20 {
			return nil, fmt.Errorf("failed to merge %s: %w", inFile, pdfcpu.ErrUnsupportedVersion)
		}

		m.logger.Trace("Appending %s", inFile)
		if err := pdfcpu.MergeXRefTables(filepath.Base(inFile), src, dest, false, false); err != nil {
			return nil, fmt.Errorf("failed to merge %s: %w", inFile, err)
		}
	}

	return dest, nil
}

func readContext(inFile string, conf *model.Configuration) (*model.Context, error) {
	f, err := os.Open(inFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return api.ReadAndValidate(f, conf)
}

// NeedsPadding reports whether a document of the given length gets a blank page appended.
func NeedsPadding(pages int) bool {
	return pages%2 != 0
}

// PaddedPageCount is the number of pages a document contributes to the merged output.
func PaddedPageCount(pages int) int {
	if NeedsPadding(pages) {
		return pages + 1
	}
	return pages
}

func (m *Merger) pad(index int, doc models.Document) (string, error) {
	padded := filepath.Join(m.tempDir, fmt.Sprintf("%04d_%s", index, filepath.Base(doc.Path)))
	lastPage := []string{strconv.Itoa(doc.Pages)}

	m.logger.Debug("Adding blank page after page %d of %s", doc.Pages, doc.Path)
	if err := api.InsertPagesFile(doc.Path, padded, lastPage, false, nil, m.conf); err != nil {
		return "", fmt.Errorf("failed to add blank page to %s: %w", doc.Path, err)
	}

	return padded, nil
}

func (m *Merger) Cleanup() error {
	return os.RemoveAll(m.tempDir)
}
