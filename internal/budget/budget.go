package budget

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/kpauljoseph/pdfprint/internal/scanner"
	"github.com/kpauljoseph/pdfprint/pkg/logger"
	"github.com/kpauljoseph/pdfprint/pkg/models"
)

const (
	TotalLabel = "Total"

	DefaultPricePerSheet = 0.03
)

var Columns = []string{"filepath", "pages", "price"}

type Row struct {
	Path  string
	Pages int
	Price float64
}

// Report holds one row per priced document, largest first, and the column sums.
type Report struct {
	Rows  []Row
	Total Row
}

// Records renders the rows followed by the total as table cells.
func (r Report) Records() [][]string {
	records := make([][]string, 0, len(r.Rows)+1)
	for _, row := range r.Rows {
		records = append(records, row.cells())
	}
	return append(records, r.Total.cells())
}

func (r Row) cells() []string {
	return []string{r.Path, strconv.Itoa(r.Pages), FormatPrice(r.Price)}
}

// FormatPrice prints at least two and at most four decimals.
func FormatPrice(price float64) string {
	s := strconv.FormatFloat(price, 'f', 4, 64)
	dot := strings.IndexByte(s, '.')
	for len(s) > dot+3 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	return s
}

type DocumentScanner interface {
	ScanDocuments(ctx context.Context, dir string, opts scanner.Options) ([]models.Document, error)
}

type Builder struct {
	scanner DocumentScanner
	logger  *logger.Logger
}

func NewBuilder(scanner DocumentScanner, logger *logger.Logger) *Builder {
	return &Builder{
		scanner: scanner,
		logger:  logger,
	}
}

// Build prices every A4 document under root. Documents of any other type are
// returned as rejected and left out of the report.
func (b *Builder) Build(ctx context.Context, root string, pricePerSheet float64, exclude *regexp.Regexp) (Report, []models.Document, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Report{}, nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}

	opts := scanner.Options{
		Exclude:   exclude,
		SkipNames: []string{scanner.DefaultOutputName},
	}

	docs, err := b.scanner.ScanDocuments(ctx, absRoot, opts)
	if err != nil {
		if !errors.Is(err, scanner.ErrNoPDFs) {
			return Report{}, nil, err
		}
		b.logger.Info("%v", err)
	}

	var priced, rejected []models.Document
	for _, doc := range docs {
		if doc.Type != models.A4 {
			rejected = append(rejected, doc)
			continue
		}
		priced = append(priced, doc)
	}

	paths := make([]string, len(priced))
	for i, doc := range priced {
		paths[i] = doc.Path
	}
	labels := MakeRelative(paths, absRoot)

	report := Report{
		Rows:  make([]Row, len(priced)),
		Total: Row{Path: TotalLabel},
	}
	for i, doc := range priced {
		report.Rows[i] = Row{
			Path:  labels[i],
			Pages: doc.Pages,
			Price: float64(doc.Pages) * pricePerSheet,
		}
	}

	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].Pages > report.Rows[j].Pages
	})

	for _, row := range report.Rows {
		report.Total.Pages += row.Pages
		report.Total.Price += row.Price
	}

	b.logger.Debug("Priced %d documents, rejected %d", len(priced), len(rejected))
	return report, rejected, nil
}
