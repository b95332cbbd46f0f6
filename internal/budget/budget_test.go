package budget_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/pdfprint/internal/budget"
	"github.com/kpauljoseph/pdfprint/internal/pdf"
	"github.com/kpauljoseph/pdfprint/internal/scanner"
	"github.com/kpauljoseph/pdfprint/internal/testutil"
	"github.com/kpauljoseph/pdfprint/pkg/logger"
	"github.com/kpauljoseph/pdfprint/pkg/models"
)

type fakeScanner struct {
	docs []models.Document
	err  error
	opts scanner.Options
}

func (f *fakeScanner) ScanDocuments(_ context.Context, _ string, opts scanner.Options) ([]models.Document, error) {
	f.opts = opts
	return f.docs, f.err
}

func a4(path string, pages int) models.Document {
	return models.Document{Path: path, Pages: pages, HeightCm: 29, WidthCm: 21, Type: models.A4}
}

func budgetTestLogger() *logger.Logger {
	log := logger.New(
		logger.WithOutput(GinkgoWriter),
		logger.WithPrefix("[budget-test] "),
		logger.WithFlags(0),
	)
	log.SetVerbose(true)
	return log
}

var _ = Describe("Budget", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Context("with scanned documents", func() {
		var fake *fakeScanner

		BeforeEach(func() {
			fake = &fakeScanner{docs: []models.Document{
				a4("/root/a.pdf", 2),
				{Path: "/root/slides.pdf", Pages: 10, HeightCm: 19, WidthCm: 25, Type: models.Slide},
				a4("/root/b/c.pdf", 7),
				a4("/root/d.pdf", 2),
				{Path: "/root/broken.pdf", HeightCm: -1, WidthCm: -1, Type: models.Unknown, Err: pdf.ErrUnreadable},
				a4("/root/e.pdf", 1),
			}}
		})

		It("should price A4 documents and reject the rest", func() {
			builder := budget.NewBuilder(fake, budgetTestLogger())
			report, rejected, err := builder.Build(ctx, "/root", 0.5, nil)
			Expect(err).NotTo(HaveOccurred())

			Expect(report.Rows).To(Equal([]budget.Row{
				{Path: "/b/c.pdf", Pages: 7, Price: 7 * 0.5},
				{Path: "/a.pdf", Pages: 2, Price: 2 * 0.5},
				{Path: "/d.pdf", Pages: 2, Price: 2 * 0.5},
				{Path: "/e.pdf", Pages: 1, Price: 1 * 0.5},
			}))

			Expect(rejected).To(HaveLen(2))
			Expect(rejected[0].Path).To(Equal("/root/slides.pdf"))
			Expect(rejected[1].Path).To(Equal("/root/broken.pdf"))
		})

		It("should sum the columns into the total row", func() {
			builder := budget.NewBuilder(fake, budgetTestLogger())
			report, _, err := builder.Build(ctx, "/root", 0.5, nil)
			Expect(err).NotTo(HaveOccurred())

			sum := 0.0
			pages := 0
			for _, row := range report.Rows {
				sum += row.Price
				pages += row.Pages
			}
			Expect(report.Total.Path).To(Equal(budget.TotalLabel))
			Expect(report.Total.Pages).To(Equal(12))
			Expect(report.Total.Pages).To(Equal(pages))
			Expect(report.Total.Price).To(BeNumerically("~", sum, 1e-9))
			Expect(report.Total.Price).To(BeNumerically("~", 6.0, 1e-9))
		})

		It("should pass the exclusion pattern and skip the merge output", func() {
			exclude := regexp.MustCompile(`draft`)
			builder := budget.NewBuilder(fake, budgetTestLogger())
			_, _, err := builder.Build(ctx, "/root", 0.03, exclude)
			Expect(err).NotTo(HaveOccurred())

			Expect(fake.opts.Exclude).To(Equal(exclude))
			Expect(fake.opts.SkipNames).To(ContainElement(scanner.DefaultOutputName))
		})

		It("should render records with the total last", func() {
			builder := budget.NewBuilder(fake, budgetTestLogger())
			report, _, err := builder.Build(ctx, "/root", 0.03, nil)
			Expect(err).NotTo(HaveOccurred())

			records := report.Records()
			Expect(records).To(HaveLen(len(report.Rows) + 1))
			Expect(records[0]).To(Equal([]string{"/b/c.pdf", "7", "0.21"}))
			Expect(records[len(records)-1]).To(Equal([]string{"Total", "12", "0.36"}))
		})
	})

	Context("when nothing is found", func() {
		It("should return an empty report", func() {
			fake := &fakeScanner{err: fmt.Errorf("%w in /root", scanner.ErrNoPDFs)}
			report, rejected, err := budget.NewBuilder(fake, budgetTestLogger()).Build(ctx, "/root", 0.03, nil)

			Expect(err).NotTo(HaveOccurred())
			Expect(report.Rows).To(BeEmpty())
			Expect(rejected).To(BeEmpty())
			Expect(report.Total).To(Equal(budget.Row{Path: budget.TotalLabel}))
			Expect(report.Records()).To(Equal([][]string{{"Total", "0", "0.00"}}))
		})
	})

	Context("when scanning fails", func() {
		It("should return the error", func() {
			boom := errors.New("permission denied")
			fake := &fakeScanner{err: boom}
			_, _, err := budget.NewBuilder(fake, budgetTestLogger()).Build(ctx, "/root", 0.03, nil)
			Expect(err).To(MatchError(boom))
		})
	})

	DescribeTable("FormatPrice",
		func(price float64, expected string) {
			Expect(budget.FormatPrice(price)).To(Equal(expected))
		},
		Entry("cents", 0.03, "0.03"),
		Entry("whole number", 3.0, "3.00"),
		Entry("four decimals", 0.0125, "0.0125"),
		Entry("three decimals", 0.125, "0.125"),
		Entry("float noise", 0.1+0.2, "0.30"),
		Entry("zero", 0.0, "0.00"),
	)

	Context("with real documents", func() {
		var testDir string

		BeforeEach(func() {
			var err error
			testDir, err = os.MkdirTemp("", "budget-test-*")
			Expect(err).NotTo(HaveOccurred())

			Expect(testutil.WritePDF(filepath.Join(testDir, "dummy-a4.pdf"), testutil.A4)).To(Succeed())
			Expect(testutil.WritePDF(filepath.Join(testDir, "dummy-a4-inverted.pdf"), testutil.A4Landscape)).To(Succeed())
			Expect(testutil.WritePDF(filepath.Join(testDir, "dummy-slide.pdf"), testutil.Slide4x3)).To(Succeed())
		})

		AfterEach(func() {
			os.RemoveAll(testDir)
		})

		It("should price the single A4 document", func() {
			log := budgetTestLogger()
			s := scanner.New(pdf.NewLoader(pdf.PdfcpuReader{}, log), log)

			report, rejected, err := budget.NewBuilder(s, log).Build(ctx, testDir, 0.03, nil)
			Expect(err).NotTo(HaveOccurred())

			Expect(rejected).To(HaveLen(2))
			Expect(report.Rows).To(HaveLen(1))
			Expect(report.Rows[0].Path).To(Equal("/dummy-a4.pdf"))
			Expect(report.Rows[0].Pages).To(Equal(1))
			Expect(report.Rows[0].Price).To(BeNumerically("~", 0.03, 1e-9))
			Expect(report.Total.Pages).To(Equal(1))
			Expect(report.Total.Price).To(BeNumerically("~", 0.03, 1e-9))
		})
	})
})
