package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/pdfprint/internal/cli"
	"github.com/kpauljoseph/pdfprint/internal/testutil"
)

var _ = Describe("App", func() {
	var (
		ctx     context.Context
		testDir string
		stdout  *bytes.Buffer
		stderr  *bytes.Buffer
		opened  []string
		app     *cli.App
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		testDir, err = os.MkdirTemp("", "cli-app-*")
		Expect(err).NotTo(HaveOccurred())

		Expect(testutil.WritePDF(filepath.Join(testDir, "dummy-a4.pdf"), testutil.A4)).To(Succeed())
		Expect(testutil.WritePDF(filepath.Join(testDir, "dummy-a4-inverted.pdf"), testutil.A4Landscape)).To(Succeed())
		Expect(testutil.WritePDF(filepath.Join(testDir, "dummy-slide.pdf"), testutil.Slide4x3)).To(Succeed())

		stdout = new(bytes.Buffer)
		stderr = new(bytes.Buffer)
		opened = nil
		app = &cli.App{
			Stdout: stdout,
			Stderr: stderr,
			Start: func(name string, args ...string) error {
				opened = append(opened, args[len(args)-1])
				return nil
			},
		}
	})

	AfterEach(func() {
		os.RemoveAll(testDir)
	})

	It("should exit with the usage code on a bad command line", func() {
		Expect(app.Run(ctx, []string{"bogus"})).To(Equal(cli.ExitUsage))
		Expect(stderr.String()).To(ContainSubstring("Error:"))
		Expect(stderr.String()).To(ContainSubstring("Usage:"))
	})

	It("should exit cleanly after help", func() {
		Expect(app.Run(ctx, []string{"--help"})).To(Equal(cli.ExitOK))
		Expect(stdout.String()).To(ContainSubstring("budget"))
		Expect(stdout.String()).To(ContainSubstring("concat"))
	})

	It("should print version information", func() {
		Expect(app.Run(ctx, []string{"version"})).To(Equal(cli.ExitOK))
		Expect(stdout.String()).To(ContainSubstring("Version:"))
	})

	It("should print the budget of the A4 documents", func() {
		code := app.Run(ctx, []string{"--no-color", "budget", "--path", testDir})
		Expect(code).To(Equal(cli.ExitOK), stderr.String())

		out := stdout.String()
		Expect(out).To(ContainSubstring("TypeError: 'A4 inverted' -- "))
		Expect(out).To(ContainSubstring("TypeError: 'slide' -- "))
		Expect(out).To(MatchRegexp(`/dummy-a4\.pdf\s*│\s*1\s*│\s*0\.03`))
		Expect(out).To(MatchRegexp(`Total\s*│\s*1\s*│\s*0\.03`))
	})

	It("should fail when the path does not exist", func() {
		code := app.Run(ctx, []string{"budget", "--path", filepath.Join(testDir, "missing")})
		Expect(code).To(Equal(cli.ExitFailure))
		Expect(stderr.String()).To(ContainSubstring("budget failed"))
	})

	It("should merge and open the rejected documents", func() {
		output := filepath.Join(testDir, "compact_pdf.pdf")
		code := app.Run(ctx, []string{"--no-color", "concat", "--path", testDir, "--output", output})
		Expect(code).To(Equal(cli.ExitOK), stderr.String())

		out := stdout.String()
		Expect(out).To(ContainSubstring("Added: " + filepath.Join(testDir, "dummy-a4.pdf")))
		Expect(out).To(ContainSubstring("Done:  '" + output + "'"))

		count, err := api.PageCountFile(output)
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(2))

		Expect(opened).To(ConsistOf(
			filepath.Join(testDir, "dummy-a4-inverted.pdf"),
			filepath.Join(testDir, "dummy-slide.pdf"),
		))
	})

	It("should not open anything with no_open", func() {
		output := filepath.Join(testDir, "compact_pdf.pdf")
		code := app.Run(ctx, []string{"concat", "--path", testDir, "--output", output, "--no_open"})
		Expect(code).To(Equal(cli.ExitOK), stderr.String())
		Expect(opened).To(BeEmpty())
	})
})
