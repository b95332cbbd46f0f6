package budget_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/pdfprint/internal/budget"
)

var _ = Describe("MakeRelative", func() {
	It("should strip the root from every path", func() {
		labels := budget.MakeRelative([]string{"/root/a/b.pdf", "/root/c.pdf"}, "/root")
		Expect(labels).To(Equal([]string{"/a/b.pdf", "/c.pdf"}))
	})

	It("should use the base name for a single path", func() {
		labels := budget.MakeRelative([]string{"/root/a/b.pdf"}, "/root")
		Expect(labels).To(Equal([]string{"/b.pdf"}))
	})

	It("should not be confused by siblings sharing a name prefix", func() {
		labels := budget.MakeRelative([]string{"/home/test/report-1.pdf", "/home/test/report-2.pdf"}, "/home/test")
		Expect(labels).To(Equal([]string{"/report-1.pdf", "/report-2.pdf"}))
	})

	It("should keep nested directories below the root", func() {
		labels := budget.MakeRelative([]string{"/home/test/foo/bar.pdf", "/home/test/pdf.pdf"}, "/home/test")
		Expect(labels).To(Equal([]string{"/foo/bar.pdf", "/pdf.pdf"}))
	})

	It("should accept a root with a trailing separator", func() {
		labels := budget.MakeRelative([]string{"/root/x.pdf", "/root/y/z.pdf"}, "/root/")
		Expect(labels).To(Equal([]string{"/x.pdf", "/y/z.pdf"}))
	})

	It("should return nothing for no paths", func() {
		Expect(budget.MakeRelative(nil, "/root")).To(BeEmpty())
	})
})
