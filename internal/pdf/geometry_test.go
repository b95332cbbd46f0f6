package pdf_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/pdfprint/internal/pdf"
	"github.com/kpauljoseph/pdfprint/internal/testutil"
	"github.com/kpauljoseph/pdfprint/pkg/models"
)

var _ = Describe("Geometry", func() {
	It("should convert uniform pages to cm", func() {
		heightCm, widthCm, err := pdf.Geometry(testutil.Pages(testutil.A4, 4))
		Expect(err).NotTo(HaveOccurred())
		Expect(heightCm).To(Equal(29))
		Expect(widthCm).To(Equal(21))
	})

	It("should accept pages that differ by less than a centimetre", func() {
		dims := []models.PageDimensions{
			testutil.A4,
			{Width: 596.5, Height: 843.0},
		}
		heightCm, widthCm, err := pdf.Geometry(dims)
		Expect(err).NotTo(HaveOccurred())
		Expect(heightCm).To(Equal(29))
		Expect(widthCm).To(Equal(21))
	})

	It("should reject documents mixing page sizes", func() {
		dims := []models.PageDimensions{testutil.A4, testutil.A4Landscape, testutil.A4}
		_, _, err := pdf.Geometry(dims)
		Expect(err).To(MatchError(pdf.ErrGeometryInconsistency))

		var geomErr *pdf.GeometryError
		Expect(errors.As(err, &geomErr)).To(BeTrue())
		Expect(geomErr.Heights).To(Equal([]int{21, 29}))
		Expect(geomErr.Widths).To(Equal([]int{21, 29}))
		Expect(err.Error()).To(ContainSubstring("heights [21 29]"))
	})

	It("should reject documents where only the width differs", func() {
		dims := []models.PageDimensions{testutil.Slide4x3, testutil.Slide16x9}
		_, _, err := pdf.Geometry(dims)

		var geomErr *pdf.GeometryError
		Expect(errors.As(err, &geomErr)).To(BeTrue())
		Expect(geomErr.Heights).To(Equal([]int{19}))
		Expect(geomErr.Widths).To(Equal([]int{25, 33}))
	})

	It("should treat a document without pages as unreadable", func() {
		_, _, err := pdf.Geometry(nil)
		Expect(err).To(MatchError(pdf.ErrUnreadable))
	})
})
