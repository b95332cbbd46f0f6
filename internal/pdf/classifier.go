package pdf

import (
	"github.com/kpauljoseph/pdfprint/pkg/models"
)

// Classify maps page dimensions in cm to a document type. Ranges are
// inclusive and checked in order, first match wins.
func Classify(heightCm, widthCm int) models.DocumentType {
	switch {
	case IsA4(heightCm, widthCm):
		return models.A4
	case IsA4Inverted(heightCm, widthCm):
		return models.A4Inverted
	case IsSlide(heightCm, widthCm):
		return models.Slide
	default:
		return models.Unknown
	}
}

func IsA4(heightCm, widthCm int) bool {
	return between(heightCm, 28, 30) && between(widthCm, 20, 22)
}

func IsA4Inverted(heightCm, widthCm int) bool {
	return between(widthCm, 28, 30) && between(heightCm, 20, 22)
}

// IsSlide matches 4:3 and 16:9 presentation pages.
func IsSlide(heightCm, widthCm int) bool {
	if !between(heightCm, 18, 20) {
		return false
	}
	return between(widthCm, 24, 26) || between(widthCm, 32, 34)
}

func between(v, lo, hi int) bool {
	return lo <= v && v <= hi
}
