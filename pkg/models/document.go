package models

// PageDimensions is a page's media box size in points (1/72 inch).
type PageDimensions struct {
	Width  float64
	Height float64
}

type DocumentType int

const (
	A4 DocumentType = iota
	A4Inverted
	Slide
	Unknown
)

func (t DocumentType) String() string {
	switch t {
	case A4:
		return "A4"
	case A4Inverted:
		return "A4 inverted"
	case Slide:
		return "slide"
	case Unknown:
		return "unknown"
	}
	return "unknown"
}

// UnreadableSize is stored in HeightCm and WidthCm when a document could not be measured.
const UnreadableSize = -1

// Document is one PDF file found during a scan. It is filled once when the
// file is discovered and never changed afterwards.
type Document struct {
	Path     string
	Pages    int
	HeightCm int
	WidthCm  int
	Type     DocumentType

	// Err holds the load failure for unreadable documents.
	Err error
}

func (d Document) Readable() bool {
	return d.Err == nil
}

// ScanResult pairs documents that passed the type check with those that did not.
type ScanResult struct {
	Succeeded []Document
	Failed    []Document
}
