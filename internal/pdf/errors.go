package pdf

import (
	"errors"
	"fmt"
)

var (
	ErrUnreadable            = errors.New("unreadable document")
	ErrGeometryInconsistency = errors.New("inconsistent page geometry")
	ErrNothingToMerge        = errors.New("no documents to merge")
)

// GeometryError reports the distinct page sizes, in cm, found in a document
// whose pages are not all the same size.
type GeometryError struct {
	Heights []int
	Widths  []int
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("%v: heights %v, widths %v", ErrGeometryInconsistency, e.Heights, e.Widths)
}

func (e *GeometryError) Unwrap() error {
	return ErrGeometryInconsistency
}
