package pdf

import (
	"fmt"
	"sort"

	"github.com/kpauljoseph/pdfprint/pkg/models"
	"github.com/kpauljoseph/pdfprint/pkg/utils"
)

// Geometry converts every page to cm and requires all pages to agree.
// It returns a *GeometryError when they do not.
func Geometry(dims []models.PageDimensions) (heightCm, widthCm int, err error) {
	if len(dims) == 0 {
		return 0, 0, fmt.Errorf("%w: document has no pages", ErrUnreadable)
	}

	heights := make(map[int]struct{})
	widths := make(map[int]struct{})
	for _, dim := range dims {
		heights[utils.PointsToCm(dim.Height)] = struct{}{}
		widths[utils.PointsToCm(dim.Width)] = struct{}{}
	}

	if len(heights) != 1 || len(widths) != 1 {
		return 0, 0, &GeometryError{
			Heights: sortedKeys(heights),
			Widths:  sortedKeys(widths),
		}
	}

	return utils.PointsToCm(dims[0].Height), utils.PointsToCm(dims[0].Width), nil
}

func sortedKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
