package dataprocessing

import (
	"strings"

	"github.com/mplosser/data-fry9/pkg/contracts/domain"
)

// Classifier assigns filing records to a filer type by column-prefix density.
// Column membership is computed once from the header; classification then
// only counts non-missing values per group.
type Classifier struct {
	groups map[domain.FilerType][]int
}

// NewClassifier indexes the header's prefix-group membership.
func NewClassifier(header []string) *Classifier {
	groups := make(map[domain.FilerType][]int, len(domain.FilerTypePriority))
	for _, ft := range domain.FilerTypePriority {
		prefix := ft.Prefix()
		var indexes []int
		for i, name := range header {
			if strings.HasPrefix(name, prefix) {
				indexes = append(indexes, i)
			}
		}
		groups[ft] = indexes
	}
	return &Classifier{groups: groups}
}

// Classify assigns row to the filer type whose prefix group holds the most
// non-missing values. Ties at a non-zero maximum resolve by the fixed
// priority order FR Y-9C > FR Y-9LP > FR Y-9SP. When every group is empty
// the record is unclassifiable and ok is false.
func (c *Classifier) Classify(row []string) (filerType domain.FilerType, ok bool) {
	best := 0
	// Iteration follows the priority order, so a later group must strictly
	// beat the running maximum to win.
	for _, ft := range domain.FilerTypePriority {
		count := c.countPresent(ft, row)
		if count > best {
			best = count
			filerType = ft
		}
	}
	return filerType, best > 0
}

// GroupColumns returns the header indexes belonging to the given filer type.
func (c *Classifier) GroupColumns(ft domain.FilerType) []int {
	return c.groups[ft]
}

// countPresent counts the non-missing values of row inside one prefix group.
// Missing means the empty string; whitespace-only values count as present.
func (c *Classifier) countPresent(ft domain.FilerType, row []string) int {
	count := 0
	for _, i := range c.groups[ft] {
		if i < len(row) && row[i] != "" {
			count++
		}
	}
	return count
}
