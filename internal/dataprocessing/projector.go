package dataprocessing

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	apperrors "github.com/mplosser/data-fry9/internal/errors"
	"github.com/mplosser/data-fry9/pkg/contracts/domain"
)

// Projector restricts classified records to the columns of their assigned
// filer type and renames the raw institution identifier to its canonical
// name. The variable column set per filer type is fixed from the header, so
// every projected record of one type shares the same schema.
type Projector struct {
	identifierIdx int
	variables     map[domain.FilerType][]projectedColumn
}

// projectedColumn binds one retained output column to its header position.
type projectedColumn struct {
	name string
	idx  int
}

// NewProjector builds the per-type column sets from a normalized header.
// The header must carry the institution identifier column, either under its
// raw name or already canonical; a file without one cannot be projected.
func NewProjector(header []string) (*Projector, error) {
	identifierIdx := -1
	for i, name := range header {
		if name == domain.RawIdentifierColumn || name == domain.IdentifierColumn {
			identifierIdx = i
			break
		}
	}
	if identifierIdx == -1 {
		return nil, apperrors.NewFormatError(
			fmt.Sprintf("header has no %s column", domain.RawIdentifierColumn), nil)
	}

	variables := make(map[domain.FilerType][]projectedColumn, len(domain.FilerTypePriority))
	for _, ft := range domain.FilerTypePriority {
		prefix := ft.Prefix()
		var cols []projectedColumn
		for i, name := range header {
			if strings.HasPrefix(name, prefix) {
				cols = append(cols, projectedColumn{name: name, idx: i})
			}
		}
		sort.Slice(cols, func(a, b int) bool { return cols[a].name < cols[b].name })
		variables[ft] = cols
	}

	return &Projector{identifierIdx: identifierIdx, variables: variables}, nil
}

// Variables returns the variable column names retained for ft, in output
// order.
func (p *Projector) Variables(ft domain.FilerType) []string {
	cols := p.variables[ft]
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = col.name
	}
	return names
}

// Project produces the projected record for one classified row. Columns
// outside the assigned group are dropped even when populated. The identifier
// is coerced to an integer; rows whose identifier cannot be coerced are
// rejected.
func (p *Projector) Project(ft domain.FilerType, row []string) (domain.ProjectedRecord, error) {
	id, err := coerceIdentifier(row[p.identifierIdx])
	if err != nil {
		return domain.ProjectedRecord{}, err
	}

	cols := p.variables[ft]
	values := make([]*string, len(cols))
	for i, col := range cols {
		if col.idx < len(row) && row[col.idx] != "" {
			v := row[col.idx]
			values[i] = &v
		}
	}

	return domain.ProjectedRecord{RSSDID: id, Values: values}, nil
}

// coerceIdentifier parses the raw institution identifier as an integer. A
// fractional rendering such as "12345.0" is accepted and truncated.
func coerceIdentifier(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("identifier is empty")
	}
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("identifier %q is not numeric", raw)
	}
	return int64(f), nil
}
