package filter

import (
	"fmt"
	"strings"

	"github.com/corray333/backend-labs/crm/internal/service/models/crmerr"
)

// Sortable maps the field names a listing accepts in order_by to columns.
type Sortable struct {
	Columns  map[string]string
	Tiebreak string
}

// OrderBy converts order_by field names into ORDER BY clauses.
// A leading "-" sorts that field descending. The tiebreak column is appended
// unless already present, so the resulting order is always total.
func (s Sortable) OrderBy(fields []string) ([]string, error) {
	clauses := make([]string, 0, len(fields)+1)
	seen := make(map[string]bool, len(fields)+1)

	for _, field := range fields {
		name := strings.TrimSpace(field)
		direction := "ASC"
		if strings.HasPrefix(name, "-") {
			name = name[1:]
			direction = "DESC"
		}

		column, ok := s.Columns[name]
		if !ok {
			return nil, crmerr.Invalid("orderBy", fmt.Sprintf("Cannot order by %q", field))
		}
		if seen[column] {
			continue
		}
		seen[column] = true
		clauses = append(clauses, column+" "+direction)
	}

	if !seen[s.Tiebreak] {
		clauses = append(clauses, s.Tiebreak+" ASC")
	}

	return clauses, nil
}
