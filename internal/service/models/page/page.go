package page

import (
	"fmt"

	"github.com/corray333/backend-labs/crm/internal/service/models/crmerr"
)

// Args represents relay pagination arguments with cursors already decoded to offsets.
// After and Before are exclusive bounds.
type Args struct {
	First  *int `json:"first,omitempty"`
	Last   *int `json:"last,omitempty"`
	After  *int `json:"after,omitempty"`
	Before *int `json:"before,omitempty"`
}

// Window is the slice [Offset, Offset+Limit) of a listing selected by Args.
type Window struct {
	Offset          int
	Limit           int
	HasPreviousPage bool
	HasNextPage     bool
}

// Page is one window of a listing.
// Offset is the position of Items[0] in the full ordered listing.
type Page[T any] struct {
	Items           []T
	Offset          int
	Total           int
	HasPreviousPage bool
	HasNextPage     bool
}

// NewPage wraps items fetched for window w.
func NewPage[T any](items []T, w Window, total int) Page[T] {
	return Page[T]{
		Items:           items,
		Offset:          w.Offset,
		Total:           total,
		HasPreviousPage: w.HasPreviousPage,
		HasNextPage:     w.HasNextPage,
	}
}

// Validate checks the arguments against maxSize.
func (a Args) Validate(maxSize int) error {
	if a.First != nil {
		if *a.First < 0 {
			return crmerr.Invalid("first", "Argument \"first\" must be a non-negative integer")
		}
		if *a.First > maxSize {
			return crmerr.Invalid("first", fmt.Sprintf("Requesting %d records exceeds the \"first\" limit of %d records", *a.First, maxSize))
		}
	}
	if a.Last != nil {
		if *a.Last < 0 {
			return crmerr.Invalid("last", "Argument \"last\" must be a non-negative integer")
		}
		if *a.Last > maxSize {
			return crmerr.Invalid("last", fmt.Sprintf("Requesting %d records exceeds the \"last\" limit of %d records", *a.Last, maxSize))
		}
	}

	return nil
}

// Resolve computes the window selected by a over a listing of total items.
// When neither First nor Last is set the window is capped at maxSize.
func (a Args) Resolve(total, maxSize int) (Window, error) {
	if err := a.Validate(maxSize); err != nil {
		return Window{}, err
	}

	first := a.First
	if first == nil && a.Last == nil {
		first = &maxSize
	}

	afterOffset := -1
	if a.After != nil {
		afterOffset = *a.After
	}
	beforeOffset := total
	if a.Before != nil {
		beforeOffset = *a.Before
	}

	start := max(afterOffset, -1) + 1
	end := min(beforeOffset, total)
	if first != nil {
		end = min(end, start+*first)
	}
	if a.Last != nil {
		start = max(start, end-*a.Last)
	}
	if end < start {
		end = start
	}

	lowerBound := 0
	if a.After != nil {
		lowerBound = afterOffset + 1
	}
	upperBound := total
	if a.Before != nil {
		upperBound = beforeOffset
	}

	return Window{
		Offset:          start,
		Limit:           end - start,
		HasPreviousPage: a.Last != nil && start > lowerBound,
		HasNextPage:     first != nil && end < upperBound,
	}, nil
}
