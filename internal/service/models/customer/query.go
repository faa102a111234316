package customer

import "time"

// Filter represents optional filter parameters for listing customers.
// A nil field places no restriction on that dimension.
type Filter struct {
	NameContains  *string    `json:"nameContains,omitempty"`
	EmailContains *string    `json:"emailContains,omitempty"`
	CreatedAtGte  *time.Time `json:"createdAtGte,omitempty"`
	CreatedAtLte  *time.Time `json:"createdAtLte,omitempty"`
	PhonePrefix   *string    `json:"phonePrefix,omitempty"`
}

// QueryCustomersModel represents a filtered, ordered window of customers.
type QueryCustomersModel struct {
	Filter  Filter   `json:"filter"`
	OrderBy []string `json:"orderBy,omitempty"`
	Limit   int      `json:"limit,omitempty"`
	Offset  int      `json:"offset,omitempty"`
}
