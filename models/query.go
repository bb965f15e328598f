package models

// FilterOp is a comparison used in document and record queries.
type FilterOp string

const (
	OpEqual         FilterOp = "=="
	OpNotEqual      FilterOp = "!="
	OpLess          FilterOp = "<"
	OpLessEqual     FilterOp = "<="
	OpGreater       FilterOp = ">"
	OpGreaterEqual  FilterOp = ">="
	OpIn            FilterOp = "in"
	OpArrayContains FilterOp = "array-contains"
)

func (o FilterOp) Valid() bool {
	switch o {
	case OpEqual, OpNotEqual, OpLess, OpLessEqual, OpGreater, OpGreaterEqual, OpIn, OpArrayContains:
		return true
	}
	return false
}

// Filter is a single predicate over a document field.
type Filter struct {
	Field string   `json:"field"`
	Op    FilterOp `json:"op"`
	Value any      `json:"value"`
}

// Query is a remote document query. Filters are combined with AND.
type Query struct {
	Filters    []Filter `json:"filters,omitempty"`
	OrderBy    string   `json:"orderBy,omitempty"`
	Descending bool     `json:"descending,omitempty"`
	Limit      int      `json:"limit,omitempty"`
}
