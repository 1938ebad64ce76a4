// Package query holds the comparison criteria and ordering directions used
// by generated query builders.
package query

// ImportPath is the import path generated code uses for this package.
const ImportPath = "github.com/syssam/weave/runtime/query"

// Criteria is a comparison operator.
type Criteria string

// Comparison operators.
const (
	Equal        Criteria = "="
	NotEqual     Criteria = "<>"
	GreaterThan  Criteria = ">"
	GreaterEqual Criteria = ">="
	LessThan     Criteria = "<"
	LessEqual    Criteria = "<="
	IsNull       Criteria = "IS NULL"
	IsNotNull    Criteria = "IS NOT NULL"
)

// Direction is a sort direction.
type Direction string

// Sort directions.
const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Filter is a single column condition.
type Filter struct {
	Column   string
	Value    any
	Criteria Criteria
}

// Order is a single sort term.
type Order struct {
	Column    string
	Direction Direction
}
