package schema

import (
	"github.com/go-openapi/inflect"
)

// Column is a table column.
type Column struct {
	// Name is the column name in the database schema.
	Name string
	// Type is the declared storage type.
	Type Type
	// Comment is an optional description carried into generated code.
	Comment string
	// property overrides the derived accessor identifier.
	property string
}

// NewColumn returns a new column with the given name and type.
func NewColumn(name string, typ Type) *Column {
	return &Column{Name: name, Type: typ}
}

// WithProperty overrides the derived property name and returns the column.
func (c *Column) WithProperty(name string) *Column {
	c.property = name
	return c
}

// PropertyName returns the generated accessor identifier of the column.
// "created_at" becomes "CreatedAt".
func (c *Column) PropertyName() string {
	if c.property != "" {
		return c.property
	}
	return inflect.Camelize(c.Name)
}

// Table is a named schema entity owning an ordered, unique-by-name
// collection of columns.
type Table struct {
	// Name is the table name in the database schema.
	Name string
	// Comment is an optional description carried into generated code.
	Comment string
	entity  string
	columns []*Column
	index   map[string]*Column
}

// NewTable returns an empty table.
func NewTable(name string) *Table {
	return &Table{
		Name:  name,
		index: make(map[string]*Column),
	}
}

// WithEntity overrides the derived entity name and returns the table.
func (t *Table) WithEntity(name string) *Table {
	t.entity = name
	return t
}

// EntityName returns the name of the generated entity type.
// "blog_post" becomes "BlogPost".
func (t *Table) EntityName() string {
	if t.entity != "" {
		return t.entity
	}
	return inflect.Camelize(t.Name)
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the column with the given name.
func (t *Table) Column(name string) (*Column, bool) {
	c, ok := t.index[name]
	return c, ok
}

// AddColumn appends c to the table. A column whose name already exists is
// left untouched and AddColumn reports false.
func (t *Table) AddColumn(c *Column) bool {
	if t.index == nil {
		t.index = make(map[string]*Column)
	}
	if _, ok := t.index[c.Name]; ok {
		return false
	}
	t.columns = append(t.columns, c)
	t.index[c.Name] = c
	return true
}

// Columns returns the columns in declaration order.
func (t *Table) Columns() []*Column {
	return append([]*Column(nil), t.columns...)
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int { return len(t.columns) }
