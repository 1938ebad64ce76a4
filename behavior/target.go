package behavior

import (
	"unicode"
	"unicode/utf8"

	"github.com/syssam/weave/schema"
)

// Target describes the class a contribution is generated for. The class
// builder owns the naming conventions; behaviors only read them.
type Target struct {
	// Table is the augmented table.
	Table *schema.Table
	// Entity is the entity type name, e.g. "Article".
	Entity string
	// Receiver is the receiver identifier of entity methods.
	Receiver string
	// Query is the query builder type name, e.g. "ArticleQuery".
	Query string
	// QueryReceiver is the receiver identifier of query builder methods.
	QueryReceiver string
}

// NewTarget returns the default naming for t.
func NewTarget(t *schema.Table) *Target {
	entity := t.EntityName()
	return &Target{
		Table:         t,
		Entity:        entity,
		Receiver:      receiver(entity),
		Query:         entity + "Query",
		QueryReceiver: "q",
	}
}

// receiver returns the lowercased first letter of entity, or "e" when the
// name does not start with a letter.
func receiver(entity string) string {
	r, _ := utf8.DecodeRuneInString(entity)
	if !unicode.IsLetter(r) {
		return "e"
	}
	return string(unicode.ToLower(r))
}

// ColumnConst returns the name of the generated constant holding the
// column name of c, e.g. "ArticleColumnCreatedAt".
func (t *Target) ColumnConst(c *schema.Column) string {
	return t.Entity + "Column" + c.PropertyName()
}

// Setter returns the entity setter of c, e.g. "SetCreatedAt".
func (t *Target) Setter(c *schema.Column) string {
	return "Set" + c.PropertyName()
}

// Field returns the entity struct field holding c.
func (t *Target) Field(c *schema.Column) string {
	return c.PropertyName()
}
