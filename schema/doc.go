// Package schema holds the table and column model that behaviors augment and
// the class builder generates code from.
//
// Tables are created by a schema loader (see compiler/load) before any
// behavior runs. A table owns an ordered, unique-by-name collection of
// columns; behaviors may append columns during the augmentation pass but
// never remove or rename them:
//
//	t := schema.NewTable("article")
//	t.AddColumn(schema.NewColumn("title", schema.TypeVarchar))
//
//	if !t.HasColumn("created_at") {
//	    t.AddColumn(schema.NewColumn("created_at", schema.TypeDatetime))
//	}
//
// # Column Types
//
// Column types are drawn from a fixed vocabulary. TypeInteger is the integer
// kind that timestamp behaviors treat specially; the temporal kinds are
// TypeDate, TypeTime, TypeTimestamp and TypeDatetime:
//
//	schema.TypeInteger    // INTEGER, epoch seconds when used for timestamps
//	schema.TypeDatetime   // DATETIME
//	schema.TypeTimestamp  // TIMESTAMP
//	schema.TypeVarchar    // VARCHAR
//
// ParseType accepts the names case-insensitively along with common SQL
// aliases (INT, TEXT, BOOL, ...).
//
// # Property Names
//
// Every column has a generated accessor identifier derived from its name:
//
//	schema.NewColumn("created_at", schema.TypeDatetime).PropertyName() // "CreatedAt"
package schema
