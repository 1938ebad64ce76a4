package load

import (
	"context"
	"database/sql"
	"fmt"

	"ariga.io/atlas/sql/migrate"
	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	atlas "ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"
	"github.com/gobwas/glob"

	// Database drivers used by Inspect.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/syssam/weave/schema"
)

// Supported dialects of Inspect.
const (
	MySQL    = "mysql"
	Postgres = "postgres"
	SQLite   = "sqlite"
)

// InspectOption configures Inspect.
type InspectOption func(*inspectOptions) error

type inspectOptions struct {
	schema string
	tables glob.Glob
}

// WithSchemaName inspects the named database schema instead of the
// connection's default.
func WithSchemaName(name string) InspectOption {
	return func(o *inspectOptions) error {
		o.schema = name
		return nil
	}
}

// WithTableFilter keeps only tables whose name matches the glob pattern.
func WithTableFilter(pattern string) InspectOption {
	return func(o *inspectOptions) error {
		g, err := glob.Compile(pattern)
		if err != nil {
			return fmt.Errorf("invalid table pattern %q: %w", pattern, err)
		}
		o.tables = g
		return nil
	}
}

// Inspect connects to a live database and returns a definition document of
// its tables. The result carries no behaviors; it is meant as a starting
// point for a hand-edited definition file.
func Inspect(ctx context.Context, dialect, dsn string, opts ...InspectOption) (*Document, error) {
	db, err := sql.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	defer db.Close()
	return InspectDB(ctx, db, dialect, opts...)
}

// InspectDB is like Inspect for an open database.
func InspectDB(ctx context.Context, db *sql.DB, dialect string, opts ...InspectOption) (*Document, error) {
	o := &inspectOptions{}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	drv, err := driver(db, dialect)
	if err != nil {
		return nil, err
	}
	s, err := drv.InspectSchema(ctx, o.schema, nil)
	if err != nil {
		return nil, fmt.Errorf("inspect schema: %w", err)
	}
	doc := &Document{}
	for _, t := range s.Tables {
		if o.tables != nil && !o.tables.Match(t.Name) {
			continue
		}
		doc.Tables = append(doc.Tables, FromTable(convert(t)))
	}
	return doc, nil
}

func driver(db *sql.DB, dialect string) (migrate.Driver, error) {
	switch dialect {
	case SQLite:
		return sqlite.Open(db)
	case Postgres:
		return postgres.Open(db)
	case MySQL:
		return mysql.Open(db)
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}
}

func convert(t *atlas.Table) *schema.Table {
	st := schema.NewTable(t.Name)
	st.Comment = comment(t.Attrs)
	for _, c := range t.Columns {
		col := schema.NewColumn(c.Name, schema.LookupType(rawType(c.Type)))
		col.Comment = comment(c.Attrs)
		st.AddColumn(col)
	}
	return st
}

func rawType(ct *atlas.ColumnType) string {
	if ct == nil {
		return ""
	}
	if ct.Raw != "" {
		return ct.Raw
	}
	switch t := ct.Type.(type) {
	case *atlas.BoolType:
		return t.T
	case *atlas.IntegerType:
		return t.T
	case *atlas.FloatType:
		return t.T
	case *atlas.DecimalType:
		return t.T
	case *atlas.StringType:
		return t.T
	case *atlas.TimeType:
		return t.T
	case *atlas.BinaryType:
		return t.T
	case *atlas.JSONType:
		return t.T
	case *atlas.UUIDType:
		return t.T
	default:
		return ""
	}
}

func comment(attrs []atlas.Attr) string {
	for _, a := range attrs {
		if c, ok := a.(*atlas.Comment); ok {
			return c.Text
		}
	}
	return ""
}
