package schema

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// A Type is a column storage type.
type Type string

// Column storage types.
const (
	TypeBoolean     Type = "BOOLEAN"
	TypeTinyint     Type = "TINYINT"
	TypeSmallint    Type = "SMALLINT"
	TypeInteger     Type = "INTEGER"
	TypeBigint      Type = "BIGINT"
	TypeFloat       Type = "FLOAT"
	TypeDouble      Type = "DOUBLE"
	TypeDecimal     Type = "DECIMAL"
	TypeChar        Type = "CHAR"
	TypeVarchar     Type = "VARCHAR"
	TypeLongvarchar Type = "LONGVARCHAR"
	TypeDate        Type = "DATE"
	TypeTime        Type = "TIME"
	TypeTimestamp   Type = "TIMESTAMP"
	TypeDatetime    Type = "DATETIME"
	TypeBlob        Type = "BLOB"
	TypeJSON        Type = "JSON"
	TypeUUID        Type = "UUID"
	TypeOther       Type = "OTHER"
)

var types = []Type{
	TypeBoolean,
	TypeTinyint,
	TypeSmallint,
	TypeInteger,
	TypeBigint,
	TypeFloat,
	TypeDouble,
	TypeDecimal,
	TypeChar,
	TypeVarchar,
	TypeLongvarchar,
	TypeDate,
	TypeTime,
	TypeTimestamp,
	TypeDatetime,
	TypeBlob,
	TypeJSON,
	TypeUUID,
	TypeOther,
}

// aliases maps SQL spellings found in the wild to the vocabulary.
var aliases = map[string]Type{
	"INT":                         TypeInteger,
	"INT4":                        TypeInteger,
	"INT8":                        TypeBigint,
	"INT2":                        TypeSmallint,
	"BOOL":                        TypeBoolean,
	"REAL":                        TypeDouble,
	"DOUBLE PRECISION":            TypeDouble,
	"NUMERIC":                     TypeDecimal,
	"TEXT":                        TypeLongvarchar,
	"CHARACTER":                   TypeChar,
	"CHARACTER VARYING":           TypeVarchar,
	"TIMESTAMPTZ":                 TypeTimestamp,
	"TIMESTAMP WITHOUT TIME ZONE": TypeTimestamp,
	"TIMESTAMP WITH TIME ZONE":    TypeTimestamp,
	"BYTEA":                       TypeBlob,
	"JSONB":                       TypeJSON,
}

var upper = cases.Upper(language.Und)

// Types returns the column type vocabulary.
func Types() []Type {
	return append([]Type(nil), types...)
}

// ParseType parses a declared storage type. Names are case-insensitive and a
// size or precision suffix ("VARCHAR(255)") is ignored.
func ParseType(s string) (Type, error) {
	name := normalize(s)
	for _, t := range types {
		if Type(name) == t {
			return t, nil
		}
	}
	if t, ok := aliases[name]; ok {
		return t, nil
	}
	return "", fmt.Errorf("unknown column type %q", s)
}

// LookupType is like ParseType but falls back to TypeOther for
// unrecognized names. Used when the type comes from a live database.
func LookupType(s string) Type {
	t, err := ParseType(s)
	if err != nil {
		return TypeOther
	}
	return t
}

func normalize(s string) string {
	if i := strings.IndexByte(s, '('); i >= 0 {
		s = s[:i]
	}
	return strings.Join(strings.Fields(upper.String(s)), " ")
}

// String implements the fmt.Stringer interface.
func (t Type) String() string { return string(t) }

// IsInteger reports whether t holds whole numbers. Generated code stores
// every integer kind as int64.
func (t Type) IsInteger() bool {
	switch t {
	case TypeTinyint, TypeSmallint, TypeInteger, TypeBigint:
		return true
	default:
		return false
	}
}

// IsTemporal reports whether t is one of the temporal kinds.
func (t Type) IsTemporal() bool {
	switch t {
	case TypeDate, TypeTime, TypeTimestamp, TypeDatetime:
		return true
	default:
		return false
	}
}

// HoldsTimestamp reports whether a timestamp can be stored in a column of
// type t, either as a time value or as epoch seconds.
func (t Type) HoldsTimestamp() bool {
	return t.IsTemporal() || t.IsInteger()
}
