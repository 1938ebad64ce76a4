package timestampable

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/weave/runtime/timeutil"
	"github.com/syssam/weave/schema"
)

// Precision is the timestamp encoding chosen for a column.
type Precision uint8

const (
	// Epoch encodes the current time as whole seconds since the Unix epoch.
	Epoch Precision = iota
	// High encodes the current time with sub-second precision.
	High
)

// String implements the fmt.Stringer interface.
func (p Precision) String() string {
	if p == High {
		return "high"
	}
	return "epoch"
}

// PrecisionFor selects the encoding for c. An integer column of any width
// always gets Epoch, even when high precision was requested, since it
// cannot hold sub-second values.
func PrecisionFor(c *schema.Column, highPrecision bool) Precision {
	if c.Type.IsInteger() || !highPrecision {
		return Epoch
	}
	return High
}

// ValueExpr returns the expression assigned to c when it is touched. The
// choice is made here, at generation time; the generated code holds only
// the selected expression.
//
//	timeutil.Epoch()   // Epoch
//	timeutil.Now()     // High
func ValueExpr(c *schema.Column, highPrecision bool) *jen.Statement {
	if PrecisionFor(c, highPrecision) == High {
		return jen.Qual(timeutil.ImportPath, "Now").Call()
	}
	return jen.Qual(timeutil.ImportPath, "Epoch").Call()
}

// SinceExpr returns the lower bound for "within the last <days> days"
// filters on c, in the column's encoding.
//
//	timeutil.DaysAgo(n).Unix()   // integer column
//	timeutil.DaysAgo(n)          // temporal column
func SinceExpr(c *schema.Column, days jen.Code) *jen.Statement {
	s := jen.Qual(timeutil.ImportPath, "DaysAgo").Call(days)
	if c.Type.IsInteger() {
		return s.Dot("Unix").Call()
	}
	return s
}
