// Package softdelete implements the soft_delete behavior. Rows are marked
// with a deletion timestamp instead of being removed.
//
// Parameters:
//
//	deleted_column         name of the deletion column (deleted_at)
//	date_type              storage type of an added column (TIMESTAMP)
//	enable_high_precision  sub-second deletion stamps (false)
package softdelete

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/weave"
	"github.com/syssam/weave/behavior"
	"github.com/syssam/weave/behavior/timestampable"
	"github.com/syssam/weave/runtime/query"
	"github.com/syssam/weave/schema"
)

// Name is the behavior name used in schema definitions.
const Name = "soft_delete"

// Parameter names.
const (
	ParamDeletedColumn       = "deleted_column"
	ParamDateType            = "date_type"
	ParamEnableHighPrecision = "enable_high_precision"
)

// Defaults returns the compiled-in parameter defaults.
func Defaults() map[string]string {
	return map[string]string{
		ParamDeletedColumn:       "deleted_at",
		ParamDateType:            "TIMESTAMP",
		ParamEnableHighPrecision: "false",
	}
}

// Behavior is a resolved soft_delete behavior attached to one table.
type Behavior struct {
	params        behavior.Params
	column        string
	dateType      schema.Type
	highPrecision bool
}

var _ behavior.Behavior = (*Behavior)(nil)

// New resolves overrides against Defaults and parses the result.
func New(table string, overrides map[string]string) (*Behavior, error) {
	p := behavior.Resolve(Defaults(), overrides)
	b := &Behavior{params: p, column: p.Get(ParamDeletedColumn)}
	if b.column == "" {
		return nil, weave.NewParamError(table, Name, ParamDeletedColumn, nil, "column name cannot be empty")
	}
	typ, err := schema.ParseType(p.Get(ParamDateType))
	if err != nil {
		return nil, weave.NewParamError(table, Name, ParamDateType, p.Get(ParamDateType), err.Error())
	}
	if !typ.HoldsTimestamp() {
		return nil, weave.NewParamError(table, Name, ParamDateType, p.Get(ParamDateType), "type cannot hold a timestamp")
	}
	b.dateType = typ
	if b.highPrecision, err = p.ParseBool(ParamEnableHighPrecision); err != nil {
		return nil, weave.NewParamError(table, Name, ParamEnableHighPrecision, p.Get(ParamEnableHighPrecision), err.Error())
	}
	return b, nil
}

// Factory is the behavior.Factory registered under Name.
func Factory(table string, overrides map[string]string) (behavior.Behavior, error) {
	b, err := New(table, overrides)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Register adds the behavior to r.
func Register(r *behavior.Registry) {
	r.Register(Name, Factory)
}

// Name implements behavior.Behavior.
func (*Behavior) Name() string { return Name }

// Parameters implements behavior.Behavior.
func (b *Behavior) Parameters() behavior.Params { return b.params }

// AugmentSchema adds the deletion column unless t declares it.
func (b *Behavior) AugmentSchema(t *schema.Table) error {
	t.AddColumn(schema.NewColumn(b.column, b.dateType))
	return nil
}

// Contribute implements behavior.Behavior.
func (b *Behavior) Contribute(h behavior.HookPoint, t *behavior.Target) (behavior.Contribution, error) {
	c := behavior.Empty(Name, h)
	if h != behavior.InstanceMethods && h != behavior.QueryMethods {
		return c, nil
	}
	col, ok := t.Table.Column(b.column)
	if !ok {
		return c, weave.NewParamError(t.Table.Name, Name, ParamDeletedColumn, b.column, "column not found on table")
	}
	if !col.Type.HoldsTimestamp() {
		return c, weave.NewParamError(t.Table.Name, Name, ParamDeletedColumn, b.column, fmt.Sprintf("column of type %s cannot hold a timestamp", col.Type))
	}
	if h == behavior.InstanceMethods {
		c.Add(b.instanceMethods(t, col)...)
	} else {
		c.Add(queryMethods(t, col)...)
	}
	return c, nil
}

func (b *Behavior) instanceMethods(t *behavior.Target, col *schema.Column) []jen.Code {
	r := t.Receiver
	recv := jen.Id(r).Op("*").Id(t.Entity)
	field := jen.Id(r).Dot(t.Field(col))

	zero, deleted := jen.Lit(0), field.Clone().Op("!=").Lit(0)
	if !col.Type.IsInteger() {
		zero = jen.Qual("time", "Time").Values()
		deleted = jen.Op("!").Add(field.Clone()).Dot("IsZero").Call()
	}
	return []jen.Code{
		jen.Comment("SoftDelete marks the object as deleted. The row is kept.").Line().
			Func().Params(recv.Clone()).Id("SoftDelete").Params().Op("*").Id(t.Entity).
			Block(
				jen.Id(r).Dot(t.Setter(col)).Call(timestampable.ValueExpr(col, b.highPrecision)),
				jen.Return(jen.Id(r)),
			),
		jen.Comment("Restore clears the deletion mark.").Line().
			Func().Params(recv.Clone()).Id("Restore").Params().Op("*").Id(t.Entity).
			Block(
				jen.Id(r).Dot(t.Setter(col)).Call(zero),
				jen.Return(jen.Id(r)),
			),
		jen.Comment("IsDeleted reports whether the object carries a deletion mark.").Line().
			Func().Params(recv.Clone()).Id("IsDeleted").Params().Bool().
			Block(jen.Return(deleted)),
	}
}

func queryMethods(t *behavior.Target, col *schema.Column) []jen.Code {
	q := t.QueryReceiver
	filter := func(method, criteria, doc string) jen.Code {
		return jen.Comment(method+" "+doc).Line().
			Func().Params(jen.Id(q).Op("*").Id(t.Query)).Id(method).Params().Op("*").Id(t.Query).
			Block(
				jen.Return(jen.Id(q).Dot("FilterBy").Call(
					jen.Id(t.ColumnConst(col)),
					jen.Nil(),
					jen.Qual(query.ImportPath, criteria),
				)),
			)
	}
	return []jen.Code{
		filter("WithoutDeleted", "IsNull", "excludes soft deleted objects."),
		filter("OnlyDeleted", "IsNotNull", "keeps soft deleted objects only."),
	}
}
