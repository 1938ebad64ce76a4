package gen

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/weave/behavior"
	"github.com/syssam/weave/runtime/query"
	"github.com/syssam/weave/runtime/timeutil"
	"github.com/syssam/weave/schema"
)

// Contributions holds the collected contributions of one table, per hook.
type Contributions map[behavior.HookPoint][]behavior.Contribution

// Collect queries every hook point of n, in HookPoints order. n must be
// augmented.
func Collect(n *Node) (Contributions, error) {
	tgt := n.Target()
	out := make(Contributions, len(behavior.HookPoints()))
	for _, h := range behavior.HookPoints() {
		cs, err := behavior.Collect(h, tgt, n.Behaviors)
		if err != nil {
			return nil, err
		}
		out[h] = cs
	}
	return out, nil
}

// Code returns the concatenated code of the contributions at h.
func (c Contributions) Code(h behavior.HookPoint) []jen.Code {
	var code []jen.Code
	for _, ct := range c[h] {
		code = append(code, ct.Code...)
	}
	return code
}

// ClassBuilder assembles the file of one table from its columns and the
// contributions of its behaviors.
type ClassBuilder struct {
	Package string
	Header  string
}

// Build returns the file of n. Contributions must come from Collect on the
// same node.
func (b *ClassBuilder) Build(n *Node, contribs Contributions) *jen.File {
	t := n.Target()
	f := jen.NewFile(b.Package)
	if b.Header != "" {
		f.HeaderComment(b.Header)
	}
	cols := n.Table.Columns()

	b.constants(f, t, cols)
	b.entity(f, t, cols, contribs.Code(behavior.AttributeDeclarations))
	for _, c := range cols {
		b.setter(f, t, c)
	}
	b.modification(f, t)
	b.hook(f, t, "PreInsert", "runs before the object is inserted.", contribs.Code(behavior.PreInsert))
	b.hook(f, t, "PreUpdate", "runs before the object is updated.", contribs.Code(behavior.PreUpdate))
	for _, code := range contribs.Code(behavior.InstanceMethods) {
		f.Add(code)
		f.Line()
	}
	b.query(f, t)
	for _, code := range contribs.Code(behavior.QueryMethods) {
		f.Add(code)
		f.Line()
	}
	return f
}

func (b *ClassBuilder) constants(f *jen.File, t *behavior.Target, cols []*schema.Column) {
	if len(cols) == 0 {
		return
	}
	defs := make([]jen.Code, len(cols))
	for i, c := range cols {
		defs[i] = jen.Id(t.ColumnConst(c)).Op("=").Lit(c.Name)
	}
	f.Comment("Column names of the " + t.Table.Name + " table.")
	f.Const().Defs(defs...)
	f.Line()
}

func (b *ClassBuilder) entity(f *jen.File, t *behavior.Target, cols []*schema.Column, attrs []jen.Code) {
	fields := make([]jen.Code, 0, len(cols)+len(attrs)+1)
	for _, c := range cols {
		field := jen.Id(t.Field(c)).Add(goType(c.Type)).Tag(map[string]string{"db": c.Name})
		if c.Comment != "" {
			field.Comment(c.Comment)
		}
		fields = append(fields, field)
	}
	fields = append(fields, jen.Line(), jen.Id("modified").Map(jen.String()).Bool())
	fields = append(fields, attrs...)

	doc := t.Entity + " is a row of the " + t.Table.Name + " table."
	if t.Table.Comment != "" {
		doc = t.Entity + " is a row of the " + t.Table.Name + " table. " + t.Table.Comment
	}
	f.Comment(doc)
	f.Type().Id(t.Entity).Struct(fields...)
	f.Line()
}

// setter writes Set<Prop>. Temporal setters accept epoch seconds or a
// time.Time.
func (b *ClassBuilder) setter(f *jen.File, t *behavior.Target, c *schema.Column) {
	r := t.Receiver
	param := goType(c.Type)
	value := jen.Id("value")
	if c.Type.IsTemporal() {
		param = jen.Id("any")
		value = jen.Qual(timeutil.ImportPath, "MustTime").Call(jen.Id("value"))
	}
	f.Comment(t.Setter(c) + " sets the " + c.Name + " column.")
	f.Func().Params(jen.Id(r).Op("*").Id(t.Entity)).Id(t.Setter(c)).Params(jen.Id("value").Add(param)).Op("*").Id(t.Entity).Block(
		jen.Id(r).Dot(t.Field(c)).Op("=").Add(value),
		jen.Id(r).Dot("markModified").Call(jen.Id(t.ColumnConst(c))),
		jen.Return(jen.Id(r)),
	)
	f.Line()
}

func (b *ClassBuilder) modification(f *jen.File, t *behavior.Target) {
	r := t.Receiver
	recv := func() *jen.Statement { return jen.Params(jen.Id(r).Op("*").Id(t.Entity)) }

	f.Func().Add(recv()).Id("markModified").Params(jen.Id("column").String()).Block(
		jen.If(jen.Id(r).Dot("modified").Op("==").Nil()).Block(
			jen.Id(r).Dot("modified").Op("=").Make(jen.Map(jen.String()).Bool()),
		),
		jen.Id(r).Dot("modified").Index(jen.Id("column")).Op("=").True(),
	)
	f.Line()

	f.Comment("IsModified reports whether any column was set since the last ResetModified.")
	f.Func().Add(recv()).Id("IsModified").Params().Bool().Block(
		jen.Return(jen.Len(jen.Id(r).Dot("modified")).Op(">").Lit(0)),
	)
	f.Line()

	f.Comment("IsColumnModified reports whether the column was set since the last ResetModified.")
	f.Func().Add(recv()).Id("IsColumnModified").Params(jen.Id("column").String()).Bool().Block(
		jen.Return(jen.Id(r).Dot("modified").Index(jen.Id("column"))),
	)
	f.Line()

	f.Comment("ResetModified clears the modification set. Call it after the object is saved.")
	f.Func().Add(recv()).Id("ResetModified").Params().Block(
		jen.Id(r).Dot("modified").Op("=").Nil(),
	)
	f.Line()
}

func (b *ClassBuilder) hook(f *jen.File, t *behavior.Target, name, doc string, body []jen.Code) {
	f.Comment(name + " " + doc)
	f.Func().Params(jen.Id(t.Receiver).Op("*").Id(t.Entity)).Id(name).Params().Block(body...)
	f.Line()
}

func (b *ClassBuilder) query(f *jen.File, t *behavior.Target) {
	q := t.QueryReceiver
	recv := func() *jen.Statement { return jen.Params(jen.Id(q).Op("*").Id(t.Query)) }

	f.Comment(t.Query + " builds queries over the " + t.Table.Name + " table.")
	f.Type().Id(t.Query).Struct(
		jen.Id("filters").Index().Qual(query.ImportPath, "Filter"),
		jen.Id("orders").Index().Qual(query.ImportPath, "Order"),
	)
	f.Line()

	f.Comment("New" + t.Query + " returns an empty query.")
	f.Func().Id("New" + t.Query).Params().Op("*").Id(t.Query).Block(
		jen.Return(jen.Op("&").Id(t.Query).Values()),
	)
	f.Line()

	f.Comment("FilterBy adds a condition on column.")
	f.Func().Add(recv()).Id("FilterBy").Params(
		jen.Id("column").String(),
		jen.Id("value").Id("any"),
		jen.Id("criteria").Qual(query.ImportPath, "Criteria"),
	).Op("*").Id(t.Query).Block(
		jen.Id(q).Dot("filters").Op("=").Append(jen.Id(q).Dot("filters"), jen.Qual(query.ImportPath, "Filter").Values(jen.Dict{
			jen.Id("Column"):   jen.Id("column"),
			jen.Id("Value"):    jen.Id("value"),
			jen.Id("Criteria"): jen.Id("criteria"),
		})),
		jen.Return(jen.Id(q)),
	)
	f.Line()

	f.Comment("OrderBy adds a sort term on column.")
	f.Func().Add(recv()).Id("OrderBy").Params(
		jen.Id("column").String(),
		jen.Id("direction").Qual(query.ImportPath, "Direction"),
	).Op("*").Id(t.Query).Block(
		jen.Id(q).Dot("orders").Op("=").Append(jen.Id(q).Dot("orders"), jen.Qual(query.ImportPath, "Order").Values(jen.Dict{
			jen.Id("Column"):    jen.Id("column"),
			jen.Id("Direction"): jen.Id("direction"),
		})),
		jen.Return(jen.Id(q)),
	)
	f.Line()

	f.Comment("Filters returns the conditions in the order they were added.")
	f.Func().Add(recv()).Id("Filters").Params().Index().Qual(query.ImportPath, "Filter").Block(
		jen.Return(jen.Id(q).Dot("filters")),
	)
	f.Line()

	f.Comment("Orders returns the sort terms in the order they were added.")
	f.Func().Add(recv()).Id("Orders").Params().Index().Qual(query.ImportPath, "Order").Block(
		jen.Return(jen.Id(q).Dot("orders")),
	)
	f.Line()
}

// goType returns the Go type of a column of type t.
func goType(t schema.Type) *jen.Statement {
	if t.IsInteger() {
		return jen.Int64()
	}
	switch t {
	case schema.TypeBoolean:
		return jen.Bool()
	case schema.TypeFloat, schema.TypeDouble, schema.TypeDecimal:
		return jen.Float64()
	case schema.TypeChar, schema.TypeVarchar, schema.TypeLongvarchar, schema.TypeUUID:
		return jen.String()
	case schema.TypeDate, schema.TypeTime, schema.TypeTimestamp, schema.TypeDatetime:
		return jen.Qual("time", "Time")
	case schema.TypeBlob, schema.TypeJSON:
		return jen.Index().Byte()
	default:
		return jen.Id("any")
	}
}
