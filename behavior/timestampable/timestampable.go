// Package timestampable implements the timestampable behavior. It adds a
// creation and a modification timestamp column to a table, touches them
// before insert and update, and adds recency filters and orderings to the
// query builder.
package timestampable

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/weave"
	"github.com/syssam/weave/behavior"
	"github.com/syssam/weave/runtime/query"
	"github.com/syssam/weave/schema"
)

// KeepFlag is the entity field that suppresses touching the update column
// on the next save.
const KeepFlag = "keepUpdateDateUnchanged"

// DefaultRecentDays is the window of the Recently* query methods when the
// caller passes no day count.
const DefaultRecentDays = 7

// Behavior is a resolved timestampable behavior attached to one table.
type Behavior struct {
	params behavior.Params
	cfg    Config
}

var _ behavior.Behavior = (*Behavior)(nil)

// New resolves overrides against Defaults and parses the result.
func New(table string, overrides map[string]string) (*Behavior, error) {
	p := behavior.Resolve(Defaults(), overrides)
	cfg, err := ParseConfig(table, p)
	if err != nil {
		return nil, err
	}
	return &Behavior{params: p, cfg: cfg}, nil
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

// Config returns the typed configuration.
func (b *Behavior) Config() Config { return b.cfg }

// AugmentSchema adds the enabled timestamp columns that t does not already
// declare. Existing columns keep their declared type.
func (b *Behavior) AugmentSchema(t *schema.Table) error {
	if b.cfg.CreatedAt {
		t.AddColumn(schema.NewColumn(b.cfg.CreateColumn, b.cfg.DateType))
	}
	if b.cfg.UpdatedAt {
		t.AddColumn(schema.NewColumn(b.cfg.UpdateColumn, b.cfg.DateType))
	}
	return nil
}

// Contribute implements behavior.Behavior.
func (b *Behavior) Contribute(h behavior.HookPoint, t *behavior.Target) (behavior.Contribution, error) {
	c := behavior.Empty(Name, h)
	var err error
	switch h {
	case behavior.AttributeDeclarations:
		b.attributes(&c)
	case behavior.PreInsert:
		err = b.preInsert(&c, t)
	case behavior.PreUpdate:
		err = b.preUpdate(&c, t)
	case behavior.InstanceMethods:
		b.instanceMethods(&c, t)
	case behavior.QueryMethods:
		err = b.queryMethods(&c, t)
	}
	if err != nil {
		return behavior.Empty(Name, h), err
	}
	return c, nil
}

// column resolves a configured column on the augmented table. A declared
// column keeps its own type, which must be temporal or integer.
func (b *Behavior) column(t *behavior.Target, param, name string) (*schema.Column, error) {
	col, ok := t.Table.Column(name)
	if !ok {
		return nil, weave.NewParamError(t.Table.Name, Name, param, name, "column not found on table")
	}
	if !col.Type.HoldsTimestamp() {
		return nil, weave.NewParamError(t.Table.Name, Name, param, name, fmt.Sprintf("column of type %s cannot hold a timestamp", col.Type))
	}
	return col, nil
}

func (b *Behavior) attributes(c *behavior.Contribution) {
	if !b.cfg.UpdatedAt {
		return
	}
	c.Add(jen.Id(KeepFlag).Bool().Comment("skip touching the update column on the next save"))
}

// touch assigns col its value expression unless the caller set it.
func (b *Behavior) touch(t *behavior.Target, col *schema.Column) jen.Code {
	r := jen.Id(t.Receiver)
	return jen.If(jen.Op("!").Add(r.Clone().Dot("IsColumnModified").Call(jen.Id(t.ColumnConst(col))))).Block(
		r.Clone().Dot(t.Setter(col)).Call(ValueExpr(col, b.cfg.HighPrecision)),
	)
}

func (b *Behavior) preInsert(c *behavior.Contribution, t *behavior.Target) error {
	if b.cfg.CreatedAt {
		col, err := b.column(t, ParamCreateColumn, b.cfg.CreateColumn)
		if err != nil {
			return err
		}
		c.Add(b.touch(t, col))
	}
	if b.cfg.UpdatedAt {
		col, err := b.column(t, ParamUpdateColumn, b.cfg.UpdateColumn)
		if err != nil {
			return err
		}
		c.Add(b.touch(t, col))
	}
	return nil
}

func (b *Behavior) preUpdate(c *behavior.Contribution, t *behavior.Target) error {
	if !b.cfg.UpdatedAt {
		return nil
	}
	col, err := b.column(t, ParamUpdateColumn, b.cfg.UpdateColumn)
	if err != nil {
		return err
	}
	r := jen.Id(t.Receiver)
	c.Add(jen.If(
		r.Clone().Dot("IsModified").Call().
			Op("&&").Op("!").Add(r.Clone().Dot(KeepFlag)).
			Op("&&").Op("!").Add(r.Clone().Dot("IsColumnModified").Call(jen.Id(t.ColumnConst(col)))),
	).Block(
		r.Clone().Dot(t.Setter(col)).Call(ValueExpr(col, b.cfg.HighPrecision)),
	))
	return nil
}

func (b *Behavior) instanceMethods(c *behavior.Contribution, t *behavior.Target) {
	if !b.cfg.UpdatedAt {
		return
	}
	r := t.Receiver
	c.Add(jen.Comment("KeepUpdateDateUnchanged prevents the next save from touching the update column.").Line().
		Func().Params(jen.Id(r).Op("*").Id(t.Entity)).Id("KeepUpdateDateUnchanged").Params().Op("*").Id(t.Entity).
		Block(
			jen.Id(r).Dot(KeepFlag).Op("=").True(),
			jen.Return(jen.Id(r)),
		))
}

func (b *Behavior) queryMethods(c *behavior.Contribution, t *behavior.Target) error {
	if b.cfg.UpdatedAt {
		col, err := b.column(t, ParamUpdateColumn, b.cfg.UpdateColumn)
		if err != nil {
			return err
		}
		c.Add(recencyMethods(t, col, "Updated")...)
	}
	if b.cfg.CreatedAt {
		col, err := b.column(t, ParamCreateColumn, b.cfg.CreateColumn)
		if err != nil {
			return err
		}
		c.Add(recencyMethods(t, col, "Created")...)
	}
	return nil
}

// recencyMethods returns Recently<verb>, Last<verb>First and
// First<verb>First for col.
func recencyMethods(t *behavior.Target, col *schema.Column, verb string) []jen.Code {
	q := t.QueryReceiver
	recv := jen.Id(q).Op("*").Id(t.Query)
	ret := jen.Op("*").Id(t.Query)
	name := jen.Id(t.ColumnConst(col))
	order := func(method, dir, doc string) jen.Code {
		return jen.Comment(method+" "+doc).Line().
			Func().Params(recv.Clone()).Id(method).Params().Add(ret.Clone()).
			Block(
				jen.Return(jen.Id(q).Dot("OrderBy").Call(name.Clone(), jen.Qual(query.ImportPath, dir))),
			)
	}
	recently := "Recently" + verb
	doc := recently + " filters by objects " + strings.ToLower(verb) + " within the last days, 7 unless given."
	return []jen.Code{
		jen.Comment(doc).Line().
			Func().Params(recv.Clone()).Id(recently).Params(jen.Id("days").Op("...").Int()).Add(ret.Clone()).
			Block(
				jen.Id("n").Op(":=").Lit(DefaultRecentDays),
				jen.If(jen.Len(jen.Id("days")).Op(">").Lit(0)).Block(
					jen.Id("n").Op("=").Id("days").Index(jen.Lit(0)),
				),
				jen.Return(jen.Id(q).Dot("FilterBy").Call(
					name.Clone(),
					SinceExpr(col, jen.Id("n")),
					jen.Qual(query.ImportPath, "GreaterEqual"),
				)),
			),
		order("Last"+verb+"First", "Desc", "orders by "+col.Name+", newest first."),
		order("First"+verb+"First", "Asc", "orders by "+col.Name+", oldest first."),
	}
}
