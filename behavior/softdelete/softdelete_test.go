package softdelete_test

import (
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/weave"
	"github.com/syssam/weave/behavior"
	"github.com/syssam/weave/behavior/softdelete"
	"github.com/syssam/weave/behavior/timestampable"
	"github.com/syssam/weave/schema"
)

func render(c behavior.Contribution) string {
	f := jen.NewFile("model")
	for _, code := range c.Code {
		f.Add(code)
	}
	return f.GoString()
}

func TestSoftDelete(t *testing.T) {
	tbl := schema.NewTable("article")
	b, err := softdelete.New(tbl.Name, nil)
	require.NoError(t, err)
	require.NoError(t, b.AugmentSchema(tbl))
	require.NoError(t, b.AugmentSchema(tbl))
	assert.Equal(t, 1, tbl.NumColumns())

	c, ok := tbl.Column("deleted_at")
	require.True(t, ok)
	assert.Equal(t, schema.TypeTimestamp, c.Type)

	tgt := behavior.NewTarget(tbl)
	for _, h := range []behavior.HookPoint{behavior.AttributeDeclarations, behavior.PreInsert, behavior.PreUpdate} {
		c, err := b.Contribute(h, tgt)
		require.NoError(t, err)
		assert.True(t, c.IsEmpty(), h.String())
	}

	t.Run("instance methods", func(t *testing.T) {
		c, err := b.Contribute(behavior.InstanceMethods, tgt)
		require.NoError(t, err)
		require.Equal(t, 3, c.Len())
		out := render(c)
		assert.Contains(t, out, "func (a *Article) SoftDelete() *Article {")
		assert.Contains(t, out, "a.SetDeletedAt(timeutil.Epoch())")
		assert.Contains(t, out, "a.SetDeletedAt(time.Time{})")
		assert.Contains(t, out, "return !a.DeletedAt.IsZero()")
	})

	t.Run("query methods", func(t *testing.T) {
		c, err := b.Contribute(behavior.QueryMethods, tgt)
		require.NoError(t, err)
		require.Equal(t, 2, c.Len())
		out := render(c)
		assert.Contains(t, out, "return q.FilterBy(ArticleColumnDeletedAt, nil, query.IsNull)")
		assert.Contains(t, out, "return q.FilterBy(ArticleColumnDeletedAt, nil, query.IsNotNull)")
	})
}

func TestIntegerColumn(t *testing.T) {
	tbl := schema.NewTable("article")
	tbl.AddColumn(schema.NewColumn("removed", schema.TypeInteger))
	b, err := softdelete.New(tbl.Name, map[string]string{
		"deleted_column":        "removed",
		"enable_high_precision": "true",
	})
	require.NoError(t, err)
	require.NoError(t, b.AugmentSchema(tbl))

	c, err := b.Contribute(behavior.InstanceMethods, behavior.NewTarget(tbl))
	require.NoError(t, err)
	out := render(c)
	assert.Contains(t, out, "a.SetRemoved(timeutil.Epoch())")
	assert.Contains(t, out, "a.SetRemoved(0)")
	assert.Contains(t, out, "return a.Removed != 0")
}

func TestBigintColumn(t *testing.T) {
	tbl := schema.NewTable("article")
	b, err := softdelete.New(tbl.Name, map[string]string{
		"date_type":             "BIGINT",
		"enable_high_precision": "true",
	})
	require.NoError(t, err)
	require.NoError(t, b.AugmentSchema(tbl))

	c, err := b.Contribute(behavior.InstanceMethods, behavior.NewTarget(tbl))
	require.NoError(t, err)
	out := render(c)
	assert.Contains(t, out, "a.SetDeletedAt(timeutil.Epoch())")
	assert.Contains(t, out, "return a.DeletedAt != 0")
}

func TestColumnType(t *testing.T) {
	tbl := schema.NewTable("article")
	tbl.AddColumn(schema.NewColumn("deleted_at", schema.TypeBoolean))
	b, err := softdelete.New(tbl.Name, nil)
	require.NoError(t, err)
	require.NoError(t, b.AugmentSchema(tbl))

	for _, h := range []behavior.HookPoint{behavior.InstanceMethods, behavior.QueryMethods} {
		_, err := b.Contribute(h, behavior.NewTarget(tbl))
		require.Error(t, err, h.String())
		assert.True(t, weave.IsConfigError(err))
		assert.Contains(t, err.Error(), "deleted_column")
		assert.Contains(t, err.Error(), "cannot hold a timestamp")
	}
}

func TestInvalidConfig(t *testing.T) {
	for param, value := range map[string]string{
		"deleted_column":        "",
		"date_type":             "POINT",
		"enable_high_precision": "on",
	} {
		t.Run(param, func(t *testing.T) {
			_, err := softdelete.New("article", map[string]string{param: value})
			require.Error(t, err)
			assert.True(t, weave.IsConfigError(err))
			assert.Contains(t, err.Error(), param)
		})
	}

	t.Run("text date type", func(t *testing.T) {
		_, err := softdelete.New("article", map[string]string{"date_type": "VARCHAR"})
		require.Error(t, err)
		assert.True(t, weave.IsConfigError(err))
		assert.Contains(t, err.Error(), "cannot hold a timestamp")
	})
}

func TestMissingColumn(t *testing.T) {
	tbl := schema.NewTable("article")
	b, err := softdelete.New(tbl.Name, nil)
	require.NoError(t, err)

	_, err = b.Contribute(behavior.QueryMethods, behavior.NewTarget(tbl))
	assert.True(t, weave.IsConfigError(err))
}

func TestComposition(t *testing.T) {
	r := behavior.NewRegistry()
	timestampable.Register(r)
	softdelete.Register(r)

	tbl := schema.NewTable("article")
	tbl.AddColumn(schema.NewColumn("title", schema.TypeVarchar))

	var behaviors []behavior.Behavior
	for _, name := range []string{"timestampable", "soft_delete"} {
		b, err := r.New(name, tbl.Name, nil)
		require.NoError(t, err)
		behaviors = append(behaviors, b)
	}
	require.NoError(t, behavior.Augment(tbl, behaviors))

	var names []string
	for _, c := range tbl.Columns() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"title", "created_at", "updated_at", "deleted_at"}, names)

	tgt := behavior.NewTarget(tbl)
	got, err := behavior.Collect(behavior.QueryMethods, tgt, behaviors)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "timestampable", got[0].Behavior)
	assert.Equal(t, "soft_delete", got[1].Behavior)

	got, err = behavior.Collect(behavior.InstanceMethods, tgt, behaviors)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Len())
	assert.Equal(t, 3, got[1].Len())
}
