package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/weave"
	"github.com/syssam/weave/compiler/load"
)

// blog returns a document with an article table using both built-in
// behaviors and a plain author table.
func blog() *load.Document {
	return &load.Document{
		Package: "blog",
		Tables: []*load.Schema{
			{
				Name: "article",
				Columns: []*load.Column{
					{Name: "id", Type: "INTEGER"},
					{Name: "title", Type: "VARCHAR"},
				},
				Behaviors: []*load.Behavior{
					{Name: "timestampable"},
					{Name: "soft_delete"},
				},
			},
			{
				Name: "author",
				Columns: []*load.Column{
					{Name: "id", Type: "INTEGER"},
					{Name: "name", Type: "TEXT"},
				},
			},
		},
	}
}

func newTestGraph(t *testing.T, doc *load.Document, opts ...Option) *Graph {
	t.Helper()
	c, err := NewConfig(opts...)
	require.NoError(t, err)
	g, err := NewGraph(c, doc)
	require.NoError(t, err)
	return g
}

func TestNewGraph(t *testing.T) {
	t.Run("nodes in definition order", func(t *testing.T) {
		g := newTestGraph(t, blog())
		require.Len(t, g.Nodes, 2)
		assert.Equal(t, "blog", g.Package)
		assert.Equal(t, "article", g.Nodes[0].Table.Name)
		assert.Equal(t, []string{"timestampable", "soft_delete"}, g.Nodes[0].BehaviorNames())
		assert.Empty(t, g.Nodes[1].Behaviors)
		assert.Equal(t, "article.go", g.Nodes[0].Filename())
	})

	t.Run("package precedence", func(t *testing.T) {
		assert.Equal(t, "model", newTestGraph(t, &load.Document{}).Package)
		assert.Equal(t, "custom", newTestGraph(t, blog(), WithPackage("custom")).Package)
	})

	t.Run("table filter", func(t *testing.T) {
		g := newTestGraph(t, blog(), WithTables("auth*"))
		require.Len(t, g.Nodes, 1)
		assert.Equal(t, "author", g.Nodes[0].Table.Name)
	})

	t.Run("unknown behavior", func(t *testing.T) {
		doc := blog()
		doc.Tables[1].Behaviors = []*load.Behavior{{Name: "sluggable"}}
		c, err := NewConfig()
		require.NoError(t, err)
		_, err = NewGraph(c, doc)
		assert.True(t, errors.Is(err, weave.ErrInvalidSchema))
	})

	t.Run("bad parameter", func(t *testing.T) {
		doc := blog()
		doc.Tables[0].Behaviors[0].Parameters = load.Params{"disable_updated_at": "yes"}
		c, err := NewConfig()
		require.NoError(t, err)
		_, err = NewGraph(c, doc)
		require.Error(t, err)
		var cerr *ConfigError
		require.True(t, errors.As(err, &cerr))
		assert.Equal(t, "article", cerr.Table)
		assert.Equal(t, "disable_updated_at", cerr.Parameter)
	})

	t.Run("colliding file names", func(t *testing.T) {
		doc := blog()
		doc.Tables = append(doc.Tables, &load.Schema{Name: "Article", Entity: "Story"})
		c, err := NewConfig()
		require.NoError(t, err)
		_, err = NewGraph(c, doc)
		assert.True(t, errors.Is(err, weave.ErrInvalidSchema))
		assert.ErrorContains(t, err, "article.go collides with table article")
	})

	t.Run("test file name", func(t *testing.T) {
		doc := blog()
		doc.Tables = append(doc.Tables, &load.Schema{Name: "load_test"})
		c, err := NewConfig()
		require.NoError(t, err)
		_, err = NewGraph(c, doc)
		assert.True(t, errors.Is(err, weave.ErrInvalidSchema))
		assert.ErrorContains(t, err, "load_test.go would be a test file")
	})

	t.Run("duplicate table", func(t *testing.T) {
		doc := blog()
		doc.Tables = append(doc.Tables, &load.Schema{Name: "author"})
		c, err := NewConfig()
		require.NoError(t, err)
		_, err = NewGraph(c, doc)
		assert.ErrorContains(t, err, "duplicate table")
	})
}

func TestNodeAugment(t *testing.T) {
	g := newTestGraph(t, blog())
	n := g.Nodes[0]
	require.NoError(t, n.Augment())
	require.NoError(t, n.Augment())

	var names []string
	for _, c := range n.Table.Columns() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"id", "title", "created_at", "updated_at", "deleted_at"}, names)
}
