package gen

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/weave"
	"github.com/syssam/weave/behavior"
	"github.com/syssam/weave/compiler/load"
	"github.com/syssam/weave/schema"
)

func TestGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("writes one file per table", func(t *testing.T) {
		target := t.TempDir()
		report, err := Generate(ctx, blog(), WithTarget(target))
		require.NoError(t, err)
		assert.Equal(t, []string{"article.go", "author.go"}, report.Written)
		assert.NotEmpty(t, report.RunID)

		buf, err := os.ReadFile(filepath.Join(target, "article.go"))
		require.NoError(t, err)
		assert.Contains(t, string(buf), "package blog")
		assert.Contains(t, string(buf), "func (a *Article) PreInsert() {")
		assert.FileExists(t, filepath.Join(target, ManifestFile))
	})

	t.Run("missing target", func(t *testing.T) {
		_, err := Generate(ctx, blog())
		assert.True(t, errors.Is(err, weave.ErrMissingConfig))
	})

	t.Run("incremental skips unchanged files", func(t *testing.T) {
		target := t.TempDir()
		_, err := Generate(ctx, blog(), WithTarget(target), WithIncremental(true))
		require.NoError(t, err)

		report, err := Generate(ctx, blog(), WithTarget(target), WithIncremental(true))
		require.NoError(t, err)
		assert.Empty(t, report.Written)
		assert.Equal(t, []string{"article.go", "author.go"}, report.Skipped)

		doc := blog()
		doc.Tables[1].Columns = append(doc.Tables[1].Columns, &load.Column{Name: "email", Type: "VARCHAR"})
		report, err = Generate(ctx, doc, WithTarget(target), WithIncremental(true))
		require.NoError(t, err)
		assert.Equal(t, []string{"author.go"}, report.Written)
		assert.Equal(t, []string{"article.go"}, report.Skipped)
	})

	t.Run("deleted file is rewritten", func(t *testing.T) {
		target := t.TempDir()
		_, err := Generate(ctx, blog(), WithTarget(target), WithIncremental(true))
		require.NoError(t, err)
		require.NoError(t, os.Remove(filepath.Join(target, "author.go")))

		report, err := Generate(ctx, blog(), WithTarget(target), WithIncremental(true))
		require.NoError(t, err)
		assert.Equal(t, []string{"author.go"}, report.Written)
	})

	t.Run("stale files are removed", func(t *testing.T) {
		target := t.TempDir()
		_, err := Generate(ctx, blog(), WithTarget(target))
		require.NoError(t, err)

		doc := blog()
		doc.Tables = doc.Tables[:1]
		report, err := Generate(ctx, doc, WithTarget(target))
		require.NoError(t, err)
		assert.Equal(t, []string{"author.go"}, report.Removed)
		assert.NoFileExists(t, filepath.Join(target, "author.go"))
	})

	t.Run("filtered run keeps other files", func(t *testing.T) {
		target := t.TempDir()
		_, err := Generate(ctx, blog(), WithTarget(target))
		require.NoError(t, err)

		report, err := Generate(ctx, blog(), WithTarget(target), WithTables("author"))
		require.NoError(t, err)
		assert.Equal(t, []string{"author.go"}, report.Written)
		assert.Empty(t, report.Removed)
		assert.FileExists(t, filepath.Join(target, "article.go"))

		m, err := ReadManifest(target)
		require.NoError(t, err)
		assert.Len(t, m.Files, 2)
	})

	t.Run("configuration error writes nothing", func(t *testing.T) {
		target := t.TempDir()
		doc := blog()
		doc.Tables[1].Behaviors = []*load.Behavior{{Name: "broken"}}

		reg := DefaultRegistry()
		reg.Register("broken", newBroken)
		_, err := Generate(ctx, doc, WithTarget(target), WithRegistry(reg), WithWorkers(1))
		require.Error(t, err)
		assert.True(t, errors.Is(err, weave.ErrGenerationFailed))
		assert.True(t, weave.IsConfigError(err))

		var gerr *GenerationError
		require.True(t, errors.As(err, &gerr))
		assert.Equal(t, PhaseContribute, gerr.Phase)
		assert.Equal(t, "author", gerr.Table)

		entries, err := os.ReadDir(target)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("logs summary", func(t *testing.T) {
		var buf bytes.Buffer
		l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		_, err := Generate(ctx, blog(), WithTarget(t.TempDir()), WithLogger(l))
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "generation finished")
		assert.Contains(t, buf.String(), "table=article")
		assert.Contains(t, buf.String(), "run_id=")
	})

	t.Run("canceled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		target := t.TempDir()
		_, err := Generate(cctx, blog(), WithTarget(target))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

// broken refers to a column it never adds.
type broken struct{ table string }

func newBroken(table string, _ map[string]string) (behavior.Behavior, error) {
	return &broken{table: table}, nil
}

func (b *broken) Name() string                      { return "broken" }
func (b *broken) Parameters() behavior.Params       { return nil }
func (b *broken) AugmentSchema(*schema.Table) error { return nil }

func (b *broken) Contribute(h behavior.HookPoint, t *behavior.Target) (behavior.Contribution, error) {
	if h != behavior.PreInsert {
		return behavior.Empty(b.Name(), h), nil
	}
	if !t.Table.HasColumn("published_at") {
		return behavior.Contribution{}, weave.NewParamError(b.table, b.Name(), "column", "published_at", "column not found on table")
	}
	return behavior.Empty(b.Name(), h), nil
}

func TestManifest(t *testing.T) {
	dir := t.TempDir()
	m, err := ReadManifest(dir)
	require.NoError(t, err)
	assert.Empty(t, m.Files)

	m = newManifest("run")
	m.Files["a.go"] = digest([]byte("package a"))
	require.NoError(t, m.Write(dir))

	back, err := ReadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, "run", back.RunID)
	assert.True(t, back.Unchanged("a.go", []byte("package a")))
	assert.False(t, back.Unchanged("a.go", []byte("package b")))
	assert.False(t, back.Unchanged("b.go", []byte("package a")))

	t.Run("corrupt", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte{0xc1}, 0o644))
		_, err := ReadManifest(dir)
		assert.ErrorContains(t, err, "decode manifest")
	})
}

func TestDescribe(t *testing.T) {
	g := newTestGraph(t, blog())
	var buf bytes.Buffer
	require.NoError(t, g.Describe(&buf))

	out := buf.String()
	assert.Contains(t, out, "article (Article)\n  behaviors: timestampable, soft_delete\n")
	assert.Contains(t, out, "author (Author)\n  behaviors: none\n")
	assert.Regexp(t, `deleted_at\s+TIMESTAMP\s+DeletedAt`, out)
	assert.Regexp(t, `query-methods\s+timestampable\(6\), soft_delete\(2\)`, out)
	assert.Regexp(t, `pre-update\s+-`, out)
}
