package gen

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"

	"github.com/syssam/weave/compiler/load"
	"github.com/syssam/weave/schema"
)

// everyType returns a table with one column per storage type.
func everyType() *load.Schema {
	s := &load.Schema{Name: "sample"}
	for _, typ := range schema.Types() {
		s.Columns = append(s.Columns, &load.Column{
			Name: strings.ToLower(typ.String()) + "_value",
			Type: typ.String(),
		})
	}
	return s
}

func TestGeneratedPackagesTypeCheck(t *testing.T) {
	if testing.Short() {
		t.Skip("type checking runs the go command")
	}
	variants := map[string]*load.Document{
		"blog": blog(),
		"epoch": {Tables: []*load.Schema{{
			Name: "event",
			Columns: []*load.Column{
				{Name: "id", Type: "BIGINT"},
				{Name: "created_at", Type: "BIGINT"},
				{Name: "updated_at", Type: "SMALLINT"},
				{Name: "removed_at", Type: "INTEGER"},
			},
			Behaviors: []*load.Behavior{
				{Name: "timestampable", Parameters: load.Params{"enable_high_precision": "true", "date_type": "BIGINT"}},
				{Name: "soft_delete", Parameters: load.Params{"deleted_column": "removed_at", "date_type": "INTEGER"}},
			},
		}}},
		"precise": {Tables: []*load.Schema{{
			Name:    "post",
			Columns: []*load.Column{{Name: "id", Type: "INTEGER"}},
			Behaviors: []*load.Behavior{
				{Name: "timestampable", Parameters: load.Params{"enable_high_precision": "true", "date_type": "TIMESTAMP"}},
				{Name: "soft_delete", Parameters: load.Params{"enable_high_precision": "true"}},
			},
		}}},
		"partial": {Tables: []*load.Schema{
			everyType(),
			{
				Name:    "note",
				Columns: []*load.Column{{Name: "id", Type: "INTEGER"}},
				Behaviors: []*load.Behavior{
					{Name: "timestampable", Parameters: load.Params{"disable_updated_at": "true"}},
				},
			},
		}},
	}

	// The root lives inside the module so generated imports of the
	// runtime packages resolve.
	root, err := os.MkdirTemp(".", "typecheck")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(root) })

	var patterns []string
	for name, doc := range variants {
		dir := filepath.Join(root, name)
		_, err := Generate(context.Background(), doc, WithTarget(dir), WithPackage(name))
		require.NoError(t, err, name)
		patterns = append(patterns, "./"+filepath.ToSlash(dir))
	}

	pkgs, err := packages.Load(&packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo,
	}, patterns...)
	require.NoError(t, err)
	require.Len(t, pkgs, len(variants))
	for _, pkg := range pkgs {
		require.NotEmpty(t, pkg.Syntax, pkg.PkgPath)
		for _, e := range pkg.Errors {
			t.Errorf("%s: %v", pkg.PkgPath, e)
		}
	}
}
