package gen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"
)

// output is a rendered file waiting to be written.
type output struct {
	table   string
	name    string // relative to the target directory
	content []byte
}

// render renders f and formats it with goimports.
func render(table, name string, f *jen.File) (*output, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, NewGenerationError(PhaseRender, table, name, "render file", err)
	}
	formatted, err := imports.Process(name, buf.Bytes(), nil)
	if err != nil {
		return nil, NewGenerationError(PhaseFormat, table, name, "format file", err)
	}
	return &output{table: table, name: name, content: formatted}, nil
}

// write writes out under dir.
func (o *output) write(dir string) error {
	path := filepath.Join(dir, o.name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return NewGenerationError(PhaseWrite, o.table, o.name, "create directory", err)
	}
	if err := os.WriteFile(path, o.content, 0o644); err != nil {
		return NewGenerationError(PhaseWrite, o.table, o.name, "write file", err)
	}
	return nil
}

// exists reports whether the file of o is present under dir.
func (o *output) exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, o.name))
	return err == nil
}

// remove deletes a file recorded by a previous run.
func remove(dir, name string) error {
	err := os.Remove(filepath.Join(dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stale file %s: %w", name, err)
	}
	return nil
}
