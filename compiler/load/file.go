package load

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/syssam/weave"
)

// Extensions lists the recognized definition file extensions.
var Extensions = []string{".yaml", ".yml", ".json", ".cue"}

// IsDefinition reports whether path has a recognized extension.
func IsDefinition(path string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(path)))
}

// LoadFile reads a definition file. The format is chosen by extension.
func LoadFile(path string) (*Document, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	doc, err := Unmarshal(path, buf)
	if err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", path, err)
	}
	return doc, nil
}

// LoadDir reads every definition file directly under dir, in lexical
// order, and concatenates their tables. A table defined twice is an error.
func LoadDir(dir string) (*Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read schema directory: %w", err)
	}
	doc := &Document{}
	seen := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || !IsDefinition(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		d, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		if doc.Package == "" {
			doc.Package = d.Package
		}
		for _, s := range d.Tables {
			if prev, ok := seen[s.Name]; ok {
				return nil, weave.NewSchemaError(s.Name, "", fmt.Sprintf("defined in both %s and %s", prev, path), nil)
			}
			seen[s.Name] = path
			doc.Tables = append(doc.Tables, s)
		}
	}
	if len(doc.Tables) == 0 {
		return nil, fmt.Errorf("no schema definitions found in %s", dir)
	}
	return doc, nil
}

// Load reads path, which is either a definition file or a directory of
// definition files.
func Load(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat schema: %w", err)
	}
	if info.IsDir() {
		return LoadDir(path)
	}
	return LoadFile(path)
}

// Unmarshal decodes buf in the format implied by the extension of name.
func Unmarshal(name string, buf []byte) (*Document, error) {
	doc := &Document{}
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(buf, doc); err != nil {
			return nil, err
		}
	case ".json":
		if err := json.Unmarshal(buf, doc); err != nil {
			return nil, err
		}
	case ".cue":
		v := cuecontext.New().CompileBytes(buf, cue.Filename(name))
		if err := v.Err(); err != nil {
			return nil, fmt.Errorf("compile cue: %w", err)
		}
		// Concrete CUE values encode to JSON.
		js, err := v.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("export cue: %w", err)
		}
		if err := json.Unmarshal(js, doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported schema format %q", ext)
	}
	return doc, nil
}

// Encode writes doc as YAML.
func (d *Document) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}
	return enc.Close()
}
