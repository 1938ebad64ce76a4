// Package load reads schema definition files into tables and the behavior
// declarations attached to them.
package load

import (
	"bytes"
	"encoding/json"
	"fmt"
	"go/token"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/syssam/weave"
	"github.com/syssam/weave/schema"
)

// Document is a schema definition file.
type Document struct {
	// Package is the package name of generated code. Optional.
	Package string    `json:"package,omitempty" yaml:"package,omitempty"`
	Tables  []*Schema `json:"tables" yaml:"tables"`
}

// Schema is a table definition.
type Schema struct {
	Name      string      `json:"name" yaml:"name"`
	Entity    string      `json:"entity,omitempty" yaml:"entity,omitempty"`
	Comment   string      `json:"comment,omitempty" yaml:"comment,omitempty"`
	Columns   []*Column   `json:"columns,omitempty" yaml:"columns,omitempty"`
	Behaviors []*Behavior `json:"behaviors,omitempty" yaml:"behaviors,omitempty"`
}

// Column is a column definition.
type Column struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Property string `json:"property,omitempty" yaml:"property,omitempty"`
	Comment  string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// Behavior is a behavior declaration. Parameters override the behavior's
// defaults.
type Behavior struct {
	Name       string `json:"name" yaml:"name"`
	Parameters Params `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// Params holds behavior parameter overrides. Values are kept in their
// literal form: a YAML or JSON true becomes "true", 10 becomes "10".
type Params map[string]string

// UnmarshalYAML implements yaml.Unmarshaler for Params.
func (p *Params) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: parameters must be a mapping", node.Line)
	}
	params := make(Params, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: parameter %q must be a scalar", v.Line, k.Value)
		}
		params[k.Value] = v.Value
	}
	*p = params
	return nil
}

// UnmarshalJSON implements json.Unmarshaler for Params.
func (p *Params) UnmarshalJSON(buf []byte) error {
	raw := make(map[string]any)
	dec := json.NewDecoder(bytes.NewReader(buf))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	params := make(Params, len(raw))
	for k, v := range raw {
		switch v := v.(type) {
		case string:
			params[k] = v
		case bool:
			params[k] = strconv.FormatBool(v)
		case json.Number:
			params[k] = v.String()
		default:
			return fmt.Errorf("parameter %q must be a scalar, got %T", k, v)
		}
	}
	*p = params
	return nil
}

// Table converts the definition into a schema table. Column types are
// parsed strictly and column names must be unique.
func (s *Schema) Table() (*schema.Table, error) {
	if s.Name == "" {
		return nil, weave.NewSchemaError("", "", "table name is required", nil)
	}
	t := schema.NewTable(s.Name)
	t.Comment = s.Comment
	if s.Entity != "" {
		t.WithEntity(s.Entity)
	}
	if !isGoName(t.EntityName()) {
		return nil, weave.NewSchemaError(s.Name, "", fmt.Sprintf("entity name %q is not a valid Go identifier", t.EntityName()), nil)
	}
	for _, c := range s.Columns {
		typ, err := schema.ParseType(c.Type)
		if err != nil {
			return nil, weave.NewSchemaError(s.Name, c.Name, "invalid column type", err)
		}
		col := schema.NewColumn(c.Name, typ)
		col.Comment = c.Comment
		if c.Property != "" {
			col.WithProperty(c.Property)
		}
		if !isGoName(col.PropertyName()) {
			return nil, weave.NewSchemaError(s.Name, c.Name, fmt.Sprintf("property name %q is not a valid Go identifier", col.PropertyName()), nil)
		}
		if !t.AddColumn(col) {
			return nil, weave.NewSchemaError(s.Name, c.Name, "duplicate column", nil)
		}
	}
	return t, nil
}

// isGoName reports whether name can be declared as a type, field or method.
func isGoName(name string) bool {
	return name != "_" && token.IsIdentifier(name)
}

// FromTable returns the definition of t, without behaviors.
func FromTable(t *schema.Table) *Schema {
	s := &Schema{Name: t.Name, Comment: t.Comment}
	for _, c := range t.Columns() {
		s.Columns = append(s.Columns, &Column{Name: c.Name, Type: c.Type.String(), Comment: c.Comment})
	}
	return s
}
