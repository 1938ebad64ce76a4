package gen

import (
	"fmt"
	"strings"

	"github.com/syssam/weave/behavior"
	"github.com/syssam/weave/compiler/load"
	"github.com/syssam/weave/schema"
)

// Graph holds the tables selected for generation and their behaviors.
type Graph struct {
	*Config
	// Package is the resolved package name of generated files.
	Package string
	// Nodes are the tables in definition order.
	Nodes []*Node
}

// Node is a table together with the behaviors attached to it. A node is
// owned by the pass that generates it.
type Node struct {
	Table     *schema.Table
	Behaviors []behavior.Behavior

	augmented bool
}

// NewGraph builds the graph of doc. Behaviors are created and their
// parameters resolved here, so a bad parameter fails before any output.
func NewGraph(c *Config, doc *load.Document) (*Graph, error) {
	g := &Graph{Config: c, Package: resolvePackage(c, doc)}
	seen := make(map[string]bool)
	files := make(map[string]string)
	for _, s := range doc.Tables {
		if !c.Match(s.Name) {
			continue
		}
		if seen[s.Name] {
			return nil, NewSchemaError(s.Name, "", "duplicate table", nil)
		}
		seen[s.Name] = true
		n, err := newNode(c.registry(), s)
		if err != nil {
			return nil, err
		}
		name := n.Filename()
		if strings.HasSuffix(name, "_test.go") {
			return nil, NewSchemaError(s.Name, "", fmt.Sprintf("generated file %s would be a test file", name), nil)
		}
		if prev, ok := files[name]; ok {
			return nil, NewSchemaError(s.Name, "", fmt.Sprintf("generated file %s collides with table %s", name, prev), nil)
		}
		files[name] = s.Name
		g.Nodes = append(g.Nodes, n)
	}
	return g, nil
}

func resolvePackage(c *Config, doc *load.Document) string {
	switch {
	case c.Package != "":
		return c.Package
	case doc.Package != "":
		return doc.Package
	default:
		return DefaultPackage
	}
}

func newNode(r *behavior.Registry, s *load.Schema) (*Node, error) {
	t, err := s.Table()
	if err != nil {
		return nil, err
	}
	n := &Node{Table: t}
	for _, b := range s.Behaviors {
		bh, err := r.New(b.Name, s.Name, b.Parameters)
		if err != nil {
			return nil, err
		}
		n.Behaviors = append(n.Behaviors, bh)
	}
	return n, nil
}

// Augment runs the schema augmentation pass of n. It is a no-op after the
// first successful call.
func (n *Node) Augment() error {
	if n.augmented {
		return nil
	}
	if err := behavior.Augment(n.Table, n.Behaviors); err != nil {
		return err
	}
	n.augmented = true
	return nil
}

// Target returns the class naming of n.
func (n *Node) Target() *behavior.Target {
	return behavior.NewTarget(n.Table)
}

// Filename returns the name of the generated file of n.
func (n *Node) Filename() string {
	return strings.ToLower(n.Table.Name) + ".go"
}

// BehaviorNames returns the names of the attached behaviors, in order.
func (n *Node) BehaviorNames() []string {
	names := make([]string, len(n.Behaviors))
	for i, b := range n.Behaviors {
		names[i] = b.Name()
	}
	return names
}
