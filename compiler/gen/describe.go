package gen

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/syssam/weave/behavior"
)

// Describe writes, for every table of g, the final column set and the
// behaviors contributing at each hook point. Tables are augmented as a
// side effect.
func (g *Graph) Describe(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, n := range g.Nodes {
		if err := n.Augment(); err != nil {
			return err
		}
		contribs, err := Collect(n)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(tw)
		}
		t := n.Target()
		fmt.Fprintf(tw, "%s (%s)\n", n.Table.Name, t.Entity)
		behaviors := "none"
		if len(n.Behaviors) > 0 {
			behaviors = strings.Join(n.BehaviorNames(), ", ")
		}
		fmt.Fprintf(tw, "  behaviors: %s\n", behaviors)
		fmt.Fprintln(tw, "  columns:")
		for _, c := range n.Table.Columns() {
			fmt.Fprintf(tw, "    %s\t%s\t%s\n", c.Name, c.Type, c.PropertyName())
		}
		fmt.Fprintln(tw, "  hooks:")
		for _, h := range behavior.HookPoints() {
			fmt.Fprintf(tw, "    %s\t%s\n", h, describeHook(contribs[h]))
		}
	}
	return tw.Flush()
}

func describeHook(cs []behavior.Contribution) string {
	if len(cs) == 0 {
		return "-"
	}
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = fmt.Sprintf("%s(%d)", c.Behavior, c.Len())
	}
	return strings.Join(parts, ", ")
}
