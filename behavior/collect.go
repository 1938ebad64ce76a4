package behavior

import (
	"fmt"

	"github.com/syssam/weave/schema"
)

// Collect asks every behavior for its contribution at h, in attachment
// order, and returns the non-empty ones. The first error aborts collection.
func Collect(h HookPoint, t *Target, behaviors []Behavior) ([]Contribution, error) {
	var out []Contribution
	for _, b := range behaviors {
		c, err := b.Contribute(h, t)
		if err != nil {
			return nil, err
		}
		if c.IsEmpty() {
			continue
		}
		if c.Hook != h {
			return nil, fmt.Errorf("behavior %s: contribution for %s returned at %s", b.Name(), h, c.Hook)
		}
		out = append(out, c)
	}
	return out, nil
}

// Augment runs AugmentSchema of every behavior in attachment order.
func Augment(t *schema.Table, behaviors []Behavior) error {
	for _, b := range behaviors {
		if err := b.AugmentSchema(t); err != nil {
			return err
		}
	}
	return nil
}
