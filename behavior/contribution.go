package behavior

import "github.com/dave/jennifer/jen"

// Contribution is the code a behavior splices into one hook point.
type Contribution struct {
	// Hook is the hook point the code belongs to.
	Hook HookPoint
	// Behavior is the name of the contributing behavior.
	Behavior string
	// Code holds one complete statement or declaration per element.
	Code []jen.Code
}

// Empty returns the "no contribution" value for hook h.
func Empty(name string, h HookPoint) Contribution {
	return Contribution{Hook: h, Behavior: name}
}

// Add appends code to the contribution.
func (c *Contribution) Add(code ...jen.Code) {
	c.Code = append(c.Code, code...)
}

// IsEmpty reports whether the contribution holds no code.
func (c Contribution) IsEmpty() bool { return len(c.Code) == 0 }

// Len returns the number of statements or declarations.
func (c Contribution) Len() int { return len(c.Code) }
