package behavior

import "fmt"

// HookPoint is an extension location in a generated class.
type HookPoint uint8

// Hook points, in the order the class builder queries them.
const (
	// AttributeDeclarations are fields of the entity struct.
	AttributeDeclarations HookPoint = iota
	// PreInsert statements run before an entity is inserted.
	PreInsert
	// PreUpdate statements run before an entity is updated.
	PreUpdate
	// InstanceMethods are methods declared on the entity.
	InstanceMethods
	// QueryMethods are methods declared on the entity's query builder.
	QueryMethods
)

var hookNames = [...]string{
	AttributeDeclarations: "attribute-declarations",
	PreInsert:             "pre-insert",
	PreUpdate:             "pre-update",
	InstanceMethods:       "instance-methods",
	QueryMethods:          "query-methods",
}

// HookPoints returns every hook point in query order.
func HookPoints() []HookPoint {
	return []HookPoint{AttributeDeclarations, PreInsert, PreUpdate, InstanceMethods, QueryMethods}
}

// String implements the fmt.Stringer interface.
func (h HookPoint) String() string {
	if int(h) < len(hookNames) {
		return hookNames[h]
	}
	return fmt.Sprintf("HookPoint(%d)", h)
}

// Statements reports whether contributions at h are statements inside a
// function body, as opposed to declarations.
func (h HookPoint) Statements() bool {
	return h == PreInsert || h == PreUpdate
}
