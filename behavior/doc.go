// Package behavior defines how independently authored extensions mutate a
// table schema and splice generated code into a class.
//
// A Behavior is attached to exactly one table. Generation runs in two
// phases per table:
//
//  1. Augmentation: every attached behavior's AugmentSchema runs, in
//     attachment order, before any code is generated. Behaviors add derived
//     columns here and must skip columns that already exist.
//  2. Contribution: for each HookPoint, in the fixed HookPoints order, the
//     class builder asks every behavior for its Contribution and splices the
//     non-empty ones at the hook's insertion site, in attachment order.
//
// Contributions are jennifer code nodes rather than text. Each element of
// Contribution.Code is one complete statement or declaration, so joining
// contributions from unrelated behaviors cannot produce a broken boundary.
//
// # Parameters
//
// Behaviors are configured by a string-to-string parameter mapping from the
// schema definition. Resolve layers the definition's overrides on top of the
// behavior's compiled-in defaults; ParseBool turns the result into typed
// configuration and rejects anything but "true" and "false":
//
//	params := behavior.Resolve(defaults, overrides)
//	disabled, err := params.ParseBool("disable_created_at")
//
// # Registering Behaviors
//
// Behaviors are constructed by name through a Registry:
//
//	reg := behavior.NewRegistry()
//	reg.Register("timestampable", timestampable.Factory)
//	b, err := reg.New("timestampable", "article", params)
package behavior
