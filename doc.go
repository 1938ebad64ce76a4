// Package weave holds the error types shared by the schema loader, the
// behaviors and the code generator.
//
// The generator lives in compiler/gen, the built-in behaviors under
// behavior/, and the command line tool in cmd/weave:
//
//	weave generate ./schema --target ./model
//	weave describe ./schema
package weave
