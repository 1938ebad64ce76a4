// Package gen turns schema documents into Go source files.
//
// # Pipeline
//
// Generation runs one pass per table, in parallel:
//
//	load.Document
//	        ↓
//	   Graph (tables selected by Config.Tables, behaviors resolved)
//	        ↓
//	   Node.Augment (behaviors add their derived columns)
//	        ↓
//	   Collect (one contribution per behavior and hook point)
//	        ↓
//	   ClassBuilder (entity, setters, hook methods, query type)
//	        ↓
//	   <table>.go in Config.Target
//
// A parameter error is raised while building the graph. Errors raised later
// by a pass are wrapped in a GenerationError naming the phase and table.
// Files are written only after every pass succeeded.
//
// # Incremental runs
//
// Each run records the SHA-256 digest of every file in a manifest stored
// in the target directory. With Config.Incremental set, a file whose
// digest did not change is not rewritten. Files of tables that were
// removed from the document are deleted on runs without a table filter.
//
// # Usage
//
//	doc, err := load.Load("schema.yaml")
//	if err != nil {
//		return err
//	}
//	report, err := gen.Generate(ctx, doc,
//		gen.WithTarget("./model"),
//		gen.WithIncremental(true),
//	)
package gen
