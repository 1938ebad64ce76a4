package gen

import "github.com/syssam/weave"

// Generation phases reported by GenerationError.
const (
	PhaseAugment    = "augment"
	PhaseContribute = "contribute"
	PhaseRender     = "render"
	PhaseFormat     = "format"
	PhaseWrite      = "write"
)

// Error types shared with the behavior packages.
type (
	SchemaError     = weave.SchemaError
	ConfigError     = weave.ConfigError
	GenerationError = weave.GenerationError
)

// NewSchemaError creates a SchemaError.
func NewSchemaError(table, column, message string, cause error) *SchemaError {
	return weave.NewSchemaError(table, column, message, cause)
}

// NewConfigError creates a ConfigError for a generator option.
func NewConfigError(option string, value any, message string) *ConfigError {
	return weave.NewConfigError(option, value, message)
}

// NewGenerationError creates a GenerationError.
func NewGenerationError(phase, table, file, message string, cause error) *GenerationError {
	return weave.NewGenerationError(phase, table, file, message, cause)
}
