package timestampable

import (
	"github.com/syssam/weave"
	"github.com/syssam/weave/behavior"
	"github.com/syssam/weave/schema"
)

// Name is the behavior name used in schema definitions.
const Name = "timestampable"

// Parameter names.
const (
	ParamCreateColumn        = "create_column"
	ParamUpdateColumn        = "update_column"
	ParamDisableCreatedAt    = "disable_created_at"
	ParamDisableUpdatedAt    = "disable_updated_at"
	ParamEnableHighPrecision = "enable_high_precision"
	ParamDateType            = "date_type"
)

// Defaults returns the compiled-in parameter defaults.
func Defaults() map[string]string {
	return map[string]string{
		ParamCreateColumn:        "created_at",
		ParamUpdateColumn:        "updated_at",
		ParamDisableCreatedAt:    "false",
		ParamDisableUpdatedAt:    "false",
		ParamEnableHighPrecision: "false",
		ParamDateType:            "DATETIME",
	}
}

// Config is the typed configuration of the behavior.
type Config struct {
	// CreateColumn is the name of the creation timestamp column.
	CreateColumn string
	// UpdateColumn is the name of the modification timestamp column.
	UpdateColumn string
	// CreatedAt enables the creation timestamp.
	CreatedAt bool
	// UpdatedAt enables the modification timestamp.
	UpdatedAt bool
	// HighPrecision requests sub-second timestamps for non-integer columns.
	HighPrecision bool
	// DateType is the storage type of columns added by the behavior.
	DateType schema.Type
}

// ParseConfig parses resolved parameters. Boolean parameters must be
// exactly "true" or "false".
func ParseConfig(table string, p behavior.Params) (Config, error) {
	cfg := Config{
		CreateColumn: p.Get(ParamCreateColumn),
		UpdateColumn: p.Get(ParamUpdateColumn),
	}
	for _, b := range []struct {
		param string
		dst   *bool
		not   bool
	}{
		{ParamDisableCreatedAt, &cfg.CreatedAt, true},
		{ParamDisableUpdatedAt, &cfg.UpdatedAt, true},
		{ParamEnableHighPrecision, &cfg.HighPrecision, false},
	} {
		v, err := p.ParseBool(b.param)
		if err != nil {
			return Config{}, weave.NewParamError(table, Name, b.param, p.Get(b.param), err.Error())
		}
		*b.dst = v != b.not
	}
	if cfg.CreatedAt && cfg.CreateColumn == "" {
		return Config{}, weave.NewParamError(table, Name, ParamCreateColumn, nil, "column name cannot be empty")
	}
	if cfg.UpdatedAt && cfg.UpdateColumn == "" {
		return Config{}, weave.NewParamError(table, Name, ParamUpdateColumn, nil, "column name cannot be empty")
	}
	typ, err := schema.ParseType(p.Get(ParamDateType))
	if err != nil {
		return Config{}, weave.NewParamError(table, Name, ParamDateType, p.Get(ParamDateType), err.Error())
	}
	if !typ.HoldsTimestamp() {
		return Config{}, weave.NewParamError(table, Name, ParamDateType, p.Get(ParamDateType), "type cannot hold a timestamp")
	}
	cfg.DateType = typ
	return cfg, nil
}
