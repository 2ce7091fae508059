package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Settings holds the process-wide options singularity resolves once at
// initialization. Zero values mean "use the default".
type Settings struct {
	// ErrorMode selects how lifetime violations surface:
	// "recover" (default) or "fatal".
	ErrorMode string `mapstructure:"error_mode"`

	// Policy selects the default locking policy for managers built from
	// these settings: "single_threaded" (default) or "multi_threaded".
	Policy string `mapstructure:"policy"`

	// LogLevel sets the slog level for lifetime logging:
	// "debug", "info" (default), "warn", or "error".
	LogLevel string `mapstructure:"log_level"`

	// Metrics enables the OpenTelemetry metrics recorder.
	Metrics bool `mapstructure:"metrics"`

	// Tracing enables OpenTelemetry spans around create/destroy.
	Tracing bool `mapstructure:"tracing"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		ErrorMode: "recover",
		Policy:    "single_threaded",
		LogLevel:  "info",
	}
}

// Settings decodes the config map into a Settings struct, starting from
// DefaultSettings. Unknown keys are ignored; weakly typed input is
// accepted (e.g. "true" for a bool).
func (c Config) Settings() (Settings, error) {
	s := DefaultSettings()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &s,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return s, fmt.Errorf("decoder creation failed: %w", err)
	}
	if err := decoder.Decode(c.data); err != nil {
		return s, fmt.Errorf("decode settings: %w", err)
	}
	return s, nil
}
