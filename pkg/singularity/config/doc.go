/*
Package config loads process-wide singularity settings from configuration
files and maps.

# Overview

config wraps a map[string]any with typed accessor methods that handle
missing keys and type mismatches gracefully by returning default values,
and decodes the map into a typed Settings struct for the options that
singularity resolves once at initialization: the error mode, the default
locking policy, the log level, and whether metrics and tracing are
enabled.

# Basic Usage

	cfg, err := config.FromFile("singularity.yaml")
	if err != nil {
	    log.Fatal(err)
	}

	settings, err := cfg.Settings()
	if err != nil {
	    log.Fatal(err)
	}

With a file such as:

	error_mode: fatal
	policy: multi_threaded
	log_level: debug
	metrics: true
	tracing: false

# File Formats

FromFile auto-detects the format by extension: .yaml/.yml, .json, and
.toml are supported.

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation. However, if the original map is modified
externally, behavior is undefined.
*/
package config
