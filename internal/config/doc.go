// Package config provides configuration management for the FR Y-9 converter.
// It handles loading configuration from multiple sources, validation, and a
// type-safe API for the rest of the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Default values (lowest priority)
//
// Command-line flags are applied by the caller on top of the loaded
// configuration and therefore win over all three sources.
//
// # Environment Variables
//
// All environment variables follow the pattern FRY9_* for namespacing:
//
//	FRY9_PATHS_INPUT_DIR=data/raw
//	FRY9_PATHS_OUTPUT_DIR=data/processed
//	FRY9_PROCESSING_WORKERS=8
//	FRY9_LOGGING_LEVEL=debug
//	FRY9_TELEMETRY_ENABLED=true
//
// # Configuration File
//
// When no explicit path is given, Load searches config.yaml and
// configs/config.yaml relative to the working directory:
//
//	paths:
//	  input_dir: data/raw
//	  output_dir: data/processed
//	processing:
//	  workers: -1
//	logging:
//	  level: info
//	  format: json
//	  output: stdout
//	telemetry:
//	  enabled: false
//	  service_name: fry9-converter
//
// # Validation
//
// All configuration is validated at load time: required fields must be
// present, enumerated fields must hold known values, and the year bounds
// must be ordered.
package config
