// Package config loads runtime configuration for the recordkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-v string   record variant: projects | tasks
//	-s string   storage driver for durable variants: sqlite | postgres | s3 | memory
//	-d string   SQLite database file
//	-p string   PostgreSQL DSN
//	-k string   storage slot key (defaults to the variant's key)
//	-g int      simulated generation delay (milliseconds)
//	-u string   display name
//	-l string   log level: debug | info | warn | error
//
// # File schema
//
// Durations use timex.Duration, so they can be strings like "2s" or integer
// nanoseconds:
//
//	{
//	  "variant": "projects",
//	  "storage_driver": "s3",
//	  "generation_delay": "1500ms",
//	  "s3": {"bucket": "records", "region": "us-east-1", "base_endpoint": "http://127.0.0.1:9000/"}
//	}
//
// S3 settings are only read from the file.
package config
