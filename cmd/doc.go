// Package cmd provides the command-line interface for ms2cc.
//
// This package implements all CLI commands using the Cobra framework.
//
// # Available Commands
//
//   - generate: Convert an MSBuild log into compile_commands.json
//   - config: Print the effective configuration as YAML
//   - version: Show version information
//
// # Configuration System
//
// Configuration is resolved from multiple sources with clear precedence:
//
//  1. Command-line flags (--input-file, --source-directory, ...)
//  2. MS2CC_-prefixed environment variables (MS2CC_MAX_THREADS, ...)
//  3. A .ms2cc.yml configuration file in the working directory
//  4. Built-in defaults
//
// # Command Examples
//
//	// Convert a log using the defaults
//	ms2cc generate -i msbuild.log -d ./src
//
//	// Pretty-printed output to a custom location
//	ms2cc generate -i msbuild.log -d ./src -o build/compile_commands.json -p
//
//	// Inspect the effective configuration
//	ms2cc config
package cmd
