// Package internal contains the core implementation packages for ms2cc.
//
// This package follows Go's internal package convention, making these
// packages unavailable for import by external modules while providing
// all the core functionality for the ms2cc CLI tool.
//
// # Package Organization
//
// The internal packages are organized by functional domain:
//
//   - compiledb: compilation database serialization
//   - config: configuration management with validation
//   - errors: the closed set of structured error values and collection
//   - index: parallel source tree traversal and the filename lookup index
//   - logscan: reassembly of wrapped compiler invocations from build logs
//   - pathutil: path normalization and extension matching
//   - pipeline: two-phase coordination of indexing and log processing
//   - resolve: source path resolution and compile command construction
//   - tokenize: Windows command-line argument splitting
//   - types: data structures shared between the stages
package internal
