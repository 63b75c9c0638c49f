// Package compiledb serializes compilation databases in the standard
// compile_commands.json convention.
//
// The record list is treated as a set-like collection: readers of the
// database do not depend on global record ordering, only on each record's
// content.
package compiledb

import (
	"io"

	"github.com/ohler55/ojg/oj"

	"github.com/conneroisu/ms2cc/internal/types"
)

// DefaultBufferSize is the buffer size used for database file I/O.
const DefaultBufferSize = 64 * 1024

// prettyIndent is the indentation width for pretty-printed output.
const prettyIndent = 2

// Write serializes commands to w, pretty-printed when requested. A nil or
// empty command list writes an empty JSON array, never null, so downstream
// tools always see a valid database.
func Write(w io.Writer, commands []types.CompileCommand, pretty bool) error {
	if commands == nil {
		commands = []types.CompileCommand{}
	}

	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = oj.Marshal(commands, prettyIndent)
	} else {
		data, err = oj.Marshal(commands)
	}
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return err
}

// Read parses a compilation database from r. It is the inverse of Write and
// accepts both compact and pretty-printed input.
func Read(r io.Reader) ([]types.CompileCommand, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var commands []types.CompileCommand
	if err := oj.Unmarshal(data, &commands); err != nil {
		return nil, err
	}
	return commands, nil
}
