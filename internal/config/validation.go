package config

import (
	"fmt"
	"os"
	"strings"
)

// Validate performs the eager checks that must pass before any pipeline
// goroutine starts: the input log must exist and be non-empty, the source
// directory must exist and contain entries, and the thread count must be
// positive. Validation failures are fatal; the caller terminates with a
// descriptive message since no partial work has begun.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.InputFile) == "" {
		return fmt.Errorf("input file is required")
	}
	info, err := os.Stat(c.InputFile)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", c.InputFile, err)
	}
	if info.IsDir() {
		return fmt.Errorf("input file %q is a directory", c.InputFile)
	}
	if info.Size() == 0 {
		return fmt.Errorf("input file %q is empty", c.InputFile)
	}

	if strings.TrimSpace(c.SourceDirectory) == "" {
		return fmt.Errorf("source directory is required")
	}
	dirInfo, err := os.Stat(c.SourceDirectory)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", c.SourceDirectory, err)
	}
	if !dirInfo.IsDir() {
		return fmt.Errorf("provided path is not a directory: %q", c.SourceDirectory)
	}
	entries, err := os.ReadDir(c.SourceDirectory)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", c.SourceDirectory, err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("source directory %q appears to be empty", c.SourceDirectory)
	}

	if strings.TrimSpace(c.OutputFile) == "" {
		return fmt.Errorf("output file is required")
	}
	if c.MaxThreads < 1 {
		return fmt.Errorf("max threads must be a positive integer, got %d", c.MaxThreads)
	}
	if len(c.FileExtensions) == 0 {
		return fmt.Errorf("at least one file extension is required")
	}
	return nil
}
