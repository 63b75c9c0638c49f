package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultOutputFile, cfg.OutputFile)
	assert.Equal(t, DefaultCompilerExecutable, cfg.CompilerExecutable)
	assert.Equal(t, DefaultMaxThreads, cfg.MaxThreads)
	assert.Equal(t, []string{".git"}, cfg.ExcludeDirectories)
	assert.Contains(t, cfg.FileExtensions, "cpp")
	assert.Contains(t, cfg.FileExtensions, "h")
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestApplyDefaultsFillsUnsetFields(t *testing.T) {
	cfg := &Config{InputFile: "msbuild.log", SourceDirectory: "/src"}
	cfg.ApplyDefaults()

	assert.Equal(t, "msbuild.log", cfg.InputFile)
	assert.Equal(t, DefaultOutputFile, cfg.OutputFile)
	assert.Equal(t, DefaultCompilerExecutable, cfg.CompilerExecutable)
	assert.Equal(t, DefaultMaxThreads, cfg.MaxThreads)
	assert.NotEmpty(t, cfg.FileExtensions)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		OutputFile:         "out.json",
		CompilerExecutable: "clang-cl.exe",
		MaxThreads:         3,
		FileExtensions:     []string{"cc"},
	}
	cfg.ApplyDefaults()

	assert.Equal(t, "out.json", cfg.OutputFile)
	assert.Equal(t, "clang-cl.exe", cfg.CompilerExecutable)
	assert.Equal(t, 3, cfg.MaxThreads)
	assert.Equal(t, []string{"cc"}, cfg.FileExtensions)
}

// validConfig builds a configuration whose referenced paths exist.
func validConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()

	input := filepath.Join(dir, "msbuild.log")
	require.NoError(t, os.WriteFile(input, []byte("cl.exe /c main.cpp\n"), 0o644))

	source := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(source, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(source, "main.cpp"), []byte("x"), 0o644))

	cfg := Default()
	cfg.InputFile = input
	cfg.SourceDirectory = source
	return cfg
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	assert.NoError(t, validConfig(t).Validate())
}

func TestValidateRejectsMissingInput(t *testing.T) {
	cfg := validConfig(t)
	cfg.InputFile = ""
	assert.ErrorContains(t, cfg.Validate(), "input file is required")

	cfg = validConfig(t)
	cfg.InputFile = filepath.Join(t.TempDir(), "absent.log")
	assert.ErrorContains(t, cfg.Validate(), "failed to open")
}

func TestValidateRejectsDirectoryAsInput(t *testing.T) {
	cfg := validConfig(t)
	cfg.InputFile = cfg.SourceDirectory
	assert.ErrorContains(t, cfg.Validate(), "is a directory")
}

func TestValidateRejectsEmptyInputFile(t *testing.T) {
	cfg := validConfig(t)
	empty := filepath.Join(t.TempDir(), "empty.log")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	cfg.InputFile = empty
	assert.ErrorContains(t, cfg.Validate(), "is empty")
}

func TestValidateRejectsBadSourceDirectory(t *testing.T) {
	cfg := validConfig(t)
	cfg.SourceDirectory = ""
	assert.ErrorContains(t, cfg.Validate(), "source directory is required")

	cfg = validConfig(t)
	cfg.SourceDirectory = cfg.InputFile
	assert.ErrorContains(t, cfg.Validate(), "not a directory")

	cfg = validConfig(t)
	cfg.SourceDirectory = t.TempDir()
	assert.ErrorContains(t, cfg.Validate(), "appears to be empty")
}

func TestValidateRejectsBadScalars(t *testing.T) {
	cfg := validConfig(t)
	cfg.OutputFile = "  "
	assert.ErrorContains(t, cfg.Validate(), "output file is required")

	cfg = validConfig(t)
	cfg.MaxThreads = 0
	assert.ErrorContains(t, cfg.Validate(), "max threads")

	cfg = validConfig(t)
	cfg.FileExtensions = nil
	assert.ErrorContains(t, cfg.Validate(), "file extension")
}
