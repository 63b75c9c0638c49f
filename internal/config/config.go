// Package config provides configuration management for ms2cc using Viper,
// loading values from command-line flags, MS2CC_-prefixed environment
// variables, and an optional .ms2cc.yml file, in that precedence order.
package config

import (
	"github.com/spf13/viper"
)

// Defaults shared by the CLI flags, the config file, and tests.
const (
	// DefaultOutputFile is where the database is written unless overridden.
	DefaultOutputFile = "compile_commands.json"
	// DefaultCompilerExecutable is the compiler searched for in logs.
	DefaultCompilerExecutable = "cl.exe"
	// DefaultMaxThreads is the worker thread count per pipeline task.
	DefaultMaxThreads = 8
)

// DefaultExcludeDirectories returns the directory names skipped during
// source tree traversal.
func DefaultExcludeDirectories() []string {
	return []string{".git"}
}

// DefaultFileExtensions returns the C/C++ extensions recognized as source
// files.
func DefaultFileExtensions() []string {
	return []string{
		"c", "cc", "cpp", "cxx", "c++",
		"h", "hh", "hpp", "hxx", "h++",
		"inl",
	}
}

// Config is the fully resolved tool configuration.
type Config struct {
	// InputFile is the path to the MSBuild log.
	InputFile string `mapstructure:"input_file" yaml:"input_file"`
	// OutputFile is the compilation database destination.
	OutputFile string `mapstructure:"output_file" yaml:"output_file"`
	// PrettyPrint selects indented JSON output.
	PrettyPrint bool `mapstructure:"pretty_print" yaml:"pretty_print"`
	// SourceDirectory is the root of the indexed source tree.
	SourceDirectory string `mapstructure:"source_directory" yaml:"source_directory"`
	// ExcludeDirectories are directory names skipped during traversal.
	ExcludeDirectories []string `mapstructure:"exclude_directories" yaml:"exclude_directories"`
	// FileExtensions are the extensions treated as source files.
	FileExtensions []string `mapstructure:"file_extensions" yaml:"file_extensions"`
	// CompilerExecutable is the executable name located in log lines.
	CompilerExecutable string `mapstructure:"compiler_executable" yaml:"compiler_executable"`
	// MaxThreads is the worker thread count per pipeline task.
	MaxThreads int `mapstructure:"max_threads" yaml:"max_threads"`
	// LogLevel controls diagnostic verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// LogFormat selects the diagnostic format ("text" or "json").
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// Default returns the baseline configuration shared by the CLI and tests.
func Default() *Config {
	return &Config{
		OutputFile:         DefaultOutputFile,
		ExcludeDirectories: DefaultExcludeDirectories(),
		FileExtensions:     DefaultFileExtensions(),
		CompilerExecutable: DefaultCompilerExecutable,
		MaxThreads:         DefaultMaxThreads,
		LogLevel:           "info",
		LogFormat:          "text",
	}
}

// Load materializes the configuration from viper's merged sources and fills
// in defaults for anything left unset.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills unset fields with their default values. Explicitly
// configured empty lists are respected only for the compiler executable,
// which falls back to the default when blank.
func (c *Config) ApplyDefaults() {
	if c.OutputFile == "" {
		c.OutputFile = DefaultOutputFile
	}
	if len(c.ExcludeDirectories) == 0 {
		c.ExcludeDirectories = DefaultExcludeDirectories()
	}
	if len(c.FileExtensions) == 0 {
		c.FileExtensions = DefaultFileExtensions()
	}
	if c.CompilerExecutable == "" {
		c.CompilerExecutable = DefaultCompilerExecutable
	}
	if c.MaxThreads == 0 {
		c.MaxThreads = DefaultMaxThreads
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
}
