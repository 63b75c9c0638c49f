package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/conneroisu/ms2cc/internal/compiledb"
	"github.com/conneroisu/ms2cc/internal/config"
	"github.com/conneroisu/ms2cc/internal/logging"
	"github.com/conneroisu/ms2cc/internal/pipeline"
)

// headerWidth is the width of the centered banner text.
const headerWidth = 50

// generateCmd converts an MSBuild log into a compilation database.
var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen", "g"},
	Short:   "Convert an MSBuild log into compile_commands.json",
	Long: `Convert an MSBuild log into a compile_commands.json database.

The source directory is indexed first so bare file names in the log can be
resolved to absolute paths; the log is then scanned, tokenized, and resolved
into one record per compiled source file. Errors encountered along the way
are collected and printed after each phase; they never abort the run.

Examples:
  ms2cc generate -i msbuild.log -d ./src
  ms2cc generate -i msbuild.log -d ./src -o out.json --pretty-print
  ms2cc generate -i msbuild.log -d ./src -x .git,third_party -t 16`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	flags := generateCmd.Flags()
	flags.StringP("input-file", "i", "", "path to msbuild.log")
	flags.StringP("output-file", "o", config.DefaultOutputFile, "output JSON file")
	flags.BoolP("pretty-print", "p", false, "pretty print output JSON file")
	flags.StringP("source-directory", "d", "", "path to source code")
	flags.StringSliceP("exclude-directories", "x", nil, "directories to exclude during traversal (comma-separated)")
	flags.StringSliceP("file-extensions", "e", nil, "file extensions to process (comma-separated)")
	flags.StringP("compiler-executable", "c", config.DefaultCompilerExecutable, "name of compiler executable")
	flags.IntP("max-threads", "t", config.DefaultMaxThreads, "max number of threads per task")

	bindFlags(flags, map[string]string{
		"input-file":          "input_file",
		"output-file":         "output_file",
		"pretty-print":        "pretty_print",
		"source-directory":    "source_directory",
		"exclude-directories": "exclude_directories",
		"file-extensions":     "file_extensions",
		"compiler-executable": "compiler_executable",
		"max-threads":         "max_threads",
	})
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	baseLogger := logging.NewLogger(&logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: cfg.LogFormat,
		Output: cmd.ErrOrStderr(),
	})
	logger := baseLogger.WithComponent("generate")
	ctx := cmd.Context()
	logger.Debug(ctx, "configuration loaded",
		"input", cfg.InputFile,
		"source", cfg.SourceDirectory,
		"output", cfg.OutputFile,
		"threads", cfg.MaxThreads)

	input, err := os.Open(cfg.InputFile)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", cfg.InputFile, err)
	}
	defer input.Close()

	output, err := os.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", cfg.OutputFile, err)
	}
	defer output.Close()

	run := newRunPrinter(cmd.OutOrStdout())
	run.banner(fmt.Sprintf("ms2cc %s - Run Start", Version))
	totalStart := time.Now()

	coordinator := pipeline.New(pipeline.Config{
		SourceDirectory:    cfg.SourceDirectory,
		ExcludeDirectories: cfg.ExcludeDirectories,
		FileExtensions:     cfg.FileExtensions,
		CompilerExecutable: cfg.CompilerExecutable,
		LogPath:            cfg.InputFile,
		LogReader:          bufio.NewReaderSize(input, compiledb.DefaultBufferSize),
		MaxThreads:         cfg.MaxThreads,
		Logger:             baseLogger.WithComponent("pipeline"),
	})

	run.phase("Generating the lookup tree")
	run.printf("Source directory: %q\n\n", cfg.SourceDirectory)
	run.printf("Starting threads:\n")
	run.printf(" - 1 filesystem traversal thread\n")
	run.printf(" - %d file processing threads\n\n", cfg.MaxThreads)

	lookup := coordinator.BuildLookupTree()
	reportErrors(cmd, lookup.Errors)
	run.printf("Lookup tree generation completed in %.2f seconds\n\n", lookup.Duration.Seconds())

	run.phase("Generating the database")
	run.printf("Input file: %q\n\n", cfg.InputFile)
	run.printf("Starting threads:\n")
	run.printf(" - 1 log scanning thread\n")
	run.printf(" - 1 tokenization thread\n")
	run.printf(" - 1 compile command generation thread\n\n")

	database := coordinator.GenerateCompileCommands(lookup.Index)
	reportErrors(cmd, database.Errors)

	if len(database.Commands) == 0 {
		logger.Warn(ctx, nil, "no compile commands found in the log file")
		run.printf("Warning: No compile commands found in the log file\n")
	}
	run.printf("Database generation completed in %.2f seconds\n\n", database.Duration.Seconds())

	run.phase("Writing the database to disk")
	run.printf("Output file: %q\n\n", cfg.OutputFile)

	writeStart := time.Now()
	writer := bufio.NewWriterSize(output, compiledb.DefaultBufferSize)
	if err := compiledb.Write(writer, database.Commands, cfg.PrettyPrint); err != nil {
		logger.Error(ctx, err, "failed to write database", "output", cfg.OutputFile)
		return fmt.Errorf("failed to write %q: %w", cfg.OutputFile, err)
	}
	if err := writer.Flush(); err != nil {
		logger.Error(ctx, err, "failed to write database", "output", cfg.OutputFile)
		return fmt.Errorf("failed to write %q: %w", cfg.OutputFile, err)
	}
	run.printf("Database written in %.2f seconds\n\n", time.Since(writeStart).Seconds())

	run.banner("Run completed")
	run.printf("\nTotal entries written: %d\n", len(database.Commands))
	run.printf("Output location: %q\n", cfg.OutputFile)
	run.printf("Total time elapsed: %.2f seconds\n\n", time.Since(totalStart).Seconds())
	run.rule("=")

	return nil
}

// reportErrors prints each collected error on its own stderr line.
func reportErrors(cmd *cobra.Command, errs []error) {
	for _, err := range errs {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
	}
}

// runPrinter renders the banner-style progress output on stdout.
type runPrinter struct {
	w io.Writer
}

func newRunPrinter(w io.Writer) *runPrinter {
	return &runPrinter{w: w}
}

func (p *runPrinter) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

func (p *runPrinter) rule(glyph string) {
	p.printf("%s\n", strings.Repeat(glyph, headerWidth))
}

func (p *runPrinter) banner(title string) {
	p.rule("=")
	p.printf("%s\n", center(title, headerWidth))
	p.rule("=")
}

func (p *runPrinter) phase(title string) {
	p.rule("-")
	p.printf("%s\n", center(title, headerWidth))
	p.rule("-")
	p.printf("\n")
}

func center(text string, width int) string {
	if len(text) >= width {
		return text
	}
	left := (width - len(text)) / 2
	right := width - len(text) - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}
