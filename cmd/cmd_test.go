package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/ms2cc/internal/compiledb"
)

// newTestCommand builds a command with captured output streams.
func newTestCommand() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	cmd := &cobra.Command{}
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	return cmd, &out, &errOut
}

func TestVersionCommandText(t *testing.T) {
	cmd, out, _ := newTestCommand()
	versionFormat = "text"

	require.NoError(t, runVersionCommand(cmd, nil))
	assert.Contains(t, out.String(), "ms2cc")
	assert.Contains(t, out.String(), Version)
}

func TestVersionCommandJSON(t *testing.T) {
	cmd, out, _ := newTestCommand()
	versionFormat = "json"
	defer func() { versionFormat = "text" }()

	require.NoError(t, runVersionCommand(cmd, nil))

	var info map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &info))
	assert.Equal(t, Version, info["version"])
	assert.Contains(t, info, "platform")
}

func TestVersionCommandRejectsUnknownFormat(t *testing.T) {
	cmd, _, _ := newTestCommand()
	versionFormat = "xml"
	defer func() { versionFormat = "text" }()

	err := runVersionCommand(cmd, nil)
	assert.ErrorContains(t, err, "unsupported format")
}

func TestCenter(t *testing.T) {
	assert.Equal(t, "  ab  ", center("ab", 6))
	assert.Equal(t, " ab  ", center("ab", 5))
	assert.Equal(t, "abcdef", center("abcdef", 4))
}

func TestRunPrinterBanner(t *testing.T) {
	var buf bytes.Buffer
	p := newRunPrinter(&buf)
	p.banner("Run Start")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Repeat("=", headerWidth), lines[0])
	assert.Equal(t, "Run Start", strings.TrimSpace(lines[1]))
	assert.Equal(t, strings.Repeat("=", headerWidth), lines[2])
}

func TestGenerateEndToEnd(t *testing.T) {
	dir, err := os.MkdirTemp("", "ms2cc-cmd-")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	sourceRoot := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(sourceRoot, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(sourceRoot, "main.cpp"), []byte("int main() {}\n"), 0o644))

	logPath := filepath.Join(dir, "msbuild.log")
	require.NoError(t, os.WriteFile(
		logPath, []byte("cl.exe /c main.cpp\n"), 0o644))
	outputPath := filepath.Join(dir, "compile_commands.json")

	viper.Set("input_file", logPath)
	viper.Set("source_directory", dir)
	viper.Set("output_file", outputPath)
	viper.Set("pretty_print", true)
	t.Cleanup(viper.Reset)

	cmd, out, errOut := newTestCommand()
	require.NoError(t, runGenerate(cmd, nil))

	assert.Contains(t, out.String(), "Run completed")
	assert.Contains(t, out.String(), "Total entries written: 1")

	// Structured phase summaries go to stderr; no collected errors appear.
	assert.Contains(t, errOut.String(), "lookup tree built")
	assert.Contains(t, errOut.String(), "database generated")
	assert.NotContains(t, errOut.String(), "with errors")

	db, err := os.Open(outputPath)
	require.NoError(t, err)
	defer db.Close()

	commands, err := compiledb.Read(db)
	require.NoError(t, err)
	require.Len(t, commands, 1)
	assert.Equal(t, "main.cpp", commands[0].File)
	assert.Equal(t, []string{"cl.exe", "/c", "main.cpp"}, commands[0].Arguments)
}

func TestGenerateReportsCollectedErrors(t *testing.T) {
	dir, err := os.MkdirTemp("", "ms2cc-cmd-")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	sourceRoot := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(sourceRoot, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(sourceRoot, "main.cpp"), []byte("int main() {}\n"), 0o644))

	logPath := filepath.Join(dir, "msbuild.log")
	require.NoError(t, os.WriteFile(
		logPath, []byte("cl.exe /c missing.cpp\n"), 0o644))

	viper.Set("input_file", logPath)
	viper.Set("source_directory", dir)
	viper.Set("output_file", filepath.Join(dir, "compile_commands.json"))
	t.Cleanup(viper.Reset)

	cmd, out, errOut := newTestCommand()
	require.NoError(t, runGenerate(cmd, nil))

	// Unresolvable invocations are collected and reported, never fatal.
	assert.Contains(t, out.String(), "Warning: No compile commands found")
	assert.Contains(t, errOut.String(), "missing /Fo argument")
	assert.Contains(t, errOut.String(), "database generated with errors")
}

func TestGenerateFailsOnMissingInput(t *testing.T) {
	viper.Set("input_file", filepath.Join(t.TempDir(), "absent.log"))
	viper.Set("source_directory", t.TempDir())
	t.Cleanup(viper.Reset)

	cmd, _, _ := newTestCommand()
	err := runGenerate(cmd, nil)
	assert.ErrorContains(t, err, "failed to open")
}
