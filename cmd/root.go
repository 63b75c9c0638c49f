package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ms2cc",
	Short: "Generate a compile_commands.json database from an msbuild.log file",
	Long: `ms2cc converts a Microsoft build tool's text log into a standard
compilation database usable by external tooling such as language servers and
static analyzers.

The conversion runs in two phases: first the source tree is indexed in
parallel to build a filename-to-directory lookup, then the log is scanned
for compiler invocations, which are tokenized with native Windows quoting
rules and resolved against the index to reconstruct an absolute path for
every compiled source file.

Quick Start:
  ms2cc generate -i msbuild.log -d ./src      Convert a log
  ms2cc config                                Show effective configuration
  ms2cc version                               Show version information`,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .ms2cc.yml, can also use MS2CC_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig wires viper's configuration sources. Flags take precedence over
// environment variables, which take precedence over the config file.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("MS2CC_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".ms2cc")
	}

	viper.SetEnvPrefix("MS2CC")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A missing or malformed config file degrades to defaults.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
