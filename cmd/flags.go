package cmd

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// bindFlags binds command flags to their viper configuration keys. Flag names
// use kebab-case on the command line; configuration keys use snake_case.
func bindFlags(flags *pflag.FlagSet, keys map[string]string) {
	for flagName, configKey := range keys {
		flag := flags.Lookup(flagName)
		if flag == nil {
			panic(fmt.Sprintf("cmd: flag %q is not registered", flagName))
		}
		if err := viper.BindPFlag(configKey, flag); err != nil {
			panic(fmt.Sprintf("cmd: binding flag %q: %v", flagName, err))
		}
	}
}
