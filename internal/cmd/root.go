// Package cmd implements the retrace command tree.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/coregx/retrace"
	"github.com/coregx/retrace/meta"
)

var (
	cfgFile    string
	ignoreCase bool
)

// errNoMatch makes a matchless scan exit with status 1 without printing
// anything, the grep convention.
var errNoMatch = errors.New("no match")

// rootCmd is the base command; subcommands attach themselves in their init.
var rootCmd = &cobra.Command{
	Use:   "retrace",
	Short: "Backtracking regular expression matcher",
	Long: `retrace matches a compact regex dialect with capture groups and numeric
backreferences against lines, files and interactive input.

Examples:
  retrace match 'er+or' app.log
  retrace repl
  retrace tui`,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errNoMatch) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.retrace.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&ignoreCase, "ignore-case", "i", false, "case-insensitive matching")
	rootCmd.PersistentFlags().Bool("verbose", false, "diagnostics on stderr")

	viper.BindPFlag("ignore-case", rootCmd.PersistentFlags().Lookup("ignore-case"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads the config file and environment variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".retrace")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// matchConfig resolves the engine configuration from viper: flag beats
// config file beats default.
func matchConfig() meta.Config {
	config := retrace.DefaultConfig()
	config.CaseSensitive = !viper.GetBool("ignore-case")
	return config
}
