// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the publist CLI, which turns an Endnote
// XML export into a formatted publication list and keeps a searchable
// catalog of the normalized records.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/publist/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// logger receives operator diagnostics; it is rebuilt from flags and config
// before every command runs.
var logger = zerolog.Nop()

// rootCmd is the base command for the publist CLI.
var rootCmd = &cobra.Command{
	Use:   "publist",
	Short: "Generate publication lists from an Endnote XML export",
	Long: `publist reads an Endnote XML export, keeps the journal articles, orders
them newest first and writes the list as an HTML page, a LaTeX rubric or
wiki markup.

The catalog subcommands store the normalized list in a local SQLite
database for full-text search and YAML, JSON or CSL export.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.New(logging.Options{
			Level:  viper.GetString("log_level"),
			Format: viper.GetString("log_format"),
			Writer: cmd.ErrOrStderr(),
		})
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug().Str("file", f).Msg("using config file")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./publist.yaml or ~/.config/publist/publist.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: trace, debug, info, warn, error, off")
	rootCmd.PersistentFlags().String("log-format", "console", "log format: console or json")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("publist")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "publist"))
		}
	}

	viper.SetEnvPrefix("PUBLIST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "Error reading config file:", err)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
