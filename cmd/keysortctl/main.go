// Package main provides the keysortctl CLI entry point: a
// schema-validation and batch-encoding tool for the MutationKeyEncoder
// library.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/turtacn/keysort/cmd/keysortctl/commands"
	"github.com/turtacn/keysort/common/constants"
	"github.com/turtacn/keysort/common/log"
	"github.com/turtacn/keysort/config"
)

var (
	configFile string
	dialect    string
	logLevel   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "keysortctl",
		Short: "keysortctl - mutation key encoder CLI",
		Long:  "keysortctl validates table/key-part schemas and encodes batches of mutations into their opaque sort keys.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.BindPFlags(cmd.Flags())
			if err := config.LoadConfig(configFile); err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			cfg := config.GetConfig()
			log.InitLogger(cfg.Log.FilePath, cfg.Log.Level)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", constants.DefaultConfigPath, "config file path")
	rootCmd.PersistentFlags().StringVar(&dialect, "dialect", "", "default dialect, overrides config file and environment")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level, overrides config file and environment")

	rootCmd.AddCommand(
		commands.NewEncodeCmd(),
		commands.NewValidateSchemaCmd(),
		commands.NewVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
