// Package cmd holds the docserver command tree.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/the-dev-tools/dev-tools/packages/docserver/internal/config"
)

// NewRootCommand builds the command tree around its own viper instance so
// tests can run commands without sharing global state.
func NewRootCommand() *cobra.Command {
	v := config.NewViper()

	cfgFilePath, err := config.DefaultConfigFile()
	if err != nil {
		cfgFilePath = ""
	}

	rootCmd := &cobra.Command{
		Use:   "docserver",
		Short: "Document editing server with versioned delta patches",
		Long: `docserver stores rich-text documents and applies batches of positional
insert, delete and replace changes to them. Every applied batch snapshots
the previous state as a numbered version.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.ReadFile(v, cfgFilePath)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFilePath, "config", cfgFilePath, "config file (default is $HOME/.docserver.yaml)")
	flags.String("db-mode", config.DBModeMemory, "database mode: memory or local")
	flags.String("db-path", "", "directory of the local database (default is $HOME/.docserver)")
	flags.String("db-name", "docserver", "local database file name without extension")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-format", config.LogFormatJSON, "log format: json or text")
	flags.String("hmac-secret", "", "HMAC secret for JWT auth; empty disables auth")
	bindFlags(v, rootCmd, map[string]string{
		config.KeyDBMode:         "db-mode",
		config.KeyDBPath:         "db-path",
		config.KeyDBName:         "db-name",
		config.KeyLogLevel:       "log-level",
		config.KeyLogFormat:      "log-format",
		config.KeyAuthHMACSecret: "hmac-secret",
	})

	rootCmd.AddCommand(
		newServeCommand(v),
		newMigrateCommand(v),
		newTokenCommand(v),
		newConfigCommand(v),
		newVersionCommand(),
	)
	return rootCmd
}

// Execute runs the root command until it returns or the process receives
// an interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}

// bindFlags ties config keys to flags of cmd, local or persistent.
func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) {
	for key, name := range keys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			flag = cmd.PersistentFlags().Lookup(name)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			panic("bind flag " + name + ": " + err.Error())
		}
	}
}
