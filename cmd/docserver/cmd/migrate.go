package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/the-dev-tools/dev-tools/packages/docserver/internal/config"
	"github.com/the-dev-tools/dev-tools/packages/docserver/internal/migrate"
)

func newMigrateCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations and exit",
		Long: `migrate creates missing tables and applies every registered migration
that has not finished yet. serve does the same on startup.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			logger, err := cfg.Log.NewLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			db, err := openStore(cmd.Context(), cfg.DB, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			meta := migrate.NewStore(db.Write)
			out := cmd.OutOrStdout()
			for _, mig := range migrate.List() {
				rec, err := meta.GetRecord(cmd.Context(), mig.ID)
				if err != nil {
					return fmt.Errorf("read migration %s: %w", mig.ID, err)
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", mig.ID, rec.Status, mig.Description)
			}
			return nil
		},
	}
}
