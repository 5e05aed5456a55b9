package cli

import (
	"bookclub/internal/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		return database.Migrate(db)
	},
}
