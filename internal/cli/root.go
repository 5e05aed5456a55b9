package cli

import (
	"fmt"
	"os"

	"bookclub/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var v = viper.New()

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bookclub",
	Short: "Book club voting server",
	Long: `Book club voting server: members propose books, vote on them with
weights from -2 to 2 and follow the resulting ranking.

Settings can be given as flags or environment variables
(APP_PORT, DB_DRIVER, DATABASE_DSN, RABBITMQ_URL, STATIC_DIR).`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("port", "", "Listen address, e.g. :3000 (env APP_PORT)")
	flags.String("db-driver", "", "Database driver: sqlite or postgres (env DB_DRIVER)")
	flags.String("dsn", "", "Database DSN or SQLite file path (env DATABASE_DSN)")
	flags.String("rabbitmq-url", "", "RabbitMQ URL; empty disables events (env RABBITMQ_URL)")
	flags.String("static-dir", "", "Directory of static frontend files (env STATIC_DIR)")

	bindings := map[string]string{
		"APP_PORT":     "port",
		"DB_DRIVER":    "db-driver",
		"DATABASE_DSN": "dsn",
		"RABBITMQ_URL": "rabbitmq-url",
		"STATIC_DIR":   "static-dir",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func loadConfig() config.Config {
	return config.Load(v)
}
