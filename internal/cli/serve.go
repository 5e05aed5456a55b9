package cli

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"bookclub/internal/app"
	"bookclub/internal/database"
	"bookclub/internal/services"
	"bookclub/pkg/rabbitmq"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the schema and start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func serve() error {
	cfg := loadConfig()

	// --- Database ---
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	log.Printf("Connected to %s database", cfg.DBDriver)
	if err := database.Migrate(db); err != nil {
		return err
	}

	// --- RabbitMQ (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			return err
		}
		defer mqClient.Close()
		publisher = mqClient

		if err := mqClient.ConsumeEvents(rabbitmq.LogEvent); err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	} else {
		log.Println("RABBITMQ_URL is not set. Events will not be published.")
	}

	fiberApp := app.New(app.Options{
		DB:        db,
		Publisher: publisher,
		StaticDir: cfg.StaticDir,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	listenErr := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", cfg.AppPort)
		listenErr <- fiberApp.Listen(cfg.AppPort)
	}()

	select {
	case err := <-listenErr:
		return err
	case <-quit:
	}

	log.Println("Shutting down server...")
	if err := fiberApp.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
	return nil
}
