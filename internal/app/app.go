package app

import (
	"time"

	"bookclub/internal/handlers"
	"bookclub/internal/middleware"
	"bookclub/internal/repositories"
	"bookclub/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

// Options are the dependencies of the HTTP application.
type Options struct {
	DB        *gorm.DB
	Publisher services.EventPublisher // nil disables events
	StaticDir string                  // empty disables static file serving
	Quiet     bool                    // skip the request logger, for tests
}

// New wires repositories, services and handlers into a Fiber app.
func New(opts Options) *fiber.App {
	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(opts.DB)
	bookRepo := repositories.NewGORMBookRepository(opts.DB)
	voteRepo := repositories.NewGORMVoteRepository(opts.DB)
	sessionRepo := repositories.NewGORMSessionRepository(opts.DB)

	// --- Services ---
	userService := services.NewUserService(userRepo, opts.Publisher)
	bookService := services.NewBookService(bookRepo, userRepo, opts.Publisher)
	voteService := services.NewVoteService(voteRepo, opts.Publisher)
	rankingService := services.NewRankingService(bookRepo, voteRepo)
	sessionService := services.NewSessionService(sessionRepo)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService)
	bookHandler := handlers.NewBookHandler(bookService, rankingService)
	voteHandler := handlers.NewVoteHandler(voteService)
	sessionHandler := handlers.NewSessionHandler(sessionService)

	app := fiber.New()

	// --- Middleware ---
	if !opts.Quiet {
		app.Use(logger.New())
	}
	app.Use(cors.New())
	app.Use(middleware.NoCacheHTML())

	// --- API Routes ---
	api := app.Group("/api")
	userHandler.RegisterRoutes(api)
	bookHandler.RegisterRoutes(api)
	voteHandler.RegisterRoutes(api)
	sessionHandler.RegisterRoutes(api)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	if opts.StaticDir != "" {
		app.Static("/", opts.StaticDir)
	}

	return app
}
