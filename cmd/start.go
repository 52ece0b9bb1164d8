package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"p13n-sync/core/config"
	"p13n-sync/core/database"
	"p13n-sync/core/logger"
	"p13n-sync/core/middleware/auth"
	"p13n-sync/core/middleware/rayid"
	"p13n-sync/core/recommend"
	"p13n-sync/core/storage"
	"p13n-sync/feature/content"
	"p13n-sync/feature/interactions"
	"p13n-sync/feature/users"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// triggerDeps carries the shared collaborators behind the trigger routes.
type triggerDeps struct {
	cfg     *config.Config
	db      *gorm.DB
	store   storage.Client
	clients *recommend.Clients
	logger  *zap.Logger
}

// registerTriggers mounts the pipeline trigger endpoints. Each trigger runs
// its pipeline synchronously and reports the outcome; schedulers and change
// capture forwarders call these.
func registerTriggers(app *fiber.App, d triggerDeps) {
	app.Post("/sync/content", func(c *fiber.Ctx) error {
		if d.db == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "database unavailable")
		}
		repo, err := content.NewRepository(d.db)
		if err != nil {
			return err
		}
		svc := content.NewService(repo, d.store, d.clients.Personalize, d.clients.Parameters,
			d.cfg.Recommend, d.cfg.Storage.Bucket, d.logger)
		if err := svc.Run(c.UserContext()); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"status": "done"})
	})

	app.Post("/sync/users", func(c *fiber.Ctx) error {
		if d.db == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "database unavailable")
		}
		repo, err := users.NewRepository(d.db)
		if err != nil {
			return err
		}
		svc := users.NewService(repo, d.store, d.clients.Personalize,
			d.cfg.Recommend, d.cfg.Storage.Bucket, d.logger)
		if err := svc.Run(c.UserContext()); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"status": "done"})
	})

	app.Post("/sync/interactions", func(c *fiber.Ctx) error {
		svc := interactions.NewService(d.store, d.clients.Personalize, d.cfg.Recommend,
			d.cfg.Storage.BehaviourBucket, d.cfg.Storage.Bucket, d.logger)
		incremental := c.QueryBool("incremental")
		if err := svc.Run(c.UserContext(), incremental); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"status": "done"})
	})

	// Change-capture forwarders post record batches here; the stream paths
	// apply them through the streaming write API.
	app.Post("/stream/content", func(c *fiber.Ctx) error {
		events, err := content.ParseChangeBatch(c.Body())
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		st := content.NewStream(d.clients.Events, d.clients.Parameters, d.cfg.Recommend, d.logger)
		if err := st.Run(c.UserContext(), events); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"status": "done", "events": len(events)})
	})

	app.Post("/stream/users", func(c *fiber.Ctx) error {
		events, err := users.ParseChangeBatch(c.Body())
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		st := users.NewStream(d.clients.Events, d.clients.Personalize, d.cfg.Recommend, d.logger)
		if err := st.Run(c.UserContext(), events); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"status": "done", "events": len(events)})
	})

	app.Post("/recommend/train/:domain", func(c *fiber.Ctx) error {
		domain := c.Params("domain")
		if !recommend.ValidDomain(domain) {
			return fiber.NewError(fiber.StatusBadRequest, "unknown domain "+domain)
		}
		lifecycle := recommend.NewLifecycle(d.clients.Personalize, d.clients.Parameters,
			d.cfg.Recommend, d.logger)
		if err := lifecycle.RunTraining(c.UserContext(), domain); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"status": "done"})
	})
}

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the sync trigger server",
	Long:  `Starts the HTTP server exposing health and pipeline trigger endpoints.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.Load(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database (Optional)
		// Content and user triggers degrade to 503 without it.
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			db = conn
			logg.Info("Connected to cache database")
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 5. Initialize Storage and the dataset-service clients
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}
		clients, err := recommend.NewClients(cmd.Context(), cfg.Recommend)
		if err != nil {
			logg.Fatal("Failed to create dataset service clients", zap.Error(err))
		}

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 2.5 Health (Public)
		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})

		// 3. Auth (Protect trigger endpoints)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 4. Trigger endpoints
		registerTriggers(app, triggerDeps{
			cfg:     cfg,
			db:      db,
			store:   store,
			clients: clients,
			logger:  logg,
		})

		// 5. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 6. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
