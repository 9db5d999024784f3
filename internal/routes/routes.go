package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/config"
	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/document"
	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/identity"
	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/ledger"
	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/logging"
	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/middleware"
	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/notification"
	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/profile"
	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/transfer"
)

// Deps aggregates shared dependencies required to wire routes. DB and Cache
// are optional; without them the service falls back to file/in-memory state
// and skips the idempotency middleware.
type Deps struct {
	Cfg    config.Config
	Ledger ledger.Service
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))

	RegisterHealthRoutes(app, d)

	var identityStore identity.Store
	if d.DB != nil {
		identityStore = identity.NewPostgresStore(d.DB)
	} else {
		identityStore = identity.NewFileStore(d.Cfg.IdentityFile)
	}
	identitySvc := identity.NewService(identityStore, d.Ledger, logging.Component(d.Logger, "identity"))

	var profileRepo profile.Repository
	if d.DB != nil {
		profileRepo = profile.NewPostgresRepository(d.DB)
	} else {
		profileRepo = profile.NewMemoryRepository()
	}
	profileSvc := profile.NewService(profileRepo)

	notifier := notification.NewLoggerNotifier(logging.Component(d.Logger, "notifications"))
	cache := document.NewCache(d.Ledger, logging.Component(d.Logger, "documents"))
	issuer := document.NewIssuer(d.Ledger, cache, notifier)
	transferSvc := transfer.NewService(d.Ledger, notifier)

	profileHandler := profile.NewHandler(profileSvc)
	documentHandler := document.NewHandler(issuer, cache, identitySvc)
	transferHandler := transfer.NewHandler(transferSvc, identitySvc)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	RegisterIdentityRoutes(api, identitySvc)
	RegisterProfileRoutes(api, profileHandler)

	// Unsafe submissions run behind the idempotency middleware when redis
	// is configured so client retries can never double-mint or
	// double-transfer.
	mutating := api.Group("")
	if d.Cache != nil {
		mutating = api.Group("", middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, logging.Component(d.Logger, "idempotency")))
	}
	RegisterDocumentRoutes(api, mutating, documentHandler)
	RegisterTransferRoutes(api, mutating, transferHandler)

	return nil
}
