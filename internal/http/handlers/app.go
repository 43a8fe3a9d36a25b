package handlers

import (
	"net"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"arenacustoms/internal/config"
	applog "arenacustoms/internal/log"
)

// ErrorHandler logs the failure and shows a friendly page without internals.
func ErrorHandler(c *fiber.Ctx, err error) error {
	applog.Error(c, "server.error", err, nil)
	if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
		"Message": "Something went wrong. Please try again.",
	}); rerr != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
	}
	return nil
}

func fromLoopback(c *fiber.Ctx) bool {
	ip := net.ParseIP(c.IP())
	return ip != nil && ip.IsLoopback()
}

// NewApp builds the web server: storefront page, catalog API, diagnostics
// and the bundled snapshot.
func NewApp(cfg config.Config, deps *Deps) *fiber.App {
	engine := html.New(cfg.TemplateDir, ".html")

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: ErrorHandler,
	})
	app.Server().MaxRequestBodySize = 64 << 10

	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())

	// every call fans out to the store, which allows ~3 requests/second
	catalogLimiter := limiter.New(limiter.Config{
		Max:        30,
		Expiration: time.Minute,
		// the storefront's own loader calls back over loopback for every shopper
		Next: fromLoopback,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|products"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.products.hit", nil)
			noStore(c)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})

	api := app.Group("/api")
	api.Get("/products", catalogLimiter, deps.CatalogHandler.List)
	api.Get("/diag", deps.DiagHandler.Diag)

	snapshotPath := filepath.Join(cfg.StaticDir, "products.json")
	app.Get("/products.json", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-cache")
		return c.SendFile(snapshotPath)
	})
	app.Static("/images", filepath.Join(cfg.StaticDir, "images"))

	app.Get("/", deps.StorefrontHandler.Home)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
	})
	return app
}
