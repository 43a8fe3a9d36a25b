package handlers

import (
	"github.com/gofiber/fiber/v2"

	"arenacustoms/internal/domain"
	"arenacustoms/internal/log"
	"arenacustoms/internal/services"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

// List serves GET /api/products. A missing store configuration is an
// expected 404 with a reason so clients fall back to the bundled snapshot.
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	noStore(c)
	snap, err := h.Catalog.FetchCatalog(c.UserContext())
	if err != nil {
		if services.IsConfiguration(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"products": []domain.Product{},
				"reason":   "store env missing",
			})
		}
		log.Error(c, "api.products.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"products": snap.Products})
}

func noStore(c *fiber.Ctx) {
	c.Set(fiber.HeaderCacheControl, "no-store")
}
