package handlers

import (
	"github.com/gofiber/fiber/v2"

	"arenacustoms/internal/domain"
	"arenacustoms/internal/log"
	"arenacustoms/internal/services"
	"arenacustoms/internal/storefront"
	"arenacustoms/internal/validate"
)

type StorefrontHandler struct {
	Loader *storefront.Loader
}

// Home renders the catalog. The team filter is read from this request's
// query string; back/forward navigation arrives as a new request.
func (h *StorefrontHandler) Home(c *fiber.Ctx) error {
	team, ok := validate.Tag(c.Query("team"))
	view := h.Loader.Load(c.UserContext())
	if view.State() == storefront.ReadyFallback {
		log.Info(c, "storefront.fallback.served", map[string]any{"count": len(view.Products()), "source": view.Source()})
	}
	// An unusable tag matches nothing; it never widens to the full catalog.
	products := []domain.Product{}
	if ok {
		products = services.FilterByTag(view.Products(), team)
	} else {
		log.Security(c, "validation.fail", map[string]any{"field": "team"})
		team = "(invalid team)"
	}
	return render(c, "storefront", fiber.Map{
		"Team":     team,
		"Products": products,
		"Count":    len(products),
		"Fallback": view.State() == storefront.ReadyFallback,
	})
}
