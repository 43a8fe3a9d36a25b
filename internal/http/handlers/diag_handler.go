package handlers

import (
	"github.com/gofiber/fiber/v2"

	"arenacustoms/internal/log"
	"arenacustoms/internal/notion"
	"arenacustoms/internal/repos"
)

type DiagHandler struct {
	Store notion.Config
	Log   *repos.FetchLogRepo
}

// Diag reports which store settings are present. Secret values never leave.
func (h *DiagHandler) Diag(c *fiber.Ctx) error {
	noStore(c)
	body := fiber.Map{
		"hasToken": h.Store.Token != "",
		"hasDb":    h.Store.DatabaseID != "",
	}
	if h.Log != nil {
		last, err := h.Log.Latest()
		if err != nil {
			log.Error(c, "diag.fetchlog.fail", err, nil)
		} else if last != nil {
			body["lastFetch"] = last
		}
	}
	return c.JSON(body)
}
