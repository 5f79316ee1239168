package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/patnametro/pkg/ctdf"
	"github.com/travigo/patnametro/pkg/lostfound"
)

func LostFoundRouter(router fiber.Router, lostFound *lostfound.Service) {
	router.Get("/categories", listLostItemCategories)
	router.Get("/items", searchLostItems(lostFound))
	router.Post("/reports", postLostItemReport(lostFound))
}

func listLostItemCategories(c *fiber.Ctx) error {
	return c.JSON(lostfound.Categories())
}

func searchLostItems(lostFound *lostfound.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := lostFound.Search(c.UserContext(), lostfound.Filter{
			Query:    c.Query("q"),
			Category: c.Query("category"),
			Status:   ctdf.LostItemStatus(c.Query("status")),
		})
		if err != nil {
			return sendError(c, fiber.StatusServiceUnavailable, err.Error())
		}

		return sendReduced(c, items, "basic")
	}
}

func postLostItemReport(lostFound *lostfound.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var report lostfound.LostItemReport
		if err := c.BodyParser(&report); err != nil {
			return sendError(c, fiber.StatusBadRequest, "Invalid report body")
		}

		item, err := lostFound.Report(c.UserContext(), report)
		if err != nil {
			return sendError(c, fiber.StatusServiceUnavailable, err.Error())
		}

		c.Status(fiber.StatusCreated)
		return sendReduced(c, item, "basic", "detailed")
	}
}
