package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/patnametro/pkg/fares"
	"github.com/travigo/patnametro/pkg/ticketing"
)

func FaresRouter(router fiber.Router, tickets *ticketing.Service) {
	router.Get("/", getFare(tickets))
}

func getFare(tickets *ticketing.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		category, passengers, err := fareOptions(c)
		if err != nil {
			return sendError(c, fiber.StatusBadRequest, err.Error())
		}

		from := c.Query("from")
		to := c.Query("to")

		validUntil, err := fares.ValidUntil(category, time.Now())
		if err != nil {
			return sendError(c, fiber.StatusInternalServerError, err.Error())
		}

		fareQuotes.WithLabelValues(string(category)).Inc()

		return c.JSON(fiber.Map{
			"From":       from,
			"To":         to,
			"Category":   category,
			"Passengers": passengers,
			"Fare":       tickets.Quote(from, to, category, passengers),
			"Validity":   fares.TicketValidity(category),
			"ValidUntil": validUntil,
		})
	}
}
