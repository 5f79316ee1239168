package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/patnametro/pkg/accounts"
	"github.com/travigo/patnametro/pkg/fares"
	"github.com/travigo/patnametro/pkg/payments"
	"github.com/travigo/patnametro/pkg/ticketing"
)

func TicketsRouter(router fiber.Router, tickets *ticketing.Service, accountService accounts.AccountService, requireAuth fiber.Handler) {
	router.Get("/quick", func(c *fiber.Ctx) error {
		return c.JSON(tickets.QuickPurchaseOptions())
	})
	router.Post("/checkout", requireAuth, postCheckout(tickets, accountService))
	router.Get("/history", requireAuth, getTicketHistory(tickets, accountService))
}

func postCheckout(tickets *ticketing.Service, accountService accounts.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := authenticatedUser(c, accountService)
		if err != nil {
			return sendAccountError(c, err)
		}

		var request ticketing.TicketRequest
		if err := c.BodyParser(&request); err != nil {
			return sendError(c, fiber.StatusBadRequest, "Invalid checkout body")
		}

		ticket, err := tickets.Checkout(c.UserContext(), user, request)
		switch {
		case errors.Is(err, ticketing.ErrMissingStation),
			errors.Is(err, ticketing.ErrUnknownStation),
			errors.Is(err, ticketing.ErrInvalidPassengers),
			errors.Is(err, fares.ErrUnknownCategory),
			errors.Is(err, payments.ErrUnknownMethod),
			errors.Is(err, payments.ErrInvalidAmount):
			return sendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, payments.ErrInsufficientBalance):
			return sendError(c, fiber.StatusPaymentRequired, err.Error())
		case err != nil:
			return sendError(c, fiber.StatusServiceUnavailable, err.Error())
		}

		ticketsSold.WithLabelValues(string(ticket.Category), string(ticket.PaymentMethod)).Inc()

		c.Status(fiber.StatusCreated)
		return sendReduced(c, ticket, "basic", "detailed")
	}
}

func getTicketHistory(tickets *ticketing.Service, accountService accounts.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := authenticatedUser(c, accountService)
		if err != nil {
			return sendAccountError(c, err)
		}

		history, err := tickets.History(c.UserContext(), user.Identifier)
		if err != nil {
			return sendError(c, fiber.StatusServiceUnavailable, err.Error())
		}

		return sendReduced(c, history, "basic")
	}
}
