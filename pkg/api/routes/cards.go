package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/patnametro/pkg/payments"
)

// CardsRouter expects to be mounted behind the token middleware
func CardsRouter(router fiber.Router, paymentService payments.PaymentService) {
	router.Get("/balance", getCardBalance(paymentService))
	router.Post("/recharge", postCardRecharge(paymentService))
}

func getCardBalance(paymentService payments.PaymentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(UserIDLocal).(string)

		balance, err := paymentService.Balance(c.UserContext(), userID)
		if err != nil {
			return sendError(c, fiber.StatusServiceUnavailable, err.Error())
		}

		return c.JSON(fiber.Map{
			"Balance": balance,
		})
	}
}

func postCardRecharge(paymentService payments.PaymentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(UserIDLocal).(string)

		var requestBody struct {
			Amount int
		}
		if err := c.BodyParser(&requestBody); err != nil {
			return sendError(c, fiber.StatusBadRequest, "Invalid recharge body")
		}

		balance, err := paymentService.Recharge(c.UserContext(), userID, requestBody.Amount)
		switch {
		case errors.Is(err, payments.ErrRechargeTooSmall),
			errors.Is(err, payments.ErrBalanceLimit),
			errors.Is(err, payments.ErrInvalidAmount):
			return sendError(c, fiber.StatusBadRequest, err.Error())
		case err != nil:
			return sendError(c, fiber.StatusServiceUnavailable, err.Error())
		}

		return c.JSON(fiber.Map{
			"Balance": balance,
		})
	}
}
