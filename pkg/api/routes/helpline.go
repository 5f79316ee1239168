package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/patnametro/pkg/helpline"
)

func HelplineRouter(router fiber.Router, helplineService *helpline.Service) {
	router.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(helplineService.Content())
	})
	router.Post("/feedback", postFeedback(helplineService))
}

func postFeedback(helplineService *helpline.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var form helpline.FeedbackForm
		if err := c.BodyParser(&form); err != nil {
			return sendError(c, fiber.StatusBadRequest, "Invalid feedback body")
		}

		feedback, err := helplineService.SubmitFeedback(c.UserContext(), form)
		if err != nil {
			return sendError(c, fiber.StatusServiceUnavailable, err.Error())
		}

		c.Status(fiber.StatusCreated)
		return c.JSON(fiber.Map{
			"Identifier": feedback.Identifier,
			"Category":   feedback.Category,
		})
	}
}
