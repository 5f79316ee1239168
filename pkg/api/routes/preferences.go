package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/patnametro/pkg/session"
)

func PreferencesRouter(router fiber.Router) {
	router.Get("/language", getLanguage)
	router.Put("/language", putLanguage)
}

func getLanguage(c *fiber.Ctx) error {
	language := session.DefaultLanguage
	if sessionContext := sessionFrom(c); sessionContext != nil {
		language = sessionContext.Language
	}

	return c.JSON(fiber.Map{
		"Language":  language,
		"Supported": session.SupportedLanguages,
	})
}

func putLanguage(c *fiber.Ctx) error {
	var requestBody struct {
		Language string
	}
	if err := c.BodyParser(&requestBody); err != nil {
		return sendError(c, fiber.StatusBadRequest, "Invalid language body")
	}

	sessionContext := sessionFrom(c)
	if sessionContext == nil {
		return sendError(c, fiber.StatusServiceUnavailable, "No session available")
	}

	err := sessionContext.SetLanguage(c.UserContext(), requestBody.Language)
	if errors.Is(err, session.ErrUnsupportedLanguage) {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	} else if err != nil {
		return sendError(c, fiber.StatusServiceUnavailable, err.Error())
	}

	return c.JSON(fiber.Map{
		"Language": sessionContext.Language,
	})
}
