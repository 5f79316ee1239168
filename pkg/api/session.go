package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/travigo/patnametro/pkg/api/routes"
	"github.com/travigo/patnametro/pkg/session"
)

const sessionCookieLifetime = 365 * 24 * time.Hour

// NewSessionMiddleware loads the caller's session, starting a new one when the
// cookie is missing or not a session id
func NewSessionMiddleware(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(session.CookieName)
		if _, err := uuid.Parse(id); err != nil {
			id = session.NewID()

			c.Cookie(&fiber.Cookie{
				Name:     session.CookieName,
				Value:    id,
				Path:     "/",
				Expires:  time.Now().Add(sessionCookieLifetime),
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}

		sessionContext, err := store.Load(c.UserContext(), id)
		if err != nil {
			log.Error().Err(err).Msg("Failed to load session")

			c.SendStatus(fiber.StatusServiceUnavailable)
			return c.JSON(fiber.Map{
				"error": "Session store unavailable",
			})
		}

		c.Locals(routes.SessionLocal, sessionContext)

		return c.Next()
	}
}
