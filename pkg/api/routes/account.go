package routes

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/travigo/patnametro/pkg/accounts"
	"github.com/travigo/patnametro/pkg/ctdf"
)

func AccountRouter(router fiber.Router, accountService accounts.AccountService, tokens TokenIssuer) {
	router.Post("/login", postLogin(accountService, tokens))
	router.Post("/signup", postSignup(accountService, tokens))
	router.Post("/logout", postLogout(tokens))
	router.Get("/profile", getProfile)
}

// signIn issues a token and records the user against the session
func signIn(c *fiber.Ctx, tokens TokenIssuer, user *ctdf.User) error {
	token, err := tokens.Issue(user)
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, err.Error())
	}

	if sessionContext := sessionFrom(c); sessionContext != nil {
		if err := sessionContext.SetUser(c.UserContext(), user); err != nil {
			return sendError(c, fiber.StatusServiceUnavailable, err.Error())
		}
	}

	return sendReduced(c, fiber.Map{
		"token": token,
		"user":  user,
	}, "basic", "detailed")
}

func postLogin(accountService accounts.AccountService, tokens TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var requestBody struct {
			Email    string
			Password string
		}
		if err := c.BodyParser(&requestBody); err != nil {
			return sendError(c, fiber.StatusBadRequest, "Invalid login body")
		}

		user, err := accountService.Authenticate(c.UserContext(), requestBody.Email, requestBody.Password)
		if errors.Is(err, accounts.ErrInvalidCredentials) {
			loginAttempts.WithLabelValues("login", "rejected").Inc()
			return sendError(c, fiber.StatusUnauthorized, err.Error())
		} else if err != nil {
			return sendError(c, fiber.StatusServiceUnavailable, err.Error())
		}

		loginAttempts.WithLabelValues("login", "accepted").Inc()
		log.Info().Str("user", user.Identifier).Msg("User logged in")

		return signIn(c, tokens, user)
	}
}

func postSignup(accountService accounts.AccountService, tokens TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var form accounts.SignupForm
		if err := c.BodyParser(&form); err != nil {
			return sendError(c, fiber.StatusBadRequest, "Invalid signup body")
		}

		if err := form.Validate(); err != nil {
			loginAttempts.WithLabelValues("signup", "rejected").Inc()
			return sendError(c, fiber.StatusBadRequest, err.Error())
		}

		user, err := accountService.Register(c.UserContext(), form.Name, form.Email, form.Password)
		if errors.Is(err, accounts.ErrDuplicateEmail) {
			loginAttempts.WithLabelValues("signup", "rejected").Inc()
			return sendError(c, fiber.StatusConflict, err.Error())
		} else if err != nil {
			return sendError(c, fiber.StatusServiceUnavailable, err.Error())
		}

		loginAttempts.WithLabelValues("signup", "accepted").Inc()
		log.Info().Str("user", user.Identifier).Msg("User signed up")

		c.Status(fiber.StatusCreated)
		return signIn(c, tokens, user)
	}
}

// postLogout clears the session user and revokes the bearer token, if one is sent
func postLogout(tokens TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sessionContext := sessionFrom(c); sessionContext != nil {
			if err := sessionContext.ClearUser(c.UserContext()); err != nil {
				return sendError(c, fiber.StatusServiceUnavailable, err.Error())
			}
		}

		if token, found := strings.CutPrefix(c.Get("Authorization"), "Bearer "); found {
			if err := tokens.Revoke(c.UserContext(), token); err != nil {
				return sendError(c, fiber.StatusServiceUnavailable, err.Error())
			}
		}

		return c.JSON(fiber.Map{
			"success": true,
		})
	}
}

func getProfile(c *fiber.Ctx) error {
	sessionContext := sessionFrom(c)
	if sessionContext == nil || sessionContext.User == nil {
		return sendError(c, fiber.StatusUnauthorized, "Not signed in")
	}

	return sendReduced(c, sessionContext.User, "basic", "detailed")
}
