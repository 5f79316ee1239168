package routes

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/travigo/patnametro/pkg/accounts"
	"github.com/travigo/patnametro/pkg/ctdf"
	"github.com/travigo/patnametro/pkg/session"
)

// Keys for values the middlewares store on the request
const (
	SessionLocal = "session"
	UserIDLocal  = "account_userid"
	AdminLocal   = "account_admin"
)

type TokenIssuer interface {
	Issue(user *ctdf.User) (string, error)
	Revoke(ctx context.Context, token string) error
}

var (
	loginAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "patnametro_login_attempts_total",
		Help: "Login and signup attempts by outcome",
	}, []string{"action", "result"})

	fareQuotes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "patnametro_fare_quotes_total",
		Help: "Fare quotes served by category",
	}, []string{"category"})

	ticketsSold = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "patnametro_tickets_sold_total",
		Help: "Tickets issued by category and payment method",
	}, []string{"category", "method"})
)

func init() {
	prometheus.MustRegister(loginAttempts, fareQuotes, ticketsSold)
}

func sendError(c *fiber.Ctx, status int, message string) error {
	c.SendStatus(status)
	return c.JSON(fiber.Map{
		"error": message,
	})
}

// sendReduced writes data limited to the fields tagged with the given groups
func sendReduced(c *fiber.Ctx, data any, groups ...string) error {
	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, data)
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, "Sheriff could not reduce response")
	}

	return c.JSON(reduced)
}

func sessionFrom(c *fiber.Ctx) *session.Context {
	sessionContext, _ := c.Locals(SessionLocal).(*session.Context)
	return sessionContext
}

// authenticatedUser resolves the account behind a validated token
func authenticatedUser(c *fiber.Ctx, accountService accounts.AccountService) (*ctdf.User, error) {
	userID, _ := c.Locals(UserIDLocal).(string)
	if userID == "" {
		return nil, accounts.ErrUnknownAccount
	}

	return accountService.Get(c.UserContext(), userID)
}

func sendAccountError(c *fiber.Ctx, err error) error {
	if errors.Is(err, accounts.ErrUnknownAccount) {
		return sendError(c, fiber.StatusUnauthorized, "Account not found")
	}

	return sendError(c, fiber.StatusServiceUnavailable, err.Error())
}
