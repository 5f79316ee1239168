package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/patnametro/pkg/accounts"
	"github.com/travigo/patnametro/pkg/admin"
	"github.com/travigo/patnametro/pkg/api/routes"
	"github.com/travigo/patnametro/pkg/helpline"
	"github.com/travigo/patnametro/pkg/lostfound"
	"github.com/travigo/patnametro/pkg/payments"
	"github.com/travigo/patnametro/pkg/realtime"
	"github.com/travigo/patnametro/pkg/session"
	"github.com/travigo/patnametro/pkg/ticketing"
)

// Services are the dependencies the HTTP handlers are built on. Reference data
// is served through the global data aggregator.
type Services struct {
	Sessions *session.Store
	Tokens   *TokenAuthority

	Feed      *realtime.Feed
	Accounts  accounts.AccountService
	Payments  payments.PaymentService
	Tickets   *ticketing.Service
	LostFound *lostfound.Service
	Helpline  *helpline.Service
	Admin     *admin.Service
}

func NewApp(services *Services) *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		UnescapePath:          true,
	})
	webApp.Use(NewLogger())

	webApp.Get("/metrics", MetricsHandler())

	group := webApp.Group("/core", NewSessionMiddleware(services.Sessions))

	requireAuth := services.Tokens.EnsureValidToken()

	group.Get("/version", routes.APIVersion)

	routes.LinesRouter(group.Group("/lines"))
	routes.StationsRouter(group.Group("/stations"), services.Feed)
	routes.RealtimeRouter(group.Group("/realtime"), services.Feed)

	routes.PlannerRouter(group.Group("/planner"))
	routes.FaresRouter(group.Group("/fares"), services.Tickets)
	routes.CrowdRouter(group.Group("/crowd"))

	routes.LostFoundRouter(group.Group("/lost_found"), services.LostFound)
	routes.HelplineRouter(group.Group("/helpline"), services.Helpline)

	routes.AccountRouter(group.Group("/account"), services.Accounts, services.Tokens)
	routes.PreferencesRouter(group.Group("/preferences"))

	routes.TicketsRouter(group.Group("/tickets"), services.Tickets, services.Accounts, requireAuth)
	routes.CardsRouter(group.Group("/cards", requireAuth), services.Payments)

	routes.AdminRouter(group.Group("/admin", requireAuth, RequireAdmin()), services.Admin)
	routes.ServiceAlertRouter(group.Group("/service_alerts"), services.Admin)

	return webApp
}

func SetupServer(listen string, services *Services) error {
	return NewApp(services).Listen(listen)
}
