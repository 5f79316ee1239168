package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/patnametro/pkg/admin"
)

func ServiceAlertRouter(router fiber.Router, adminService *admin.Service) {
	router.Get("/", listServiceAlerts(adminService))
}

func listServiceAlerts(adminService *admin.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		alerts, err := adminService.ListAlerts(c.UserContext())
		if err != nil {
			return sendError(c, fiber.StatusServiceUnavailable, err.Error())
		}

		return sendReduced(c, alerts, "basic")
	}
}
