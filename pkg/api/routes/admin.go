package routes

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/patnametro/pkg/admin"
)

// AdminRouter expects to be mounted behind the token and admin middlewares
func AdminRouter(router fiber.Router, adminService *admin.Service) {
	router.Get("/dashboard", getAdminDashboard(adminService))
	router.Get("/users", getAdminUsers(adminService))
	router.Get("/alerts", listServiceAlerts(adminService))
	router.Post("/alerts", postServiceAlert(adminService))
	router.Get("/export/:report", getAdminExport(adminService))
}

func getAdminDashboard(adminService *admin.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dashboard, err := adminService.Dashboard(c.UserContext())
		if err != nil {
			return sendError(c, fiber.StatusServiceUnavailable, err.Error())
		}

		return c.JSON(dashboard)
	}
}

func getAdminUsers(adminService *admin.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := adminService.Users(c.UserContext())
		if err != nil {
			return sendError(c, fiber.StatusServiceUnavailable, err.Error())
		}

		return c.JSON(users)
	}
}

func postServiceAlert(adminService *admin.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var form admin.AlertForm
		if err := c.BodyParser(&form); err != nil {
			return sendError(c, fiber.StatusBadRequest, "Invalid alert body")
		}

		alert, err := adminService.CreateAlert(c.UserContext(), form)
		switch {
		case errors.Is(err, admin.ErrInvalidAlertType), errors.Is(err, admin.ErrMissingMessage):
			return sendError(c, fiber.StatusBadRequest, err.Error())
		case err != nil:
			return sendError(c, fiber.StatusServiceUnavailable, err.Error())
		}

		c.Status(fiber.StatusCreated)
		return sendReduced(c, alert, "basic", "detailed")
	}
}

func getAdminExport(adminService *admin.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		report := c.Params("report")

		var buffer bytes.Buffer
		err := adminService.Export(c.UserContext(), report, &buffer)
		if errors.Is(err, admin.ErrUnknownReport) {
			return sendError(c, fiber.StatusNotFound, err.Error())
		} else if err != nil {
			return sendError(c, fiber.StatusServiceUnavailable, err.Error())
		}

		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.csv"`, report))
		return c.Send(buffer.Bytes())
	}
}
