package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/patnametro/pkg/ctdf"
	"github.com/travigo/patnametro/pkg/dataaggregator"
	"github.com/travigo/patnametro/pkg/dataaggregator/query"
)

func CrowdRouter(router fiber.Router) {
	router.Get("/:line", getCrowdForecast)
}

func getCrowdForecast(c *fiber.Ctx) error {
	forecast, err := dataaggregator.Lookup[*ctdf.CrowdForecast](query.CrowdForecast{
		LineRef: c.Params("line"),
		At:      time.Now(),
	})
	if err != nil {
		return sendError(c, fiber.StatusNotFound, err.Error())
	}

	return sendReduced(c, forecast, "basic")
}
