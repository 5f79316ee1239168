package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/patnametro/pkg/ctdf"
	"github.com/travigo/patnametro/pkg/dataaggregator"
	"github.com/travigo/patnametro/pkg/dataaggregator/query"
)

type lineDetail struct {
	Line     *ctdf.Line     `groups:"basic"`
	Stations []ctdf.Station `groups:"basic"`
}

func LinesRouter(router fiber.Router) {
	router.Get("/", listLines)
	router.Get("/:identifier", getLine)
}

func listLines(c *fiber.Ctx) error {
	lines, err := dataaggregator.Lookup[[]ctdf.Line](query.Lines{})
	if err != nil {
		return sendError(c, fiber.StatusServiceUnavailable, err.Error())
	}

	return sendReduced(c, lines, "basic")
}

func getLine(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	line, err := dataaggregator.Lookup[*ctdf.Line](query.Line{Identifier: identifier})
	if err != nil {
		return sendError(c, fiber.StatusNotFound, err.Error())
	}

	stations, err := dataaggregator.Lookup[[]ctdf.Station](query.StationsOnLine{LineRef: identifier})
	if err != nil {
		return sendError(c, fiber.StatusServiceUnavailable, err.Error())
	}

	return sendReduced(c, lineDetail{
		Line:     line,
		Stations: stations,
	}, "basic", "detailed")
}
