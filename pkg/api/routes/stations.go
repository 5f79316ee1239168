package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/patnametro/pkg/ctdf"
	"github.com/travigo/patnametro/pkg/dataaggregator"
	"github.com/travigo/patnametro/pkg/dataaggregator/query"
	"github.com/travigo/patnametro/pkg/realtime"
)

const stationSearchLimit = 5

func StationsRouter(router fiber.Router, feed *realtime.Feed) {
	router.Get("/", listStations)
	router.Get("/:identifier", getStation)
	router.Get("/:identifier/departures", getStationDepartures(feed))
}

func listStations(c *fiber.Ctx) error {
	var stationsQuery any = query.Stations{}
	if search := c.Query("search"); search != "" {
		stationsQuery = query.StationSearch{Term: search, Limit: stationSearchLimit}
	}

	stations, err := dataaggregator.Lookup[[]ctdf.Station](stationsQuery)
	if err != nil {
		return sendError(c, fiber.StatusServiceUnavailable, err.Error())
	}

	return sendReduced(c, stations, "basic")
}

func getStation(c *fiber.Ctx) error {
	station, err := dataaggregator.Lookup[*ctdf.Station](query.Station{Identifier: c.Params("identifier")})
	if err != nil {
		return sendError(c, fiber.StatusNotFound, err.Error())
	}

	return sendReduced(c, station, "basic", "detailed")
}

func getStationDepartures(feed *realtime.Feed) fiber.Handler {
	return func(c *fiber.Ctx) error {
		station, err := dataaggregator.Lookup[*ctdf.Station](query.Station{Identifier: c.Params("identifier")})
		if err != nil {
			return sendError(c, fiber.StatusNotFound, err.Error())
		}

		return c.JSON(fiber.Map{
			"Station":    station.Name,
			"Departures": feed.StationBoard(station.Identifier),
		})
	}
}
