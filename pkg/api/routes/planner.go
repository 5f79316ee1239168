package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/patnametro/pkg/ctdf"
	"github.com/travigo/patnametro/pkg/dataaggregator"
	"github.com/travigo/patnametro/pkg/dataaggregator/query"
	"github.com/travigo/patnametro/pkg/fares"
	"github.com/travigo/patnametro/pkg/ticketing"
)

func PlannerRouter(router fiber.Router) {
	router.Get("/:origin/:destination", getJourneyPlan)
}

// lookupStation accepts either a station identifier or its display name
func lookupStation(reference string) (*ctdf.Station, error) {
	station, err := dataaggregator.Lookup[*ctdf.Station](query.Station{Identifier: reference})
	if err == nil {
		return station, nil
	}

	return dataaggregator.Lookup[*ctdf.Station](query.Station{Name: reference})
}

// fareOptions reads the category and passenger count shared by the planner and fare endpoints
func fareOptions(c *fiber.Ctx) (ctdf.FareCategory, int, error) {
	category := ctdf.FareCategorySingle
	if value := c.Query("category"); value != "" {
		parsed, err := fares.ParseCategory(value)
		if err != nil {
			return "", 0, err
		}
		category = parsed
	}

	passengers := c.QueryInt("passengers", 1)
	if passengers < 1 || passengers > ticketing.MaximumPassengers {
		return "", 0, ticketing.ErrInvalidPassengers
	}

	return category, passengers, nil
}

func getJourneyPlan(c *fiber.Ctx) error {
	originStation, err := lookupStation(c.Params("origin"))
	if err != nil {
		return sendError(c, fiber.StatusNotFound, "Could not find origin Station")
	}

	destinationStation, err := lookupStation(c.Params("destination"))
	if err != nil {
		return sendError(c, fiber.StatusNotFound, "Could not find destination Station")
	}

	sortBy := fares.SortKey(c.Query("sort", string(fares.SortByDuration)))
	if !sortBy.IsValid() {
		return sendError(c, fiber.StatusBadRequest, "Sort must be one of duration, fare or crowd")
	}

	category, passengers, err := fareOptions(c)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}

	journeyPlan, err := dataaggregator.Lookup[*ctdf.JourneyPlanResults](query.JourneyPlan{
		OriginStation:      originStation,
		DestinationStation: destinationStation,
		SortBy:             sortBy,
		Category:           category,
		Passengers:         passengers,
	})
	if err != nil {
		return sendError(c, fiber.StatusServiceUnavailable, err.Error())
	}

	fareQuotes.WithLabelValues(string(category)).Inc()

	return c.JSON(journeyPlan)
}
