package journeyplanner

import (
	"errors"

	"github.com/travigo/patnametro/pkg/ctdf"
	"github.com/travigo/patnametro/pkg/dataaggregator/query"
	"github.com/travigo/patnametro/pkg/fares"
)

func (s Source) JourneyPlanQuery(q query.JourneyPlan) (*ctdf.JourneyPlanResults, error) {
	if q.OriginStation == nil || q.DestinationStation == nil {
		return nil, errors.New("journey plan requires an origin and destination station")
	}

	passengers := q.Passengers
	if passengers < 1 {
		passengers = 1
	}

	category := q.Category
	if category == "" {
		category = ctdf.FareCategorySingle
	}

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = fares.SortByDuration
	}

	routeOptions := fares.RankRouteOptions(q.OriginStation.Name, q.DestinationStation.Name, sortBy)
	for i := range routeOptions {
		routeOptions[i].TotalFare = routeOptions[i].Fare * passengers
	}

	return &ctdf.JourneyPlanResults{
		OriginStation:      q.OriginStation.Name,
		DestinationStation: q.DestinationStation.Name,
		SortBy:             string(sortBy),
		Category:           category,
		Passengers:         passengers,
		Fare:               fares.ComputeFare(s.Dataset.Stations, q.OriginStation.Name, q.DestinationStation.Name, category, passengers),
		RouteOptions:       routeOptions,
	}, nil
}
