package fares

import (
	"github.com/travigo/patnametro/pkg/ctdf"
	"golang.org/x/exp/slices"
)

type SortKey string

const (
	SortByDuration SortKey = "duration"
	SortByFare     SortKey = "fare"
	SortByCrowd    SortKey = "crowd"
)

func (s SortKey) IsValid() bool {
	return s == SortByDuration || s == SortByFare || s == SortByCrowd
}

// The journey planner offers a fixed menu of route shapes; it does not search
// the line graph.
var routeShapes = []ctdf.RouteOption{
	{
		Identifier:      "1",
		DepartureTime:   "08:30",
		ArrivalTime:     "09:10",
		Duration:        40,
		Transfers:       0,
		Fare:            25,
		CrowdLevel:      ctdf.CrowdLevelHigh,
		WalkingDistance: 200,
		Lines:           []string{"blue"},
	},
	{
		Identifier:      "2",
		DepartureTime:   "08:45",
		ArrivalTime:     "09:35",
		Duration:        50,
		Transfers:       1,
		Fare:            30,
		CrowdLevel:      ctdf.CrowdLevelModerate,
		WalkingDistance: 150,
		Lines:           []string{"blue", "green"},
	},
	{
		Identifier:      "3",
		DepartureTime:   "09:15",
		ArrivalTime:     "10:05",
		Duration:        50,
		Transfers:       0,
		Fare:            25,
		CrowdLevel:      ctdf.CrowdLevelLow,
		WalkingDistance: 200,
		Lines:           []string{"blue"},
	},
	{
		Identifier:      "4",
		DepartureTime:   "09:30",
		ArrivalTime:     "10:15",
		Duration:        45,
		Transfers:       1,
		Fare:            35,
		CrowdLevel:      ctdf.CrowdLevelLow,
		WalkingDistance: 100,
		Lines:           []string{"yellow", "green"},
	},
}

// RankRouteOptions builds the four candidate routes between origin and
// destination and stable-sorts them ascending by sortKey. An unrecognised key
// leaves them in menu order.
func RankRouteOptions(origin string, destination string, sortKey SortKey) []ctdf.RouteOption {
	options := make([]ctdf.RouteOption, 0, len(routeShapes))

	for _, shape := range routeShapes {
		option := shape
		option.DepartureStation = origin
		option.ArrivalStation = destination
		option.Lines = slices.Clone(shape.Lines)

		options = append(options, option)
	}

	var projection func(ctdf.RouteOption) int
	switch sortKey {
	case SortByDuration:
		projection = func(o ctdf.RouteOption) int { return o.Duration }
	case SortByFare:
		projection = func(o ctdf.RouteOption) int { return o.Fare }
	case SortByCrowd:
		projection = func(o ctdf.RouteOption) int { return o.CrowdLevel.Rank() }
	default:
		return options
	}

	slices.SortStableFunc(options, func(a, b ctdf.RouteOption) int {
		return projection(a) - projection(b)
	})

	return options
}
