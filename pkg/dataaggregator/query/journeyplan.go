package query

import (
	"github.com/travigo/patnametro/pkg/ctdf"
	"github.com/travigo/patnametro/pkg/fares"
)

type JourneyPlan struct {
	OriginStation      *ctdf.Station
	DestinationStation *ctdf.Station

	SortBy     fares.SortKey
	Category   ctdf.FareCategory
	Passengers int
}
