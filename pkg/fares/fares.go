// Package fares prices metro tickets and ranks the route options offered by
// the journey planner.
package fares

import (
	"errors"
	"math"

	"github.com/travigo/patnametro/pkg/ctdf"
)

const (
	BaseFare            = 20
	FarePerStationIndex = 5
)

var ErrUnknownCategory = errors.New("unknown fare category")

var categoryMultipliers = map[ctdf.FareCategory]float64{
	ctdf.FareCategorySingle:  1.0,
	ctdf.FareCategoryReturn:  1.8,
	ctdf.FareCategoryGroup:   0.9,
	ctdf.FareCategoryTourist: 2.5,
}

// Multiplier returns the category's multiplier. Unknown categories price as single.
func Multiplier(category ctdf.FareCategory) float64 {
	if multiplier, ok := categoryMultipliers[category]; ok {
		return multiplier
	}

	return 1.0
}

func ParseCategory(value string) (ctdf.FareCategory, error) {
	category := ctdf.FareCategory(value)
	if !category.IsValid() {
		return "", ErrUnknownCategory
	}

	return category, nil
}

// ComputeFare prices a ticket between two stations named exactly as in the
// station table.
//
// The distance term is the gap between the two stations' positions in the full
// station table, regardless of line. If either name is not in the table the
// distance term is dropped and only the base fare is multiplied. Group fares
// are per passenger; every other category ignores passengerCount.
func ComputeFare(stations []ctdf.Station, origin string, destination string, category ctdf.FareCategory, passengerCount int) int {
	fare := float64(BaseFare)

	originIndex := stationIndex(stations, origin)
	destinationIndex := stationIndex(stations, destination)
	if originIndex != -1 && destinationIndex != -1 {
		distance := originIndex - destinationIndex
		if distance < 0 {
			distance = -distance
		}

		fare += float64(distance * FarePerStationIndex)
	}

	total := int(math.Floor(fare*Multiplier(category) + 0.5))

	if category == ctdf.FareCategoryGroup {
		total *= passengerCount
	}

	return total
}

func stationIndex(stations []ctdf.Station, name string) int {
	for i, station := range stations {
		if station.Name == name {
			return i
		}
	}

	return -1
}
