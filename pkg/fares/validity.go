package fares

import (
	"time"

	iso8601 "github.com/senseyeio/duration"
	"github.com/travigo/patnametro/pkg/ctdf"
)

var categoryValidity = map[ctdf.FareCategory]string{
	ctdf.FareCategorySingle:  "PT2H",
	ctdf.FareCategoryReturn:  "P1D",
	ctdf.FareCategoryGroup:   "PT2H",
	ctdf.FareCategoryTourist: "P3D",
}

// TicketValidity is the ISO-8601 period a ticket of the category stays valid for
func TicketValidity(category ctdf.FareCategory) string {
	if validity, ok := categoryValidity[category]; ok {
		return validity
	}

	return categoryValidity[ctdf.FareCategorySingle]
}

// ValidUntil shifts from by the category's validity period
func ValidUntil(category ctdf.FareCategory, from time.Time) (time.Time, error) {
	period, err := iso8601.ParseISO8601(TicketValidity(category))
	if err != nil {
		return time.Time{}, err
	}

	return period.Shift(from), nil
}
