package dataimporter

import (
	"sort"

	"github.com/travigo/patnametro/pkg/ctdf"
	"github.com/travigo/patnametro/pkg/util"
)

// Dataset is the validated, immutable reference data the portal serves from.
// It is built once by Load/Parse and shared read-only afterwards.
type Dataset struct {
	Lines    []ctdf.Line    `yaml:"lines"`
	Stations []ctdf.Station `yaml:"stations"`
	Trains   []ctdf.Train   `yaml:"trains"`

	QuickPurchases []ctdf.QuickPurchase `yaml:"quickpurchases"`
	TicketHistory  []ctdf.Ticket        `yaml:"tickethistory"`
	LostItems      []ctdf.LostItem      `yaml:"lostitems"`
	ServiceAlerts  []ctdf.ServiceAlert  `yaml:"servicealerts"`

	Riders          []ctdf.Rider           `yaml:"riders"`
	StationFootfall []ctdf.StationFootfall `yaml:"stationfootfall"`
	DailyRidership  []ctdf.RidershipRecord `yaml:"dailyridership"`
	HourlyRidership []ctdf.RidershipRecord `yaml:"hourlyridership"`

	HelplineContacts []ctdf.HelplineContact `yaml:"helplinecontacts"`
	FAQs             []ctdf.FAQ             `yaml:"faqs"`
	HelpDesks        []ctdf.StationHelpDesk `yaml:"helpdesks"`

	linesByIdentifier    map[string]*ctdf.Line
	stationsByIdentifier map[string]*ctdf.Station
	stationsByName       map[string]*ctdf.Station
}

func (d *Dataset) buildIndexes() {
	d.linesByIdentifier = map[string]*ctdf.Line{}
	d.stationsByIdentifier = map[string]*ctdf.Station{}
	d.stationsByName = map[string]*ctdf.Station{}

	for i := range d.Lines {
		d.linesByIdentifier[d.Lines[i].Identifier] = &d.Lines[i]
	}
	for i := range d.Stations {
		d.stationsByIdentifier[d.Stations[i].Identifier] = &d.Stations[i]
		d.stationsByName[d.Stations[i].Name] = &d.Stations[i]
	}
}

func (d *Dataset) Line(identifier string) *ctdf.Line {
	return d.linesByIdentifier[identifier]
}

func (d *Dataset) Station(identifier string) *ctdf.Station {
	return d.stationsByIdentifier[identifier]
}

// StationByName matches the display name exactly (case-sensitive)
func (d *Dataset) StationByName(name string) *ctdf.Station {
	return d.stationsByName[name]
}

// StationsOnLine returns the line's stations ordered by their position along it
func (d *Dataset) StationsOnLine(lineRef string) []ctdf.Station {
	stations := []ctdf.Station{}

	for _, station := range d.Stations {
		if station.OnLine(lineRef) {
			stations = append(stations, station)
		}
	}

	sort.SliceStable(stations, func(i, j int) bool {
		return stations[i].Order < stations[j].Order
	})

	return stations
}

// SearchStations is the autocomplete lookup: case-insensitive substring on the
// station name, in table order, capped at limit results
func (d *Dataset) SearchStations(term string, limit int) []ctdf.Station {
	matches := []ctdf.Station{}

	for _, station := range d.Stations {
		if len(matches) >= limit {
			break
		}

		if util.ContainsFold(station.Name, term) {
			matches = append(matches, station)
		}
	}

	return matches
}
