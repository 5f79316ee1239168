package dataimporter

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/travigo/patnametro/pkg/ctdf"
	"github.com/travigo/patnametro/pkg/transforms"
	"gopkg.in/yaml.v3"
)

//go:embed data/patna.yaml
var embeddedDataset []byte

var ErrInvalidDataset = errors.New("invalid dataset")

// Load parses the dataset bundled with the binary
func Load() (*Dataset, error) {
	return Parse(bytes.NewReader(embeddedDataset))
}

func Parse(reader io.Reader) (*Dataset, error) {
	var dataset Dataset

	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	if err := decoder.Decode(&dataset); err != nil {
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}

	transforms.Transform(dataset.Lines)
	transforms.Transform(dataset.Stations)

	if err := dataset.validate(); err != nil {
		return nil, err
	}

	dataset.buildIndexes()

	log.Debug().
		Int("lines", len(dataset.Lines)).
		Int("stations", len(dataset.Stations)).
		Int("trains", len(dataset.Trains)).
		Msg("Loaded reference dataset")

	return &dataset, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidDataset, fmt.Sprintf(format, args...))
}

func (d *Dataset) validate() error {
	lines := map[string]bool{}
	for _, line := range d.Lines {
		if line.Identifier == "" || line.Name == "" {
			return invalid("line %q is missing an identifier or name", line.Name)
		}
		if lines[line.Identifier] {
			return invalid("duplicate line %s", line.Identifier)
		}
		lines[line.Identifier] = true
	}

	stations := map[string]bool{}
	stationNames := map[string]bool{}
	for _, station := range d.Stations {
		if station.Identifier == "" || station.Name == "" {
			return invalid("station %q is missing an identifier or name", station.Name)
		}
		if stations[station.Identifier] {
			return invalid("duplicate station %s", station.Identifier)
		}
		if stationNames[station.Name] {
			return invalid("duplicate station name %s", station.Name)
		}
		if len(station.Lines) == 0 {
			return invalid("station %s is not on any line", station.Identifier)
		}
		for _, lineRef := range station.Lines {
			if !lines[lineRef] {
				return invalid("station %s references unknown line %s", station.Identifier, lineRef)
			}
		}
		if station.Order < 1 {
			return invalid("station %s has order %d", station.Identifier, station.Order)
		}

		stations[station.Identifier] = true
		stationNames[station.Name] = true
	}

	trains := map[string]bool{}
	for _, train := range d.Trains {
		if trains[train.Identifier] {
			return invalid("duplicate train %s", train.Identifier)
		}
		if !lines[train.LineRef] {
			return invalid("train %s references unknown line %s", train.Identifier, train.LineRef)
		}
		if !stations[train.NextStationRef] {
			return invalid("train %s references unknown next station %s", train.Identifier, train.NextStationRef)
		}
		if !stations[train.PreviousStationRef] {
			return invalid("train %s references unknown previous station %s", train.Identifier, train.PreviousStationRef)
		}
		if !train.Status.IsValid() {
			return invalid("train %s has unknown status %s", train.Identifier, train.Status)
		}
		if !train.CrowdLevel.IsValid() {
			return invalid("train %s has unknown crowd level %s", train.Identifier, train.CrowdLevel)
		}

		trains[train.Identifier] = true
	}

	for _, alert := range d.ServiceAlerts {
		if !alert.AlertType.IsValid() {
			return invalid("service alert %s has unknown type %s", alert.Identifier, alert.AlertType)
		}
	}

	for _, ticket := range d.TicketHistory {
		if !ticket.Category.IsValid() {
			return invalid("ticket %s has unknown category %s", ticket.Identifier, ticket.Category)
		}
	}

	for _, item := range d.LostItems {
		switch item.Status {
		case ctdf.LostItemStatusPending, ctdf.LostItemStatusFound, ctdf.LostItemStatusClaimed:
		default:
			return invalid("lost item %s has unknown status %s", item.Identifier, item.Status)
		}
	}

	return nil
}
