package referencedata

import (
	"errors"
	"reflect"

	"github.com/travigo/patnametro/pkg/ctdf"
	"github.com/travigo/patnametro/pkg/dataaggregator/query"
	"github.com/travigo/patnametro/pkg/dataaggregator/source"
	"github.com/travigo/patnametro/pkg/dataimporter"
	"golang.org/x/exp/slices"
)

// Source answers lookups from the in-memory reference dataset
type Source struct {
	Dataset *dataimporter.Dataset
}

func (s Source) GetName() string {
	return "Reference Data"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(ctdf.Station{}),
		reflect.TypeOf([]ctdf.Station{}),
		reflect.TypeOf(ctdf.Line{}),
		reflect.TypeOf([]ctdf.Line{}),
	}
}

func (s Source) Lookup(q any) (interface{}, error) {
	switch q := q.(type) {
	case query.Station:
		return s.StationQuery(q)
	case query.Stations:
		return slices.Clone(s.Dataset.Stations), nil
	case query.StationSearch:
		return s.Dataset.SearchStations(q.Term, q.Limit), nil
	case query.StationsOnLine:
		return s.Dataset.StationsOnLine(q.LineRef), nil
	case query.Line:
		return s.LineQuery(q)
	case query.Lines:
		return slices.Clone(s.Dataset.Lines), nil
	default:
		return nil, source.UnsupportedSourceError
	}
}

func (s Source) StationQuery(q query.Station) (*ctdf.Station, error) {
	var station *ctdf.Station

	if q.Identifier != "" {
		station = s.Dataset.Station(q.Identifier)
	} else if q.Name != "" {
		station = s.Dataset.StationByName(q.Name)
	}

	if station == nil {
		return nil, errors.New("could not find a matching Station")
	}

	stationCopy := *station
	stationCopy.Lines = slices.Clone(station.Lines)

	return &stationCopy, nil
}

func (s Source) LineQuery(q query.Line) (*ctdf.Line, error) {
	line := s.Dataset.Line(q.Identifier)

	if line == nil {
		return nil, errors.New("could not find a matching Line")
	}

	lineCopy := *line

	return &lineCopy, nil
}
