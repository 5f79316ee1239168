package journeyplanner

import (
	"reflect"

	"github.com/travigo/patnametro/pkg/ctdf"
	"github.com/travigo/patnametro/pkg/dataaggregator/query"
	"github.com/travigo/patnametro/pkg/dataaggregator/source"
	"github.com/travigo/patnametro/pkg/dataimporter"
)

type Source struct {
	Dataset *dataimporter.Dataset
}

func (s Source) GetName() string {
	return "Journey Planner"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(ctdf.JourneyPlanResults{}),
	}
}

func (s Source) Lookup(q any) (interface{}, error) {
	switch q.(type) {
	case query.JourneyPlan:
		return s.JourneyPlanQuery(q.(query.JourneyPlan))
	default:
		return nil, source.UnsupportedSourceError
	}
}
