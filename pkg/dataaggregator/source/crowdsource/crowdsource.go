package crowdsource

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/patnametro/pkg/crowd"
	"github.com/travigo/patnametro/pkg/ctdf"
	"github.com/travigo/patnametro/pkg/dataaggregator/query"
	"github.com/travigo/patnametro/pkg/dataaggregator/source"
	"github.com/travigo/patnametro/pkg/dataaggregator/source/cachedresults"
	"github.com/travigo/patnametro/pkg/dataimporter"
)

// Source generates crowd forecasts. When CachedResults is set a forecast is
// kept for the rest of the hour so repeated requests see the same figures.
type Source struct {
	Dataset       *dataimporter.Dataset
	Generator     *crowd.Generator
	CachedResults *cachedresults.Cache
}

func (s Source) GetName() string {
	return "Crowd Forecast"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(ctdf.CrowdForecast{}),
	}
}

func (s Source) Lookup(q any) (interface{}, error) {
	switch q.(type) {
	case query.CrowdForecast:
		return s.CrowdForecastQuery(q.(query.CrowdForecast))
	default:
		return nil, source.UnsupportedSourceError
	}
}

func (s Source) CrowdForecastQuery(q query.CrowdForecast) (*ctdf.CrowdForecast, error) {
	if s.Dataset.Line(q.LineRef) == nil {
		return nil, errors.New("could not find a matching Line")
	}

	at := q.At
	if at.IsZero() {
		at = time.Now()
	}

	cacheItemPath := fmt.Sprintf("cachedresults/crowdforecast/%s/%s", q.LineRef, at.Format("2006-01-02T15"))

	if s.CachedResults != nil {
		var forecast *ctdf.CrowdForecast
		if s.CachedResults.Get(context.Background(), cacheItemPath, &forecast) && forecast != nil {
			return forecast, nil
		}
	}

	forecast := s.Generator.Forecast(q.LineRef, s.Dataset.StationsOnLine(q.LineRef), at)

	if s.CachedResults != nil {
		if err := s.CachedResults.Set(context.Background(), cacheItemPath, forecast); err != nil {
			log.Error().Err(err).Str("line", q.LineRef).Msg("Failed to cache crowd forecast")
		}
	}

	return forecast, nil
}
