package dataaggregator

import (
	"errors"
	"reflect"

	"github.com/rs/zerolog/log"
	"github.com/travigo/patnametro/pkg/dataaggregator/source"
)

var ErrNoSource = errors.New("failed to find a matching data source for type")

type Aggregator struct {
	Sources []DataSource
}

var GlobalAggregator Aggregator

func (a *Aggregator) RegisterSource(source DataSource) {
	a.Sources = append(a.Sources, source)

	log.Debug().Str("name", source.GetName()).Msg("Registering new Data Source")
}

func Lookup[T any](query any) (T, error) {
	return LookupWith[T](&GlobalAggregator, query)
}

// LookupWith asks each source that supports T in registration order. A source
// that does not understand the query passes it on to the next one.
func LookupWith[T any](aggregator *Aggregator, query any) (T, error) {
	var empty T

	lookupType := reflect.TypeOf(*new(T))
	if lookupType.Kind() == reflect.Pointer {
		lookupType = lookupType.Elem()
	}

	for _, dataSource := range aggregator.Sources {
		matches := false

		for _, supportedType := range dataSource.Supports() {
			if lookupType == supportedType {
				matches = true
				break
			}
		}

		if !matches {
			continue
		}

		returnValue, returnError := dataSource.Lookup(query)

		if errors.Is(returnError, source.UnsupportedSourceError) {
			continue
		}

		if returnValue == nil {
			return empty, returnError
		}

		return returnValue.(T), returnError
	}

	return empty, ErrNoSource
}
