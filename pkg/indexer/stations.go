package indexer

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/patnametro/pkg/ctdf"
	"github.com/travigo/patnametro/pkg/dataimporter"
	"github.com/travigo/patnametro/pkg/elastic_client"
)

const stationsMapping = `{
	"settings": {
		"number_of_shards": 1,
		"number_of_replicas": 1
	},
	"mappings": {
		"properties": {
			"Identifier": {
				"type": "keyword"
			},
			"Name": {
				"type": "text",
				"fields": {
					"keyword": {
						"type": "keyword",
						"ignore_above": 256
					},
					"search_as_you_type": {
						"type": "search_as_you_type"
					}
				}
			},
			"Area": {
				"type": "text"
			},
			"Lines": {
				"type": "keyword"
			},
			"LineNames": {
				"type": "text"
			},
			"Interchange": {
				"type": "boolean"
			}
		}
	}
}`

func IndexStations(dataset *dataimporter.Dataset) error {
	indexName := fmt.Sprintf("%s-%d", elastic_client.StationsIndexPrefix, time.Now().Unix())

	if err := createIndex(indexName, stationsMapping); err != nil {
		return err
	}

	for _, station := range dataset.Stations {
		if err := elastic_client.IndexJSON(indexName, stationDocument(dataset, station)); err != nil {
			return err
		}
	}

	log.Info().Int("stations", len(dataset.Stations)).Msg("Sent all station index requests to queue")

	return deleteOldIndexes(elastic_client.StationsIndexPrefix+"-*", indexName)
}

func stationDocument(dataset *dataimporter.Dataset, station ctdf.Station) map[string]any {
	lineNames := []string{}
	for _, lineRef := range station.Lines {
		if line := dataset.Line(lineRef); line != nil {
			lineNames = append(lineNames, line.Name)
		}
	}

	return map[string]any{
		"Identifier":  station.Identifier,
		"Name":        station.Name,
		"Area":        station.Area,
		"Lines":       station.Lines,
		"LineNames":   lineNames,
		"Interchange": station.IsInterchange(),
	}
}
