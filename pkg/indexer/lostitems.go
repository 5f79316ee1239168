package indexer

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/patnametro/pkg/elastic_client"
	"github.com/travigo/patnametro/pkg/lostfound"
)

const lostItemsMapping = `{
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
				"type": "text"
			},
			"Description": {
				"type": "text"
			},
			"Category": {
				"type": "keyword"
			},
			"Station": {
				"type": "text",
				"fields": {
					"keyword": {
						"type": "keyword",
						"ignore_above": 256
					}
				}
			},
			"Status": {
				"type": "keyword"
			},
			"Date": {
				"type": "date",
				"format": "yyyy-MM-dd"
			}
		}
	}
}`

// IndexLostItems rebuilds the lost item index from the seed items and every stored report
func IndexLostItems(ctx context.Context, service *lostfound.Service) error {
	indexName := fmt.Sprintf("%s-%d", elastic_client.LostItemsIndexPrefix, time.Now().Unix())

	items, err := service.Search(ctx, lostfound.Filter{})
	if err != nil {
		return err
	}

	if err := createIndex(indexName, lostItemsMapping); err != nil {
		return err
	}

	for _, item := range items {
		if err := elastic_client.IndexJSON(indexName, item); err != nil {
			return err
		}
	}

	log.Info().Int("items", len(items)).Msg("Sent all lost item index requests to queue")

	// Timestamped indexes only, the live index shares the prefix
	return deleteOldIndexes(elastic_client.LostItemsIndexPrefix+"-1*", indexName)
}
