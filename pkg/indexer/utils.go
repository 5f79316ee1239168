package indexer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/rs/zerolog/log"
	"github.com/travigo/patnametro/pkg/elastic_client"
)

func createIndex(indexName string, mapping string) error {
	indexReq := esapi.IndicesCreateRequest{
		Index: indexName,
		Body:  strings.NewReader(mapping),
	}

	resp, err := indexReq.Do(context.Background(), elastic_client.Client)
	if err != nil {
		return fmt.Errorf("creating index %s: %w", indexName, err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		responseBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("creating index %s: %s", indexName, responseBytes)
	}

	log.Info().Str("index", indexName).Msg("Created index")

	return nil
}

func deleteOldIndexes(indexWildcard string, indexName string) error {
	catReq := esapi.CatIndicesRequest{
		Index:  []string{indexWildcard},
		Format: "json",
	}

	resp, err := catReq.Do(context.Background(), elastic_client.Client)
	if err != nil {
		return fmt.Errorf("listing indexes: %w", err)
	}
	defer resp.Body.Close()

	var indexes []catIndex

	if err := json.NewDecoder(resp.Body).Decode(&indexes); err != nil {
		return fmt.Errorf("decoding index list: %w", err)
	}

	for _, index := range staleIndexes(indexes, indexName) {
		deleteReq := esapi.IndicesDeleteRequest{
			Index: []string{index},
		}

		deleteResp, err := deleteReq.Do(context.Background(), elastic_client.Client)
		if err != nil {
			log.Error().Err(err).Str("index", index).Msg("Failed to delete old index")
			continue
		}
		deleteResp.Body.Close()

		log.Info().Str("index", index).Msg("Delete old index")
	}

	return nil
}

type catIndex struct {
	Index string `json:"index"`
}

func staleIndexes(indexes []catIndex, current string) []string {
	stale := []string{}
	for _, index := range indexes {
		if index.Index != current {
			stale = append(stale, index.Index)
		}
	}

	return stale
}
