package elastic_client

import (
	"bytes"
	"encoding/json"
)

const (
	StationsIndexPrefix  = "patnametro-stations"
	LostItemsIndexPrefix = "patnametro-lost-items"

	// Reports from the queue are indexed here as they arrive, between full reindexes
	LostItemsLiveIndex = "patnametro-lost-items-live"
)

// IndexJSON queues a document for the bulk indexer, encoded as JSON
func IndexJSON(indexName string, document any) error {
	if Client == nil {
		return nil
	}

	documentJSON, err := json.Marshal(document)
	if err != nil {
		return err
	}

	IndexRequest(indexName, bytes.NewReader(documentJSON))

	return nil
}
