package lostfound

import (
	"context"
	"encoding/json"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/travigo/patnametro/pkg/ctdf"
	"github.com/travigo/patnametro/pkg/elastic_client"
)

type ReportBatchConsumer struct {
	Items LostItemRepository
}

func NewReportBatchConsumer(items LostItemRepository) *ReportBatchConsumer {
	return &ReportBatchConsumer{Items: items}
}

func (c *ReportBatchConsumer) Consume(batch rmq.Deliveries) {
	ctx := context.Background()

	for _, delivery := range batch {
		var item ctdf.LostItem
		if err := json.Unmarshal([]byte(delivery.Payload()), &item); err != nil {
			log.Error().Err(err).Msg("Dropping lost item report that cannot be decoded")
			ackDelivery(delivery)
			continue
		}

		if err := c.Items.Insert(ctx, &item); err != nil {
			log.Error().Err(err).Str("id", item.Identifier).Msg("Failed to store lost item report")
			rejectDelivery(delivery)
			continue
		}

		if err := elastic_client.IndexJSON(elastic_client.LostItemsLiveIndex, item); err != nil {
			log.Error().Err(err).Str("id", item.Identifier).Msg("Failed to index lost item report")
		}

		ackDelivery(delivery)
	}
}

func ackDelivery(delivery rmq.Delivery) {
	if err := delivery.Ack(); err != nil {
		log.Error().Err(err).Msg("Failed to ack delivery")
	}
}

// rejectDelivery parks a delivery until the consumer cleaner returns it to the queue
func rejectDelivery(delivery rmq.Delivery) {
	if err := delivery.Reject(); err != nil {
		log.Error().Err(err).Msg("Failed to reject delivery")
	}
}
