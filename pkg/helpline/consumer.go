package helpline

import (
	"context"
	"encoding/json"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/travigo/patnametro/pkg/ctdf"
)

type FeedbackBatchConsumer struct {
	Feedback FeedbackRepository
}

func NewFeedbackBatchConsumer(feedback FeedbackRepository) *FeedbackBatchConsumer {
	return &FeedbackBatchConsumer{Feedback: feedback}
}

func (c *FeedbackBatchConsumer) Consume(batch rmq.Deliveries) {
	ctx := context.Background()

	for _, delivery := range batch {
		var feedback ctdf.Feedback
		if err := json.Unmarshal([]byte(delivery.Payload()), &feedback); err != nil {
			log.Error().Err(err).Msg("Dropping feedback that cannot be decoded")
			if err := delivery.Ack(); err != nil {
				log.Error().Err(err).Msg("Failed to ack feedback")
			}
			continue
		}

		if err := c.Feedback.Insert(ctx, &feedback); err != nil {
			log.Error().Err(err).Str("id", feedback.Identifier).Msg("Failed to store feedback")
			if err := delivery.Reject(); err != nil {
				log.Error().Err(err).Msg("Failed to reject delivery")
			}
			continue
		}

		if err := delivery.Ack(); err != nil {
			log.Error().Err(err).Msg("Failed to ack feedback")
		}
	}
}
