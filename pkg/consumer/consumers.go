package consumer

import (
	"context"
	"math"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/travigo/patnametro/pkg/helpline"
	"github.com/travigo/patnametro/pkg/lostfound"
)

const cleanerInterval = 5 * time.Minute

// QueueConsumers are the consumers that move queued reports and feedback into storage
func QueueConsumers(lostItems lostfound.LostItemRepository, feedback helpline.FeedbackRepository) []*RedisConsumer {
	return []*RedisConsumer{
		{
			QueueName:       lostfound.QueueName,
			NumberConsumers: 2,
			BatchSize:       10,
			Timeout:         2 * time.Second,
			Consumer:        lostfound.NewReportBatchConsumer(lostItems),
		},
		{
			QueueName:       helpline.QueueName,
			NumberConsumers: 2,
			BatchSize:       10,
			Timeout:         2 * time.Second,
			Consumer:        helpline.NewFeedbackBatchConsumer(feedback),
		},
	}
}

// Run starts the consumers and blocks until the context is cancelled, then
// waits for in-flight batches to finish
func Run(ctx context.Context, connection rmq.Connection, consumers []*RedisConsumer) error {
	for _, redisConsumer := range consumers {
		if err := redisConsumer.Start(connection); err != nil {
			<-connection.StopAllConsuming()
			return err
		}
	}

	queueNames := make([]string, 0, len(consumers))
	for _, redisConsumer := range consumers {
		queueNames = append(queueNames, redisConsumer.QueueName)
	}

	go runCleaner(ctx, connection, queueNames)

	<-ctx.Done()

	log.Info().Msg("Stopping consumers")
	<-connection.StopAllConsuming()

	return nil
}

func runCleaner(ctx context.Context, connection rmq.Connection, queueNames []string) {
	cleaner := rmq.NewCleaner(connection)

	ticker := time.NewTicker(cleanerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			returned, err := cleaner.Clean()
			if err != nil {
				log.Error().Err(err).Msg("Failed to clean")
				continue
			}

			if returned != 0 {
				log.Info().Msgf("Cleaned %d records", returned)
			}

			returnRejected(connection, queueNames)
		}
	}
}

// returnRejected moves rejected deliveries back to the ready list so reports
// that failed to store are retried
func returnRejected(connection rmq.Connection, queueNames []string) {
	for _, queueName := range queueNames {
		queue, err := connection.OpenQueue(queueName)
		if err != nil {
			log.Error().Err(err).Str("queue", queueName).Msg("Failed to open queue")
			continue
		}

		returned, err := queue.ReturnRejected(math.MaxInt64)
		if err != nil {
			log.Error().Err(err).Str("queue", queueName).Msg("Failed to return rejected deliveries")
			continue
		}

		if returned != 0 {
			log.Info().Str("queue", queueName).Msgf("Returned %d rejected deliveries", returned)
		}
	}
}
