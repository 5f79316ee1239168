package consumer

import (
	"fmt"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
)

type RedisConsumer struct {
	QueueName string

	NumberConsumers int
	BatchSize       int

	Timeout time.Duration

	Consumer rmq.BatchConsumer
}

func (c *RedisConsumer) Start(connection rmq.Connection) error {
	log.Info().Str("queue", c.QueueName).Msg("Starting consumers")

	queue, err := connection.OpenQueue(c.QueueName)
	if err != nil {
		return fmt.Errorf("opening queue %s: %w", c.QueueName, err)
	}
	if err := queue.StartConsuming(int64(c.NumberConsumers*c.BatchSize), 1*time.Second); err != nil {
		return fmt.Errorf("consuming queue %s: %w", c.QueueName, err)
	}

	for i := 0; i < c.NumberConsumers; i++ {
		tag := fmt.Sprintf("%s-%d", c.QueueName, i)

		if _, err := queue.AddBatchConsumer(tag, int64(c.BatchSize), c.Timeout, c.Consumer); err != nil {
			return fmt.Errorf("adding consumer %s: %w", tag, err)
		}

		log.Debug().Str("consumer", tag).Msg("Started consumer")
	}

	return nil
}
