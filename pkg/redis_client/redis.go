package redis_client

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/patnametro/pkg/util"
)

var Client *redis.Client
var QueueConnection rmq.Connection

const defaultConnectionAddress = "localhost:6379"
const defaultConnectionPassword = ""
const defaultDatabase = 0

const queueConnectionTag = "patnametro"

func Connect() error {
	address := defaultConnectionAddress
	password := defaultConnectionPassword
	database := defaultDatabase

	env := util.GetEnvironmentVariables()

	if env["PATNAMETRO_REDIS_ADDRESS"] != "" {
		address = env["PATNAMETRO_REDIS_ADDRESS"]
	}

	if env["PATNAMETRO_REDIS_PASSWORD"] != "" {
		password = env["PATNAMETRO_REDIS_PASSWORD"]
	}

	if env["PATNAMETRO_REDIS_DATABASE"] != "" {
		if n, err := strconv.Atoi(env["PATNAMETRO_REDIS_DATABASE"]); err == nil {
			database = n
		} else {
			return err
		}
	}

	Client = redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       database,
	})

	retryBackoff := backoff.NewExponentialBackOff()
	retryBackoff.MaxElapsedTime = util.GetDurationVariable(env, "PATNAMETRO_REDIS_CONNECT_TIMEOUT", 30*time.Second)

	err := backoff.RetryNotify(func() error {
		return Client.Ping(context.Background()).Err()
	}, retryBackoff, func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("address", address).Dur("wait", wait).Msg("Redis not reachable, retrying")
	})
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}

	QueueConnection, err = rmq.OpenConnectionWithRedisClient(queueConnectionTag, Client, nil)
	if err != nil {
		return err
	}

	log.Info().Str("address", address).Int("database", database).Msg("Redis connected")

	return nil
}
