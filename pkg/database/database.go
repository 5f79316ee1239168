package database

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/travigo/patnametro/pkg/util"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoInstance struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var MongoGlobalInstance *MongoInstance

const defaultMongoConnectionString = "mongodb://localhost:27017/"
const defaultMongoDatabase = "patnametro"

func Connect() error {
	connectionString := defaultMongoConnectionString
	dbName := defaultMongoDatabase

	env := util.GetEnvironmentVariables()

	if env["PATNAMETRO_MONGODB_CONNECTION"] != "" {
		connectionString = env["PATNAMETRO_MONGODB_CONNECTION"]
	}

	if env["PATNAMETRO_MONGODB_DATABASE"] != "" {
		dbName = env["PATNAMETRO_MONGODB_DATABASE"]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connectionString))
	if err != nil {
		return fmt.Errorf("connecting to mongodb: %w", err)
	}

	retryBackoff := backoff.NewExponentialBackOff()
	retryBackoff.MaxElapsedTime = 30 * time.Second

	err = backoff.RetryNotify(func() error {
		return client.Ping(ctx, nil)
	}, backoff.WithContext(retryBackoff, ctx), func(err error, wait time.Duration) {
		log.Warn().Err(err).Dur("wait", wait).Msg("MongoDB not reachable, retrying")
	})
	if err != nil {
		return fmt.Errorf("pinging mongodb: %w", err)
	}

	MongoGlobalInstance = &MongoInstance{
		Client:   client,
		Database: client.Database(dbName),
	}

	createIndexes()

	log.Info().Str("database", dbName).Msg("MongoDB connected")

	return nil
}

func Disconnect(ctx context.Context) error {
	if MongoGlobalInstance == nil {
		return nil
	}

	return MongoGlobalInstance.Client.Disconnect(ctx)
}

func GetCollection(collectionName string) *mongo.Collection {
	return MongoGlobalInstance.Database.Collection(collectionName)
}
