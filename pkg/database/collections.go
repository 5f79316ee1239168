package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	TicketsCollection       = "tickets"
	LostItemsCollection     = "lost_items"
	FeedbackCollection      = "feedback"
	ServiceAlertsCollection = "service_alerts"
)

var collectionIndexes = map[string][]mongo.IndexModel{
	TicketsCollection: {
		{
			Keys: bson.D{{Key: "identifier", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "userref", Value: 1}},
		},
	},
	LostItemsCollection: {
		{
			Keys: bson.D{{Key: "identifier", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "creationdatetime", Value: 1}},
		},
	},
	FeedbackCollection: {
		{
			Keys: bson.D{{Key: "category", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "creationdatetime", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(365 * 24 * 3600), // Expire after a year
		},
	},
	ServiceAlertsCollection: {
		{
			Keys: bson.D{{Key: "identifier", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "creationdatetime", Value: 1}},
		},
	},
}

func createIndexes() {
	for collectionName, indexes := range collectionIndexes {
		_, err := GetCollection(collectionName).Indexes().CreateMany(context.Background(), indexes, options.CreateIndexes())
		if err != nil {
			log.Error().Err(err).Str("collection", collectionName).Msg("Creating Index")
		}
	}
}
