package admin

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/travigo/patnametro/pkg/ctdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AlertRepository interface {
	Insert(ctx context.Context, alert *ctdf.ServiceAlert) error
	List(ctx context.Context) ([]ctdf.ServiceAlert, error)
}

type MongoAlertRepository struct {
	Collection *mongo.Collection
}

// Seed fills an empty collection with the given alerts
func (r *MongoAlertRepository) Seed(ctx context.Context, alerts []ctdf.ServiceAlert) error {
	count, err := r.Collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 || len(alerts) == 0 {
		return nil
	}

	documents := make([]any, 0, len(alerts))
	for _, alert := range alerts {
		documents = append(documents, alert)
	}

	if _, err := r.Collection.InsertMany(ctx, documents); err != nil {
		return err
	}

	log.Info().Int("alerts", len(alerts)).Msg("Seeded service alerts")

	return nil
}

func (r *MongoAlertRepository) Insert(ctx context.Context, alert *ctdf.ServiceAlert) error {
	_, err := r.Collection.InsertOne(ctx, alert)

	return err
}

func (r *MongoAlertRepository) List(ctx context.Context) ([]ctdf.ServiceAlert, error) {
	opts := options.Find().SetSort(bson.D{{Key: "creationdatetime", Value: 1}, {Key: "identifier", Value: 1}})

	cursor, err := r.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	alerts := []ctdf.ServiceAlert{}
	if err := cursor.All(ctx, &alerts); err != nil {
		return nil, err
	}

	return alerts, nil
}

type MemoryAlertRepository struct {
	mutex  sync.RWMutex
	alerts []ctdf.ServiceAlert
}

func NewMemoryAlertRepository(seed []ctdf.ServiceAlert) *MemoryAlertRepository {
	return &MemoryAlertRepository{
		alerts: append([]ctdf.ServiceAlert{}, seed...),
	}
}

func (r *MemoryAlertRepository) Insert(ctx context.Context, alert *ctdf.ServiceAlert) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.alerts = append(r.alerts, *alert)

	return nil
}

func (r *MemoryAlertRepository) List(ctx context.Context) ([]ctdf.ServiceAlert, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return append([]ctdf.ServiceAlert{}, r.alerts...), nil
}
