package lostfound

import (
	"context"
	"sync"

	"github.com/travigo/patnametro/pkg/ctdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LostItemRepository interface {
	Insert(ctx context.Context, item *ctdf.LostItem) error
	List(ctx context.Context) ([]ctdf.LostItem, error)
}

type MongoLostItemRepository struct {
	Collection *mongo.Collection
}

func (r *MongoLostItemRepository) Insert(ctx context.Context, item *ctdf.LostItem) error {
	_, err := r.Collection.InsertOne(ctx, item)

	return err
}

func (r *MongoLostItemRepository) List(ctx context.Context) ([]ctdf.LostItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "creationdatetime", Value: 1}})

	cursor, err := r.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	items := []ctdf.LostItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}

	return items, nil
}

type MemoryLostItemRepository struct {
	mutex sync.RWMutex
	items []ctdf.LostItem
}

func (r *MemoryLostItemRepository) Insert(ctx context.Context, item *ctdf.LostItem) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.items = append(r.items, *item)

	return nil
}

func (r *MemoryLostItemRepository) List(ctx context.Context) ([]ctdf.LostItem, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return append([]ctdf.LostItem{}, r.items...), nil
}
