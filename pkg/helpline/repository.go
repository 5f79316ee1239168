package helpline

import (
	"context"
	"sync"

	"github.com/travigo/patnametro/pkg/ctdf"
	"go.mongodb.org/mongo-driver/mongo"
)

type FeedbackRepository interface {
	Insert(ctx context.Context, feedback *ctdf.Feedback) error
}

type MongoFeedbackRepository struct {
	Collection *mongo.Collection
}

func (r *MongoFeedbackRepository) Insert(ctx context.Context, feedback *ctdf.Feedback) error {
	_, err := r.Collection.InsertOne(ctx, feedback)

	return err
}

type MemoryFeedbackRepository struct {
	mutex    sync.Mutex
	feedback []ctdf.Feedback
}

func (r *MemoryFeedbackRepository) Insert(ctx context.Context, feedback *ctdf.Feedback) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.feedback = append(r.feedback, *feedback)

	return nil
}

func (r *MemoryFeedbackRepository) All() []ctdf.Feedback {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return append([]ctdf.Feedback{}, r.feedback...)
}
