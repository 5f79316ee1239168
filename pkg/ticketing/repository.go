package ticketing

import (
	"context"
	"sync"

	"github.com/travigo/patnametro/pkg/ctdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type TicketRepository interface {
	Insert(ctx context.Context, ticket *ctdf.Ticket) error
	ListByUser(ctx context.Context, userRef string) ([]ctdf.Ticket, error)
}

type MongoTicketRepository struct {
	Collection *mongo.Collection
}

func (r *MongoTicketRepository) Insert(ctx context.Context, ticket *ctdf.Ticket) error {
	_, err := r.Collection.InsertOne(ctx, ticket)

	return err
}

func (r *MongoTicketRepository) ListByUser(ctx context.Context, userRef string) ([]ctdf.Ticket, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{"userref": userRef})
	if err != nil {
		return nil, err
	}

	tickets := []ctdf.Ticket{}
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, err
	}

	return tickets, nil
}

type MemoryTicketRepository struct {
	mutex   sync.RWMutex
	tickets []ctdf.Ticket
}

func (r *MemoryTicketRepository) Insert(ctx context.Context, ticket *ctdf.Ticket) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.tickets = append(r.tickets, *ticket)

	return nil
}

func (r *MemoryTicketRepository) ListByUser(ctx context.Context, userRef string) ([]ctdf.Ticket, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	tickets := []ctdf.Ticket{}
	for _, ticket := range r.tickets {
		if ticket.UserRef == userRef {
			tickets = append(tickets, ticket)
		}
	}

	return tickets, nil
}
