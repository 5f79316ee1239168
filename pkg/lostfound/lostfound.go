// Package lostfound serves the lost property desk: searching reported and
// recovered items, and taking new reports from riders.
package lostfound

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/travigo/patnametro/pkg/ctdf"
	"github.com/travigo/patnametro/pkg/dataimporter"
	"github.com/travigo/patnametro/pkg/util"
)

const QueueName = "lost-found-queue"

var categories = []string{
	"Electronics",
	"Personal Items",
	"Bags/Luggage",
	"Clothing",
	"Documents",
	"Jewelry/Accessories",
	"Other",
}

func Categories() []string {
	return append([]string{}, categories...)
}

// Filter narrows a search. Empty fields match everything and set fields
// combine with AND.
type Filter struct {
	Query    string
	Category string
	Status   ctdf.LostItemStatus
}

func (f Filter) Matches(item ctdf.LostItem) bool {
	if f.Query != "" &&
		!util.ContainsFold(item.Name, f.Query) &&
		!util.ContainsFold(item.Description, f.Query) &&
		!util.ContainsFold(item.Station, f.Query) {
		return false
	}
	if f.Category != "" && item.Category != f.Category {
		return false
	}
	if f.Status != "" && item.Status != f.Status {
		return false
	}

	return true
}

type LostItemReport struct {
	Name        string
	Category    string
	Station     string
	Date        string
	Description string
	Contact     string
}

type Service struct {
	Dataset *dataimporter.Dataset
	Items   LostItemRepository

	// Reports are published here for the consumer to store. Without a queue
	// they go straight into Items.
	Queue rmq.Queue

	now func() time.Time
}

func NewService(dataset *dataimporter.Dataset, items LostItemRepository, queue rmq.Queue) *Service {
	return &Service{
		Dataset: dataset,
		Items:   items,
		Queue:   queue,
		now:     time.Now,
	}
}

func (s *Service) Search(ctx context.Context, filter Filter) ([]ctdf.LostItem, error) {
	items := append([]ctdf.LostItem{}, s.Dataset.LostItems...)

	if s.Items != nil {
		stored, err := s.Items.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing lost items: %w", err)
		}
		items = append(items, stored...)
	}

	util.InPlaceFilter(&items, filter.Matches)

	return items, nil
}

func (s *Service) Report(ctx context.Context, report LostItemReport) (*ctdf.LostItem, error) {
	now := s.now()

	item := &ctdf.LostItem{
		Identifier:       fmt.Sprintf("LF%05d", 10000+rand.IntN(90000)),
		Name:             report.Name,
		Category:         report.Category,
		Station:          report.Station,
		Date:             report.Date,
		Status:           ctdf.LostItemStatusPending,
		Description:      report.Description,
		Contact:          report.Contact,
		CreationDateTime: now,
	}
	if item.Date == "" {
		item.Date = now.Format(time.DateOnly)
	}

	if s.Queue == nil {
		if err := s.Items.Insert(ctx, item); err != nil {
			return nil, fmt.Errorf("storing lost item report: %w", err)
		}

		return item, nil
	}

	itemJSON, err := json.Marshal(item)
	if err != nil {
		return nil, err
	}

	if err := s.Queue.PublishBytes(itemJSON); err != nil {
		return nil, fmt.Errorf("publishing lost item report: %w", err)
	}

	log.Info().Str("id", item.Identifier).Str("station", item.Station).Msg("Lost item reported")

	return item, nil
}
