package helpline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/travigo/patnametro/pkg/ctdf"
	"github.com/travigo/patnametro/pkg/dataimporter"
	"golang.org/x/exp/slices"
)

const QueueName = "feedback-queue"

var FeedbackCategories = []string{"complaint", "suggestion", "appreciation", "query"}

const defaultFeedbackCategory = "query"

type Content struct {
	Contacts  []ctdf.HelplineContact
	FAQs      []ctdf.FAQ
	HelpDesks []ctdf.StationHelpDesk
}

type FeedbackForm struct {
	Name     string
	Email    string
	Category string
	Message  string
}

type Service struct {
	Dataset  *dataimporter.Dataset
	Feedback FeedbackRepository

	// Without a queue feedback is written straight to the repository
	Queue rmq.Queue

	now func() time.Time
}

func NewService(dataset *dataimporter.Dataset, feedback FeedbackRepository, queue rmq.Queue) *Service {
	return &Service{
		Dataset:  dataset,
		Feedback: feedback,
		Queue:    queue,
		now:      time.Now,
	}
}

func (s *Service) Content() Content {
	return Content{
		Contacts:  slices.Clone(s.Dataset.HelplineContacts),
		FAQs:      slices.Clone(s.Dataset.FAQs),
		HelpDesks: slices.Clone(s.Dataset.HelpDesks),
	}
}

// SubmitFeedback accepts any form. Unrecognised categories are filed as queries.
func (s *Service) SubmitFeedback(ctx context.Context, form FeedbackForm) (*ctdf.Feedback, error) {
	category := strings.ToLower(strings.TrimSpace(form.Category))
	if !slices.Contains(FeedbackCategories, category) {
		category = defaultFeedbackCategory
	}

	feedback := &ctdf.Feedback{
		Identifier:       uuid.NewString(),
		Name:             form.Name,
		Email:            form.Email,
		Category:         category,
		Message:          form.Message,
		CreationDateTime: s.now(),
	}

	if s.Queue == nil {
		if err := s.Feedback.Insert(ctx, feedback); err != nil {
			return nil, fmt.Errorf("storing feedback: %w", err)
		}

		return feedback, nil
	}

	feedbackJSON, err := json.Marshal(feedback)
	if err != nil {
		return nil, err
	}

	if err := s.Queue.PublishBytes(feedbackJSON); err != nil {
		return nil, fmt.Errorf("publishing feedback: %w", err)
	}

	log.Info().Str("id", feedback.Identifier).Str("category", category).Msg("Feedback submitted")

	return feedback, nil
}
