// Package ticketing sells tickets: it quotes the fare, takes payment and
// records the issued ticket.
package ticketing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/travigo/patnametro/pkg/ctdf"
	"github.com/travigo/patnametro/pkg/dataimporter"
	"github.com/travigo/patnametro/pkg/fares"
	"github.com/travigo/patnametro/pkg/payments"
	"golang.org/x/exp/slices"
)

const MaximumPassengers = 10

var (
	ErrInvalidPassengers = errors.New("passengers must be between 1 and 10")
	ErrMissingStation    = errors.New("origin and destination stations are required")
	ErrUnknownStation    = errors.New("unknown station")
)

type TicketRequest struct {
	From string
	To   string

	Category   ctdf.FareCategory
	Passengers int

	PaymentMethod ctdf.PaymentMethod
}

type Service struct {
	Dataset  *dataimporter.Dataset
	Payments payments.PaymentService
	Tickets  TicketRepository

	now func() time.Time
}

func NewService(dataset *dataimporter.Dataset, paymentService payments.PaymentService, tickets TicketRepository) *Service {
	return &Service{
		Dataset:  dataset,
		Payments: paymentService,
		Tickets:  tickets,
		now:      time.Now,
	}
}

// Quote prices a journey. Nothing is quoted until both stations are chosen.
func (s *Service) Quote(from string, to string, category ctdf.FareCategory, passengers int) int {
	if from == "" || to == "" {
		return 0
	}

	return fares.ComputeFare(s.Dataset.Stations, from, to, category, passengers)
}

func (s *Service) Checkout(ctx context.Context, user *ctdf.User, request TicketRequest) (*ctdf.Ticket, error) {
	if request.From == "" || request.To == "" {
		return nil, ErrMissingStation
	}
	for _, name := range []string{request.From, request.To} {
		if s.Dataset.StationByName(name) == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownStation, name)
		}
	}
	if !request.Category.IsValid() {
		return nil, fares.ErrUnknownCategory
	}
	if request.Passengers < 1 || request.Passengers > MaximumPassengers {
		return nil, ErrInvalidPassengers
	}
	if !payments.IsValidMethod(request.PaymentMethod) {
		return nil, payments.ErrUnknownMethod
	}

	fare := s.Quote(request.From, request.To, request.Category, request.Passengers)

	receipt, err := s.Payments.Pay(ctx, payments.PaymentRequest{
		UserRef: user.Identifier,
		Method:  request.PaymentMethod,
		Amount:  fare,
	})
	if err != nil {
		return nil, err
	}

	now := s.now()
	validUntil, err := fares.ValidUntil(request.Category, now)
	if err != nil {
		return nil, err
	}

	ticket := &ctdf.Ticket{
		Identifier:       "TKT" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10]),
		UserRef:          user.Identifier,
		From:             request.From,
		To:               request.To,
		Category:         request.Category,
		Passengers:       request.Passengers,
		Fare:             fare,
		PaymentMethod:    request.PaymentMethod,
		Status:           ctdf.TicketStatusActive,
		Date:             now.Format("2006-01-02"),
		Time:             now.Format("15:04"),
		ValidFrom:        now,
		ValidUntil:       validUntil,
		CreationDateTime: now,
	}

	if err := s.Tickets.Insert(ctx, ticket); err != nil {
		log.Error().Err(err).Str("payment", receipt.Reference).Msg("Failed to store ticket after payment")

		if refundErr := s.Payments.Refund(ctx, receipt, user.Identifier); refundErr != nil {
			log.Error().Err(refundErr).Str("payment", receipt.Reference).Msg("Failed to refund payment")
		}

		return nil, fmt.Errorf("storing ticket: %w", err)
	}

	log.Info().
		Str("ticket", ticket.Identifier).
		Str("user", user.Identifier).
		Int("fare", fare).
		Msg("Issued ticket")

	return ticket, nil
}

// History lists the sample tickets every rider sees followed by their own, newest first
func (s *Service) History(ctx context.Context, userRef string) ([]ctdf.Ticket, error) {
	stored, err := s.Tickets.ListByUser(ctx, userRef)
	if err != nil {
		return nil, err
	}

	history := append(slices.Clone(s.Dataset.TicketHistory), stored...)

	slices.SortStableFunc(history, func(a, b ctdf.Ticket) int {
		return strings.Compare(b.Date+" "+b.Time, a.Date+" "+a.Time)
	})

	return history, nil
}

func (s *Service) QuickPurchaseOptions() []ctdf.QuickPurchase {
	return slices.Clone(s.Dataset.QuickPurchases)
}
