// Package admin backs the operator dashboard. Everything here sits behind the
// admin claim on the API.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/patnametro/pkg/accounts"
	"github.com/travigo/patnametro/pkg/ctdf"
	"github.com/travigo/patnametro/pkg/dataimporter"
	"github.com/travigo/patnametro/pkg/lostfound"
	"github.com/travigo/patnametro/pkg/realtime"
	"golang.org/x/exp/slices"
)

var (
	ErrInvalidAlertType = errors.New("alert type must be delay, maintenance or crowd")
	ErrMissingMessage   = errors.New("alert message is required")
)

type LostItemSearcher interface {
	Search(ctx context.Context, filter lostfound.Filter) ([]ctdf.LostItem, error)
}

type Service struct {
	Dataset   *dataimporter.Dataset
	Accounts  accounts.AccountService
	Feed      *realtime.Feed
	Alerts    AlertRepository
	LostItems LostItemSearcher

	now func() time.Time
}

func NewService(dataset *dataimporter.Dataset, accountService accounts.AccountService, feed *realtime.Feed, alerts AlertRepository, lostItems LostItemSearcher) *Service {
	return &Service{
		Dataset:   dataset,
		Accounts:  accountService,
		Feed:      feed,
		Alerts:    alerts,
		LostItems: lostItems,
		now:       time.Now,
	}
}

// PercentageBand buckets a utilisation percentage for the dashboard bars
func PercentageBand(percentage int) string {
	switch {
	case percentage < 40:
		return "low"
	case percentage < 70:
		return "medium"
	default:
		return "high"
	}
}

type FootfallEntry struct {
	ctdf.StationFootfall

	// Relative to the busiest station
	Percentage int
	Band       string
}

type Dashboard struct {
	DailyRidership  []ctdf.RidershipRecord
	HourlyRidership []ctdf.RidershipRecord
	StationFootfall []FootfallEntry

	Alerts      []ctdf.ServiceAlert
	UserCount   int
	TrainCounts map[ctdf.TrainStatus]int

	GeneratedAt time.Time
}

func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	dashboard := &Dashboard{
		DailyRidership:  slices.Clone(s.Dataset.DailyRidership),
		HourlyRidership: slices.Clone(s.Dataset.HourlyRidership),
		StationFootfall: s.footfall(),
		GeneratedAt:     s.now(),
	}

	p := pool.New().WithContext(ctx)

	p.Go(func(ctx context.Context) error {
		alerts, err := s.Alerts.List(ctx)
		if err != nil {
			return fmt.Errorf("listing alerts: %w", err)
		}
		dashboard.Alerts = alerts

		return nil
	})
	p.Go(func(ctx context.Context) error {
		users, err := s.Accounts.List(ctx)
		if err != nil {
			return fmt.Errorf("listing accounts: %w", err)
		}
		dashboard.UserCount = len(users)

		return nil
	})
	p.Go(func(ctx context.Context) error {
		dashboard.TrainCounts = s.Feed.CountByStatus()

		return nil
	})

	if err := p.Wait(); err != nil {
		return nil, err
	}

	return dashboard, nil
}

func (s *Service) footfall() []FootfallEntry {
	busiest := 0
	for _, station := range s.Dataset.StationFootfall {
		busiest = max(busiest, station.Footfall)
	}

	entries := make([]FootfallEntry, 0, len(s.Dataset.StationFootfall))
	for _, station := range s.Dataset.StationFootfall {
		percentage := 0
		if busiest > 0 {
			percentage = station.Footfall * 100 / busiest
		}

		entries = append(entries, FootfallEntry{
			StationFootfall: station,
			Percentage:      percentage,
			Band:            PercentageBand(percentage),
		})
	}

	return entries
}

type Users struct {
	Accounts []ctdf.User
	Riders   []ctdf.Rider
}

func (s *Service) Users(ctx context.Context) (*Users, error) {
	users, err := s.Accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	return &Users{
		Accounts: users,
		Riders:   slices.Clone(s.Dataset.Riders),
	}, nil
}

func (s *Service) ListAlerts(ctx context.Context) ([]ctdf.ServiceAlert, error) {
	return s.Alerts.List(ctx)
}

type AlertForm struct {
	AlertType ctdf.ServiceAlertType
	Message   string
	Date      string
	Time      string
}

func (s *Service) CreateAlert(ctx context.Context, form AlertForm) (*ctdf.ServiceAlert, error) {
	if !form.AlertType.IsValid() {
		return nil, ErrInvalidAlertType
	}

	message := strings.TrimSpace(form.Message)
	if message == "" {
		return nil, ErrMissingMessage
	}

	now := s.now()

	alert := &ctdf.ServiceAlert{
		Identifier:       fmt.Sprintf("%d", now.UnixMilli()),
		AlertType:        form.AlertType,
		Message:          message,
		Date:             form.Date,
		Time:             form.Time,
		CreationDateTime: now,
	}
	if alert.Date == "" {
		alert.Date = now.Format(time.DateOnly)
	}
	if alert.Time == "" {
		alert.Time = now.Format("15:04")
	}

	if err := s.Alerts.Insert(ctx, alert); err != nil {
		return nil, fmt.Errorf("storing alert: %w", err)
	}

	log.Info().Str("id", alert.Identifier).Str("type", string(alert.AlertType)).Msg("Service alert created")

	return alert, nil
}
