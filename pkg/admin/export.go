package admin

import (
	"context"
	"errors"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/travigo/patnametro/pkg/lostfound"
)

var ErrUnknownReport = errors.New("unknown report")

var Reports = []string{"riders", "footfall", "lost_items"}

// Export writes a report as CSV with a header row
func (s *Service) Export(ctx context.Context, report string, writer io.Writer) error {
	switch report {
	case "riders":
		return gocsv.Marshal(s.Dataset.Riders, writer)
	case "footfall":
		return gocsv.Marshal(s.Dataset.StationFootfall, writer)
	case "lost_items":
		items, err := s.LostItems.Search(ctx, lostfound.Filter{})
		if err != nil {
			return err
		}

		return gocsv.Marshal(items, writer)
	}

	return ErrUnknownReport
}
