package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/aryant0/mithila-bazaar/internal/metrics"
	"github.com/aryant0/mithila-bazaar/internal/model"
	"github.com/aryant0/mithila-bazaar/internal/repository"
)

// VisitorService counts each session once per calendar day in the store's time zone.
type VisitorService struct {
	Repo     repository.VisitorRepository
	Location *time.Location
	now      func() time.Time
}

func NewVisitorService(r repository.VisitorRepository, loc *time.Location) *VisitorService {
	if loc == nil {
		loc = time.UTC
	}
	return &VisitorService{Repo: r, Location: loc, now: time.Now}
}

func (s *VisitorService) today() time.Time {
	return s.now().In(s.Location)
}

// RecordVisit marks sessionID as seen today. Counting failures are logged and
// never fail the request.
func (s *VisitorService) RecordVisit(ctx context.Context, sessionID string) {
	isNew, err := s.Repo.MarkVisit(ctx, sessionID, s.today())
	if err != nil {
		slog.Warn("Visitor not recorded", "error", err)
		return
	}
	if isNew {
		metrics.Visitors.Inc()
	}
}

// Stats returns today's unique visitor count.
func (s *VisitorService) Stats(ctx context.Context) (*model.VisitorStats, error) {
	day := s.today()
	n, err := s.Repo.Count(ctx, day)
	if err != nil {
		return nil, err
	}
	return &model.VisitorStats{
		Date:          day.Format("2006-01-02"),
		Key:           repository.VisitorDayKey(day),
		VisitorsToday: n,
	}, nil
}
