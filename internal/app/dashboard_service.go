package app

import (
	"context"
	"time"

	"habitkit/internal/domain"
)

// DashboardService encapsulates history chart retrieval use cases.
type DashboardService struct {
	habits  domain.HabitRepository
	reports domain.ReportRepository
}

// NewDashboardService creates a DashboardService backed by the given
// repositories.
func NewDashboardService(habits domain.HabitRepository, reports domain.ReportRepository) *DashboardService {
	return &DashboardService{habits: habits, reports: reports}
}

// DayPoint is a single data point returned by GetDaily.
type DayPoint struct {
	Day       string  `json:"day"`
	Progress  float64 `json:"progress"`
	Completed bool    `json:"completed"`
}

// GetDaily returns per-day history for the last days days of one habit.
// Each point carries the progress and completion the aggregation pipeline
// would have produced for that day's period. Weekly habits are evaluated
// against the week window containing each day.
func (s *DashboardService) GetDaily(ctx context.Context, userID int64, habitID string, days int) ([]DayPoint, error) {
	if days <= 0 {
		days = 30
	}
	if days > 366 {
		days = 366
	}

	h, err := s.habits.GetHabit(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, ErrHabitNotFound
	}

	now := time.Now().In(time.Local)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	since := today.AddDate(0, 0, -(days - 1))
	if h.Frequency == domain.FrequencyWeekly {
		// Include the full week containing the oldest requested day.
		since = domain.PeriodStart(since, domain.FrequencyWeekly)
	}

	reports, err := s.reports.ListReportsSince(ctx, userID, habitID, since)
	if err != nil {
		return nil, err
	}

	bucketKey := func(t time.Time) string {
		t = t.In(time.Local)
		if h.Frequency == domain.FrequencyWeekly {
			return domain.PeriodStart(t, domain.FrequencyWeekly).Format("2006-01-02")
		}
		return t.Format("2006-01-02")
	}

	buckets := make(map[string][]domain.HabitReport)
	for _, r := range reports {
		k := bucketKey(r.ReportedAt)
		buckets[k] = append(buckets[k], r)
	}

	points := make([]DayPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		p := domain.Summarize(h.Type, h.Goal, buckets[bucketKey(d)])
		points = append(points, DayPoint{
			Day:       d.Format("2006-01-02"),
			Progress:  p.Value,
			Completed: p.Completed,
		})
	}
	return points, nil
}
