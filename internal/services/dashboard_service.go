package services

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/aerointel/aerointel-backend/internal/dto"
	"github.com/aerointel/aerointel-backend/internal/models"
	"github.com/aerointel/aerointel-backend/internal/policy"
	"github.com/aerointel/aerointel-backend/internal/store"
)

const topN = 5

type DashboardService struct {
	store store.Store
	now   func() time.Time
}

func NewDashboardService(st store.Store) *DashboardService {
	return &DashboardService{store: st, now: time.Now}
}

// Stats aggregates insights for the dashboard. Callers without the
// global-stats permission only see their own insights counted.
func (s *DashboardService) Stats(ctx context.Context, p policy.Principal) (*dto.DashboardStats, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	insights := doc.Insights
	if !policy.Can(p, policy.ViewAllStats, policy.Resource{}) {
		own := make([]models.Insight, 0, len(insights))
		for _, in := range insights {
			if in.UserID == p.UserID {
				own = append(own, in)
			}
		}
		insights = own
	}

	now := s.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := todayStart.AddDate(0, 0, -7)

	stats := &dto.DashboardStats{TotalInsights: len(insights)}
	airlines := map[string]int{}
	themes := map[string]int{}
	countries := map[string]struct{}{}
	var positive, neutral, negative int
	var scoreSum float64

	for _, in := range insights {
		if !in.Timestamp.Before(todayStart) {
			stats.TodayInsights++
		}
		if !in.Timestamp.Before(weekStart) {
			stats.WeekInsights++
		}
		switch in.Sentiment {
		case models.SentimentPositive:
			positive++
		case models.SentimentNeutral:
			neutral++
		case models.SentimentNegative:
			negative++
		}
		airlines[in.Airline]++
		themes[in.Theme]++
		countries[in.Country] = struct{}{}
		scoreSum += in.Score
	}

	total := max(positive+neutral+negative, 1)
	pct := func(n int) int { return int(math.Round(float64(n) / float64(total) * 100)) }
	stats.SentimentBreakdown = dto.SentimentBreakdown{Positive: pct(positive), Neutral: pct(neutral), Negative: pct(negative)}

	stats.AirlinesMonitored = len(airlines)
	stats.CountriesCovered = len(countries)
	stats.TopAirlines = topCounts(airlines)
	stats.TopThemes = topCounts(themes)
	if len(insights) > 0 {
		stats.AvgConfidence = scoreSum / float64(len(insights))
	}

	for _, a := range doc.Alerts {
		if !a.Acknowledged {
			stats.ActiveAlerts++
		}
	}
	return stats, nil
}

func topCounts(counts map[string]int) []dto.NameCount {
	out := make([]dto.NameCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, dto.NameCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}
