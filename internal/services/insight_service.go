package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aerointel/aerointel-backend/internal/alerting"
	"github.com/aerointel/aerointel-backend/internal/analysis"
	"github.com/aerointel/aerointel-backend/internal/apperr"
	"github.com/aerointel/aerointel-backend/internal/dto"
	"github.com/aerointel/aerointel-backend/internal/models"
	"github.com/aerointel/aerointel-backend/internal/policy"
	"github.com/aerointel/aerointel-backend/internal/store"
)

const defaultInsightLimit = 50

type InsightService struct {
	store  store.Store
	alerts *alerting.Engine
	now    func() time.Time
}

func NewInsightService(st store.Store, engine *alerting.Engine) *InsightService {
	return &InsightService{store: st, alerts: engine, now: time.Now}
}

// Create stores an insight submitted directly by a client.
func (s *InsightService) Create(ctx context.Context, p policy.Principal, req *dto.CreateInsightRequest) (*models.Insight, error) {
	score := representativeScore(models.Sentiment(req.Sentiment))
	if req.Score != nil {
		score = *req.Score
		if score > 1 {
			score /= 100
		}
	}

	theme := analysis.ThemeOperations
	if strings.TrimSpace(req.Theme) != "" {
		theme = analysis.NormalizeThemes([]string{req.Theme})[0]
	}

	keywords := req.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	payload := req.Analysis
	if payload == nil {
		payload = map[string]any{}
	}

	return s.Add(ctx, &models.Insight{
		UserID:        p.UserID,
		UserName:      p.Name,
		Transcription: req.Transcription,
		Airline:       req.Airline,
		Country:       orDefault(req.Country, "Unknown"),
		Theme:         theme,
		Sentiment:     analysis.LabelForScore(score),
		Score:         score,
		Summary:       req.Summary,
		Keywords:      keywords,
		Analysis:      payload,
	})
}

// Add assigns an id and timestamp, persists the insight, then runs alert
// generation in a separate load/save cycle. A failed alert never fails the
// insight.
func (s *InsightService) Add(ctx context.Context, in *models.Insight) (*models.Insight, error) {
	in.ID = uuid.NewString()
	in.Timestamp = s.now().UTC()

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	doc.Insights = append(doc.Insights, *in)
	if err := s.store.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save insight: %w", err)
	}

	if err := s.generateAlert(ctx, in); err != nil {
		slog.Error("alert generation failed", "insight_id", in.ID, "error", err)
	}
	return in, nil
}

func (s *InsightService) generateAlert(ctx context.Context, in *models.Insight) error {
	alert, ok := s.alerts.Evaluate(in)
	if !ok {
		return nil
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	doc.Alerts = append(doc.Alerts, *alert)
	if err := s.store.Save(ctx, doc); err != nil {
		return err
	}

	slog.Info("alert generated", "alert_id", alert.ID, "insight_id", in.ID, "severity", alert.Severity, "category", alert.Category)
	return nil
}

// List filters and pages insights newest first. Callers without the
// list-all permission only ever see their own.
func (s *InsightService) List(ctx context.Context, p policy.Principal, q *dto.InsightQuery) ([]models.Insight, dto.Pagination, error) {
	if !policy.Can(p, policy.ListAllInsights, policy.Resource{}) {
		q.UserID = p.UserID
	}

	start, err := parseDateBound(q.StartDate, "startDate", false)
	if err != nil {
		return nil, dto.Pagination{}, err
	}
	end, err := parseDateBound(q.EndDate, "endDate", true)
	if err != nil {
		return nil, dto.Pagination{}, err
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, dto.Pagination{}, err
	}

	airline := strings.ToLower(q.Airline)
	theme := strings.ToLower(q.Theme)
	matched := make([]models.Insight, 0, len(doc.Insights))
	for _, in := range doc.Insights {
		switch {
		case airline != "" && !strings.Contains(strings.ToLower(in.Airline), airline):
		case theme != "" && !strings.Contains(strings.ToLower(in.Theme), theme):
		case q.Sentiment != "" && string(in.Sentiment) != q.Sentiment:
		case q.UserID != "" && in.UserID != q.UserID:
		case !start.IsZero() && in.Timestamp.Before(start):
		case !end.IsZero() && in.Timestamp.After(end):
		default:
			matched = append(matched, in)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Timestamp.After(matched[j].Timestamp) })
	page, pagination := paginate(matched, q.Limit, q.Offset, defaultInsightLimit)
	return page, pagination, nil
}

func (s *InsightService) Get(ctx context.Context, p policy.Principal, id string) (*models.Insight, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range doc.Insights {
		if doc.Insights[i].ID != id {
			continue
		}
		in := &doc.Insights[i]
		if err := policy.Authorize(p, policy.ViewInsight, policy.Resource{OwnerID: in.UserID}); err != nil {
			return nil, err
		}
		return in, nil
	}
	return nil, apperr.NotFound("Insight not found")
}

// representativeScore backs a label given without a score so that the
// stored label and score agree.
func representativeScore(s models.Sentiment) float64 {
	switch s {
	case models.SentimentPositive:
		return 0.75
	case models.SentimentNegative:
		return 0.25
	}
	return 0.5
}

func parseDateBound(s, field string, endOfDay bool) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, apperr.Validationf("Invalid %s", field)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
