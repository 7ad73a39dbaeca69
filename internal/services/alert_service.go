package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aerointel/aerointel-backend/internal/analysis"
	"github.com/aerointel/aerointel-backend/internal/apperr"
	"github.com/aerointel/aerointel-backend/internal/dto"
	"github.com/aerointel/aerointel-backend/internal/models"
	"github.com/aerointel/aerointel-backend/internal/policy"
	"github.com/aerointel/aerointel-backend/internal/store"
)

const defaultAlertLimit = 20

type AlertService struct {
	store store.Store
	now   func() time.Time
}

func NewAlertService(st store.Store) *AlertService {
	return &AlertService{store: st, now: time.Now}
}

func (s *AlertService) List(ctx context.Context, q *dto.AlertQuery) ([]models.Alert, dto.Pagination, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, dto.Pagination{}, err
	}

	airline := strings.ToLower(q.Airline)
	matched := make([]models.Alert, 0, len(doc.Alerts))
	for _, a := range doc.Alerts {
		switch {
		case q.Severity != "" && string(a.Severity) != q.Severity:
		case airline != "" && !strings.Contains(strings.ToLower(a.Airline), airline):
		case q.Category != "" && a.Category != q.Category:
		default:
			matched = append(matched, a)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Timestamp.After(matched[j].Timestamp) })
	page, pagination := paginate(matched, q.Limit, q.Offset, defaultAlertLimit)
	return page, pagination, nil
}

func (s *AlertService) Create(ctx context.Context, p policy.Principal, req *dto.CreateAlertRequest) (*models.Alert, error) {
	if err := policy.Authorize(p, policy.CreateAlert, policy.Resource{}); err != nil {
		return nil, err
	}

	related := req.RelatedInsightIDs
	if related == nil {
		related = []string{}
	}
	alert := models.Alert{
		ID:                uuid.NewString(),
		Title:             req.Title,
		Message:           req.Message,
		Severity:          models.Severity(req.Severity),
		Airline:           orDefault(req.Airline, "General"),
		Country:           orDefault(req.Country, "Global"),
		Category:          orDefault(req.Category, analysis.ThemeOperations),
		Timestamp:         s.now().UTC(),
		RelatedInsightIDs: related,
		ActionRequired:    req.ActionRequired != nil && *req.ActionRequired,
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	doc.Alerts = append(doc.Alerts, alert)
	if err := s.store.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save alert: %w", err)
	}
	return &alert, nil
}

// Acknowledge marks an alert as seen. Repeating it is a no-op.
func (s *AlertService) Acknowledge(ctx context.Context, id string) (*models.Alert, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range doc.Alerts {
		if doc.Alerts[i].ID != id {
			continue
		}
		a := &doc.Alerts[i]
		if a.Acknowledged {
			return a, nil
		}
		a.Acknowledged = true
		if err := s.store.Save(ctx, doc); err != nil {
			return nil, fmt.Errorf("failed to acknowledge alert: %w", err)
		}
		return a, nil
	}
	return nil, apperr.NotFound("Alert not found")
}
