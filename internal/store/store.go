package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aerointel/aerointel-backend/internal/models"
	"github.com/google/uuid"
)

// Document is the whole persisted state. Every operation loads it,
// mutates it in memory and saves it back; the last writer wins.
type Document struct {
	Users    []models.User    `json:"users"`
	Insights []models.Insight `json:"insights"`
	Alerts   []models.Alert   `json:"alerts"`
}

// Store is implemented by the flat-file, in-memory and relational backends.
type Store interface {
	Load(ctx context.Context) (*Document, error)
	Save(ctx context.Context, doc *Document) error
	Ping(ctx context.Context) error
	Name() string
}

func newDocument(now time.Time) *Document {
	return &Document{
		Users:    []models.User{},
		Insights: []models.Insight{},
		Alerts:   SeedAlerts(now),
	}
}

func (d *Document) normalize() {
	if d.Users == nil {
		d.Users = []models.User{}
	}
	if d.Insights == nil {
		d.Insights = []models.Insight{}
	}
	if d.Alerts == nil {
		d.Alerts = []models.Alert{}
	}
}

// Clone returns a deep copy via a JSON round trip.
func (d *Document) Clone() (*Document, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var out Document
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	out.normalize()
	return &out, nil
}

// SeedAlerts returns the alerts a fresh store starts with.
func SeedAlerts(now time.Time) []models.Alert {
	seed := func(title, message string, sev models.Severity, airline, country, category string, ago time.Duration, action bool) models.Alert {
		return models.Alert{
			ID:                uuid.NewString(),
			Title:             title,
			Message:           message,
			Severity:          sev,
			Airline:           airline,
			Country:           country,
			Category:          category,
			Timestamp:         now.Add(-ago).UTC(),
			RelatedInsightIDs: []string{},
			ActionRequired:    action,
		}
	}

	return []models.Alert{
		seed("High Hiring Activity Detected",
			"Indigo has announced a significant increase in pilot hiring for the next quarter. This indicates strong growth expectations.",
			models.SeverityHigh, "Indigo", "India", "Hiring", 30*time.Minute, false),
		seed("Route Expansion Alert",
			"Air India is planning to launch 15 new routes to Southeast Asia, indicating aggressive expansion strategy.",
			models.SeverityMedium, "Air India", "India", "Expansion", 2*time.Hour, false),
		seed("Financial Performance Update",
			"SpiceJet Q3 earnings exceeded market expectations by 12%, showing strong financial health.",
			models.SeverityMedium, "SpiceJet", "India", "Financial", 4*time.Hour, false),
		seed("Operational Delay Warning",
			"Vistara reports delays in fleet expansion due to supply chain disruptions. Expected impact on Q4 operations.",
			models.SeverityCritical, "Vistara", "India", "Operations", 6*time.Hour, true),
		seed("Safety Protocol Update",
			"GoAir has updated safety protocols following regulatory review. All operations remain normal.",
			models.SeverityLow, "GoAir", "India", "Safety", 8*time.Hour, false),
		seed("Training Capacity Expansion",
			"Multiple airlines are investing in new simulator facilities and training centers to address pilot shortage.",
			models.SeverityHigh, "Market Wide", "Global", "Training", 12*time.Hour, false),
	}
}
