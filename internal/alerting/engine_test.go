package alerting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerointel/aerointel-backend/internal/models"
)

func testEngine() *Engine {
	e := NewEngine(true)
	e.Now = func() time.Time { return time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC) }
	return e
}

func insight(theme string, s models.Sentiment, score float64) *models.Insight {
	return &models.Insight{
		ID: "ins-1", Airline: "SpiceJet", Country: "India",
		Theme: theme, Sentiment: s, Score: score, Summary: "Ground staff cuts announced.",
	}
}

func TestNegativeFiringProducesSingleWorkforceAlert(t *testing.T) {
	a, ok := testEngine().Evaluate(insight("Firing", models.SentimentNegative, 0.2))
	require.True(t, ok)

	assert.Equal(t, models.SeverityHigh, a.Severity)
	assert.Equal(t, "Firing", a.Category)
	assert.Equal(t, "Workforce Reduction Alert: SpiceJet", a.Title)
	assert.Equal(t, "Layoffs or workforce reductions detected at SpiceJet. Ground staff cuts announced.", a.Message)
	assert.True(t, a.ActionRequired)
	assert.False(t, a.Acknowledged)
	assert.Equal(t, []string{"ins-1"}, a.RelatedInsightIDs)
	assert.Equal(t, "India", a.Country)
	assert.NotEmpty(t, a.ID)
}

func TestRules(t *testing.T) {
	tests := []struct {
		name     string
		theme    string
		s        models.Sentiment
		score    float64
		fire     bool
		severity models.Severity
		title    string
		category string
	}{
		{"negative financial", "Financial", models.SentimentNegative, 0.3, true, models.SeverityHigh, "Negative Signal Detected: SpiceJet", "Financial"},
		{"strong positive training", "Training", models.SentimentPositive, 0.9, true, models.SeverityMedium, "Strong Positive Signal: SpiceJet", "Training"},
		{"positive hiring", "Hiring", models.SentimentPositive, 0.9, true, models.SeverityMedium, "Hiring Activity: SpiceJet", "Hiring"},
		{"neutral hiring", "Hiring", models.SentimentNeutral, 0.5, true, models.SeverityHigh, "Hiring Activity: SpiceJet", "Hiring"},
		{"negative expansion keeps high", "Expansion", models.SentimentNegative, 0.1, true, models.SeverityHigh, "Expansion Activity: SpiceJet", "Expansion"},
		{"negative but not low enough", "Safety", models.SentimentNegative, 0.4, false, "", "", ""},
		{"neutral safety", "Safety", models.SentimentNeutral, 0.5, false, "", "", ""},
		{"positive at floor", "Operations", models.SentimentPositive, 0.8, false, "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, ok := testEngine().Evaluate(insight(tt.theme, tt.s, tt.score))
			require.Equal(t, tt.fire, ok)
			if !tt.fire {
				assert.Nil(t, a)
				return
			}
			assert.Equal(t, tt.severity, a.Severity)
			assert.Equal(t, tt.title, a.Title)
			assert.Equal(t, tt.category, a.Category)
			assert.Equal(t, tt.severity == models.SeverityHigh, a.ActionRequired)
		})
	}
}

func TestTiedSeverityPrefersWorkforceRule(t *testing.T) {
	// Negative hiring note: sentiment and workforce rules are both High.
	a, ok := testEngine().Evaluate(insight("Hiring", models.SentimentNegative, 0.2))
	require.True(t, ok)
	assert.Equal(t, "Hiring Activity: SpiceJet", a.Title)
	assert.Equal(t, models.SeverityHigh, a.Severity)
}

func TestDisabled(t *testing.T) {
	e := NewEngine(false)
	_, ok := e.Evaluate(insight("Firing", models.SentimentNegative, 0.1))
	assert.False(t, ok)
}
