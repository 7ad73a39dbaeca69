package alerting

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aerointel/aerointel-backend/internal/analysis"
	"github.com/aerointel/aerointel-backend/internal/models"
)

const (
	negativeScoreCeiling = 0.4
	positiveScoreFloor   = 0.8
)

// Engine derives at most one alert from a freshly created insight.
type Engine struct {
	Enabled bool
	Now     func() time.Time
}

func NewEngine(enabled bool) *Engine {
	return &Engine{Enabled: enabled, Now: time.Now}
}

type candidate struct {
	severity models.Severity
	title    string
	message  string
	category string
}

// Evaluate runs every rule against the insight. When several fire, the
// highest severity wins and a tie goes to the rule evaluated last.
func (e *Engine) Evaluate(in *models.Insight) (*models.Alert, bool) {
	if e == nil || !e.Enabled || in == nil {
		return nil, false
	}

	var best *candidate
	consider := func(c candidate) {
		if best == nil || c.severity.Rank() >= best.severity.Rank() {
			best = &c
		}
	}

	if in.Sentiment == models.SentimentNegative && in.Score < negativeScoreCeiling {
		consider(candidate{
			severity: models.SeverityHigh,
			title:    "Negative Signal Detected: " + in.Airline,
			message:  fmt.Sprintf("A negative market signal has been detected for %s regarding %s. %s", in.Airline, in.Theme, in.Summary),
			category: analysis.CategoryForTheme(in.Theme),
		})
	}

	if in.Sentiment == models.SentimentPositive && in.Score > positiveScoreFloor {
		consider(candidate{
			severity: models.SeverityMedium,
			title:    "Strong Positive Signal: " + in.Airline,
			message:  fmt.Sprintf("A strong positive market signal has been detected for %s. %s", in.Airline, in.Summary),
			category: analysis.CategoryForTheme(in.Theme),
		})
	}

	if c, ok := workforceRule(in); ok {
		consider(c)
	}

	if best == nil {
		return nil, false
	}

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	return &models.Alert{
		ID:                uuid.NewString(),
		Title:             best.title,
		Message:           best.message,
		Severity:          best.severity,
		Airline:           in.Airline,
		Country:           in.Country,
		Category:          best.category,
		Timestamp:         now().UTC(),
		RelatedInsightIDs: []string{in.ID},
		ActionRequired:    best.severity == models.SeverityHigh,
		Acknowledged:      false,
	}, true
}

func workforceRule(in *models.Insight) (candidate, bool) {
	theme := strings.ToLower(in.Theme)
	growthSeverity := models.SeverityHigh
	if in.Sentiment == models.SentimentPositive {
		growthSeverity = models.SeverityMedium
	}

	switch {
	case strings.Contains(theme, "firing"):
		return candidate{
			severity: models.SeverityHigh,
			title:    "Workforce Reduction Alert: " + in.Airline,
			message:  fmt.Sprintf("Layoffs or workforce reductions detected at %s. %s", in.Airline, in.Summary),
			category: analysis.ThemeFiring,
		}, true
	case strings.Contains(theme, "hiring"):
		return candidate{
			severity: growthSeverity,
			title:    fmt.Sprintf("%s Activity: %s", in.Theme, in.Airline),
			message:  in.Summary,
			category: analysis.ThemeHiring,
		}, true
	case strings.Contains(theme, "expansion"):
		return candidate{
			severity: growthSeverity,
			title:    fmt.Sprintf("%s Activity: %s", in.Theme, in.Airline),
			message:  in.Summary,
			category: analysis.ThemeExpansion,
		}, true
	}
	return candidate{}, false
}
