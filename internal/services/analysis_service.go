package services

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aerointel/aerointel-backend/internal/analysis"
	"github.com/aerointel/aerointel-backend/internal/apperr"
	"github.com/aerointel/aerointel-backend/internal/catalog"
	"github.com/aerointel/aerointel-backend/internal/dto"
	"github.com/aerointel/aerointel-backend/internal/llm"
	"github.com/aerointel/aerointel-backend/internal/models"
	"github.com/aerointel/aerointel-backend/internal/policy"
)

const (
	minTranscriptLength = 10
	persistThreshold    = 20
	unknown             = "Unknown"
)

// Completer is the slice of the LLM client analysis needs.
type Completer interface {
	Configured() bool
	ChatModel() string
	Complete(ctx context.Context, messages []llm.Message, opts llm.CompletionOptions) (string, error)
}

type AnalysisService struct {
	llm        Completer
	normalizer *analysis.Normalizer
	catalog    *catalog.Catalog
	insights   *InsightService
}

func NewAnalysisService(client Completer, cat *catalog.Catalog, insights *InsightService) *AnalysisService {
	return &AnalysisService{
		llm:        client,
		normalizer: analysis.NewNormalizer(analysis.NewKeywordValidator(cat)),
		catalog:    cat,
		insights:   insights,
	}
}

// Analyze sends a transcript to the model, normalizes the answer and stores
// it as an insight when there is enough to go on.
func (s *AnalysisService) Analyze(ctx context.Context, p policy.Principal, req *dto.AnalyzeRequest) (*analysis.Result, error) {
	if !s.llm.Configured() {
		return nil, apperr.Unavailable("AI analysis service not configured")
	}

	transcript := strings.TrimSpace(req.Transcription)
	if len([]rune(transcript)) < minTranscriptLength {
		return nil, apperr.Validation("Transcription too short for meaningful analysis")
	}

	content, err := s.llm.Complete(ctx, analysis.Messages(transcript, req.Context, p.Email), llm.DefaultCompletionOptions)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, apperr.FromProvider(err, "Analysis failed")
	}

	raw, err := analysis.ParseCompletion(content)
	if err != nil {
		slog.Error("failed to parse model output", "error", err, "length", len(content))
		return nil, apperr.Upstream(http.StatusInternalServerError, "Failed to parse AI analysis", err)
	}

	resolved := s.resolveContext(req.Context, transcript)
	result := s.normalizer.Normalize(raw, transcript, resolved, s.llm.ChatModel())

	if req.Context.Airline != "" || req.Context.Country != "" || len([]rune(transcript)) > persistThreshold {
		if err := s.persist(ctx, p, transcript, resolved, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// resolveContext fills airline and country from the transcript when the
// caller left them out.
func (s *AnalysisService) resolveContext(in analysis.Context, transcript string) analysis.Context {
	out := in
	if out.Airline != "" && out.Country != "" {
		return out
	}

	var detected catalog.Airline
	var ok bool
	if out.Airline != "" {
		detected, ok = s.catalog.Airline(out.Airline)
	} else {
		detected, ok = s.catalog.PrimaryAirline(transcript)
	}
	if !ok {
		return out
	}
	if out.Airline == "" {
		out.Airline = detected.Name
	}
	if out.Country == "" {
		out.Country = detected.Country
	}
	return out
}

func (s *AnalysisService) persist(ctx context.Context, p policy.Principal, transcript string, c analysis.Context, r *analysis.Result) error {
	payload, err := r.Map()
	if err != nil {
		return apperr.Unexpected("failed to encode analysis", err)
	}

	_, err = s.insights.Add(ctx, &models.Insight{
		UserID:        p.UserID,
		UserName:      p.Name,
		Transcription: transcript,
		Airline:       orDefault(c.Airline, unknown),
		Country:       orDefault(c.Country, unknown),
		Theme:         r.PrimaryTheme(),
		Sentiment:     r.Sentiment.Overall,
		Score:         r.Sentiment.Score,
		Summary:       r.Summary,
		Keywords:      r.Keywords,
		Analysis:      payload,
	})
	return err
}
