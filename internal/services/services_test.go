package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerointel/aerointel-backend/internal/alerting"
	"github.com/aerointel/aerointel-backend/internal/apperr"
	"github.com/aerointel/aerointel-backend/internal/catalog"
	"github.com/aerointel/aerointel-backend/internal/config"
	"github.com/aerointel/aerointel-backend/internal/dto"
	"github.com/aerointel/aerointel-backend/internal/llm"
	"github.com/aerointel/aerointel-backend/internal/models"
	"github.com/aerointel/aerointel-backend/internal/policy"
	"github.com/aerointel/aerointel-backend/internal/store"
)

var (
	analyst = policy.Principal{UserID: "u-analyst", Email: "a@example.com", Name: "Ana", Role: models.RoleAnalyst}
	manager = policy.Principal{UserID: "u-manager", Email: "m@example.com", Name: "Max", Role: models.RoleManager}
)

func kindOf(t *testing.T, err error) apperr.Kind {
	t.Helper()
	var e *apperr.Error
	require.True(t, errors.As(err, &e), "expected *apperr.Error, got %v", err)
	return e.Kind
}

func ptr[T any](v T) *T { return &v }

func TestAuthRegisterLoginRefresh(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(store.NewMemoryStore(false), &config.Config{JWTSecret: "secret", JWTExpiry: time.Hour})

	user, token, err := svc.Register(ctx, &dto.RegisterRequest{Email: " Pilot@Example.com ", Password: "hunter22", Name: "Pat"})
	require.NoError(t, err)
	assert.Equal(t, "pilot@example.com", user.Email)
	assert.Equal(t, models.RoleAnalyst, user.Role)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
	assert.NotEmpty(t, token)

	_, _, err = svc.Register(ctx, &dto.RegisterRequest{Email: "PILOT@example.com", Password: "another1", Name: "Pat"})
	assert.Equal(t, apperr.KindConflict, kindOf(t, err))
	assert.True(t, errors.Is(err, ErrEmailTaken))

	_, _, err = svc.Login(ctx, &dto.LoginRequest{Email: "pilot@example.com", Password: "wrong-pass"})
	assert.Equal(t, apperr.KindAuthentication, kindOf(t, err))
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	logged, token2, err := svc.Login(ctx, &dto.LoginRequest{Email: "PILOT@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	p, err := svc.ParseToken(token2)
	require.NoError(t, err)
	assert.Equal(t, user.ID, p.UserID)
	assert.Equal(t, models.RoleAnalyst, p.Role)

	refreshed, _, err := svc.Refresh(ctx, token2)
	require.NoError(t, err)
	assert.Equal(t, user.ID, refreshed.ID)

	_, _, err = svc.Refresh(ctx, "")
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))
	_, _, err = svc.Refresh(ctx, "not-a-token")
	assert.Equal(t, apperr.KindAuthentication, kindOf(t, err))
}

func TestAuthRejectsExpiredAndForeignTokens(t *testing.T) {
	st := store.NewMemoryStore(false)
	svc := NewAuthService(st, &config.Config{JWTSecret: "secret", JWTExpiry: time.Hour})
	user := &models.User{ID: "u1", Email: "x@example.com", Role: models.RoleAdmin}

	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := svc.IssueToken(user)
	require.NoError(t, err)
	_, err = svc.ParseToken(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewAuthService(st, &config.Config{JWTSecret: "other", JWTExpiry: time.Hour})
	foreign, err := other.IssueToken(user)
	require.NoError(t, err)
	_, err = svc.ParseToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthMeRejectsInactiveUser(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore(false)
	require.NoError(t, st.Save(ctx, &store.Document{Users: []models.User{{ID: "u1", Email: "x@example.com", IsActive: false}}}))

	svc := NewAuthService(st, &config.Config{JWTSecret: "secret", JWTExpiry: time.Hour})
	_, err := svc.Me(ctx, "u1")
	assert.Equal(t, apperr.KindAuthentication, kindOf(t, err))
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestInsightCreateGeneratesAlert(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore(false)
	svc := NewInsightService(st, alerting.NewEngine(true))

	in, err := svc.Create(ctx, analyst, &dto.CreateInsightRequest{
		Transcription: "SpiceJet is laying off 200 ground staff.",
		Airline:       "SpiceJet",
		Theme:         "layoffs",
		Score:         ptr(20.0),
		Summary:       "SpiceJet cuts ground staff.",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, in.ID)
	assert.Equal(t, "Firing", in.Theme)
	assert.Equal(t, 0.2, in.Score)
	assert.Equal(t, models.SentimentNegative, in.Sentiment)
	assert.Equal(t, "Unknown", in.Country)
	assert.NotNil(t, in.Keywords)

	doc, err := st.Load(ctx)
	require.NoError(t, err)
	require.Len(t, doc.Insights, 1)
	require.Len(t, doc.Alerts, 1)
	alert := doc.Alerts[0]
	assert.Equal(t, models.SeverityHigh, alert.Severity)
	assert.True(t, alert.ActionRequired)
	assert.Equal(t, []string{in.ID}, alert.RelatedInsightIDs)
}

func TestInsightCreateLabelOnlyUsesRepresentativeScore(t *testing.T) {
	svc := NewInsightService(store.NewMemoryStore(false), alerting.NewEngine(false))

	in, err := svc.Create(context.Background(), analyst, &dto.CreateInsightRequest{
		Transcription: "Indigo had a strong quarter.",
		Airline:       "Indigo",
		Sentiment:     "Positive",
	})
	require.NoError(t, err)
	assert.Equal(t, 0.75, in.Score)
	assert.Equal(t, models.SentimentPositive, in.Sentiment)
	assert.Equal(t, "Operations", in.Theme)
}

func seedInsights(t *testing.T, st store.Store, insights ...models.Insight) {
	t.Helper()
	ctx := context.Background()
	doc, err := st.Load(ctx)
	require.NoError(t, err)
	doc.Insights = append(doc.Insights, insights...)
	require.NoError(t, st.Save(ctx, doc))
}

func TestInsightListScopingAndFilters(t *testing.T) {
	st := store.NewMemoryStore(false)
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	seedInsights(t, st,
		models.Insight{ID: "1", UserID: analyst.UserID, Airline: "Air India", Theme: "Hiring", Sentiment: models.SentimentPositive, Timestamp: base},
		models.Insight{ID: "2", UserID: analyst.UserID, Airline: "Indigo", Theme: "Financial", Sentiment: models.SentimentNegative, Timestamp: base.Add(24 * time.Hour)},
		models.Insight{ID: "3", UserID: "someone-else", Airline: "Air India Express", Theme: "Expansion", Sentiment: models.SentimentNeutral, Timestamp: base.Add(48 * time.Hour)},
	)
	svc := NewInsightService(st, alerting.NewEngine(false))
	ctx := context.Background()

	own, page, err := svc.List(ctx, analyst, &dto.InsightQuery{UserID: "someone-else"})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, "2", own[0].ID, "newest first")
	assert.Equal(t, 50, page.Limit)

	all, _, err := svc.List(ctx, manager, &dto.InsightQuery{Airline: "air india"})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "3", all[0].ID)

	ranged, _, err := svc.List(ctx, manager, &dto.InsightQuery{StartDate: "2026-03-10", EndDate: "2026-03-11"})
	require.NoError(t, err)
	require.Len(t, ranged, 2)
	assert.Equal(t, "2", ranged[0].ID)

	paged, page, err := svc.List(ctx, manager, &dto.InsightQuery{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, paged, 1)
	assert.True(t, page.HasMore)

	_, _, err = svc.List(ctx, manager, &dto.InsightQuery{StartDate: "yesterday"})
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))
}

func TestInsightGetEnforcesOwnership(t *testing.T) {
	st := store.NewMemoryStore(false)
	seedInsights(t, st, models.Insight{ID: "mine", UserID: analyst.UserID, Timestamp: time.Now()},
		models.Insight{ID: "theirs", UserID: "other", Timestamp: time.Now()})
	svc := NewInsightService(st, alerting.NewEngine(false))
	ctx := context.Background()

	in, err := svc.Get(ctx, analyst, "mine")
	require.NoError(t, err)
	assert.Equal(t, "mine", in.ID)

	_, err = svc.Get(ctx, analyst, "theirs")
	assert.Equal(t, apperr.KindAuthorization, kindOf(t, err))

	_, err = svc.Get(ctx, manager, "theirs")
	assert.NoError(t, err)

	_, err = svc.Get(ctx, manager, "missing")
	assert.Equal(t, apperr.KindNotFound, kindOf(t, err))
}

func TestAlertCreateListAcknowledge(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore(true)
	svc := NewAlertService(st)

	_, err := svc.Create(ctx, analyst, &dto.CreateAlertRequest{Title: "t", Message: "m", Severity: "Low"})
	assert.Equal(t, apperr.KindAuthorization, kindOf(t, err))

	alert, err := svc.Create(ctx, manager, &dto.CreateAlertRequest{Title: "Fuel price spike", Message: "m", Severity: "Critical", ActionRequired: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, "General", alert.Airline)
	assert.Equal(t, "Global", alert.Country)
	assert.Equal(t, "Operations", alert.Category)
	assert.True(t, alert.ActionRequired)

	list, page, err := svc.List(ctx, &dto.AlertQuery{Severity: "Critical"})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, alert.ID, list[0].ID)
	assert.Equal(t, 20, page.Limit)

	byAirline, _, err := svc.List(ctx, &dto.AlertQuery{Airline: "indi"})
	require.NoError(t, err)
	require.Len(t, byAirline, 2)

	acked, err := svc.Acknowledge(ctx, alert.ID)
	require.NoError(t, err)
	assert.True(t, acked.Acknowledged)
	again, err := svc.Acknowledge(ctx, alert.ID)
	require.NoError(t, err)
	assert.True(t, again.Acknowledged)

	_, err = svc.Acknowledge(ctx, "nope")
	assert.Equal(t, apperr.KindNotFound, kindOf(t, err))
}

func TestDashboardStats(t *testing.T) {
	st := store.NewMemoryStore(false)
	now := time.Date(2026, 3, 20, 15, 0, 0, 0, time.UTC)
	seedInsights(t, st,
		models.Insight{UserID: analyst.UserID, Airline: "Indigo", Country: "India", Theme: "Hiring", Sentiment: models.SentimentPositive, Score: 0.8, Timestamp: now.Add(-time.Hour)},
		models.Insight{UserID: analyst.UserID, Airline: "Indigo", Country: "India", Theme: "Financial", Sentiment: models.SentimentNegative, Score: 0.2, Timestamp: now.Add(-3 * 24 * time.Hour)},
		models.Insight{UserID: "other", Airline: "Emirates", Country: "UAE", Theme: "Hiring", Sentiment: models.SentimentNeutral, Score: 0.5, Timestamp: now.Add(-30 * 24 * time.Hour)},
	)
	ctx := context.Background()
	doc, err := st.Load(ctx)
	require.NoError(t, err)
	doc.Alerts = []models.Alert{{ID: "a"}, {ID: "b", Acknowledged: true}}
	require.NoError(t, st.Save(ctx, doc))

	svc := NewDashboardService(st)
	svc.now = func() time.Time { return now }

	stats, err := svc.Stats(ctx, manager)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalInsights)
	assert.Equal(t, 1, stats.ActiveAlerts)
	assert.Equal(t, 2, stats.AirlinesMonitored)
	assert.Equal(t, 2, stats.CountriesCovered)
	assert.Equal(t, 1, stats.TodayInsights)
	assert.Equal(t, 2, stats.WeekInsights)
	assert.Equal(t, dto.SentimentBreakdown{Positive: 33, Neutral: 33, Negative: 33}, stats.SentimentBreakdown)
	assert.Equal(t, []dto.NameCount{{Name: "Indigo", Count: 2}, {Name: "Emirates", Count: 1}}, stats.TopAirlines)
	assert.Equal(t, "Hiring", stats.TopThemes[0].Name)
	assert.InDelta(t, 0.5, stats.AvgConfidence, 1e-9)

	own, err := svc.Stats(ctx, analyst)
	require.NoError(t, err)
	assert.Equal(t, 2, own.TotalInsights)
	assert.Equal(t, 1, own.AirlinesMonitored)
}

type fakeCompleter struct {
	configured bool
	content    string
	err        error
	calls      int
}

func (f *fakeCompleter) Configured() bool  { return f.configured }
func (f *fakeCompleter) ChatModel() string { return "fake-model" }
func (f *fakeCompleter) Complete(_ context.Context, msgs []llm.Message, _ llm.CompletionOptions) (string, error) {
	f.calls++
	return f.content, f.err
}

const analysisJSON = `{"summary":"Indigo is hiring 500 pilots for its new A320neo fleet.","keywords":["Indigo","pilot hiring"],` +
	`"themes":["Hiring"],"sentiment":{"overall":"Positive","score":0.85},"confidenceScore":0.9}`

func newAnalysis(fc *fakeCompleter) (*AnalysisService, store.Store) {
	st := store.NewMemoryStore(false)
	return NewAnalysisService(fc, catalog.Default(), NewInsightService(st, alerting.NewEngine(true))), st
}

func TestAnalyzePersistsInsightWithDetectedAirline(t *testing.T) {
	fc := &fakeCompleter{configured: true, content: analysisJSON}
	svc, st := newAnalysis(fc)
	ctx := context.Background()

	r, err := svc.Analyze(ctx, analyst, &dto.AnalyzeRequest{Transcription: "Indigo is hiring 500 pilots for the new A320neo fleet next year."})
	require.NoError(t, err)
	assert.Equal(t, "fake-model", r.ModelUsed)
	assert.Equal(t, []string{"Hiring"}, r.Themes)

	doc, err := st.Load(ctx)
	require.NoError(t, err)
	require.Len(t, doc.Insights, 1)
	in := doc.Insights[0]
	assert.Equal(t, "Indigo", in.Airline)
	assert.Equal(t, "India", in.Country)
	assert.Equal(t, analyst.UserID, in.UserID)
	assert.Equal(t, "Hiring", in.Theme)
	assert.Equal(t, "Indigo is hiring 500 pilots for its new A320neo fleet.", in.Analysis["summary"])
	require.Len(t, doc.Alerts, 1)
	assert.Equal(t, models.SeverityMedium, doc.Alerts[0].Severity)
}

func TestAnalyzeShortTranscriptWithoutContextIsNotStored(t *testing.T) {
	fc := &fakeCompleter{configured: true, content: analysisJSON}
	svc, st := newAnalysis(fc)
	ctx := context.Background()

	_, err := svc.Analyze(ctx, analyst, &dto.AnalyzeRequest{Transcription: "Pilots hired"})
	require.NoError(t, err)

	doc, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, doc.Insights)
}

func TestAnalyzeErrors(t *testing.T) {
	ctx := context.Background()

	svc, _ := newAnalysis(&fakeCompleter{configured: false})
	_, err := svc.Analyze(ctx, analyst, &dto.AnalyzeRequest{Transcription: "Indigo is hiring pilots"})
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, apperr.As(err).HTTPStatus())

	fc := &fakeCompleter{configured: true}
	svc, _ = newAnalysis(fc)
	_, err = svc.Analyze(ctx, analyst, &dto.AnalyzeRequest{Transcription: "  too short "})
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))
	assert.Zero(t, fc.calls)

	svc, _ = newAnalysis(&fakeCompleter{configured: true, err: &llm.ProviderError{Status: http.StatusUnauthorized}})
	_, err = svc.Analyze(ctx, analyst, &dto.AnalyzeRequest{Transcription: "Indigo is hiring pilots"})
	assert.Equal(t, http.StatusServiceUnavailable, apperr.As(err).HTTPStatus())
	assert.Equal(t, "Invalid OpenAI API key", apperr.As(err).Public())

	svc, st := newAnalysis(&fakeCompleter{configured: true, content: "I cannot help with that."})
	_, err = svc.Analyze(ctx, analyst, &dto.AnalyzeRequest{Transcription: "Indigo is hiring pilots across the network"})
	assert.Equal(t, "Failed to parse AI analysis", apperr.As(err).Public())
	doc, loadErr := st.Load(ctx)
	require.NoError(t, loadErr)
	assert.Empty(t, doc.Insights)
}

type fakeTranscriber struct {
	configured bool
	out        *llm.Transcription
	err        error
}

func (f *fakeTranscriber) Configured() bool { return f.configured }
func (f *fakeTranscriber) Transcribe(context.Context, llm.AudioInput) (*llm.Transcription, error) {
	return f.out, f.err
}

func TestTranscribeValidation(t *testing.T) {
	ctx := context.Background()
	ok := &fakeTranscriber{configured: true, out: &llm.Transcription{Text: "hello", Language: "en", Duration: 2.5, Confidence: 0.9, SegmentCount: 1}}
	svc := NewTranscriptionService(ok, 1)
	assert.Equal(t, int64(1<<20), svc.MaxBytes())

	resp, err := svc.Transcribe(ctx, llm.AudioInput{Filename: "a.webm", ContentType: "audio/webm", Data: []byte("abc")})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "hello", resp.Transcription)
	assert.Equal(t, 2.5, resp.Metadata.Duration)

	_, err = svc.Transcribe(ctx, llm.AudioInput{ContentType: "audio/webm"})
	assert.Equal(t, "Audio file is required", apperr.As(err).Public())

	_, err = svc.Transcribe(ctx, llm.AudioInput{ContentType: "video/mp4", Data: []byte("abc")})
	assert.Equal(t, "Invalid audio format. Supported: webm, mp3, wav, m4a, ogg", apperr.As(err).Public())

	_, err = svc.Transcribe(ctx, llm.AudioInput{ContentType: "audio/mpeg", Data: make([]byte, 2<<20)})
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))

	off := NewTranscriptionService(&fakeTranscriber{configured: false}, 25)
	_, err = off.Transcribe(ctx, llm.AudioInput{ContentType: "audio/webm", Data: []byte("abc")})
	assert.Equal(t, http.StatusServiceUnavailable, apperr.As(err).HTTPStatus())

	limited := NewTranscriptionService(&fakeTranscriber{configured: true, err: &llm.ProviderError{Status: http.StatusTooManyRequests}}, 25)
	_, err = limited.Transcribe(ctx, llm.AudioInput{ContentType: "audio/ogg", Data: []byte("abc")})
	assert.Equal(t, http.StatusTooManyRequests, apperr.As(err).HTTPStatus())
}

func TestSupportedAudio(t *testing.T) {
	for _, ct := range []string{"audio/webm", "audio/webm;codecs=opus", "audio/mpeg", "audio/wav", "audio/x-m4a", "audio/ogg"} {
		assert.True(t, SupportedAudio(ct), ct)
	}
	assert.False(t, SupportedAudio("application/pdf"))
	assert.False(t, SupportedAudio(""))
}
