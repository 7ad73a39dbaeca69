package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aerointel/aerointel-backend/internal/models"
)

func TestFileStoreCreatesSeededDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "db.json")
	st := NewFileStore(path)
	ctx := context.Background()

	doc, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, doc.Users)
	assert.Empty(t, doc.Insights)
	assert.Len(t, doc.Alerts, 6)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	assert.Equal(t, "[]", string(onDisk["users"]))
	assert.Contains(t, string(raw), "\n  \"alerts\"")
}

func TestFileStoreSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db.json")
	st := NewFileStore(path)
	ctx := context.Background()

	doc, err := st.Load(ctx)
	require.NoError(t, err)
	doc.Users = append(doc.Users, models.User{ID: "u1", Email: "a@example.com", Role: models.RoleAdmin, IsActive: true})
	doc.Insights = append(doc.Insights, models.Insight{ID: "i1", UserID: "u1", Keywords: []string{"Indigo"}, Timestamp: time.Now().UTC()})
	require.NoError(t, st.Save(ctx, doc))

	again, err := NewFileStore(path).Load(ctx)
	require.NoError(t, err)
	require.Len(t, again.Users, 1)
	assert.Equal(t, "a@example.com", again.Users[0].Email)
	assert.Equal(t, []string{"Indigo"}, again.Insights[0].Keywords)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStoreCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileStore(path).Load(context.Background())
	assert.ErrorContains(t, err, "failed to parse store")
}

func TestFileStoreUnwritableDirectory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	st := NewFileStore(filepath.Join(blocker, "db.json"))
	_, err := st.Load(context.Background())
	assert.Error(t, err)
	assert.Error(t, st.Ping(context.Background()))
}

func TestMemoryStoreIsolatesCallers(t *testing.T) {
	st := NewMemoryStore(true)
	ctx := context.Background()

	doc, err := st.Load(ctx)
	require.NoError(t, err)
	require.Len(t, doc.Alerts, 6)
	doc.Alerts[0].Acknowledged = true

	fresh, err := st.Load(ctx)
	require.NoError(t, err)
	assert.False(t, fresh.Alerts[0].Acknowledged)

	require.NoError(t, st.Save(ctx, doc))
	saved, err := st.Load(ctx)
	require.NoError(t, err)
	assert.True(t, saved.Alerts[0].Acknowledged)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = st.Load(cancelled)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSeedAlerts(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	alerts := SeedAlerts(now)
	require.Len(t, alerts, 6)

	ids := map[string]bool{}
	for _, a := range alerts {
		assert.True(t, a.Severity.Valid())
		assert.False(t, a.Acknowledged)
		assert.True(t, a.Timestamp.Before(now))
		assert.NotNil(t, a.RelatedInsightIDs)
		ids[a.ID] = true
	}
	assert.Len(t, ids, 6)
	assert.Equal(t, models.SeverityCritical, alerts[3].Severity)
	assert.True(t, alerts[3].ActionRequired)
}

func newSQLiteStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	st := NewGormStore(db)
	require.NoError(t, st.Migrate())
	return st
}

func TestGormStoreRoundTrip(t *testing.T) {
	st := newSQLiteStore(t)
	ctx := context.Background()
	assert.Equal(t, "sqlite", st.Name())
	require.NoError(t, st.Ping(ctx))

	doc, err := st.Load(ctx)
	require.NoError(t, err)
	require.Len(t, doc.Alerts, 6)

	ts := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)
	doc.Users = append(doc.Users, models.User{ID: "u1", Email: "a@example.com", PasswordHash: "h", Name: "A", Role: models.RoleAnalyst, CreatedAt: ts, IsActive: true})
	doc.Insights = append(doc.Insights, models.Insight{
		ID: "i1", UserID: "u1", Transcription: "t", Airline: "Indigo", Theme: "Hiring",
		Sentiment: models.SentimentPositive, Score: 0.8, Keywords: []string{"Indigo", "pilots"},
		Analysis: map[string]any{"summary": "hiring"}, Timestamp: ts,
	})
	doc.Alerts[0].Acknowledged = true
	ackID := doc.Alerts[0].ID
	dropped := doc.Alerts[5].ID
	doc.Alerts = doc.Alerts[:5]
	require.NoError(t, st.Save(ctx, doc))

	got, err := st.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Users, 1)
	require.Len(t, got.Insights, 1)
	require.Len(t, got.Alerts, 5)
	assert.Equal(t, []string{"Indigo", "pilots"}, got.Insights[0].Keywords)
	assert.Equal(t, "hiring", got.Insights[0].Analysis["summary"])
	for _, a := range got.Alerts {
		assert.NotEqual(t, dropped, a.ID)
		if a.ID == ackID {
			assert.True(t, a.Acknowledged)
		}
	}
}
