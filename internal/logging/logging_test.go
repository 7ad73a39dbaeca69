package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aerointel/aerointel-backend/internal/models"
)

func openLogDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "logs.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SystemLog{}))
	return db
}

func TestDBHandlerPersistsErrorRecords(t *testing.T) {
	db := openLogDB(t)
	h := NewDBHandler(db)
	t.Cleanup(h.Stop)

	log := slog.New(h).With("request_id", "req-1")
	log.Info("ignored")
	log.Error("request failed", "method", "POST", "path", "/api/analyze", "user_id", "u1",
		"error", errors.New("boom"), "status", 500)
	h.Flush()

	var rows []models.SystemLog
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "ERROR", row.Level)
	assert.Equal(t, "request failed", row.Message)
	assert.Equal(t, "req-1", row.RequestID)
	assert.Equal(t, "POST", row.Method)
	assert.Equal(t, "/api/analyze", row.Path)
	assert.Equal(t, "boom", row.Error)
	require.NotNil(t, row.UserID)
	assert.Equal(t, "u1", *row.UserID)

	var extra map[string]any
	require.NoError(t, json.Unmarshal(row.Extra, &extra))
	assert.EqualValues(t, 500, extra["status"])
}

func TestPurgeOlderThan(t *testing.T) {
	db := openLogDB(t)
	now := time.Now().UTC()
	require.NoError(t, db.Create(&[]models.SystemLog{
		{ID: uuid.New(), Timestamp: now.Add(-40 * 24 * time.Hour), Level: "ERROR"},
		{ID: uuid.New(), Timestamp: now.Add(-time.Hour), Level: "ERROR"},
	}).Error)

	assert.Equal(t, int64(1), PurgeOlderThan(db, now.Add(-30*24*time.Hour)))

	var count int64
	require.NoError(t, db.Model(&models.SystemLog{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestTeeFansOut(t *testing.T) {
	var a, b bytes.Buffer
	tee := NewTee(
		slog.NewJSONHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	log := slog.New(tee).With("component", "test")

	assert.True(t, tee.Enabled(context.Background(), slog.LevelInfo))
	log.Info("hello")
	log.Error("bad")

	assert.Contains(t, a.String(), `"msg":"hello"`)
	assert.Contains(t, a.String(), `"component":"test"`)
	assert.NotContains(t, b.String(), "hello")
	assert.Contains(t, b.String(), `"msg":"bad"`)
}
