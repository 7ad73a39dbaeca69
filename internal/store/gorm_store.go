package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aerointel/aerointel-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps the document in three relational tables. Save replaces the
// table contents with the document inside a single transaction.
type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, now: time.Now}
}

func (s *GormStore) Name() string { return s.db.Dialector.Name() }

// Migrate creates or updates the document tables.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(&models.User{}, &models.Insight{}, &models.Alert{})
}

func (s *GormStore) Load(ctx context.Context) (*Document, error) {
	db := s.db.WithContext(ctx)
	doc := &Document{}

	if err := db.Order("created_at ASC").Find(&doc.Users).Error; err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	if err := db.Order("timestamp ASC").Find(&doc.Insights).Error; err != nil {
		return nil, fmt.Errorf("failed to load insights: %w", err)
	}
	if err := db.Order("timestamp ASC").Find(&doc.Alerts).Error; err != nil {
		return nil, fmt.Errorf("failed to load alerts: %w", err)
	}
	doc.normalize()

	if len(doc.Users) == 0 && len(doc.Insights) == 0 && len(doc.Alerts) == 0 {
		doc = newDocument(s.now())
		if err := s.Save(ctx, doc); err != nil {
			return nil, fmt.Errorf("failed to initialize store: %w", err)
		}
	}
	return doc, nil
}

func (s *GormStore) Save(ctx context.Context, doc *Document) error {
	doc.normalize()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userIDs := make([]string, 0, len(doc.Users))
		for _, u := range doc.Users {
			userIDs = append(userIDs, u.ID)
		}
		if err := replaceRows(tx, &models.User{}, doc.Users, userIDs); err != nil {
			return fmt.Errorf("failed to save users: %w", err)
		}

		insightIDs := make([]string, 0, len(doc.Insights))
		for _, i := range doc.Insights {
			insightIDs = append(insightIDs, i.ID)
		}
		if err := replaceRows(tx, &models.Insight{}, doc.Insights, insightIDs); err != nil {
			return fmt.Errorf("failed to save insights: %w", err)
		}

		alertIDs := make([]string, 0, len(doc.Alerts))
		for _, a := range doc.Alerts {
			alertIDs = append(alertIDs, a.ID)
		}
		if err := replaceRows(tx, &models.Alert{}, doc.Alerts, alertIDs); err != nil {
			return fmt.Errorf("failed to save alerts: %w", err)
		}
		return nil
	})
}

func replaceRows[T any](tx *gorm.DB, model any, rows []T, ids []string) error {
	del := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
	if len(ids) > 0 {
		del = del.Where("id NOT IN ?", ids)
	}
	if err := del.Delete(model).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).CreateInBatches(rows, 100).Error
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	if sqlDB == nil {
		return errors.New("database not initialized")
	}
	return sqlDB.PingContext(ctx)
}
