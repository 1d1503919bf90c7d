// Package store persists diagrams, keyed by integer id, in a SQLite
// database.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var ErrNotFound = errors.New("diagram not found")

// Diagram is a titled, serialised graph.
type Diagram struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null;default:''" json:"title"`
	Model     string    `gorm:"type:text;not null" json:"model"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Store struct {
	db *gorm.DB
}

// Open opens or creates the database at path and migrates the schema.
// ":memory:" gives a private in-memory database.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.New(gormWriter{}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := db.AutoMigrate(&Diagram{}); err != nil {
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	Logger().Debug("store opened", "path", path)
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// All returns every diagram ordered by id.
func (s *Store) All(ctx context.Context) ([]Diagram, error) {
	var out []Diagram
	if err := s.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list diagrams: %w", err)
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, id int) (Diagram, error) {
	var d Diagram
	err := s.db.WithContext(ctx).First(&d, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Diagram{}, fmt.Errorf("diagram %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Diagram{}, fmt.Errorf("get diagram %d: %w", id, err)
	}
	return d, nil
}

// Upsert inserts d or replaces the title and model of the diagram with the
// same id. A zero id allocates a new one, written back into d.
func (s *Store) Upsert(ctx context.Context, d *Diagram) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "model", "updated_at"}),
	}).Create(d).Error
	if err != nil {
		return fmt.Errorf("save diagram %d: %w", d.ID, err)
	}
	Logger().Debug("diagram saved", "id", d.ID, "title", d.Title)
	return nil
}

func (s *Store) Delete(ctx context.Context, id int) error {
	res := s.db.WithContext(ctx).Delete(&Diagram{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete diagram %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("diagram %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteAll removes every diagram.
func (s *Store) DeleteAll(ctx context.Context) error {
	err := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Diagram{}).Error
	if err != nil {
		return fmt.Errorf("delete all diagrams: %w", err)
	}
	return nil
}
