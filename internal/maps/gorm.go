package maps

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ShieldBattery/ShieldBattery-sub010/internal/engine"
)

const uniqueViolation = "23505"

// mapRecord is a row of the maps table. Force data is stored as JSON.
type mapRecord struct {
	Name      string `gorm:"primaryKey;size:255"`
	Hash      string `gorm:"size:64"`
	Data      string `gorm:"type:jsonb;not null"`
	CreatedAt time.Time
}

func (mapRecord) TableName() string { return "maps" }

type GormStore struct {
	db  *gorm.DB
	log *zap.Logger
}

// OpenGorm connects to postgres at dsn and migrates the maps table.
func OpenGorm(dsn string, log *zap.Logger) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&mapRecord{}); err != nil {
		return nil, fmt.Errorf("migrate maps: %w", err)
	}
	return NewGormStore(db, log), nil
}

func NewGormStore(db *gorm.DB, log *zap.Logger) *GormStore {
	return &GormStore{db: db, log: log}
}

// Seed inserts maps that are not stored yet.
func (s *GormStore) Seed(ctx context.Context, maps ...engine.Map) error {
	for _, m := range maps {
		if err := s.Put(ctx, m); err != nil && !errors.Is(err, ErrMapExists) {
			return err
		}
	}
	return nil
}

func (s *GormStore) Get(ctx context.Context, name string) (engine.Map, error) {
	var rec mapRecord
	err := s.db.WithContext(ctx).First(&rec, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return engine.Map{}, ErrMapNotFound
		}
		return engine.Map{}, err
	}
	return fromRecord(rec)
}

func (s *GormStore) Put(ctx context.Context, m engine.Map) error {
	if err := validate(m); err != nil {
		return err
	}
	rec, err := toRecord(m)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrMapExists
		}
		return err
	}
	s.log.Info("map stored", zap.String("map", m.Name))
	return nil
}

func (s *GormStore) List(ctx context.Context) ([]engine.Map, error) {
	var recs []mapRecord
	if err := s.db.WithContext(ctx).Order("name").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]engine.Map, 0, len(recs))
	for _, rec := range recs {
		m, err := fromRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func toRecord(m engine.Map) (mapRecord, error) {
	data, err := json.Marshal(m.Data)
	if err != nil {
		return mapRecord{}, fmt.Errorf("encode map data: %w", err)
	}
	return mapRecord{Name: m.Name, Hash: m.Hash, Data: string(data)}, nil
}

func fromRecord(rec mapRecord) (engine.Map, error) {
	m := engine.Map{Name: rec.Name, Hash: rec.Hash}
	if rec.Data != "" {
		if err := json.Unmarshal([]byte(rec.Data), &m.Data); err != nil {
			return engine.Map{}, fmt.Errorf("decode map %q: %w", rec.Name, err)
		}
	}
	return m, nil
}

func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
