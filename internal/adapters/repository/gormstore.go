package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hrkey/refcore/internal/domain/model"
)

// referenceRow is the SQLite row for a validated reference. The scalar
// columns are denormalized for filtering; Record carries the full document.
type referenceRow struct {
	ID            string `gorm:"primaryKey"`
	OwnerID       string `gorm:"index"`
	ReferrerEmail string
	Status        string `gorm:"index"`
	FraudScore    int
	Record        datatypes.JSON
	CreatedAt     time.Time
}

func (referenceRow) TableName() string { return "validated_references" }

func (EvaluationSnapshot) TableName() string { return "evaluation_snapshots" }

// GormStore implements ReferenceStore and EvaluationStore over SQLite.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens (or creates) the database at dbPath and migrates the
// schema. ":memory:" is accepted for tests.
func NewGormStore(dbPath string) (*GormStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dbPath != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	// TranslateError maps driver unique-constraint failures onto
	// gorm.ErrDuplicatedKey so append-only inserts can report duplicates.
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.AutoMigrate(&referenceRow{}, &EvaluationSnapshot{}); err != nil {
		return nil, fmt.Errorf("auto migrate models: %w", err)
	}

	return &GormStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}
	return nil
}

// SaveValidated appends a validated reference. Inserts only: an existing ID
// is reported as ErrDuplicateID rather than overwritten.
func (s *GormStore) SaveValidated(ctx context.Context, rec *model.ValidatedReference) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	row := referenceRow{
		ID:            rec.ID,
		OwnerID:       rec.OwnerID,
		ReferrerEmail: rec.ReferrerEmail,
		Status:        string(rec.ValidationStatus),
		FraudScore:    rec.FraudScore,
		Record:        datatypes.JSON(doc),
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", ErrDuplicateID, rec.ID)
		}
		return fmt.Errorf("insert reference: %w", err)
	}
	return nil
}

// ListByOwner returns the candidate's references in insertion order.
func (s *GormStore) ListByOwner(ctx context.Context, ownerID string) ([]*model.ValidatedReference, error) {
	var rows []referenceRow
	if err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}

	recs := make([]*model.ValidatedReference, 0, len(rows))
	for _, row := range rows {
		var rec model.ValidatedReference
		if err := json.Unmarshal(row.Record, &rec); err != nil {
			return nil, fmt.Errorf("decode reference %s: %w", row.ID, err)
		}
		recs = append(recs, &rec)
	}
	return recs, nil
}

// CountByOwner returns the number of references stored for a candidate.
func (s *GormStore) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&referenceRow{}).
		Where("owner_id = ?", ownerID).
		Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count references: %w", err)
	}
	return total, nil
}

// CountOwners returns the number of distinct candidates with references.
func (s *GormStore) CountOwners(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&referenceRow{}).
		Distinct("owner_id").
		Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count owners: %w", err)
	}
	return total, nil
}

// Owners returns the distinct candidate IDs with stored references.
func (s *GormStore) Owners(ctx context.Context) ([]string, error) {
	var owners []string
	if err := s.db.WithContext(ctx).Model(&referenceRow{}).
		Distinct().
		Order("owner_id ASC").
		Pluck("owner_id", &owners).Error; err != nil {
		return nil, fmt.Errorf("list owners: %w", err)
	}
	return owners, nil
}

// SaveSnapshot appends an evaluation snapshot.
func (s *GormStore) SaveSnapshot(ctx context.Context, snap *EvaluationSnapshot) error {
	if snap.ID == "" {
		return fmt.Errorf("%w: empty snapshot id", ErrInvalidRecord)
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(snap).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", ErrDuplicateID, snap.ID)
		}
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// LatestSnapshot returns the newest snapshot for a candidate.
func (s *GormStore) LatestSnapshot(ctx context.Context, ownerID string) (*EvaluationSnapshot, error) {
	var snap EvaluationSnapshot
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		First(&snap).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, ownerID)
		}
		return nil, fmt.Errorf("latest snapshot: %w", err)
	}
	return &snap, nil
}

// LatestSnapshots returns the most recent snapshot per candidate.
func (s *GormStore) LatestSnapshots(ctx context.Context) ([]*EvaluationSnapshot, error) {
	sub := s.db.Model(&EvaluationSnapshot{}).
		Select("owner_id, MAX(created_at) AS max_created_at").
		Group("owner_id")

	var snaps []*EvaluationSnapshot
	if err := s.db.WithContext(ctx).Model(&EvaluationSnapshot{}).
		Joins("JOIN (?) latest ON evaluation_snapshots.owner_id = latest.owner_id AND evaluation_snapshots.created_at = latest.max_created_at", sub).
		Find(&snaps).Error; err != nil {
		return nil, fmt.Errorf("latest snapshots: %w", err)
	}
	return snaps, nil
}

// CountSnapshots returns the total number of stored snapshots.
func (s *GormStore) CountSnapshots(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&EvaluationSnapshot{}).
		Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count snapshots: %w", err)
	}
	return total, nil
}
