package professionals

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prodexlabs/prodex-backend/pkg/db"
	"github.com/prodexlabs/prodex-backend/pkg/db/models"
	pkgerrors "github.com/prodexlabs/prodex-backend/pkg/errors"
)

// Repository wires professional persistence to GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(gdb *gorm.DB) *Repository {
	return &Repository{db: gdb}
}

// FindByEmail returns the record with the exact email, or nil when no record
// matches.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Professional, error) {
	var record models.Professional
	err := r.db.WithContext(ctx).First(&record, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByPhone mirrors FindByEmail for the phone identifier.
func (r *Repository) FindByPhone(ctx context.Context, phone string) (*models.Professional, error) {
	var record models.Professional
	err := r.db.WithContext(ctx).First(&record, "phone = ?", phone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Insert persists a new professional. Unique index violations come back
// CONFLICT-coded with the driver error as cause.
func (r *Repository) Insert(ctx context.Context, record *models.Professional) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "insert professional")
		}
		return err
	}
	return nil
}

// Replace persists every column of an existing professional, id and
// created_at included, as a single full-row write.
func (r *Repository) Replace(ctx context.Context, record *models.Professional) error {
	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "replace professional")
		}
		return err
	}
	return nil
}

// List returns professionals newest first. A non-empty source filters to
// exact matches; unknown values simply match nothing.
func (r *Repository) List(ctx context.Context, source string) ([]models.Professional, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if source != "" {
		query = query.Where("source = ?", source)
	}
	var rows []models.Professional
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
