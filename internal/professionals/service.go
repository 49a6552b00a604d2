package professionals

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prodexlabs/prodex-backend/pkg/db/models"
	"github.com/prodexlabs/prodex-backend/pkg/enums"
	pkgerrors "github.com/prodexlabs/prodex-backend/pkg/errors"
	"github.com/prodexlabs/prodex-backend/pkg/metrics"
)

// professionalStore is the persistence surface the service depends on.
type professionalStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Professional, error)
	FindByPhone(ctx context.Context, phone string) (*models.Professional, error)
	Insert(ctx context.Context, record *models.Professional) error
	Replace(ctx context.Context, record *models.Professional) error
	List(ctx context.Context, source string) ([]models.Professional, error)
}

// Service exposes professional directory operations.
type Service interface {
	List(ctx context.Context, source string) ([]ProfessionalDTO, error)
	Create(ctx context.Context, raw json.RawMessage) (*ProfessionalDTO, error)
	BulkUpsert(ctx context.Context, items []json.RawMessage) (*BatchResult, error)
}

type service struct {
	repo    professionalStore
	metrics *metrics.UpsertMetrics
}

// NewService constructs a professional service instance.
func NewService(repo *Repository, upsertMetrics *metrics.UpsertMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("professional repository required")
	}
	return &service{repo: repo, metrics: upsertMetrics}, nil
}

// List returns every stored professional newest first, optionally filtered
// by source. Unrecognized filter values yield an empty list, not an error.
func (s *service) List(ctx context.Context, source string) ([]ProfessionalDTO, error) {
	if source != "" && !enums.ProfessionalSource(source).IsValid() {
		return []ProfessionalDTO{}, nil
	}
	rows, err := s.repo.List(ctx, source)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list professionals")
	}
	dtos := make([]ProfessionalDTO, len(rows))
	for i := range rows {
		dtos[i] = NewProfessionalDTO(&rows[i])
	}
	return dtos, nil
}

// Create validates and inserts one professional. Unlike the bulk path it
// enforces email and phone uniqueness up front so duplicates surface as
// field errors rather than write conflicts.
func (s *service) Create(ctx context.Context, raw json.RawMessage) (*ProfessionalDTO, error) {
	record, fieldErrs := ValidateRecord(raw)
	if fieldErrs != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(fieldErrs)
	}

	fieldErrs = FieldErrors{}
	if record.Email != nil {
		existing, err := s.repo.FindByEmail(ctx, *record.Email)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find professional by email")
		}
		if existing != nil {
			fieldErrs.add("email", "a professional with this email already exists")
		}
	}
	existing, err := s.repo.FindByPhone(ctx, record.Phone)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find professional by phone")
	}
	if existing != nil {
		fieldErrs.add("phone", "a professional with this phone already exists")
	}
	if len(fieldErrs) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(fieldErrs)
	}

	model := newModel(record)
	if err := s.repo.Insert(ctx, model); err != nil {
		// A conflict here lost a race with a concurrent write.
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeConflict {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert professional")
	}

	dto := NewProfessionalDTO(model)
	return &dto, nil
}

// BulkUpsert runs the validate, resolve, write pipeline over the submitted
// items strictly in order and buckets each outcome by its original index.
// Record-level failures never abort the batch; the returned error is
// reserved for storage being unreachable.
func (s *service) BulkUpsert(ctx context.Context, items []json.RawMessage) (*BatchResult, error) {
	start := time.Now()
	result := NewBatchResult()

	for idx, raw := range items {
		record, fieldErrs := ValidateRecord(raw)
		if fieldErrs != nil {
			result.Errors = append(result.Errors, BatchError{Index: idx, Data: raw, Errors: fieldErrs})
			continue
		}

		var existing *models.Professional
		var err error
		switch {
		case record.Email == nil && record.Phone == "":
			// Unreachable while the validator requires phone; kept as a
			// guard so a future relaxation cannot skip identity resolution.
			result.Errors = append(result.Errors, BatchError{
				Index:  idx,
				Data:   raw,
				Errors: nonFieldErrors("either email or phone is required"),
			})
			continue
		case record.Email != nil:
			existing, err = s.repo.FindByEmail(ctx, *record.Email)
		default:
			existing, err = s.repo.FindByPhone(ctx, record.Phone)
		}
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find professional")
		}

		if existing == nil {
			model := newModel(record)
			if err := s.repo.Insert(ctx, model); err != nil {
				if violation, ok := conflictErrors(err); ok {
					result.Errors = append(result.Errors, BatchError{Index: idx, Data: raw, Errors: violation})
					continue
				}
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert professional")
			}
			result.Created = append(result.Created, BatchOutcome{Index: idx, Professional: NewProfessionalDTO(model)})
			continue
		}

		applyRecord(existing, record)
		if err := s.repo.Replace(ctx, existing); err != nil {
			if violation, ok := conflictErrors(err); ok {
				result.Errors = append(result.Errors, BatchError{Index: idx, Data: raw, Errors: violation})
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace professional")
		}
		result.Updated = append(result.Updated, BatchOutcome{Index: idx, Professional: NewProfessionalDTO(existing)})
	}

	s.metrics.ObserveBatch(time.Since(start), len(items))
	s.metrics.AddOutcomes(len(result.Created), len(result.Updated), len(result.Errors))
	return result, nil
}

// conflictErrors converts a CONFLICT-coded write error into the non_field
// error set carrying the driver's violation description.
func conflictErrors(err error) (FieldErrors, bool) {
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		return nil, false
	}
	return nonFieldErrors(typed.Cause().Error()), true
}

// applyRecord overwrites every normalized field onto the stored record.
// Whole-record replace: validator defaults overwrite too. ID and created_at
// stay untouched.
func applyRecord(target *models.Professional, record *NormalizedRecord) {
	target.FullName = record.FullName
	target.Email = record.Email
	target.Phone = record.Phone
	target.CompanyName = record.CompanyName
	target.JobTitle = record.JobTitle
	target.Source = record.Source.String()
}

func newModel(record *NormalizedRecord) *models.Professional {
	return &models.Professional{
		FullName:    record.FullName,
		Email:       record.Email,
		Phone:       record.Phone,
		CompanyName: record.CompanyName,
		JobTitle:    record.JobTitle,
		Source:      record.Source.String(),
	}
}
