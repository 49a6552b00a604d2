package professionals

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/prodexlabs/prodex-backend/pkg/db/models"
)

// ProfessionalDTO is the public representation returned by every endpoint.
type ProfessionalDTO struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	Email       *string   `json:"email"`
	Phone       string    `json:"phone"`
	CompanyName string    `json:"company_name"`
	JobTitle    string    `json:"job_title"`
	Source      string    `json:"source"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewProfessionalDTO builds a DTO from the persisted model.
func NewProfessionalDTO(record *models.Professional) ProfessionalDTO {
	return ProfessionalDTO{
		ID:          record.ID,
		FullName:    record.FullName,
		Email:       record.Email,
		Phone:       record.Phone,
		CompanyName: record.CompanyName,
		JobTitle:    record.JobTitle,
		Source:      record.Source,
		CreatedAt:   record.CreatedAt,
	}
}

// BatchResult aggregates one bulk upsert call into its three outcome buckets.
type BatchResult struct {
	Created []BatchOutcome `json:"created"`
	Updated []BatchOutcome `json:"updated"`
	Errors  []BatchError   `json:"errors"`
}

// BatchOutcome ties a written record back to its zero-based submission index.
type BatchOutcome struct {
	Index        int             `json:"index"`
	Professional ProfessionalDTO `json:"professional"`
}

// BatchError carries the untouched input item alongside its failure reasons.
type BatchError struct {
	Index  int             `json:"index"`
	Data   json.RawMessage `json:"data"`
	Errors FieldErrors     `json:"errors"`
}

// NewBatchResult returns a result whose buckets marshal as [], never null.
func NewBatchResult() *BatchResult {
	return &BatchResult{
		Created: []BatchOutcome{},
		Updated: []BatchOutcome{},
		Errors:  []BatchError{},
	}
}
