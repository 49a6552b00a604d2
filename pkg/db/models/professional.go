package models

import (
	"time"

	"github.com/google/uuid"
)

// Professional is a contact record sourced from one of the intake channels.
// Email is nullable so records without one never collide on the unique index;
// phone is the fallback identity and always present.
type Professional struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	FullName    string    `gorm:"column:full_name;type:varchar(255);not null"`
	Email       *string   `gorm:"column:email;type:varchar(254);uniqueIndex:idx_professionals_email"`
	Phone       string    `gorm:"column:phone;type:varchar(20);not null;uniqueIndex:idx_professionals_phone"`
	CompanyName string    `gorm:"column:company_name;type:varchar(255);not null;default:''"`
	JobTitle    string    `gorm:"column:job_title;type:varchar(255);not null;default:''"`
	Source      string    `gorm:"column:source;type:varchar(16);not null;index:idx_professionals_source"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}
