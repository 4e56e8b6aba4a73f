package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AssessmentRecord is one scored submission. Rows are written once and never
// updated or deleted; UserID is nil for anonymous submissions.
type AssessmentRecord struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       *uuid.UUID     `gorm:"type:uuid;index" json:"user_id,omitempty"`
	AssessmentID string         `gorm:"size:100;not null;index" json:"assessment_id"`
	Answers      datatypes.JSON `gorm:"type:jsonb" json:"answers"`
	Score        int            `gorm:"not null" json:"score"`
	ResultID     *string        `gorm:"size:50" json:"result_id,omitempty"`
	Duration     *int           `json:"duration,omitempty"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
}
