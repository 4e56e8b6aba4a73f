package models

import "time"

// AssessmentStat keeps a running count and mean score per assessment.
// Updated with an atomic ON CONFLICT merge so concurrent submissions never
// lose increments.
type AssessmentStat struct {
	AssessmentID string    `gorm:"size:100;primaryKey" json:"assessment_id"`
	TotalCount   int64     `gorm:"not null;default:0" json:"total_count"`
	AvgScore     float64   `gorm:"not null;default:0" json:"avg_score"`
	UpdatedAt    time.Time `json:"updated_at"`
}
