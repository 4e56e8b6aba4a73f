package dto

import (
	"time"

	"github.com/google/uuid"
)

type AssessmentStatView struct {
	AssessmentID string    `json:"assessment_id"`
	Title        string    `json:"title,omitempty"`
	TotalCount   int64     `json:"total_count"`
	AvgScore     float64   `json:"avg_score"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type StatsResponse struct {
	TotalUsers   int64                `json:"total_users"`
	TotalRecords int64                `json:"total_records"`
	TodayUsers   int64                `json:"today_users"`
	TodayRecords int64                `json:"today_records"`
	Assessments  []AssessmentStatView `json:"assessments"`
}

type AdminUserView struct {
	ID        uuid.UUID `json:"id"`
	Account   string    `json:"account"`
	Nickname  *string   `json:"nickname,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type AdminRecordView struct {
	ID              uuid.UUID `json:"id"`
	Account         *string   `json:"account,omitempty"`
	AssessmentID    string    `json:"assessment_id"`
	AssessmentTitle string    `json:"assessment_title,omitempty"`
	Score           int       `json:"score"`
	ResultID        *string   `json:"result_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
