package dto

import (
	"time"

	"github.com/google/uuid"
)

type SubmitRequest struct {
	Answers  map[string]any `json:"answers"`
	Duration *int           `json:"duration,omitempty"`
}

// ResultView is the displayable part of a resolved result bucket.
type ResultView struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
}

type SubmitResponse struct {
	RecordID uuid.UUID   `json:"record_id"`
	Score    int         `json:"score"`
	Result   *ResultView `json:"result"`
}

type RecordView struct {
	ID              uuid.UUID `json:"id"`
	AssessmentID    string    `json:"assessment_id"`
	AssessmentTitle string    `json:"assessment_title,omitempty"`
	Score           int       `json:"score"`
	CreatedAt       time.Time `json:"created_at"`
}

type RecordDetailResponse struct {
	Record RecordView  `json:"record"`
	Result *ResultView `json:"result"`
}

type RecordListResponse struct {
	Records []RecordView `json:"records"`
}
