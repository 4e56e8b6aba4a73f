package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bettermespace/backend/internal/catalog"
	"github.com/bettermespace/backend/internal/dto"
	"github.com/bettermespace/backend/internal/models"
	"github.com/bettermespace/backend/internal/scoring"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrNoAnswers          = errors.New("no answers provided")
	ErrRecordNotFound     = errors.New("record not found")
)

// SubmissionService scores submitted answers and persists the result.
type SubmissionService struct {
	db      *gorm.DB
	catalog *catalog.Registry
}

func NewSubmissionService(db *gorm.DB, registry *catalog.Registry) *SubmissionService {
	return &SubmissionService{db: db, catalog: registry}
}

// Submit scores the answers, writes an immutable record and folds the score
// into the per-assessment aggregate. userID is nil for anonymous callers.
func (s *SubmissionService) Submit(assessmentID string, userID *uuid.UUID, req *dto.SubmitRequest) (*dto.SubmitResponse, error) {
	assessment, ok := s.catalog.Get(assessmentID)
	if !ok {
		return nil, ErrAssessmentNotFound
	}
	if len(req.Answers) == 0 {
		return nil, ErrNoAnswers
	}

	score := scoring.Score(assessment, req.Answers)
	bucket := chooseBucket(assessment, score)

	answersJSON, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize answers: %w", err)
	}

	record := models.AssessmentRecord{
		ID:           uuid.New(),
		UserID:       userID,
		AssessmentID: assessmentID,
		Answers:      datatypes.JSON(answersJSON),
		Score:        score,
		Duration:     req.Duration,
	}
	if bucket != nil {
		record.ResultID = &bucket.ID
	}

	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to save record: %w", err)
	}

	// Independent write; a failure here leaves the aggregate slightly behind
	// the record log, which is acceptable staleness.
	if err := s.upsertStat(assessmentID, score); err != nil {
		slog.Error("failed to update assessment stats",
			"assessment_id", assessmentID, "error", err)
	}

	return &dto.SubmitResponse{
		RecordID: record.ID,
		Score:    score,
		Result:   resultView(bucket),
	}, nil
}

// chooseBucket resolves score against the bucket table, falling back to the
// first declared bucket when no range matches. The catalog validator makes
// the fallback unreachable for data that passes load; it covers bucket
// tables edited outside validation.
func chooseBucket(a *catalog.Assessment, score int) *catalog.ResultBucket {
	if b := scoring.Resolve(a, score); b != nil {
		return b
	}
	if len(a.Results) > 0 {
		return &a.Results[0]
	}
	return nil
}

// upsertStat merges one score into the running aggregate with a single
// atomic INSERT ... ON CONFLICT DO UPDATE.
func (s *SubmissionService) upsertStat(assessmentID string, score int) error {
	stat := models.AssessmentStat{
		AssessmentID: assessmentID,
		TotalCount:   1,
		AvgScore:     float64(score),
		UpdatedAt:    time.Now(),
	}
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "assessment_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"avg_score": gorm.Expr(
				"(assessment_stats.avg_score * assessment_stats.total_count + ?) / (assessment_stats.total_count + 1)",
				score,
			),
			"total_count": gorm.Expr("assessment_stats.total_count + 1"),
			"updated_at":  time.Now(),
		}),
	}).Create(&stat).Error
}

// GetRecord loads one submission and joins it against the catalog's bucket
// table. A record with no resolvable bucket returns a nil result, which the
// caller renders as a valid "no result" outcome.
func (s *SubmissionService) GetRecord(recordID uuid.UUID) (*dto.RecordDetailResponse, error) {
	var record models.AssessmentRecord
	if err := s.db.First(&record, "id = ?", recordID).Error; err != nil {
		return nil, ErrRecordNotFound
	}

	var bucket *catalog.ResultBucket
	if assessment, ok := s.catalog.Get(record.AssessmentID); ok {
		if record.ResultID != nil {
			bucket = findBucket(assessment, *record.ResultID)
		}
		if bucket == nil {
			bucket = scoring.Resolve(assessment, record.Score)
		}
	}

	return &dto.RecordDetailResponse{
		Record: s.recordView(&record),
		Result: resultView(bucket),
	}, nil
}

// ListUserRecords returns the caller's submissions, most recent first.
func (s *SubmissionService) ListUserRecords(userID uuid.UUID) ([]dto.RecordView, error) {
	var records []models.AssessmentRecord
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	views := make([]dto.RecordView, 0, len(records))
	for i := range records {
		views = append(views, s.recordView(&records[i]))
	}
	return views, nil
}

func (s *SubmissionService) recordView(r *models.AssessmentRecord) dto.RecordView {
	view := dto.RecordView{
		ID:           r.ID,
		AssessmentID: r.AssessmentID,
		Score:        r.Score,
		CreatedAt:    r.CreatedAt,
	}
	if assessment, ok := s.catalog.Get(r.AssessmentID); ok {
		view.AssessmentTitle = assessment.Title
	}
	return view
}

func findBucket(a *catalog.Assessment, bucketID string) *catalog.ResultBucket {
	for i := range a.Results {
		if a.Results[i].ID == bucketID {
			return &a.Results[i]
		}
	}
	return nil
}

func resultView(b *catalog.ResultBucket) *dto.ResultView {
	if b == nil {
		return nil
	}
	return &dto.ResultView{
		Title:       b.Title,
		Description: b.Description,
		Tags:        b.Tags,
	}
}
