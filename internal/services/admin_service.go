package services

import (
	"fmt"

	"github.com/bettermespace/backend/internal/catalog"
	"github.com/bettermespace/backend/internal/dto"
	"github.com/bettermespace/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const adminListLimit = 100

// AdminService serves the read-only dashboard queries.
type AdminService struct {
	db      *gorm.DB
	catalog *catalog.Registry
}

func NewAdminService(db *gorm.DB, registry *catalog.Registry) *AdminService {
	return &AdminService{db: db, catalog: registry}
}

func (s *AdminService) Stats() (*dto.StatsResponse, error) {
	stats := &dto.StatsResponse{}

	if err := s.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if err := s.db.Model(&models.AssessmentRecord{}).Count(&stats.TotalRecords).Error; err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}
	if err := s.db.Model(&models.User{}).
		Where("created_at >= CURRENT_DATE").
		Count(&stats.TodayUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count today's users: %w", err)
	}
	if err := s.db.Model(&models.AssessmentRecord{}).
		Where("created_at >= CURRENT_DATE").
		Count(&stats.TodayRecords).Error; err != nil {
		return nil, fmt.Errorf("failed to count today's records: %w", err)
	}

	var rows []models.AssessmentStat
	if err := s.db.Order("assessment_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load assessment stats: %w", err)
	}
	for _, row := range rows {
		view := dto.AssessmentStatView{
			AssessmentID: row.AssessmentID,
			TotalCount:   row.TotalCount,
			AvgScore:     row.AvgScore,
			UpdatedAt:    row.UpdatedAt,
		}
		if a, ok := s.catalog.Get(row.AssessmentID); ok {
			view.Title = a.Title
		}
		stats.Assessments = append(stats.Assessments, view)
	}
	return stats, nil
}

func (s *AdminService) Users() ([]dto.AdminUserView, error) {
	var users []models.User
	if err := s.db.Order("created_at DESC").Limit(adminListLimit).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	views := make([]dto.AdminUserView, 0, len(users))
	for i := range users {
		u := &users[i]
		views = append(views, dto.AdminUserView{
			ID:        u.ID,
			Account:   u.Account(),
			Nickname:  u.Nickname,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		})
	}
	return views, nil
}

func (s *AdminService) Records() ([]dto.AdminRecordView, error) {
	var records []models.AssessmentRecord
	if err := s.db.Order("created_at DESC").Limit(adminListLimit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	accounts, err := s.accountsFor(records)
	if err != nil {
		return nil, err
	}

	views := make([]dto.AdminRecordView, 0, len(records))
	for i := range records {
		r := &records[i]
		view := dto.AdminRecordView{
			ID:           r.ID,
			AssessmentID: r.AssessmentID,
			Score:        r.Score,
			ResultID:     r.ResultID,
			CreatedAt:    r.CreatedAt,
		}
		if a, ok := s.catalog.Get(r.AssessmentID); ok {
			view.AssessmentTitle = a.Title
		}
		if r.UserID != nil {
			if account, ok := accounts[*r.UserID]; ok {
				view.Account = &account
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *AdminService) accountsFor(records []models.AssessmentRecord) (map[uuid.UUID]string, error) {
	ids := make([]uuid.UUID, 0, len(records))
	seen := make(map[uuid.UUID]bool)
	for i := range records {
		if id := records[i].UserID; id != nil && !seen[*id] {
			seen[*id] = true
			ids = append(ids, *id)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var users []models.User
	if err := s.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to load record owners: %w", err)
	}
	accounts := make(map[uuid.UUID]string, len(users))
	for i := range users {
		accounts[users[i].ID] = users[i].Account()
	}
	return accounts, nil
}
