package repository

import (
	"fmt"

	"gorm.io/gorm"

	"interview-navigator/internal/model"
)

type ReportRepository interface {
	ListByUser(userID uint, page, pageSize int) ([]model.PerformanceReport, int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// ListByUser returns one page of the user's reports, newest first, reached
// through CV ownership. Report creation happens inside the session completion
// transaction, not here.
func (r *reportRepository) ListByUser(userID uint, page, pageSize int) ([]model.PerformanceReport, int64, error) {
	var total int64
	err := r.db.Model(&model.PerformanceReport{}).
		Joins("JOIN cvs ON cvs.id = performance_reports.cv_id").
		Where("cvs.user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	var reports []model.PerformanceReport
	err = r.db.Model(&model.PerformanceReport{}).
		Joins("JOIN cvs ON cvs.id = performance_reports.cv_id").
		Where("cvs.user_id = ?", userID).
		Order("performance_reports.id DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&reports).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, total, nil
}
