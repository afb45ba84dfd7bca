package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"interview-navigator/internal/model"
)

type CVRepository interface {
	Create(cv *model.CV) error
	FindByID(id uint) (*model.CV, error)
}

type cvRepository struct {
	db *gorm.DB
}

func NewCVRepository(db *gorm.DB) CVRepository {
	return &cvRepository{db: db}
}

func (r *cvRepository) Create(cv *model.CV) error {
	if err := r.db.Create(cv).Error; err != nil {
		return fmt.Errorf("failed to create cv: %w", err)
	}
	return nil
}

func (r *cvRepository) FindByID(id uint) (*model.CV, error) {
	var cv model.CV
	if err := r.db.First(&cv, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cv: %w", err)
	}
	return &cv, nil
}
