package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"interview-navigator/internal/model"
)

type SessionRepository interface {
	Create(session *model.InterviewSession) error
	FindByID(id string) (*model.InterviewSession, error)
	AppendAnswer(session *model.InterviewSession, answer string) error
	Complete(session *model.InterviewSession, report *model.PerformanceReport) error
	FindCompletedByUser(userID uint) ([]model.InterviewSession, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *model.InterviewSession) error {
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *sessionRepository) FindByID(id string) (*model.InterviewSession, error) {
	var session model.InterviewSession
	if err := r.db.First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return &session, nil
}

// AppendAnswer stores one accepted answer and advances the cursor. The UPDATE
// is conditional on the cursor value the caller read, so two concurrent
// submissions for the same session cannot both advance it; the loser gets
// ErrConflict.
func (r *sessionRepository) AppendAnswer(session *model.InterviewSession, answer string) error {
	answers := append(append(model.StringList{}, session.Answers...), answer)

	result := r.db.Model(&model.InterviewSession{}).
		Where("id = ? AND status = ? AND current_index = ?",
			session.ID, model.SessionActive, session.CurrentIndex).
		Updates(map[string]interface{}{
			"answers":       answers,
			"current_index": session.CurrentIndex + 1,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to append answer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrConflict
	}

	session.Answers = answers
	session.CurrentIndex++
	return nil
}

// Complete performs the completion transition and the report insert as one
// transaction: the session's feedback/status/completed_at and the new
// PerformanceReport either all persist or none do. The guard on status makes
// completion happen at most once.
func (r *sessionRepository) Complete(session *model.InterviewSession, report *model.PerformanceReport) error {
	completedAt := time.Now().UTC()

	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.InterviewSession{}).
			Where("id = ? AND status = ?", session.ID, model.SessionActive).
			Updates(map[string]interface{}{
				"feedback":     session.Feedback,
				"status":       model.SessionCompleted,
				"completed_at": completedAt,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to complete session: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrConflict
		}

		if err := tx.Create(report).Error; err != nil {
			return fmt.Errorf("failed to create report: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	session.Status = model.SessionCompleted
	session.CompletedAt = &completedAt
	return nil
}

func (r *sessionRepository) FindCompletedByUser(userID uint) ([]model.InterviewSession, error) {
	var sessions []model.InterviewSession
	err := r.db.
		Where("user_id = ? AND status = ?", userID, model.SessionCompleted).
		Order("completed_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list completed sessions: %w", err)
	}
	return sessions, nil
}
