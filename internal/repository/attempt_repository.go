package repository

import (
	"time"

	"quizmaster/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository interface {
	// Create inserts a new in_progress attempt. The partial unique index
	// on (user_id, quiz_id) where status = 'in_progress' makes this the
	// atomic "insert if none in progress" primitive: a concurrent
	// creation loses with gorm.ErrDuplicatedKey and the caller re-reads.
	Create(attempt *model.QuizAttempt) error
	FindByID(id uint) (*model.QuizAttempt, error)
	FindInProgress(userID, quizID uint) (*model.QuizAttempt, error)
	AbandonInProgress(userID, quizID uint) error
	Complete(id uint, at time.Time) (bool, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.QuizAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) FindByID(id uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	if err := r.db.First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindInProgress(userID, quizID uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.db.
		Where("user_id = ? AND quiz_id = ? AND status = ?", userID, quizID, model.AttemptStatusInProgress).
		Order("started_at DESC").
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) AbandonInProgress(userID, quizID uint) error {
	return r.db.Model(&model.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ? AND status = ?", userID, quizID, model.AttemptStatusInProgress).
		Update("status", model.AttemptStatusAbandoned).Error
}

// Complete flips an in_progress attempt to completed and stamps
// completed_at. The status guard in the WHERE clause makes a repeat
// call report false instead of touching the row again.
func (r *attemptRepository) Complete(id uint, at time.Time) (bool, error) {
	res := r.db.Model(&model.QuizAttempt{}).
		Where("id = ? AND status = ?", id, model.AttemptStatusInProgress).
		Updates(map[string]interface{}{
			"status":       model.AttemptStatusCompleted,
			"completed_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
