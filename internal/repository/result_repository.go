package repository

import (
	"quizmaster/internal/model"

	"gorm.io/gorm"
)

type ResultRepository interface {
	Create(result *model.Result) error
	FindByUserID(userID uint) ([]ResultWithQuiz, error)
	FindAll() ([]ResultWithUserAndQuiz, error)
	Count() (int64, error)
	AverageScore() (float64, error)
}

type ResultWithQuiz struct {
	model.Result
	QuizTitle string
}

type ResultWithUserAndQuiz struct {
	model.Result
	QuizTitle string
	UserName  string
	UserEmail string
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) Create(result *model.Result) error {
	return r.db.Create(result).Error
}

func (r *resultRepository) FindByUserID(userID uint) ([]ResultWithQuiz, error) {
	var results []ResultWithQuiz
	err := r.db.Model(&model.Result{}).
		Select("results.*, quizzes.title as quiz_title").
		Joins("JOIN quizzes ON quizzes.id = results.quiz_id").
		Where("results.user_id = ?", userID).
		Order("results.created_at DESC").
		Scan(&results).Error
	return results, err
}

func (r *resultRepository) FindAll() ([]ResultWithUserAndQuiz, error) {
	var results []ResultWithUserAndQuiz
	err := r.db.Model(&model.Result{}).
		Select("results.*, quizzes.title as quiz_title, users.name as user_name, users.email as user_email").
		Joins("JOIN quizzes ON quizzes.id = results.quiz_id").
		Joins("JOIN users ON users.id = results.user_id").
		Order("results.created_at DESC").
		Scan(&results).Error
	return results, err
}

func (r *resultRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Result{}).Count(&count).Error
	return count, err
}

func (r *resultRepository) AverageScore() (float64, error) {
	var avg *float64
	err := r.db.Model(&model.Result{}).Select("AVG(score)").Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}
