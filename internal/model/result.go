package model

import (
	"time"
)

// Result is written exactly once per completed attempt and never
// updated. Retakes append new rows; history is preserved.
type Result struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	UserID         uint      `json:"user_id" gorm:"not null;index"`
	QuizID         uint      `json:"quiz_id" gorm:"not null;index"`
	Score          int       `json:"score" gorm:"not null"`
	TotalQuestions int       `json:"total_questions" gorm:"not null"`
	CorrectAnswers int       `json:"correct_answers" gorm:"not null"`
	WrongAnswers   int       `json:"wrong_answers" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
}
