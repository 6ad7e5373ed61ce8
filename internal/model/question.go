package model

import (
	"time"

	"gorm.io/gorm"
)

type Question struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	QuizID        uint           `json:"quiz_id" gorm:"not null;index"`
	QuestionText  string         `json:"question_text" gorm:"type:text;not null"`
	Option1       string         `json:"option1" gorm:"not null"`
	Option2       string         `json:"option2" gorm:"not null"`
	Option3       string         `json:"option3" gorm:"not null"`
	Option4       string         `json:"option4" gorm:"not null"`
	CorrectOption int            `json:"correct_option" gorm:"not null"` // 1-4
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// Option returns the option text for a 1-based option number.
func (q Question) Option(n int) string {
	switch n {
	case 1:
		return q.Option1
	case 2:
		return q.Option2
	case 3:
		return q.Option3
	case 4:
		return q.Option4
	}
	return ""
}
