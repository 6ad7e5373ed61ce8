package model

import (
	"time"
)

const (
	AttemptStatusInProgress = "in_progress"
	AttemptStatusCompleted  = "completed"
	AttemptStatusAbandoned  = "abandoned"
)

// QuizAttempt is one run of a user through a quiz. The shuffled question
// order is frozen at creation and never changes for the lifetime of the
// attempt, even if the question bank is edited underneath it.
//
// The partial unique index enforces at most one in_progress attempt per
// (user, quiz) pair; concurrent creation races surface as duplicate-key
// errors and are resolved by re-reading the surviving row.
type QuizAttempt struct {
	ID                  uint        `gorm:"primarykey" json:"id"`
	UserID              uint        `json:"user_id" gorm:"not null;uniqueIndex:uniq_attempt_in_progress,where:status = 'in_progress'"`
	QuizID              uint        `json:"quiz_id" gorm:"not null;uniqueIndex:uniq_attempt_in_progress"`
	ShuffledQuestionIDs QuestionIDs `json:"shuffled_question_ids" gorm:"type:text;not null"`
	Status              string      `json:"status" gorm:"not null;default:'in_progress'"` // "in_progress", "completed", "abandoned"
	StartedAt           time.Time   `json:"started_at" gorm:"autoCreateTime"`
	CompletedAt         *time.Time  `json:"completed_at,omitempty"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}
