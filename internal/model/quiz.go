package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	QuizStatusActive   = "active"
	QuizStatusInactive = "inactive"
)

type Quiz struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description,omitempty" gorm:"type:text"`
	Duration    uint           `json:"duration" gorm:"not null"` // minutes
	Status      string         `json:"status" gorm:"not null;default:'active'"` // "active", "inactive"
	Questions   []Question     `json:"questions,omitempty" gorm:"foreignKey:QuizID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
