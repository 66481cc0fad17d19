package model

import (
	"time"

	"gorm.io/gorm"
)

type Interview struct {
	ID            uint                `gorm:"primarykey" json:"id"`
	UserID        uint                `json:"user_id" gorm:"not null;index"`
	InterviewType string              `json:"interview_type" gorm:"not null"`
	FocusArea     string              `json:"focus_area,omitempty"`
	Status        string              `json:"status" gorm:"not null;default:'in_progress'"` // "in_progress", "completed"
	StartedAt     time.Time           `json:"started_at" gorm:"not null"`
	CompletedAt   *time.Time          `json:"completed_at,omitempty"`
	OverallScore  *float64            `json:"overall_score,omitempty"`
	Questions     []InterviewQuestion `json:"questions,omitempty" gorm:"foreignKey:InterviewID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Answers       []Answer            `json:"answers,omitempty" gorm:"foreignKey:InterviewID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	DeletedAt     gorm.DeletedAt      `gorm:"index" json:"-"`
}

// InterviewQuestion is a question assigned to a session, a snapshot of the
// bank row at assignment time. Position is 1-based.
type InterviewQuestion struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	InterviewID uint           `json:"interview_id" gorm:"not null;index"`
	QuestionID  uint           `json:"question_id" gorm:"not null;index"`
	Position    int            `json:"position" gorm:"not null"`
	Text        string         `json:"text" gorm:"type:text;not null"`
	Difficulty  int            `json:"difficulty" gorm:"not null"`
	Category    string         `json:"category" gorm:"not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
