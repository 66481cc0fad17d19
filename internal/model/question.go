package model

import (
	"time"

	"gorm.io/gorm"
)

// Question is a bank entry. Rows are immutable from the engine's point of
// view; once assigned to an interview the text/difficulty/category are
// snapshotted onto the InterviewQuestion.
type Question struct {
	ID            uint   `gorm:"primarykey" json:"id"`
	InterviewType string `json:"interview_type" gorm:"not null;index"` // "HR", "Technical", "Behavioral"
	FocusArea     string `json:"focus_area,omitempty" gorm:"index"`
	Difficulty    int    `json:"difficulty" gorm:"not null;index"` // 1=easy, 2=medium, 3=hard
	Category      string `json:"category" gorm:"not null"`         // "clarity", "confidence", "structure", "relevance"
	Text          string `json:"text" gorm:"type:text;not null"`

	// Practice-mode material shown outside live sessions.
	IdealAnswer    string         `json:"ideal_answer,omitempty" gorm:"type:text"`
	KeyPoints      StringList     `json:"key_points,omitempty" gorm:"type:jsonb"`
	CommonMistakes StringList     `json:"common_mistakes,omitempty" gorm:"type:jsonb"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
