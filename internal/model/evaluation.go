package model

import (
	"time"

	"gorm.io/gorm"
)

// Evaluation is the interview-level record, created exactly once when a
// session completes and immutable thereafter.
type Evaluation struct {
	ID          uint `gorm:"primarykey" json:"id"`
	InterviewID uint `json:"interview_id" gorm:"not null;uniqueIndex"`
	UserID      uint `json:"user_id" gorm:"not null;index"`

	OverallScore       float64     `json:"overall_score" gorm:"not null"`
	Breakdown          ScoreMap    `json:"breakdown" gorm:"type:jsonb"`
	ReadinessFlag      string      `json:"readiness_flag" gorm:"not null"`
	Strengths          StringList  `json:"strengths" gorm:"type:jsonb"`
	Mistakes           MistakeList `json:"mistakes" gorm:"type:jsonb"`
	ImprovementTips    StringList  `json:"improvement_tips" gorm:"type:jsonb"`
	ExplainabilityTags StringList  `json:"explainability_tags" gorm:"type:jsonb"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
