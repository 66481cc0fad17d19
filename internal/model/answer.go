package model

import (
	"time"

	"gorm.io/gorm"
)

// Answer is immutable once stored. Position mirrors the answered
// InterviewQuestion's position.
type Answer struct {
	ID          uint              `gorm:"primarykey" json:"id"`
	InterviewID uint              `json:"interview_id" gorm:"not null;index"`
	QuestionID  uint              `json:"question_id" gorm:"not null;index"`
	Position    int               `json:"position" gorm:"not null"`
	Text        string            `json:"text" gorm:"type:text;not null"`
	SubmittedAt time.Time         `json:"submitted_at" gorm:"not null"`
	Evaluation  *AnswerEvaluation `json:"evaluation,omitempty" gorm:"foreignKey:AnswerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`
}

// AnswerEvaluation is the per-answer verdict produced by the AI evaluator.
// An Answer without one means scoring failed and may be retried.
type AnswerEvaluation struct {
	ID       uint `gorm:"primarykey" json:"id"`
	AnswerID uint `json:"answer_id" gorm:"not null;uniqueIndex"`

	Score      float64 `json:"score" gorm:"not null"` // 0-10, one decimal
	Clarity    float64 `json:"clarity"`
	Confidence float64 `json:"confidence"`
	Structure  float64 `json:"structure"`
	Relevance  float64 `json:"relevance"`

	Explanation        string     `json:"explanation,omitempty" gorm:"type:text"`
	WeaknessIdentified string     `json:"weakness_identified,omitempty"`
	ExplainabilityTags StringList `json:"explainability_tags,omitempty" gorm:"type:jsonb"`

	WhatWentWrong  string `json:"what_went_wrong,omitempty" gorm:"type:text"`
	Correction     string `json:"correction,omitempty" gorm:"type:text"`
	ImprovedAnswer string `json:"improved_answer,omitempty" gorm:"type:text"`
	WhyImproved    string `json:"why_improved,omitempty" gorm:"type:text"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// HasMistake reports whether the evaluator flagged a concrete mistake.
func (e *AnswerEvaluation) HasMistake() bool {
	return e.WhatWentWrong != ""
}
