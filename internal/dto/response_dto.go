package dto

import "time"

// ErrorResponse carries the failure class so clients can implement correct
// retry logic: retryable errors should be retried as-is, the rest indicate a
// client bug.
type ErrorResponse struct {
	Code      string   `json:"code,omitempty"`
	Message   string   `json:"message"`
	Details   []string `json:"details,omitempty"`
	Retryable bool     `json:"retryable"`
}

type UserResponse struct {
	ID        uint       `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// QuestionDTO is a question as presented to the candidate mid-session.
type QuestionDTO struct {
	ID         uint   `json:"id"`
	Position   int    `json:"position"`
	Text       string `json:"text"`
	Difficulty int    `json:"difficulty"`
	Category   string `json:"category"`
}

type StartInterviewResponse struct {
	InterviewID   uint        `json:"interview_id"`
	InterviewType string      `json:"interview_type"`
	FocusArea     string      `json:"focus_area,omitempty"`
	StartedAt     time.Time   `json:"started_at"`
	FirstQuestion QuestionDTO `json:"first_question"`
}

// AnswerEvaluationDTO is the per-answer verdict returned right after scoring.
type AnswerEvaluationDTO struct {
	Score              float64  `json:"score"`
	Clarity            float64  `json:"clarity"`
	Confidence         float64  `json:"confidence"`
	Structure          float64  `json:"structure"`
	Relevance          float64  `json:"relevance"`
	Explanation        string   `json:"explanation,omitempty"`
	WeaknessIdentified string   `json:"weakness_identified,omitempty"`
	ExplainabilityTags []string `json:"explainability_tags,omitempty"`
	WhatWentWrong      string   `json:"what_went_wrong,omitempty"`
	Correction         string   `json:"correction,omitempty"`
	ImprovedAnswer     string   `json:"improved_answer,omitempty"`
	WhyImproved        string   `json:"why_improved,omitempty"`
}

type SubmitAnswerResponse struct {
	IsComplete   bool                 `json:"is_complete"`
	Evaluation   *AnswerEvaluationDTO `json:"evaluation,omitempty"`
	NextQuestion *QuestionDTO         `json:"next_question,omitempty"`
}

type InterviewSummaryDTO struct {
	ID            uint       `json:"id"`
	InterviewType string     `json:"interview_type"`
	FocusArea     string     `json:"focus_area,omitempty"`
	Status        string     `json:"status"`
	StartedAt     time.Time  `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	OverallScore  *float64   `json:"overall_score,omitempty"`
}

type MistakeDTO struct {
	WhatWentWrong string `json:"what_went_wrong"`
	Correction    string `json:"correction"`
}

// DetailedFeedbackDTO pairs one question with the candidate's answer and its
// evaluation, in question order.
type DetailedFeedbackDTO struct {
	Question       string   `json:"question"`
	YourAnswer     string   `json:"your_answer"`
	Score          float64  `json:"score"`
	Tags           []string `json:"explainability_tags,omitempty"`
	WhatWentWrong  string   `json:"what_went_wrong,omitempty"`
	Correction     string   `json:"correction,omitempty"`
	ImprovedAnswer string   `json:"improved_answer,omitempty"`
	WhyImproved    string   `json:"why_improved,omitempty"`
}

type EvaluationDTO struct {
	InterviewID        uint                  `json:"interview_id"`
	OverallScore       float64               `json:"overall_score"`
	Breakdown          map[string]float64    `json:"breakdown"`
	ReadinessFlag      string                `json:"readiness_flag"`
	Strengths          []string              `json:"strengths"`
	Mistakes           []MistakeDTO          `json:"mistakes"`
	ImprovementTips    []string              `json:"improvement_tips"`
	ExplainabilityTags []string              `json:"explainability_tags"`
	DetailedFeedback   []DetailedFeedbackDTO `json:"detailed_feedback"`
	CreatedAt          time.Time             `json:"created_at"`
}

type GrowthPointDTO struct {
	Date  string  `json:"date"`
	Score float64 `json:"score"`
	Type  string  `json:"type"`
}

type WeakAreaDTO struct {
	Area  string `json:"area"`
	Count int    `json:"count"`
}

type AnalyticsSnapshotDTO struct {
	OverallScore    float64          `json:"overall_score"`
	TotalInterviews int              `json:"total_interviews"`
	Streak          int              `json:"streak"`
	ReadinessStatus string           `json:"readiness_status"`
	GrowthData      []GrowthPointDTO `json:"growth_data"`
	WeakAreas       []WeakAreaDTO    `json:"weak_areas"`
}

type PracticeQuestionDTO struct {
	ID             uint     `json:"id"`
	Category       string   `json:"category"`
	Question       string   `json:"question"`
	IdealAnswer    string   `json:"ideal_answer"`
	KeyPoints      []string `json:"key_points"`
	CommonMistakes []string `json:"common_mistakes"`
}
