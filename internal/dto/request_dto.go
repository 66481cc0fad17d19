package dto

// SignupRequest registers a new candidate account.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Consent  bool   `json:"consent"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type StartInterviewRequest struct {
	InterviewType string `json:"interview_type" binding:"required,oneof=HR Technical Behavioral"`
	FocusArea     string `json:"focus_area"`
}

type SubmitAnswerRequest struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	AnswerText string `json:"answer_text" binding:"required"`
}
