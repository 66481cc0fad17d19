package repository

import (
	"time"

	"gorm.io/gorm"

	"interviewiq-server/internal/model"
)

type InterviewRepository interface {
	Create(interview *model.Interview) error
	FindByID(id uint) (*model.Interview, error)
	// FindByIDWithDetails loads assigned questions (position order) and
	// answers (position order) with their evaluations.
	FindByIDWithDetails(id uint) (*model.Interview, error)
	AppendQuestion(iq *model.InterviewQuestion) error
	CreateAnswer(answer *model.Answer) error
	CreateAnswerEvaluation(eval *model.AnswerEvaluation) error
	// MarkCompleted flips an in-progress interview to completed. No-op when
	// the interview is already completed.
	MarkCompleted(interviewID uint, completedAt time.Time) error
	// FinalizeEvaluation stores the interview-level evaluation and updates
	// the interview's status and overall score in one transaction.
	FinalizeEvaluation(evaluation *model.Evaluation, completedAt *time.Time) error
	FindAllByUser(userID uint) ([]model.Interview, error)
	FindCompletedByUser(userID uint) ([]model.Interview, error)
	FindAllCompleted() ([]model.Interview, error)
}

type interviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) Create(interview *model.Interview) error {
	// Creates the assigned first question alongside the session row.
	return r.db.Create(interview).Error
}

func (r *interviewRepository) FindByID(id uint) (*model.Interview, error) {
	var interview model.Interview
	if err := r.db.First(&interview, id).Error; err != nil {
		return nil, err
	}
	return &interview, nil
}

func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("interview_questions.position ASC")
		}).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.position ASC")
		}).
		Preload("Answers.Evaluation")
}

func (r *interviewRepository) FindByIDWithDetails(id uint) (*model.Interview, error) {
	var interview model.Interview
	if err := withDetails(r.db).First(&interview, id).Error; err != nil {
		return nil, err
	}
	return &interview, nil
}

func (r *interviewRepository) AppendQuestion(iq *model.InterviewQuestion) error {
	return r.db.Create(iq).Error
}

func (r *interviewRepository) CreateAnswer(answer *model.Answer) error {
	return r.db.Create(answer).Error
}

func (r *interviewRepository) CreateAnswerEvaluation(eval *model.AnswerEvaluation) error {
	return r.db.Create(eval).Error
}

func (r *interviewRepository) MarkCompleted(interviewID uint, completedAt time.Time) error {
	return r.db.Model(&model.Interview{}).
		Where("id = ? AND status = ?", interviewID, model.StatusInProgress).
		Updates(map[string]interface{}{"status": model.StatusCompleted, "completed_at": completedAt}).Error
}

func (r *interviewRepository) FinalizeEvaluation(evaluation *model.Evaluation, completedAt *time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(evaluation).Error; err != nil {
			return err
		}
		updates := map[string]interface{}{
			"status":        model.StatusCompleted,
			"overall_score": evaluation.OverallScore,
		}
		if completedAt != nil {
			updates["completed_at"] = *completedAt
		}
		return tx.Model(&model.Interview{}).Where("id = ?", evaluation.InterviewID).Updates(updates).Error
	})
}

func (r *interviewRepository) FindAllByUser(userID uint) ([]model.Interview, error) {
	var interviews []model.Interview
	err := r.db.Where("user_id = ?", userID).Order("started_at DESC").Find(&interviews).Error
	return interviews, err
}

func (r *interviewRepository) FindCompletedByUser(userID uint) ([]model.Interview, error) {
	var interviews []model.Interview
	err := withDetails(r.db).
		Where("user_id = ? AND status = ?", userID, model.StatusCompleted).
		Order("completed_at ASC").
		Find(&interviews).Error
	return interviews, err
}

func (r *interviewRepository) FindAllCompleted() ([]model.Interview, error) {
	var interviews []model.Interview
	err := withDetails(r.db).
		Where("status = ?", model.StatusCompleted).
		Order("completed_at ASC").
		Find(&interviews).Error
	return interviews, err
}
