package repository

import (
	"errors"

	"gorm.io/gorm"

	"interviewiq-server/internal/model"
)

type EvaluationRepository interface {
	Create(eval *model.Evaluation) error
	// FindByInterviewID returns (nil, nil) when no evaluation exists yet.
	FindByInterviewID(interviewID uint) (*model.Evaluation, error)
	FindAllByUser(userID uint) ([]model.Evaluation, error)
	FindAll() ([]model.Evaluation, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) Create(eval *model.Evaluation) error {
	return r.db.Create(eval).Error
}

func (r *evaluationRepository) FindByInterviewID(interviewID uint) (*model.Evaluation, error) {
	var eval model.Evaluation
	err := r.db.Where("interview_id = ?", interviewID).First(&eval).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &eval, nil
}

func (r *evaluationRepository) FindAllByUser(userID uint) ([]model.Evaluation, error) {
	var evals []model.Evaluation
	err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&evals).Error
	return evals, err
}

func (r *evaluationRepository) FindAll() ([]model.Evaluation, error) {
	var evals []model.Evaluation
	err := r.db.Order("created_at ASC").Find(&evals).Error
	return evals, err
}
