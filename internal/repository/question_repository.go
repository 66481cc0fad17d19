package repository

import (
	"gorm.io/gorm"

	"interviewiq-server/internal/model"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id uint) (*model.Question, error)
	// FindCandidates returns bank rows matching the interview type and
	// difficulty, excluding already-assigned ids, ordered by id for
	// deterministic selection. Empty focusArea matches any focus area.
	FindCandidates(interviewType, focusArea string, difficulty int, excludedIDs []uint) ([]model.Question, error)
	// FindByType returns bank rows for one interview type, or every row
	// when interviewType is empty.
	FindByType(interviewType string) ([]model.Question, error)
	Count() (int64, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindCandidates(interviewType, focusArea string, difficulty int, excludedIDs []uint) ([]model.Question, error) {
	query := r.db.Where("interview_type = ? AND difficulty = ?", interviewType, difficulty)
	if focusArea != "" {
		query = query.Where("focus_area = ?", focusArea)
	}
	if len(excludedIDs) > 0 {
		query = query.Where("id NOT IN ?", excludedIDs)
	}
	var questions []model.Question
	if err := query.Order("id ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindByType(interviewType string) ([]model.Question, error) {
	query := r.db.Order("id ASC")
	if interviewType != "" {
		query = query.Where("interview_type = ?", interviewType)
	}
	var questions []model.Question
	if err := query.Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Question{}).Count(&count).Error
	return count, err
}
