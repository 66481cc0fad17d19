package service

import (
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"interviewiq-server/internal/apperr"
	"interviewiq-server/internal/dto"
	"interviewiq-server/internal/model"
	"interviewiq-server/internal/repository"
)

// QuestionBankService selects candidate questions for a session and serves
// the static practice bank.
type QuestionBankService interface {
	// Next picks an unused question for the given type/focus/difficulty.
	// Degradation ladder: exact match, then relaxed focus area, then
	// difficulty widened one step in either direction. Ties break on the
	// lowest question id.
	Next(interviewType, focusArea string, difficulty int, excludedIDs []uint) (*model.Question, error)
	PracticeQuestions(category string) ([]dto.PracticeQuestionDTO, error)
}

type questionBankService struct {
	questionRepo repository.QuestionRepository
}

func NewQuestionBankService(questionRepo repository.QuestionRepository) QuestionBankService {
	return &questionBankService{questionRepo: questionRepo}
}

// ClampDifficulty keeps a difficulty step inside the bank's range.
func ClampDifficulty(d int) int {
	if d < model.DifficultyEasy {
		return model.DifficultyEasy
	}
	if d > model.DifficultyHard {
		return model.DifficultyHard
	}
	return d
}

func (s *questionBankService) Next(interviewType, focusArea string, difficulty int, excludedIDs []uint) (*model.Question, error) {
	difficulty = ClampDifficulty(difficulty)

	type attempt struct {
		focusArea  string
		difficulty int
	}
	attempts := []attempt{
		{focusArea, difficulty},
		{"", difficulty},
	}
	if lower := difficulty - 1; lower >= model.DifficultyEasy {
		attempts = append(attempts, attempt{"", lower})
	}
	if higher := difficulty + 1; higher <= model.DifficultyHard {
		attempts = append(attempts, attempt{"", higher})
	}

	for _, a := range attempts {
		candidates, err := s.questionRepo.FindCandidates(interviewType, a.focusArea, a.difficulty, excludedIDs)
		if err != nil {
			log.Error().Err(err).Str("interviewType", interviewType).Int("difficulty", a.difficulty).
				Msg("Question bank lookup failed")
			return nil, err
		}
		if len(candidates) > 0 {
			// FindCandidates orders by id, so the first row is the
			// deterministic pick.
			return &candidates[0], nil
		}
	}

	log.Warn().Str("interviewType", interviewType).Str("focusArea", focusArea).
		Int("difficulty", difficulty).Int("excluded", len(excludedIDs)).
		Msg("Question bank exhausted for selection")
	return nil, apperr.Exhausted("no unused %s question available at or near difficulty %d", interviewType, difficulty)
}

func (s *questionBankService) PracticeQuestions(category string) ([]dto.PracticeQuestionDTO, error) {
	if category != "" && !model.ValidInterviewType(category) {
		return nil, apperr.InvalidInput("unknown practice category %q", category)
	}
	questions, err := s.questionRepo.FindByType(category)
	if err != nil {
		log.Error().Err(err).Str("category", category).Msg("Failed to load practice questions")
		return nil, err
	}

	dtos := make([]dto.PracticeQuestionDTO, 0, len(questions))
	for _, q := range questions {
		var d dto.PracticeQuestionDTO
		copier.Copy(&d, &q)
		d.Category = q.InterviewType
		d.Question = q.Text
		dtos = append(dtos, d)
	}
	return dtos, nil
}
