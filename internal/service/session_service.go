package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"interviewiq-server/internal/apperr"
	"interviewiq-server/internal/dto"
	"interviewiq-server/internal/model"
	"interviewiq-server/internal/repository"
)

// SessionService owns the per-interview state machine: question sequencing,
// answer intake, adaptive selection, completion and finalization.
type SessionService interface {
	Start(ctx context.Context, userID uint, req dto.StartInterviewRequest) (*dto.StartInterviewResponse, error)
	SubmitAnswer(ctx context.Context, userID, interviewID uint, req dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error)
	Complete(ctx context.Context, userID, interviewID uint) (*dto.EvaluationDTO, error)
	History(userID uint) ([]dto.InterviewSummaryDTO, error)
	Evaluation(userID, interviewID uint) (*dto.EvaluationDTO, error)
}

// Adaptive difficulty steps: a strong answer raises the next question's
// difficulty one step, a weak one lowers it.
const (
	raiseDifficultyAt = 7.0
	lowerDifficultyAt = 4.0
)

type sessionService struct {
	interviewRepo  repository.InterviewRepository
	evaluationRepo repository.EvaluationRepository
	bank           QuestionBankService
	evaluator      EvaluatorService
	scoring        ScoringService

	// locks serializes mutations per interview id so the sequence check and
	// the completion transition never race. Other interviews proceed
	// independently.
	locksMu sync.Mutex
	locks   map[uint]*sync.Mutex
}

func NewSessionService(
	interviewRepo repository.InterviewRepository,
	evaluationRepo repository.EvaluationRepository,
	bank QuestionBankService,
	evaluator EvaluatorService,
	scoring ScoringService,
) SessionService {
	return &sessionService{
		interviewRepo:  interviewRepo,
		evaluationRepo: evaluationRepo,
		bank:           bank,
		evaluator:      evaluator,
		scoring:        scoring,
		locks:          map[uint]*sync.Mutex{},
	}
}

func (s *sessionService) lockFor(interviewID uint) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	mu, ok := s.locks[interviewID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[interviewID] = mu
	}
	return mu
}

func (s *sessionService) Start(ctx context.Context, userID uint, req dto.StartInterviewRequest) (*dto.StartInterviewResponse, error) {
	if !model.ValidInterviewType(req.InterviewType) {
		return nil, apperr.InvalidInput("unknown interview type %q", req.InterviewType)
	}

	first, err := s.bank.Next(req.InterviewType, req.FocusArea, model.DifficultyBaseline, nil)
	if err != nil {
		return nil, err
	}

	interview := model.Interview{
		UserID:        userID,
		InterviewType: req.InterviewType,
		FocusArea:     req.FocusArea,
		Status:        model.StatusInProgress,
		StartedAt:     time.Now().UTC(),
		Questions: []model.InterviewQuestion{{
			QuestionID: first.ID,
			Position:   1,
			Text:       first.Text,
			Difficulty: first.Difficulty,
			Category:   first.Category,
		}},
	}
	if err := s.interviewRepo.Create(&interview); err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to create interview session")
		return nil, err
	}

	log.Info().Uint("interviewID", interview.ID).Uint("userID", userID).
		Str("type", req.InterviewType).Msg("Interview session started")

	return &dto.StartInterviewResponse{
		InterviewID:   interview.ID,
		InterviewType: interview.InterviewType,
		FocusArea:     interview.FocusArea,
		StartedAt:     interview.StartedAt,
		FirstQuestion: questionToDTO(&interview.Questions[0]),
	}, nil
}

func (s *sessionService) SubmitAnswer(ctx context.Context, userID, interviewID uint, req dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error) {
	mu := s.lockFor(interviewID)
	mu.Lock()
	defer mu.Unlock()

	interview, err := s.loadOwned(userID, interviewID)
	if err != nil {
		return nil, err
	}
	if interview.Status == model.StatusCompleted {
		return nil, apperr.InvalidState("interview %d is already completed", interviewID)
	}

	answerText := strings.TrimSpace(req.AnswerText)

	answered := len(interview.Answers)
	if answered > 0 && interview.Answers[answered-1].Evaluation == nil {
		// The previous submission stored the answer but scoring failed.
		// A retry for that same question re-scores the stored answer
		// instead of storing a duplicate.
		last := &interview.Answers[answered-1]
		if req.QuestionID != last.QuestionID {
			return nil, apperr.SequenceMismatch("answer %d is awaiting evaluation; retry question %d", last.Position, last.QuestionID)
		}
		return s.evaluateAndAdvance(ctx, interview, last)
	}

	if answered >= model.QuestionsPerInterview {
		// All answers evaluated but the completion flip was lost; recover.
		return s.finishSubmission(interview)
	}

	expected, err := s.expectedQuestion(interview)
	if err != nil {
		return nil, err
	}
	if req.QuestionID != expected.QuestionID {
		return nil, apperr.SequenceMismatch("expected answer for question %d at position %d, got question %d",
			expected.QuestionID, expected.Position, req.QuestionID)
	}
	if answerText == "" {
		return nil, apperr.InvalidInput("answer text must not be empty")
	}

	answer := model.Answer{
		InterviewID: interview.ID,
		QuestionID:  expected.QuestionID,
		Position:    expected.Position,
		Text:        answerText,
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.interviewRepo.CreateAnswer(&answer); err != nil {
		log.Error().Err(err).Uint("interviewID", interview.ID).Msg("Failed to store answer")
		return nil, err
	}
	interview.Answers = append(interview.Answers, answer)

	return s.evaluateAndAdvance(ctx, interview, &interview.Answers[len(interview.Answers)-1])
}

// expectedQuestion returns the assigned question at index len(answers),
// drawing it first if a previous advance failed after scoring.
func (s *sessionService) expectedQuestion(interview *model.Interview) (*model.InterviewQuestion, error) {
	idx := len(interview.Answers)
	if idx < len(interview.Questions) {
		return &interview.Questions[idx], nil
	}
	prevEval := interview.Answers[idx-1].Evaluation
	return s.drawNextQuestion(interview, prevEval.Score)
}

// evaluateAndAdvance scores the stored answer and, on success, either draws
// the next question or flips the session to completed. On evaluator failure
// the answer stays stored and the error surfaces so the caller can retry
// scoring without re-typing.
func (s *sessionService) evaluateAndAdvance(ctx context.Context, interview *model.Interview, answer *model.Answer) (*dto.SubmitAnswerResponse, error) {
	question := &interview.Questions[answer.Position-1]

	eval, err := s.evaluator.Evaluate(ctx, interview.InterviewType, question, answer.Text)
	if err != nil {
		log.Warn().Err(err).Uint("interviewID", interview.ID).Int("position", answer.Position).
			Msg("Answer evaluation failed; answer preserved for scoring retry")
		return nil, err
	}

	eval.AnswerID = answer.ID
	if err := s.interviewRepo.CreateAnswerEvaluation(eval); err != nil {
		log.Error().Err(err).Uint("answerID", answer.ID).Msg("Failed to store answer evaluation")
		return nil, err
	}
	answer.Evaluation = eval

	resp, err := s.advance(interview, eval)
	if err != nil {
		return nil, err
	}
	resp.Evaluation = answerEvaluationToDTO(eval)
	return resp, nil
}

func (s *sessionService) advance(interview *model.Interview, prevEval *model.AnswerEvaluation) (*dto.SubmitAnswerResponse, error) {
	if len(interview.Answers) >= model.QuestionsPerInterview {
		return s.finishSubmission(interview)
	}

	next, err := s.drawNextQuestion(interview, prevEval.Score)
	if err != nil {
		return nil, err
	}
	nextDTO := questionToDTO(next)
	return &dto.SubmitAnswerResponse{IsComplete: false, NextQuestion: &nextDTO}, nil
}

func (s *sessionService) drawNextQuestion(interview *model.Interview, prevScore float64) (*model.InterviewQuestion, error) {
	difficulty := interview.Questions[len(interview.Questions)-1].Difficulty
	switch {
	case prevScore >= raiseDifficultyAt:
		difficulty++
	case prevScore <= lowerDifficultyAt:
		difficulty--
	}
	difficulty = ClampDifficulty(difficulty)

	excluded := make([]uint, 0, len(interview.Questions))
	for _, q := range interview.Questions {
		excluded = append(excluded, q.QuestionID)
	}

	question, err := s.bank.Next(interview.InterviewType, interview.FocusArea, difficulty, excluded)
	if err != nil {
		return nil, err
	}

	iq := model.InterviewQuestion{
		InterviewID: interview.ID,
		QuestionID:  question.ID,
		Position:    len(interview.Questions) + 1,
		Text:        question.Text,
		Difficulty:  question.Difficulty,
		Category:    question.Category,
	}
	if err := s.interviewRepo.AppendQuestion(&iq); err != nil {
		log.Error().Err(err).Uint("interviewID", interview.ID).Msg("Failed to assign next question")
		return nil, err
	}
	interview.Questions = append(interview.Questions, iq)
	return &interview.Questions[len(interview.Questions)-1], nil
}

// finishSubmission flips the session to completed once all answers are
// evaluated.
func (s *sessionService) finishSubmission(interview *model.Interview) (*dto.SubmitAnswerResponse, error) {
	now := time.Now().UTC()
	if err := s.interviewRepo.MarkCompleted(interview.ID, now); err != nil {
		log.Error().Err(err).Uint("interviewID", interview.ID).Msg("Failed to mark interview completed")
		return nil, err
	}
	interview.Status = model.StatusCompleted
	interview.CompletedAt = &now

	log.Info().Uint("interviewID", interview.ID).Msg("Interview completed; all answers evaluated")
	return &dto.SubmitAnswerResponse{IsComplete: true}, nil
}

func (s *sessionService) Complete(ctx context.Context, userID, interviewID uint) (*dto.EvaluationDTO, error) {
	mu := s.lockFor(interviewID)
	mu.Lock()
	defer mu.Unlock()

	interview, err := s.loadOwned(userID, interviewID)
	if err != nil {
		return nil, err
	}

	// Idempotent finalize: return the existing record as-is.
	existing, err := s.evaluationRepo.FindByInterviewID(interviewID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return evaluationToDTO(existing, interview), nil
	}

	evaluation, err := s.scoring.Finalize(interview)
	if err != nil {
		return nil, err
	}

	var completedAt *time.Time
	if interview.CompletedAt == nil {
		now := time.Now().UTC()
		completedAt = &now
	}
	if err := s.interviewRepo.FinalizeEvaluation(evaluation, completedAt); err != nil {
		log.Error().Err(err).Uint("interviewID", interviewID).Msg("Failed to finalize interview evaluation")
		return nil, err
	}

	log.Info().Uint("interviewID", interviewID).Float64("overallScore", evaluation.OverallScore).
		Str("readiness", evaluation.ReadinessFlag).Msg("Interview evaluation materialized")
	return evaluationToDTO(evaluation, interview), nil
}

func (s *sessionService) History(userID uint) ([]dto.InterviewSummaryDTO, error) {
	interviews, err := s.interviewRepo.FindAllByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to load interview history")
		return nil, err
	}
	dtos := make([]dto.InterviewSummaryDTO, 0, len(interviews))
	for _, interview := range interviews {
		var summary dto.InterviewSummaryDTO
		copier.Copy(&summary, &interview)
		dtos = append(dtos, summary)
	}
	return dtos, nil
}

func (s *sessionService) Evaluation(userID, interviewID uint) (*dto.EvaluationDTO, error) {
	interview, err := s.loadOwned(userID, interviewID)
	if err != nil {
		return nil, err
	}
	evaluation, err := s.evaluationRepo.FindByInterviewID(interviewID)
	if err != nil {
		return nil, err
	}
	if evaluation == nil {
		return nil, apperr.NotFound("no evaluation exists for interview %d", interviewID)
	}
	return evaluationToDTO(evaluation, interview), nil
}

// loadOwned fetches the interview with full details and enforces ownership.
// Foreign-owned sessions are indistinguishable from missing ones.
func (s *sessionService) loadOwned(userID, interviewID uint) (*model.Interview, error) {
	interview, err := s.interviewRepo.FindByIDWithDetails(interviewID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("interview %d not found", interviewID)
	}
	if err != nil {
		log.Error().Err(err).Uint("interviewID", interviewID).Msg("Failed to load interview")
		return nil, err
	}
	if interview.UserID != userID {
		return nil, apperr.NotFound("interview %d not found", interviewID)
	}
	return interview, nil
}

func questionToDTO(q *model.InterviewQuestion) dto.QuestionDTO {
	return dto.QuestionDTO{
		ID:         q.QuestionID,
		Position:   q.Position,
		Text:       q.Text,
		Difficulty: q.Difficulty,
		Category:   q.Category,
	}
}

func answerEvaluationToDTO(eval *model.AnswerEvaluation) *dto.AnswerEvaluationDTO {
	var d dto.AnswerEvaluationDTO
	copier.Copy(&d, eval)
	d.ExplainabilityTags = eval.ExplainabilityTags
	return &d
}

func evaluationToDTO(evaluation *model.Evaluation, interview *model.Interview) *dto.EvaluationDTO {
	d := &dto.EvaluationDTO{
		InterviewID:        evaluation.InterviewID,
		OverallScore:       evaluation.OverallScore,
		Breakdown:          evaluation.Breakdown,
		ReadinessFlag:      evaluation.ReadinessFlag,
		Strengths:          evaluation.Strengths,
		Mistakes:           make([]dto.MistakeDTO, 0, len(evaluation.Mistakes)),
		ImprovementTips:    evaluation.ImprovementTips,
		ExplainabilityTags: evaluation.ExplainabilityTags,
		CreatedAt:          evaluation.CreatedAt,
	}
	for _, m := range evaluation.Mistakes {
		d.Mistakes = append(d.Mistakes, dto.MistakeDTO{WhatWentWrong: m.WhatWentWrong, Correction: m.Correction})
	}

	textByPosition := make(map[int]string, len(interview.Questions))
	for _, q := range interview.Questions {
		textByPosition[q.Position] = q.Text
	}
	for _, answer := range interview.Answers {
		if answer.Evaluation == nil {
			continue
		}
		d.DetailedFeedback = append(d.DetailedFeedback, dto.DetailedFeedbackDTO{
			Question:       textByPosition[answer.Position],
			YourAnswer:     answer.Text,
			Score:          answer.Evaluation.Score,
			Tags:           answer.Evaluation.ExplainabilityTags,
			WhatWentWrong:  answer.Evaluation.WhatWentWrong,
			Correction:     answer.Evaluation.Correction,
			ImprovedAnswer: answer.Evaluation.ImprovedAnswer,
			WhyImproved:    answer.Evaluation.WhyImproved,
		})
	}
	return d
}
