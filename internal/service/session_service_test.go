package service

import (
	"context"
	"testing"

	"interviewiq-server/internal/apperr"
	"interviewiq-server/internal/dto"
	"interviewiq-server/internal/model"
)

func sessionBank() []model.Question {
	var questions []model.Question
	categories := []string{"clarity", "structure", "confidence", "relevance"}
	id := uint(0)
	for _, difficulty := range []int{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard} {
		for i := 0; i < 4; i++ {
			id++
			questions = append(questions, model.Question{
				ID:            id,
				InterviewType: model.InterviewTypeHR,
				Difficulty:    difficulty,
				Category:      categories[i],
				Text:          "bank question",
			})
		}
	}
	return questions
}

func newSessionFixture(ev *fakeEvaluator) (SessionService, *fakeInterviewRepo, *fakeEvaluationRepo) {
	evalRepo := &fakeEvaluationRepo{}
	ivRepo := newFakeInterviewRepo(evalRepo)
	bank := NewQuestionBankService(&fakeQuestionRepo{questions: sessionBank()})
	svc := NewSessionService(ivRepo, evalRepo, bank, ev, NewScoringService())
	return svc, ivRepo, evalRepo
}

func startSession(t *testing.T, svc SessionService, userID uint) *dto.StartInterviewResponse {
	t.Helper()
	resp, err := svc.Start(context.Background(), userID, dto.StartInterviewRequest{InterviewType: model.InterviewTypeHR})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	return resp
}

func TestStartAssignsBaselineQuestion(t *testing.T) {
	svc, ivRepo, _ := newSessionFixture(&fakeEvaluator{})

	resp := startSession(t, svc, 1)
	if resp.FirstQuestion.Difficulty != model.DifficultyBaseline {
		t.Errorf("first question difficulty = %d, want baseline %d", resp.FirstQuestion.Difficulty, model.DifficultyBaseline)
	}
	if resp.FirstQuestion.Position != 1 {
		t.Errorf("first question position = %d, want 1", resp.FirstQuestion.Position)
	}

	stored := ivRepo.interviews[resp.InterviewID]
	if stored.Status != model.StatusInProgress {
		t.Errorf("stored status = %q, want %q", stored.Status, model.StatusInProgress)
	}
	if len(stored.Questions) != 1 {
		t.Errorf("stored question count = %d, want 1", len(stored.Questions))
	}
}

func TestStartRejectsUnknownType(t *testing.T) {
	svc, _, _ := newSessionFixture(&fakeEvaluator{})
	_, err := svc.Start(context.Background(), 1, dto.StartInterviewRequest{InterviewType: "Casual"})
	if !apperr.Is(err, apperr.CodeInvalidInput) {
		t.Fatalf("Start() error = %v, want %s", err, apperr.CodeInvalidInput)
	}
}

func TestAdaptiveDifficultyWalk(t *testing.T) {
	// Strong answer raises difficulty, weak lowers, middling keeps it.
	evaluator := &fakeEvaluator{scores: []float64{8, 3, 5, 9, 6}}
	svc, ivRepo, _ := newSessionFixture(evaluator)
	ctx := context.Background()

	resp := startSession(t, svc, 1)
	questionID := resp.FirstQuestion.ID
	var lastSubmit *dto.SubmitAnswerResponse
	for i := 0; i < model.QuestionsPerInterview; i++ {
		submit, err := svc.SubmitAnswer(ctx, 1, resp.InterviewID, dto.SubmitAnswerRequest{
			QuestionID: questionID,
			AnswerText: "an answer",
		})
		if err != nil {
			t.Fatalf("SubmitAnswer() #%d error = %v", i+1, err)
		}
		lastSubmit = submit
		if submit.NextQuestion != nil {
			questionID = submit.NextQuestion.ID
		}
	}

	if !lastSubmit.IsComplete {
		t.Error("final submission should report completion")
	}
	if lastSubmit.NextQuestion != nil {
		t.Error("final submission should not assign another question")
	}

	stored := ivRepo.interviews[resp.InterviewID]
	wantDifficulties := []int{2, 3, 2, 2, 3}
	for i, q := range stored.Questions {
		if q.Difficulty != wantDifficulties[i] {
			t.Errorf("question %d difficulty = %d, want %d", i+1, q.Difficulty, wantDifficulties[i])
		}
		if q.Position != i+1 {
			t.Errorf("question %d position = %d, want %d", i+1, q.Position, i+1)
		}
	}
	if stored.Status != model.StatusCompleted {
		t.Errorf("status after fifth evaluation = %q, want %q", stored.Status, model.StatusCompleted)
	}

	// No bank question assigned twice.
	seen := map[uint]bool{}
	for _, q := range stored.Questions {
		if seen[q.QuestionID] {
			t.Errorf("question %d assigned twice", q.QuestionID)
		}
		seen[q.QuestionID] = true
	}
}

func TestSubmitAnswerOutOfSequence(t *testing.T) {
	svc, ivRepo, _ := newSessionFixture(&fakeEvaluator{})
	resp := startSession(t, svc, 1)

	_, err := svc.SubmitAnswer(context.Background(), 1, resp.InterviewID, dto.SubmitAnswerRequest{
		QuestionID: resp.FirstQuestion.ID + 1,
		AnswerText: "an answer",
	})
	if !apperr.Is(err, apperr.CodeSequenceMismatch) {
		t.Fatalf("SubmitAnswer() error = %v, want %s", err, apperr.CodeSequenceMismatch)
	}
	if apperr.Retryable(err) {
		t.Error("sequence mismatch must not be retryable")
	}
	if got := len(ivRepo.interviews[resp.InterviewID].Answers); got != 0 {
		t.Errorf("rejected submission stored %d answers, want 0", got)
	}
}

func TestSubmitAnswerEmptyText(t *testing.T) {
	svc, ivRepo, _ := newSessionFixture(&fakeEvaluator{})
	resp := startSession(t, svc, 1)

	_, err := svc.SubmitAnswer(context.Background(), 1, resp.InterviewID, dto.SubmitAnswerRequest{
		QuestionID: resp.FirstQuestion.ID,
		AnswerText: "   ",
	})
	if !apperr.Is(err, apperr.CodeInvalidInput) {
		t.Fatalf("SubmitAnswer() error = %v, want %s", err, apperr.CodeInvalidInput)
	}
	if got := len(ivRepo.interviews[resp.InterviewID].Answers); got != 0 {
		t.Errorf("rejected submission stored %d answers, want 0", got)
	}
}

func TestSubmitAnswerOwnership(t *testing.T) {
	svc, _, _ := newSessionFixture(&fakeEvaluator{})
	resp := startSession(t, svc, 1)

	_, err := svc.SubmitAnswer(context.Background(), 2, resp.InterviewID, dto.SubmitAnswerRequest{
		QuestionID: resp.FirstQuestion.ID,
		AnswerText: "an answer",
	})
	if !apperr.Is(err, apperr.CodeNotFound) {
		t.Fatalf("foreign interview error = %v, want %s", err, apperr.CodeNotFound)
	}
}

func TestEvaluatorOutageRetry(t *testing.T) {
	evaluator := &fakeEvaluator{scores: []float64{6}, failures: 1}
	svc, ivRepo, _ := newSessionFixture(evaluator)
	ctx := context.Background()
	resp := startSession(t, svc, 1)

	req := dto.SubmitAnswerRequest{QuestionID: resp.FirstQuestion.ID, AnswerText: "an answer"}
	_, err := svc.SubmitAnswer(ctx, 1, resp.InterviewID, req)
	if !apperr.Is(err, apperr.CodeEvaluationUnavailable) {
		t.Fatalf("SubmitAnswer() error = %v, want %s", err, apperr.CodeEvaluationUnavailable)
	}
	if !apperr.Retryable(err) {
		t.Error("evaluator outage should be retryable")
	}

	stored := ivRepo.interviews[resp.InterviewID]
	if len(stored.Answers) != 1 || stored.Answers[0].Evaluation != nil {
		t.Fatalf("answer should be stored unevaluated, got %+v", stored.Answers)
	}

	// A different question is refused while the last answer awaits scoring.
	_, err = svc.SubmitAnswer(ctx, 1, resp.InterviewID, dto.SubmitAnswerRequest{
		QuestionID: resp.FirstQuestion.ID + 1,
		AnswerText: "another answer",
	})
	if !apperr.Is(err, apperr.CodeSequenceMismatch) {
		t.Fatalf("submission during pending evaluation error = %v, want %s", err, apperr.CodeSequenceMismatch)
	}

	// Retrying the same question re-scores the stored answer, no duplicate.
	submit, err := svc.SubmitAnswer(ctx, 1, resp.InterviewID, req)
	if err != nil {
		t.Fatalf("retry error = %v", err)
	}
	if submit.Evaluation == nil || submit.Evaluation.Score != 6 {
		t.Errorf("retry evaluation = %+v, want score 6", submit.Evaluation)
	}
	if submit.NextQuestion == nil {
		t.Error("retry should advance to the next question")
	}

	stored = ivRepo.interviews[resp.InterviewID]
	if len(stored.Answers) != 1 {
		t.Errorf("retry stored %d answers, want 1", len(stored.Answers))
	}
	if stored.Answers[0].Evaluation == nil {
		t.Error("retry should attach the evaluation to the stored answer")
	}
}

func TestEvaluatorOutageOnFinalAnswer(t *testing.T) {
	evaluator := &fakeEvaluator{scores: []float64{5, 5, 5, 5, 5}}
	svc, ivRepo, _ := newSessionFixture(evaluator)
	ctx := context.Background()
	resp := startSession(t, svc, 1)

	questionID := resp.FirstQuestion.ID
	for i := 0; i < model.QuestionsPerInterview-1; i++ {
		submit, err := svc.SubmitAnswer(ctx, 1, resp.InterviewID, dto.SubmitAnswerRequest{QuestionID: questionID, AnswerText: "an answer"})
		if err != nil {
			t.Fatalf("SubmitAnswer() #%d error = %v", i+1, err)
		}
		questionID = submit.NextQuestion.ID
	}

	evaluator.failures = 1
	req := dto.SubmitAnswerRequest{QuestionID: questionID, AnswerText: "final answer"}
	if _, err := svc.SubmitAnswer(ctx, 1, resp.InterviewID, req); !apperr.Is(err, apperr.CodeEvaluationUnavailable) {
		t.Fatalf("final submission error = %v, want %s", err, apperr.CodeEvaluationUnavailable)
	}

	if got := ivRepo.interviews[resp.InterviewID].Status; got != model.StatusInProgress {
		t.Fatalf("status after failed final evaluation = %q, want %q", got, model.StatusInProgress)
	}

	submit, err := svc.SubmitAnswer(ctx, 1, resp.InterviewID, req)
	if err != nil {
		t.Fatalf("final retry error = %v", err)
	}
	if !submit.IsComplete {
		t.Error("final retry should complete the session")
	}
	if got := ivRepo.interviews[resp.InterviewID].Status; got != model.StatusCompleted {
		t.Errorf("status after final retry = %q, want %q", got, model.StatusCompleted)
	}
}

func TestSubmitAnswerAfterCompletion(t *testing.T) {
	svc, _, _ := newSessionFixture(&fakeEvaluator{scores: []float64{5, 5, 5, 5, 5}})
	ctx := context.Background()
	resp := startSession(t, svc, 1)

	questionID := resp.FirstQuestion.ID
	for i := 0; i < model.QuestionsPerInterview; i++ {
		submit, err := svc.SubmitAnswer(ctx, 1, resp.InterviewID, dto.SubmitAnswerRequest{QuestionID: questionID, AnswerText: "an answer"})
		if err != nil {
			t.Fatalf("SubmitAnswer() #%d error = %v", i+1, err)
		}
		if submit.NextQuestion != nil {
			questionID = submit.NextQuestion.ID
		}
	}

	_, err := svc.SubmitAnswer(ctx, 1, resp.InterviewID, dto.SubmitAnswerRequest{QuestionID: questionID, AnswerText: "extra"})
	if !apperr.Is(err, apperr.CodeInvalidState) {
		t.Fatalf("submission after completion error = %v, want %s", err, apperr.CodeInvalidState)
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	svc, ivRepo, evalRepo := newSessionFixture(&fakeEvaluator{scores: []float64{8, 9, 7, 8, 9}})
	ctx := context.Background()
	resp := startSession(t, svc, 1)

	questionID := resp.FirstQuestion.ID
	for i := 0; i < model.QuestionsPerInterview; i++ {
		submit, err := svc.SubmitAnswer(ctx, 1, resp.InterviewID, dto.SubmitAnswerRequest{QuestionID: questionID, AnswerText: "an answer"})
		if err != nil {
			t.Fatalf("SubmitAnswer() #%d error = %v", i+1, err)
		}
		if submit.NextQuestion != nil {
			questionID = submit.NextQuestion.ID
		}
	}

	first, err := svc.Complete(ctx, 1, resp.InterviewID)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if first.OverallScore != 8.2 {
		t.Errorf("OverallScore = %v, want 8.2", first.OverallScore)
	}
	if first.ReadinessFlag != model.ReadinessReady {
		t.Errorf("ReadinessFlag = %q, want %q", first.ReadinessFlag, model.ReadinessReady)
	}
	if len(first.DetailedFeedback) != model.QuestionsPerInterview {
		t.Errorf("DetailedFeedback has %d entries, want %d", len(first.DetailedFeedback), model.QuestionsPerInterview)
	}

	second, err := svc.Complete(ctx, 1, resp.InterviewID)
	if err != nil {
		t.Fatalf("repeat Complete() error = %v", err)
	}
	if second.OverallScore != first.OverallScore {
		t.Errorf("repeat Complete() OverallScore = %v, want %v", second.OverallScore, first.OverallScore)
	}
	if len(evalRepo.evals) != 1 {
		t.Errorf("stored %d evaluations, want 1", len(evalRepo.evals))
	}

	stored := ivRepo.interviews[resp.InterviewID]
	if stored.OverallScore == nil || *stored.OverallScore != 8.2 {
		t.Errorf("interview overall score = %v, want 8.2", stored.OverallScore)
	}
}

func TestCompleteRejectsUnfinishedSession(t *testing.T) {
	svc, _, _ := newSessionFixture(&fakeEvaluator{scores: []float64{6}})
	ctx := context.Background()
	resp := startSession(t, svc, 1)

	if _, err := svc.SubmitAnswer(ctx, 1, resp.InterviewID, dto.SubmitAnswerRequest{QuestionID: resp.FirstQuestion.ID, AnswerText: "an answer"}); err != nil {
		t.Fatalf("SubmitAnswer() error = %v", err)
	}

	_, err := svc.Complete(ctx, 1, resp.InterviewID)
	if !apperr.Is(err, apperr.CodeInvalidState) {
		t.Fatalf("Complete() error = %v, want %s", err, apperr.CodeInvalidState)
	}
}

func TestEvaluationReadPaths(t *testing.T) {
	svc, _, _ := newSessionFixture(&fakeEvaluator{scores: []float64{5, 5, 5, 5, 5}})
	ctx := context.Background()
	resp := startSession(t, svc, 1)

	if _, err := svc.Evaluation(1, resp.InterviewID); !apperr.Is(err, apperr.CodeNotFound) {
		t.Errorf("Evaluation() before finalize error = %v, want %s", err, apperr.CodeNotFound)
	}

	questionID := resp.FirstQuestion.ID
	for i := 0; i < model.QuestionsPerInterview; i++ {
		submit, err := svc.SubmitAnswer(ctx, 1, resp.InterviewID, dto.SubmitAnswerRequest{QuestionID: questionID, AnswerText: "an answer"})
		if err != nil {
			t.Fatalf("SubmitAnswer() #%d error = %v", i+1, err)
		}
		if submit.NextQuestion != nil {
			questionID = submit.NextQuestion.ID
		}
	}
	if _, err := svc.Complete(ctx, 1, resp.InterviewID); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	got, err := svc.Evaluation(1, resp.InterviewID)
	if err != nil {
		t.Fatalf("Evaluation() error = %v", err)
	}
	if got.ReadinessFlag != model.ReadinessNeedsPractice {
		t.Errorf("ReadinessFlag = %q, want %q", got.ReadinessFlag, model.ReadinessNeedsPractice)
	}

	if _, err := svc.Evaluation(2, resp.InterviewID); !apperr.Is(err, apperr.CodeNotFound) {
		t.Errorf("foreign Evaluation() error = %v, want %s", err, apperr.CodeNotFound)
	}
}
