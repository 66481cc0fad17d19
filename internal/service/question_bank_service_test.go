package service

import (
	"testing"

	"interviewiq-server/internal/apperr"
	"interviewiq-server/internal/model"
)

func bankFixture() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: []model.Question{
		{ID: 1, InterviewType: model.InterviewTypeHR, FocusArea: "communication", Difficulty: model.DifficultyEasy, Category: "clarity", Text: "q1"},
		{ID: 2, InterviewType: model.InterviewTypeHR, FocusArea: "communication", Difficulty: model.DifficultyMedium, Category: "clarity", Text: "q2"},
		{ID: 3, InterviewType: model.InterviewTypeHR, FocusArea: "career", Difficulty: model.DifficultyMedium, Category: "structure", Text: "q3"},
		{ID: 4, InterviewType: model.InterviewTypeHR, FocusArea: "career", Difficulty: model.DifficultyHard, Category: "confidence", Text: "q4"},
		{ID: 5, InterviewType: model.InterviewTypeTechnical, FocusArea: "fundamentals", Difficulty: model.DifficultyMedium, Category: "clarity", Text: "q5"},
	}}
}

func TestQuestionBankNext(t *testing.T) {
	tests := []struct {
		name       string
		focusArea  string
		difficulty int
		excluded   []uint
		wantID     uint
	}{
		{
			name:       "exact match preferred",
			focusArea:  "career",
			difficulty: model.DifficultyMedium,
			wantID:     3,
		},
		{
			name:       "lowest id wins among candidates",
			focusArea:  "",
			difficulty: model.DifficultyMedium,
			wantID:     2,
		},
		{
			name:       "focus area relaxed when no exact match",
			focusArea:  "communication",
			difficulty: model.DifficultyHard,
			wantID:     4,
		},
		{
			name:       "difficulty widened down before up",
			focusArea:  "",
			difficulty: model.DifficultyMedium,
			excluded:   []uint{2, 3},
			wantID:     1,
		},
		{
			name:       "difficulty widened up when down is exhausted",
			focusArea:  "",
			difficulty: model.DifficultyMedium,
			excluded:   []uint{1, 2, 3},
			wantID:     4,
		},
		{
			name:       "out of range difficulty clamped",
			focusArea:  "",
			difficulty: 7,
			wantID:     4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewQuestionBankService(bankFixture())
			got, err := svc.Next(model.InterviewTypeHR, tt.focusArea, tt.difficulty, tt.excluded)
			if err != nil {
				t.Fatalf("Next() error = %v", err)
			}
			if got.ID != tt.wantID {
				t.Errorf("Next() picked question %d, want %d", got.ID, tt.wantID)
			}
		})
	}
}

func TestQuestionBankExhausted(t *testing.T) {
	svc := NewQuestionBankService(bankFixture())
	_, err := svc.Next(model.InterviewTypeHR, "", model.DifficultyMedium, []uint{1, 2, 3, 4})
	if !apperr.Is(err, apperr.CodeExhausted) {
		t.Fatalf("Next() error = %v, want %s", err, apperr.CodeExhausted)
	}
	if !apperr.Retryable(err) {
		t.Error("exhaustion should be classified retryable")
	}
}

func TestClampDifficulty(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, model.DifficultyEasy},
		{1, 1},
		{2, 2},
		{3, 3},
		{4, model.DifficultyHard},
		{-5, model.DifficultyEasy},
	}
	for _, tt := range tests {
		if got := ClampDifficulty(tt.in); got != tt.want {
			t.Errorf("ClampDifficulty(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPracticeQuestions(t *testing.T) {
	svc := NewQuestionBankService(bankFixture())

	t.Run("filtered by type", func(t *testing.T) {
		got, err := svc.PracticeQuestions(model.InterviewTypeTechnical)
		if err != nil {
			t.Fatalf("PracticeQuestions() error = %v", err)
		}
		if len(got) != 1 || got[0].Question != "q5" || got[0].Category != model.InterviewTypeTechnical {
			t.Errorf("PracticeQuestions() = %+v, want single Technical question q5", got)
		}
	})

	t.Run("empty category returns everything", func(t *testing.T) {
		got, err := svc.PracticeQuestions("")
		if err != nil {
			t.Fatalf("PracticeQuestions() error = %v", err)
		}
		if len(got) != 5 {
			t.Errorf("PracticeQuestions() returned %d questions, want 5", len(got))
		}
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		_, err := svc.PracticeQuestions("Trivia")
		if !apperr.Is(err, apperr.CodeInvalidInput) {
			t.Errorf("PracticeQuestions() error = %v, want %s", err, apperr.CodeInvalidInput)
		}
	})
}
