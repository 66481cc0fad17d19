package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"

	"interviewiq-server/config"
	"interviewiq-server/internal/apperr"
	"interviewiq-server/internal/model"
)

// EvaluatorService scores a single answer against its question. Any
// capability failure (timeout, API error, malformed payload) surfaces as an
// EvaluationUnavailable error; the engine never fabricates a default score.
type EvaluatorService interface {
	Evaluate(ctx context.Context, interviewType string, question *model.InterviewQuestion, answerText string) (*model.AnswerEvaluation, error)
}

type geminiEvaluatorService struct {
	client  *genai.GenerativeModel
	timeout time.Duration
}

func NewGeminiEvaluatorService(cfg *config.Config) (EvaluatorService, error) {
	timeout := time.Duration(cfg.EvaluatorTimeout) * time.Second
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. EvaluatorService will be non-functional.")
		return &geminiEvaluatorService{client: nil, timeout: timeout}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	gm := client.GenerativeModel("gemini-1.5-flash")
	return &geminiEvaluatorService{client: gm, timeout: timeout}, nil
}

// evaluationPayload mirrors the JSON contract the model is instructed to
// return.
type evaluationPayload struct {
	Score              float64  `json:"score"`
	Clarity            float64  `json:"clarity"`
	Confidence         float64  `json:"confidence"`
	Structure          float64  `json:"structure"`
	Relevance          float64  `json:"relevance"`
	Explanation        string   `json:"explanation"`
	WeaknessIdentified string   `json:"weakness_identified"`
	ExplainabilityTags []string `json:"explainability_tags"`
	Mistake            *struct {
		WhatWentWrong string `json:"what_went_wrong"`
		Correction    string `json:"correction"`
	} `json:"mistake"`
	ImprovedAnswer string `json:"improved_answer"`
	WhyImproved    string `json:"why_improved"`
}

func (s *geminiEvaluatorService) Evaluate(ctx context.Context, interviewType string, question *model.InterviewQuestion, answerText string) (*model.AnswerEvaluation, error) {
	if s.client == nil {
		return nil, apperr.EvaluationUnavailable(nil, "evaluator client not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := buildEvaluationPrompt(interviewType, question, answerText)
	resp, err := s.client.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Uint("questionID", question.QuestionID).Msg("Gemini API error during answer evaluation")
		return nil, apperr.EvaluationUnavailable(err, "evaluator call failed")
	}

	raw := collectText(resp)
	if raw == "" {
		log.Warn().Msg("Gemini returned no text content for evaluation")
		return nil, apperr.EvaluationUnavailable(nil, "evaluator returned empty response")
	}

	payload, err := parseEvaluationPayload(raw)
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("Failed to parse evaluation payload from Gemini response")
		return nil, apperr.EvaluationUnavailable(err, "evaluator returned malformed payload")
	}

	eval := &model.AnswerEvaluation{
		Score:              RoundScore(clampScore(payload.Score)),
		Clarity:            clampScore(payload.Clarity),
		Confidence:         clampScore(payload.Confidence),
		Structure:          clampScore(payload.Structure),
		Relevance:          clampScore(payload.Relevance),
		Explanation:        payload.Explanation,
		WeaknessIdentified: payload.WeaknessIdentified,
		ExplainabilityTags: payload.ExplainabilityTags,
		ImprovedAnswer:     payload.ImprovedAnswer,
		WhyImproved:        payload.WhyImproved,
	}
	if payload.Mistake != nil {
		eval.WhatWentWrong = payload.Mistake.WhatWentWrong
		eval.Correction = payload.Mistake.Correction
	}
	return eval, nil
}

func buildEvaluationPrompt(interviewType string, question *model.InterviewQuestion, answerText string) string {
	var b strings.Builder
	b.WriteString("You are an expert interview evaluator and coach with deep knowledge of ")
	b.WriteString(interviewType)
	b.WriteString(" interviews.\nEvaluate the candidate's answer below.\n\n")
	b.WriteString("Question:\n---\n")
	b.WriteString(question.Text)
	b.WriteString("\n---\n\nCandidate's Answer:\n---\n")
	b.WriteString(answerText)
	b.WriteString("\n---\n\n")
	b.WriteString(`Return ONLY valid JSON in this exact format, no other text:
{
    "score": 7.5,
    "clarity": 8.0,
    "confidence": 7.0,
    "structure": 7.5,
    "relevance": 8.0,
    "explanation": "Brief explanation of the score",
    "weakness_identified": "Main weakness, or empty string if none",
    "explainability_tags": ["short label explaining the score basis"],
    "mistake": {"what_went_wrong": "the issue", "correction": "how to fix it"},
    "improved_answer": "A better version of the answer",
    "why_improved": "Why the improved version is better"
}

Rules:
- All scores are 0.0 to 10.0.
- Omit "mistake" (use null) when the answer has no concrete mistake.
- explainability_tags are short labels such as "Structure weak (no STAR method)".
`)
	return b.String()
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}

// parseEvaluationPayload tolerates markdown code fences around the JSON
// object but nothing else.
func parseEvaluationPayload(raw string) (*evaluationPayload, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var payload evaluationPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("invalid evaluation JSON: %w", err)
	}
	return &payload, nil
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 10 {
		return 10
	}
	return s
}

// RoundScore rounds to one decimal place, the precision of every score in
// the system.
func RoundScore(s float64) float64 {
	return math.Round(s*10) / 10
}
