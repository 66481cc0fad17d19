package service

import (
	"sort"
	"strings"

	"interviewiq-server/internal/apperr"
	"interviewiq-server/internal/model"
)

// ScoringService folds the per-answer evaluations of a finished session into
// the interview-level Evaluation record. Finalize is pure; the session
// engine guards that it runs at most once per interview.
type ScoringService interface {
	Finalize(interview *model.Interview) (*model.Evaluation, error)
}

type scoringService struct{}

func NewScoringService() ScoringService {
	return &scoringService{}
}

// Readiness cutoffs over the 0-10 overall score.
const (
	readyThreshold         = 7.0
	needsPracticeThreshold = 4.0
	strengthThreshold      = 8.0
)

// ReadinessForScore classifies an overall score. Monotonic: a higher score
// never yields a lower tier.
func ReadinessForScore(score float64) string {
	switch {
	case score >= readyThreshold:
		return model.ReadinessReady
	case score >= needsPracticeThreshold:
		return model.ReadinessNeedsPractice
	}
	return model.ReadinessNotReady
}

var categoryTips = map[string]string{
	"clarity":    "State your main point in one clear sentence before adding detail",
	"confidence": "Rehearse answers aloud to cut hesitation and filler words",
	"structure":  "Structure answers with the STAR method: Situation, Task, Action, Result",
	"relevance":  "Tie every example directly back to the question that was asked",
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func tipForCategory(category string) string {
	if tip, ok := categoryTips[category]; ok {
		return tip
	}
	return "Review your weakest answers in this area and practice with specific examples"
}

func (s *scoringService) Finalize(interview *model.Interview) (*model.Evaluation, error) {
	if len(interview.Answers) != model.QuestionsPerInterview {
		return nil, apperr.InvalidState("interview %d has %d of %d answers", interview.ID, len(interview.Answers), model.QuestionsPerInterview)
	}

	categoryByPosition := make(map[int]string, len(interview.Questions))
	for _, q := range interview.Questions {
		categoryByPosition[q.Position] = q.Category
	}

	var (
		total         float64
		categoryOrder []string
		categorySums  = map[string]float64{}
		categoryNs    = map[string]int{}
		mistakes      model.MistakeList
		tags          model.StringList
		seenTags      = map[string]bool{}
	)

	for _, answer := range interview.Answers {
		eval := answer.Evaluation
		if eval == nil {
			return nil, apperr.InvalidState("answer %d of interview %d has no evaluation; retry scoring first", answer.Position, interview.ID)
		}
		total += eval.Score

		category := categoryByPosition[answer.Position]
		if _, seen := categorySums[category]; !seen {
			categoryOrder = append(categoryOrder, category)
		}
		categorySums[category] += eval.Score
		categoryNs[category]++

		if eval.HasMistake() {
			mistakes = append(mistakes, model.Mistake{
				WhatWentWrong: eval.WhatWentWrong,
				Correction:    eval.Correction,
			})
		}
		for _, tag := range eval.ExplainabilityTags {
			if !seenTags[tag] {
				seenTags[tag] = true
				tags = append(tags, tag)
			}
		}
	}

	overall := RoundScore(total / float64(len(interview.Answers)))

	breakdown := model.ScoreMap{}
	for category, sum := range categorySums {
		breakdown[category] = RoundScore(sum / float64(categoryNs[category]))
	}

	var strengths model.StringList
	for _, category := range categoryOrder {
		if breakdown[category] >= strengthThreshold {
			strengths = append(strengths, "Strong "+capitalize(category))
		}
	}

	tips := improvementTips(breakdown)

	return &model.Evaluation{
		InterviewID:        interview.ID,
		UserID:             interview.UserID,
		OverallScore:       overall,
		Breakdown:          breakdown,
		ReadinessFlag:      ReadinessForScore(overall),
		Strengths:          strengths,
		Mistakes:           mistakes,
		ImprovementTips:    tips,
		ExplainabilityTags: tags,
	}, nil
}

// improvementTips derives tips from the weakest categories, lowest mean
// first, name as tie-break. Non-empty whenever any category sits below the
// strength tier.
func improvementTips(breakdown model.ScoreMap) model.StringList {
	type categoryScore struct {
		name  string
		score float64
	}
	var weak []categoryScore
	for name, score := range breakdown {
		if score < strengthThreshold {
			weak = append(weak, categoryScore{name, score})
		}
	}
	sort.Slice(weak, func(i, j int) bool {
		if weak[i].score != weak[j].score {
			return weak[i].score < weak[j].score
		}
		return weak[i].name < weak[j].name
	})

	var tips model.StringList
	for i, cs := range weak {
		if i == 3 {
			break
		}
		tips = append(tips, tipForCategory(cs.name))
	}
	return tips
}
