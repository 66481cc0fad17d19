package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Interview types recognized by the engine.
const (
	InterviewTypeHR         = "HR"
	InterviewTypeTechnical  = "Technical"
	InterviewTypeBehavioral = "Behavioral"
)

func ValidInterviewType(t string) bool {
	switch t {
	case InterviewTypeHR, InterviewTypeTechnical, InterviewTypeBehavioral:
		return true
	}
	return false
}

// Readiness classification of a completed interview or a user.
const (
	ReadinessReady         = "Ready"
	ReadinessNeedsPractice = "Needs Practice"
	ReadinessNotReady      = "Not Ready"
)

// Question difficulty steps. Adaptive selection moves one step at a time.
const (
	DifficultyEasy   = 1
	DifficultyMedium = 2
	DifficultyHard   = 3
)

// DifficultyBaseline is the difficulty of the first question of a session.
const DifficultyBaseline = DifficultyMedium

// QuestionsPerInterview is the fixed session length N.
const QuestionsPerInterview = 5

const (
	RoleCandidate = "candidate"
	RoleAdmin     = "admin"
)

const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// StringList is a []string stored as a JSON column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("unsupported type %T for StringList", value)
}

// Mistake pairs what went wrong with how to fix it.
type Mistake struct {
	WhatWentWrong string `json:"what_went_wrong"`
	Correction    string `json:"correction"`
}

// MistakeList is a []Mistake stored as a JSON column.
type MistakeList []Mistake

func (l MistakeList) Value() (driver.Value, error) {
	if l == nil {
		l = MistakeList{}
	}
	return json.Marshal(l)
}

func (l *MistakeList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("unsupported type %T for MistakeList", value)
}

// ScoreMap is a category -> sub-score mapping stored as a JSON column.
type ScoreMap map[string]float64

func (m ScoreMap) Value() (driver.Value, error) {
	if m == nil {
		m = ScoreMap{}
	}
	return json.Marshal(m)
}

func (m *ScoreMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return fmt.Errorf("unsupported type %T for ScoreMap", value)
}
