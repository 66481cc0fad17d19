package dto

// UserPerformanceDTO is a candidate as seen on admin screens, with the
// derived aggregates attached.
type UserPerformanceDTO struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	TotalInterviews int     `json:"total_interviews"`
	AverageScore    float64 `json:"average_score"`
	ReadinessStatus string  `json:"readiness_status"`
}

type AdminDashboardDTO struct {
	TotalUsers        int                  `json:"total_users"`
	ReadyForInterview int                  `json:"ready_for_interview"`
	NeedsPractice     int                  `json:"needs_practice"`
	ActiveThisWeek    int                  `json:"active_this_week"`
	AverageScore      float64              `json:"average_score"`
	TopPerformers     []UserPerformanceDTO `json:"top_performers"`
	WeakCandidates    []UserPerformanceDTO `json:"weak_candidates"`
}

type CommonMistakeDTO struct {
	Mistake   string `json:"mistake"`
	Frequency int    `json:"frequency"`
}

type FailedQuestionDTO struct {
	Question string `json:"question"`
	Count    int    `json:"count"`
}

type ConfidenceDistributionDTO struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

type PlatformInsightsDTO struct {
	CommonMistakes         []CommonMistakeDTO        `json:"common_mistakes"`
	MostFailedQuestions    []FailedQuestionDTO       `json:"most_failed_questions"`
	ConfidenceDistribution ConfidenceDistributionDTO `json:"confidence_distribution"`
	TotalInterviews        int                       `json:"total_interviews"`
}

type AdminUserDetailDTO struct {
	User       UserPerformanceDTO    `json:"user"`
	Interviews []InterviewSummaryDTO `json:"interviews"`
	GrowthData []GrowthPointDTO      `json:"growth_data"`
	WeakAreas  []WeakAreaDTO         `json:"weak_areas"`
}
