package service

import (
	"errors"
	"sort"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"interviewiq-server/internal/apperr"
	"interviewiq-server/internal/dto"
	"interviewiq-server/internal/model"
	"interviewiq-server/internal/repository"
)

// AnalyticsService derives per-user snapshots and platform-wide insights as
// pure folds over the completed-evaluation log. Nothing here mutates state,
// so every read is recomputed from scratch.
type AnalyticsService interface {
	Snapshot(userID uint) (*dto.AnalyticsSnapshotDTO, error)
	Dashboard() (*dto.AdminDashboardDTO, error)
	Insights() (*dto.PlatformInsightsDTO, error)
	Users() ([]dto.UserPerformanceDTO, error)
	UserDetail(userID uint) (*dto.AdminUserDetailDTO, error)
}

const (
	topPerformerCount   = 5
	commonMistakeCount  = 10
	failedQuestionCount = 5
	userWeakAreaCount   = 3
	adminWeakAreaCount  = 5

	// An answer scoring below this counts as a failure of its question.
	failedAnswerScore = 5.0

	activeWindow = 7 * 24 * time.Hour
)

type analyticsService struct {
	userRepo       repository.UserRepository
	interviewRepo  repository.InterviewRepository
	evaluationRepo repository.EvaluationRepository

	now func() time.Time // injectable for streak tests
}

func NewAnalyticsService(
	userRepo repository.UserRepository,
	interviewRepo repository.InterviewRepository,
	evaluationRepo repository.EvaluationRepository,
) AnalyticsService {
	return &analyticsService{
		userRepo:       userRepo,
		interviewRepo:  interviewRepo,
		evaluationRepo: evaluationRepo,
		now:            time.Now,
	}
}

func (s *analyticsService) Snapshot(userID uint) (*dto.AnalyticsSnapshotDTO, error) {
	evals, err := s.evaluationRepo.FindAllByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to load evaluations for snapshot")
		return nil, err
	}
	interviews, err := s.interviewRepo.FindCompletedByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to load completed interviews for snapshot")
		return nil, err
	}

	snapshot := &dto.AnalyticsSnapshotDTO{
		TotalInterviews: len(evals),
		ReadinessStatus: model.ReadinessNotReady,
		GrowthData:      growthData(interviews),
		WeakAreas:       weakAreas(interviews, userWeakAreaCount),
		Streak:          streak(interviews, s.now().UTC()),
	}
	if len(evals) > 0 {
		var total float64
		for _, e := range evals {
			total += e.OverallScore
		}
		snapshot.OverallScore = RoundScore(total / float64(len(evals)))
		snapshot.ReadinessStatus = evals[len(evals)-1].ReadinessFlag
	}
	return snapshot, nil
}

func (s *analyticsService) Dashboard() (*dto.AdminDashboardDTO, error) {
	users, err := s.userRepo.FindAllCandidates()
	if err != nil {
		return nil, err
	}
	evals, err := s.evaluationRepo.FindAll()
	if err != nil {
		return nil, err
	}
	completed, err := s.interviewRepo.FindAllCompleted()
	if err != nil {
		return nil, err
	}

	stats := userStats(users, evals)

	dashboard := &dto.AdminDashboardDTO{
		TotalUsers:     len(users),
		TopPerformers:  []dto.UserPerformanceDTO{},
		WeakCandidates: []dto.UserPerformanceDTO{},
	}

	var scored []dto.UserPerformanceDTO
	var scoreTotal float64
	for _, st := range stats {
		if st.TotalInterviews == 0 {
			continue
		}
		scored = append(scored, st)
		scoreTotal += st.AverageScore
		switch st.ReadinessStatus {
		case model.ReadinessReady:
			dashboard.ReadyForInterview++
		case model.ReadinessNeedsPractice:
			dashboard.NeedsPractice++
		}
	}
	if len(scored) > 0 {
		dashboard.AverageScore = RoundScore(scoreTotal / float64(len(scored)))
	}

	cutoff := s.now().UTC().Add(-activeWindow)
	activeUsers := map[uint]bool{}
	for _, interview := range completed {
		if interview.CompletedAt != nil && interview.CompletedAt.After(cutoff) {
			activeUsers[interview.UserID] = true
		}
	}
	dashboard.ActiveThisWeek = len(activeUsers)

	dashboard.TopPerformers = rankUsers(scored, true, topPerformerCount)
	dashboard.WeakCandidates = rankUsers(scored, false, topPerformerCount)
	return dashboard, nil
}

func (s *analyticsService) Insights() (*dto.PlatformInsightsDTO, error) {
	completed, err := s.interviewRepo.FindAllCompleted()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load completed interviews for insights")
		return nil, err
	}

	mistakeCounts := map[string]int{}
	failedCounts := map[string]int{}
	insights := &dto.PlatformInsightsDTO{
		CommonMistakes:      []dto.CommonMistakeDTO{},
		MostFailedQuestions: []dto.FailedQuestionDTO{},
		TotalInterviews:     len(completed),
	}

	for _, interview := range completed {
		textByPosition := make(map[int]string, len(interview.Questions))
		for _, q := range interview.Questions {
			textByPosition[q.Position] = q.Text
		}
		for _, answer := range interview.Answers {
			eval := answer.Evaluation
			if eval == nil {
				continue
			}
			if eval.WeaknessIdentified != "" {
				mistakeCounts[eval.WeaknessIdentified]++
			}
			if eval.Score < failedAnswerScore {
				failedCounts[textByPosition[answer.Position]]++
			}
			switch {
			case eval.Confidence >= 8:
				insights.ConfidenceDistribution.High++
			case eval.Confidence >= 5:
				insights.ConfidenceDistribution.Medium++
			default:
				insights.ConfidenceDistribution.Low++
			}
		}
	}

	for _, entry := range topCounts(mistakeCounts, commonMistakeCount) {
		insights.CommonMistakes = append(insights.CommonMistakes, dto.CommonMistakeDTO{Mistake: entry.key, Frequency: entry.count})
	}
	for _, entry := range topCounts(failedCounts, failedQuestionCount) {
		insights.MostFailedQuestions = append(insights.MostFailedQuestions, dto.FailedQuestionDTO{Question: entry.key, Count: entry.count})
	}
	return insights, nil
}

func (s *analyticsService) Users() ([]dto.UserPerformanceDTO, error) {
	users, err := s.userRepo.FindAllCandidates()
	if err != nil {
		return nil, err
	}
	evals, err := s.evaluationRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return userStats(users, evals), nil
}

func (s *analyticsService) UserDetail(userID uint) (*dto.AdminUserDetailDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user %d not found", userID)
	}
	if err != nil {
		return nil, err
	}
	evals, err := s.evaluationRepo.FindAllByUser(userID)
	if err != nil {
		return nil, err
	}
	interviews, err := s.interviewRepo.FindCompletedByUser(userID)
	if err != nil {
		return nil, err
	}

	stats := userStats([]model.User{*user}, evals)

	detail := &dto.AdminUserDetailDTO{
		User:       stats[0],
		Interviews: []dto.InterviewSummaryDTO{},
		GrowthData: growthData(interviews),
		WeakAreas:  weakAreas(interviews, adminWeakAreaCount),
	}
	for _, interview := range interviews {
		var summary dto.InterviewSummaryDTO
		copier.Copy(&summary, &interview)
		detail.Interviews = append(detail.Interviews, summary)
	}
	return detail, nil
}

// userStats folds the evaluation log into per-user aggregates, preserving
// the candidates' id order.
func userStats(users []model.User, evals []model.Evaluation) []dto.UserPerformanceDTO {
	type agg struct {
		total  float64
		count  int
		latest string
	}
	byUser := map[uint]*agg{}
	for _, e := range evals {
		a, ok := byUser[e.UserID]
		if !ok {
			a = &agg{}
			byUser[e.UserID] = a
		}
		a.total += e.OverallScore
		a.count++
		a.latest = e.ReadinessFlag // evals arrive in created order
	}

	stats := make([]dto.UserPerformanceDTO, 0, len(users))
	for _, u := range users {
		st := dto.UserPerformanceDTO{
			ID:              u.ID,
			Name:            u.Name,
			Email:           u.Email,
			ReadinessStatus: model.ReadinessNotReady,
		}
		if a, ok := byUser[u.ID]; ok && a.count > 0 {
			st.TotalInterviews = a.count
			st.AverageScore = RoundScore(a.total / float64(a.count))
			st.ReadinessStatus = a.latest
		}
		stats = append(stats, st)
	}
	return stats
}

// rankUsers orders by average score (descending for top performers,
// ascending for weak candidates), breaking ties by interview count
// descending (more data, more confidence) then user id ascending.
func rankUsers(stats []dto.UserPerformanceDTO, best bool, limit int) []dto.UserPerformanceDTO {
	ranked := make([]dto.UserPerformanceDTO, len(stats))
	copy(ranked, stats)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].AverageScore != ranked[j].AverageScore {
			if best {
				return ranked[i].AverageScore > ranked[j].AverageScore
			}
			return ranked[i].AverageScore < ranked[j].AverageScore
		}
		if ranked[i].TotalInterviews != ranked[j].TotalInterviews {
			return ranked[i].TotalInterviews > ranked[j].TotalInterviews
		}
		return ranked[i].ID < ranked[j].ID
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func growthData(interviews []model.Interview) []dto.GrowthPointDTO {
	points := make([]dto.GrowthPointDTO, 0, len(interviews))
	for _, interview := range interviews {
		if interview.CompletedAt == nil || interview.OverallScore == nil {
			continue
		}
		points = append(points, dto.GrowthPointDTO{
			Date:  interview.CompletedAt.UTC().Format("2006-01-02"),
			Score: *interview.OverallScore,
			Type:  interview.InterviewType,
		})
	}
	return points
}

func weakAreas(interviews []model.Interview, limit int) []dto.WeakAreaDTO {
	counts := map[string]int{}
	for _, interview := range interviews {
		for _, answer := range interview.Answers {
			if answer.Evaluation != nil && answer.Evaluation.WeaknessIdentified != "" {
				counts[answer.Evaluation.WeaknessIdentified]++
			}
		}
	}
	areas := make([]dto.WeakAreaDTO, 0, limit)
	for _, entry := range topCounts(counts, limit) {
		areas = append(areas, dto.WeakAreaDTO{Area: entry.key, Count: entry.count})
	}
	return areas
}

// streak counts consecutive calendar days with at least one completed
// interview, ending today or yesterday.
func streak(interviews []model.Interview, now time.Time) int {
	days := map[string]bool{}
	for _, interview := range interviews {
		if interview.CompletedAt != nil {
			days[interview.CompletedAt.UTC().Format("2006-01-02")] = true
		}
	}
	if len(days) == 0 {
		return 0
	}

	day := now
	if !days[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1) // a streak may end yesterday
	}
	count := 0
	for days[day.Format("2006-01-02")] {
		count++
		day = day.AddDate(0, 0, -1)
	}
	return count
}

type countEntry struct {
	key   string
	count int
}

// topCounts sorts a frequency map by count descending, key ascending for
// determinism, and keeps the first limit entries.
func topCounts(counts map[string]int, limit int) []countEntry {
	entries := make([]countEntry, 0, len(counts))
	for k, c := range counts {
		entries = append(entries, countEntry{k, c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
