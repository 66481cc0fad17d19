package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"interviewiq-server/internal/apperr"
	"interviewiq-server/internal/model"
)

// In-memory repository fakes so service behavior can be tested without a
// database.

type fakeQuestionRepo struct {
	questions []model.Question
}

func (f *fakeQuestionRepo) Create(q *model.Question) error {
	f.questions = append(f.questions, *q)
	return nil
}

func (f *fakeQuestionRepo) FindByID(id uint) (*model.Question, error) {
	for i := range f.questions {
		if f.questions[i].ID == id {
			q := f.questions[i]
			return &q, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeQuestionRepo) FindCandidates(interviewType, focusArea string, difficulty int, excludedIDs []uint) ([]model.Question, error) {
	excluded := map[uint]bool{}
	for _, id := range excludedIDs {
		excluded[id] = true
	}
	var out []model.Question
	for _, q := range f.questions {
		if q.InterviewType != interviewType || q.Difficulty != difficulty || excluded[q.ID] {
			continue
		}
		if focusArea != "" && q.FocusArea != focusArea {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func (f *fakeQuestionRepo) FindByType(interviewType string) ([]model.Question, error) {
	var out []model.Question
	for _, q := range f.questions {
		if interviewType == "" || q.InterviewType == interviewType {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuestionRepo) Count() (int64, error) {
	return int64(len(f.questions)), nil
}

type fakeEvaluationRepo struct {
	evals []model.Evaluation
}

func (f *fakeEvaluationRepo) Create(eval *model.Evaluation) error {
	eval.ID = uint(len(f.evals) + 1)
	f.evals = append(f.evals, *eval)
	return nil
}

func (f *fakeEvaluationRepo) FindByInterviewID(interviewID uint) (*model.Evaluation, error) {
	for i := range f.evals {
		if f.evals[i].InterviewID == interviewID {
			e := f.evals[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeEvaluationRepo) FindAllByUser(userID uint) ([]model.Evaluation, error) {
	var out []model.Evaluation
	for _, e := range f.evals {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEvaluationRepo) FindAll() ([]model.Evaluation, error) {
	return append([]model.Evaluation(nil), f.evals...), nil
}

type fakeInterviewRepo struct {
	interviews   map[uint]*model.Interview
	evals        *fakeEvaluationRepo
	nextID       uint
	nextAnswerID uint
}

func newFakeInterviewRepo(evals *fakeEvaluationRepo) *fakeInterviewRepo {
	return &fakeInterviewRepo{interviews: map[uint]*model.Interview{}, evals: evals}
}

func cloneInterview(iv *model.Interview) *model.Interview {
	out := *iv
	out.Questions = append([]model.InterviewQuestion(nil), iv.Questions...)
	out.Answers = make([]model.Answer, len(iv.Answers))
	for i, a := range iv.Answers {
		out.Answers[i] = a
		if a.Evaluation != nil {
			ev := *a.Evaluation
			out.Answers[i].Evaluation = &ev
		}
	}
	return &out
}

func (f *fakeInterviewRepo) Create(interview *model.Interview) error {
	f.nextID++
	interview.ID = f.nextID
	for i := range interview.Questions {
		interview.Questions[i].InterviewID = interview.ID
	}
	f.interviews[interview.ID] = cloneInterview(interview)
	return nil
}

func (f *fakeInterviewRepo) FindByID(id uint) (*model.Interview, error) {
	return f.FindByIDWithDetails(id)
}

func (f *fakeInterviewRepo) FindByIDWithDetails(id uint) (*model.Interview, error) {
	iv, ok := f.interviews[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneInterview(iv), nil
}

func (f *fakeInterviewRepo) AppendQuestion(iq *model.InterviewQuestion) error {
	iv := f.interviews[iq.InterviewID]
	iv.Questions = append(iv.Questions, *iq)
	return nil
}

func (f *fakeInterviewRepo) CreateAnswer(answer *model.Answer) error {
	f.nextAnswerID++
	answer.ID = f.nextAnswerID
	iv := f.interviews[answer.InterviewID]
	iv.Answers = append(iv.Answers, *answer)
	return nil
}

func (f *fakeInterviewRepo) CreateAnswerEvaluation(eval *model.AnswerEvaluation) error {
	for _, iv := range f.interviews {
		for i := range iv.Answers {
			if iv.Answers[i].ID == eval.AnswerID {
				ev := *eval
				iv.Answers[i].Evaluation = &ev
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeInterviewRepo) MarkCompleted(interviewID uint, completedAt time.Time) error {
	iv := f.interviews[interviewID]
	if iv.Status != model.StatusInProgress {
		return nil
	}
	iv.Status = model.StatusCompleted
	iv.CompletedAt = &completedAt
	return nil
}

func (f *fakeInterviewRepo) FinalizeEvaluation(evaluation *model.Evaluation, completedAt *time.Time) error {
	if err := f.evals.Create(evaluation); err != nil {
		return err
	}
	iv := f.interviews[evaluation.InterviewID]
	iv.Status = model.StatusCompleted
	score := evaluation.OverallScore
	iv.OverallScore = &score
	if completedAt != nil {
		t := *completedAt
		iv.CompletedAt = &t
	}
	return nil
}

// sortedInterviews returns the stored interviews in id order so list results
// are deterministic, the way the real repository orders its queries.
func (f *fakeInterviewRepo) sortedInterviews() []*model.Interview {
	ids := make([]uint, 0, len(f.interviews))
	for id := range f.interviews {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*model.Interview, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.interviews[id])
	}
	return out
}

func (f *fakeInterviewRepo) FindAllByUser(userID uint) ([]model.Interview, error) {
	var out []model.Interview
	for _, iv := range f.sortedInterviews() {
		if iv.UserID == userID {
			out = append(out, *cloneInterview(iv))
		}
	}
	return out, nil
}

func (f *fakeInterviewRepo) FindCompletedByUser(userID uint) ([]model.Interview, error) {
	var out []model.Interview
	for _, iv := range f.sortedInterviews() {
		if iv.UserID == userID && iv.Status == model.StatusCompleted {
			out = append(out, *cloneInterview(iv))
		}
	}
	return out, nil
}

func (f *fakeInterviewRepo) FindAllCompleted() ([]model.Interview, error) {
	var out []model.Interview
	for _, iv := range f.sortedInterviews() {
		if iv.Status == model.StatusCompleted {
			out = append(out, *cloneInterview(iv))
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users  []model.User
	nextID uint
}

func (f *fakeUserRepo) Create(user *model.User) error {
	f.nextID++
	user.ID = f.nextID
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserRepo) FindByID(id uint) (*model.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateLastLogin(id uint) error {
	for i := range f.users {
		if f.users[i].ID == id {
			now := time.Now()
			f.users[i].LastLogin = &now
		}
	}
	return nil
}

func (f *fakeUserRepo) FindAllCandidates() ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		if u.Role == model.RoleCandidate {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) CountCandidates() (int64, error) {
	users, _ := f.FindAllCandidates()
	return int64(len(users)), nil
}

// fakeEvaluator hands out scripted scores in submission order. failures > 0
// makes the next calls fail as if the model endpoint were down.
type fakeEvaluator struct {
	scores   []float64
	next     int
	failures int
	weakness string
}

func (f *fakeEvaluator) Evaluate(ctx context.Context, interviewType string, question *model.InterviewQuestion, answerText string) (*model.AnswerEvaluation, error) {
	if f.failures > 0 {
		f.failures--
		return nil, apperr.EvaluationUnavailable(nil, "evaluator offline")
	}
	score := 5.0
	if f.next < len(f.scores) {
		score = f.scores[f.next]
	}
	f.next++
	return &model.AnswerEvaluation{
		Score:              score,
		Clarity:            score,
		Confidence:         score,
		Structure:          score,
		Relevance:          score,
		WeaknessIdentified: f.weakness,
	}, nil
}
