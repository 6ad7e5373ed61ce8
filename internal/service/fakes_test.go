package service

import (
	"sync"
	"time"

	"quizmaster/internal/model"
	"quizmaster/internal/repository"

	"gorm.io/gorm"
)

type fakeQuizRepo struct {
	quizzes map[uint]model.Quiz

	findCalls int
}

func newFakeQuizRepo(quizzes ...model.Quiz) *fakeQuizRepo {
	f := &fakeQuizRepo{quizzes: make(map[uint]model.Quiz)}
	for _, q := range quizzes {
		f.quizzes[q.ID] = q
	}
	return f
}

func (f *fakeQuizRepo) Create(quiz *model.Quiz) error {
	if quiz.ID == 0 {
		quiz.ID = uint(len(f.quizzes) + 1)
	}
	f.quizzes[quiz.ID] = *quiz
	return nil
}

func (f *fakeQuizRepo) Update(quiz *model.Quiz) error {
	f.quizzes[quiz.ID] = *quiz
	return nil
}

func (f *fakeQuizRepo) Delete(id uint) error {
	delete(f.quizzes, id)
	return nil
}

func (f *fakeQuizRepo) FindByID(id uint) (*model.Quiz, error) {
	f.findCalls++
	quiz, ok := f.quizzes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &quiz, nil
}

func (f *fakeQuizRepo) FindAllActive() ([]repository.QuizWithQuestionCount, error) {
	var out []repository.QuizWithQuestionCount
	for _, q := range f.quizzes {
		if q.Status == model.QuizStatusActive {
			out = append(out, repository.QuizWithQuestionCount{Quiz: q})
		}
	}
	return out, nil
}

func (f *fakeQuizRepo) FindAll() ([]repository.QuizWithQuestionCount, error) {
	var out []repository.QuizWithQuestionCount
	for _, q := range f.quizzes {
		out = append(out, repository.QuizWithQuestionCount{Quiz: q})
	}
	return out, nil
}

func (f *fakeQuizRepo) Count() (int64, error) {
	return int64(len(f.quizzes)), nil
}

type fakeQuestionRepo struct {
	questions map[uint]model.Question

	findByQuizCalls int
	findByIDsCalls  int
}

func newFakeQuestionRepo(questions ...model.Question) *fakeQuestionRepo {
	f := &fakeQuestionRepo{questions: make(map[uint]model.Question)}
	for _, q := range questions {
		f.questions[q.ID] = q
	}
	return f
}

func (f *fakeQuestionRepo) Create(question *model.Question) error {
	if question.ID == 0 {
		question.ID = uint(len(f.questions) + 1)
	}
	f.questions[question.ID] = *question
	return nil
}

func (f *fakeQuestionRepo) Update(question *model.Question) error {
	f.questions[question.ID] = *question
	return nil
}

func (f *fakeQuestionRepo) Delete(id uint) error {
	delete(f.questions, id)
	return nil
}

func (f *fakeQuestionRepo) FindByID(id uint) (*model.Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &q, nil
}

func (f *fakeQuestionRepo) FindByQuizID(quizID uint) ([]model.Question, error) {
	f.findByQuizCalls++
	var out []model.Question
	var maxID uint
	for id := range f.questions {
		if id > maxID {
			maxID = id
		}
	}
	for id := uint(1); id <= maxID; id++ {
		if q, ok := f.questions[id]; ok && q.QuizID == quizID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuestionRepo) FindByIDs(ids []uint) (map[uint]model.Question, error) {
	f.findByIDsCalls++
	out := make(map[uint]model.Question, len(ids))
	for _, id := range ids {
		if q, ok := f.questions[id]; ok {
			out[id] = q
		}
	}
	return out, nil
}

func (f *fakeQuestionRepo) CountByQuizID(quizID uint) (int64, error) {
	var count int64
	for _, q := range f.questions {
		if q.QuizID == quizID {
			count++
		}
	}
	return count, nil
}

// fakeAttemptRepo mimics the store's partial unique constraint: a
// second in_progress insert for the same (user, quiz) fails with
// gorm.ErrDuplicatedKey, exactly like the real attempt table.
type fakeAttemptRepo struct {
	mu       sync.Mutex
	attempts map[uint]model.QuizAttempt
	nextID   uint

	createCalls int
}

func newFakeAttemptRepo() *fakeAttemptRepo {
	return &fakeAttemptRepo{attempts: make(map[uint]model.QuizAttempt), nextID: 1}
}

func (f *fakeAttemptRepo) Create(attempt *model.QuizAttempt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	for _, a := range f.attempts {
		if a.UserID == attempt.UserID && a.QuizID == attempt.QuizID && a.Status == model.AttemptStatusInProgress {
			return gorm.ErrDuplicatedKey
		}
	}
	attempt.ID = f.nextID
	f.nextID++
	attempt.StartedAt = time.Now()
	f.attempts[attempt.ID] = *attempt
	return nil
}

func (f *fakeAttemptRepo) FindByID(id uint) (*model.QuizAttempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.attempts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (f *fakeAttemptRepo) FindInProgress(userID, quizID uint) (*model.QuizAttempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.attempts {
		if a.UserID == userID && a.QuizID == quizID && a.Status == model.AttemptStatusInProgress {
			found := a
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttemptRepo) AbandonInProgress(userID, quizID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, a := range f.attempts {
		if a.UserID == userID && a.QuizID == quizID && a.Status == model.AttemptStatusInProgress {
			a.Status = model.AttemptStatusAbandoned
			f.attempts[id] = a
		}
	}
	return nil
}

func (f *fakeAttemptRepo) Complete(id uint, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.attempts[id]
	if !ok || a.Status != model.AttemptStatusInProgress {
		return false, nil
	}
	a.Status = model.AttemptStatusCompleted
	a.CompletedAt = &at
	f.attempts[id] = a
	return true, nil
}

func (f *fakeAttemptRepo) inProgressCount(userID, quizID uint) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, a := range f.attempts {
		if a.UserID == userID && a.QuizID == quizID && a.Status == model.AttemptStatusInProgress {
			count++
		}
	}
	return count
}

type fakeResultRepo struct {
	results []model.Result

	createCalls int
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{}
}

func (f *fakeResultRepo) Create(result *model.Result) error {
	f.createCalls++
	result.ID = uint(len(f.results) + 1)
	result.CreatedAt = time.Now()
	f.results = append(f.results, *result)
	return nil
}

func (f *fakeResultRepo) FindByUserID(userID uint) ([]repository.ResultWithQuiz, error) {
	var out []repository.ResultWithQuiz
	for _, r := range f.results {
		if r.UserID == userID {
			out = append(out, repository.ResultWithQuiz{Result: r})
		}
	}
	return out, nil
}

func (f *fakeResultRepo) FindAll() ([]repository.ResultWithUserAndQuiz, error) {
	var out []repository.ResultWithUserAndQuiz
	for _, r := range f.results {
		out = append(out, repository.ResultWithUserAndQuiz{Result: r})
	}
	return out, nil
}

func (f *fakeResultRepo) Count() (int64, error) {
	return int64(len(f.results)), nil
}

func (f *fakeResultRepo) AverageScore() (float64, error) {
	if len(f.results) == 0 {
		return 0, nil
	}
	sum := 0
	for _, r := range f.results {
		sum += r.Score
	}
	return float64(sum) / float64(len(f.results)), nil
}

type fakeUserRepo struct {
	users  map[uint]model.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]model.User), nextID: 1}
}

func (f *fakeUserRepo) Create(user *model.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) Update(user *model.User) error {
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) FindByID(id uint) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindAll() ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Count() (int64, error) {
	return int64(len(f.users)), nil
}

type fakeResetRepo struct {
	resets map[string]model.PasswordReset
	nextID uint
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{resets: make(map[string]model.PasswordReset), nextID: 1}
}

func (f *fakeResetRepo) Create(reset *model.PasswordReset) error {
	reset.ID = f.nextID
	f.nextID++
	f.resets[reset.Token] = *reset
	return nil
}

func (f *fakeResetRepo) FindByToken(token string) (*model.PasswordReset, error) {
	r, ok := f.resets[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &r, nil
}

func (f *fakeResetRepo) MarkUsed(id uint, at time.Time) error {
	for token, r := range f.resets {
		if r.ID == id {
			r.UsedAt = &at
			f.resets[token] = r
		}
	}
	return nil
}

// fakeQuestionCache counts hits and sets so tests can assert the
// read-through behavior.
type fakeQuestionCache struct {
	entries map[uint][]model.Question

	getCalls        int
	setCalls        int
	invalidateCalls int
}

func newFakeQuestionCache() *fakeQuestionCache {
	return &fakeQuestionCache{entries: make(map[uint][]model.Question)}
}

func (f *fakeQuestionCache) GetQuestions(quizID uint) ([]model.Question, error) {
	f.getCalls++
	qs, ok := f.entries[quizID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return qs, nil
}

func (f *fakeQuestionCache) SetQuestions(quizID uint, questions []model.Question) error {
	f.setCalls++
	f.entries[quizID] = questions
	return nil
}

func (f *fakeQuestionCache) InvalidateQuestions(quizID uint) error {
	f.invalidateCalls++
	delete(f.entries, quizID)
	return nil
}
