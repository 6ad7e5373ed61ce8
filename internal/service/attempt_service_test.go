package service

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"quizmaster/internal/model"
)

func activeQuiz(id uint) model.Quiz {
	return model.Quiz{ID: id, Title: "Capitals", Duration: 15, Status: model.QuizStatusActive}
}

func fourQuestions(quizID uint) []model.Question {
	questions := make([]model.Question, 4)
	for i := range questions {
		questions[i] = model.Question{
			ID:            uint(10 + i),
			QuizID:        quizID,
			QuestionText:  "q",
			Option1:       "a",
			Option2:       "b",
			Option3:       "c",
			Option4:       "d",
			CorrectOption: i + 1,
		}
	}
	return questions
}

func newAttemptServiceForTest(t *testing.T) (AttemptService, *fakeAttemptRepo, *fakeQuestionRepo) {
	t.Helper()
	quizRepo := newFakeQuizRepo(activeQuiz(1))
	questionRepo := newFakeQuestionRepo(fourQuestions(1)...)
	attemptRepo := newFakeAttemptRepo()
	svc := NewAttemptService(quizRepo, questionRepo, attemptRepo, nil)
	return svc, attemptRepo, questionRepo
}

func TestGetOrCreateAttemptIsIdempotent(t *testing.T) {
	svc, attemptRepo, _ := newAttemptServiceForTest(t)

	first, err := svc.GetOrCreateAttempt(7, 1)
	if err != nil {
		t.Fatalf("GetOrCreateAttempt failed: %v", err)
	}
	second, err := svc.GetOrCreateAttempt(7, 1)
	if err != nil {
		t.Fatalf("second GetOrCreateAttempt failed: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected the same attempt, got ids %d and %d", first.ID, second.ID)
	}
	if !reflect.DeepEqual(first.ShuffledQuestionIDs, second.ShuffledQuestionIDs) {
		t.Fatalf("frozen order changed between calls: %v vs %v", first.ShuffledQuestionIDs, second.ShuffledQuestionIDs)
	}
	if attemptRepo.createCalls != 1 {
		t.Fatalf("expected exactly one insert, got %d", attemptRepo.createCalls)
	}
}

func TestGetOrCreateAttemptFreezesPermutationOfQuestions(t *testing.T) {
	svc, _, _ := newAttemptServiceForTest(t)

	attempt, err := svc.GetOrCreateAttempt(7, 1)
	if err != nil {
		t.Fatalf("GetOrCreateAttempt failed: %v", err)
	}

	if len(attempt.ShuffledQuestionIDs) != 4 {
		t.Fatalf("expected 4 frozen ids, got %v", attempt.ShuffledQuestionIDs)
	}
	seen := make(map[uint]bool)
	for _, id := range attempt.ShuffledQuestionIDs {
		if id < 10 || id > 13 {
			t.Fatalf("unexpected question id %d in frozen order", id)
		}
		if seen[id] {
			t.Fatalf("duplicate question id %d in frozen order", id)
		}
		seen[id] = true
	}
	if attempt.Status != model.AttemptStatusInProgress {
		t.Fatalf("new attempt status = %q, want in_progress", attempt.Status)
	}
}

func TestAbandonThenGetOrCreateProducesNewAttempt(t *testing.T) {
	svc, attemptRepo, _ := newAttemptServiceForTest(t)

	first, err := svc.GetOrCreateAttempt(7, 1)
	if err != nil {
		t.Fatalf("GetOrCreateAttempt failed: %v", err)
	}
	if err := svc.AbandonInProgress(7, 1); err != nil {
		t.Fatalf("AbandonInProgress failed: %v", err)
	}
	second, err := svc.GetOrCreateAttempt(7, 1)
	if err != nil {
		t.Fatalf("GetOrCreateAttempt after abandon failed: %v", err)
	}

	if first.ID == second.ID {
		t.Fatalf("expected a fresh attempt after abandon, got the same id %d", first.ID)
	}
	old, err := attemptRepo.FindByID(first.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if old.Status != model.AttemptStatusAbandoned {
		t.Fatalf("old attempt status = %q, want abandoned", old.Status)
	}
	if second.Status != model.AttemptStatusInProgress {
		t.Fatalf("new attempt status = %q, want in_progress", second.Status)
	}
}

func TestAbandonInProgressIsANoOpWithoutAttempt(t *testing.T) {
	svc, attemptRepo, _ := newAttemptServiceForTest(t)

	if err := svc.AbandonInProgress(7, 1); err != nil {
		t.Fatalf("AbandonInProgress on empty store failed: %v", err)
	}
	if attemptRepo.createCalls != 0 {
		t.Fatalf("abandon must not create attempts")
	}
}

func TestCompleteAttemptRejectsSecondCall(t *testing.T) {
	svc, attemptRepo, _ := newAttemptServiceForTest(t)

	attempt, err := svc.GetOrCreateAttempt(7, 1)
	if err != nil {
		t.Fatalf("GetOrCreateAttempt failed: %v", err)
	}

	if err := svc.CompleteAttempt(attempt.ID); err != nil {
		t.Fatalf("first CompleteAttempt failed: %v", err)
	}
	completed, err := attemptRepo.FindByID(attempt.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if completed.Status != model.AttemptStatusCompleted || completed.CompletedAt == nil {
		t.Fatalf("attempt not completed properly: status=%q completedAt=%v", completed.Status, completed.CompletedAt)
	}
	firstCompletedAt := *completed.CompletedAt

	err = svc.CompleteAttempt(attempt.ID)
	if !errors.Is(err, ErrAttemptNotInProgress) {
		t.Fatalf("second CompleteAttempt error = %v, want ErrAttemptNotInProgress", err)
	}
	after, _ := attemptRepo.FindByID(attempt.ID)
	if !after.CompletedAt.Equal(firstCompletedAt) {
		t.Fatalf("completed_at changed on repeated completion")
	}
}

func TestCompleteAttemptMissingAttempt(t *testing.T) {
	svc, _, _ := newAttemptServiceForTest(t)

	if err := svc.CompleteAttempt(999); !errors.Is(err, ErrAttemptNotFound) {
		t.Fatalf("CompleteAttempt(999) error = %v, want ErrAttemptNotFound", err)
	}
}

func TestConcurrentGetOrCreateLeavesOneInProgressAttempt(t *testing.T) {
	svc, attemptRepo, _ := newAttemptServiceForTest(t)

	const callers = 8
	var wg sync.WaitGroup
	ids := make([]uint, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			attempt, err := svc.GetOrCreateAttempt(7, 1)
			if err != nil {
				errs[i] = err
				return
			}
			ids[i] = attempt.ID
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("caller %d failed: %v", i, err)
		}
	}
	for i := 1; i < callers; i++ {
		if ids[i] != ids[0] {
			t.Fatalf("callers saw different attempts: %v", ids)
		}
	}
	if got := attemptRepo.inProgressCount(7, 1); got != 1 {
		t.Fatalf("expected exactly one in_progress attempt, got %d", got)
	}
}

func TestStartOrResumeQuizReturnsFrozenOrder(t *testing.T) {
	svc, _, _ := newAttemptServiceForTest(t)

	first, err := svc.StartOrResumeQuiz(7, 1, false)
	if err != nil {
		t.Fatalf("StartOrResumeQuiz failed: %v", err)
	}
	if first.DurationMinutes != 15 {
		t.Fatalf("duration = %d, want 15", first.DurationMinutes)
	}
	if len(first.Questions) != 4 {
		t.Fatalf("expected 4 questions, got %d", len(first.Questions))
	}

	second, err := svc.StartOrResumeQuiz(7, 1, false)
	if err != nil {
		t.Fatalf("resume failed: %v", err)
	}
	if second.AttemptID != first.AttemptID {
		t.Fatalf("resume created a new attempt: %d vs %d", second.AttemptID, first.AttemptID)
	}
	for i := range first.Questions {
		if first.Questions[i].ID != second.Questions[i].ID {
			t.Fatalf("question order changed on resume: %v vs %v", first.Questions, second.Questions)
		}
	}
}

func TestStartOrResumeQuizRetakeReshuffles(t *testing.T) {
	svc, attemptRepo, _ := newAttemptServiceForTest(t)

	first, err := svc.StartOrResumeQuiz(7, 1, false)
	if err != nil {
		t.Fatalf("StartOrResumeQuiz failed: %v", err)
	}
	retake, err := svc.StartOrResumeQuiz(7, 1, true)
	if err != nil {
		t.Fatalf("retake failed: %v", err)
	}

	if retake.AttemptID == first.AttemptID {
		t.Fatalf("retake reused attempt %d", first.AttemptID)
	}
	old, _ := attemptRepo.FindByID(first.AttemptID)
	if old.Status != model.AttemptStatusAbandoned {
		t.Fatalf("previous attempt status = %q, want abandoned", old.Status)
	}
	if got := attemptRepo.inProgressCount(7, 1); got != 1 {
		t.Fatalf("expected one in_progress attempt after retake, got %d", got)
	}
}

func TestStartOrResumeQuizErrors(t *testing.T) {
	quizRepo := newFakeQuizRepo(
		activeQuiz(1),
		model.Quiz{ID: 2, Title: "Draft", Duration: 10, Status: model.QuizStatusInactive},
		model.Quiz{ID: 3, Title: "Empty", Duration: 10, Status: model.QuizStatusActive},
	)
	questionRepo := newFakeQuestionRepo(fourQuestions(1)...)
	attemptRepo := newFakeAttemptRepo()
	svc := NewAttemptService(quizRepo, questionRepo, attemptRepo, nil)

	if _, err := svc.StartOrResumeQuiz(7, 99, false); !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("unknown quiz error = %v, want ErrQuizNotFound", err)
	}
	if _, err := svc.StartOrResumeQuiz(7, 2, false); !errors.Is(err, ErrQuizInactive) {
		t.Fatalf("inactive quiz error = %v, want ErrQuizInactive", err)
	}
	if _, err := svc.StartOrResumeQuiz(7, 3, false); !errors.Is(err, ErrQuizHasNoQuestions) {
		t.Fatalf("empty quiz error = %v, want ErrQuizHasNoQuestions", err)
	}
	if attemptRepo.createCalls != 0 {
		t.Fatalf("rejected starts must not insert attempts, got %d", attemptRepo.createCalls)
	}
}

func TestGetOrCreateAttemptEmptyQuizLeavesNoAttempt(t *testing.T) {
	quizRepo := newFakeQuizRepo(model.Quiz{ID: 3, Title: "Empty", Duration: 10, Status: model.QuizStatusActive})
	attemptRepo := newFakeAttemptRepo()
	svc := NewAttemptService(quizRepo, newFakeQuestionRepo(), attemptRepo, nil)

	for i := 0; i < 2; i++ {
		if _, err := svc.GetOrCreateAttempt(7, 3); !errors.Is(err, ErrQuizHasNoQuestions) {
			t.Fatalf("call %d error = %v, want ErrQuizHasNoQuestions", i, err)
		}
	}
	if got := attemptRepo.inProgressCount(7, 3); got != 0 {
		t.Fatalf("empty quiz grew %d in_progress attempts, want 0", got)
	}
}

func TestStartOrResumeQuizSkipsDeletedQuestions(t *testing.T) {
	svc, _, questionRepo := newAttemptServiceForTest(t)

	first, err := svc.StartOrResumeQuiz(7, 1, false)
	if err != nil {
		t.Fatalf("StartOrResumeQuiz failed: %v", err)
	}
	if err := questionRepo.Delete(11); err != nil {
		t.Fatalf("delete question: %v", err)
	}

	resumed, err := svc.StartOrResumeQuiz(7, 1, false)
	if err != nil {
		t.Fatalf("resume failed: %v", err)
	}
	if resumed.AttemptID != first.AttemptID {
		t.Fatalf("resume created a new attempt")
	}
	if len(resumed.Questions) != 3 {
		t.Fatalf("expected 3 surviving questions, got %d", len(resumed.Questions))
	}
	for _, q := range resumed.Questions {
		if q.ID == 11 {
			t.Fatalf("deleted question 11 still rendered")
		}
	}
}

func TestGetOrCreateAttemptReadsThroughCache(t *testing.T) {
	quizRepo := newFakeQuizRepo(activeQuiz(1))
	questionRepo := newFakeQuestionRepo(fourQuestions(1)...)
	cache := newFakeQuestionCache()
	svc := NewAttemptService(quizRepo, questionRepo, newFakeAttemptRepo(), cache)

	if _, err := svc.GetOrCreateAttempt(7, 1); err != nil {
		t.Fatalf("GetOrCreateAttempt failed: %v", err)
	}
	if cache.setCalls != 1 {
		t.Fatalf("expected question list to be cached, setCalls=%d", cache.setCalls)
	}
	if questionRepo.findByQuizCalls != 1 {
		t.Fatalf("expected one repository read, got %d", questionRepo.findByQuizCalls)
	}

	// A second user hits the cache instead of the repository.
	if _, err := svc.GetOrCreateAttempt(8, 1); err != nil {
		t.Fatalf("GetOrCreateAttempt for second user failed: %v", err)
	}
	if questionRepo.findByQuizCalls != 1 {
		t.Fatalf("expected cached read, repository reads=%d", questionRepo.findByQuizCalls)
	}
}
