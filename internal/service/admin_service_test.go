package service

import (
	"errors"
	"testing"

	"quizmaster/internal/dto"
)

func newAdminServiceForTest(t *testing.T) (AdminService, *fakeQuestionCache) {
	t.Helper()
	quizRepo := newFakeQuizRepo(activeQuiz(1))
	questionRepo := newFakeQuestionRepo(fourQuestions(1)...)
	cache := newFakeQuestionCache()
	svc := NewAdminService(quizRepo, questionRepo, newFakeResultRepo(), newFakeUserRepo(), cache)
	return svc, cache
}

func questionPayload() dto.QuestionCreateDTO {
	return dto.QuestionCreateDTO{
		QuestionText:  "Capital of France?",
		Option1:       "Paris",
		Option2:       "Lyon",
		Option3:       "Nice",
		Option4:       "Lille",
		CorrectOption: 1,
	}
}

func TestUpdateQuestionMissing(t *testing.T) {
	svc, _ := newAdminServiceForTest(t)

	if _, err := svc.UpdateQuestion(999, questionPayload()); !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("UpdateQuestion(999) error = %v, want ErrQuestionNotFound", err)
	}
}

func TestDeleteQuestionMissing(t *testing.T) {
	svc, _ := newAdminServiceForTest(t)

	if err := svc.DeleteQuestion(999); !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("DeleteQuestion(999) error = %v, want ErrQuestionNotFound", err)
	}
}

func TestAddQuestionUnknownQuiz(t *testing.T) {
	svc, _ := newAdminServiceForTest(t)

	if _, err := svc.AddQuestion(999, questionPayload()); !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("AddQuestion to unknown quiz error = %v, want ErrQuizNotFound", err)
	}
}

func TestQuestionMutationsInvalidateCache(t *testing.T) {
	svc, cache := newAdminServiceForTest(t)

	added, err := svc.AddQuestion(1, questionPayload())
	if err != nil {
		t.Fatalf("AddQuestion failed: %v", err)
	}
	if _, err := svc.UpdateQuestion(added.ID, questionPayload()); err != nil {
		t.Fatalf("UpdateQuestion failed: %v", err)
	}
	if err := svc.DeleteQuestion(added.ID); err != nil {
		t.Fatalf("DeleteQuestion failed: %v", err)
	}

	if cache.invalidateCalls != 3 {
		t.Fatalf("invalidations = %d, want one per mutation", cache.invalidateCalls)
	}
}

func TestFailedQuestionMutationsLeaveCacheAlone(t *testing.T) {
	svc, cache := newAdminServiceForTest(t)

	if _, err := svc.UpdateQuestion(999, questionPayload()); err == nil {
		t.Fatalf("expected error")
	}
	if err := svc.DeleteQuestion(999); err == nil {
		t.Fatalf("expected error")
	}
	if cache.invalidateCalls != 0 {
		t.Fatalf("failed mutations invalidated the cache %d times", cache.invalidateCalls)
	}
}
