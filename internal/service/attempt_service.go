package service

import (
	"errors"
	"fmt"
	"time"

	"quizmaster/internal/dto"
	"quizmaster/internal/model"
	"quizmaster/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// QuestionCache is a read-through cache for a quiz's question list.
// Implementations may miss at any time; callers fall back to the
// repository.
type QuestionCache interface {
	GetQuestions(quizID uint) ([]model.Question, error)
	SetQuestions(quizID uint, questions []model.Question) error
	InvalidateQuestions(quizID uint) error
}

// AttemptService owns the attempt lifecycle: at most one in_progress
// attempt per (user, quiz), a frozen shuffled question order fixed at
// creation, and the in_progress -> completed / abandoned transitions.
type AttemptService interface {
	// StartOrResumeQuiz returns the caller's in_progress attempt for the
	// quiz, creating one with a freshly shuffled question order if none
	// exists. With retake set, any in_progress attempt is abandoned
	// first so the new attempt gets a new shuffle.
	StartOrResumeQuiz(userID, quizID uint, retake bool) (*dto.QuizSessionDTO, error)
	// GetOrCreateAttempt is idempotent: repeated calls without an
	// intervening abandon or completion return the same attempt with
	// the same frozen order.
	GetOrCreateAttempt(userID, quizID uint) (*model.QuizAttempt, error)
	// AbandonInProgress is a no-op when no in_progress attempt exists.
	AbandonInProgress(userID, quizID uint) error
	// CompleteAttempt rejects attempts that are absent or no longer
	// in_progress; a second completion never touches completed_at.
	CompleteAttempt(attemptID uint) error
}

type attemptService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	attemptRepo  repository.AttemptRepository
	cache        QuestionCache
}

func NewAttemptService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
	cache QuestionCache,
) AttemptService {
	return &attemptService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		cache:        cache,
	}
}

func (s *attemptService) StartOrResumeQuiz(userID, quizID uint, retake bool) (*dto.QuizSessionDTO, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("loading quiz %d: %w", quizID, err)
	}
	if quiz.Status != model.QuizStatusActive {
		return nil, ErrQuizInactive
	}

	if retake {
		if err := s.AbandonInProgress(userID, quizID); err != nil {
			return nil, err
		}
	}

	attempt, err := s.GetOrCreateAttempt(userID, quizID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionsInFrozenOrder(attempt.ShuffledQuestionIDs)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrQuizHasNoQuestions
	}

	session := &dto.QuizSessionDTO{
		AttemptID:       attempt.ID,
		QuizID:          quiz.ID,
		QuizTitle:       quiz.Title,
		DurationMinutes: quiz.Duration,
		StartedAt:       attempt.StartedAt,
		Questions:       make([]dto.QuestionDTO, len(questions)),
	}
	for i, q := range questions {
		session.Questions[i] = dto.QuestionDTO{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			Option1:      q.Option1,
			Option2:      q.Option2,
			Option3:      q.Option3,
			Option4:      q.Option4,
		}
	}
	return session, nil
}

func (s *attemptService) GetOrCreateAttempt(userID, quizID uint) (*model.QuizAttempt, error) {
	existing, err := s.attemptRepo.FindInProgress(userID, quizID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("looking up attempt for user %d quiz %d: %w", userID, quizID, err)
	}

	questions, err := s.fetchQuestions(quizID)
	if err != nil {
		return nil, err
	}
	// Refusing here keeps an empty quiz from growing an attempt row
	// that the next start call would resume and reject again.
	if len(questions) == 0 {
		return nil, ErrQuizHasNoQuestions
	}
	ids := make(model.QuestionIDs, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}

	// User-specific seed so retakes get a fresh order; reproducible for
	// the lifetime of the attempt because the result is persisted.
	seed := fmt.Sprintf("%d%d%d", userID, quizID, time.Now().Unix())

	attempt := &model.QuizAttempt{
		UserID:              userID,
		QuizID:              quizID,
		ShuffledQuestionIDs: ShuffleQuestionIDs(ids, seed),
		Status:              model.AttemptStatusInProgress,
	}
	if err := s.attemptRepo.Create(attempt); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent request won the insert; its attempt is the
			// one in progress, so hand that back instead of failing.
			log.Info().Uint("userID", userID).Uint("quizID", quizID).Msg("Attempt creation raced, resuming existing attempt")
			return s.attemptRepo.FindInProgress(userID, quizID)
		}
		return nil, fmt.Errorf("creating attempt for user %d quiz %d: %w", userID, quizID, err)
	}
	return attempt, nil
}

func (s *attemptService) AbandonInProgress(userID, quizID uint) error {
	if err := s.attemptRepo.AbandonInProgress(userID, quizID); err != nil {
		return fmt.Errorf("abandoning attempts for user %d quiz %d: %w", userID, quizID, err)
	}
	return nil
}

func (s *attemptService) CompleteAttempt(attemptID uint) error {
	completed, err := s.attemptRepo.Complete(attemptID, time.Now())
	if err != nil {
		return fmt.Errorf("completing attempt %d: %w", attemptID, err)
	}
	if completed {
		return nil
	}
	if _, err := s.attemptRepo.FindByID(attemptID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAttemptNotFound
		}
		return fmt.Errorf("loading attempt %d: %w", attemptID, err)
	}
	return ErrAttemptNotInProgress
}

// fetchQuestions reads the quiz's ordered question list through the
// cache when one is configured.
func (s *attemptService) fetchQuestions(quizID uint) ([]model.Question, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetQuestions(quizID); err == nil && cached != nil {
			return cached, nil
		}
	}
	questions, err := s.questionRepo.FindByQuizID(quizID)
	if err != nil {
		return nil, fmt.Errorf("loading questions for quiz %d: %w", quizID, err)
	}
	if s.cache != nil && len(questions) > 0 {
		if err := s.cache.SetQuestions(quizID, questions); err != nil {
			log.Warn().Err(err).Uint("quizID", quizID).Msg("Failed to cache question list")
		}
	}
	return questions, nil
}

// questionsInFrozenOrder resolves the frozen id list against the
// questions that still exist, preserving the shuffled order and
// silently dropping ids whose questions were deleted mid-attempt.
func (s *attemptService) questionsInFrozenOrder(ids model.QuestionIDs) ([]model.Question, error) {
	byID, err := s.questionRepo.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("resolving frozen question order: %w", err)
	}
	ordered := make([]model.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}
	return ordered, nil
}
