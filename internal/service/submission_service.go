package service

import (
	"errors"
	"fmt"

	"quizmaster/internal/dto"
	"quizmaster/internal/model"
	"quizmaster/internal/repository"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SubmissionService grades a submitted attempt against its frozen
// question order and records the result.
type SubmissionService interface {
	SubmitQuiz(userID, attemptID uint, answers map[uint]int) (*dto.ResultDTO, error)
}

type submissionService struct {
	attemptRepo  repository.AttemptRepository
	questionRepo repository.QuestionRepository
	resultRepo   repository.ResultRepository
	attempts     AttemptService
}

func NewSubmissionService(
	attemptRepo repository.AttemptRepository,
	questionRepo repository.QuestionRepository,
	resultRepo repository.ResultRepository,
	attempts AttemptService,
) SubmissionService {
	return &submissionService{
		attemptRepo:  attemptRepo,
		questionRepo: questionRepo,
		resultRepo:   resultRepo,
		attempts:     attempts,
	}
}

// SubmitQuiz scores one point per correct answer, no partial credit, no
// negative marking. An unanswered question counts as wrong. Questions
// deleted since the attempt was created drop out of both the score and
// the denominator: the frozen id list is re-resolved against the live
// question bank at grading time rather than trusted blindly.
func (s *submissionService) SubmitQuiz(userID, attemptID uint, answers map[uint]int) (*dto.ResultDTO, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("loading attempt %d: %w", attemptID, err)
	}
	if attempt.UserID != userID {
		return nil, ErrAttemptNotFound
	}
	if attempt.Status != model.AttemptStatusInProgress {
		return nil, ErrAttemptNotInProgress
	}

	byID, err := s.questionRepo.FindByIDs(attempt.ShuffledQuestionIDs)
	if err != nil {
		return nil, fmt.Errorf("resolving questions for attempt %d: %w", attemptID, err)
	}

	correct := 0
	total := 0
	for _, id := range attempt.ShuffledQuestionIDs {
		question, exists := byID[id]
		if !exists {
			continue // deleted mid-attempt, excluded from grading
		}
		total++
		if answers[id] == question.CorrectOption {
			correct++
		}
	}

	// Completing first is the commit point: the status guard in the
	// update loses exactly one of two concurrent submissions, so at
	// most one result row is ever written per attempt.
	if err := s.attempts.CompleteAttempt(attempt.ID); err != nil {
		return nil, err
	}

	result := &model.Result{
		UserID:         attempt.UserID,
		QuizID:         attempt.QuizID,
		Score:          correct,
		TotalQuestions: total,
		CorrectAnswers: correct,
		WrongAnswers:   total - correct,
	}
	if err := s.resultRepo.Create(result); err != nil {
		return nil, fmt.Errorf("saving result for attempt %d: %w", attemptID, err)
	}

	log.Info().
		Uint("userID", userID).
		Uint("quizID", attempt.QuizID).
		Uint("attemptID", attempt.ID).
		Int("score", result.Score).
		Int("total", result.TotalQuestions).
		Msg("Quiz submitted")

	var resp dto.ResultDTO
	if err := copier.Copy(&resp, result); err != nil {
		return nil, fmt.Errorf("preparing result response: %w", err)
	}
	return &resp, nil
}
