package service

import (
	"fmt"

	"quizmaster/internal/dto"
	"quizmaster/internal/repository"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// QuizService serves the user-facing read side: the dashboard list of
// active quizzes and the caller's own result history.
type QuizService interface {
	GetActiveQuizzes() ([]dto.QuizSummaryDTO, error)
	GetUserResults(userID uint) ([]dto.ResultHistoryDTO, error)
}

type quizService struct {
	quizRepo   repository.QuizRepository
	resultRepo repository.ResultRepository
}

func NewQuizService(quizRepo repository.QuizRepository, resultRepo repository.ResultRepository) QuizService {
	return &quizService{quizRepo: quizRepo, resultRepo: resultRepo}
}

func (s *quizService) GetActiveQuizzes() ([]dto.QuizSummaryDTO, error) {
	quizzes, err := s.quizRepo.FindAllActive()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list active quizzes")
		return nil, fmt.Errorf("fetching quizzes: %w", err)
	}

	dtos := make([]dto.QuizSummaryDTO, 0, len(quizzes))
	for _, q := range quizzes {
		dtos = append(dtos, dto.QuizSummaryDTO{
			ID:            q.ID,
			Title:         q.Title,
			Description:   q.Description,
			Duration:      q.Duration,
			Status:        q.Status,
			QuestionCount: q.QuestionCount,
			CreatedAt:     q.CreatedAt,
		})
	}
	return dtos, nil
}

func (s *quizService) GetUserResults(userID uint) ([]dto.ResultHistoryDTO, error) {
	results, err := s.resultRepo.FindByUserID(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to list user results")
		return nil, fmt.Errorf("fetching results for user %d: %w", userID, err)
	}

	dtos := make([]dto.ResultHistoryDTO, 0, len(results))
	for _, r := range results {
		var item dto.ResultHistoryDTO
		if err := copier.Copy(&item, &r.Result); err != nil {
			return nil, fmt.Errorf("preparing result history: %w", err)
		}
		item.QuizTitle = r.QuizTitle
		dtos = append(dtos, item)
	}
	return dtos, nil
}
