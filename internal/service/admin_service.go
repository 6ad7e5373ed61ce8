package service

import (
	"errors"
	"fmt"
	"math"

	"quizmaster/internal/dto"
	"quizmaster/internal/model"
	"quizmaster/internal/repository"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AdminService covers the admin screens: quiz and question management,
// the full results listing, and the dashboard statistics.
type AdminService interface {
	CreateQuiz(req dto.QuizCreateDTO) (*dto.QuizSummaryDTO, error)
	UpdateQuiz(quizID uint, req dto.QuizUpdateDTO) (*dto.QuizSummaryDTO, error)
	DeleteQuiz(quizID uint) error
	GetAllQuizzes() ([]dto.QuizSummaryDTO, error)

	AddQuestion(quizID uint, req dto.QuestionCreateDTO) (*dto.AdminQuestionDTO, error)
	UpdateQuestion(questionID uint, req dto.QuestionCreateDTO) (*dto.AdminQuestionDTO, error)
	DeleteQuestion(questionID uint) error
	GetQuizQuestions(quizID uint) ([]dto.AdminQuestionDTO, error)

	GetAllUsers() ([]dto.UserDTO, error)
	GetAllResults() ([]dto.AdminResultDTO, error)
	GetDashboardStats() (*dto.DashboardStatsDTO, error)
}

type adminService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	resultRepo   repository.ResultRepository
	userRepo     repository.UserRepository
	cache        QuestionCache
}

func NewAdminService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	resultRepo repository.ResultRepository,
	userRepo repository.UserRepository,
	cache QuestionCache,
) AdminService {
	return &adminService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		resultRepo:   resultRepo,
		userRepo:     userRepo,
		cache:        cache,
	}
}

func (s *adminService) CreateQuiz(req dto.QuizCreateDTO) (*dto.QuizSummaryDTO, error) {
	quiz := &model.Quiz{
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		Status:      model.QuizStatusActive,
	}
	if err := s.quizRepo.Create(quiz); err != nil {
		return nil, fmt.Errorf("creating quiz: %w", err)
	}
	log.Info().Uint("quizID", quiz.ID).Str("title", quiz.Title).Msg("Quiz created")
	return quizSummary(quiz, 0), nil
}

func (s *adminService) UpdateQuiz(quizID uint, req dto.QuizUpdateDTO) (*dto.QuizSummaryDTO, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("loading quiz %d: %w", quizID, err)
	}

	quiz.Title = req.Title
	quiz.Description = req.Description
	quiz.Duration = req.Duration
	quiz.Status = req.Status
	if err := s.quizRepo.Update(quiz); err != nil {
		return nil, fmt.Errorf("updating quiz %d: %w", quizID, err)
	}

	count, err := s.questionRepo.CountByQuizID(quizID)
	if err != nil {
		return nil, fmt.Errorf("counting questions for quiz %d: %w", quizID, err)
	}
	return quizSummary(quiz, int(count)), nil
}

func (s *adminService) DeleteQuiz(quizID uint) error {
	if _, err := s.quizRepo.FindByID(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuizNotFound
		}
		return fmt.Errorf("loading quiz %d: %w", quizID, err)
	}
	if err := s.quizRepo.Delete(quizID); err != nil {
		return fmt.Errorf("deleting quiz %d: %w", quizID, err)
	}
	s.invalidate(quizID)
	log.Info().Uint("quizID", quizID).Msg("Quiz deleted with questions, attempts and results")
	return nil
}

func (s *adminService) GetAllQuizzes() ([]dto.QuizSummaryDTO, error) {
	quizzes, err := s.quizRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("fetching quizzes: %w", err)
	}
	dtos := make([]dto.QuizSummaryDTO, 0, len(quizzes))
	for _, q := range quizzes {
		dtos = append(dtos, *quizSummary(&q.Quiz, q.QuestionCount))
	}
	return dtos, nil
}

func (s *adminService) AddQuestion(quizID uint, req dto.QuestionCreateDTO) (*dto.AdminQuestionDTO, error) {
	if _, err := s.quizRepo.FindByID(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("loading quiz %d: %w", quizID, err)
	}

	question := &model.Question{
		QuizID:        quizID,
		QuestionText:  req.QuestionText,
		Option1:       req.Option1,
		Option2:       req.Option2,
		Option3:       req.Option3,
		Option4:       req.Option4,
		CorrectOption: req.CorrectOption,
	}
	if err := s.questionRepo.Create(question); err != nil {
		return nil, fmt.Errorf("creating question: %w", err)
	}
	s.invalidate(quizID)
	return adminQuestion(question)
}

func (s *adminService) UpdateQuestion(questionID uint, req dto.QuestionCreateDTO) (*dto.AdminQuestionDTO, error) {
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("loading question %d: %w", questionID, err)
	}

	question.QuestionText = req.QuestionText
	question.Option1 = req.Option1
	question.Option2 = req.Option2
	question.Option3 = req.Option3
	question.Option4 = req.Option4
	question.CorrectOption = req.CorrectOption
	if err := s.questionRepo.Update(question); err != nil {
		return nil, fmt.Errorf("updating question %d: %w", questionID, err)
	}
	s.invalidate(question.QuizID)
	return adminQuestion(question)
}

func (s *adminService) DeleteQuestion(questionID uint) error {
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("loading question %d: %w", questionID, err)
	}
	if err := s.questionRepo.Delete(questionID); err != nil {
		return fmt.Errorf("deleting question %d: %w", questionID, err)
	}
	s.invalidate(question.QuizID)
	return nil
}

func (s *adminService) GetQuizQuestions(quizID uint) ([]dto.AdminQuestionDTO, error) {
	questions, err := s.questionRepo.FindByQuizID(quizID)
	if err != nil {
		return nil, fmt.Errorf("fetching questions for quiz %d: %w", quizID, err)
	}
	dtos := make([]dto.AdminQuestionDTO, 0, len(questions))
	for i := range questions {
		item, err := adminQuestion(&questions[i])
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *item)
	}
	return dtos, nil
}

func (s *adminService) GetAllUsers() ([]dto.UserDTO, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("fetching users: %w", err)
	}
	dtos := make([]dto.UserDTO, 0, len(users))
	for _, u := range users {
		var item dto.UserDTO
		if err := copier.Copy(&item, &u); err != nil {
			return nil, fmt.Errorf("preparing user list: %w", err)
		}
		dtos = append(dtos, item)
	}
	return dtos, nil
}

func (s *adminService) GetAllResults() ([]dto.AdminResultDTO, error) {
	results, err := s.resultRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("fetching results: %w", err)
	}
	dtos := make([]dto.AdminResultDTO, 0, len(results))
	for _, r := range results {
		var item dto.AdminResultDTO
		if err := copier.Copy(&item, &r.Result); err != nil {
			return nil, fmt.Errorf("preparing results list: %w", err)
		}
		item.QuizTitle = r.QuizTitle
		item.UserName = r.UserName
		item.UserEmail = r.UserEmail
		dtos = append(dtos, item)
	}
	return dtos, nil
}

func (s *adminService) GetDashboardStats() (*dto.DashboardStatsDTO, error) {
	users, err := s.userRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("counting users: %w", err)
	}
	quizzes, err := s.quizRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("counting quizzes: %w", err)
	}
	results, err := s.resultRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("counting results: %w", err)
	}
	avg, err := s.resultRepo.AverageScore()
	if err != nil {
		return nil, fmt.Errorf("averaging scores: %w", err)
	}

	return &dto.DashboardStatsDTO{
		TotalUsers:   users,
		TotalQuizzes: quizzes,
		TotalResults: results,
		AverageScore: math.Round(avg*100) / 100,
	}, nil
}

func (s *adminService) invalidate(quizID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateQuestions(quizID); err != nil {
		log.Warn().Err(err).Uint("quizID", quizID).Msg("Failed to invalidate question cache")
	}
}

func quizSummary(quiz *model.Quiz, questionCount int) *dto.QuizSummaryDTO {
	return &dto.QuizSummaryDTO{
		ID:            quiz.ID,
		Title:         quiz.Title,
		Description:   quiz.Description,
		Duration:      quiz.Duration,
		Status:        quiz.Status,
		QuestionCount: questionCount,
		CreatedAt:     quiz.CreatedAt,
	}
}

func adminQuestion(question *model.Question) (*dto.AdminQuestionDTO, error) {
	var item dto.AdminQuestionDTO
	if err := copier.Copy(&item, question); err != nil {
		return nil, fmt.Errorf("preparing question response: %w", err)
	}
	return &item, nil
}
