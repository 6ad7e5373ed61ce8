package dto

import "time"

// QuizSessionDTO is everything the presentation layer needs to render a
// quiz: the attempt being resumed or started, the questions in their
// frozen shuffled order, and the time limit.
type QuizSessionDTO struct {
	AttemptID       uint          `json:"attempt_id"`
	QuizID          uint          `json:"quiz_id"`
	QuizTitle       string        `json:"quiz_title"`
	DurationMinutes uint          `json:"duration_minutes"`
	StartedAt       time.Time     `json:"started_at"`
	Questions       []QuestionDTO `json:"questions"`
}

// SubmitQuizRequest maps question id to the selected option (1-4).
// Unanswered questions are simply absent from the map.
type SubmitQuizRequest struct {
	Answers map[uint]int `json:"answers" binding:"required"`
}

type ResultDTO struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	QuizID         uint      `json:"quiz_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	CorrectAnswers int       `json:"correct_answers"`
	WrongAnswers   int       `json:"wrong_answers"`
	CreatedAt      time.Time `json:"created_at"`
}

type ResultHistoryDTO struct {
	ResultDTO
	QuizTitle string `json:"quiz_title"`
}
