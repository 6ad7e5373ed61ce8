package dto

import "time"

// QuizSummaryDTO is the list-view shape for quizzes, with a live
// question count.
type QuizSummaryDTO struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Duration      uint      `json:"duration"`
	Status        string    `json:"status"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type QuizCreateDTO struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description,omitempty"`
	Duration    uint   `json:"duration" binding:"required,min=1"`
}

type QuizUpdateDTO struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description,omitempty"`
	Duration    uint   `json:"duration" binding:"required,min=1"`
	Status      string `json:"status" binding:"required,oneof=active inactive"`
}

type QuestionCreateDTO struct {
	QuestionText  string `json:"question_text" binding:"required"`
	Option1       string `json:"option1" binding:"required"`
	Option2       string `json:"option2" binding:"required"`
	Option3       string `json:"option3" binding:"required"`
	Option4       string `json:"option4" binding:"required"`
	CorrectOption int    `json:"correct_option" binding:"required,min=1,max=4"`
}

// QuestionDTO is the quiz-taking shape of a question. The correct
// option never leaves the server on this path.
type QuestionDTO struct {
	ID           uint   `json:"id"`
	QuestionText string `json:"question_text"`
	Option1      string `json:"option1"`
	Option2      string `json:"option2"`
	Option3      string `json:"option3"`
	Option4      string `json:"option4"`
}

// AdminQuestionDTO includes the correct option, for the admin screens.
type AdminQuestionDTO struct {
	ID            uint   `json:"id"`
	QuizID        uint   `json:"quiz_id"`
	QuestionText  string `json:"question_text"`
	Option1       string `json:"option1"`
	Option2       string `json:"option2"`
	Option3       string `json:"option3"`
	Option4       string `json:"option4"`
	CorrectOption int    `json:"correct_option"`
}
