package dto

type AdminResultDTO struct {
	ResultDTO
	QuizTitle string `json:"quiz_title"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

type DashboardStatsDTO struct {
	TotalUsers   int64   `json:"total_users"`
	TotalQuizzes int64   `json:"total_quizzes"`
	TotalResults int64   `json:"total_results"`
	AverageScore float64 `json:"average_score"`
}
