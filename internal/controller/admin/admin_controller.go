package admin

import (
	"net/http"
	"strconv"

	"quizmaster/internal/controller"
	"quizmaster/internal/dto"
	"quizmaster/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AdminController struct {
	adminService service.AdminService
}

func NewAdminController(adminService service.AdminService) *AdminController {
	return &AdminController{adminService: adminService}
}

// CreateQuiz godoc
// @Summary (Admin) Create a quiz
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quiz body dto.QuizCreateDTO true "Quiz"
// @Success 201 {object} dto.QuizSummaryDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/quizzes [post]
func (c *AdminController) CreateQuiz(ctx *gin.Context) {
	var req dto.QuizCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	quiz, err := c.adminService.CreateQuiz(req)
	if err != nil {
		log.Error().Err(err).Msg("Admin CreateQuiz failed")
		controller.RespondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, quiz)
}

// UpdateQuiz godoc
// @Summary (Admin) Update a quiz
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quiz_id path int true "Quiz ID"
// @Param quiz body dto.QuizUpdateDTO true "Quiz"
// @Success 200 {object} dto.QuizSummaryDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/quizzes/{quiz_id} [put]
func (c *AdminController) UpdateQuiz(ctx *gin.Context) {
	quizID, err := strconv.ParseUint(ctx.Param("quiz_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid quiz ID format"})
		return
	}
	var req dto.QuizUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	quiz, err := c.adminService.UpdateQuiz(uint(quizID), req)
	if err != nil {
		controller.RespondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, quiz)
}

// DeleteQuiz godoc
// @Summary (Admin) Delete a quiz with its questions, attempts and results
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param quiz_id path int true "Quiz ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/quizzes/{quiz_id} [delete]
func (c *AdminController) DeleteQuiz(ctx *gin.Context) {
	quizID, err := strconv.ParseUint(ctx.Param("quiz_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid quiz ID format"})
		return
	}
	if err := c.adminService.DeleteQuiz(uint(quizID)); err != nil {
		controller.RespondServiceError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetQuizzes godoc
// @Summary (Admin) List all quizzes, active and inactive
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.QuizSummaryDTO
// @Router /admin/quizzes [get]
func (c *AdminController) GetQuizzes(ctx *gin.Context) {
	quizzes, err := c.adminService.GetAllQuizzes()
	if err != nil {
		controller.RespondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}

// AddQuestion godoc
// @Summary (Admin) Add a question to a quiz
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quiz_id path int true "Quiz ID"
// @Param question body dto.QuestionCreateDTO true "Question"
// @Success 201 {object} dto.AdminQuestionDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/quizzes/{quiz_id}/questions [post]
func (c *AdminController) AddQuestion(ctx *gin.Context) {
	quizID, err := strconv.ParseUint(ctx.Param("quiz_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid quiz ID format"})
		return
	}
	var req dto.QuestionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	question, err := c.adminService.AddQuestion(uint(quizID), req)
	if err != nil {
		controller.RespondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, question)
}

// GetQuizQuestions godoc
// @Summary (Admin) List a quiz's questions with correct options
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {array} dto.AdminQuestionDTO
// @Router /admin/quizzes/{quiz_id}/questions [get]
func (c *AdminController) GetQuizQuestions(ctx *gin.Context) {
	quizID, err := strconv.ParseUint(ctx.Param("quiz_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid quiz ID format"})
		return
	}
	questions, err := c.adminService.GetQuizQuestions(uint(quizID))
	if err != nil {
		controller.RespondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// UpdateQuestion godoc
// @Summary (Admin) Update a question
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param question_id path int true "Question ID"
// @Param question body dto.QuestionCreateDTO true "Question"
// @Success 200 {object} dto.AdminQuestionDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/questions/{question_id} [put]
func (c *AdminController) UpdateQuestion(ctx *gin.Context) {
	questionID, err := strconv.ParseUint(ctx.Param("question_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid question ID format"})
		return
	}
	var req dto.QuestionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	question, err := c.adminService.UpdateQuestion(uint(questionID), req)
	if err != nil {
		controller.RespondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// DeleteQuestion godoc
// @Summary (Admin) Delete a question
// @Description Attempts in progress keep their frozen order; the deleted question is excluded from grading when those attempts are submitted.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param question_id path int true "Question ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/questions/{question_id} [delete]
func (c *AdminController) DeleteQuestion(ctx *gin.Context) {
	questionID, err := strconv.ParseUint(ctx.Param("question_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid question ID format"})
		return
	}
	if err := c.adminService.DeleteQuestion(uint(questionID)); err != nil {
		controller.RespondServiceError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetUsers godoc
// @Summary (Admin) List users
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.UserDTO
// @Router /admin/users [get]
func (c *AdminController) GetUsers(ctx *gin.Context) {
	users, err := c.adminService.GetAllUsers()
	if err != nil {
		controller.RespondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// GetResults godoc
// @Summary (Admin) List all results with user and quiz details
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AdminResultDTO
// @Router /admin/results [get]
func (c *AdminController) GetResults(ctx *gin.Context) {
	results, err := c.adminService.GetAllResults()
	if err != nil {
		controller.RespondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, results)
}

// GetStats godoc
// @Summary (Admin) Dashboard statistics
// @Description Totals for users, quizzes and results, plus the average score rounded to two decimals.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardStatsDTO
// @Router /admin/stats [get]
func (c *AdminController) GetStats(ctx *gin.Context) {
	stats, err := c.adminService.GetDashboardStats()
	if err != nil {
		controller.RespondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}
