package user

import (
	"net/http"
	"strconv"

	"quizmaster/internal/controller"
	"quizmaster/internal/dto"
	"quizmaster/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type QuizController struct {
	quizService       service.QuizService
	attemptService    service.AttemptService
	submissionService service.SubmissionService
}

func NewQuizController(
	quizService service.QuizService,
	attemptService service.AttemptService,
	submissionService service.SubmissionService,
) *QuizController {
	return &QuizController{
		quizService:       quizService,
		attemptService:    attemptService,
		submissionService: submissionService,
	}
}

// GetQuizzes godoc
// @Summary List active quizzes
// @Description Get all active quizzes with their question counts.
// @Tags User - Quizzes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.QuizSummaryDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /quizzes [get]
func (c *QuizController) GetQuizzes(ctx *gin.Context) {
	quizzes, err := c.quizService.GetActiveQuizzes()
	if err != nil {
		controller.RespondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}

// StartQuiz godoc
// @Summary Start or resume a quiz attempt
// @Description Returns the caller's in-progress attempt with its frozen question order, creating a new shuffled attempt if none exists. Pass retake=1 to abandon the current attempt and start over with a fresh shuffle.
// @Tags User - Quizzes
// @Produce json
// @Security BearerAuth
// @Param quiz_id path int true "Quiz ID"
// @Param retake query int false "Set to 1 to abandon any in-progress attempt first"
// @Success 200 {object} dto.QuizSessionDTO
// @Failure 400 {object} dto.ErrorResponse "Quiz inactive or has no questions"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Failure 500 {object} dto.ErrorResponse
// @Router /quizzes/{quiz_id}/start [post]
func (c *QuizController) StartQuiz(ctx *gin.Context) {
	quizID, err := strconv.ParseUint(ctx.Param("quiz_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid quiz ID format"})
		return
	}
	userID := controller.CurrentUserID(ctx)
	retake := ctx.Query("retake") == "1"

	session, err := c.attemptService.StartOrResumeQuiz(userID, uint(quizID), retake)
	if err != nil {
		log.Warn().Err(err).Uint("userID", userID).Uint64("quizID", quizID).Msg("StartQuiz failed")
		controller.RespondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, session)
}

// SubmitQuiz godoc
// @Summary Submit answers for an attempt
// @Description Grades the attempt against its frozen question order, records the result and completes the attempt. Submitting an already-completed attempt is rejected.
// @Tags User - Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param attempt_id path int true "Attempt ID"
// @Param submission body dto.SubmitQuizRequest true "Question id to selected option (1-4)"
// @Success 200 {object} dto.ResultDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already completed or abandoned"
// @Failure 500 {object} dto.ErrorResponse
// @Router /attempts/{attempt_id}/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	attemptID, err := strconv.ParseUint(ctx.Param("attempt_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid attempt ID format"})
		return
	}

	var req dto.SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	userID := controller.CurrentUserID(ctx)
	result, err := c.submissionService.SubmitQuiz(userID, uint(attemptID), req.Answers)
	if err != nil {
		log.Warn().Err(err).Uint("userID", userID).Uint64("attemptID", attemptID).Msg("SubmitQuiz failed")
		controller.RespondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetMyResults godoc
// @Summary Get the caller's result history
// @Description All results for the authenticated user, newest first. Retakes keep their own rows.
// @Tags User - Quizzes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ResultHistoryDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /my-results [get]
func (c *QuizController) GetMyResults(ctx *gin.Context) {
	results, err := c.quizService.GetUserResults(controller.CurrentUserID(ctx))
	if err != nil {
		controller.RespondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, results)
}
