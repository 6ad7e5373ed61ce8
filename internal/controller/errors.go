package controller

import (
	"errors"
	"net/http"

	"quizmaster/internal/dto"
	"quizmaster/internal/service"

	"github.com/gin-gonic/gin"
)

// RespondServiceError maps the service error taxonomy onto HTTP status
// codes. Anything unrecognized is a generic persistence failure.
func RespondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrQuizNotFound),
		errors.Is(err, service.ErrQuestionNotFound),
		errors.Is(err, service.ErrAttemptNotFound),
		errors.Is(err, service.ErrUserNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrQuizInactive),
		errors.Is(err, service.ErrQuizHasNoQuestions),
		errors.Is(err, service.ErrInvalidResetToken):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrAttemptNotInProgress):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error", Details: []string{err.Error()}})
	}
}
