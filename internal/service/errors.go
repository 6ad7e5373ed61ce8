package service

import "errors"

var (
	ErrQuizNotFound         = errors.New("quiz not found")
	ErrQuizInactive         = errors.New("quiz is not active")
	ErrQuizHasNoQuestions   = errors.New("quiz has no questions yet")
	ErrQuestionNotFound     = errors.New("question not found")
	ErrAttemptNotFound      = errors.New("attempt not found")
	ErrAttemptNotInProgress = errors.New("attempt is not in progress")
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailTaken           = errors.New("email already exists")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidResetToken    = errors.New("reset token is invalid or expired")
)
