package ratingerrors

import (
	"net/http"

	"hrms/internal/shared/apperror"
)

var (
	ErrDuplicateRating = apperror.New(
		apperror.CodeConflict,
		"a rating for this person and period already exists",
		http.StatusConflict,
	)
	ErrSelfRating = apperror.New(
		apperror.CodeInvalidInput,
		"you cannot rate yourself",
		http.StatusBadRequest,
	)
	ErrRateeNotFound = apperror.New(
		apperror.CodeNotFound,
		"ratee not found",
		http.StatusNotFound,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"month must be between 1 and 12",
		http.StatusBadRequest,
	)
)
