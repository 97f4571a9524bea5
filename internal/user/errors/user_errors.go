package usererrors

import (
	"net/http"

	"hrms/internal/shared/apperror"
)

var (
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidReportingTo = apperror.New(
		apperror.CodeInvalidInput,
		"invalid reporting_to id",
		http.StatusBadRequest,
	)
	ErrInvalidJoinDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid join_date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)
	ErrApproverNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"designated approver not found or inactive",
		http.StatusBadRequest,
	)
	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"email is already registered",
		http.StatusConflict,
	)
	ErrUserInactive = apperror.New(
		apperror.CodeInvalidState,
		"user account is deactivated",
		http.StatusBadRequest,
	)
)
