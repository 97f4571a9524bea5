package attendanceerrors

import (
	"net/http"

	"hrms/internal/shared/apperror"
)

var (
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeInvalidState,
		"already checked in for today",
		http.StatusBadRequest,
	)
	ErrNoCheckInFound = apperror.New(
		apperror.CodeInvalidState,
		"no check-in found for today",
		http.StatusBadRequest,
	)
	ErrAlreadyCheckedOut = apperror.New(
		apperror.CodeInvalidState,
		"already checked out for today",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"month must be between 1 and 12",
		http.StatusBadRequest,
	)
	ErrTargetNotFound = apperror.New(
		apperror.CodeNotFound,
		"target user not found",
		http.StatusNotFound,
	)
	ErrNotApprover = apperror.New(
		apperror.CodeForbidden,
		"only the designated approver or an administrator may mark attendance",
		http.StatusForbidden,
	)
)
