package employeeerrors

import (
	"go-nexushr/internal/shared/apperror"
	"net/http"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrNameRequired = apperror.New(
		apperror.CodeValidation,
		"Name is required",
		http.StatusBadRequest,
	)
	ErrUnknownRole = apperror.New(
		apperror.CodeValidation,
		"Role is not one of the allowed roles",
		http.StatusBadRequest,
	)
	ErrUnknownDepartment = apperror.New(
		apperror.CodeValidation,
		"Department is not one of the allowed departments",
		http.StatusBadRequest,
	)
	ErrWorkloadChangeMissing = apperror.New(
		apperror.CodeValidation,
		"Either delta or workload is required",
		http.StatusBadRequest,
	)
	ErrWorkloadOutOfRange = apperror.New(
		apperror.CodeValidation,
		"Workload must be between 0 and 100",
		http.StatusBadRequest,
	)
	ErrEmployeeConflict = apperror.New(
		apperror.CodeConflict,
		"Employee was modified concurrently",
		http.StatusConflict,
	)
)
