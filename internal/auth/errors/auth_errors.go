package autherrors

import (
	"go-nexushr/internal/shared/apperror"
	"net/http"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid login credentials",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		"INVALID_TOKEN",
		"Invalid token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		"TOKEN_EXPIRED",
		"Token has expired",
		http.StatusUnauthorized,
	)
	ErrTokenNotFound = apperror.New(
		apperror.CodeUnauthorized,
		"Token not found",
		http.StatusUnauthorized,
	)
	ErrInvalidRecoveryToken = apperror.New(
		"INVALID_RECOVERY_TOKEN",
		"El enlace de recuperación no es válido o ha expirado.",
		http.StatusUnauthorized,
	)
	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to generate token",
		http.StatusInternalServerError,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)
	ErrEmailAlreadyRegistered = apperror.New(
		apperror.CodeConflict,
		"User already registered",
		http.StatusConflict,
	)

	ErrPasswordMismatch = apperror.New(
		apperror.CodeValidation,
		"Las contraseñas no coinciden.",
		http.StatusBadRequest,
	)
	ErrPasswordTooShort = apperror.New(
		apperror.CodeValidation,
		"La contraseña debe tener al menos 6 caracteres.",
		http.StatusBadRequest,
	)
	ErrRecoveryPasswordTooShort = apperror.New(
		apperror.CodeValidation,
		"La contraseña debe tener al menos 8 caracteres.",
		http.StatusBadRequest,
	)
	ErrPasswordTooLong = apperror.New(
		apperror.CodeValidation,
		"La contraseña no puede superar los 72 bytes.",
		http.StatusBadRequest,
	)
	ErrPasswordNeedsDigit = apperror.New(
		apperror.CodeValidation,
		"La contraseña debe contener al menos un número.",
		http.StatusBadRequest,
	)
)
