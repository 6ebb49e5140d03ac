package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"docconnect/internal/authstate"
	"docconnect/internal/repository"
	"docconnect/internal/service"
)

var ErrValidation = errors.New("validation failed")

type validationError struct {
	msg string
}

func (e validationError) Error() string        { return e.msg }
func (e validationError) Is(target error) bool { return target == ErrValidation }

func invalid(format string, args ...any) error {
	return validationError{msg: fmt.Sprintf(format, args...)}
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrNewPasswordTooShort),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrEmptyFile),
		errors.Is(err, service.ErrContentTypeMismatch):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrAvatarTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrUnsupportedImage):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, authstate.ErrNotAuthenticated),
		errors.Is(err, authstate.ErrAuthRequired):
		return http.StatusUnauthorized
	case errors.Is(err, authstate.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, service.ErrNoUserWithEmail):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrEmailTaken),
		errors.Is(err, authstate.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, service.ErrAvatarsDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	}
	return http.StatusInternalServerError
}

// bindingError turns gin binding failures into a short user facing message.
func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return invalid("invalid request body")
	}
	fe := verrs[0]
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return invalid("%s is required", field)
	case "email":
		return invalid("%s must be a valid email address", field)
	case "min":
		return invalid("%s must be at least %s", field, fe.Param())
	}
	return invalid("%s is invalid", field)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
