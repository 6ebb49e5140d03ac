package authstate

import (
	"errors"
	"fmt"

	"docconnect/internal/models"
)

var (
	ErrAuthRequired = errors.New("authentication required")
	ErrForbidden    = errors.New("access denied")
)

func RequireAuth(user *models.User) error {
	if user == nil {
		return ErrAuthRequired
	}
	return nil
}

func RequireRole(user *models.User, role models.UserRole) error {
	if err := RequireAuth(user); err != nil {
		return err
	}
	if user.Role != role {
		return fmt.Errorf("%w: %s access required", ErrForbidden, role)
	}
	return nil
}

func RequireDoctorOrAdmin(user *models.User) error {
	if err := RequireAuth(user); err != nil {
		return err
	}
	if user.Role != models.UserRoleDoctor && user.Role != models.UserRoleAdmin {
		return fmt.Errorf("%w: doctor or admin access required", ErrForbidden)
	}
	return nil
}
