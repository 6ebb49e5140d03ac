package repository

import (
	"time"

	"docconnect/internal/models"
)

// DemoUsers are the accounts advertised on the login page. Any password of
// at least six characters signs them in.
func DemoUsers() []models.User {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []models.User{
		{
			ID:          "1",
			Email:       "patient@example.com",
			Name:        "John Patient",
			Role:        models.UserRolePatient,
			Phone:       "+1234567890",
			DateOfBirth: "1985-06-15",
			Avatar:      "https://placehold.co/150x150?text=Patient+Avatar",
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:        "2",
			Email:     "doctor@example.com",
			Name:      "Dr. Sarah Johnson",
			Role:      models.UserRoleDoctor,
			Phone:     "+1234567891",
			Avatar:    "https://placehold.co/150x150?text=Doctor+Avatar",
			CreatedAt: created,
			UpdatedAt: created,
		},
	}
}
