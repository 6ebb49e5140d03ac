package models

import (
	"strings"
	"time"
)

type UserRole string

const (
	UserRolePatient UserRole = "patient"
	UserRoleDoctor  UserRole = "doctor"
	UserRoleAdmin   UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRolePatient, UserRoleDoctor, UserRoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID          string         `json:"id"`
	Email       string         `json:"email"`
	Name        string         `json:"name"`
	Role        UserRole       `json:"role"`
	Avatar      string         `json:"avatar,omitempty"`
	Phone       string         `json:"phone,omitempty"`
	DateOfBirth string         `json:"dateOfBirth,omitempty"`
	Doctor      *DoctorProfile `json:"doctor,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// FirstName is used by the dashboards greeting ("Welcome back, John!").
func (u User) FirstName() string {
	first, _, _ := strings.Cut(strings.TrimSpace(u.Name), " ")
	return first
}

// Registration is the partial user data accepted by register.
type Registration struct {
	Name        string
	Email       string
	Password    string
	Role        UserRole
	Phone       string
	DateOfBirth string
	Doctor      *DoctorProfile
}

// ProfileUpdate carries the fields a user may change on their own record.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Name        *string        `json:"name,omitempty"`
	Email       *string        `json:"email,omitempty"`
	Phone       *string        `json:"phone,omitempty"`
	DateOfBirth *string        `json:"dateOfBirth,omitempty"`
	Avatar      *string        `json:"avatar,omitempty"`
	Doctor      *DoctorProfile `json:"doctor,omitempty"`
}

func (p ProfileUpdate) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil &&
		p.DateOfBirth == nil && p.Avatar == nil && p.Doctor == nil
}

// Apply returns a copy of u with the non-nil fields of p merged in.
// UpdatedAt is left to the caller.
func (u User) Apply(p ProfileUpdate) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.DateOfBirth != nil {
		u.DateOfBirth = *p.DateOfBirth
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Doctor != nil {
		doc := p.Doctor.Clone()
		u.Doctor = &doc
	}
	return u
}

// Clone returns a deep copy so callers never share slices with a repository.
func (u User) Clone() User {
	if u.Doctor != nil {
		doc := u.Doctor.Clone()
		u.Doctor = &doc
	}
	return u
}

type Session struct {
	User  User
	Token string
}
