package handlers

import (
	"net/mail"
	"slices"
	"strings"
	"unicode/utf8"

	"docconnect/internal/models"
)

const (
	minPasswordLength = 8
	minBioLength      = 50
)

type loginForm struct {
	Email    string `form:"email" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type registerForm struct {
	Name            string `form:"name" json:"name" binding:"required"`
	Email           string `form:"email" json:"email" binding:"required,email"`
	Password        string `form:"password" json:"password" binding:"required"`
	ConfirmPassword string `form:"confirmPassword" json:"confirmPassword"`
	Phone           string `form:"phone" json:"phone"`
	DateOfBirth     string `form:"dateOfBirth" json:"dateOfBirth"`
	Role            string `form:"role" json:"role"`
}

func (f registerForm) Validate() error {
	if f.Password != f.ConfirmPassword {
		return invalid("Passwords do not match")
	}
	if utf8.RuneCountInString(f.Password) < minPasswordLength {
		return invalid("Password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

func (f registerForm) Registration(role models.UserRole) models.Registration {
	return models.Registration{
		Name:        strings.TrimSpace(f.Name),
		Email:       f.Email,
		Password:    f.Password,
		Role:        role,
		Phone:       strings.TrimSpace(f.Phone),
		DateOfBirth: strings.TrimSpace(f.DateOfBirth),
	}
}

type doctorForm struct {
	registerForm
	Specialization  string   `form:"specialization" json:"specialization"`
	LicenseNumber   string   `form:"licenseNumber" json:"licenseNumber"`
	Experience      int      `form:"experience" json:"experience"`
	ConsultationFee float64  `form:"consultationFee" json:"consultationFee"`
	Bio             string   `form:"bio" json:"bio"`
	Qualifications  []string `form:"qualifications" json:"qualifications"`
	Languages       []string `form:"languages" json:"languages"`
}

func (f doctorForm) Validate() error {
	if err := f.registerForm.Validate(); err != nil {
		return err
	}
	if !slices.Contains(models.Specializations, f.Specialization) {
		return invalid("Please select your specialization")
	}
	if strings.TrimSpace(f.LicenseNumber) == "" {
		return invalid("License number is required")
	}
	if f.Experience < 0 {
		return invalid("Experience cannot be negative")
	}
	if f.ConsultationFee < 0 {
		return invalid("Consultation fee cannot be negative")
	}
	if utf8.RuneCountInString(f.Bio) < minBioLength {
		return invalid("Bio must be at least %d characters long", minBioLength)
	}
	if len(f.qualifications()) == 0 {
		return invalid("At least one qualification is required")
	}
	if len(f.Languages) == 0 {
		return invalid("At least one language must be selected")
	}
	for _, lang := range f.Languages {
		if !slices.Contains(models.Languages, lang) {
			return invalid("Unsupported language %q", lang)
		}
	}
	return nil
}

func (f doctorForm) qualifications() []string {
	var out []string
	for _, q := range f.Qualifications {
		if q = strings.TrimSpace(q); q != "" {
			out = append(out, q)
		}
	}
	return out
}

func (f doctorForm) Registration() models.Registration {
	reg := f.registerForm.Registration(models.UserRoleDoctor)
	reg.Doctor = &models.DoctorProfile{
		Specialization:  f.Specialization,
		LicenseNumber:   strings.TrimSpace(f.LicenseNumber),
		Experience:      f.Experience,
		Qualifications:  f.qualifications(),
		Bio:             f.Bio,
		ConsultationFee: f.ConsultationFee,
		Languages:       slices.Clone(f.Languages),
	}
	return reg
}

type forgotPasswordForm struct {
	Email string `form:"email" json:"email" binding:"required,email"`
}

type resetPasswordForm struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type changePasswordForm struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func validateProfileUpdate(update models.ProfileUpdate, user *models.User) error {
	if update.Empty() {
		return invalid("nothing to update")
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return invalid("name cannot be empty")
	}
	if update.Email != nil {
		if _, err := mail.ParseAddress(*update.Email); err != nil {
			return invalid("email must be a valid email address")
		}
	}
	if update.Doctor != nil {
		if user.Role != models.UserRoleDoctor {
			return invalid("only doctors have a doctor profile")
		}
		if utf8.RuneCountInString(update.Doctor.Bio) < minBioLength {
			return invalid("Bio must be at least %d characters long", minBioLength)
		}
		if update.Doctor.Experience < 0 || update.Doctor.ConsultationFee < 0 {
			return invalid("experience and consultation fee cannot be negative")
		}
	}
	return nil
}
