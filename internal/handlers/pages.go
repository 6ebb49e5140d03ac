package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docconnect/internal/authstate"
	"docconnect/internal/middleware"
	"docconnect/internal/models"
)

type pageData struct {
	Title         string
	User          *models.User
	Notifications []authstate.Notification
	Error         string
	Info          string
	Form          any

	Specialties     []specialty
	Doctors         []featuredDoctor
	Testimonials    []testimonial
	Demo            []demoCredential
	Appointments    []appointment
	Consultations   []consultation
	Stats           healthStats
	Specializations []string
	Languages       []string
}

// render fills in the visitor's user and pending toasts before executing
// the named template.
func (h HandlerSet) render(c *gin.Context, status int, name string, data pageData) {
	if b := middleware.CurrentBrowser(c); b != nil {
		data.User = b.Provider.User()
		data.Notifications = b.Inbox.Drain()
	}
	c.HTML(status, name, data)
}

func (h HandlerSet) renderError(c *gin.Context, name string, data pageData, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Error().Err(err).Str("page", name).Msg("page action failed")
	}
	data.Error = err.Error()
	h.render(c, status, name, data)
}

func dashboardPath(user *models.User) string {
	if user == nil {
		return "/auth/login"
	}
	switch user.Role {
	case models.UserRoleDoctor, models.UserRoleAdmin:
		return "/dashboard/doctor"
	}
	return "/dashboard/patient"
}

func (h HandlerSet) HomePage(c *gin.Context) {
	h.render(c, http.StatusOK, "home", pageData{
		Title:        "Quality Healthcare, Anytime, Anywhere",
		Specialties:  homeSpecialties,
		Doctors:      featuredDoctors,
		Testimonials: testimonials,
	})
}

func (h HandlerSet) LoginPage(c *gin.Context) {
	if user := middleware.CurrentUser(c); user != nil {
		c.Redirect(http.StatusSeeOther, dashboardPath(user))
		return
	}
	h.render(c, http.StatusOK, "login", pageData{Title: "Welcome Back", Demo: demoCredentials, Form: loginForm{}})
}

func (h HandlerSet) SubmitLogin(c *gin.Context) {
	data := pageData{Title: "Welcome Back", Demo: demoCredentials}

	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		data.Form = form
		h.renderError(c, "login", data, bindingError(err))
		return
	}
	data.Form = loginForm{Email: form.Email}

	b := middleware.CurrentBrowser(c)
	if err := b.Provider.Login(c.Request.Context(), form.Email, form.Password); err != nil {
		h.renderError(c, "login", data, err)
		return
	}
	c.Redirect(http.StatusSeeOther, dashboardPath(b.Provider.User()))
}

func (h HandlerSet) RegisterPage(c *gin.Context) {
	h.render(c, http.StatusOK, "register", pageData{Title: "Create Patient Account", Form: registerForm{}})
}

func (h HandlerSet) SubmitRegister(c *gin.Context) {
	data := pageData{Title: "Create Patient Account"}

	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		data.Form = form.withoutPasswords()
		h.renderError(c, "register", data, bindingError(err))
		return
	}
	data.Form = form.withoutPasswords()
	if err := form.Validate(); err != nil {
		h.renderError(c, "register", data, err)
		return
	}

	b := middleware.CurrentBrowser(c)
	if err := b.Provider.Register(c.Request.Context(), form.Registration(models.UserRolePatient)); err != nil {
		h.renderError(c, "register", data, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/dashboard/patient")
}

func (h HandlerSet) RegisterDoctorPage(c *gin.Context) {
	h.render(c, http.StatusOK, "register-doctor", pageData{
		Title:           "Join as a Doctor",
		Form:            doctorForm{Languages: []string{"English"}},
		Specializations: models.Specializations,
		Languages:       models.Languages,
	})
}

func (h HandlerSet) SubmitRegisterDoctor(c *gin.Context) {
	data := pageData{
		Title:           "Join as a Doctor",
		Specializations: models.Specializations,
		Languages:       models.Languages,
	}

	var form doctorForm
	if err := c.ShouldBind(&form); err != nil {
		form.registerForm = form.registerForm.withoutPasswords()
		data.Form = form
		h.renderError(c, "register-doctor", data, bindingError(err))
		return
	}
	err := form.Validate()
	reg := form.Registration()
	form.registerForm = form.registerForm.withoutPasswords()
	data.Form = form
	if err != nil {
		h.renderError(c, "register-doctor", data, err)
		return
	}

	b := middleware.CurrentBrowser(c)
	if err := b.Provider.Register(c.Request.Context(), reg); err != nil {
		h.renderError(c, "register-doctor", data, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/dashboard/doctor")
}

func (h HandlerSet) ForgotPasswordPage(c *gin.Context) {
	h.render(c, http.StatusOK, "forgot-password", pageData{Title: "Reset Password", Form: forgotPasswordForm{}})
}

func (h HandlerSet) SubmitForgotPassword(c *gin.Context) {
	data := pageData{Title: "Reset Password"}

	var form forgotPasswordForm
	if err := c.ShouldBind(&form); err != nil {
		data.Form = form
		h.renderError(c, "forgot-password", data, bindingError(err))
		return
	}
	data.Form = form

	if err := h.auth.ForgotPassword(c.Request.Context(), form.Email); err != nil {
		h.renderError(c, "forgot-password", data, err)
		return
	}
	data.Info = "If the address is registered you will receive a reset link shortly."
	h.render(c, http.StatusOK, "forgot-password", data)
}

func (h HandlerSet) SubmitLogout(c *gin.Context) {
	b := middleware.CurrentBrowser(c)
	if err := b.Provider.Logout(c.Request.Context()); err != nil && !errors.Is(err, authstate.ErrBusy) {
		h.log.Warn().Err(err).Msg("logout failed")
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h HandlerSet) PatientDashboard(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := authstate.RequireAuth(user); err != nil {
		h.renderDenied(c, err, "Please log in to access your dashboard.")
		return
	}
	h.render(c, http.StatusOK, "dashboard-patient", pageData{
		Title:         "Patient Dashboard",
		Appointments:  upcomingAppointments,
		Consultations: recentConsultations,
		Stats:         patientStats,
	})
}

func (h HandlerSet) DoctorDashboard(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := authstate.RequireDoctorOrAdmin(user); err != nil {
		h.renderDenied(c, err, "This dashboard is only available to doctors.")
		return
	}
	h.render(c, http.StatusOK, "dashboard-doctor", pageData{Title: "Doctor Dashboard"})
}

func (h HandlerSet) renderDenied(c *gin.Context, err error, message string) {
	h.render(c, statusFor(err), "access-denied", pageData{Title: "Access Denied", Error: message})
}

func (f registerForm) withoutPasswords() registerForm {
	f.Password = ""
	f.ConfirmPassword = ""
	return f
}
