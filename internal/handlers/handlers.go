package handlers

import (
	"context"
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"docconnect/internal/authstate"
	"docconnect/internal/config"
	"docconnect/internal/middleware"
	"docconnect/internal/models"
	"docconnect/internal/service"
)

// HealthCheck pings one dependency.
type HealthCheck func(ctx context.Context) error

type Deps struct {
	Log      zerolog.Logger
	Config   *config.AppConfig
	Auth     *service.AuthService
	Avatars  *service.AvatarService
	Registry *authstate.Registry
	Checks   map[string]HealthCheck
}

type HandlerSet struct {
	log       zerolog.Logger
	cfg       *config.AppConfig
	auth      *service.AuthService
	avatars   *service.AvatarService
	registry  *authstate.Registry
	checks    map[string]HealthCheck
	templates *template.Template
}

func NewHandlerSet(deps Deps) (HandlerSet, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return HandlerSet{}, err
	}
	return HandlerSet{
		log:       deps.Log,
		cfg:       deps.Config,
		auth:      deps.Auth,
		avatars:   deps.Avatars,
		registry:  deps.Registry,
		checks:    deps.Checks,
		templates: tmpl,
	}, nil
}

func (h HandlerSet) browser() gin.HandlerFunc {
	return middleware.Browser(h.registry, h.cfg.Session)
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")
	v1.Use(h.browser())
	{
		auth := v1.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.RegisterUser)
		auth.POST("/logout", h.Logout)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
		auth.GET("/me", h.Me)
		auth.POST("/refresh", middleware.RequireAuth(), h.Refresh)

		profile := v1.Group("/profile")
		profile.Use(middleware.RequireAuth())
		profile.PUT("", h.UpdateProfile)
		profile.POST("/password", h.ChangePassword)
		profile.POST("/avatar", h.UploadAvatar)

		doctors := v1.Group("/doctor")
		doctors.Use(middleware.RequireAuth(), middleware.RequireRoles(models.UserRoleDoctor, models.UserRoleAdmin))
		doctors.GET("/profile", h.DoctorProfile)
	}
}

// RegisterPages installs the html templates and the server rendered pages.
func (h HandlerSet) RegisterPages(engine *gin.Engine) {
	engine.SetHTMLTemplate(h.templates)

	pages := engine.Group("/")
	pages.Use(h.browser())

	pages.GET("/", h.HomePage)

	auth := pages.Group("/auth")
	auth.GET("/login", h.LoginPage)
	auth.POST("/login", h.SubmitLogin)
	auth.GET("/register", h.RegisterPage)
	auth.POST("/register", h.SubmitRegister)
	auth.GET("/register-doctor", h.RegisterDoctorPage)
	auth.POST("/register-doctor", h.SubmitRegisterDoctor)
	auth.GET("/forgot-password", h.ForgotPasswordPage)
	auth.POST("/forgot-password", h.SubmitForgotPassword)
	auth.POST("/logout", h.SubmitLogout)

	dashboard := pages.Group("/dashboard")
	dashboard.GET("/patient", h.PatientDashboard)
	dashboard.GET("/doctor", h.DoctorDashboard)
}
