package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docconnect/internal/authstate"
	"docconnect/internal/middleware"
	"docconnect/internal/models"
)

type sessionResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token,omitempty"`
}

func (h HandlerSet) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (h HandlerSet) sessionResponse(c *gin.Context, b *authstate.Browser) sessionResponse {
	token, _ := b.Store.Token(c.Request.Context())
	return sessionResponse{User: b.Provider.User(), Token: token}
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginForm
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, bindingError(err))
		return
	}

	b := middleware.CurrentBrowser(c)
	if err := b.Provider.Login(c.Request.Context(), req.Email, req.Password); err != nil {
		h.fail(c, err)
		return
	}
	b.Inbox.Drain()

	c.JSON(http.StatusOK, h.sessionResponse(c, b))
}

func (h HandlerSet) RegisterUser(c *gin.Context) {
	var req doctorForm
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, bindingError(err))
		return
	}
	if req.ConfirmPassword == "" {
		req.ConfirmPassword = req.Password
	}

	var reg models.Registration
	switch models.UserRole(req.Role) {
	case models.UserRoleDoctor:
		if err := req.Validate(); err != nil {
			h.fail(c, err)
			return
		}
		reg = req.Registration()
	default:
		if err := req.registerForm.Validate(); err != nil {
			h.fail(c, err)
			return
		}
		reg = req.registerForm.Registration(models.UserRole(req.Role))
	}

	b := middleware.CurrentBrowser(c)
	if err := b.Provider.Register(c.Request.Context(), reg); err != nil {
		h.fail(c, err)
		return
	}
	b.Inbox.Drain()

	c.JSON(http.StatusCreated, h.sessionResponse(c, b))
}

func (h HandlerSet) Logout(c *gin.Context) {
	b := middleware.CurrentBrowser(c)
	if err := b.Provider.Logout(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	b.Inbox.Drain()
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}

type meResponse struct {
	authstate.Snapshot
	Notifications []authstate.Notification `json:"notifications"`
}

func (h HandlerSet) Me(c *gin.Context) {
	b := middleware.CurrentBrowser(c)
	notes := b.Inbox.Drain()
	if notes == nil {
		notes = []authstate.Notification{}
	}
	c.JSON(http.StatusOK, meResponse{Snapshot: b.Provider.Snapshot(), Notifications: notes})
}

func (h HandlerSet) Refresh(c *gin.Context) {
	b := middleware.CurrentBrowser(c)
	ctx := c.Request.Context()

	token, err := h.auth.RefreshToken(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	user := b.Provider.User()
	if user == nil {
		h.fail(c, authstate.ErrNotAuthenticated)
		return
	}
	if err := b.Store.SetSession(ctx, *user, token); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h HandlerSet) ForgotPassword(c *gin.Context) {
	var req forgotPasswordForm
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, bindingError(err))
		return
	}
	if err := h.auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "reset_email_sent"})
}

func (h HandlerSet) ResetPassword(c *gin.Context) {
	var req resetPasswordForm
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, bindingError(err))
		return
	}
	if err := h.auth.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "password_reset"})
}
