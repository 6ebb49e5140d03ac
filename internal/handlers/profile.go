package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docconnect/internal/authstate"
	"docconnect/internal/middleware"
	"docconnect/internal/models"
)

func (h HandlerSet) UpdateProfile(c *gin.Context) {
	var update models.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		h.fail(c, bindingError(err))
		return
	}

	b := middleware.CurrentBrowser(c)
	user := b.Provider.User()
	if user == nil {
		h.fail(c, authstate.ErrNotAuthenticated)
		return
	}
	if err := validateProfileUpdate(update, user); err != nil {
		h.fail(c, err)
		return
	}
	if err := b.Provider.UpdateProfile(c.Request.Context(), update); err != nil {
		h.fail(c, err)
		return
	}
	b.Inbox.Drain()

	c.JSON(http.StatusOK, gin.H{"user": b.Provider.User()})
}

func (h HandlerSet) ChangePassword(c *gin.Context) {
	var req changePasswordForm
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, bindingError(err))
		return
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		h.fail(c, authstate.ErrNotAuthenticated)
		return
	}
	if err := h.auth.ChangePassword(c.Request.Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "password_changed"})
}

func (h HandlerSet) UploadAvatar(c *gin.Context) {
	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		h.fail(c, invalid("avatar file is required"))
		return
	}
	defer file.Close()

	b := middleware.CurrentBrowser(c)
	user := b.Provider.User()
	if user == nil {
		h.fail(c, authstate.ErrNotAuthenticated)
		return
	}
	ctx := c.Request.Context()

	url, err := h.avatars.Upload(ctx, user.ID, file, header.Header.Get("Content-Type"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := b.Provider.UpdateProfile(ctx, models.ProfileUpdate{Avatar: &url}); err != nil {
		h.fail(c, err)
		return
	}
	b.Inbox.Drain()

	c.JSON(http.StatusOK, gin.H{"user": b.Provider.User()})
}

func (h HandlerSet) DoctorProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		h.fail(c, authstate.ErrNotAuthenticated)
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctor": user.Doctor, "name": user.Name})
}
