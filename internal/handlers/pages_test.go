package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPages_Home(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Dr. Sarah Johnson")
	assert.Contains(t, body, "Sign In")
	require.Len(t, app.cookies, 1)
	assert.Equal(t, "doct_browser", app.cookies[0].Name)
}

func TestPages_LoginFlow(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.get("/auth/login")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "patient123")

	w = app.form("/auth/login", url.Values{"email": {"patient@example.com"}, "password": {"abc"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "password must be at least 6 characters")
	assert.Contains(t, w.Body.String(), `value="patient@example.com"`)

	w = app.form("/auth/login", url.Values{"email": {"patient@example.com"}, "password": {"patient123"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard/patient", w.Header().Get("Location"))

	w = app.get("/dashboard/patient")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Welcome back, John!")
	assert.Contains(t, body, "Welcome back, John Patient!")

	w = app.get("/auth/login")
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = app.get("/dashboard/doctor")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Access Denied")

	w = app.form("/auth/logout", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = app.get("/dashboard/patient")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Please log in to access your dashboard.")
}

func TestPages_RegisterPatient(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.form("/auth/register", url.Values{
		"name": {"Pat New"}, "email": {"pat@example.com"},
		"password": {"longpassword"}, "confirmPassword": {"different1"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Passwords do not match")
	assert.NotContains(t, w.Body.String(), "longpassword")

	w = app.form("/auth/register", url.Values{
		"name": {"Pat New"}, "email": {"pat@example.com"},
		"password": {"longpassword"}, "confirmPassword": {"longpassword"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard/patient", w.Header().Get("Location"))

	w = app.get("/")
	assert.Contains(t, w.Body.String(), "Account created successfully! Welcome, Pat New!")
}

func TestPages_RegisterDoctor(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.get("/auth/register-doctor")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ENT (Otolaryngology)")

	form := url.Values{
		"name": {"Dr. Mia Park"}, "email": {"mia@example.com"},
		"password": {"longpassword"}, "confirmPassword": {"longpassword"},
		"specialization": {"Cardiology"}, "licenseNumber": {"LIC-77"},
		"experience": {"9"}, "consultationFee": {"45"},
		"bio":            {strings.Repeat("Cardiologist with a focus on prevention. ", 2)},
		"qualifications": {"MD", "FACC"},
		"languages":      {},
	}
	w = app.form("/auth/register-doctor", form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "At least one language must be selected")

	form["languages"] = []string{"English", "Korean"}
	w = app.form("/auth/register-doctor", form)
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, "/dashboard/doctor", w.Header().Get("Location"))

	w = app.get("/dashboard/doctor")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "LIC-77")
	assert.Contains(t, w.Body.String(), "$45")
}

func TestPages_ForgotPassword(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.form("/auth/forgot-password", url.Values{"email": {"nobody@example.com"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no user found with this email address")

	w = app.form("/auth/forgot-password", url.Values{"email": {"doctor@example.com"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "reset link shortly")
}
