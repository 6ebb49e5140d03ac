package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docconnect/internal/models"
)

func sampleUser() models.User {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return models.User{
		ID:          "1",
		Email:       "patient@example.com",
		Name:        "John Patient",
		Role:        models.UserRolePatient,
		Phone:       "+1234567890",
		DateOfBirth: "1985-06-15",
		Avatar:      "https://placehold.co/150x150?text=Patient+Avatar",
		CreatedAt:   created,
		UpdatedAt:   created.Add(90 * time.Minute),
	}
}

func newStore(scope string) (*Store, *MemoryMedium) {
	m := NewMemoryMedium()
	return NewStore(m, scope, zerolog.Nop()), m
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore("browser-1")

	users := []models.User{sampleUser()}
	doc := sampleUser()
	doc.ID = "2"
	doc.Role = models.UserRoleDoctor
	doc.Doctor = &models.DoctorProfile{
		Specialization:  "Cardiology",
		LicenseNumber:   "LIC-1",
		Experience:      12,
		Qualifications:  []string{"MD", "FACC"},
		Bio:             "Cardiologist",
		ConsultationFee: 80,
		Languages:       []string{"English", "Spanish"},
	}
	users = append(users, doc)

	for _, u := range users {
		require.NoError(t, s.SetSession(ctx, u, "mock_jwt_token_1"))
		got := s.User(ctx)
		require.NotNil(t, got)
		assert.Equal(t, u, *got)

		token, ok := s.Token(ctx)
		assert.True(t, ok)
		assert.Equal(t, "mock_jwt_token_1", token)
	}
}

func TestStore_SetSessionOverwrites(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore("b")

	require.NoError(t, s.SetSession(ctx, sampleUser(), "first"))
	other := sampleUser()
	other.ID = "2"
	require.NoError(t, s.SetSession(ctx, other, "second"))

	got := s.User(ctx)
	require.NotNil(t, got)
	assert.Equal(t, "2", got.ID)
	token, _ := s.Token(ctx)
	assert.Equal(t, "second", token)
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, m := newStore("b")
	require.NoError(t, s.SetSession(ctx, sampleUser(), "tok"))

	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))

	assert.Nil(t, s.User(ctx))
	_, ok := s.Token(ctx)
	assert.False(t, ok)
	assert.False(t, s.IsAuthenticated(ctx))
	assert.Equal(t, 0, m.Len())
}

func TestStore_CorruptedUserIsNoSession(t *testing.T) {
	ctx := context.Background()
	s, m := newStore("b")
	require.NoError(t, m.Set(ctx, "b:"+UserKey, "{not json"))
	require.NoError(t, m.Set(ctx, "b:"+TokenKey, "tok"))

	assert.Nil(t, s.User(ctx))
	assert.False(t, s.IsAuthenticated(ctx))
}

func TestStore_IsAuthenticatedNeedsBoth(t *testing.T) {
	ctx := context.Background()
	s, m := newStore("b")
	require.NoError(t, s.SetSession(ctx, sampleUser(), "tok"))
	assert.True(t, s.IsAuthenticated(ctx))

	require.NoError(t, m.Delete(ctx, "b:"+TokenKey))
	assert.False(t, s.IsAuthenticated(ctx))
}

func TestStore_ScopesAreIsolated(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryMedium()
	a := NewStore(m, "a", zerolog.Nop())
	b := NewStore(m, "b", zerolog.Nop())

	require.NoError(t, a.SetSession(ctx, sampleUser(), "tok"))
	assert.True(t, a.IsAuthenticated(ctx))
	assert.False(t, b.IsAuthenticated(ctx))

	require.NoError(t, b.Clear(ctx))
	assert.True(t, a.IsAuthenticated(ctx))
}

func TestStore_RolePredicates(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore("b")

	assert.False(t, s.IsPatient(ctx))
	assert.False(t, s.HasRole(ctx, models.UserRolePatient))

	require.NoError(t, s.SetSession(ctx, sampleUser(), "tok"))
	assert.True(t, s.IsPatient(ctx))
	assert.False(t, s.IsDoctor(ctx))
	assert.False(t, s.IsAdmin(ctx))

	admin := sampleUser()
	admin.Role = models.UserRoleAdmin
	require.NoError(t, s.SetSession(ctx, admin, "tok"))
	assert.True(t, s.IsAdmin(ctx))
}

func TestStore_AuthHeaders(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore("b")
	assert.Empty(t, s.AuthHeaders(ctx))

	require.NoError(t, s.SetSession(ctx, sampleUser(), "mock_jwt_token_42"))
	assert.Equal(t, map[string]string{"Authorization": "Bearer mock_jwt_token_42"}, s.AuthHeaders(ctx))
}

func TestStore_WithoutMediumIsNoop(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil, "b", zerolog.Nop())

	require.NoError(t, s.SetSession(ctx, sampleUser(), "tok"))
	assert.Nil(t, s.User(ctx))
	_, ok := s.Token(ctx)
	assert.False(t, ok)
	assert.False(t, s.IsAuthenticated(ctx))
	assert.False(t, s.IsPatient(ctx))
	assert.NoError(t, s.Clear(ctx))
	assert.Empty(t, s.AuthHeaders(ctx))
}

type brokenMedium struct{}

func (brokenMedium) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("medium down")
}
func (brokenMedium) Set(context.Context, string, string) error { return errors.New("medium down") }
func (brokenMedium) Delete(context.Context, ...string) error    { return errors.New("medium down") }

func TestStore_ReadErrorsAreSwallowed(t *testing.T) {
	ctx := context.Background()
	s := NewStore(brokenMedium{}, "b", zerolog.Nop())

	assert.Nil(t, s.User(ctx))
	_, ok := s.Token(ctx)
	assert.False(t, ok)
	assert.Error(t, s.SetSession(ctx, sampleUser(), "tok"))
}
