package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"CollegeHub/internal/apperr"
	"CollegeHub/internal/auth"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fixedUserStore struct {
	user *auth.User
}

func (s *fixedUserStore) FindByEmail(context.Context, string) (*auth.User, error) {
	return s.user, nil
}

func (s *fixedUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*auth.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, nil
}

func (s *fixedUserStore) Create(context.Context, *auth.User) error { return nil }

func (s *fixedUserStore) UpdatePasswordHash(context.Context, primitive.ObjectID, string) error {
	return nil
}

func newRequest(t *testing.T, token string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func testTokenManager() *auth.TokenManager {
	return auth.NewTokenManager(&auth.TokenConfig{Secret: []byte("test-secret"), TTL: time.Hour})
}

func TestAuthenticateSetsPrincipal(t *testing.T) {
	user := &auth.User{
		ID:     primitive.NewObjectID(),
		Name:   "Known User",
		Email:  "known@college.edu",
		Role:   auth.RoleTeacher,
		Status: auth.StatusActive,
	}
	tokens := testTokenManager()
	a := NewAuthenticator(tokens, &fixedUserStore{user: user})

	token, err := tokens.Mint(user.ID.Hex(), user.Role, time.Now())
	require.NoError(t, err)
	c, _ := newRequest(t, token)

	var principal *auth.Principal
	err = a.Authenticate(func(c echo.Context) error {
		principal = auth.PrincipalFrom(c)
		return okHandler(c)
	})(c)
	require.NoError(t, err)
	require.NotNil(t, principal)
	assert.Equal(t, user.ID.Hex(), principal.ID)
	assert.Equal(t, auth.RoleTeacher, principal.Role)
}

func TestAuthenticateMissingHeader(t *testing.T) {
	a := NewAuthenticator(testTokenManager(), &fixedUserStore{})
	c, _ := newRequest(t, "")

	err := a.Authenticate(okHandler)(c)
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusUnauthorized, ae.Status)
}

func TestAuthenticateDeletedUser(t *testing.T) {
	tokens := testTokenManager()
	a := NewAuthenticator(tokens, &fixedUserStore{user: nil})

	token, err := tokens.Mint(primitive.NewObjectID().Hex(), auth.RoleStudent, time.Now())
	require.NoError(t, err)
	c, _ := newRequest(t, token)

	err = a.Authenticate(okHandler)(c)
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusUnauthorized, ae.Status)
	assert.Equal(t, "User not found", ae.Message)
}

func TestAuthenticateDisabledUser(t *testing.T) {
	user := &auth.User{
		ID:     primitive.NewObjectID(),
		Email:  "locked@college.edu",
		Role:   auth.RoleStudent,
		Status: auth.StatusDisabled,
	}
	tokens := testTokenManager()
	a := NewAuthenticator(tokens, &fixedUserStore{user: user})

	token, err := tokens.Mint(user.ID.Hex(), user.Role, time.Now())
	require.NoError(t, err)
	c, _ := newRequest(t, token)

	err = a.Authenticate(okHandler)(c)
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "Account is disabled", ae.Message)
}

func TestRequireRoles(t *testing.T) {
	gate := RequireRoles(auth.RoleTeacher, auth.RoleAdmin)

	c, _ := newRequest(t, "")
	c.Set(auth.PrincipalContextKey, &auth.Principal{ID: "x", Role: auth.RoleAdmin})
	assert.NoError(t, gate(okHandler)(c))

	c, _ = newRequest(t, "")
	c.Set(auth.PrincipalContextKey, &auth.Principal{ID: "x", Role: auth.RoleStudent})
	err := gate(okHandler)(c)
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusForbidden, ae.Status)

	c, _ = newRequest(t, "")
	err = gate(okHandler)(c)
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusUnauthorized, ae.Status)
}
