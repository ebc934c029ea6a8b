package middleware

import (
	"strings"

	"CollegeHub/internal/apperr"
	"CollegeHub/internal/auth"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Authenticator turns bearer tokens into principals. Beyond signature and
// expiry it loads the live user record, so tokens for deleted or disabled
// accounts stop working immediately.
type Authenticator struct {
	tokens *auth.TokenManager
	users  auth.UserStore
}

func NewAuthenticator(tokens *auth.TokenManager, users auth.UserStore) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

func (a *Authenticator) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return apperr.Unauthorized("Not authenticated")
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		claims, err := a.tokens.Parse(tokenString)
		if err != nil {
			return apperr.Unauthorized("Invalid token")
		}
		id, err := primitive.ObjectIDFromHex(claims.Subject)
		if err != nil {
			return apperr.Unauthorized("Invalid token")
		}

		user, err := a.users.FindByID(c.Request().Context(), id)
		if err != nil {
			return err
		}
		if user == nil {
			return apperr.Unauthorized("User not found")
		}
		if user.Status != auth.StatusActive {
			return apperr.Unauthorized("Account is disabled")
		}

		c.Set(auth.PrincipalContextKey, &auth.Principal{
			ID:    user.ID.Hex(),
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		})
		return next(c)
	}
}

// RequireRoles gates a route to the given role set. No principal is always
// unauthorized; a principal outside the set is forbidden.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := auth.PrincipalFrom(c)
			if principal == nil {
				return apperr.Unauthorized("Not authenticated")
			}
			if _, ok := allowed[principal.Role]; !ok {
				return apperr.Forbidden("Forbidden: insufficient permissions")
			}
			return next(c)
		}
	}
}
