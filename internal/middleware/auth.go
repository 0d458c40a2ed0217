package middleware // middleware provides shared request processing for handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/dorm-management/internal/repository"
)

// Principal is the authenticated identity attached to a request after the
// bearer token has been verified and the subject resolved to a live user
// row. It is read-only for the rest of the request.
type Principal struct {
	ID   uint64 `json:"id"`
	Role string `json:"role"`
}

const principalKey = "principal"

// PrincipalFrom returns the Principal stored by Authenticate, if any.
func PrincipalFrom(c echo.Context) (Principal, bool) {
	p, ok := c.Get(principalKey).(Principal)
	return p, ok
}

// Authenticate returns an Echo middleware that validates a Bearer access
// token and resolves its subject against the users table. The provided
// secret must match the one used when issuing tokens. The resolved
// Principal is stored in the context for RequireRole and handlers; the role
// comes from the user row, not the claim, so a role change takes effect on
// the next request rather than at the next token refresh.
func Authenticate(secret string, users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header starts with "Bearer " followed by the JWT.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "no token provided"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Parse with HS256 only; a token signed any other way is
			// rejected outright.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid token"})
			}
			userID, ok := subjectID(claims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid token"})
			}

			// The subject must still exist; deleted accounts keep a valid
			// token until expiry but lose access immediately.
			u, err := users.GetByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"message": "user not found"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"message": "authentication failed"})
			}

			c.Set(principalKey, Principal{ID: u.ID, Role: u.Role})
			return next(c)
		}
	}
}

// subjectID extracts the numeric sub claim. MapClaims stores JSON numbers
// as float64; string subjects are not issued by this service.
func subjectID(claims jwt.MapClaims) (uint64, bool) {
	switch v := claims["sub"].(type) {
	case float64:
		return uint64(v), true
	case int64:
		return uint64(v), true
	case uint64:
		return v, true
	}
	return 0, false
}
