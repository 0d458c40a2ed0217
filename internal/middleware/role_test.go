package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/dorm-management/internal/model"
)

// runRoleGate sends one request through RequireRole with an optional
// pre-set principal and reports whether the inner handler ran.
func runRoleGate(t *testing.T, principal *Principal, allowed ...string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/v1/rooms/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principal != nil {
		c.Set(principalKey, *principal)
	}

	ran := false
	h := RequireRole(allowed...)(func(c echo.Context) error {
		ran = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, ran
}

func TestRequireRoleAllows(t *testing.T) {
	rec, ran := runRoleGate(t, &Principal{ID: 1, Role: model.RoleAdmin}, model.RoleStaff, model.RoleAdmin)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, ran)
}

func TestRequireRoleRejectsRole(t *testing.T) {
	rec, ran := runRoleGate(t, &Principal{ID: 1, Role: model.RoleStudent}, model.RoleAdmin)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "not permitted to access this resource")
	assert.False(t, ran, "handler must not run for a disallowed role")
}

func TestRequireRoleRejectsMissingPrincipal(t *testing.T) {
	rec, ran := runRoleGate(t, nil, model.RoleAdmin)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, ran)
}
