package middleware

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/dorm-management/internal/model"
	"github.com/iliyamo/dorm-management/internal/repository"
	"github.com/iliyamo/dorm-management/internal/utils"
)

const testSecret = "unit-test-secret"

const userByIDQuery = "SELECT id,email,name,phone,password_hash,role,created_at,updated_at FROM users WHERE id=? LIMIT 1"

func userRow(id uint64, role string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{"id", "email", "name", "phone", "password_hash", "role", "created_at", "updated_at"}).
		AddRow(id, "a@b.c", "A", "", "x", role, now, now)
}

// runAuth sends one request through Authenticate and reports the recorder
// plus how many times the inner handler ran.
func runAuth(t *testing.T, users *repository.UserRepo, authz string) (*httptest.ResponseRecorder, int) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	calls := 0
	h := Authenticate(testSecret, users)(func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"message": "ok"})
	})
	require.NoError(t, h(c))
	return rec, calls
}

func TestAuthenticateNoToken(t *testing.T) {
	rec, calls := runAuth(t, repository.NewUserRepo(nil), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "no token provided")
	assert.Zero(t, calls, "handler must not run without a token")
}

func TestAuthenticateMalformedToken(t *testing.T) {
	rec, calls := runAuth(t, repository.NewUserRepo(nil), "Bearer not-a-jwt")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
	assert.Zero(t, calls)
}

func TestAuthenticateWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("a-different-secret", 7, model.RoleAdmin, 15)
	require.NoError(t, err)

	rec, calls := runAuth(t, repository.NewUserRepo(nil), "Bearer "+tok.Token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
	assert.Zero(t, calls)
}

func TestAuthenticateDeletedUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectQuery(regexp.QuoteMeta(userByIDQuery)).WithArgs(uint64(7)).
		WillReturnError(sql.ErrNoRows)

	tok, err := utils.NewAccessToken(testSecret, 7, model.RoleStudent, 15)
	require.NoError(t, err)

	rec, calls := runAuth(t, repository.NewUserRepo(db), "Bearer "+tok.Token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "user not found")
	assert.Zero(t, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The principal's role must come from the user row, not the token claim, so
// a role change takes effect without waiting for token expiry.
func TestAuthenticateRoleFromUserRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectQuery(regexp.QuoteMeta(userByIDQuery)).WithArgs(uint64(7)).
		WillReturnRows(userRow(7, model.RoleAdmin))

	tok, err := utils.NewAccessToken(testSecret, 7, model.RoleStudent, 15)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got Principal
	h := Authenticate(testSecret, repository.NewUserRepo(db))(func(c echo.Context) error {
		got, _ = PrincipalFrom(c)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, Principal{ID: 7, Role: model.RoleAdmin}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
