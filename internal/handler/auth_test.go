package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/dorm-management/internal/config"
	"github.com/iliyamo/dorm-management/internal/middleware"
	"github.com/iliyamo/dorm-management/internal/model"
	"github.com/iliyamo/dorm-management/internal/repository"
	"github.com/iliyamo/dorm-management/internal/utils"
)

const userByEmailQuery = "SELECT id,email,name,phone,password_hash,role,created_at,updated_at FROM users WHERE email=? LIMIT 1"

func testAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Config{JWTSecret: "unit-test-secret", AccessTTLMin: 15, RefreshTTLDays: 7, BcryptCost: 4}
	return NewAuthHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db)), mock
}

func postJSON(t *testing.T, h echo.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestLoginSuccess(t *testing.T) {
	h, mock := testAuthHandler(t)

	hash, err := utils.HashPassword("correct horse", 4)
	require.NoError(t, err)
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(userByEmailQuery)).WithArgs("resident@dorm.test").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "email", "name", "phone", "password_hash", "role", "created_at", "updated_at"}).
			AddRow(9, "resident@dorm.test", "Resident", "", hash, model.RoleStudent, now, now))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?,?,?)")).
		WithArgs(uint64(9), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	rec := postJSON(t, h.Login, "/v1/auth/login",
		`{"email":"Resident@dorm.test","password":"correct horse"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp authResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(9), resp.User.ID)
	assert.Equal(t, model.RoleStudent, resp.User.Role)
	assert.NotEmpty(t, resp.Access.Token)
	assert.NotEmpty(t, resp.Refresh.Token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginWrongPassword(t *testing.T) {
	h, mock := testAuthHandler(t)

	hash, err := utils.HashPassword("correct horse", 4)
	require.NoError(t, err)
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(userByEmailQuery)).WithArgs("resident@dorm.test").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "email", "name", "phone", "password_hash", "role", "created_at", "updated_at"}).
			AddRow(9, "resident@dorm.test", "Resident", "", hash, model.RoleStudent, now, now))

	rec := postJSON(t, h.Login, "/v1/auth/login",
		`{"email":"resident@dorm.test","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
}

// Unknown accounts get the same answer as wrong passwords so login probes
// cannot tell them apart.
func TestLoginUnknownEmailSameMessage(t *testing.T) {
	h, mock := testAuthHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta(userByEmailQuery)).WithArgs("nobody@dorm.test").
		WillReturnError(sql.ErrNoRows)

	rec := postJSON(t, h.Login, "/v1/auth/login",
		`{"email":"nobody@dorm.test","password":"whatever"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
}

func TestLoginMissingFields(t *testing.T) {
	h, _ := testAuthHandler(t)

	rec := postJSON(t, h.Login, "/v1/auth/login", `{"email":"resident@dorm.test"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// Password policy runs before any database work.
func TestRegisterShortPassword(t *testing.T) {
	h, mock := testAuthHandler(t)

	rec := postJSON(t, h.Register, "/v1/auth/register",
		`{"email":"new@dorm.test","name":"New","password":"short"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "at least")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogoutAllRevokesEverySession(t *testing.T) {
	h, mock := testAuthHandler(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE refresh_tokens SET revoked_at=NOW() WHERE user_id=? AND revoked_at IS NULL")).
		WithArgs(uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/logout-all", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("principal", middleware.Principal{ID: 9, Role: model.RoleStudent})

	require.NoError(t, h.LogoutAll(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogoutAllWithoutPrincipal(t *testing.T) {
	h, _ := testAuthHandler(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/logout-all", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.LogoutAll(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
