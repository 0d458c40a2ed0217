package router

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// routeSet registers the full table with zero-value deps (handlers are
// never invoked) and indexes the result by "METHOD path".
func routeSet(t *testing.T) map[string]bool {
	t.Helper()
	e := echo.New()
	Register(e, Deps{})

	set := make(map[string]bool)
	for _, r := range e.Routes() {
		set[r.Method+" "+r.Path] = true
	}
	return set
}

func TestRouteTable(t *testing.T) {
	routes := routeSet(t)

	for _, want := range []string{
		http.MethodGet + " /healthz",
		http.MethodPost + " /v1/auth/register",
		http.MethodPost + " /v1/auth/login",
		http.MethodPost + " /v1/auth/refresh",
		http.MethodPost + " /v1/auth/logout",
		http.MethodPost + " /v1/logout-all",
		http.MethodGet + " /v1/me",

		http.MethodPut + " /v1/contracts/:id/sign",
		http.MethodGet + " /v1/contracts/:id/payments",
		http.MethodPut + " /v1/payments/:id/confirm",
		http.MethodGet + " /v1/payments/overdue",
		http.MethodPut + " /v1/requests/:id/assign",
		http.MethodPut + " /v1/requests/:id/resolve",

		http.MethodGet + " /v1/reports/dashboard",
		http.MethodGet + " /v1/reports/students",
		http.MethodGet + " /v1/reports/rooms",
		http.MethodGet + " /v1/reports/contracts",
		http.MethodGet + " /v1/reports/payments",
		http.MethodGet + " /v1/reports/requests",
		http.MethodGet + " /v1/reports/:domain/excel",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}

// Lifecycle transitions ride on PUT, matching the other update routes.
func TestNoPostLifecycleRoutes(t *testing.T) {
	routes := routeSet(t)

	for _, stale := range []string{
		http.MethodPost + " /v1/contracts/:id/sign",
		http.MethodPost + " /v1/payments/:id/confirm",
		http.MethodPost + " /v1/requests/:id/assign",
		http.MethodPost + " /v1/requests/:id/resolve",
		http.MethodGet + " /v1/reports/export/:domain",
	} {
		assert.False(t, routes[stale], "unexpected route %s", stale)
	}
}
