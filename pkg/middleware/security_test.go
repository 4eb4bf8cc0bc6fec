package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestSecurityHeaders(t *testing.T) {
	e := echo.New()
	e.Use(SecurityHeaders())
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "SAMEORIGIN", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get("Referrer-Policy"))
}

func TestCSRF_ExemptAndProtectedPaths(t *testing.T) {
	e := echo.New()
	e.Use(CSRF(false))
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.POST("/api/login", ok)
	e.POST("/api/importar/alunos", ok)
	e.POST("/api/alunos/:id/foto", ok)
	e.POST("/api/alunos", ok)

	for _, path := range []string{"/api/login", "/api/importar/alunos", "/api/alunos/3/foto"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/alunos", nil))
	assert.NotEqual(t, http.StatusOK, rec.Code, "POST sem token CSRF deve ser recusado")
}
