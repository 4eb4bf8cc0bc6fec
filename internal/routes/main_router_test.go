package routes

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"academy-manager/internal/repositories"
	"academy-manager/internal/testutil"
	"academy-manager/pkg/config"
	"academy-manager/pkg/customvalidator"
	"academy-manager/pkg/database"
	"academy-manager/pkg/mailer"
	"academy-manager/pkg/middleware"
	"academy-manager/pkg/service"
	"academy-manager/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type envelope struct {
	Status  bool            `json:"status"`
	Body    json.RawMessage `json:"body"`
	Message string          `json:"message"`
}

// client guarda os cookies entre requisições, como o navegador faria.
type client struct {
	t       *testing.T
	e       *echo.Echo
	cookies map[string]*http.Cookie
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	if csrf, ok := c.cookies[middleware.CSRFCookieName]; ok && req.Method != http.MethodGet {
		req.Header.Set(middleware.CSRFHeaderName, csrf.Value)
	}
	rec := httptest.NewRecorder()
	c.e.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return rec
}

func (c *client) json(method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := c.do(req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec, env
}

func (c *client) upload(path, filename, content string) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(c.t, err)
	_, err = part.Write([]byte(content))
	require.NoError(c.t, err)
	require.NoError(c.t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := c.do(req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

type RouterTestSuite struct {
	suite.Suite
	Echo *echo.Echo
	DB   *database.DB
}

func (s *RouterTestSuite) SetupTest() {
	t := s.T()
	logger := zap.NewNop()

	e := echo.New()
	v := validator.New()
	require.NoError(t, customvalidator.RegisterCustomValidations(v))
	e.Validator = utils.NewValidator(v)
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.CSRF(false))

	cfg := &config.Config{
		Session: config.SessionConfig{SecretKey: "segredo-de-teste", TTL: time.Hour},
		Auth:    config.AuthConfig{MaxLoginAttempts: 5, LockoutDuration: time.Minute},
		Storage: config.StorageConfig{UploadDir: t.TempDir(), BackupDir: t.TempDir()},
	}
	s.DB = testutil.NewDB(t)

	err := InitRouter(e, Deps{
		DB:         s.DB,
		Cache:      repositories.NewMemoryCacheRepository(time.Minute),
		SessionSvc: service.NewSessionService(cfg.Session.SecretKey, cfg.Session.TTL, logger),
		Mailer:     mailer.NewSMTPMailer(mailer.Config{}, logger),
		Logger:     logger,
		Config:     cfg,
	})
	require.NoError(t, err)
	s.Echo = e
}

func (s *RouterTestSuite) newClient() *client {
	return &client{t: s.T(), e: s.Echo, cookies: map[string]*http.Cookie{}}
}

// login faz um GET antes para receber o cookie CSRF, como a SPA faz ao abrir.
func (s *RouterTestSuite) login(username, password string) *client {
	c := s.newClient()
	c.json(http.MethodGet, "/api/me", nil)
	rec, _ := c.json(http.MethodPost, "/api/login", map[string]string{"username": username, "password": password})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Require().Contains(c.cookies, service.SessionCookieName)
	return c
}

func (s *RouterTestSuite) TestMeWithoutSession() {
	c := s.newClient()
	rec, env := c.json(http.MethodGet, "/api/me", nil)
	s.Equal(http.StatusOK, rec.Code)

	var me struct {
		Authenticated bool `json:"authenticated"`
	}
	s.Require().NoError(json.Unmarshal(env.Body, &me))
	s.False(me.Authenticated)

	s.Equal("nosniff", rec.Header().Get("X-Content-Type-Options"))
	s.Contains(c.cookies, middleware.CSRFCookieName)
}

func (s *RouterTestSuite) TestProtectedRouteRequiresSession() {
	rec, env := s.newClient().json(http.MethodGet, "/api/alunos", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.False(env.Status)
}

func (s *RouterTestSuite) TestLoginWrongPassword() {
	c := s.newClient()
	rec, env := c.json(http.MethodPost, "/api/login", map[string]string{"username": "admin", "password": "errada"})
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("usuário ou senha inválidos", env.Message)
	s.NotContains(c.cookies, service.SessionCookieName)
}

func (s *RouterTestSuite) TestSessionFlow() {
	c := s.login("admin", "admin123")

	rec, env := c.json(http.MethodGet, "/api/me", nil)
	s.Equal(http.StatusOK, rec.Code)
	var me struct {
		Authenticated bool `json:"authenticated"`
		User          struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	s.Require().NoError(json.Unmarshal(env.Body, &me))
	s.True(me.Authenticated)
	s.Equal("admin", me.User.Username)
	s.Equal("admin", me.User.Role)

	rec, _ = c.json(http.MethodPost, "/api/logout", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.NotContains(c.cookies, service.SessionCookieName)

	rec, _ = c.json(http.MethodGet, "/api/alunos", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *RouterTestSuite) TestCSRFBlocksMutationsWithoutHeader() {
	c := s.login("admin", "admin123")

	raw, _ := json.Marshal(map[string]string{"nome": "Ana", "email": "ana@academy.com"})
	req := httptest.NewRequest(http.MethodPost, "/api/alunos", bytes.NewReader(raw))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	s.GreaterOrEqual(rec.Code, 400)
	s.Less(rec.Code, 500)

	rec, env := c.json(http.MethodPost, "/api/alunos", map[string]string{"nome": "Ana", "email": "ana@academy.com"})
	s.Equal(http.StatusCreated, rec.Code, rec.Body.String())
	s.True(env.Status)
}

func (s *RouterTestSuite) TestRolePermissions() {
	admin := s.login("admin", "admin123")
	rec, _ := admin.json(http.MethodPost, "/api/admin/users", map[string]string{
		"username": "prof", "password": "segredo", "role": "professor",
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	prof := s.login("prof", "segredo")

	rec, _ = prof.json(http.MethodGet, "/api/admin/users", nil)
	s.Equal(http.StatusForbidden, rec.Code)

	rec, _ = prof.json(http.MethodGet, "/api/inventory", nil)
	s.Equal(http.StatusForbidden, rec.Code)

	rec, _ = prof.json(http.MethodGet, "/api/system/backup", nil)
	s.Equal(http.StatusForbidden, rec.Code)

	rec, _ = prof.json(http.MethodGet, "/api/alunos", nil)
	s.Equal(http.StatusOK, rec.Code)

	rec, _ = prof.json(http.MethodGet, "/api/dashboard/stats", nil)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterTestSuite) TestLoanConflictMapsToBadRequest() {
	c := s.login("admin", "admin123")

	_, env := c.json(http.MethodPost, "/api/alunos", map[string]string{"nome": "Ana", "email": "ana@academy.com"})
	var student struct {
		ID uint64 `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(env.Body, &student))

	_, env = c.json(http.MethodPost, "/api/devices", map[string]string{"tipo": "iPad", "numero_serie": "S1"})
	var device struct {
		ID uint64 `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(env.Body, &device))

	loan := map[string]uint64{"aluno_id": student.ID, "device_id": device.ID}
	rec, _ := c.json(http.MethodPost, "/api/emprestimos", loan)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	rec, env = c.json(http.MethodPost, "/api/emprestimos", loan)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.False(env.Status)
	s.NotEmpty(env.Message)

	rec, _ = c.json(http.MethodGet, "/api/devices/abc", nil)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec, _ = c.json(http.MethodGet, "/api/devices/999", nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RouterTestSuite) TestImportAndExport() {
	c := s.login("admin", "admin123")

	rec, env := c.upload("/api/importar/alunos", "alunos.csv", "nome,email\nAna,ana@academy.com\nBia,\n")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var result struct {
		Sucessos int      `json:"sucessos"`
		Erros    []string `json:"erros"`
	}
	s.Require().NoError(json.Unmarshal(env.Body, &result))
	s.Equal(1, result.Sucessos)
	s.Len(result.Erros, 1)

	rec, _ = c.upload("/api/importar/alunos", "alunos.pdf", "x")
	s.Equal(http.StatusBadRequest, rec.Code)

	rec, _ = c.json(http.MethodGet, "/api/export/alunos", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Header().Get(echo.HeaderContentDisposition), "attachment; filename=\"alunos_export_")
	s.NotZero(rec.Body.Len())

	rec, _ = c.json(http.MethodGet, "/api/download/template/devices", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Header().Get(echo.HeaderContentDisposition), "template_importacao_devices.xlsx")
}

func (s *RouterTestSuite) TestBackupDownloadAndRestore() {
	c := s.login("admin", "admin123")
	c.json(http.MethodPost, "/api/alunos", map[string]string{"nome": "Ana", "email": "ana@academy.com"})

	rec, _ := c.json(http.MethodGet, "/api/system/backup", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Header().Get(echo.HeaderContentDisposition), "backup_apple_academy_")
	dump := rec.Body.String()

	c.json(http.MethodPost, "/api/alunos", map[string]string{"nome": "Bia", "email": "bia@academy.com"})

	rec, env := c.upload("/api/system/restore", "backup.sql", dump)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.True(env.Status)

	var total int64
	s.Require().NoError(s.DB.SQL().QueryRow("SELECT COUNT(*) FROM alunos").Scan(&total))
	s.Equal(int64(1), total)
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func TestCSRFExemptUploads(t *testing.T) {
	e := echo.New()
	e.Use(middleware.CSRF(false))
	e.POST("/api/alunos/:id/foto", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })
	e.POST("/api/alunos", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/alunos/1/foto", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/alunos", nil))
	assert.NotEqual(t, http.StatusNoContent, rec.Code)
}
