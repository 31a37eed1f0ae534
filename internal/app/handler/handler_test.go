package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rafvai/DietShopper/internal/app/config"
	"github.com/rafvai/DietShopper/internal/app/middleware"
	"github.com/rafvai/DietShopper/internal/app/pkg/auth"
	"github.com/rafvai/DietShopper/internal/app/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	Status      string                 `json:"status"`
	Data        json.RawMessage        `json:"data"`
	Count       int64                  `json:"count"`
	Meta        map[string]interface{} `json:"meta"`
	Description string                 `json:"description"`
}

type testApp struct {
	t      *testing.T
	h      *Handler
	router *gin.Engine
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	repo := repository.NewFromDB(db)
	if err := repo.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := repo.Seed(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cfg := &config.Config{
		TemplatesGlob: "../../../templates/*.html",
		StaticDir:     "../../../resources",
		SessionTTL:    time.Hour,
	}
	h := NewHandler(repo, cfg, auth.NewJWTService("test-secret", time.Hour), auth.NewMemoryStore(), nil)

	router := gin.New()
	h.RegisterMiddleware(router)
	h.RegisterStatic(router)
	h.RegisterHandler(router)
	h.RegisterAPI(router)
	return &testApp{t: t, h: h, router: router}
}

func (a *testApp) api(method, path string, body interface{}, token string) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func (a *testApp) form(path string, values url.Values, cookie string) *httptest.ResponseRecorder {
	a.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: cookie})
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(path, cookie string) *httptest.ResponseRecorder {
	a.t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: cookie})
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// register creates a user through the API and returns its token.
func (a *testApp) register(username string) string {
	a.t.Helper()
	w, env := a.api(http.MethodPost, "/api/users/register", gin.H{
		"username":     username,
		"email":        username + "@example.com",
		"password":     "secret123",
		"confirmation": "secret123",
	}, "")
	if w.Code != http.StatusOK {
		a.t.Fatalf("register %s: %d %s", username, w.Code, w.Body.String())
	}
	var data struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(env.Data, &data)
	if data.Token == "" {
		a.t.Fatalf("register %s: no token in %s", username, w.Body.String())
	}
	return data.Token
}

func (a *testApp) foodID(name string) uint {
	a.t.Helper()
	foods, err := a.h.Repository.ListFoods(context.Background())
	if err != nil {
		a.t.Fatalf("foods: %v", err)
	}
	for _, f := range foods {
		if f.Name == name {
			return f.ID
		}
	}
	a.t.Fatalf("no food %q", name)
	return 0
}

func sessionCookie(w *httptest.ResponseRecorder) string {
	var id string
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie && c.Value != "" {
			id = c.Value
		}
	}
	return id
}
