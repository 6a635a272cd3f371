package router

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/veenakrishnan01/menu-analyser/internal/analyses"
	"github.com/veenakrishnan01/menu-analyser/internal/analysis"
	"github.com/veenakrishnan01/menu-analyser/internal/auth"
	"github.com/veenakrishnan01/menu-analyser/internal/extract"
	"github.com/veenakrishnan01/menu-analyser/internal/llm"
	"github.com/veenakrishnan01/menu-analyser/internal/menu"
	"github.com/veenakrishnan01/menu-analyser/internal/notify"
	"github.com/veenakrishnan01/menu-analyser/internal/quota"
	"github.com/veenakrishnan01/menu-analyser/internal/validate"
)

type stubModel struct{}

func (stubModel) Generate(context.Context, string, *llm.Attachment) (string, error) {
	return "", nil
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(io.Discard)

	model := stubModel{}
	records := analyses.NewInMemoryRepository()
	quotaManager := quota.NewManager(quota.NewInMemoryRepository(), 10)

	menuService := menu.NewService(
		extract.NewResolver(model, extract.Config{}, log),
		validate.NewValidator(validate.Thresholds{}),
		analysis.NewEngine(model, log),
		quotaManager,
		records,
		notify.Noop{},
		log,
	)

	authHandler := auth.NewHandler(auth.NewService(auth.NewInMemoryUserRepository()), notify.Noop{})

	return NewRouter(Handlers{
		Auth:     authHandler,
		Menu:     menu.NewHandler(menuService),
		Analyses: analyses.NewHandler(analyses.NewService(records, log)),
		Quota:    quota.NewHandler(quotaManager),
	}, []string{"http://localhost:3000"})
}

func TestHealthCheck(t *testing.T) {
	r := newTestEngine()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	r := newTestEngine()

	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/analyze-menu"},
		{http.MethodGet, "/analyses"},
		{http.MethodGet, "/analyses/some-id"},
		{http.MethodDelete, "/analyses/some-id"},
		{http.MethodGet, "/quota"},
		{http.MethodGet, "/auth/me"},
	} {
		req := httptest.NewRequest(route.method, route.path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 without a token, got %d", route.method, route.path, w.Code)
		}
	}
}
