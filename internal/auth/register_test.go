package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type countingNotifier struct {
	registered int
}

func (n *countingNotifier) UserRegistered(string, string, string) { n.registered++ }

func setupTestRouter(notifier Notifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	service := NewService(NewInMemoryUserRepository())
	handler := NewHandler(service, notifier)
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)

	return r
}

func postAuth(r *gin.Engine, path string, payload map[string]string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterSuccess(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")
	notifier := &countingNotifier{}
	r := setupTestRouter(notifier)

	w := postAuth(r, "/auth/register", map[string]string{
		"name":         "Test User",
		"email":        "test@example.com",
		"password":     "Password@123",
		"businessName": "Test Bistro",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token in the response")
	}
	if resp.User.Email != "test@example.com" {
		t.Fatalf("unexpected user payload: %s", w.Body.String())
	}
	if notifier.registered != 1 {
		t.Fatalf("expected one CRM notification, got %d", notifier.registered)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	r := setupTestRouter(&countingNotifier{})

	w := postAuth(r, "/auth/register", map[string]string{
		"email": "test@example.com",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")
	r := setupTestRouter(&countingNotifier{})

	payload := map[string]string{
		"name":     "Test User",
		"email":    "test@example.com",
		"password": "Password@123",
	}

	if w := postAuth(r, "/auth/register", payload); w.Code != http.StatusCreated {
		t.Fatalf("first registration should succeed, got %d", w.Code)
	}
	if w := postAuth(r, "/auth/register", payload); w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", w.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")
	r := setupTestRouter(&countingNotifier{})

	postAuth(r, "/auth/register", map[string]string{
		"name":     "Test User",
		"email":    "test@example.com",
		"password": "Password@123",
	})

	w := postAuth(r, "/auth/login", map[string]string{
		"email":    "test@example.com",
		"password": "wrong-password",
	})

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}
