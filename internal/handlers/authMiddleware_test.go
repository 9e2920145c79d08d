package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quizify/internal/handlers"
	"quizify/internal/models"
	"quizify/internal/utility"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAuthenticationRejectsMissingToken(t *testing.T) {
	called := false
	handler := handlers.Authentication()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("GET", "/api/question/get-questions", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if called {
		t.Fatal("expected the next handler not to run")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["success"] != false {
		t.Fatalf("expected success false, got %v", body["success"])
	}
	if body["message"] != "Unauthorized access" {
		t.Fatalf("expected unauthorized message, got %v", body["message"])
	}
}

func TestAuthenticationRejectsInvalidToken(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	handler := handlers.Authentication()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("expected the next handler not to run")
	}))

	req := httptest.NewRequest("GET", "/api/question/get-questions", nil)
	req.Header.Set("token", "not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticationAttachesUser(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	uid := primitive.NewObjectID()
	token, _, err := utility.GenerateAllTokens("ada@example.com", "Ada", "Lovelace", "admin", uid.Hex())
	if err != nil {
		t.Fatalf("GenerateAllTokens: %v", err)
	}

	var got models.AuthUser
	var ok bool
	handler := handlers.Authentication()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = r.Context().Value(models.ContextUser).(models.AuthUser)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/question/get-questions", nil)
	req.Header.Set("token", token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !ok {
		t.Fatal("expected an AuthUser on the request context")
	}
	if got.ID != uid || got.Email != "ada@example.com" || got.Role != "admin" {
		t.Fatalf("unexpected auth user: %+v", got)
	}
	if !got.IsAdmin() {
		t.Fatal("expected the admin role to be recognized")
	}
}

func TestAuthenticationRejectsBadUID(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	token, _, err := utility.GenerateAllTokens("ada@example.com", "Ada", "Lovelace", "user", "not-an-object-id")
	if err != nil {
		t.Fatalf("GenerateAllTokens: %v", err)
	}

	handler := handlers.Authentication()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("expected the next handler not to run")
	}))

	req := httptest.NewRequest("GET", "/api/question/get-questions", nil)
	req.Header.Set("token", token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
