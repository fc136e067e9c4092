package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/freevisa/visa-api/internal/config"
	"github.com/freevisa/visa-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestHandleMe(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	db.AutoMigrate(&models.User{})

	user := models.User{
		GoogleID:    "123456",
		Email:       "test@example.com",
		DisplayName: "Test User",
		PhotoURL:    "photo_url",
	}
	db.Create(&user)

	cfg := &config.Config{JWTSecret: "test-secret"}
	handler := NewAuthHandler(cfg, db, nil)

	// /me is served behind the sliding-session middleware.
	session := handler.AuthMiddleware(http.HandlerFunc(handler.HandleMe))

	t.Run("Authenticated", func(t *testing.T) {
		token, _ := handler.GenerateToken(user.ID)
		req, _ := http.NewRequest("GET", "/me", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
		rr := httptest.NewRecorder()

		session.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected status OK, got %v", rr.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body["email"] != user.Email {
			t.Errorf("expected email %s, got %s", user.Email, body["email"])
		}
		if body["displayName"] != user.DisplayName {
			t.Errorf("expected display name %s, got %s", user.DisplayName, body["displayName"])
		}
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/me", nil)
		rr := httptest.NewRecorder()

		session.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %v", rr.Code)
		}
	})

	t.Run("GarbageToken", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/me", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: "garbage"})
		rr := httptest.NewRecorder()

		session.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %v", rr.Code)
		}
	})

	t.Run("UnknownUser", func(t *testing.T) {
		token, _ := handler.GenerateToken(9999)
		req, _ := http.NewRequest("GET", "/me", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
		rr := httptest.NewRecorder()

		session.ServeHTTP(rr, req)
		if rr.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %v", rr.Code)
		}
	})
}
