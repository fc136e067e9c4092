package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/freevisa/visa-api/internal/auth"
	"github.com/freevisa/visa-api/internal/config"
	"github.com/freevisa/visa-api/internal/models"
	"github.com/go-chi/chi/v5"
)

func TestRegisterRoutes_SessionSurface(t *testing.T) {
	db := setupTestDB(t)
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to auto migrate: %v", err)
	}

	user := models.User{GoogleID: "123456", Email: "test@example.com", DisplayName: "Test User"}
	db.Create(&user)

	cfg := &config.Config{JWTSecret: "test-secret"}
	authHandler := auth.NewAuthHandler(cfg, db, nil)

	r := chi.NewRouter()
	RegisterRoutes(r, cfg, authHandler, NewVisaHandler(db), NewApplicationHandler(db, nil))

	t.Run("MeRequiresSession", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		rr := httptest.NewRecorder()

		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %v", rr.Code)
		}
	})

	t.Run("MeWithSession", func(t *testing.T) {
		token, _ := authHandler.GenerateToken(user.ID)
		req := httptest.NewRequest("GET", "/me", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
		rr := httptest.NewRecorder()

		r.ServeHTTP(rr, req)
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
	})

	t.Run("VisasStayPublic", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/visas", nil)
		rr := httptest.NewRecorder()

		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Errorf("expected status OK without a session, got %v", rr.Code)
		}
	})
}
