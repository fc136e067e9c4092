package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/freevisa/visa-api/internal/auth"
	"github.com/freevisa/visa-api/internal/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(r *chi.Mux, cfg *config.Config, authHandler *auth.AuthHandler, visaHandler *VisaHandler, applicationHandler *ApplicationHandler) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if cfg.EnableCORS {
		r.Use(corsMiddleware)
	}

	// Initialize Huma API
	humaConfig := huma.DefaultConfig("Visa Portal API", "1.0.0")
	api := humachi.New(r, humaConfig)

	// Public routes
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Server is running ok."))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Auth routes
	r.Get("/auth/google/login", authHandler.HandleLogin)
	r.Get("/auth/google/callback", authHandler.HandleCallback)

	// Session routes, behind the sliding-session middleware
	r.Group(func(r chi.Router) {
		r.Use(authHandler.AuthMiddleware)
		r.Get("/me", authHandler.HandleMe)
	})

	// Visa routes
	huma.Get(api, "/visas", visaHandler.HandleListVisas)
	huma.Get(api, "/visas/{id}", visaHandler.HandleGetVisa)
	huma.Post(api, "/visas/add", visaHandler.HandleAddVisa, func(o *huma.Operation) {
		o.DefaultStatus = http.StatusCreated
	})
	huma.Put(api, "/visas/{id}", visaHandler.HandleUpdateVisa)
	huma.Delete(api, "/visas/{id}", visaHandler.HandleDeleteVisa)

	// Application routes
	huma.Post(api, "/applications", applicationHandler.HandleCreateApplication, func(o *huma.Operation) {
		o.DefaultStatus = http.StatusCreated
	})
	huma.Get(api, "/applications", applicationHandler.HandleListApplications)
	huma.Delete(api, "/applications/{id}", applicationHandler.HandleDeleteApplication)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
