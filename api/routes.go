package api

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"
	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/internal/config"
	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/internal/intake"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, svc *intake.Service) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = jsonStatusHandler(http.StatusNotFound, "Not found")
	r.MethodNotAllowedHandler = jsonStatusHandler(http.StatusMethodNotAllowed, "Method not allowed")

	// Middleware chain
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddlewareWithDebug(cfg.Development()))

	// Create handlers
	systemHandler := &SystemHandler{}
	intakeHandler := NewIntakeHandler(svc, cfg.Development())

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods(http.MethodGet)
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/intake", intakeHandler.Intake).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/check-user-exists", intakeHandler.CheckUserExists).Methods(http.MethodPost, http.MethodOptions)

	// Contractor requests act for a signed-in applicant when a secret is configured
	var contractor http.Handler = http.HandlerFunc(intakeHandler.ContractorRequest)
	if cfg.Auth.JWTSecret != "" {
		contractor = JWTAuthMiddlewareWithSecret(cfg.Auth.JWTSecret)(contractor)
	}
	r.Handle("/contractor-request", contractor).Methods(http.MethodPost, http.MethodOptions)

	return r
}
