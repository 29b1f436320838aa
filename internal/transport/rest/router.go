package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"surveydash/internal/metrics"
	"surveydash/internal/service"
	"surveydash/internal/transport/rest/handler"
	"surveydash/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService     *service.AuthService
	SurveyService   *service.SurveyService
	ResponseService *service.ResponseService
	ReportService   *service.ReportService
	Metrics         *metrics.Metrics
	Gatherer        prometheus.Gatherer
	SubmitLimiter   *middleware.RateLimiter
	AllowedOrigins  string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	surveyHandler := handler.NewSurveyHandler(c.SurveyService)
	responseHandler := handler.NewResponseHandler(c.ResponseService)
	reportHandler := handler.NewReportHandler(c.ReportService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.AllowedOrigins))
	r.Use(middleware.RequestLogger(c.Metrics))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")
	r.Handle("/metrics", promhttp.HandlerFor(c.Gatherer, promhttp.HandlerOpts{})).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.Handle("/surveys/{surveyId}/responses",
		c.SubmitLimiter.Limit(http.HandlerFunc(responseHandler.Submit))).Methods("POST", "OPTIONS")

	// Host routes (require host auth)
	hostRoutes := v1.NewRoute().Subrouter()
	hostRoutes.Use(authMW.RequireHost)

	hostRoutes.HandleFunc("/surveys", surveyHandler.List).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/surveys", surveyHandler.Create).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/surveys/page/{page}", surveyHandler.ListPage).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/surveys/{surveyId}", surveyHandler.Get).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/surveys/{surveyId}/status", surveyHandler.UpdateStatus).Methods("PUT", "OPTIONS")
	hostRoutes.HandleFunc("/surveys/{surveyId}/delete", surveyHandler.Delete).Methods("POST", "DELETE", "OPTIONS")
	hostRoutes.HandleFunc("/question-kinds", surveyHandler.QuestionKinds).Methods("GET", "OPTIONS")

	hostRoutes.HandleFunc("/responses", responseHandler.List).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/surveys/{surveyId}/responses", responseHandler.ListBySurvey).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/responses/{responseId}/detail", responseHandler.Detail).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/responses/{responseId}/delete", responseHandler.Delete).Methods("POST", "DELETE", "OPTIONS")

	// Report routes (host only)
	hostRoutes.HandleFunc("/surveys/{surveyId}/report", reportHandler.Get).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/surveys/{surveyId}/questions/{questionId}/chart", reportHandler.Chart).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(allowedOrigins string) mux.MiddlewareFunc {
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, HX-Request")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
