package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mrandyclark/spreads-on-toast-sub000/internal/backfill"
	"github.com/mrandyclark/spreads-on-toast-sub000/internal/cache"
	"github.com/mrandyclark/spreads-on-toast-sub000/internal/store"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(port string, db *store.Database, redisCache *cache.RedisCache, backfillSvc *backfill.Service) *Server {
	handler := NewHandler(db, redisCache)
	backfillHandler := NewBackfillHandler(backfillSvc)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Teams and standings
	api.HandleFunc("/teams", handler.GetTeams).Methods("GET")
	api.HandleFunc("/teams/{teamID}", handler.GetTeam).Methods("GET")
	api.HandleFunc("/teams/{teamID}/projection", handler.GetTeamProjection).Methods("GET")
	api.HandleFunc("/teams/{teamID}/trend", handler.GetTeamTrend).Methods("GET")
	api.HandleFunc("/standings", handler.GetStandings).Methods("GET")
	api.HandleFunc("/lines", handler.GetLines).Methods("GET")

	// Groups, sheets, leaderboards
	api.HandleFunc("/groups/{groupID}", handler.GetGroup).Methods("GET")
	api.HandleFunc("/groups/{groupID}/leaderboard", handler.GetLeaderboard).Methods("GET")
	api.HandleFunc("/groups/{groupID}/sheets/{userID}", handler.GetSheetResults).Methods("GET")
	api.HandleFunc("/groups/{groupID}/sheets/{userID}", handler.CreateSheet).Methods("POST")
	api.HandleFunc("/groups/{groupID}/sheets/{userID}/picks/{pickID}", handler.UpdatePickDirection).Methods("PUT")

	// Backfill operations
	api.HandleFunc("/backfill", backfillHandler.HandleBackfillRequest).Methods("POST")
	api.HandleFunc("/backfill/status", backfillHandler.HandleBackfillStatus).Methods("GET")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
