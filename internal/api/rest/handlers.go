package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/mrandyclark/spreads-on-toast-sub000/internal/cache"
	"github.com/mrandyclark/spreads-on-toast-sub000/internal/service"
	"github.com/mrandyclark/spreads-on-toast-sub000/internal/store"
	"github.com/mrandyclark/spreads-on-toast-sub000/internal/store/repository"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db                 *store.Database
	sheetService       *service.SheetService
	leaderboardService *service.LeaderboardService
	projectionService  *service.ProjectionService
	standingsService   *service.StandingsService
}

// NewHandler creates a new handler
func NewHandler(db *store.Database, redisCache *cache.RedisCache) *Handler {
	return &Handler{
		db:                 db,
		sheetService:       service.NewSheetService(db),
		leaderboardService: service.NewLeaderboardService(db, redisCache),
		projectionService:  service.NewProjectionService(db),
		standingsService:   service.NewStandingsService(db),
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "spreads-on-toast",
		"version": "1.0.0",
	})
}

// GetTeams returns all teams
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	teamRepo := repository.NewTeamRepository(h.db)
	teams, err := teamRepo.GetAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch teams", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"teams": teams})
}

// GetTeam returns a specific team by ID or abbreviation
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	teamID := vars["teamID"]

	teamRepo := repository.NewTeamRepository(h.db)
	team, err := teamRepo.GetByID(r.Context(), teamID)
	if err != nil {
		team, err = teamRepo.GetByAbbreviation(r.Context(), strings.ToUpper(teamID))
	}
	if err != nil {
		respondError(w, http.StatusNotFound, "Team not found", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"team": team})
}

// GetTeamProjection returns a team's pace and Pythagorean projections for a date
func (h *Handler) GetTeamProjection(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	teamID := vars["teamID"]

	seasonYear, ok := h.parseSeason(w, r)
	if !ok {
		return
	}

	date, err := parseDateParam(r, "date")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}
	if date == nil {
		respondError(w, http.StatusBadRequest, "Missing required parameter 'date'", nil)
		return
	}

	projection, err := h.projectionService.GetTeamProjection(r.Context(), teamID, seasonYear, *date)
	if err != nil {
		respondError(w, http.StatusNotFound, "Projection not available", err)
		return
	}

	respondJSON(w, http.StatusOK, projection)
}

// GetTeamTrend returns a team's projection samples across a date range
func (h *Handler) GetTeamTrend(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	teamID := vars["teamID"]

	seasonYear, ok := h.parseSeason(w, r)
	if !ok {
		return
	}

	from, err := parseDateParam(r, "from")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid 'from' date (use YYYY-MM-DD)", err)
		return
	}
	to, err := parseDateParam(r, "to")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid 'to' date (use YYYY-MM-DD)", err)
		return
	}
	if from == nil || to == nil {
		respondError(w, http.StatusBadRequest, "Missing required parameters 'from' and 'to'", nil)
		return
	}

	trend, err := h.projectionService.GetTeamTrend(r.Context(), teamID, seasonYear, *from, *to)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch trend", err)
		return
	}

	respondJSON(w, http.StatusOK, trend)
}

// GetStandings returns the snapshot set for a date, or the latest snapshots
// when no date is given
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	seasonYear, ok := h.parseSeason(w, r)
	if !ok {
		return
	}

	date, err := parseDateParam(r, "date")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	standingsRepo := repository.NewStandingsRepository(h.db)
	var snapshots []*store.StandingsSnapshot
	if date != nil {
		snapshots, err = standingsRepo.GetByDate(r.Context(), seasonYear, *date)
	} else {
		snapshots, err = standingsRepo.GetLatest(r.Context(), seasonYear)
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch standings", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"standings": snapshots,
		"count":     len(snapshots),
	})
}

// GetLines returns every team's win-total line for a season
func (h *Handler) GetLines(w http.ResponseWriter, r *http.Request) {
	seasonYear, ok := h.parseSeason(w, r)
	if !ok {
		return
	}

	lineRepo := repository.NewLineRepository(h.db)
	lines, err := lineRepo.GetForSeason(r.Context(), seasonYear)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch lines", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"lines": lines})
}

// GetGroup returns a group and its members
func (h *Handler) GetGroup(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	groupID := vars["groupID"]

	groupRepo := repository.NewGroupRepository(h.db)
	group, err := groupRepo.GetByID(r.Context(), groupID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Group not found", err)
		return
	}

	members, err := groupRepo.GetMembers(r.Context(), groupID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch group members", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"group":   group,
		"members": members,
	})
}

// GetLeaderboard returns the ranked leaderboard for a group. Historical mode
// is selected by the presence of the 'date' query parameter, final mode by
// its absence.
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	groupID := vars["groupID"]
	viewerID := r.URL.Query().Get("viewer")

	date, err := parseDateParam(r, "date")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	entries, err := h.leaderboardService.GetLeaderboard(r.Context(), groupID, viewerID, date)
	if err != nil {
		respondSettlementError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"leaderboard": entries,
		"count":       len(entries),
	})
}

// GetSheetResults returns one member's settled sheet
func (h *Handler) GetSheetResults(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	groupID := vars["groupID"]
	userID := vars["userID"]

	date, err := parseDateParam(r, "date")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	tally, err := h.sheetService.GetSheetResults(r.Context(), groupID, userID, date)
	if err != nil {
		respondSettlementError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tally)
}

// CreateSheet enrolls a user in a group with a fresh sheet of unset picks
func (h *Handler) CreateSheet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	groupID := vars["groupID"]
	userID := vars["userID"]

	sheet, err := h.sheetService.CreateSheet(r.Context(), groupID, userID)
	if err != nil {
		respondSettlementError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"sheet": sheet})
}

// UpdatePickDirection sets a pick's over/under call before lock
func (h *Handler) UpdatePickDirection(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	groupID := vars["groupID"]
	userID := vars["userID"]
	pickID := vars["pickID"]

	var body struct {
		Direction string `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	err := h.sheetService.UpdatePickDirection(r.Context(), groupID, userID, pickID, body.Direction)
	if err != nil {
		respondSettlementError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"pick_id":   pickID,
		"direction": body.Direction,
	})
}

// parseSeason reads the required 'season' query parameter
func (h *Handler) parseSeason(w http.ResponseWriter, r *http.Request) (int, bool) {
	seasonStr := r.URL.Query().Get("season")
	if seasonStr == "" {
		respondError(w, http.StatusBadRequest, "Missing required parameter 'season'", nil)
		return 0, false
	}

	seasonYear, err := strconv.Atoi(seasonStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid season (use a year, e.g. 2025)", err)
		return 0, false
	}

	return seasonYear, true
}

// parseDateParam parses an optional YYYY-MM-DD query parameter
func parseDateParam(r *http.Request, name string) (*time.Time, error) {
	dateStr := r.URL.Query().Get(name)
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// respondSettlementError maps service and repository errors onto HTTP status
// codes. The engine itself never produces errors; these all come from the
// calling layer's own preconditions.
func respondSettlementError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrGroupNotFound):
		respondError(w, http.StatusNotFound, "Group not found", err)
	case errors.Is(err, repository.ErrSheetNotFound):
		respondError(w, http.StatusNotFound, "Sheet not found", err)
	case errors.Is(err, repository.ErrPickNotFound):
		respondError(w, http.StatusNotFound, "Pick not found", err)
	case errors.Is(err, service.ErrGroupNotLocked):
		respondError(w, http.StatusBadRequest, "Season not locked yet", err)
	case errors.Is(err, service.ErrGroupLocked):
		respondError(w, http.StatusBadRequest, "Picks are locked", err)
	case errors.Is(err, service.ErrInvalidDirection):
		respondError(w, http.StatusBadRequest, "Direction must be over, under, or unset", err)
	case errors.Is(err, service.ErrSheetExists):
		respondError(w, http.StatusConflict, "Sheet already exists", err)
	default:
		respondError(w, http.StatusInternalServerError, "Internal server error", err)
	}
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
