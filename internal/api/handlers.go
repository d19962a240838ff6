// Package api exposes the HTTP handlers for the gymlog service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"example.com/gymlog/internal/auth"
	"example.com/gymlog/internal/domain"
	"example.com/gymlog/internal/identity"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service  *domain.Service
	identity *identity.Service
	tokens   auth.Config
	tokenTTL time.Duration
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service, identitySvc *identity.Service, tokens auth.Config, tokenTTL time.Duration) *Handler {
	return &Handler{
		service:  service,
		identity: identitySvc,
		tokens:   tokens,
		tokenTTL: tokenTTL,
	}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/login", h.login)
	mux.HandleFunc("/api/heartbeat", h.heartbeat)
	mux.HandleFunc("/api/sets", h.sets)
	mux.HandleFunc("/api/sets/", h.setByID)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	if err := h.identity.Authenticate(r.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "unauthorized", "invalid username or password")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	token, err := auth.Issue(req.Username, h.tokenTTL, h.tokens)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	// The token travels back in the Authorization response header; callers echo
	// it on subsequent requests.
	w.Header().Set("Authorization", "Bearer "+token)
	writeJSON(w, http.StatusOK, LoginResponse{
		TokenType: "Bearer",
		ExpiresIn: int64(h.tokenTTL.Seconds()),
	})
}

func (h *Handler) heartbeat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	if _, ok := auth.FromContext(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) sets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listSets(w, r)
	case http.MethodPost:
		h.createSet(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

// setByID covers /api/sets/{setId}. Only DELETE is mapped here; any other
// method on a path variant answers 405.
func (h *Handler) setByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	setID := strings.TrimPrefix(r.URL.Path, "/api/sets/")
	if setID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing set id")
		return
	}
	h.deleteSet(w, r, setID)
}

func (h *Handler) listSets(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}

	rows, err := h.service.ListSets(r.Context(), claims.Subject, r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	sets := make([]SetView, 0, len(rows))
	for _, row := range rows {
		sets = append(sets, toSetView(row))
	}

	writeJSON(w, http.StatusOK, ListSetsResponse{
		Total: len(sets),
		Sets:  sets,
	})
}

func (h *Handler) createSet(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}

	var req CreateSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	row, err := h.service.CreateSet(r.Context(), claims.Subject, domain.CreateSetInput{
		Weight:      req.Weight,
		Exercise:    req.Exercise,
		Repetitions: req.Repetitions,
	})
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toSetView(*row))
}

func (h *Handler) deleteSet(w http.ResponseWriter, r *http.Request, setID string) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}

	row, err := h.service.DeleteSet(r.Context(), claims.Subject, setID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	if row == nil {
		// Nothing owned by the caller matched; deletion is idempotent.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, toSetView(*row))
}

func isValidationError(err error) bool {
	return errors.Is(err, domain.ErrMissingWeight) ||
		errors.Is(err, domain.ErrMissingExercise) ||
		errors.Is(err, domain.ErrMissingRepetitions)
}

// LoginRequest is the payload for POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse describes the login response body; the token itself is
// delivered via the Authorization response header.
type LoginResponse struct {
	TokenType string `json:"tokenType"`
	ExpiresIn int64  `json:"expiresIn"`
}

// CreateSetRequest is the payload for POST /api/sets. Any client-supplied
// userId, id, or createdDate is ignored; weight and repetitions are pointers
// so an absent field is distinguishable from a zero value.
type CreateSetRequest struct {
	UserID      string   `json:"userId"`
	Weight      *float64 `json:"weight"`
	Exercise    string   `json:"exercise"`
	Repetitions *int     `json:"repetitions"`
}

// SetView exposes a persisted set row.
type SetView struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Weight      float64   `json:"weight"`
	Exercise    string    `json:"exercise"`
	Repetitions int       `json:"repetitions"`
	CreatedDate time.Time `json:"createdDate"`
}

// ListSetsResponse packages list results.
type ListSetsResponse struct {
	Total int       `json:"total"`
	Sets  []SetView `json:"sets"`
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toSetView(row domain.SetRow) SetView {
	return SetView{
		ID:          row.ID,
		UserID:      row.UserID,
		Weight:      row.Weight,
		Exercise:    row.Exercise,
		Repetitions: row.Repetitions,
		CreatedDate: row.CreatedDate,
	}
}
