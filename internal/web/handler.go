package web

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/estruyf/FrameFit/internal/commands"
	"github.com/estruyf/FrameFit/internal/database"
	"github.com/estruyf/FrameFit/internal/reporter"
	"github.com/estruyf/FrameFit/pkg/window"
)

// maxBodyBytes bounds resize request bodies
const maxBodyBytes = 1 << 16

type Handler struct {
	commands       *commands.Commands
	repo           *database.Repository
	reporter       *reporter.Reporter
	allowedOrigins map[string]bool
}

// NewHandler wires the API to the command boundary. repo may be nil, in
// which case the history endpoints answer 503. Browser requests are only
// served for the listed origins.
func NewHandler(cmds *commands.Commands, repo *database.Repository, allowedOrigins []string) *Handler {
	h := &Handler{
		commands:       cmds,
		repo:           repo,
		allowedOrigins: make(map[string]bool, len(allowedOrigins)),
	}
	for _, origin := range allowedOrigins {
		h.allowedOrigins[origin] = true
	}
	if repo != nil {
		h.reporter = reporter.New(repo)
	}
	return h
}

func (h *Handler) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/permissions", h.handlePermissions)
	mux.HandleFunc("/api/windows", h.handleWindows)
	mux.HandleFunc("/api/windows/frontmost", h.handleFrontmost)
	mux.HandleFunc("/api/windows/frontmost/resize", h.handleResizeFrontmost)
	mux.HandleFunc("/api/windows/resize", h.handleResizeSpecific)
	mux.HandleFunc("/api/history", h.handleHistory)
	mux.HandleFunc("/api/history/latest", h.handleLatest)
	mux.HandleFunc("/api/history/events", h.handleEvents)
	mux.HandleFunc("/api/history/errors", h.handleErrors)

	mux.HandleFunc("/health", h.handleHealth)
}

// resizeBody is the JSON body of both resize endpoints. WindowID is ignored
// for the frontmost window.
type resizeBody struct {
	WindowID uint32 `json:"window_id"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Center   bool   `json:"center"`
}

func (h *Handler) handlePermissions(w http.ResponseWriter, r *http.Request) {
	if !h.allowMethod(w, r, http.MethodGet) {
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{
		"has_window_access": h.commands.CheckPermissions(),
	})
}

func (h *Handler) handleWindows(w http.ResponseWriter, r *http.Request) {
	if !h.allowMethod(w, r, http.MethodGet) {
		return
	}

	windows, err := h.commands.GetWindows()
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, windows)
}

func (h *Handler) handleFrontmost(w http.ResponseWriter, r *http.Request) {
	if !h.allowMethod(w, r, http.MethodGet) {
		return
	}

	win, err := h.commands.GetFrontmostWindow()
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, win)
}

func (h *Handler) handleResizeFrontmost(w http.ResponseWriter, r *http.Request) {
	if !h.allowMethod(w, r, http.MethodPost) {
		return
	}

	body, ok := decodeResizeBody(w, r)
	if !ok {
		return
	}

	if err := h.commands.ResizeFrontmostWindow(body.Width, body.Height, body.Center); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "resized"})
}

func (h *Handler) handleResizeSpecific(w http.ResponseWriter, r *http.Request) {
	if !h.allowMethod(w, r, http.MethodPost) {
		return
	}

	body, ok := decodeResizeBody(w, r)
	if !ok {
		return
	}

	if err := h.commands.ResizeSpecificWindow(body.WindowID, body.Width, body.Height, body.Center); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "resized"})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	if !h.allowMethod(w, r, http.MethodGet) || !h.requireJournal(w) {
		return
	}

	periodType := r.URL.Query().Get("period")
	if periodType == "" {
		periodType = "day"
	}

	if _, err := reporter.Period(periodType, time.Now()); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	report, err := h.reporter.GenerateReport(periodType)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, report)
}

func (h *Handler) handleLatest(w http.ResponseWriter, r *http.Request) {
	if !h.allowMethod(w, r, http.MethodGet) || !h.requireJournal(w) {
		return
	}

	event, err := h.repo.GetLatest()
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if event == nil {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": "no resizes recorded"})
		return
	}

	respondJSON(w, http.StatusOK, event)
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	if !h.allowMethod(w, r, http.MethodGet) || !h.requireJournal(w) {
		return
	}

	periodType := r.URL.Query().Get("period")
	if periodType == "" {
		periodType = "day"
	}

	if _, err := reporter.Period(periodType, time.Now()); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	events, err := h.reporter.Events(periodType)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, events)
}

func (h *Handler) handleErrors(w http.ResponseWriter, r *http.Request) {
	if !h.allowMethod(w, r, http.MethodGet) || !h.requireJournal(w) {
		return
	}

	limit := reporter.DefaultErrorLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	logs, err := h.reporter.RecentErrors(limit)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, logs)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) requireJournal(w http.ResponseWriter) bool {
	if h.repo == nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "resize journal is not available"})
		return false
	}
	return true
}

// allowMethod answers preflights and rejects other methods. Requests
// carrying an Origin outside the allow list are refused.
func (h *Handler) allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	origin := r.Header.Get("Origin")
	if origin != "" {
		if !h.allowedOrigins[origin] {
			http.Error(w, "Origin not allowed", http.StatusForbidden)
			return false
		}
		setCORSHeaders(w, origin)
	}

	if r.Method == http.MethodOptions {
		w.Header().Set("Allow", method+", OPTIONS")
		w.WriteHeader(http.StatusNoContent)
		return false
	}
	if r.Method != method {
		w.Header().Set("Allow", method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func decodeResizeBody(w http.ResponseWriter, r *http.Request) (resizeBody, bool) {
	var body resizeBody

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return body, false
	}
	return body, true
}

// statusFor maps window error kinds to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, window.ErrNotSupported):
		return http.StatusNotImplemented
	case errors.Is(err, window.ErrWindowNotFound), errors.Is(err, window.ErrNoEligibleWindow):
		return http.StatusNotFound
	case errors.Is(err, window.ErrSelfResizeForbidden):
		return http.StatusForbidden
	case errors.Is(err, window.ErrScriptFailed), errors.Is(err, window.ErrScriptSpawnFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

func setCORSHeaders(w http.ResponseWriter, origin string) {
	w.Header().Set("Access-Control-Allow-Origin", origin)
	w.Header().Set("Vary", "Origin")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")

	payload, err := json.Marshal(data)
	if err != nil {
		log.Printf("Error encoding JSON: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	w.Write(append(payload, '\n'))
}
