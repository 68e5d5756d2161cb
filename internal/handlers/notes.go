package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"skypad/internal/contextutil"
	"skypad/internal/notes"
	"skypad/internal/storage"
)

// NotesHandler serves the JSON notes API.
type NotesHandler struct {
	controller *notes.Controller
}

// NewNotesHandler creates a new NotesHandler.
func NewNotesHandler(controller *notes.Controller) *NotesHandler {
	return &NotesHandler{controller: controller}
}

// NoteResponse is the JSON form of a note.
type NoteResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at,omitempty"`
}

// ListResponse is the JSON response for a listing.
type ListResponse struct {
	Notes []NoteResponse `json:"notes"`
}

// SaveRequest is the JSON payload for creating or updating a note.
type SaveRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code,omitempty"`
}

func toResponse(note storage.NoteRecord) NoteResponse {
	return NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Body:      note.Body,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

// List handles GET /api/notes?q=&order=&desc=.
func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session := notes.Session{
		OrderBy:    storage.Field(r.URL.Query().Get("order")),
		Descending: r.URL.Query().Get("desc") == "true",
	}
	if session.OrderBy != "" && !session.OrderBy.Valid() {
		h.writeError(w, http.StatusBadRequest, ErrorResponse{Error: "unknown order field"})
		return
	}

	view := &notes.Snapshot{}
	if _, err := h.controller.Search(ctx, view, session, r.URL.Query().Get("q")); err != nil {
		h.handleError(ctx, w, view, err)
		return
	}

	resp := ListResponse{Notes: make([]NoteResponse, 0, len(view.Listing))}
	for _, note := range view.Listing {
		resp.Notes = append(resp.Notes, toResponse(note))
	}
	h.writeJSON(ctx, w, http.StatusOK, resp)
}

// Get handles GET /api/notes/{id}.
func (h *NotesHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.noteID(w, r)
	if !ok {
		return
	}

	view := &notes.Snapshot{}
	session, err := h.controller.SelectByID(ctx, view, notes.Session{}, id)
	if err != nil {
		h.handleError(ctx, w, view, err)
		return
	}
	h.writeJSON(ctx, w, http.StatusOK, toResponse(session.Note))
}

// Create handles POST /api/notes.
func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		h.writeError(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	view := &notes.Snapshot{}
	session := h.controller.New(view)
	if _, err := h.controller.Save(ctx, view, session, req.Title, req.Body); err != nil {
		h.handleError(ctx, w, view, err)
		return
	}
	h.writeJSON(ctx, w, http.StatusCreated, toResponse(*view.Saved))
}

// Update handles PUT /api/notes/{id}.
func (h *NotesHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.noteID(w, r)
	if !ok {
		return
	}

	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		h.writeError(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	view := &notes.Snapshot{}
	session, err := h.controller.SelectByID(ctx, view, notes.Session{}, id)
	if err != nil {
		h.handleError(ctx, w, view, err)
		return
	}
	if _, err := h.controller.Save(ctx, view, session, req.Title, req.Body); err != nil {
		h.handleError(ctx, w, view, err)
		return
	}
	h.writeJSON(ctx, w, http.StatusOK, toResponse(*view.Saved))
}

// Delete handles DELETE /api/notes/{id}. Deleting a missing note succeeds.
func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.noteID(w, r)
	if !ok {
		return
	}

	view := &notes.Snapshot{}
	session := notes.Session{Note: storage.NoteRecord{ID: id}}
	if _, err := h.controller.Delete(ctx, view, session); err != nil {
		h.handleError(ctx, w, view, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NotesHandler) noteID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeError(w, http.StatusBadRequest, ErrorResponse{Error: "invalid note id"})
		return 0, false
	}
	return id, true
}

// handleError maps controller errors to HTTP status codes and responses.
func (h *NotesHandler) handleError(ctx context.Context, w http.ResponseWriter, view *notes.Snapshot, err error) {
	logger := contextutil.LoggerFromContext(ctx)

	resp := ErrorResponse{Error: err.Error()}
	if view.Failure != nil {
		resp = ErrorResponse{Error: view.Failure.Message, Code: view.Failure.Code}
	}

	switch {
	case errors.Is(err, notes.ErrInvalidInput):
		logger.WarnContext(ctx, "invalid note", "error", err)
		h.writeError(w, http.StatusBadRequest, resp)
	case errors.Is(err, storage.ErrNotFound):
		h.writeError(w, http.StatusNotFound, resp)
	default:
		logger.ErrorContext(ctx, "note operation failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, resp)
	}
}

func (h *NotesHandler) writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeError writes an error response.
func (h *NotesHandler) writeError(w http.ResponseWriter, statusCode int, resp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Default().Error("failed to encode error response", "error", err)
	}
}
