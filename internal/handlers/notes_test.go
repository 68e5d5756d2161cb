package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"skypad/internal/notes"
	"skypad/internal/notes/mocks"
	"skypad/internal/storage"
)

func newTestController(t *testing.T) (*notes.Controller, *storage.NoteRepo) {
	t.Helper()

	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	repo := storage.NewNoteRepo(db)
	if err := repo.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	return notes.NewController(repo), repo
}

func newNotesRouter(h *NotesHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/notes", h.List)
	r.Post("/api/notes", h.Create)
	r.Get("/api/notes/{id}", h.Get)
	r.Put("/api/notes/{id}", h.Update)
	r.Delete("/api/notes/{id}", h.Delete)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestNewNotesHandler(t *testing.T) {
	c, _ := newTestController(t)
	handler := NewNotesHandler(c)

	if handler == nil {
		t.Fatal("NewNotesHandler() returned nil")
	}
	if handler.controller != c {
		t.Error("NewNotesHandler() controller not set correctly")
	}
}

func TestNotesHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantError  string
	}{
		{
			name:       "valid note",
			body:       SaveRequest{Title: "Groceries", Body: "milk, eggs"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "empty title",
			body:       SaveRequest{Title: "", Body: "milk"},
			wantStatus: http.StatusBadRequest,
			wantError:  notes.EmptyFieldMessage,
		},
		{
			name:       "empty body",
			body:       SaveRequest{Title: "Groceries"},
			wantStatus: http.StatusBadRequest,
			wantError:  notes.EmptyFieldMessage,
		},
		{
			name:       "invalid JSON body",
			body:       "invalid json",
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestController(t)
			router := newNotesRouter(NewNotesHandler(c))

			w := doJSON(t, router, http.MethodPost, "/api/notes", tt.body)

			if w.Code != tt.wantStatus {
				t.Fatalf("Create() status = %v, want %v (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantError != "" {
				var resp ErrorResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("decode error response: %v", err)
				}
				if resp.Error != tt.wantError {
					t.Errorf("Create() error = %q, want %q", resp.Error, tt.wantError)
				}
				return
			}

			var resp NoteResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.ID != 1 || resp.Title != "Groceries" || resp.CreatedAt == 0 || resp.UpdatedAt != resp.CreatedAt {
				t.Errorf("Create() response = %+v", resp)
			}
		})
	}
}

func TestNotesHandler_GetUpdateDelete(t *testing.T) {
	c, repo := newTestController(t)
	router := newNotesRouter(NewNotesHandler(c))

	saved, err := repo.Save(context.Background(), storage.NewNote("Groceries", "milk"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	w := doJSON(t, router, http.MethodGet, "/api/notes/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Get() status = %v, want %v", w.Code, http.StatusOK)
	}

	w = doJSON(t, router, http.MethodPut, "/api/notes/1", SaveRequest{Title: "Groceries", Body: "milk, bread"})
	if w.Code != http.StatusOK {
		t.Fatalf("Update() status = %v, want %v (body %s)", w.Code, http.StatusOK, w.Body.String())
	}
	var updated NoteResponse
	if err := json.NewDecoder(w.Body).Decode(&updated); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if updated.ID != saved.ID || updated.Body != "milk, bread" || updated.CreatedAt != saved.CreatedAt {
		t.Errorf("Update() response = %+v, want body updated on note %d", updated, saved.ID)
	}

	w = doJSON(t, router, http.MethodDelete, "/api/notes/1", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("Delete() status = %v, want %v", w.Code, http.StatusNoContent)
	}

	// Deleting again is not an error.
	w = doJSON(t, router, http.MethodDelete, "/api/notes/1", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("second Delete() status = %v, want %v", w.Code, http.StatusNoContent)
	}

	w = doJSON(t, router, http.MethodGet, "/api/notes/1", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Get() after delete status = %v, want %v", w.Code, http.StatusNotFound)
	}
}

func TestNotesHandler_InvalidID(t *testing.T) {
	c, _ := newTestController(t)
	router := newNotesRouter(NewNotesHandler(c))

	for _, path := range []string{"/api/notes/abc", "/api/notes/0", "/api/notes/-3"} {
		w := doJSON(t, router, http.MethodGet, path, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("GET %s status = %v, want %v", path, w.Code, http.StatusBadRequest)
		}
	}
}

func TestNotesHandler_List(t *testing.T) {
	c, repo := newTestController(t)
	router := newNotesRouter(NewNotesHandler(c))

	for _, n := range []struct{ title, body string }{
		{"Groceries", "milk, eggs"},
		{"Work", "ship 100% of the release"},
		{"Books", "Dune"},
	} {
		if _, err := repo.Save(context.Background(), storage.NewNote(n.title, n.body)); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantTitles []string
	}{
		{name: "all notes by id", query: "", wantStatus: http.StatusOK, wantTitles: []string{"Groceries", "Work", "Books"}},
		{name: "filter by body", query: "?q=milk", wantStatus: http.StatusOK, wantTitles: []string{"Groceries"}},
		{name: "percent is literal", query: "?q=100%25", wantStatus: http.StatusOK, wantTitles: []string{"Work"}},
		{name: "order by title descending", query: "?order=title&desc=true", wantStatus: http.StatusOK, wantTitles: []string{"Work", "Groceries", "Books"}},
		{name: "no match", query: "?q=zzz", wantStatus: http.StatusOK, wantTitles: []string{}},
		{name: "unknown order field", query: "?order=colour", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodGet, "/api/notes"+tt.query, nil)
			if w.Code != tt.wantStatus {
				t.Fatalf("List() status = %v, want %v", w.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp ListResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			var got []string
			for _, n := range resp.Notes {
				got = append(got, n.Title)
			}
			if strings.Join(got, ",") != strings.Join(tt.wantTitles, ",") {
				t.Errorf("List() titles = %v, want %v", got, tt.wantTitles)
			}
		})
	}
}

func TestNotesHandler_StoreFailure(t *testing.T) {
	c, repo := newTestController(t)
	router := newNotesRouter(NewNotesHandler(c))

	if err := repo.DropNotesTable(context.Background(), storage.FatalSink{}); err != nil {
		t.Fatalf("DropNotesTable() error = %v", err)
	}

	w := doJSON(t, router, http.MethodPost, "/api/notes", SaveRequest{Title: "a", Body: "b"})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Create() status = %v, want %v", w.Code, http.StatusInternalServerError)
	}
	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if !strings.Contains(resp.Error, "no such table") || resp.Code == 0 {
		t.Errorf("Create() error response = %+v, want engine message and code", resp)
	}
}

func TestNotesHandler_Create_RelistFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockNoteStore(ctrl)
	stored := storage.NoteRecord{ID: 7, Title: "Groceries", Body: "milk, eggs", CreatedAt: 1000, UpdatedAt: 1000}
	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(stored, nil)
	store.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, &storage.StoreError{
		Op: "list", Kind: storage.ErrQueryFailed, Code: 1, Err: errors.New("boom"),
	})

	router := newNotesRouter(NewNotesHandler(notes.NewController(store)))
	w := doJSON(t, router, http.MethodPost, "/api/notes", SaveRequest{Title: "Groceries", Body: "milk, eggs"})

	if w.Code != http.StatusCreated {
		t.Fatalf("Create() status = %v, want %v (body %s)", w.Code, http.StatusCreated, w.Body.String())
	}
	var resp NoteResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != 7 || resp.Title != "Groceries" {
		t.Errorf("Create() response = %+v, want the stored note", resp)
	}
}
