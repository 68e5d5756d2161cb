package notes

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_view.go -package=mocks skypad/internal/notes View

import (
	"unicode/utf8"

	"skypad/internal/storage"
)

// SummaryLength is the number of body runes shown in a list entry.
const SummaryLength = 44

// Summary is one entry of the notes list.
type Summary struct {
	ID       int64
	Title    string
	Excerpt  string // Body truncated to SummaryLength runes
	Selected bool   // The note is open in the editor session
}

// EditorState is what the edit form shows for a session.
type EditorState struct {
	ID    int64
	Title string
	Body  string

	ShowView       bool // Read-only view area
	ShowEdit       bool // Title/body edit area
	ShowEditButton bool
	ShowTrash      bool
}

// Presenter renders notes. Implemented by the presentation layer.
type Presenter interface {
	// RenderSummary appends a list entry.
	RenderSummary(summary Summary)
	// PopulateEditor fills the edit form and control visibility.
	PopulateEditor(state EditorState)
}

// Listener receives operation results. Implemented by the presentation layer.
type Listener interface {
	OnInitialized(listing []storage.NoteRecord)
	OnSearchResults(results []storage.NoteRecord)
	OnSaved(note storage.NoteRecord)
	OnDeleted()
	// OnError receives a human-readable message and the engine error code (0 if none).
	OnError(message string, code int)
}

// View is the full presentation collaborator.
type View interface {
	Presenter
	Listener
}

// Truncate shortens body to SummaryLength runes, appending " ..." when it was longer.
func Truncate(body string) string {
	if utf8.RuneCountInString(body) <= SummaryLength {
		return body
	}
	return string([]rune(body)[:SummaryLength]) + " ..."
}

// Summarize builds the list entry for note.
func Summarize(note storage.NoteRecord, session Session) Summary {
	return Summary{
		ID:       note.ID,
		Title:    note.Title,
		Excerpt:  Truncate(note.Body),
		Selected: note.IsPersisted() && note.ID == session.Note.ID,
	}
}

// Editor derives the form state for session.
func Editor(session Session) EditorState {
	state := EditorState{
		ID:    session.Note.ID,
		Title: session.Note.Title,
		Body:  session.Note.Body,
	}
	if !session.Note.IsPersisted() {
		state.ShowEdit = true
		return state
	}
	state.ShowEditButton = true
	state.ShowTrash = true
	state.ShowEdit = session.Editing
	state.ShowView = !session.Editing
	return state
}
