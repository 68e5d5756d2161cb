package notes

import (
	"strings"
	"testing"

	"skypad/internal/storage"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "empty", body: "", want: ""},
		{name: "short", body: "milk, eggs", want: "milk, eggs"},
		{name: "exactly limit", body: strings.Repeat("a", 44), want: strings.Repeat("a", 44)},
		{name: "one over", body: strings.Repeat("a", 45), want: strings.Repeat("a", 44) + " ..."},
		{name: "multibyte runes", body: strings.Repeat("é", 50), want: strings.Repeat("é", 44) + " ..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.body); got != tt.want {
				t.Errorf("Truncate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEditor(t *testing.T) {
	persisted := storage.NoteRecord{ID: 1, Title: "t", Body: "b"}

	tests := []struct {
		name    string
		session Session
		want    EditorState
	}{
		{
			name:    "new note shows only the edit area",
			session: Session{Note: storage.NewNote("", "")},
			want:    EditorState{ShowEdit: true},
		},
		{
			name:    "persisted note in view mode",
			session: Session{Note: persisted},
			want:    EditorState{ID: 1, Title: "t", Body: "b", ShowView: true, ShowEditButton: true, ShowTrash: true},
		},
		{
			name:    "persisted note in edit mode",
			session: Session{Note: persisted, Editing: true},
			want:    EditorState{ID: 1, Title: "t", Body: "b", ShowEdit: true, ShowEditButton: true, ShowTrash: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Editor(tt.session); got != tt.want {
				t.Errorf("Editor() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	note := storage.NoteRecord{ID: 2, Title: "t", Body: strings.Repeat("x", 60)}

	got := Summarize(note, Session{Note: note})
	if !got.Selected || got.Excerpt != strings.Repeat("x", 44)+" ..." {
		t.Errorf("Summarize() = %+v", got)
	}
	if Summarize(storage.NewNote("a", "b"), Session{}).Selected {
		t.Error("unsaved note should never be selected")
	}
}

func TestSnapshot(t *testing.T) {
	var s Snapshot
	s.RenderSummary(Summary{ID: 1})
	s.OnSearchResults([]storage.NoteRecord{{ID: 1}})
	s.OnError("boom", 7)

	if len(s.Summaries) != 1 || len(s.Listing) != 1 {
		t.Errorf("Snapshot recorded %+v", s)
	}
	if s.Failure == nil || s.Failure.Code != 7 {
		t.Errorf("Failure = %+v", s.Failure)
	}

	s.ResetListing()
	if s.Summaries != nil || s.Listing != nil {
		t.Error("ResetListing() kept entries")
	}
}

func TestValidationError(t *testing.T) {
	err := validate("", "body")
	ve, ok := err.(*ValidationError)
	if !ok || ve.Field != "title" {
		t.Fatalf("validate() = %v, want title ValidationError", err)
	}
	if ve.Error() != "validation error on field title: cannot be empty" {
		t.Errorf("Error() = %q", ve.Error())
	}
	if validate("t", "b") != nil {
		t.Error("validate() rejected valid input")
	}
}
