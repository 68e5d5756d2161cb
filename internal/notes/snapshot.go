package notes

import "skypad/internal/storage"

// Failure is an error reported through OnError.
type Failure struct {
	Message string
	Code    int
}

// Snapshot is a View that records everything it is told.
// Request-scoped front-ends (HTTP, CLI) render from it after the controller returns.
type Snapshot struct {
	Summaries []Summary
	Editor    *EditorState
	Listing   []storage.NoteRecord // From OnInitialized or OnSearchResults
	Saved     *storage.NoteRecord
	Deleted   bool
	Failure   *Failure
}

var _ View = (*Snapshot)(nil)

func (s *Snapshot) RenderSummary(summary Summary) {
	s.Summaries = append(s.Summaries, summary)
}

func (s *Snapshot) PopulateEditor(state EditorState) {
	s.Editor = &state
}

func (s *Snapshot) OnInitialized(listing []storage.NoteRecord) {
	s.Listing = listing
}

func (s *Snapshot) OnSearchResults(results []storage.NoteRecord) {
	s.Listing = results
}

func (s *Snapshot) OnSaved(note storage.NoteRecord) {
	s.Saved = &note
}

func (s *Snapshot) OnDeleted() {
	s.Deleted = true
}

func (s *Snapshot) OnError(message string, code int) {
	s.Failure = &Failure{Message: message, Code: code}
}

// ResetListing clears recorded summaries, for when a later call relists.
func (s *Snapshot) ResetListing() {
	s.Summaries = nil
	s.Listing = nil
}
