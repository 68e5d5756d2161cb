package notes

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_note_store.go -package=mocks skypad/internal/notes NoteStore

import (
	"context"
	"errors"

	"skypad/internal/contextutil"
	"skypad/internal/storage"
)

// NoteStore is the persistence the controller needs.
// This interface is defined from the controller's perspective (consumer-first).
type NoteStore interface {
	// Initialize ensures the notes table exists.
	Initialize(ctx context.Context) error
	// List returns every note matching opts.
	List(ctx context.Context, opts storage.ListOptions) ([]storage.NoteRecord, error)
	// Get returns a single note or storage.ErrNotFound.
	Get(ctx context.Context, id int64) (storage.NoteRecord, error)
	// Save inserts or updates a note and returns the stored version.
	Save(ctx context.Context, note storage.NoteRecord) (storage.NoteRecord, error)
	// Delete removes a note; missing notes are not an error.
	Delete(ctx context.Context, note storage.NoteRecord) error
}

// Session is the editor state carried between UI events.
type Session struct {
	Note    storage.NoteRecord // Note open in the editor; ID 0 for a new note
	Editing bool               // Edit area shown instead of the view area
	Filter  string             // Active search keyword

	OrderBy    storage.Field // Listing order, id when empty
	Descending bool
}

// Controller handles UI events against a NoteStore.
// It keeps no state of its own; every call takes and returns a Session.
type Controller struct {
	store NoteStore
}

// NewController creates a new Controller.
func NewController(store NoteStore) *Controller {
	return &Controller{store: store}
}

// Init creates the notes table and delivers the initial listing, ordered by id.
func (c *Controller) Init(ctx context.Context, view View, session Session) (Session, error) {
	if err := c.store.Initialize(ctx); err != nil {
		c.report(ctx, view, err)
		return session, err
	}
	session.Filter = ""
	session.OrderBy = storage.FieldID
	session.Descending = false
	notes, session, err := c.list(ctx, view, session)
	if err != nil {
		return session, err
	}
	view.OnInitialized(notes)
	return session, nil
}

// Search lists notes whose title or body contains text.
func (c *Controller) Search(ctx context.Context, view View, session Session, text string) (Session, error) {
	session.Filter = text
	notes, session, err := c.list(ctx, view, session)
	if err != nil {
		return session, err
	}
	view.OnSearchResults(notes)
	return session, nil
}

// ClearSearch drops the keyword and lists every note.
func (c *Controller) ClearSearch(ctx context.Context, view View, session Session) (Session, error) {
	return c.Search(ctx, view, session, "")
}

// New opens an empty note in the editor.
func (c *Controller) New(view View) Session {
	session := Session{Note: storage.NewNote("", ""), Editing: true}
	view.PopulateEditor(Editor(session))
	return session
}

// Select opens note in the editor in view mode.
func (c *Controller) Select(view View, session Session, note storage.NoteRecord) Session {
	session.Note = note
	session.Editing = !note.IsPersisted()
	view.PopulateEditor(Editor(session))
	return session
}

// SelectByID loads the note with id and opens it.
func (c *Controller) SelectByID(ctx context.Context, view View, session Session, id int64) (Session, error) {
	note, err := c.store.Get(ctx, id)
	if err != nil {
		c.report(ctx, view, err)
		return session, err
	}
	return c.Select(view, session, note), nil
}

// ToggleEdit switches between the view and edit areas.
func (c *Controller) ToggleEdit(view View, session Session) Session {
	session.Editing = !session.Editing
	view.PopulateEditor(Editor(session))
	return session
}

// CancelEdit leaves edit mode and restores the stored fields.
func (c *Controller) CancelEdit(view View, session Session) Session {
	session.Editing = false
	view.PopulateEditor(Editor(session))
	return session
}

// Save validates and stores the edited fields, then relists every note.
// Once the store accepts the note, Save returns a nil error even if the relisting fails.
func (c *Controller) Save(ctx context.Context, view View, session Session, title, body string) (Session, error) {
	if err := validate(title, body); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "rejected note save", "error", err)
		view.OnError(EmptyFieldMessage, 0)
		return session, err
	}

	note := session.Note
	note.Title = title
	note.Body = body

	saved, err := c.store.Save(ctx, note)
	if err != nil {
		c.report(ctx, view, err)
		return session, err
	}
	view.OnSaved(saved)

	session.Note = saved
	session.Editing = false
	session.Filter = ""
	// The note is stored; a failed relisting is already reported through OnError.
	if _, listed, err := c.list(ctx, view, session); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "relisting after save failed", "id", saved.ID, "error", err)
	} else {
		session = listed
	}
	return session, nil
}

// Delete removes the session's note, relists, and returns a session on a new empty note.
// As with Save, a failed relisting after a successful delete is only reported to the view.
func (c *Controller) Delete(ctx context.Context, view View, session Session) (Session, error) {
	if err := c.store.Delete(ctx, session.Note); err != nil {
		c.report(ctx, view, err)
		return session, err
	}
	view.OnDeleted()

	fresh := Session{Note: storage.NewNote("", ""), Editing: true}
	if _, _, err := c.list(ctx, view, fresh); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "relisting after delete failed", "id", session.Note.ID, "error", err)
	}
	view.PopulateEditor(Editor(fresh))
	return fresh, nil
}

// list renders the listing for session.Filter. When the session's note is in the
// listing, the editor is repopulated with the stored version.
func (c *Controller) list(ctx context.Context, view View, session Session) ([]storage.NoteRecord, Session, error) {
	orderBy := session.OrderBy
	if orderBy == "" {
		orderBy = storage.FieldID
	}
	notes, err := c.store.List(ctx, storage.ListOptions{
		Filter:     session.Filter,
		OrderBy:    orderBy,
		Descending: session.Descending,
	})
	if err != nil {
		c.report(ctx, view, err)
		return nil, session, err
	}

	for _, note := range notes {
		view.RenderSummary(Summarize(note, session))
		if note.IsPersisted() && note.ID == session.Note.ID {
			session.Note = note
			view.PopulateEditor(Editor(session))
		}
	}
	return notes, session, nil
}

// report forwards err to the view as a message and engine code.
func (c *Controller) report(ctx context.Context, view View, err error) {
	if storeErr, ok := storage.AsStoreError(err); ok {
		view.OnError(storeErr.Message(), storeErr.Code)
		return
	}
	if errors.Is(err, storage.ErrNotFound) {
		contextutil.LoggerFromContext(ctx).DebugContext(ctx, "note not found", "error", err)
	}
	view.OnError(err.Error(), 0)
}
