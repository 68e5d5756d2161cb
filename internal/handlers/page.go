package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"skypad/internal/contextutil"
	"skypad/internal/notes"
	"skypad/internal/storage"
)

// PageHandler serves the single-page notes widget.
type PageHandler struct {
	controller *notes.Controller
	parser     goldmark.Markdown
	template   *template.Template
}

// pageData holds template data for the widget page.
type pageData struct {
	Keyword   string
	Summaries []notes.Summary
	Editor    notes.EditorState
	Rendered  template.HTML // Selected note body rendered from markdown
	Failure   *notes.Failure
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>SkyPad</title>
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif; margin: 0; display: flex; min-height: 100vh; }
    aside { width: 320px; border-right: 1px solid #ddd; padding: 1rem; }
    main { flex: 1; padding: 1rem 2rem; }
    article a { display: block; padding: .5rem; color: inherit; text-decoration: none; border-radius: 6px; }
    article.selected a { background: #e8f0fe; }
    article h1 { font-size: 1rem; margin: 0; }
    article p { margin: .25rem 0 0; color: #555; font-size: .9rem; }
    .error { background: #fdecea; color: #611a15; padding: .75rem; border-radius: 6px; }
    input[type=text], textarea { width: 100%; box-sizing: border-box; }
    textarea { min-height: 16rem; }
  </style>
</head>
<body>
  <aside>
    <form method="get" action="/">
      <input type="text" name="q" value="{{.Keyword}}" placeholder="Search...">
      <button type="submit">Search</button>
      {{if .Keyword}}<a href="/">clear "{{.Keyword}}"</a>{{end}}
    </form>
    <p><a href="/?new=1">+ New note</a></p>
    <section id="sbresults">
      {{range .Summaries}}
      <article{{if .Selected}} class="selected"{{end}}>
        <a id="{{.ID}}" href="/?id={{.ID}}"><h1>{{.Title}}</h1><p>{{.Excerpt}}</p></a>
      </article>
      {{end}}
    </section>
  </aside>
  <main>
    {{with .Failure}}<p class="error">Oops.  Error was {{.Message}} (Code {{.Code}})</p>{{end}}
    {{if .Editor.ShowView}}
    <section id="viewcarea">
      <h1>{{.Editor.Title}}</h1>
      <div id="mcontent">{{.Rendered}}</div>
    </section>
    {{end}}
    {{if .Editor.ShowEditButton}}<a id="edit" href="/?id={{.Editor.ID}}&edit=1">Edit</a>{{end}}
    {{if .Editor.ShowTrash}}
    <form method="post" action="/notes/{{.Editor.ID}}/delete"><button id="trash" type="submit">Trash</button></form>
    {{end}}
    {{if .Editor.ShowEdit}}
    <form id="editcarea" method="post" action="/notes">
      <input type="hidden" name="id" value="{{.Editor.ID}}">
      <p><input id="ctitle" type="text" name="title" value="{{.Editor.Title}}" placeholder="Title"></p>
      <p><textarea id="ccontent" name="body">{{.Editor.Body}}</textarea></p>
      <button id="save" type="submit">Save</button>
      {{if .Editor.ID}}<a id="canceledit" href="/?id={{.Editor.ID}}">Cancel</a>{{end}}
    </form>
    {{end}}
  </main>
</body>
</html>`))

// NewPageHandler creates a new PageHandler.
func NewPageHandler(controller *notes.Controller) *PageHandler {
	return &PageHandler{
		controller: controller,
		parser:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		template:   pageTemplate,
	}
}

// Show handles GET /. Query parameters: q (search keyword), id (selected note),
// edit (open the selected note for editing), new (open an empty note).
func (h *PageHandler) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	view := &notes.Snapshot{}
	status := http.StatusOK
	session := notes.Session{}

	if raw := query.Get("id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			view.OnError("invalid note id", 0)
			status = http.StatusBadRequest
		} else if session, err = h.controller.SelectByID(ctx, view, session, id); err != nil {
			status = statusFor(err)
		} else if query.Get("edit") != "" {
			session = h.controller.ToggleEdit(view, session)
		}
	}
	if query.Get("new") != "" {
		session = h.controller.New(view)
	}

	session, err := h.controller.Search(ctx, view, session, query.Get("q"))
	if err != nil {
		status = statusFor(err)
	}
	if view.Editor == nil {
		h.controller.New(view)
	}

	h.render(ctx, w, status, session.Filter, view)
}

// Save handles POST /notes with form fields id, title and body.
func (h *PageHandler) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	title := r.PostForm.Get("title")
	body := r.PostForm.Get("body")

	view := &notes.Snapshot{}
	session := h.controller.New(view)
	if raw := r.PostForm.Get("id"); raw != "" && raw != "0" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid note id", http.StatusBadRequest)
			return
		}
		if session, err = h.controller.SelectByID(ctx, view, session, id); err != nil {
			h.render(ctx, w, statusFor(err), "", view)
			return
		}
	}

	session, err := h.controller.Save(ctx, view, session, title, body)
	if err != nil {
		// Keep what the user typed so the form can be fixed and resubmitted.
		session.Editing = true
		state := notes.Editor(session)
		state.Title, state.Body = title, body
		failure := view.Failure
		view.ResetListing()
		if _, listErr := h.controller.Search(ctx, view, notes.Session{Note: session.Note}, ""); listErr != nil {
			contextutil.LoggerFromContext(ctx).WarnContext(ctx, "relisting after failed save", "error", listErr)
			view.Failure = failure
		}
		view.PopulateEditor(state)
		h.render(ctx, w, statusFor(err), "", view)
		return
	}

	http.Redirect(w, r, "/?id="+url.QueryEscape(strconv.FormatInt(session.Note.ID, 10)), http.StatusSeeOther)
}

// Delete handles POST /notes/{id}/delete.
func (h *PageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return
	}

	view := &notes.Snapshot{}
	if _, err := h.controller.Delete(ctx, view, notes.Session{Note: storage.NoteRecord{ID: id}}); err != nil {
		h.render(ctx, w, statusFor(err), "", view)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *PageHandler) render(ctx context.Context, w http.ResponseWriter, status int, keyword string, view *notes.Snapshot) {
	logger := contextutil.LoggerFromContext(ctx)

	data := pageData{
		Keyword:   keyword,
		Summaries: view.Summaries,
		Failure:   view.Failure,
	}
	if view.Editor != nil {
		data.Editor = *view.Editor
	}
	if data.Editor.ShowView {
		rendered, err := h.renderMarkdown([]byte(data.Editor.Body))
		if err != nil {
			logger.ErrorContext(ctx, "failed to render markdown", "id", data.Editor.ID, "error", err)
			rendered = template.HTMLEscapeString(data.Editor.Body)
		}
		data.Rendered = template.HTML(rendered)
	}

	var buf bytes.Buffer
	if err := h.template.Execute(&buf, data); err != nil {
		logger.ErrorContext(ctx, "failed to execute page template", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *PageHandler) renderMarkdown(content []byte) (string, error) {
	var buf bytes.Buffer
	if err := h.parser.Convert(content, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, notes.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
