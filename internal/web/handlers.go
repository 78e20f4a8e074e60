package web

import (
	"database/sql"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/ecagle/herald/internal/config"
	"github.com/ecagle/herald/internal/content"
	"github.com/ecagle/herald/internal/intro"
	"github.com/ecagle/herald/internal/ops"
)

// Handlers contains HTTP route handlers for the review dashboard.
type Handlers struct {
	db       *sql.DB
	cfg      *config.Config
	gen      *intro.Generator
	renderer *Renderer
}

// HandleList handles GET /editions — paginated edition summaries.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := ops.List(h.db, ops.ListInput{
		Limit:  parseIntParam(r, "limit", ops.DefaultListLimit),
		Offset: parseIntParam(r, "offset", 0),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "editions", ListPageData{
		PageData: PageData{
			Title:   "Editions",
			Version: h.renderer.version,
			Nav:     "editions",
		},
		Items:      result.Items,
		Pagination: result.Pagination,
	})
}

// HandleGenerate handles POST /editions/generate — run the pipeline for
// the requested edition type and jump to the new draft.
func (h *Handlers) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	out, err := ops.Generate(r.Context(), h.db, h.cfg, h.gen, ops.GenerateInput{
		EditionType: content.EditionType(r.FormValue("edition_type")),
		EditorNote:  r.FormValue("editor_note"),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/editions/"+out.EditionID, http.StatusSeeOther)
}

// HandleDetail handles GET /editions/{id} — metadata plus a rendered
// preview of the stored email HTML.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	edition, err := ops.GetEdition(h.db, r.PathValue("id"))
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "edition", DetailPageData{
		PageData: PageData{
			Title:   edition.Title,
			Version: h.renderer.version,
			Nav:     "editions",
		},
		Edition: edition,
		// The preview is herald's own deterministic output, never user
		// input, so it is safe to inline.
		Preview: template.HTML(edition.HTMLContent),
	})
}

// HandleApprove handles POST /editions/{id}/approve.
func (h *Handlers) HandleApprove(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	_, err := ops.Approve(h.db, ops.ApproveInput{
		ID:     id,
		ListID: r.FormValue("list_id"),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/editions/"+id, http.StatusSeeOther)
}

// HandleExport handles GET /editions/{id}/export?format= — download the
// edition in the requested format.
func (h *Handlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	out, err := ops.Export(h.db, ops.ExportInput{
		ID:     id,
		Format: r.URL.Query().Get("format"),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	ext := out.Format
	if ext == ops.FormatText {
		ext = "txt"
	}
	w.Header().Set("Content-Type", out.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+"."+ext))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(out.Content))
}

// parseIntParam parses an integer query parameter with a default.
func parseIntParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
