// Package handler contains the chi HTTP handlers of the roster front end.
// Each browser gets a page session; handlers translate form posts into
// coordinator calls and render the session's view.
package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/Shivanand-hulikatti/activity-roster/internal/service"
	"github.com/Shivanand-hulikatti/activity-roster/internal/view"
)

// SessionCookie names the cookie carrying the page session id.
const SessionCookie = "roster_session"

// ShellHandler serves the roster page and its form actions.
type ShellHandler struct {
	sessions *Sessions
	origins  []string
	logger   *slog.Logger
}

// NewShellHandler constructs a ShellHandler. origins limits websocket
// upgrades; empty allows same-origin only.
func NewShellHandler(sessions *Sessions, origins []string, logger *slog.Logger) *ShellHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ShellHandler{sessions: sessions, origins: origins, logger: logger}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (h *ShellHandler) render(w http.ResponseWriter, status int, tmpl *template.Template, data any) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		h.logger.Error("render page", "template", tmpl.Name(), "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// lookup returns the caller's session, if it has a live one.
func (h *ShellHandler) lookup(r *http.Request) (*Session, bool) {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil, false
	}
	return h.sessions.Get(c.Value)
}

// session returns the caller's session, starting one (and its initial
// load) when there is none.
func (h *ShellHandler) session(w http.ResponseWriter, r *http.Request) *Session {
	if sess, ok := h.lookup(r); ok {
		return sess
	}
	sess := h.sessions.Create(r.Context())
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	h.logger.Debug("session started", "session", sess.ID)
	return sess
}

func seeOther(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ─── Handlers ─────────────────────────────────────────────────────────────────

// Page handles GET /
// Renders the session's view. Pending alerts are shown once.
func (h *ShellHandler) Page(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	state := sess.State()
	form := sess.Roster.Form()

	h.render(w, http.StatusOK, pageTmpl, pageData{
		Activities: template.HTML(state.ActivitiesHTML()),
		Options:    template.HTML(state.OptionsHTML(form.Activity)),
		Banner:     template.HTML(state.BannerHTML()),
		Email:      form.Email,
		Alerts:     sess.prompt.takeAlerts(),
	})
}

// Refresh handles POST /refresh
// Re-runs the full fetch, e.g. after a load failure.
func (h *ShellHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	_ = sess.Roster.Load(r.Context())
	seeOther(w, r)
}

// Signup handles POST /signup
// Form fields: activity, email.
func (h *ShellHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form: "+err.Error())
		return
	}
	sess := h.session(w, r)

	res := sess.Roster.Signup(r.Context(), r.PostForm.Get("activity"), r.PostForm.Get("email"))
	if errors.Is(res.Err, service.ErrMissingField) {
		sess.State().Banner.Show(res.Message, view.KindError)
	}
	seeOther(w, r)
}

// ConfirmUnregister handles GET /unregister
// Asks the user to confirm removing email from activity.
func (h *ShellHandler) ConfirmUnregister(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	activity, email := q.Get("activity"), q.Get("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, service.ErrMissingKey.Error())
		return
	}
	h.render(w, http.StatusOK, confirmTmpl, confirmData{Activity: activity, Email: email})
}

// Unregister handles POST /unregister
// Form fields: activity, email, confirm (yes|no). The removal goes through
// the row's own handler when the row is still shown.
func (h *ShellHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form: "+err.Error())
		return
	}
	sess := h.session(w, r)
	activity, email := r.PostForm.Get("activity"), r.PostForm.Get("email")
	ctx := withConfirmation(r.Context(), r.PostForm.Get("confirm") == "yes")

	var err error
	if row, ok := sess.State().Row(activity, email); ok {
		err = row.Remove(ctx)
	} else {
		err = sess.Roster.Unregister(ctx, activity, email).Err
	}

	if errors.Is(err, service.ErrMissingKey) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	seeOther(w, r)
}

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
