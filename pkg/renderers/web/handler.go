package web

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-entryform/pkg/controller"
	"github.com/goliatone/go-entryform/pkg/form"
	"github.com/goliatone/go-entryform/pkg/render"
	"github.com/goliatone/go-entryform/pkg/render/template/gotemplate"
)

//go:embed templates/*.tpl
var templateFS embed.FS

// Templates exposes the embedded page templates.
func Templates() fs.FS {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

var errStoreClosed = errors.New("web: session store closed")

// Handler serves the form for many concurrent sessions.
type Handler struct {
	cfg      config
	sessions *sessionStore
	engine   *gotemplate.Engine
	theme    pageTheme
	mux      *http.ServeMux
}

// NewHandler builds the form handler. Every new browser session gets its own
// controller from factory.
func NewHandler(factory render.Factory, options ...Option) (*Handler, error) {
	if factory == nil {
		return nil, errors.New("web: controller factory is required")
	}
	cfg := newConfig(options...)

	selection, err := cfg.selector.Select(cfg.themeName, cfg.themeVariant)
	if err != nil {
		return nil, fmt.Errorf("web: select theme: %w", err)
	}

	engine, err := gotemplate.New(
		gotemplate.WithFS(Templates()),
		gotemplate.WithGlobalData(map[string]any{
			"title":      cfg.title,
			"base":       cfg.basePath,
			"refresh_ms": cfg.refreshDelay.Milliseconds(),
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("web: template engine: %w", err)
	}

	h := &Handler{
		cfg:      cfg,
		sessions: newSessionStore(factory, cfg.sessionTTL, cfg.now, cfg.logger),
		engine:   engine,
		theme:    resolveTheme(selection),
		mux:      http.NewServeMux(),
	}

	base := cfg.basePath
	h.mux.HandleFunc("GET "+base+"/{$}", h.page)
	h.mux.HandleFunc("GET "+base+"/state", h.withSession(h.state))
	h.mux.HandleFunc("POST "+base+"/name", h.withSession(h.name))
	h.mux.HandleFunc("POST "+base+"/country", h.withSession(h.country))
	h.mux.HandleFunc("POST "+base+"/add", h.withSession(h.add))
	h.mux.HandleFunc("POST "+base+"/clear", h.withSession(h.clear))
	return h, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// Sessions reports the number of live sessions.
func (h *Handler) Sessions() int {
	return h.sessions.Len()
}

// Cleanup drops idle sessions and reports how many were removed.
func (h *Handler) Cleanup() int {
	return h.sessions.Cleanup()
}

// Close releases every session controller.
func (h *Handler) Close() {
	h.sessions.Close()
}

type optionView struct {
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

type stateView struct {
	Name       string       `json:"name"`
	Country    string       `json:"country"`
	Error      string       `json:"error"`
	ErrorKind  form.Kind    `json:"error_kind,omitempty"`
	Options    []optionView `json:"options"`
	Table      form.Table   `json:"table"`
	CanAdd     bool         `json:"can_add"`
	Validating bool         `json:"validating"`
	Version    uint64       `json:"version"`
}

type envelope struct {
	Data  stateView `json:"data"`
	Added *bool     `json:"added,omitempty"`
}

func newStateView(s form.State) stateView {
	view := stateView{
		Name:       s.Name,
		Country:    s.Country,
		Error:      s.Error,
		ErrorKind:  s.ErrorKind,
		Options:    make([]optionView, 0, len(s.Options)),
		Table:      s.Table,
		CanAdd:     s.CanAdd(),
		Validating: s.Validating,
		Version:    s.Version,
	}
	if view.Table == nil {
		view.Table = form.Table{}
	}
	for _, option := range s.Options {
		view.Options = append(view.Options, optionView{Value: option, Selected: option == s.Country})
	}
	return view
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, ctrl *controller.Controller)

func (h *Handler) withSession(next sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctrl, ok := h.session(w, r)
		if !ok {
			return
		}
		next(w, r, ctrl)
	}
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*controller.Controller, bool) {
	var current string
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		current = cookie.Value
	}
	id, ctrl, err := h.sessions.Lookup(r.Context(), current)
	if err != nil {
		h.cfg.logger.Error("open session", zap.Error(err))
		http.Error(w, "session unavailable", http.StatusServiceUnavailable)
		return nil, false
	}
	if id != current {
		path := h.cfg.basePath
		if path == "" {
			path = "/"
		}
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    id,
			Path:     path,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return ctrl, true
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.session(w, r)
	if !ok {
		return
	}

	out, err := h.engine.RenderTemplate("page", map[string]any{
		"page":  newStateView(ctrl.State()),
		"theme": h.theme,
	})
	if err != nil {
		h.cfg.logger.Error("render page", zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write([]byte(out))
}

func (h *Handler) state(w http.ResponseWriter, r *http.Request, ctrl *controller.Controller) {
	h.writeJSON(w, http.StatusOK, envelope{Data: newStateView(ctrl.State())})
}

func (h *Handler) name(w http.ResponseWriter, r *http.Request, ctrl *controller.Controller) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	ctrl.OnNameChange(sanitizeName(r.PostForm.Get("name")))
	h.respond(w, r, ctrl, nil)
}

func (h *Handler) country(w http.ResponseWriter, r *http.Request, ctrl *controller.Controller) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	value := sanitizeText(r.PostForm.Get("country"))
	if options := ctrl.State().Options; len(options) > 0 && !contains(options, value) {
		http.Error(w, "unknown country", http.StatusUnprocessableEntity)
		return
	}
	ctrl.OnCountryChange(value)
	h.respond(w, r, ctrl, nil)
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request, ctrl *controller.Controller) {
	added := ctrl.OnAdd()
	h.respond(w, r, ctrl, &added)
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request, ctrl *controller.Controller) {
	ctrl.OnClear()
	h.respond(w, r, ctrl, nil)
}

// respond answers fetch calls with the new state and plain form posts with a
// redirect back to the page.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, ctrl *controller.Controller, added *bool) {
	if wantsJSON(r) {
		h.writeJSON(w, http.StatusOK, envelope{Data: newStateView(ctrl.State()), Added: added})
		return
	}
	http.Redirect(w, r, h.cfg.basePath+"/", http.StatusSeeOther)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.cfg.logger.Warn("encode response", zap.Error(err))
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func contains(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}
