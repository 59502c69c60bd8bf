// Package web is the view layer of the console: server-rendered pages for
// login, registration, products and orders. Handlers translate form posts
// into shop client calls, surface failures as flash notifications, and
// after every successful mutation redirect back to the list so the next
// render refetches the full collection from the server. The server stays
// the sole source of truth; nothing is patched locally.
package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/hegerb/rohlik-admin/internal/domain"
	"github.com/hegerb/rohlik-admin/internal/session"
	"github.com/hegerb/rohlik-admin/internal/shop"
	"github.com/hegerb/rohlik-admin/internal/telemetry"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"money": func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	},
	"czDate": func(t interface{ Format(string) string }) string {
		return t.Format("02.01.2006")
	},
	"statusText": func(s domain.OrderStatus) string {
		switch s {
		case domain.OrderStatusPending:
			return "Čeká"
		case domain.OrderStatusCompleted:
			return "Dokončeno"
		case domain.OrderStatusCancelled:
			return "Zrušeno"
		}
		return string(s)
	},
	"statusClass": func(s domain.OrderStatus) string {
		switch s {
		case domain.OrderStatusPending:
			return "badge-pending"
		case domain.OrderStatusCompleted:
			return "badge-completed"
		case domain.OrderStatusCancelled:
			return "badge-cancelled"
		}
		return "badge-other"
	},
}

type Handler struct {
	shop      *shop.Client
	sessions  *session.Store
	logger    *slog.Logger
	templates map[string]*template.Template
}

func NewHandler(client *shop.Client, sessions *session.Store, logger *slog.Logger) (*Handler, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Handler{
		shop:      client,
		sessions:  sessions,
		logger:    logger,
		templates: templates,
	}, nil
}

// parseTemplates builds one template set per page, each sharing the layout.
func parseTemplates() (map[string]*template.Template, error) {
	pages := []string{"login", "register", "products", "product_form", "orders"}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(templateFS,
			"templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", page, err)
		}
		templates[page] = t
	}
	return templates, nil
}

// Routes wires every console route. The metrics handler comes from the
// meter provider in main; healthz exists for probes only.
func (h *Handler) Routes(metrics http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /login", telemetry.WithHTTPRoute(h.handleLoginPage))
	mux.HandleFunc("POST /login", telemetry.WithHTTPRoute(h.handleLogin))
	mux.HandleFunc("GET /register", telemetry.WithHTTPRoute(h.handleRegisterPage))
	mux.HandleFunc("POST /register", telemetry.WithHTTPRoute(h.handleRegister))
	mux.HandleFunc("POST /logout", telemetry.WithHTTPRoute(h.handleLogout))

	guarded := func(fn http.HandlerFunc) http.Handler {
		return h.requireAuth(telemetry.WithHTTPRoute(fn))
	}
	mux.Handle("GET /{$}", guarded(h.handleHome))
	mux.Handle("GET /products", guarded(h.handleProducts))
	mux.Handle("GET /products/new", guarded(h.handleProductNew))
	mux.Handle("POST /products", guarded(h.handleProductCreate))
	mux.Handle("GET /products/{id}/edit", guarded(h.handleProductEdit))
	mux.Handle("POST /products/{id}", guarded(h.handleProductUpdate))
	mux.Handle("POST /products/{id}/delete", guarded(h.handleProductDelete))
	mux.Handle("GET /orders", guarded(h.handleOrders))
	mux.Handle("POST /orders/{id}/status", guarded(h.handleOrderStatus))

	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return mux
}

func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/orders", http.StatusFound)
}

func (h *Handler) render(w http.ResponseWriter, name string, status int, data any) {
	t, ok := h.templates[name]
	if !ok {
		h.logger.Error("unknown template", "name", name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "layout.html", data); err != nil {
		h.logger.Error("failed to render template", "name", name, "error", err)
	}
}

// handleShopError maps a failed shop call to user-visible feedback. A 401
// clears the session and forces navigation to the login screen; everything
// else flashes the taxonomy message (server-supplied for 500s when
// available) or the caller's action-specific fallback, then redirects back.
func (h *Handler) handleShopError(w http.ResponseWriter, r *http.Request, err error, fallback, backTo string) {
	if shop.IsUnauthorized(err) {
		h.forceLogin(w, r)
		return
	}
	h.setFlash(w, Flash{Level: "error", Message: errorMessage(err, fallback)})
	http.Redirect(w, r, backTo, http.StatusSeeOther)
}

// errorMessage picks the most specific message for a shop failure.
func errorMessage(err error, fallback string) string {
	kind, ok := shop.KindOf(err)
	if !ok {
		return fallback
	}
	switch kind {
	case shop.KindForbidden:
		return "Nemáte oprávnění k této akci."
	case shop.KindNotFound:
		return "Požadovaný zdroj nebyl nalezen."
	case shop.KindServerFault:
		var apiErr *shop.Error
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return apiErr.Message
		}
		return "Došlo k chybě serveru. Zkuste to prosím později."
	case shop.KindNetwork:
		return "Server není dostupný. Zkontrolujte připojení k internetu."
	default:
		return fallback
	}
}

func (h *Handler) forceLogin(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
