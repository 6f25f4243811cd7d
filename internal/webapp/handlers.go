package webapp

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"orderdesk/internal/audit"
	"orderdesk/internal/auth"
	"orderdesk/internal/cache"
	"orderdesk/internal/domain"
	"orderdesk/internal/metrics"
	"orderdesk/internal/upstream"
	"orderdesk/internal/workflow"
)

type Handler struct {
	API      *upstream.Client
	Auth     *auth.Service
	Orders   *workflow.Service
	Cache    cache.Cache
	Audit    audit.Publisher
	CacheTTL time.Duration
}

func NewHandler(api *upstream.Client, authSvc *auth.Service, orders *workflow.Service, queryCache cache.Cache, auditor audit.Publisher, cacheTTL time.Duration) *Handler {
	return &Handler{
		API:      api,
		Auth:     authSvc,
		Orders:   orders,
		Cache:    queryCache,
		Audit:    auditor,
		CacheTTL: cacheTTL,
	}
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "orderdesk",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// basePage carries what every template needs; page structs embed it.
type basePage struct {
	Title   string
	User    *domain.Profile
	IsAdmin bool
	Error   string
}

func (h *Handler) base(title string) basePage {
	page := basePage{Title: title}
	if user, err := h.Auth.CurrentUser(); err == nil {
		page.User = user
		page.IsAdmin = user.Role == domain.RoleAdmin
	}
	return page
}

func (h *Handler) render(w http.ResponseWriter, route, name string, data any) {
	start := time.Now()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("[webapp] render %s: %v", name, err)
	}
	metrics.PageRequests.WithLabelValues(route, "200").Inc()
	metrics.PageDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
}

// fail routes an upstream error: auth failures force sign-in, everything else
// renders inline as a static message.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, route string, err error) {
	if errors.Is(err, upstream.ErrSessionExpired) || errors.Is(err, upstream.ErrAuthRequired) {
		metrics.PageRequests.WithLabelValues(route, "401").Inc()
		http.Redirect(w, r, "/sign-in", http.StatusSeeOther)
		return
	}
	metrics.PageRequests.WithLabelValues(route, "500").Inc()
	page := struct {
		basePage
	}{h.base("Error")}
	page.Error = err.Error()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusBadGateway)
	if terr := templates.ExecuteTemplate(w, "error.tmpl", page); terr != nil {
		log.Printf("[webapp] render error page: %v", terr)
	}
}

// requireUser redirects to sign-in when no session exists.
func (h *Handler) requireUser(w http.ResponseWriter, r *http.Request) (*domain.Profile, bool) {
	user, err := h.Auth.CurrentUser()
	if err != nil {
		http.Redirect(w, r, "/sign-in", http.StatusSeeOther)
		return nil, false
	}
	return user, true
}

// cachedJSON serves a list/dashboard query through the cache. fetch runs only
// on a miss; its result is stored until the TTL lapses or a mutation
// invalidates the resource.
func (h *Handler) cachedJSON(ctx context.Context, key cache.Key, out any, fetch func(context.Context) (any, error)) error {
	if h.Cache != nil {
		if raw, ok := h.Cache.Get(ctx, key); ok {
			return json.Unmarshal(raw, out)
		}
	}
	value, err := fetch(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if h.Cache != nil {
		if err := h.Cache.Set(ctx, key, raw, h.CacheTTL); err != nil {
			log.Printf("[webapp] cache set %s: %v", key.Resource, err)
		}
	}
	return json.Unmarshal(raw, out)
}

// finishMutation runs the invalidation contract, records the audit event, and
// sends the operator back to the list view.
func (h *Handler) finishMutation(w http.ResponseWriter, r *http.Request, mutation, resourceID, redirect string) {
	ctx := r.Context()
	if h.Cache != nil {
		if err := h.Cache.Invalidate(ctx, cache.StaleAfter(mutation)...); err != nil {
			log.Printf("[webapp] invalidate after %s: %v", mutation, err)
		}
	}
	if h.Audit != nil {
		actor := ""
		if user, err := h.Auth.CurrentUser(); err == nil {
			actor = user.Email
		}
		event := audit.Event{Type: mutation, Actor: actor, Resource: mutation[:indexDot(mutation)], ResourceID: resourceID}
		if err := h.Audit.Publish(ctx, event); err != nil {
			log.Printf("[webapp] audit %s: %v", mutation, err)
		}
	}
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

func indexDot(s string) int {
	for i := range s {
		if s[i] == '.' {
			return i
		}
	}
	return len(s)
}

func (h *Handler) signInPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "signin", "signin.tmpl", struct{ basePage }{h.base("Sign in")})
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	_, err := h.Auth.Login(r.Context(), r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		page := struct{ basePage }{h.base("Sign in")}
		page.Error = err.Error()
		w.WriteHeader(http.StatusUnauthorized)
		h.render(w, "signin", "signin.tmpl", page)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.Logout(r.Context()); err != nil {
		log.Printf("[webapp] logout: %v", err)
	}
	http.Redirect(w, r, "/sign-in", http.StatusSeeOther)
}

type homeData struct {
	basePage
	Range     domain.Range
	Dashboard *domain.RevenueDashboard
}

func (h *Handler) homePage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	rng := domain.Range(r.URL.Query().Get("range"))
	if rng == "" {
		rng = domain.RangeWeekly
	}

	var dash domain.RevenueDashboard
	key := cache.Key{Resource: cache.ResourceDashboard, Params: "revenue:" + string(rng)}
	err := h.cachedJSON(r.Context(), key, &dash, func(ctx context.Context) (any, error) {
		return h.API.GetRevenueDashboard(ctx, rng)
	})
	if err != nil {
		h.fail(w, r, "home", err)
		return
	}

	data := homeData{basePage: h.base("Dashboard"), Range: rng, Dashboard: &dash}
	h.render(w, "home", "home.tmpl", data)
}
