package webapp

import (
	"context"
	"net/http"

	"orderdesk/internal/cache"
	"orderdesk/internal/domain"
	"orderdesk/internal/reports"
)

type reportsData struct {
	basePage
	Range     domain.Range
	Dashboard *domain.OrderDashboard
}

func (h *Handler) reportRange(r *http.Request) domain.Range {
	rng := domain.Range(r.URL.Query().Get("range"))
	if rng == "" {
		rng = domain.RangeToday
	}
	return rng
}

func (h *Handler) loadOrderDashboard(r *http.Request, rng domain.Range) (*domain.OrderDashboard, error) {
	var dash domain.OrderDashboard
	key := cache.Key{Resource: cache.ResourceDashboard, Params: "orders:" + string(rng)}
	err := h.cachedJSON(r.Context(), key, &dash, func(ctx context.Context) (any, error) {
		return h.API.GetOrderDashboard(ctx, rng)
	})
	if err != nil {
		return nil, err
	}
	return &dash, nil
}

func (h *Handler) reportsPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	rng := h.reportRange(r)
	dash, err := h.loadOrderDashboard(r, rng)
	if err != nil {
		h.fail(w, r, "reports", err)
		return
	}
	h.render(w, "reports", "reports.tmpl", reportsData{basePage: h.base("Reports"), Range: rng, Dashboard: dash})
}

func (h *Handler) reportOrdersCSV(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	rng := h.reportRange(r)
	dash, err := h.loadOrderDashboard(r, rng)
	if err != nil {
		h.fail(w, r, "reports", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=orders-"+string(rng)+".csv")
	if err := reports.WriteOrdersCSV(w, dash); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) reportSummaryCSV(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	rng := h.reportRange(r)
	dash, err := h.loadOrderDashboard(r, rng)
	if err != nil {
		h.fail(w, r, "reports", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=summary-"+string(rng)+".csv")
	if err := reports.WriteSummaryCSV(w, rng, dash); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
