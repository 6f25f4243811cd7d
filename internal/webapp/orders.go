package webapp

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"orderdesk/internal/cache"
	"orderdesk/internal/domain"
	"orderdesk/internal/workflow"
)

type ordersData struct {
	basePage
	Orders    *domain.OrderPage
	Page      int
	Limit     int
	Search    string
	OrderType string
}

func (h *Handler) ordersPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 10
	}
	filter := domain.OrderFilter{
		Search:    q.Get("search"),
		OrderType: domain.OrderType(q.Get("orderType")),
		PaidOnly:  true,
	}

	var result domain.OrderPage
	key := cache.Key{
		Resource: cache.ResourceOrders,
		Params:   fmt.Sprintf("p=%d&l=%d&s=%s&t=%s", page, limit, filter.Search, filter.OrderType),
	}
	err := h.cachedJSON(r.Context(), key, &result, func(ctx context.Context) (any, error) {
		return h.API.GetAllOrders(ctx, page, limit, filter)
	})
	if err != nil {
		h.fail(w, r, "orders", err)
		return
	}

	data := ordersData{
		basePage:  h.base("Orders"),
		Orders:    &result,
		Page:      page,
		Limit:     limit,
		Search:    filter.Search,
		OrderType: string(filter.OrderType),
	}
	h.render(w, "orders", "orders.tmpl", data)
}

type orderEditData struct {
	basePage
	Order    *workflow.OrderView
	Couriers []domain.DeliveryBoy
	Statuses []domain.Status
}

// loadEditData assembles the edit screen: the flattened order plus, for
// delivery orders, the assignable couriers.
func (h *Handler) loadEditData(ctx context.Context, id string) (*orderEditData, error) {
	view, err := h.Orders.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	data := &orderEditData{
		basePage: h.base("Edit Order"),
		Order:    view,
		Statuses: append([]domain.Status{view.Status}, view.Status.NextStates()...),
	}
	if view.Type == domain.OrderTypeDelivery {
		couriers, err := h.Orders.Couriers(ctx)
		if err != nil {
			return nil, err
		}
		data.Couriers = couriers
	}
	return data, nil
}

func (h *Handler) orderEditPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	data, err := h.loadEditData(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, "order-edit", err)
		return
	}
	h.render(w, "order-edit", "order_edit.tmpl", data)
}

// orderUpdate persists the edit form. A failed save re-renders the form with
// the server's message so the operator can retry without losing input.
func (h *Handler) orderUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id := mux.Vars(r)["id"]

	data, err := h.loadEditData(r.Context(), id)
	if err != nil {
		h.fail(w, r, "order-edit", err)
		return
	}

	change := workflow.Change{
		Status:         domain.ParseStatus(r.FormValue("status")),
		TableOrAddress: r.FormValue("tableOrAddress"),
		CourierID:      r.FormValue("deliveryBoyId"),
	}
	if err := h.Orders.Save(r.Context(), data.Order, change, user.Email); err != nil {
		data.Error = err.Error()
		w.WriteHeader(http.StatusUnprocessableEntity)
		h.render(w, "order-edit", "order_edit.tmpl", data)
		return
	}
	// Workflow already invalidated and audited; the redirect refetches the
	// list, which now misses the cache.
	http.Redirect(w, r, "/orders", http.StatusSeeOther)
}

func (h *Handler) orderDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]
	if err := h.Orders.Delete(r.Context(), id, user.Email); err != nil {
		h.fail(w, r, "order-delete", err)
		return
	}
	http.Redirect(w, r, "/orders", http.StatusSeeOther)
}

func (h *Handler) orderInvoice(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	view, err := h.Orders.Load(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, "order-invoice", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := workflow.RenderInvoice(w, view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) orderInvoiceDownload(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	view, err := h.Orders.Load(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, "order-invoice", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=order-%s.html", view.Code))
	if err := workflow.RenderInvoice(w, view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) orderShareQR(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	view, err := h.Orders.Load(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, "order-share", err)
		return
	}
	png, err := workflow.ShareQR(view)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}
