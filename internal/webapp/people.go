package webapp

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"orderdesk/internal/cache"
	"orderdesk/internal/domain"
	"orderdesk/internal/upstream"
)

type usersData struct {
	basePage
	Users *domain.UserPage
	Page  int
	Limit int
	Name  string
	Email string
}

func (h *Handler) usersPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit := 10
	filter := domain.UserFilter{Name: q.Get("name"), Email: q.Get("email"), Phone: q.Get("phone")}

	var users domain.UserPage
	key := cache.Key{
		Resource: cache.ResourceUsers,
		Params:   fmt.Sprintf("p=%d&l=%d&n=%s&e=%s&ph=%s", page, limit, filter.Name, filter.Email, filter.Phone),
	}
	err := h.cachedJSON(r.Context(), key, &users, func(ctx context.Context) (any, error) {
		return h.API.GetAllUsers(ctx, page, limit, filter)
	})
	if err != nil {
		h.fail(w, r, "users", err)
		return
	}

	data := usersData{basePage: h.base("Users"), Users: &users, Page: page, Limit: limit, Name: filter.Name, Email: filter.Email}
	h.render(w, "users", "users.tmpl", data)
}

func (h *Handler) userRegister(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	reg := domain.Registration{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Phone:    r.FormValue("phone"),
		Password: r.FormValue("password"),
	}
	created, err := h.API.RegisterUser(r.Context(), reg)
	if err != nil {
		h.fail(w, r, "users", err)
		return
	}
	h.finishMutation(w, r, "user.create", created.ID, "/users")
}

func (h *Handler) userUpdate(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id := mux.Vars(r)["id"]
	update := upstream.UserUpdate{
		Name:  r.FormValue("name"),
		Email: r.FormValue("email"),
		Role:  domain.Role(r.FormValue("role")),
	}
	if _, err := h.API.UpdateUser(r.Context(), id, update); err != nil {
		h.fail(w, r, "users", err)
		return
	}
	h.finishMutation(w, r, "user.update", id, "/users")
}

func (h *Handler) userDelete(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	id := mux.Vars(r)["id"]
	if err := h.API.DeleteUser(r.Context(), id); err != nil {
		h.fail(w, r, "users", err)
		return
	}
	h.finishMutation(w, r, "user.delete", id, "/users")
}

func (h *Handler) userResetPassword(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id := mux.Vars(r)["id"]
	reset := domain.PasswordReset{
		NewPassword:     r.FormValue("newPassword"),
		ConfirmPassword: r.FormValue("confirmPassword"),
	}
	if reset.NewPassword != reset.ConfirmPassword {
		h.fail(w, r, "users", fmt.Errorf("passwords do not match"))
		return
	}
	// Resets are keyed by a server-minted token, not the user id, so the
	// handler requests one for the user's email first.
	user, err := h.API.GetUserByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, "users", err)
		return
	}
	token, err := h.API.ForgotPassword(r.Context(), user.Email)
	if err != nil {
		h.fail(w, r, "users", err)
		return
	}
	if err := h.API.ResetPassword(r.Context(), token, reset); err != nil {
		h.fail(w, r, "users", err)
		return
	}
	h.finishMutation(w, r, "user.update", id, "/users")
}

type couriersData struct {
	basePage
	Couriers *domain.DeliveryBoyPage
	Page     int
	Status   string
}

func (h *Handler) couriersPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	status := domain.CourierStatus(q.Get("status"))

	var couriers domain.DeliveryBoyPage
	key := cache.Key{Resource: cache.ResourceCouriers, Params: fmt.Sprintf("p=%d&s=%s", page, status)}
	err := h.cachedJSON(r.Context(), key, &couriers, func(ctx context.Context) (any, error) {
		return h.API.GetAllDeliveryBoys(ctx, page, 10, status)
	})
	if err != nil {
		h.fail(w, r, "couriers", err)
		return
	}

	data := couriersData{basePage: h.base("Delivery Boys"), Couriers: &couriers, Page: page, Status: string(status)}
	h.render(w, "couriers", "couriers.tmpl", data)
}

func courierInputFromForm(r *http.Request) domain.DeliveryBoyInput {
	return domain.DeliveryBoyInput{
		Name:   r.FormValue("name"),
		Phone:  r.FormValue("phone"),
		Email:  r.FormValue("email"),
		Status: domain.CourierStatus(r.FormValue("status")),
	}
}

func (h *Handler) courierCreate(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := h.API.CreateDeliveryBoy(r.Context(), courierInputFromForm(r))
	if err != nil {
		h.fail(w, r, "couriers", err)
		return
	}
	h.finishMutation(w, r, "courier.create", created.ID, "/couriers")
}

func (h *Handler) courierUpdate(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id := mux.Vars(r)["id"]
	if _, err := h.API.UpdateDeliveryBoy(r.Context(), id, courierInputFromForm(r)); err != nil {
		h.fail(w, r, "couriers", err)
		return
	}
	h.finishMutation(w, r, "courier.update", id, "/couriers")
}

func (h *Handler) courierDelete(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	id := mux.Vars(r)["id"]
	if err := h.API.DeleteDeliveryBoy(r.Context(), id); err != nil {
		h.fail(w, r, "couriers", err)
		return
	}
	h.finishMutation(w, r, "courier.delete", id, "/couriers")
}
