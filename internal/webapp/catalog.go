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

type menuData struct {
	basePage
	Menu       *domain.MenuPage
	Categories []domain.Category
	Page       int
	Limit      int
	Search     string
	Category   string
}

func (h *Handler) menuPage(w http.ResponseWriter, r *http.Request) {
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
		limit = 12
	}
	filter := domain.MenuFilter{Category: q.Get("category"), Search: q.Get("search")}
	if raw := q.Get("isVeg"); raw != "" {
		isVeg := raw == "true"
		filter.IsVeg = &isVeg
	}
	if raw := q.Get("isAvailable"); raw != "" {
		avail := raw == "true"
		filter.IsAvailable = &avail
	}

	var menu domain.MenuPage
	key := cache.Key{
		Resource: cache.ResourceMenus,
		Params:   fmt.Sprintf("p=%d&l=%d&c=%s&s=%s&v=%s&a=%s", page, limit, filter.Category, filter.Search, q.Get("isVeg"), q.Get("isAvailable")),
	}
	err := h.cachedJSON(r.Context(), key, &menu, func(ctx context.Context) (any, error) {
		return h.API.FetchMenuItems(ctx, page, limit, filter)
	})
	if err != nil {
		h.fail(w, r, "menu", err)
		return
	}

	var cats domain.CategoryPage
	catKey := cache.Key{Resource: cache.ResourceCategories, Params: "p=1&l=100"}
	err = h.cachedJSON(r.Context(), catKey, &cats, func(ctx context.Context) (any, error) {
		return h.API.GetAllCategories(ctx, 1, 100)
	})
	if err != nil {
		h.fail(w, r, "menu", err)
		return
	}

	data := menuData{
		basePage:   h.base("Menu"),
		Menu:       &menu,
		Categories: cats.Categories,
		Page:       page,
		Limit:      limit,
		Search:     filter.Search,
		Category:   filter.Category,
	}
	h.render(w, "menu", "menu.tmpl", data)
}

func menuInputFromForm(r *http.Request) upstream.MenuItemInput {
	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	return upstream.MenuItemInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       price,
		Category:    r.FormValue("category"),
		IsVeg:       r.FormValue("isVeg") == "true",
		IsAvailable: r.FormValue("isAvailable") != "false",
	}
}

func (h *Handler) menuCreate(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.AddMenuItem(r.Context(), menuInputFromForm(r)); err != nil {
		h.fail(w, r, "menu", err)
		return
	}
	h.finishMutation(w, r, "menu.create", r.FormValue("name"), "/menu")
}

func (h *Handler) menuUpdate(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id := mux.Vars(r)["id"]
	if err := h.API.UpdateMenuItem(r.Context(), id, menuInputFromForm(r)); err != nil {
		h.fail(w, r, "menu", err)
		return
	}
	h.finishMutation(w, r, "menu.update", id, "/menu")
}

func (h *Handler) menuToggle(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	id := mux.Vars(r)["id"]
	if _, err := h.API.ToggleMenuItemAvailability(r.Context(), id); err != nil {
		h.fail(w, r, "menu", err)
		return
	}
	h.finishMutation(w, r, "menu.toggle", id, "/menu")
}

func (h *Handler) menuDelete(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	id := mux.Vars(r)["id"]
	if err := h.API.DeleteMenuItem(r.Context(), id); err != nil {
		h.fail(w, r, "menu", err)
		return
	}
	h.finishMutation(w, r, "menu.delete", id, "/menu")
}

type categoriesData struct {
	basePage
	Categories *domain.CategoryPage
	Page       int
	Limit      int
}

func (h *Handler) categoriesPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit := 10

	var cats domain.CategoryPage
	key := cache.Key{Resource: cache.ResourceCategories, Params: fmt.Sprintf("p=%d&l=%d", page, limit)}
	err := h.cachedJSON(r.Context(), key, &cats, func(ctx context.Context) (any, error) {
		return h.API.GetAllCategories(ctx, page, limit)
	})
	if err != nil {
		h.fail(w, r, "categories", err)
		return
	}

	data := categoriesData{basePage: h.base("Categories"), Categories: &cats, Page: page, Limit: limit}
	h.render(w, "categories", "categories.tmpl", data)
}

func (h *Handler) categoryCreate(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	input := upstream.CategoryInput{Name: r.FormValue("name"), Description: r.FormValue("description")}
	created, err := h.API.CreateCategory(r.Context(), input)
	if err != nil {
		h.fail(w, r, "categories", err)
		return
	}
	h.finishMutation(w, r, "category.create", created.ID, "/categories")
}

func (h *Handler) categoryUpdate(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id := mux.Vars(r)["id"]
	input := upstream.CategoryInput{Name: r.FormValue("name"), Description: r.FormValue("description")}
	if _, err := h.API.UpdateCategory(r.Context(), id, input); err != nil {
		h.fail(w, r, "categories", err)
		return
	}
	h.finishMutation(w, r, "category.update", id, "/categories")
}

func (h *Handler) categoryDelete(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	id := mux.Vars(r)["id"]
	if err := h.API.DeleteCategory(r.Context(), id); err != nil {
		h.fail(w, r, "categories", err)
		return
	}
	h.finishMutation(w, r, "category.delete", id, "/categories")
}

type offersData struct {
	basePage
	Banners []domain.OfferBanner
}

func (h *Handler) offersPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	var banners []domain.OfferBanner
	key := cache.Key{Resource: cache.ResourceOffers, Params: "all"}
	err := h.cachedJSON(r.Context(), key, &banners, func(ctx context.Context) (any, error) {
		return h.API.GetAllBanners(ctx, nil)
	})
	if err != nil {
		h.fail(w, r, "offers", err)
		return
	}
	h.render(w, "offers", "offers.tmpl", offersData{basePage: h.base("Offers"), Banners: banners})
}

func (h *Handler) bannerDelete(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	id := mux.Vars(r)["id"]
	if err := h.API.DeleteBanner(r.Context(), id); err != nil {
		h.fail(w, r, "offers", err)
		return
	}
	h.finishMutation(w, r, "banner.delete", id, "/offers")
}

type settingsData struct {
	basePage
	DeliveryEnabled bool
}

func (h *Handler) deliverySettingsPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	enabled, err := h.API.DeliveryEnabled(r.Context())
	if err != nil {
		h.fail(w, r, "settings", err)
		return
	}
	h.render(w, "settings", "settings.tmpl", settingsData{basePage: h.base("Delivery Settings"), DeliveryEnabled: enabled})
}

func (h *Handler) deliveryToggle(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	enabled := r.FormValue("enabled") == "true"
	if err := h.API.SetDeliveryEnabled(r.Context(), enabled); err != nil {
		h.fail(w, r, "settings", err)
		return
	}
	h.finishMutation(w, r, "settings.toggle", "delivery", "/settings/delivery")
}
