package webapp

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// NewRouter wires every console route. Pages render HTML; POST routes mutate
// upstream and redirect back to their list.
func NewRouter(h *Handler) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	r.HandleFunc("/sign-in", h.signInPage).Methods("GET")
	r.HandleFunc("/sign-in", h.signIn).Methods("POST")
	r.HandleFunc("/logout", h.logout).Methods("POST")

	r.HandleFunc("/", h.homePage).Methods("GET")

	r.HandleFunc("/orders", h.ordersPage).Methods("GET")
	r.HandleFunc("/orders/{id}", h.orderEditPage).Methods("GET")
	r.HandleFunc("/orders/{id}", h.orderUpdate).Methods("POST")
	r.HandleFunc("/orders/{id}/delete", h.orderDelete).Methods("POST")
	r.HandleFunc("/orders/{id}/invoice", h.orderInvoice).Methods("GET")
	r.HandleFunc("/orders/{id}/invoice/download", h.orderInvoiceDownload).Methods("GET")
	r.HandleFunc("/orders/{id}/share.png", h.orderShareQR).Methods("GET")

	r.HandleFunc("/menu", h.menuPage).Methods("GET")
	r.HandleFunc("/menu", h.menuCreate).Methods("POST")
	r.HandleFunc("/menu/{id}", h.menuUpdate).Methods("POST")
	r.HandleFunc("/menu/{id}/toggle", h.menuToggle).Methods("POST")
	r.HandleFunc("/menu/{id}/delete", h.menuDelete).Methods("POST")

	r.HandleFunc("/categories", h.categoriesPage).Methods("GET")
	r.HandleFunc("/categories", h.categoryCreate).Methods("POST")
	r.HandleFunc("/categories/{id}", h.categoryUpdate).Methods("POST")
	r.HandleFunc("/categories/{id}/delete", h.categoryDelete).Methods("POST")

	r.HandleFunc("/users", h.usersPage).Methods("GET")
	r.HandleFunc("/users", h.userRegister).Methods("POST")
	r.HandleFunc("/users/{id}", h.userUpdate).Methods("POST")
	r.HandleFunc("/users/{id}/delete", h.userDelete).Methods("POST")
	r.HandleFunc("/users/{id}/reset-password", h.userResetPassword).Methods("POST")

	r.HandleFunc("/couriers", h.couriersPage).Methods("GET")
	r.HandleFunc("/couriers", h.courierCreate).Methods("POST")
	r.HandleFunc("/couriers/{id}", h.courierUpdate).Methods("POST")
	r.HandleFunc("/couriers/{id}/delete", h.courierDelete).Methods("POST")

	r.HandleFunc("/offers", h.offersPage).Methods("GET")
	r.HandleFunc("/offers/{id}/delete", h.bannerDelete).Methods("POST")

	r.HandleFunc("/settings/delivery", h.deliverySettingsPage).Methods("GET")
	r.HandleFunc("/settings/delivery", h.deliveryToggle).Methods("POST")

	r.HandleFunc("/reports", h.reportsPage).Methods("GET")
	r.HandleFunc("/reports/orders.csv", h.reportOrdersCSV).Methods("GET")
	r.HandleFunc("/reports/summary.csv", h.reportSummaryCSV).Methods("GET")

	return cors.Default().Handler(r)
}

func StartServer(addr string, handler http.Handler) {
	log.Printf("Orderdesk console starting on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
