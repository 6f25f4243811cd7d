package webapp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/audit"
	"orderdesk/internal/auth"
	"orderdesk/internal/cache"
	"orderdesk/internal/domain"
	"orderdesk/internal/session"
	"orderdesk/internal/upstream"
	"orderdesk/internal/workflow"
)

func writeEnvelope(w http.ResponseWriter, status int, success bool, message string, result any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	payload, _ := json.Marshal(result)
	fmt.Fprintf(w, `{"success":%t,"statusCode":%d,"message":%q,"result":%s}`,
		success, status, message, string(payload))
}

// testStack is the console wired against a fake restaurant API.
type testStack struct {
	router http.Handler
	store  *session.FileStore
	cache  *cache.Memory
}

func newTestStack(t *testing.T, apiHandler http.Handler) *testStack {
	t.Helper()
	api := httptest.NewServer(apiHandler)
	t.Cleanup(api.Close)

	store := &session.FileStore{Path: filepath.Join(t.TempDir(), "session.json")}
	sessions := session.NewManager(store)
	client := upstream.New(api.URL, sessions)
	authSvc := auth.NewService(client, sessions)
	queryCache := cache.NewMemory()
	orders := workflow.NewService(client, queryCache, audit.Noop{})

	handler := NewHandler(client, authSvc, orders, queryCache, audit.Noop{}, time.Minute)
	return &testStack{router: NewRouter(handler), store: store, cache: queryCache}
}

func (s *testStack) signIn(t *testing.T) {
	t.Helper()
	require.NoError(t, s.store.Save(&session.State{
		Token: "test-token",
		User:  &domain.Profile{ID: "u1", Email: "admin@example.com", Name: "Admin", Role: domain.RoleAdmin},
	}))
}

func sampleOrder() domain.Order {
	return domain.Order{
		ID: "o1", OrderID: "ORD-1", OrderType: domain.OrderTypeDineIn,
		Status: "pending", GrandTotal: 300, IsPaid: true,
		DineInDetails: &domain.DineInDetails{FirstName: "Asha", TableNumber: "7"},
		Items:         []domain.OrderLine{{Name: "Paneer Tikka", Quantity: 2, Price: 150}},
		CreatedAt:     time.Date(2026, 8, 30, 19, 0, 0, 0, time.UTC),
	}
}

func TestAnonymousUserRedirectedToSignIn(t *testing.T) {
	stack := newTestStack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("the API should not be reached without a session")
	}))

	for _, path := range []string{"/", "/orders", "/menu", "/users", "/reports"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		stack.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, "/sign-in", rec.Header().Get("Location"), path)
	}
}

func TestHealthCheck(t *testing.T) {
	stack := newTestStack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	stack.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "orderdesk", body["service"])
}

func TestSignInFailureRerendersWithMessage(t *testing.T) {
	stack := newTestStack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusBadRequest, false, "Invalid credentials", nil)
	}))

	form := url.Values{"email": {"admin@example.com"}, "password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/sign-in", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	stack.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
}

func TestOrdersPageServedFromCache(t *testing.T) {
	listHits := 0
	stack := newTestStack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/order/getAllOrders") {
			listHits++
			writeEnvelope(w, http.StatusOK, true, "", domain.OrderPage{
				Page: 1, TotalPages: 1, Data: []domain.Order{sampleOrder()},
				StatusCounts: domain.StatusCounts{TotalOrder: 1, Pending: 1},
			})
			return
		}
		t.Errorf("unexpected API call: %s", r.URL.Path)
	}))
	stack.signIn(t)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		rec := httptest.NewRecorder()
		stack.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "ORD-1")
	}
	assert.Equal(t, 1, listHits, "the second page load must come from the cache")
}

func TestOrderUpdateRedirectsAndInvalidates(t *testing.T) {
	listHits := 0
	stack := newTestStack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/order/getAllOrders"):
			listHits++
			writeEnvelope(w, http.StatusOK, true, "", domain.OrderPage{
				Page: 1, TotalPages: 1, Data: []domain.Order{sampleOrder()},
				StatusCounts: domain.StatusCounts{TotalOrder: 1, Pending: 1},
			})
		case strings.Contains(r.URL.Path, "/order/getOrderById/"):
			writeEnvelope(w, http.StatusOK, true, "", sampleOrder())
		case strings.Contains(r.URL.Path, "/order/orderUpdated/"):
			var patch domain.OrderPatch
			require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
			assert.Equal(t, domain.StatusReady, patch.Status)
			assert.Equal(t, "7", patch.TableNumber)
			writeEnvelope(w, http.StatusOK, true, "Order updated", nil)
		default:
			t.Errorf("unexpected API call: %s", r.URL.Path)
		}
	}))
	stack.signIn(t)

	// Prime the list cache.
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	stack.router.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, 1, listHits)

	form := url.Values{"status": {"ready"}, "tableOrAddress": {"7"}}
	req = httptest.NewRequest(http.MethodPost, "/orders/o1", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	stack.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/orders", rec.Header().Get("Location"))

	// The redirect target refetches because the save staled the list.
	req = httptest.NewRequest(http.MethodGet, "/orders", nil)
	stack.router.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, 2, listHits, "a successful save must invalidate the cached list")
}

func TestOrderUpdateFailureRerendersForm(t *testing.T) {
	stack := newTestStack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/order/getOrderById/"):
			writeEnvelope(w, http.StatusOK, true, "", sampleOrder())
		case strings.Contains(r.URL.Path, "/order/orderUpdated/"):
			writeEnvelope(w, http.StatusConflict, false, "stale order", nil)
		default:
			t.Errorf("unexpected API call: %s", r.URL.Path)
		}
	}))
	stack.signIn(t)

	form := url.Values{"status": {"ready"}, "tableOrAddress": {"7"}}
	req := httptest.NewRequest(http.MethodPost, "/orders/o1", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	stack.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "stale order", "the server message is surfaced")
	assert.Contains(t, body, `name="status"`, "the edit form is rendered again")
}

func TestInvalidTransitionRejectedBeforeUpstream(t *testing.T) {
	completed := sampleOrder()
	completed.Status = "completed"
	stack := newTestStack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/order/getOrderById/"):
			writeEnvelope(w, http.StatusOK, true, "", completed)
		case strings.Contains(r.URL.Path, "/order/orderUpdated/"):
			t.Error("an invalid transition must not reach upstream")
		default:
			t.Errorf("unexpected API call: %s", r.URL.Path)
		}
	}))
	stack.signIn(t)

	form := url.Values{"status": {"pending"}}
	req := httptest.NewRequest(http.MethodPost, "/orders/o1", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	stack.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "cannot move order from completed to pending")
}

func TestUserResetPasswordUsesTokenFlow(t *testing.T) {
	var resetPath string
	stack := newTestStack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/user/getUserById/"):
			writeEnvelope(w, http.StatusOK, true, "", domain.User{ID: "u2", Email: "asha@example.com"})
		case r.URL.Path == "/user/forgotPassword":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "asha@example.com", body["email"])
			writeEnvelope(w, http.StatusOK, true, "", "reset-token-123")
		case strings.Contains(r.URL.Path, "/user/resetPassword/"):
			resetPath = r.URL.Path
			writeEnvelope(w, http.StatusOK, true, "", nil)
		default:
			t.Errorf("unexpected API call: %s", r.URL.Path)
		}
	}))
	stack.signIn(t)

	form := url.Values{"newPassword": {"s3cret!"}, "confirmPassword": {"s3cret!"}}
	req := httptest.NewRequest(http.MethodPost, "/users/u2/reset-password", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	stack.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/users", rec.Header().Get("Location"))
	assert.Equal(t, "/user/resetPassword/reset-token-123", resetPath,
		"the reset call is keyed by the minted token, not the user id")
}

func TestExpiredSessionRedirectsAndClearsState(t *testing.T) {
	stack := newTestStack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, false, "Token expired", nil)
	}))
	stack.signIn(t)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	rec := httptest.NewRecorder()
	stack.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/sign-in", rec.Header().Get("Location"))

	state, err := stack.store.Load()
	require.NoError(t, err)
	assert.Nil(t, state, "the persisted session must be torn down on 401")
}

func TestOrderShareQRServesPNG(t *testing.T) {
	stack := newTestStack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, true, "", sampleOrder())
	}))
	stack.signIn(t)

	req := httptest.NewRequest(http.MethodGet, "/orders/o1/share.png", nil)
	rec := httptest.NewRecorder()
	stack.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	body := rec.Body.Bytes()
	require.Greater(t, len(body), 4)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, body[:4])
}

func TestReportOrdersCSVDownload(t *testing.T) {
	order := sampleOrder()
	order.Status = "completed"
	stack := newTestStack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, true, "", domain.OrderDashboard{
			TotalOrders:           1,
			TotalRevenue:          300,
			CompletedDineInOrders: []domain.Order{order},
		})
	}))
	stack.signIn(t)

	req := httptest.NewRequest(http.MethodGet, "/reports/orders.csv?range=weekly", nil)
	rec := httptest.NewRecorder()
	stack.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "orders-weekly.csv")
	assert.Contains(t, rec.Body.String(), "ORD-1")
}
