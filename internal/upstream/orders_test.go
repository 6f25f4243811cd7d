package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/domain"
)

func TestGetAllOrdersQuery(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		writeEnvelope(w, http.StatusOK, true, "", domain.OrderPage{
			Page:       2,
			TotalPages: 5,
			Data:       []domain.Order{{ID: "o1", Status: "pending"}},
			StatusCounts: domain.StatusCounts{
				TotalOrder: 42, Pending: 10, Ready: 2, Delivered: 30,
			},
		})
	}))
	defer server.Close()

	client := New(server.URL, &fakeSession{token: "token"})
	page, err := client.GetAllOrders(context.Background(), 2, 20, domain.OrderFilter{
		Search:    "biryani",
		OrderType: domain.OrderTypeDelivery,
	})

	require.NoError(t, err)
	assert.Equal(t, "2", gotQuery["page"])
	assert.Equal(t, "20", gotQuery["limit"])
	assert.Equal(t, "true", gotQuery["isPaid"], "the console only lists paid orders")
	assert.Equal(t, "biryani", gotQuery["search"])
	assert.Equal(t, "delivery", gotQuery["orderType"])
	assert.Equal(t, 42, page.StatusCounts.TotalOrder)
	assert.Len(t, page.Data, 1)
}

func TestGetOrderByID_PaginatedShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := 1
		writeEnvelope(w, http.StatusOK, true, "", orderLookup{
			Page: &page,
			Data: []domain.Order{{ID: "o42", Status: "ready", GrandTotal: 310}},
		})
	}))
	defer server.Close()

	client := New(server.URL, &fakeSession{token: "token"})
	order, err := client.GetOrderByID(context.Background(), "o42")

	require.NoError(t, err)
	assert.Equal(t, "o42", order.ID)
	assert.Equal(t, "ready", order.Status)
}

func TestGetOrderByID_BareObjectShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, true, "", domain.Order{
			ID: "o42", OrderID: "ORD-42", Status: "pending",
		})
	}))
	defer server.Close()

	client := New(server.URL, &fakeSession{token: "token"})
	order, err := client.GetOrderByID(context.Background(), "o42")

	require.NoError(t, err)
	assert.Equal(t, "o42", order.ID)
	assert.Equal(t, "ORD-42", order.OrderID)
}

func TestGetOrderByID_EmptyIsNotFound(t *testing.T) {
	tests := []struct {
		name   string
		result any
	}{
		{"empty_page", orderLookup{Page: intPtr(1), Data: []domain.Order{}}},
		{"empty_object", map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(w, http.StatusOK, true, "", tt.result)
			}))
			defer server.Close()

			client := New(server.URL, &fakeSession{token: "token"})
			_, err := client.GetOrderByID(context.Background(), "missing")

			assert.ErrorIs(t, err, ErrNotFound)
			var apiErr *APIError
			assert.ErrorAs(t, err, &apiErr)
			assert.Equal(t, "Order not found", apiErr.Message)
		})
	}
}

func TestGetOrderByID_Server404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusNotFound, false, "Order not found", nil)
	}))
	defer server.Close()

	client := New(server.URL, &fakeSession{token: "token"})
	_, err := client.GetOrderByID(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetOrderByIDMissingResultIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"statusCode":200,"message":"Order fetched"}`))
	}))
	defer server.Close()

	client := New(server.URL, &fakeSession{token: "token"})
	_, err := client.GetOrderByID(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Order not found", apiErr.Message)
}

func TestDeliverySettingsWireFieldName(t *testing.T) {
	var posted map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			assert.NoError(t, parseJSONBody(r, &posted))
			writeEnvelope(w, http.StatusOK, true, "", nil)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"statusCode":200,"message":"","result":{"isDeliveryEnabled":true}}`))
	}))
	defer server.Close()

	client := New(server.URL, &fakeSession{token: "token"})
	ctx := context.Background()

	got, err := client.DeliveryEnabled(ctx)
	require.NoError(t, err)
	assert.True(t, got, "the flag rides in result.isDeliveryEnabled")

	require.NoError(t, client.SetDeliveryEnabled(ctx, false))
	assert.Equal(t, map[string]any{"isDeliveryEnabled": false}, posted)
}

func intPtr(v int) *int { return &v }

func parseJSONBody(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}
