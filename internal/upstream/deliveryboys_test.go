package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/domain"
)

func TestCreateDeliveryBoyPostsToAdd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/deliverBoy/add", r.URL.Path)
		var input domain.DeliveryBoyInput
		require.NoError(t, parseJSONBody(r, &input))
		assert.Equal(t, "Ravi", input.Name)
		writeEnvelope(w, http.StatusCreated, true, "", domain.DeliveryBoy{ID: "d1", Name: "Ravi"})
	}))
	defer server.Close()

	client := New(server.URL, &fakeSession{token: "token"})
	boy, err := client.CreateDeliveryBoy(context.Background(), domain.DeliveryBoyInput{
		Name:  "Ravi",
		Phone: "9876543210",
	})

	require.NoError(t, err)
	assert.Equal(t, "d1", boy.ID)
}

func TestGetAllDeliveryBoysStatusFilter(t *testing.T) {
	var gotStatus string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotStatus = r.URL.Query().Get("status")
		writeEnvelope(w, http.StatusOK, true, "", domain.DeliveryBoyPage{
			Page: 1, TotalPages: 1,
			Data: []domain.DeliveryBoy{{ID: "d1", Status: domain.CourierActive}},
		})
	}))
	defer server.Close()

	client := New(server.URL, &fakeSession{token: "token"})
	boys, err := client.ActiveDeliveryBoys(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "active", gotStatus)
	require.Len(t, boys, 1)
	assert.Equal(t, "d1", boys[0].ID)
}
