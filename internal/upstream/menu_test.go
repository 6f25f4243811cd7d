package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/domain"
)

func TestToggleAvailabilityIsSelfInverse(t *testing.T) {
	item := domain.MenuItem{ID: "m1", Name: "Paneer Tikka", IsAvailable: true}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/menu/toggleAvailabilityMenu/m1"))
		item.IsAvailable = !item.IsAvailable
		writeEnvelope(w, http.StatusOK, true, "", item)
	}))
	defer server.Close()

	client := New(server.URL, &fakeSession{token: "token"})
	ctx := context.Background()

	first, err := client.ToggleMenuItemAvailability(ctx, "m1")
	require.NoError(t, err)
	assert.False(t, first.IsAvailable)

	second, err := client.ToggleMenuItemAvailability(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, second.IsAvailable, "two toggles must restore the original state")
}

func TestFetchMenuItemsFilters(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		writeEnvelope(w, http.StatusOK, true, "", domain.MenuPage{
			Menus: []domain.MenuItem{{ID: "m1"}},
			Total: 1,
		})
	}))
	defer server.Close()

	client := New(server.URL, &fakeSession{token: "token"})
	isVeg := true
	page, err := client.FetchMenuItems(context.Background(), 1, 12, domain.MenuFilter{
		Category: "Starters",
		Search:   "tikka",
		IsVeg:    &isVeg,
	})

	require.NoError(t, err)
	assert.Equal(t, "Starters", gotQuery["category"])
	assert.Equal(t, "tikka", gotQuery["search"])
	assert.Equal(t, "true", gotQuery["isVeg"])
	_, hasAvailable := gotQuery["isAvailable"]
	assert.False(t, hasAvailable, "unset pointer filters stay off the wire")
	assert.Equal(t, 1, page.Total)
}

func TestAddMenuItemSendsMultipart(t *testing.T) {
	var contentType, name string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		name = r.FormValue("name")
		writeEnvelope(w, http.StatusCreated, true, "", nil)
	}))
	defer server.Close()

	client := New(server.URL, &fakeSession{token: "token"})
	err := client.AddMenuItem(context.Background(), MenuItemInput{
		Name:     "Masala Dosa",
		Price:    120,
		Category: "South Indian",
		IsVeg:    true,
	})

	require.NoError(t, err)
	assert.Contains(t, contentType, "multipart/form-data")
	assert.Equal(t, "Masala Dosa", name)
}
