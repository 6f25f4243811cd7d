package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/domain"
	"orderdesk/internal/session"
)

func writeEnvelope(w http.ResponseWriter, status int, success bool, message string, result any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	payload, _ := json.Marshal(result)
	fmt.Fprintf(w, `{"success":%t,"statusCode":%d,"message":%q,"result":%s}`,
		success, status, message, string(payload))
}

// runCLI executes the root command against a fake API with a seeded session.
func runCLI(t *testing.T, apiHandler http.Handler, args ...string) (string, error) {
	t.Helper()
	api := httptest.NewServer(apiHandler)
	t.Cleanup(api.Close)

	sessionFile := filepath.Join(t.TempDir(), "session.json")
	t.Setenv("ORDERDESK_SESSION_FILE", sessionFile)
	store := &session.FileStore{Path: sessionFile}
	require.NoError(t, store.Save(&session.State{
		Token: "test-token",
		User:  &domain.Profile{ID: "u1", Email: "admin@example.com", Name: "Admin", Role: domain.RoleAdmin},
	}))

	cmd := NewRootCommand()
	cmd.SetArgs(append([]string{"--api-url", api.URL}, args...))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestOrdersListTable(t *testing.T) {
	out, err := runCLI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("isPaid"))
		writeEnvelope(w, http.StatusOK, true, "", domain.OrderPage{
			Page: 1, TotalPages: 1,
			Data: []domain.Order{{
				ID: "o1", OrderID: "ORD-1", OrderType: domain.OrderTypeDineIn,
				Status: "pending", IsPaid: true, GrandTotal: 300,
				CreatedAt: time.Date(2026, 8, 30, 19, 0, 0, 0, time.UTC),
			}},
			StatusCounts: domain.StatusCounts{TotalOrder: 1, Pending: 1},
		})
	}), "orders")

	require.NoError(t, err)
	assert.Contains(t, out, "ORD-1")
	assert.Contains(t, out, "Pending 1")
	assert.Contains(t, out, "Page 1 of 1")
}

func TestOrdersShow(t *testing.T) {
	out, err := runCLI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, true, "", domain.Order{
			ID: "o1", OrderID: "ORD-1", OrderType: domain.OrderTypeDineIn, Status: "ready",
			DineInDetails: &domain.DineInDetails{FirstName: "Asha", TableNumber: "7"},
			Items:         []domain.OrderLine{{Name: "Dosa", Quantity: 1, Price: 120}},
			GrandTotal:    120,
		})
	}), "orders", "show", "o1")

	require.NoError(t, err)
	assert.Contains(t, out, "Order ORD-1 (dinein)")
	assert.Contains(t, out, "Status: Ready")
	assert.Contains(t, out, "Location: 7")
	assert.Contains(t, out, "1. Dosa x1 - 120.00")
}

func TestOrdersUpdateInvalidTransition(t *testing.T) {
	_, err := runCLI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			t.Error("an invalid transition must not reach upstream")
		}
		writeEnvelope(w, http.StatusOK, true, "", domain.Order{
			ID: "o1", OrderType: domain.OrderTypeDineIn, Status: "completed",
		})
	}), "orders", "update", "o1", "--status", "pending")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot move order from completed to pending")
}

func TestOrdersUpdateRejectsUnknownStatus(t *testing.T) {
	_, err := runCLI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("a misspelled status must not reach the API")
	}), "orders", "update", "o1", "--status", "compleeted")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown status "compleeted"`)
}

func TestWhoami(t *testing.T) {
	out, err := runCLI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("whoami reads the local session only")
	}), "whoami")

	require.NoError(t, err)
	assert.Contains(t, out, "Admin <admin@example.com> (admin)")
}

func TestInvalidFormatRejected(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--format", "xml", "whoami"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
