package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"orderdesk/internal/domain"
)

// fakeSession is an in-memory SessionStore for client tests.
type fakeSession struct {
	token   string
	cleared bool
}

func (s *fakeSession) Token() (string, error) {
	if s.token == "" {
		return "", errors.New("no active session")
	}
	return s.token, nil
}

func (s *fakeSession) Clear() error {
	s.cleared = true
	s.token = ""
	return nil
}

// countingTransport records every request that reaches the network.
type countingTransport struct {
	calls int
}

func (t *countingTransport) Do(*http.Request) (*http.Response, error) {
	t.calls++
	return nil, errors.New("transport should not be reached")
}

// writeEnvelope emits the uniform API response wrapper.
func writeEnvelope(w http.ResponseWriter, status int, success bool, message string, result any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	payload, _ := json.Marshal(result)
	fmt.Fprintf(w, `{"success":%t,"statusCode":%d,"message":%q,"result":%s}`,
		success, status, message, string(payload))
}

func TestMissingTokenFailsBeforeNetwork(t *testing.T) {
	transport := &countingTransport{}
	client := New("http://api.invalid", &fakeSession{}, WithHTTPClient(transport))

	_, err := client.GetAllOrders(context.Background(), 1, 10, domain.OrderFilter{})

	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.Equal(t, 0, transport.calls, "no request should be sent without a token")
}

func TestUnauthorizedClearsSessionAndFiresHook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, false, "Token expired", nil)
	}))
	defer server.Close()

	session := &fakeSession{token: "stale-token"}
	hookFired := false
	client := New(server.URL, session, WithExpiryHook(func() { hookFired = true }))

	_, err := client.GetAllOrders(context.Background(), 1, 10, domain.OrderFilter{})

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.True(t, session.cleared, "session must be torn down on 401")
	assert.True(t, hookFired)
}

func TestServerMessageSurfacedOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusConflict, false, "stale order", nil)
	}))
	defer server.Close()

	client := New(server.URL, &fakeSession{token: "token"})
	err := client.UpdateOrder(context.Background(), "o1", domain.OrderPatch{Status: domain.StatusReady})

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "stale order", apiErr.Message)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
}

func TestFallbackMessageWhenServerSendsNone(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusInternalServerError, false, "", nil)
	}))
	defer server.Close()

	client := New(server.URL, &fakeSession{token: "token"})
	_, err := client.GetAllOrders(context.Background(), 1, 10, domain.OrderFilter{})

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "An error occurred while fetching orders", apiErr.Message)
}

func TestTransportFailureIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := New(server.URL, &fakeSession{token: "token"})
	_, err := client.GetAllOrders(context.Background(), 1, 10, domain.OrderFilter{})

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, true, "", domain.OrderPage{})
	}))
	defer server.Close()

	client := New(server.URL, &fakeSession{token: "secret"})
	_, err := client.GetAllOrders(context.Background(), 1, 10, domain.OrderFilter{})

	assert.NoError(t, err)
	assert.Equal(t, "Bearer secret", gotAuth)
}
