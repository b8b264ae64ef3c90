package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookLockerGateway_Unlock(t *testing.T) {
	var received unlockRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/unlock", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	gateway := NewLockerGateway(server.URL)

	err := gateway.Unlock(context.Background(), "1234")
	require.NoError(t, err)
	assert.Equal(t, "1234", received.Code)
}

func TestWebhookLockerGateway_Unlock_BridgeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	gateway := NewLockerGateway(server.URL)

	err := gateway.Unlock(context.Background(), "1234")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locker bridge returned status")
}

func TestNoopLockerGateway(t *testing.T) {
	gateway := NewLockerGateway("")

	assert.NoError(t, gateway.Unlock(context.Background(), "1234"))
}
