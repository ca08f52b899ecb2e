package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meowcraft/launcher/internal/config"
	"github.com/meowcraft/launcher/internal/testutil"
)

func newTestClient(url string) *Client {
	return NewClient(config.NotifyConfig{
		URL:     url,
		Secret:  "hunter2",
		RoleID:  "role-42",
		Timeout: time.Second,
	}, testutil.NopLogger())
}

func TestNotifySendsExpectedPayload(t *testing.T) {
	var got rolePayload
	var contentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.Notify(context.Background(), "Ash", "id-ash")

	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "Ash", got.MinecraftUsername)
	assert.Equal(t, "id-ash", got.MinecraftUUID)
	assert.Equal(t, "hunter2", got.Secret)
	assert.Equal(t, "role-42", got.RoleID)
}

func TestNotifySwallowsServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	// Must not panic or propagate anything
	newTestClient(server.URL).Notify(context.Background(), "Ash", "id-ash")
}

func TestNotifySwallowsConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening any more

	newTestClient(server.URL).Notify(context.Background(), "Ash", "id-ash")
}

func TestNotifyDisabledWithoutURL(t *testing.T) {
	client := NewClient(config.NotifyConfig{}, testutil.NopLogger())
	client.Notify(context.Background(), "Ash", "id-ash")
}
