package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResendSend(t *testing.T) {
	var got sendEmailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/emails", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "Bearer re-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewResendClient("re-key", srv.URL, "noreply@connectsphere.com")
	err := c.Send(context.Background(), "dana@x.com", "Hello", "body text")
	require.NoError(t, err)

	assert.Equal(t, "noreply@connectsphere.com", got.From)
	assert.Equal(t, []string{"dana@x.com"}, got.To)
	assert.Equal(t, "Hello", got.Subject)
	assert.Equal(t, "body text", got.Text)
}

func TestResendSendUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid from address"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := NewResendClient("re-key", srv.URL, "bad@@")
	err := c.Send(context.Background(), "dana@x.com", "Hello", "body")
	assert.Error(t, err)
}

func TestResendSendWithoutAPIKey(t *testing.T) {
	c := NewResendClient("", "http://localhost:0", "noreply@connectsphere.com")
	err := c.Send(context.Background(), "dana@x.com", "Hello", "body")
	assert.Error(t, err)
}
