package regclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_DisabledWithoutBaseURI(t *testing.T) {
	c := New("")
	assert.False(t, c.Enabled())

	known, err := c.CheckFlightID(context.Background(), "AB1234", "tok")
	require.NoError(t, err)
	assert.False(t, known)
}

func TestClient_CheckFlightID_Found(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/flights/AB1234/check", r.URL.Path)
		assert.Equal(t, "Token secret", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL)
	known, err := c.CheckFlightID(context.Background(), "AB1234", "secret")
	require.NoError(t, err)
	assert.True(t, known)
}

func TestClient_CheckFlightID_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL)
	known, err := c.CheckFlightID(context.Background(), "AB1234", "secret")
	require.NoError(t, err)
	assert.False(t, known)
}

func TestClient_CheckFlightID_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.CheckFlightID(context.Background(), "AB1234", "secret")
	require.Error(t, err)
}
