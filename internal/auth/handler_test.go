package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	service := NewService(newFakeUserStore(), testSecret)
	handler := NewHandler(service)
	ts := httptest.NewServer(handler.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) (*http.Response, map[string]any) {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func TestRegisterEndpoint(t *testing.T) {
	ts := setupAuthServer(t)

	resp, envelope := postJSON(t, ts.URL+"/register", map[string]string{
		"username": "alice",
		"password": "password123",
		"name":     "Alice",
		"gender":   "female",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, envelope["success"])
}

func TestRegisterEndpointDuplicate(t *testing.T) {
	ts := setupAuthServer(t)
	body := map[string]string{"username": "alice", "password": "password123", "name": "Alice"}

	resp, _ := postJSON(t, ts.URL+"/register", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, envelope := postJSON(t, ts.URL+"/register", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, envelope["success"])
}

func TestRegisterEndpointShortPassword(t *testing.T) {
	ts := setupAuthServer(t)

	resp, _ := postJSON(t, ts.URL+"/register", map[string]string{
		"username": "alice",
		"password": "12345",
		"name":     "Alice",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginEndpoint(t *testing.T) {
	ts := setupAuthServer(t)

	resp, _ := postJSON(t, ts.URL+"/register", map[string]string{
		"username": "alice",
		"password": "password123",
		"name":     "Alice",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, envelope := postJSON(t, ts.URL+"/login", map[string]string{
		"username": "alice",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, data["jwt_token"])
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	ts := setupAuthServer(t)

	resp, _ := postJSON(t, ts.URL+"/register", map[string]string{
		"username": "alice",
		"password": "password123",
		"name":     "Alice",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, envelope := postJSON(t, ts.URL+"/login", map[string]string{
		"username": "alice",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, envelope["success"])
}
