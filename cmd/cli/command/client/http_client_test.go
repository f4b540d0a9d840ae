package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_ListAndAuthHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/organizations", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":"o1"}],"page":2,"page_size":10,"total":11,"total_pages":2}`))
	}))
	defer server.Close()

	c := NewHTTPClient(server.URL)
	c.SetToken("tok")
	page, err := c.List("organizations", 2, 10)
	require.NoError(t, err)

	assert.Equal(t, 11, page.Total)
	require.Len(t, page.Data, 1)
	assert.JSONEq(t, `{"id":"o1"}`, string(page.Data[0]))
}

func TestHTTPClient_ErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Id not found"}`))
	}))
	defer server.Close()

	_, err := NewHTTPClient(server.URL).Delete("organizations", "missing")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Id not found", apiErr.Message)
}

func TestHTTPClient_CreateSendsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Go", body["name"])
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"s1","name":"Go"}`))
	}))
	defer server.Close()

	created, err := NewHTTPClient(server.URL).Create("skills", json.RawMessage(`{"name":"Go"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"s1","name":"Go"}`, string(created))
}
