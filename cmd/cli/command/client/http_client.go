package client

// http_client.go talks to the skillhub REST API

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"skillhub/internal/microservices/http-api/dto"
)

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// APIError is a non-2xx reply; Message comes from the {"message": ...} body when present
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}

func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: apiURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// List fetches one page of a collection such as "organizations" or "user-stories"
func (c *HTTPClient) List(collection string, page, pageSize int) (*dto.PaginatedResponse[json.RawMessage], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))

	var result dto.PaginatedResponse[json.RawMessage]
	if err := c.do(http.MethodGet, "/api/"+collection+"?"+q.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) Get(collection, id string) (json.RawMessage, error) {
	var result json.RawMessage
	err := c.do(http.MethodGet, "/api/"+collection+"/"+url.PathEscape(id), nil, &result)
	return result, err
}

func (c *HTTPClient) Create(collection string, body json.RawMessage) (json.RawMessage, error) {
	var result json.RawMessage
	err := c.do(http.MethodPost, "/api/"+collection, body, &result)
	return result, err
}

func (c *HTTPClient) Update(collection, id string, body json.RawMessage) (json.RawMessage, error) {
	var result json.RawMessage
	err := c.do(http.MethodPut, "/api/"+collection+"/"+url.PathEscape(id), body, &result)
	return result, err
}

func (c *HTTPClient) Delete(collection, id string) (json.RawMessage, error) {
	var result json.RawMessage
	err := c.do(http.MethodDelete, "/api/"+collection+"/"+url.PathEscape(id), nil, &result)
	return result, err
}

func (c *HTTPClient) do(method, path string, body json.RawMessage, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() // ensure the response body is closed

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg dto.MessageResponse
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		return &APIError{StatusCode: resp.StatusCode, Message: msg.Message}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
