// API service for making raw HTTP requests to the catalog server
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cineia/cinex/internal/auth"
	"golang.org/x/oauth2"
)

// APIService provides methods for making raw HTTP requests to the catalog
// server. It backs the `cinex api` escape hatch; responses are returned as-is
// with no status mapping or shape decoding.
type APIService struct {
	baseURL    string
	session    *auth.Session
	httpClient *http.Client
}

// NewAPIService creates a new raw API service instance. The session is
// optional; when present its token is attached to every request.
func NewAPIService(baseURL string, session *auth.Session, client *http.Client) *APIService {
	if baseURL == "" {
		baseURL = defaultCineBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &APIService{
		baseURL:    baseURL,
		session:    session,
		httpClient: client,
	}
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

func (a *APIService) client() *http.Client {
	if a.session == nil {
		return a.httpClient
	}
	token, err := a.session.Token()
	if err != nil {
		return a.httpClient
	}
	return &http.Client{
		Transport: &oauth2.Transport{
			Source: auth.TokenSource(token),
			Base:   a.httpClient.Transport,
		},
		Timeout: a.httpClient.Timeout,
	}
}

// Get performs a GET request to the specified path and returns the raw response.
func (a *APIService) Get(ctx context.Context, path string) (*APIResponse, error) {
	fullURL := a.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	return a.send(req)
}

// Post performs a POST request with the given JSON data and returns the raw response.
func (a *APIService) Post(ctx context.Context, path string, data []byte) (*APIResponse, error) {
	fullURL := a.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	return a.send(req)
}

// Delete performs a DELETE request to the specified path and returns the raw response.
func (a *APIService) Delete(ctx context.Context, path string) (*APIResponse, error) {
	fullURL := a.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	return a.send(req)
}

func (a *APIService) send(req *http.Request) (*APIResponse, error) {
	resp, err := a.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}

	var jsonData any
	if err := json.Unmarshal(body, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}
