package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cineia/cinex/internal/auth"
	tu "github.com/cineia/cinex/internal/testing"
)

func TestAPIService(t *testing.T) {
	ctx := context.Background()

	t.Run("Get returns raw response with JSON detection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/movies/recent" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"id": 1, "title": "First"}]`))
		}))
		defer server.Close()

		api := NewAPIService(server.URL, nil, nil)
		resp, err := api.Get(ctx, "/api/movies/recent")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200, got %d", resp.StatusCode)
		}
		if !resp.IsJSON {
			t.Error("expected JSON body to be detected")
		}
	})

	t.Run("Get passes error statuses through unmapped", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": "Movie not found"}`))
		}))
		defer server.Close()

		api := NewAPIService(server.URL, nil, nil)
		resp, err := api.Get(ctx, "/api/movies/99999")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404, got %d", resp.StatusCode)
		}
	})

	t.Run("Post sends the body with content type", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected JSON content type, got %s", ct)
			}
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		api := NewAPIService(server.URL, nil, nil)
		resp, err := api.Post(ctx, "/api/auth/register", []byte(`{"email": "a@b.com"}`))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if resp.StatusCode != http.StatusCreated {
			t.Errorf("expected 201, got %d", resp.StatusCode)
		}
	})

	t.Run("attaches the session token when available", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		sess := auth.NewSession(auth.NewCredentialStore(t.TempDir(), 0))
		token := tu.ForgeToken("viewer@example.com", 7, time.Now().Add(time.Hour))
		if err := sess.Login(&auth.Identity{Username: "viewer", Email: "viewer@example.com", UserID: 7, Token: token}); err != nil {
			t.Fatalf("failed to log in test session: %v", err)
		}

		api := NewAPIService(server.URL, sess, nil)
		if _, err := api.Get(ctx, "/api/users/7"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if gotAuth != "Bearer "+token {
			t.Errorf("expected bearer token, got %q", gotAuth)
		}
	})
}
