package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAPIService(t *testing.T) {
	ctx := context.Background()

	t.Run("get returns the raw response and detects JSON", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet || r.URL.Path != "/api/styles" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"success": true}`)
		}))
		defer server.Close()

		api := NewAPIService(server.URL, server.Client())

		resp, err := api.Get(ctx, "/api/styles")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200, got %d", resp.StatusCode)
		}
		if !resp.IsJSON {
			t.Error("expected JSON detection")
		}
		data, ok := resp.JSONData.(map[string]any)
		if !ok || data["success"] != true {
			t.Errorf("unexpected JSON data %v", resp.JSONData)
		}
	})

	t.Run("non-JSON body is passed through", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "plain text")
		}))
		defer server.Close()

		api := NewAPIService(server.URL, server.Client())

		resp, err := api.Get(ctx, "/")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if resp.IsJSON {
			t.Error("expected non-JSON response")
		}
		if string(resp.Body) != "plain text" {
			t.Errorf("unexpected body %q", resp.Body)
		}
	})

	t.Run("post sends the JSON body", func(t *testing.T) {
		var gotBody string
		var gotContentType string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			gotContentType = r.Header.Get("Content-Type")
			buf := make([]byte, r.ContentLength)
			r.Body.Read(buf)
			gotBody = string(buf)
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		api := NewAPIService(server.URL, server.Client())

		resp, err := api.Post(ctx, "/api/transfer", []byte(`{"intensity": 1}`))
		if err != nil {
			t.Fatalf("post failed: %v", err)
		}
		if resp.StatusCode != http.StatusCreated {
			t.Errorf("expected 201, got %d", resp.StatusCode)
		}
		if gotBody != `{"intensity": 1}` {
			t.Errorf("unexpected body %q", gotBody)
		}
		if gotContentType != "application/json" {
			t.Errorf("expected JSON content type, got %q", gotContentType)
		}
	})

	t.Run("delete issues a DELETE request", func(t *testing.T) {
		var gotMethod string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
		}))
		defer server.Close()

		api := NewAPIService(server.URL, server.Client())

		if _, err := api.Delete(ctx, "/api/gallery/styled_001.png"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if gotMethod != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", gotMethod)
		}
	})

	t.Run("set headers applies to every request", func(t *testing.T) {
		var gotAuth, gotCookie string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotCookie = r.Header.Get("Cookie")
		}))
		defer server.Close()

		api := NewAPIService(server.URL, server.Client())
		api.SetHeaders(map[string]string{
			"Authorization": "Bearer token",
			"Cookie":        "session=abc",
		})

		if _, err := api.Get(ctx, "/health"); err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if gotAuth != "Bearer token" || gotCookie != "session=abc" {
			t.Errorf("expected headers applied, got auth=%q cookie=%q", gotAuth, gotCookie)
		}
	})

	t.Run("defaults to the local backend", func(t *testing.T) {
		api := NewAPIService("", nil)

		if api.baseURL != DefaultBaseURL {
			t.Errorf("expected default base URL, got %q", api.baseURL)
		}
		if api.httpClient == nil {
			t.Error("expected a default client")
		}
	})
}
