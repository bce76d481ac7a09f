package httpfetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchClassifiesXML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(`<Legislation/>`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	result, err := client.Fetch(context.Background(), "/ukpga/1974/37/data.xml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Kind != KindXML {
		t.Fatalf("expected XML kind, got %v", result.Kind)
	}
}

func TestFetchSurfacesNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	_, err := client.Fetch(context.Background(), "/missing")
	if err == nil {
		t.Fatal("expected error for 404")
	}
	fe, ok := err.(*FetchError)
	if !ok || fe.Status != http.StatusNotFound {
		t.Fatalf("expected FetchError 404, got %v", err)
	}
}

func TestFetchXMLOrFallbackRetriesOnHTML(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path == "/primary" {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(`<html></html>`))
			return
		}
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(`<Legislation/>`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	result, err := client.FetchXMLOrFallback(context.Background(), "/primary", "/fallback")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Kind != KindXML {
		t.Fatalf("expected XML from fallback, got %v", result.Kind)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}
