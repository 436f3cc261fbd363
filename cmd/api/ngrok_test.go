package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDetectNgrokURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tunnels" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"tunnels":[{"public_url":"http://a.ngrok.app","proto":"http"},{"public_url":"https://a.ngrok.app","proto":"https"}]}`))
	}))
	defer srv.Close()

	got, err := detectNgrokURL(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("detectNgrokURL: %v", err)
	}
	if got != "https://a.ngrok.app" {
		t.Errorf("url = %q", got)
	}
}

func TestDetectNgrokURLCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tunnels":[]}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := detectNgrokURL(ctx, srv.URL); err == nil {
		t.Error("expected error")
	}
}
