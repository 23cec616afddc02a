package shortlink

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func TestIsShortLink(t *testing.T) {
	if !IsShortLink("https://spotify.link/abcd") {
		t.Error("spotify.link URL should be a short link")
	}
	if IsShortLink("https://open.spotify.com/track/abc") {
		t.Error("long-form URL is not a short link")
	}
	if IsShortLink("://bad") {
		t.Error("unparseable URL is not a short link")
	}
}

func TestResolve_LocationHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("expected HEAD probe, got %s", r.Method)
		}
		w.Header().Set("Location", "https://open.spotify.com/album/xyz789")
		w.WriteHeader(http.StatusFound)
	}))
	defer srv.Close()

	r := New(srv.Client(), testLogger())
	got, err := r.Resolve(context.Background(), srv.URL+"/abcd")
	if err != nil {
		t.Fatal(err)
	}
	if got != "https://open.spotify.com/album/xyz789" {
		t.Errorf("resolved to %q", got)
	}
}

func TestResolve_RelativeLocation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "/album/xyz789")
		w.WriteHeader(http.StatusFound)
	}))
	defer srv.Close()

	r := New(srv.Client(), testLogger())
	got, err := r.Resolve(context.Background(), srv.URL+"/abcd")
	if err != nil {
		t.Fatal(err)
	}
	if got != srv.URL+"/album/xyz789" {
		t.Errorf("resolved to %q, want %q", got, srv.URL+"/album/xyz789")
	}
}

func TestResolve_NoRedirectSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := New(srv.Client(), testLogger())
	got, err := r.Resolve(context.Background(), srv.URL+"/abcd")
	if err != nil {
		t.Fatal(err)
	}
	if got != srv.URL+"/abcd" {
		t.Errorf("resolved to %q, want original", got)
	}
}

func TestResolve_FallbackGET(t *testing.T) {
	var gets int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			w.WriteHeader(http.StatusMethodNotAllowed)
		case http.MethodGet:
			gets++
			if r.URL.Path == "/abcd" {
				http.Redirect(w, r, "/album/final", http.StatusFound)
				return
			}
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	r := New(srv.Client(), testLogger())
	got, err := r.Resolve(context.Background(), srv.URL+"/abcd")
	if err != nil {
		t.Fatal(err)
	}
	if got != srv.URL+"/album/final" {
		t.Errorf("resolved to %q, want %q", got, srv.URL+"/album/final")
	}
	if gets != 2 {
		t.Errorf("expected follow-through GETs, got %d", gets)
	}
}

func TestResolve_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := srv.Client()
	srv.Close() // connection refused from here on

	r := New(client, testLogger())
	if _, err := r.Resolve(context.Background(), srv.URL+"/abcd"); err == nil {
		t.Error("expected error for unreachable host")
	}
}

func TestResolve_UnparseableURL(t *testing.T) {
	r := New(&http.Client{}, testLogger())
	if _, err := r.Resolve(context.Background(), "://nope"); err == nil {
		t.Error("expected parse error")
	}
}
