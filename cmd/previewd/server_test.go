package main

import (
	"context"
	"encoding/json"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gogpu/preview"
	"github.com/gogpu/preview/scene"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	sc := scene.New()
	svc := preview.New(sc, preview.WithSupersample(1))
	svc.Attach(sc)
	h := newHost(sc, time.Millisecond)
	go h.run(ctx)

	s := &server{
		host:    h,
		svc:     svc,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		timeout: 5 * time.Second,
	}
	ts := httptest.NewServer(newRouter(s))
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp := get(t, ts.URL+"/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Error("X-Request-Id header missing")
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v, want ok", body["status"])
	}
}

func TestListPreviews(t *testing.T) {
	ts := newTestServer(t)
	resp := get(t, ts.URL+"/previews")
	var list []previewInfo
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if len(list) == 0 || list[0].URL != "/previews/"+list[0].Name+".png" {
		t.Errorf("list = %+v, want entries with preview URLs", list)
	}
}

func TestGetPreview(t *testing.T) {
	ts := newTestServer(t)
	resp := get(t, ts.URL+"/previews/stone_tower.png?width=48&height=32&fov=20&distance=1.1")
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, want 200: %s", resp.StatusCode, b)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if got := img.Bounds().Size(); got.X != 48 || got.Y != 32 {
		t.Errorf("image size = %v, want 48x32", got)
	}
}

func TestGetPreviewErrors(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		path string
		want int
	}{
		{"/previews/missing.png", http.StatusNotFound},
		{"/previews/stone_tower.png?width=0", http.StatusBadRequest},
		{"/previews/stone_tower.png?width=abc", http.StatusBadRequest},
		{"/previews/stone_tower.png?fov=180", http.StatusBadRequest},
		{"/previews/spawn_marker.png", http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		resp := get(t, ts.URL+tt.path)
		if resp.StatusCode != tt.want {
			t.Errorf("GET %s status = %d, want %d", tt.path, resp.StatusCode, tt.want)
		}
	}
}
