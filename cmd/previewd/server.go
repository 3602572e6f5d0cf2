package main

import (
	"context"
	"encoding/json"
	"image"
	"image/png"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gogpu/preview"
	"github.com/gogpu/preview/internal/catalog"
)

const maxSize = 1024

type server struct {
	host    *host
	svc     *preview.Service
	log     *slog.Logger
	timeout time.Duration
}

func newRouter(s *server) http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)

	r.Get("/healthz", s.health)
	r.Get("/previews", s.listPreviews)
	r.Get("/previews/{name}.png", s.getPreview)
	return r
}

type ctxKey struct{}

// requestID tags every request with a fresh ID, echoed in X-Request-Id.
func (s *server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func (s *server) health(w http.ResponseWriter, r *http.Request) {
	st := s.svc.Stats()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"state":     s.svc.State().String(),
		"queued":    s.svc.Queued(),
		"completed": st.Completed,
		"failed":    st.Failed,
		"rejected":  st.Rejected,
	})
}

type previewInfo struct {
	Name     string   `json:"name"`
	Biomes   []string `json:"biomes"`
	Quantity int      `json:"quantity"`
	URL      string   `json:"url"`
}

func (s *server) listPreviews(w http.ResponseWriter, r *http.Request) {
	entries := catalog.All()
	out := make([]previewInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, previewInfo{
			Name:     e.Name,
			Biomes:   e.Biome.Names(),
			Quantity: e.Quantity,
			URL:      "/previews/" + e.Name + ".png",
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) getPreview(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	entry, ok := catalog.Lookup(name)
	if !ok {
		writeErr(w, http.StatusNotFound, "NOT_FOUND", "unknown location "+strconv.Quote(name))
		return
	}

	req, err := parseRequest(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result := make(chan *image.RGBA, 1)
	req.Target = entry.Prefab()
	req.Callback = func(img *image.RGBA) { result <- img }
	s.host.post(func() { s.svc.Enqueue(req) })

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()
	select {
	case img := <-result:
		if img == nil {
			writeErr(w, http.StatusUnprocessableEntity, "NOT_RENDERED", "location has nothing to render")
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		if err := png.Encode(w, img); err != nil {
			s.log.Warn("encode preview", "request_id", requestIDFrom(r.Context()), "err", err)
		}
		s.log.Debug("preview served", "request_id", requestIDFrom(r.Context()), "name", name)
	case <-ctx.Done():
		writeErr(w, http.StatusGatewayTimeout, "TIMEOUT", "preview not rendered in time")
	}
}

// parseRequest reads the optional size and framing query parameters.
// Absent parameters keep the preview defaults.
func parseRequest(r *http.Request) (preview.Request, error) {
	q := r.URL.Query()
	var req preview.Request
	var err error
	if req.Width, err = intParam(q.Get("width"), "width"); err != nil {
		return req, err
	}
	if req.Height, err = intParam(q.Get("height"), "height"); err != nil {
		return req, err
	}
	if req.FieldOfView, err = floatParam(q.Get("fov"), "fov", 0, 180); err != nil {
		return req, err
	}
	if req.DistanceMultiplier, err = floatParam(q.Get("distance"), "distance", 0, 100); err != nil {
		return req, err
	}
	return req, nil
}

type paramError struct {
	name, value string
}

func (e *paramError) Error() string {
	return "invalid " + e.name + " " + strconv.Quote(e.value)
}

func intParam(v, name string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 || n > maxSize {
		return 0, &paramError{name, v}
	}
	return n, nil
}

// floatParam parses v as a value in the open interval (lo, hi).
func floatParam(v, name string, lo, hi float64) (float64, error) {
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || !(f > lo && f < hi) {
		return 0, &paramError{name, v}
	}
	return f, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]any{"error": map[string]string{"code": code, "message": msg}})
}
