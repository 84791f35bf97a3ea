package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response {
	t.Helper()
	var body response
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}
	return body
}

func findCheck(t *testing.T, body response, name string) CheckResult {
	t.Helper()
	for _, c := range body.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("check %q missing from response: %+v", name, body.Checks)
	return CheckResult{}
}

func TestHealthz_AlwaysReturns200(t *testing.T) {
	h := New()

	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()
	h.Healthz(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if body := decodeResponse(t, rec); body.Status != "ok" {
		t.Errorf("status = %q, want %q", body.Status, "ok")
	}
}

func TestHealthz_ContentType(t *testing.T) {
	h := New()
	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()
	h.Healthz(rec, req)

	ct := rec.Header().Get("Content-Type")
	if ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestReadyz_AllCheckersPass(t *testing.T) {
	h := New(
		Checker{Name: "stt-model", Check: func(_ context.Context) error { return nil }},
		Checker{Name: "token-cache", Check: func(_ context.Context) error { return nil }},
	)

	req := httptest.NewRequest("GET", "/readyz", nil)
	rec := httptest.NewRecorder()
	h.Readyz(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := decodeResponse(t, rec)
	if body.Status != "ok" {
		t.Errorf("status = %q, want %q", body.Status, "ok")
	}
	for _, name := range []string{"stt-model", "token-cache"} {
		c := findCheck(t, body, name)
		if c.Status != "ok" {
			t.Errorf("%s status = %q, want %q", name, c.Status, "ok")
		}
		if c.Duration == "" {
			t.Errorf("%s has no duration", name)
		}
	}
}

func TestReadyz_CheckerFails(t *testing.T) {
	h := New(
		Checker{Name: "stt-model", Check: func(_ context.Context) error {
			return errors.New("file missing")
		}},
		Checker{Name: "token-cache", Check: func(_ context.Context) error { return nil }},
	)

	req := httptest.NewRequest("GET", "/readyz", nil)
	rec := httptest.NewRecorder()
	h.Readyz(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
	body := decodeResponse(t, rec)
	if body.Status != "fail" {
		t.Errorf("status = %q, want %q", body.Status, "fail")
	}
	model := findCheck(t, body, "stt-model")
	if model.Status != "fail" || model.Error != "file missing" {
		t.Errorf("stt-model = %+v, want fail with %q", model, "file missing")
	}
	if cache := findCheck(t, body, "token-cache"); cache.Status != "ok" {
		t.Errorf("token-cache status = %q, want %q", cache.Status, "ok")
	}
}

func TestReadyz_ChecksRunConcurrently(t *testing.T) {
	// The two checks rendezvous over an unbuffered channel; the handler can
	// only satisfy both if it runs them at the same time.
	rendezvous := make(chan struct{})
	h := New(
		Checker{Name: "a", Check: func(ctx context.Context) error {
			select {
			case rendezvous <- struct{}{}:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}},
		Checker{Name: "b", Check: func(ctx context.Context) error {
			select {
			case <-rendezvous:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}},
	)

	req := httptest.NewRequest("GET", "/readyz", nil)
	rec := httptest.NewRecorder()
	h.Readyz(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestReadyz_NoCheckers(t *testing.T) {
	h := New()

	req := httptest.NewRequest("GET", "/readyz", nil)
	rec := httptest.NewRecorder()
	h.Readyz(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if body := decodeResponse(t, rec); body.Status != "ok" {
		t.Errorf("status = %q, want %q", body.Status, "ok")
	}
}

func TestRegister_RoutesWork(t *testing.T) {
	h := New(
		Checker{Name: "test", Check: func(_ context.Context) error { return nil }},
	)

	mux := http.NewServeMux()
	h.Register(mux)

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/healthz", http.StatusOK},
		{"/readyz", http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.path, nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}

func TestReadyz_RespectsContextCancellation(t *testing.T) {
	h := New(
		Checker{Name: "slow", Check: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}},
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	req := httptest.NewRequest("GET", "/readyz", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	h.Readyz(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestModelFile(t *testing.T) {
	dir := t.TempDir()

	model := filepath.Join(dir, "ggml-base.en.bin")
	if err := os.WriteFile(model, []byte("model"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ModelFile(model).Check(context.Background()); err != nil {
		t.Errorf("existing file: %v", err)
	}
	if err := ModelFile(filepath.Join(dir, "missing.bin")).Check(context.Background()); err == nil {
		t.Error("missing file: want error")
	}
	if err := ModelFile(dir).Check(context.Background()); err == nil {
		t.Error("directory: want error")
	}
}

func TestTokenCache(t *testing.T) {
	dir := t.TempDir()

	cache := filepath.Join(dir, "token.json")
	if err := os.WriteFile(cache, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := TokenCache(cache).Check(context.Background()); err != nil {
		t.Errorf("existing cache: %v", err)
	}
	if err := TokenCache(filepath.Join(dir, "missing.json")).Check(context.Background()); err == nil {
		t.Error("missing cache: want error")
	}
}
