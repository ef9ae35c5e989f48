package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hrdocs/internal/platform/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Addr:           ":0",
		Environment:    "test",
		SessionTTL:     time.Hour,
		AdminTokenTTL:  time.Hour,
		StorageDir:     t.TempDir(),
		AssetDir:       t.TempDir(),
		AssetBaseURL:   "/static/images/",
		MaxBodyBytes:   1 << 20,
		MetricsEnabled: true,
		LogLevel:       "error",
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := New(context.Background(), testConfig(t), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(app.Close)
	return app
}

func TestNewServesHealthAndCompanies(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/healthz", "/readyz", "/metrics", "/api/v1/companies"} {
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
		if rec.Header().Get("X-Request-ID") == "" {
			t.Fatalf("%s: expected X-Request-ID header", path)
		}
	}
}

func TestEndToEndPDF(t *testing.T) {
	app := newTestApp(t)

	body, err := json.Marshal(map[string]any{
		"companyId":       "company2",
		"documentType":    "relieving_letter",
		"fullName":        "Ravi Kumar",
		"nationalId":      "9999",
		"ctc":             "480000",
		"joiningDate":     "2022-01-10",
		"resignationDate": "2025-05-30",
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/documents", bytes.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var env struct {
		Data struct {
			GenerateURL string `json:"generateUrl"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode submit response: %v", err)
	}

	gen := httptest.NewRecorder()
	app.Router.ServeHTTP(gen, httptest.NewRequest(http.MethodPost, env.Data.GenerateURL, nil))
	if gen.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", gen.Code, gen.Body.String())
	}
	if !bytes.HasPrefix(gen.Body.Bytes(), []byte("%PDF-")) {
		t.Fatal("expected a PDF body")
	}

	admin := httptest.NewRecorder()
	app.Router.ServeHTTP(admin, httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", bytes.NewBufferString(`{"password":"x"}`)))
	if admin.Code != http.StatusForbidden {
		t.Fatalf("expected admin login to be disabled, got %d", admin.Code)
	}
}

func TestAssetPrefix(t *testing.T) {
	cases := map[string]string{
		"/static/images":               "/static/images/",
		"/static/images/":              "/static/images/",
		"https://cdn.example.com/img/": "",
		"":                             "",
	}
	for in, want := range cases {
		if got := assetPrefix(in); got != want {
			t.Fatalf("assetPrefix(%q) = %q, want %q", in, got, want)
		}
	}
}
