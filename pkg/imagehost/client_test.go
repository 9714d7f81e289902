package imagehost

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testConfig() Config {
	return Config{
		CloudName:    "demo",
		APIKey:       "key",
		APISecret:    "secret",
		UploadFolder: "crunch-perks/ads",
	}
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(testConfig(), WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return client, server
}

func TestNewClientRequiresCredentials(t *testing.T) {
	if _, err := NewClient(Config{APIKey: "k", APISecret: "s"}); err == nil {
		t.Fatal("expected error for missing cloud name")
	}
	if _, err := NewClient(Config{CloudName: "demo"}); err == nil {
		t.Fatal("expected error for missing credentials")
	}
}

func TestUpload(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1_1/demo/image/upload" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if r.FormValue("api_key") != "key" {
			t.Errorf("missing api key field")
		}
		if r.FormValue("signature") == "" {
			t.Errorf("missing signature field")
		}
		if r.FormValue("folder") != "crunch-perks/ads" {
			t.Errorf("unexpected folder %q", r.FormValue("folder"))
		}

		_ = json.NewEncoder(w).Encode(Asset{
			PublicID: "crunch-perks/ads/abc123",
			URL:      "https://res.cloudinary.com/demo/image/upload/abc123.png",
			Width:    1920,
			Height:   1080,
			Bytes:    204800,
			Format:   "png",
		})
	}))

	asset, err := client.Upload(context.Background(), "ad.png", strings.NewReader("fake-image-bytes"))
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if asset.PublicID != "crunch-perks/ads/abc123" {
		t.Fatalf("unexpected public id %s", asset.PublicID)
	}
	if asset.Width != 1920 || asset.Height != 1080 {
		t.Fatalf("unexpected dimensions %dx%d", asset.Width, asset.Height)
	}
}

func TestResource(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1_1/demo/resources/image/upload/crunch-perks/ads/abc123" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "key" || pass != "secret" {
			t.Errorf("missing or wrong basic auth")
		}
		_ = json.NewEncoder(w).Encode(Asset{
			PublicID: "crunch-perks/ads/abc123",
			Width:    1920,
			Height:   1080,
			Format:   "jpg",
		})
	}))

	asset, err := client.Resource(context.Background(), "crunch-perks/ads/abc123")
	if err != nil {
		t.Fatalf("Resource returned error: %v", err)
	}
	if asset.Format != "jpg" {
		t.Fatalf("unexpected format %s", asset.Format)
	}
}

func TestResourceNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"message":"Resource not found"}}`))
	}))

	if _, err := client.Resource(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for missing resource")
	}
}

func TestDestroy(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1_1/demo/image/destroy" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.FormValue("public_id") != "crunch-perks/ads/abc123" {
			t.Errorf("unexpected public id %q", r.FormValue("public_id"))
		}
		if r.FormValue("signature") == "" {
			t.Errorf("missing signature")
		}
		_, _ = w.Write([]byte(`{"result":"ok"}`))
	}))

	if err := client.Destroy(context.Background(), "crunch-perks/ads/abc123"); err != nil {
		t.Fatalf("Destroy returned error: %v", err)
	}
}

func TestDestroyToleratesAlreadyGone(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":"not found"}`))
	}))

	if err := client.Destroy(context.Background(), "gone"); err != nil {
		t.Fatalf("expected already-deleted asset to be tolerated, got %v", err)
	}
}

func TestPing(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1_1/demo/ping" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))

	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("Ping returned error: %v", err)
	}
}
