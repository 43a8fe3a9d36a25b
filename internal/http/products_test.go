package handlers_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"arenacustoms/internal/notion"
)

type productsResponse struct {
	Products []map[string]any `json:"products"`
	Reason   string           `json:"reason"`
	Error    string           `json:"error"`
}

func decode(t *testing.T, body string) productsResponse {
	t.Helper()
	var pr productsResponse
	if err := json.Unmarshal([]byte(body), &pr); err != nil {
		t.Fatalf("bad json %q: %v", body, err)
	}
	return pr
}

func TestProducts_NotConfiguredIs404WithReason(t *testing.T) {
	app, fetchLog := newTestApp(t, testConfig(notion.Config{}))

	var resp *http.Response
	var body string
	entries := captureLogs(t, func() { resp, body = get(t, app, "/api/products") })

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("want 404, got %d", resp.StatusCode)
	}
	if cc := resp.Header.Get("Cache-Control"); cc != "no-store" {
		t.Fatalf("want no-store, got %q", cc)
	}
	pr := decode(t, body)
	if pr.Products == nil || len(pr.Products) != 0 || pr.Reason == "" {
		t.Fatalf("want empty products and a reason, got %s", body)
	}
	for _, e := range entries {
		if e.Level == "error" {
			t.Fatalf("missing configuration must not log an error: %+v", e)
		}
	}
	last, err := fetchLog.Latest()
	if err != nil || last == nil || last.OK {
		t.Fatalf("want failed fetch recorded, got %+v err=%v", last, err)
	}
}

func TestProducts_LiveCatalog(t *testing.T) {
	store := fakeNotion(t, 200, `{"results":[
		{"id":"p1","properties":{"Name":{"title":[{"plain_text":"Home Jersey"}]},"Price":{"number":45},"Image":{"rich_text":[{"plain_text":"home kit.jpg"}]},"Team":{"multi_select":[{"name":"U12"}]}}},
		{"id":"p2","properties":{"Name":{"title":[{"plain_text":"Old Jersey"}]},"Status":{"select":{"name":"Archived"}}}}
	],"has_more":false,"next_cursor":null}`)
	app, _ := newTestApp(t, testConfig(notion.Config{Token: "t", DatabaseID: "db", BaseURL: store.URL}))

	resp, body := get(t, app, "/api/products")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d body=%s", resp.StatusCode, body)
	}
	if cc := resp.Header.Get("Cache-Control"); cc != "no-store" {
		t.Fatalf("want no-store, got %q", cc)
	}
	pr := decode(t, body)
	if len(pr.Products) != 1 {
		t.Fatalf("want only the publishable product, got %s", body)
	}
	p := pr.Products[0]
	if p["id"] != "p1" || p["name"] != "Home Jersey" || p["image"] != "/images/home%20kit.jpg" {
		t.Fatalf("unexpected product: %v", p)
	}
	if p["status"] != nil {
		t.Fatalf("want null status, got %v", p["status"])
	}
}

func TestProducts_UpstreamFailureIs500(t *testing.T) {
	store := fakeNotion(t, 401, `{"object":"error","status":401,"code":"unauthorized","message":"API token is invalid."}`)
	app, _ := newTestApp(t, testConfig(notion.Config{Token: "t", DatabaseID: "db", BaseURL: store.URL}))

	resp, body := get(t, app, "/api/products")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d", resp.StatusCode)
	}
	pr := decode(t, body)
	if !strings.Contains(pr.Error, "API token is invalid") {
		t.Fatalf("want upstream message in error, got %s", body)
	}
	if strings.Contains(body, `"t"`) {
		t.Fatalf("token leaked: %s", body)
	}
}

func TestProducts_RateLimited(t *testing.T) {
	app, _ := newTestApp(t, testConfig(notion.Config{}))
	var last int
	captureLogs(t, func() {
		for i := 0; i < 31; i++ {
			resp, _ := get(t, app, "/api/products")
			last = resp.StatusCode
			if i < 30 && last == http.StatusTooManyRequests {
				t.Fatalf("hit rate limit too early at %d", i)
			}
		}
	})
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after limit, got %d", last)
	}
}
