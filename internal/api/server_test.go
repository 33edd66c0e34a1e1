package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/flowband/flowband/pkg/flow/layout"
	"github.com/flowband/flowband/pkg/pipeline"
)

func testServer() *Server {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	return NewServer(pipeline.NewRunner(nil, logger), logger)
}

func TestHealthz(t *testing.T) {
	srv := httptest.NewServer(testServer().Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(testServer().Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/version")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if _, ok := body["version"]; !ok {
		t.Error("missing version field")
	}
}

func TestRequestIDEchoed(t *testing.T) {
	srv := httptest.NewServer(testServer().Routes())
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set(requestIDHeader, "test-id-123")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get(requestIDHeader); got != "test-id-123" {
		t.Errorf("request ID = %q, want echoed test-id-123", got)
	}
}

func TestRequestIDGenerated(t *testing.T) {
	srv := httptest.NewServer(testServer().Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.Header.Get(requestIDHeader) == "" {
		t.Error("response should carry a generated request ID")
	}
}

func TestRenderInlineRecordsSingleFormat(t *testing.T) {
	srv := httptest.NewServer(testServer().Routes())
	defer srv.Close()

	body := `{
	  "formats": ["svg"],
	  "records": [
	    {"left": "a", "right": "x", "weight": 5},
	    {"left": "a", "right": "y", "weight": 3},
	    {"left": "b", "right": "x", "weight": 2}
	  ]
	}`

	resp, err := http.Post(srv.URL+"/v1/render", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
	data, _ := io.ReadAll(resp.Body)
	if !strings.HasPrefix(string(data), "<svg") {
		t.Errorf("body should be raw SVG, got %.40s", data)
	}
}

func TestRenderMultipleFormats(t *testing.T) {
	srv := httptest.NewServer(testServer().Routes())
	defer srv.Close()

	body := `{
	  "formats": ["svg", "dot"],
	  "records": [{"left": "a", "right": "x", "weight": 5}]
	}`

	resp, err := http.Post(srv.URL+"/v1/render", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var out renderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.Artifacts) != 2 {
		t.Errorf("artifacts = %d, want 2", len(out.Artifacts))
	}
	if out.Stats.RecordCount != 1 {
		t.Errorf("RecordCount = %d, want 1", out.Stats.RecordCount)
	}
}

func TestRenderDefaultWeight(t *testing.T) {
	srv := httptest.NewServer(testServer().Routes())
	defer srv.Close()

	body := `{
	  "formats": ["json"],
	  "records": [{"left": "a", "right": "x"}]
	}`

	resp, err := http.Post(srv.URL+"/v1/render", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	data, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(data), `"weight": 1`) {
		t.Error("record without weight should default to 1")
	}
}

func TestRenderInlineRightWeights(t *testing.T) {
	srv := httptest.NewServer(testServer().Routes())
	defer srv.Close()

	body := `{
	  "formats": ["json"],
	  "records": [
	    {"left": "a", "right": "x", "weight": 4, "rightWeight": 2},
	    {"left": "b", "right": "x", "weight": 2, "rightWeight": 4}
	  ]
	}`

	resp, err := http.Post(srv.URL+"/v1/render", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var l layout.Layout
	if err := json.NewDecoder(resp.Body).Decode(&l); err != nil {
		t.Fatal(err)
	}
	if len(l.Bands) != 2 {
		t.Fatalf("bands = %d, want 2", len(l.Bands))
	}
	for _, b := range l.Bands {
		fromH := b.FromTop - b.FromBottom
		toH := b.ToTop - b.ToBottom
		if fromH == toH {
			t.Errorf("band %s->%s: from height %.2f should differ from to height %.2f",
				b.From, b.To, fromH, toH)
		}
	}
}

func TestRenderErrors(t *testing.T) {
	srv := httptest.NewServer(testServer().Routes())
	defer srv.Close()

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"malformed body", "{not json", http.StatusBadRequest},
		{"no input or records", `{"formats": ["svg"]}`, http.StatusBadRequest},
		{"empty label", `{"records": [{"left": "", "right": "x"}]}`, http.StatusBadRequest},
		{
			"order mismatch",
			`{"left_order": ["ghost"], "records": [{"left": "a", "right": "x"}]}`,
			http.StatusBadRequest,
		},
		{
			"missing colors",
			`{"colors": {"a": "#fff"}, "records": [{"left": "a", "right": "x"}]}`,
			http.StatusBadRequest,
		},
		{
			"missing local file",
			`{"input": "/nonexistent/flows.csv"}`,
			http.StatusNotFound,
		},
		{
			"unsupported input",
			`{"input": "flows.xlsx"}`,
			http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/v1/render", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				data, _ := io.ReadAll(resp.Body)
				t.Errorf("status = %d, want %d (body: %s)", resp.StatusCode, tt.wantStatus, data)
			}
			var out errorResponse
			if err := json.NewDecoder(resp.Body).Decode(&out); err == nil && out.Error == "" {
				t.Error("error body should carry a message")
			}
		})
	}
}
