package pipeline

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/flowband/flowband/pkg/cache"
	"github.com/flowband/flowband/pkg/fetch"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func writeTempCSV(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flows.csv")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExecute(t *testing.T) {
	path := writeTempCSV(t, "left,right,weight\na,x,5\na,y,3\nb,x,2\n")

	r := NewRunner(nil, quietLogger())
	result, err := r.Execute(context.Background(), Options{
		Input:   path,
		Formats: []string{FormatSVG, FormatJSON, FormatDOT},
		Logger:  quietLogger(),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.Layout == nil {
		t.Fatal("result has no layout")
	}
	if result.Stats.RecordCount != 3 {
		t.Errorf("RecordCount = %d, want 3", result.Stats.RecordCount)
	}
	if result.Stats.LeftCount != 2 || result.Stats.RightCount != 2 {
		t.Errorf("counts = %d/%d, want 2/2", result.Stats.LeftCount, result.Stats.RightCount)
	}

	svg, ok := result.Artifacts[FormatSVG]
	if !ok || !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Error("missing or malformed SVG artifact")
	}
	if data, ok := result.Artifacts[FormatJSON]; !ok || !bytes.HasPrefix(data, []byte("{")) {
		t.Error("missing or malformed JSON artifact")
	}
	if dot, ok := result.Artifacts[FormatDOT]; !ok || !strings.Contains(string(dot), "digraph") {
		t.Error("missing or malformed DOT artifact")
	}
}

func TestExecuteJSONInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flows.json")
	data := `{"records": [{"left": "a", "right": "x", "weight": 5}]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRunner(nil, quietLogger())
	result, err := r.Execute(context.Background(), Options{Input: path, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Stats.RecordCount != 1 {
		t.Errorf("RecordCount = %d, want 1", result.Stats.RecordCount)
	}
}

func TestExecuteUnsupportedInput(t *testing.T) {
	r := NewRunner(nil, quietLogger())
	_, err := r.Execute(context.Background(), Options{Input: "flows.xlsx", Logger: quietLogger()})
	if err == nil {
		t.Fatal("expected error for unsupported input type")
	}
	if !strings.Contains(err.Error(), "unsupported input type") {
		t.Errorf("error = %v", err)
	}
}

func TestExecuteInvalidOptions(t *testing.T) {
	r := NewRunner(nil, quietLogger())
	_, err := r.Execute(context.Background(), Options{Logger: quietLogger()})
	if err == nil || !strings.Contains(err.Error(), "input is required") {
		t.Errorf("error = %v, want input required", err)
	}
}

func TestExecuteLayoutErrorSurfaces(t *testing.T) {
	path := writeTempCSV(t, "left,right,weight\na,x,5\n")

	r := NewRunner(nil, quietLogger())
	_, err := r.Execute(context.Background(), Options{
		Input:     path,
		LeftOrder: []string{"a", "ghost"},
		Logger:    quietLogger(),
	})
	if err == nil {
		t.Fatal("expected error for mismatched explicit order")
	}
	if !strings.Contains(err.Error(), "layout:") {
		t.Errorf("error should name the failing stage: %v", err)
	}
}

func TestRunnerLoadOnly(t *testing.T) {
	path := writeTempCSV(t, "left,right,weight\na,x,5\nb,y,3\n")

	r := NewRunner(nil, quietLogger())
	opts := Options{Input: path, Logger: quietLogger()}
	recs, err := r.Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(recs) != 2 {
		t.Errorf("len(recs) = %d, want 2", len(recs))
	}
}

func TestLoadRefreshRefetches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("left,right,weight\nfresh,x,1\n"))
	}))
	defer srv.Close()

	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	url := srv.URL + "/flows.csv"
	key := cache.NewDefaultKeyer().HTTPKey("dataset", url)
	stale := []byte("left,right,weight\nstale,x,1\n")
	if err := store.Set(context.Background(), key, stale, time.Hour); err != nil {
		t.Fatal(err)
	}

	r := NewRunner(fetch.New(fetch.WithCache(store)), quietLogger())

	recs, err := r.Load(context.Background(), Options{Input: url, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if recs[0].Left != "stale" {
		t.Fatalf("left = %q, want the cached copy without refresh", recs[0].Left)
	}

	recs, err = r.Load(context.Background(), Options{Input: url, Refresh: true, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("Load(refresh) error = %v", err)
	}
	if recs[0].Left != "fresh" {
		t.Errorf("left = %q, refresh should bypass the cached copy", recs[0].Left)
	}
}
