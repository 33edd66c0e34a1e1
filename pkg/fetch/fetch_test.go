package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/flowband/flowband/pkg/cache"
	"github.com/flowband/flowband/pkg/dataset"
	"github.com/flowband/flowband/pkg/errors"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("left,right\na,x\n"))
	}))
	defer srv.Close()

	f := New()
	body, err := f.Fetch(context.Background(), srv.URL+"/data.csv", false)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(body) != "left,right\na,x\n" {
		t.Errorf("body = %q", body)
	}
}

func TestFetchInvalidURL(t *testing.T) {
	f := New()
	_, err := f.Fetch(context.Background(), "not-a-url", false)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
}

func TestFetchNotFound(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := New()
	_, err := f.Fetch(context.Background(), srv.URL+"/missing.csv", false)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeNotFound)
	}
	// 404 is permanent, never retried.
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	f := New()
	body, err := f.Fetch(context.Background(), srv.URL+"/data.csv", false)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(body) != "payload" {
		t.Errorf("body = %q", body)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestFetchUsesCache(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	f := New(WithCache(c), WithTTL(time.Hour))

	for i := 0; i < 3; i++ {
		body, err := f.Fetch(context.Background(), srv.URL+"/data.csv", false)
		if err != nil {
			t.Fatalf("Fetch() #%d error = %v", i, err)
		}
		if string(body) != "payload" {
			t.Errorf("body = %q", body)
		}
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("server calls = %d, want 1 (responses cached)", got)
	}
}

func TestDatasetCSV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("source,target,weight\na,x,5\nb,y,3\n"))
	}))
	defer srv.Close()

	f := New()
	recs, err := f.Dataset(context.Background(), srv.URL+"/flows.csv", dataset.Columns{}, false)
	if err != nil {
		t.Fatalf("Dataset() error = %v", err)
	}
	if len(recs) != 2 || recs[0].Weight != 5 {
		t.Errorf("records = %+v", recs)
	}
}

func TestDatasetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"records": [{"left": "a", "right": "x", "weight": 5}]}`))
	}))
	defer srv.Close()

	f := New()
	recs, err := f.Dataset(context.Background(), srv.URL+"/flows.json", dataset.Columns{}, false)
	if err != nil {
		t.Fatalf("Dataset() error = %v", err)
	}
	if len(recs) != 1 || recs[0].Left != "a" {
		t.Errorf("records = %+v", recs)
	}
}

func TestDatasetSniffsJSON(t *testing.T) {
	// No extension on the path; the body decides.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"records": [{"left": "a", "right": "x"}]}`))
	}))
	defer srv.Close()

	f := New()
	recs, err := f.Dataset(context.Background(), srv.URL+"/flows", dataset.Columns{}, false)
	if err != nil {
		t.Fatalf("Dataset() error = %v", err)
	}
	if recs[0].Weight != 1 {
		t.Errorf("weight = %v, want default 1", recs[0].Weight)
	}
}

func TestFetchRefreshBypassesCache(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte("fresh"))
	}))
	defer srv.Close()

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	f := New(WithCache(c), WithTTL(time.Hour))

	url := srv.URL + "/data.csv"
	key := cache.NewDefaultKeyer().HTTPKey("dataset", url)
	if err := c.Set(context.Background(), key, []byte("stale"), time.Hour); err != nil {
		t.Fatal(err)
	}

	// Without refresh the stale cached copy wins.
	body, err := f.Fetch(context.Background(), url, false)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(body) != "stale" {
		t.Fatalf("body = %q, want cached stale copy", body)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatal("cached fetch should not hit the server")
	}

	// Refresh ignores the cache and overwrites it.
	body, err = f.Fetch(context.Background(), url, true)
	if err != nil {
		t.Fatalf("Fetch(refresh) error = %v", err)
	}
	if string(body) != "fresh" {
		t.Errorf("body = %q, want fresh server copy", body)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("server calls = %d, want 1", got)
	}

	// The refreshed copy replaced the stale one.
	body, err = f.Fetch(context.Background(), url, false)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(body) != "fresh" {
		t.Errorf("body = %q, want refreshed cache entry", body)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("server calls = %d, want 1 (refresh result cached)", got)
	}
}
