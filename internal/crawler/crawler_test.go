
package crawler

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetchHTML(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(200)
		_, _ = w.Write([]byte("<html><title>x</title></html>"))
	}))
	defer ts.Close()

	client := NewHTTPClient(5*time.Second, 2*time.Second, 1024)
	resp, err := client.Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("fetch err: %v", err)
	}
	defer resp.Body.Close()
	if resp.FinalURL == "" || resp.ContentType == "" || resp.Elapsed == 0 {
		t.Fatal("unexpected empty values")
	}
	if gotUA != BrowserUserAgent {
		t.Fatalf("user agent = %q", gotUA)
	}
}

func TestFetchNotFound(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	client := NewHTTPClient(5*time.Second, 2*time.Second, 1024)
	_, err := client.Fetch(context.Background(), ts.URL+"/missing")
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("want *FetchError, got %T %v", err, err)
	}
	if fe.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", fe.StatusCode)
	}
	if !strings.Contains(fe.Error(), "404") {
		t.Fatalf("error should carry status context: %q", fe.Error())
	}
}

func TestFetchInvalidURL(t *testing.T) {
	client := NewHTTPClient(time.Second, time.Second, 1024)
	for _, u := range []string{"", "not a url", "ftp://example.com/x"} {
		_, err := client.Fetch(context.Background(), u)
		var fe *FetchError
		if !errors.As(err, &fe) || fe.StatusCode != 0 {
			t.Fatalf("%q: want transport-level FetchError, got %v", u, err)
		}
	}
}

func TestFetchGzipAndCap(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		_, _ = gz.Write([]byte(strings.Repeat("a", 100)))
		_ = gz.Close()
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write(buf.Bytes())
	}))
	defer ts.Close()

	client := NewHTTPClient(5*time.Second, 2*time.Second, 10)
	resp, err := client.Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("fetch err: %v", err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	if string(b) != strings.Repeat("a", 10) {
		t.Fatalf("want capped 10 bytes, got %q", b)
	}
}
