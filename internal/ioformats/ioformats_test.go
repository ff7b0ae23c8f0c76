package ioformats

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadURLsCSV(t *testing.T) {
	path := writeTemp(t, "in.csv", "id,URL\n1,https://a.example/x\n2,\n3, https://b.example/y \n")
	urls, err := ReadURLs(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(urls) != 2 || urls[1] != "https://b.example/y" {
		t.Fatalf("unexpected urls: %#v", urls)
	}
}

func TestReadURLsNDJSONAndText(t *testing.T) {
	path := writeTemp(t, "in.ndjson", `{"url":"https://a.example/1"}`+"\n\nhttps://a.example/2\n")
	urls, err := ReadURLs(path)
	if err != nil || len(urls) != 2 || urls[0] != "https://a.example/1" {
		t.Fatalf("ndjson: %#v %v", urls, err)
	}

	path = writeTemp(t, "in.txt", "# news to check\nhttps://a.example/3\n")
	urls, err = ReadURLs(path)
	if err != nil || len(urls) != 1 {
		t.Fatalf("txt: %#v %v", urls, err)
	}
}

func TestReadURLsFallback(t *testing.T) {
	path := writeTemp(t, "urls", "https://a.example/1\nhttps://a.example/2\n")
	urls, err := ReadURLs(path)
	if err != nil || len(urls) != 2 {
		t.Fatalf("fallback: %#v %v", urls, err)
	}
}

func TestReadURLsEmpty(t *testing.T) {
	if _, err := ReadURLs(writeTemp(t, "empty.txt", "\n# nothing\n")); err == nil {
		t.Fatal("expected error for empty input")
	}
}

const rss = `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Wire</title>
<item><title>One</title><link>https://news.example/one</link></item>
<item><title>Dup</title><link>https://news.example/one</link></item>
<item><title>No link</title></item>
<item><title>Two</title><link>https://news.example/two</link></item>
</channel></rss>`

func TestReadFeed(t *testing.T) {
	var ua string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rss)
	}))
	defer ts.Close()

	links, err := ReadFeed(context.Background(), ts.URL, "test-agent")
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if strings.Join(links, ",") != "https://news.example/one,https://news.example/two" {
		t.Fatalf("links: %#v", links)
	}
	if ua != "test-agent" {
		t.Fatalf("user agent = %q", ua)
	}
}

func TestNDJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)
	_ = w.Write(map[string]string{"url": "a"})
	_ = w.Write(map[string]string{"url": "b"})
	if buf.String() != "{\"url\":\"a\"}\n{\"url\":\"b\"}\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
