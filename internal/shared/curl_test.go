package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseCurlCommand(t *testing.T) {
	t.Run("extracts single-quoted headers", func(t *testing.T) {
		cmd := `curl 'http://backend:5000/api/styles' \
  -H 'Accept: application/json' \
  -H 'Authorization: Bearer token123'`

		parsed, err := ParseCurlCommand([]byte(cmd))
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}

		if parsed.Headers["Accept"] != "application/json" {
			t.Errorf("unexpected Accept header %q", parsed.Headers["Accept"])
		}
		if parsed.Headers["Authorization"] != "Bearer token123" {
			t.Errorf("unexpected Authorization header %q", parsed.Headers["Authorization"])
		}
	})

	t.Run("extracts double-quoted headers", func(t *testing.T) {
		cmd := `curl "http://backend:5000/health" -H "X-Debug: 1"`

		parsed, err := ParseCurlCommand([]byte(cmd))
		if err != nil {
			t.Fatal(err)
		}

		if parsed.Headers["X-Debug"] != "1" {
			t.Errorf("unexpected header %q", parsed.Headers["X-Debug"])
		}
	})

	t.Run("a cookie header becomes the cookie", func(t *testing.T) {
		cmd := `curl 'http://backend:5000/' -H 'Cookie: session=abc123'`

		parsed, err := ParseCurlCommand([]byte(cmd))
		if err != nil {
			t.Fatal(err)
		}

		if parsed.Cookie != "session=abc123" {
			t.Errorf("unexpected cookie %q", parsed.Cookie)
		}
		if _, present := parsed.Headers["Cookie"]; present {
			t.Error("expected cookie kept out of the header map")
		}
	})

	t.Run("the -b flag wins over a cookie header", func(t *testing.T) {
		cmd := `curl 'http://backend:5000/' -H 'Cookie: old=1' -b 'session=abc123'`

		parsed, err := ParseCurlCommand([]byte(cmd))
		if err != nil {
			t.Fatal(err)
		}

		if parsed.Cookie != "session=abc123" {
			t.Errorf("unexpected cookie %q", parsed.Cookie)
		}
	})

	t.Run("malformed header lines are skipped", func(t *testing.T) {
		cmd := `curl 'http://backend:5000/' -H 'no-colon-here' -H 'Valid: yes'`

		parsed, err := ParseCurlCommand([]byte(cmd))
		if err != nil {
			t.Fatal(err)
		}

		if len(parsed.Headers) != 1 || parsed.Headers["Valid"] != "yes" {
			t.Errorf("unexpected headers %v", parsed.Headers)
		}
	})
}

func TestCurlHeadersMerged(t *testing.T) {
	t.Run("includes the cookie", func(t *testing.T) {
		headers := &CurlHeaders{
			Headers: map[string]string{"Accept": "application/json"},
			Cookie:  "session=abc",
		}

		merged := headers.Merged()

		if merged["Accept"] != "application/json" || merged["Cookie"] != "session=abc" {
			t.Errorf("unexpected merged headers %v", merged)
		}
	})

	t.Run("omits an empty cookie", func(t *testing.T) {
		headers := &CurlHeaders{Headers: map[string]string{"Accept": "text/html"}}

		merged := headers.Merged()

		if _, present := merged["Cookie"]; present {
			t.Error("expected no Cookie key")
		}
	})
}

func TestParseCurlFile(t *testing.T) {
	t.Run("reads and parses the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "request.sh")
		if err := os.WriteFile(path, []byte(`curl 'http://x/' -H 'A: 1'`), 0644); err != nil {
			t.Fatal(err)
		}

		parsed, err := ParseCurlFile(path)
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if parsed.Headers["A"] != "1" {
			t.Errorf("unexpected headers %v", parsed.Headers)
		}
	})

	t.Run("fails on a missing file", func(t *testing.T) {
		if _, err := ParseCurlFile(filepath.Join(t.TempDir(), "missing.sh")); err == nil {
			t.Error("expected an error")
		}
	})
}
