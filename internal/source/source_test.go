package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/aspecta/internal/model"
)

const page = `<html><head><title>Аннотация</title><style>p{}</style></head>
<body>
<nav>Главная | Статьи</nav>
<h1>Тепловое воздействие</h1>
<p>Предложен   новый метод (WCMP).</p>
<script>var x = 1;</script>
<p>Точность составила 95%.</p>
</body></html>`

func testConfig() model.HTTPConfig {
	return model.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "Aspecta/0.1 (+https://example.com)", MaxBodyBytes: 1 << 20}
}

func TestTextFromHTML(t *testing.T) {
	text, err := TextFromHTML(page)
	if err != nil {
		t.Fatal(err)
	}

	want := "Тепловое воздействие\nПредложен новый метод (WCMP).\nТочность составила 95%."
	if text != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, text)
	}
}

func newSite(t *testing.T, robots string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			if robots == "" {
				http.NotFound(w, r)
				return
			}
			_, _ = w.Write([]byte(robots))
		case "/abstract", "/private/abstract":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(page))
		case "/plain":
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte("  Метод, подход.  "))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestLoader_Fetch(t *testing.T) {
	server := newSite(t, "")
	defer server.Close()

	l := NewLoader(testConfig(), nil)

	doc, err := l.Fetch(context.Background(), server.URL+"/abstract")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if !strings.Contains(doc.Text, "Предложен новый метод (WCMP).") {
		t.Errorf("expected visible text, got %q", doc.Text)
	}
	if strings.Contains(doc.Text, "var x") || strings.Contains(doc.Text, "Главная") {
		t.Errorf("expected scripts and navigation dropped, got %q", doc.Text)
	}

	doc, err = l.Fetch(context.Background(), server.URL+"/plain")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Text != "Метод, подход." {
		t.Errorf("expected plain text kept, got %q", doc.Text)
	}

	if _, err := l.Fetch(context.Background(), server.URL+"/missing"); err == nil {
		t.Error("expected error for 404")
	}
}

func TestLoader_Robots(t *testing.T) {
	server := newSite(t, "User-agent: Aspecta\nDisallow: /private/\n")
	defer server.Close()

	l := NewLoader(testConfig(), nil)

	if _, err := l.Fetch(context.Background(), server.URL+"/abstract"); err != nil {
		t.Errorf("expected allowed path, got %v", err)
	}

	_, err := l.Fetch(context.Background(), server.URL+"/private/abstract")
	if !errors.Is(err, ErrDisallowed) {
		t.Errorf("expected ErrDisallowed, got %v", err)
	}

	cfg := testConfig()
	cfg.IgnoreRobots = true
	if _, err := NewLoader(cfg, nil).Fetch(context.Background(), server.URL+"/private/abstract"); err != nil {
		t.Errorf("expected robots ignored, got %v", err)
	}
}

type recordingLimiter struct{ urls []string }

func (l *recordingLimiter) Wait(ctx context.Context, rawURL string) error {
	l.urls = append(l.urls, rawURL)
	return nil
}

func TestLoader_Load(t *testing.T) {
	server := newSite(t, "")
	defer server.Close()

	dir := t.TempDir()
	textPath := filepath.Join(dir, "abstract.txt")
	htmlPath := filepath.Join(dir, "abstract.html")
	if err := os.WriteFile(textPath, []byte("Метод, подход.\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(htmlPath, []byte(page), 0644); err != nil {
		t.Fatal(err)
	}

	limiter := &recordingLimiter{}
	l := NewLoader(testConfig(), limiter)
	l.stdin = strings.NewReader("Из stdin")

	tests := []struct {
		src      string
		contains string
	}{
		{textPath, "Метод, подход."},
		{htmlPath, "Точность составила 95%."},
		{"-", "Из stdin"},
		{server.URL + "/abstract", "Тепловое воздействие"},
	}

	for _, tt := range tests {
		doc, err := l.Load(context.Background(), tt.src)
		if err != nil {
			t.Fatalf("Load(%s) failed: %v", tt.src, err)
		}
		if !strings.Contains(doc.Text, tt.contains) {
			t.Errorf("Load(%s): expected %q in %q", tt.src, tt.contains, doc.Text)
		}
	}

	if len(limiter.urls) != 1 {
		t.Errorf("expected only the URL to be throttled, got %v", limiter.urls)
	}

	if _, err := l.Load(context.Background(), filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestIsURL(t *testing.T) {
	if !IsURL("https://example.com/a") || IsURL("abstract.txt") || IsURL("ftp://example.com") || IsURL("-") {
		t.Error("unexpected IsURL result")
	}
}

func TestProductToken(t *testing.T) {
	if got := productToken("Aspecta/0.1 (+https://example.com)"); got != "Aspecta" {
		t.Errorf("expected Aspecta, got %s", got)
	}
	if got := productToken(""); got != "" {
		t.Errorf("expected empty, got %s", got)
	}
}
