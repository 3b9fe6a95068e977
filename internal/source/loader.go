// Package source loads input texts from files, standard input and web pages.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/aspecta/internal/model"
)

// ErrDisallowed is returned when robots.txt forbids fetching a URL
var ErrDisallowed = errors.New("disallowed by robots.txt")

// Document is a loaded input text
type Document struct {
	Source string // File path, URL or "-"
	Text   string
}

// Limiter throttles requests per host
type Limiter interface {
	Wait(ctx context.Context, rawURL string) error
}

// Loader reads documents from local files and URLs
type Loader struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *RobotsChecker
	limiter    Limiter
	stdin      io.Reader
}

// NewLoader creates a loader from the HTTP configuration. Robots.txt is
// honored unless cfg.IgnoreRobots is set.
func NewLoader(cfg model.HTTPConfig, limiter Limiter) *Loader {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	maxBytes := cfg.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = 2_000_000
	}

	l := &Loader{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  maxBytes,
		limiter:   limiter,
		stdin:     os.Stdin,
	}
	if !cfg.IgnoreRobots {
		l.robots = NewRobotsChecker(cfg.UserAgent, timeout)
	}
	return l
}

// Load reads a document from a URL, "-" for standard input, or a file path
func (l *Loader) Load(ctx context.Context, src string) (*Document, error) {
	switch {
	case IsURL(src):
		return l.Fetch(ctx, src)
	case src == "-":
		return l.read("-", l.stdin)
	default:
		f, err := os.Open(src)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer func() { _ = f.Close() }()
		return l.read(src, f)
	}
}

func (l *Loader) read(src string, r io.Reader) (*Document, error) {
	body, err := io.ReadAll(io.LimitReader(r, l.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	text := string(body)
	if strings.HasSuffix(strings.ToLower(src), ".html") || strings.HasSuffix(strings.ToLower(src), ".htm") {
		if text, err = TextFromHTML(text); err != nil {
			return nil, fmt.Errorf("parse html: %w", err)
		}
	}

	return &Document{Source: src, Text: strings.TrimSpace(text)}, nil
}

// Fetch retrieves a web page and returns its visible text
func (l *Loader) Fetch(ctx context.Context, rawURL string) (*Document, error) {
	if l.robots != nil {
		allowed, _, err := l.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, fmt.Errorf("%w: %s", ErrDisallowed, rawURL)
		}
	}

	if l.limiter != nil {
		if err := l.limiter.Wait(ctx, rawURL); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", l.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ru-RU,ru;q=0.9,en;q=0.8")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, l.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	text := string(body)
	if isHTML(resp.Header.Get("Content-Type")) {
		if text, err = TextFromHTML(text); err != nil {
			return nil, fmt.Errorf("parse html: %w", err)
		}
	}

	return &Document{Source: resp.Request.URL.String(), Text: strings.TrimSpace(text)}, nil
}

// IsURL reports whether src is an http(s) URL
func IsURL(src string) bool {
	u, err := url.Parse(src)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func isHTML(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

// NewProxyFunc creates a proxy function based on configuration.
// If no proxy URLs are provided, falls back to environment variables.
func NewProxyFunc(httpProxy, httpsProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
