package compiler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Remote defaults.
const (
	DefaultRemoteURL     = "https://latexonline.cc/compile"
	DefaultRemoteFlavor  = "pdflatex"
	DefaultPreviewLimit  = 500
	maxRemoteArtifact    = 32 << 20
	maxRemoteErrorBuffer = 64 << 10
)

// RemoteClient compiles a document on a remote service.
type RemoteClient interface {
	Compile(ctx context.Context, document string) ([]byte, error)
}

// RemoteError describes a failed remote compilation. Status is zero when the
// service could not be reached.
type RemoteError struct {
	Status int
	Body   string
	Cause  error
}

func (e *RemoteError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("remote compile request failed: %v", e.Cause)
	}
	return fmt.Sprintf("remote compile returned status %d", e.Status)
}

func (e *RemoteError) Unwrap() error {
	return e.Cause
}

// RemoteCompiler submits documents to a compilation-as-a-service endpoint
// with a single GET carrying the document text and compiler flavor. There is
// no retry.
type RemoteCompiler struct {
	BaseURL      string
	Flavor       string
	PreviewLimit int
	Client       *http.Client
}

// NewRemoteCompiler creates a RemoteCompiler, filling in defaults for empty
// values.
func NewRemoteCompiler(baseURL, flavor string, previewLimit int) *RemoteCompiler {
	if baseURL == "" {
		baseURL = DefaultRemoteURL
	}
	if flavor == "" {
		flavor = DefaultRemoteFlavor
	}
	if previewLimit <= 0 {
		previewLimit = DefaultPreviewLimit
	}
	return &RemoteCompiler{
		BaseURL:      baseURL,
		Flavor:       flavor,
		PreviewLimit: previewLimit,
		Client:       &http.Client{Timeout: 2 * time.Minute},
	}
}

// Compile sends document to the remote service and returns the PDF bytes.
func (c *RemoteCompiler) Compile(ctx context.Context, document string) ([]byte, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, &RemoteError{Cause: fmt.Errorf("invalid remote url: %w", err)}
	}
	q := u.Query()
	q.Set("command", c.Flavor)
	q.Set("text", document)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &RemoteError{Cause: err}
	}
	req.Header.Set("Accept", "application/pdf")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, &RemoteError{Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxRemoteErrorBuffer))
		return nil, &RemoteError{
			Status: resp.StatusCode,
			Body:   previewBody(raw, resp.Header.Get("Content-Type"), c.PreviewLimit),
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteArtifact+1))
	if err != nil {
		return nil, &RemoteError{Status: resp.StatusCode, Cause: fmt.Errorf("failed to read response body: %w", err)}
	}
	if len(data) > maxRemoteArtifact {
		return nil, &RemoteError{Status: resp.StatusCode, Cause: errors.New("remote artifact exceeds size limit")}
	}
	if len(data) == 0 {
		return nil, &RemoteError{Status: resp.StatusCode, Cause: errors.New("remote returned an empty body")}
	}
	return data, nil
}

// previewBody reduces an error body to at most limit characters. HTML error
// pages are reduced to their visible text first.
func previewBody(raw []byte, contentType string, limit int) string {
	text := string(raw)
	if strings.Contains(contentType, "html") || strings.HasPrefix(strings.TrimSpace(text), "<") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(text)); err == nil {
			doc.Find("script, style").Remove()
			text = doc.Text()
		}
	}
	text = strings.Join(strings.Fields(text), " ")
	return truncate(text, limit)
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
