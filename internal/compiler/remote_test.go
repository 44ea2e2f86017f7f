package compiler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteCompiler_SendsDocumentAndFlavor(t *testing.T) {
	var gotCommand, gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		gotCommand = r.URL.Query().Get("command")
		gotText = r.URL.Query().Get("text")
		_, _ = w.Write([]byte(fakePDF))
	}))
	defer srv.Close()

	doc := "\\section{R&D} 100% {x}"
	data, err := NewRemoteCompiler(srv.URL, "", 0).Compile(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, []byte(fakePDF), data)
	assert.Equal(t, DefaultRemoteFlavor, gotCommand)
	assert.Equal(t, doc, gotText)
}

func TestRemoteCompiler_ErrorBodyPreview(t *testing.T) {
	long := strings.Repeat("x", 2000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(long))
	}))
	defer srv.Close()

	_, err := NewRemoteCompiler(srv.URL, "xelatex", 100).Compile(context.Background(), "doc")
	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusBadRequest, remoteErr.Status)
	assert.Equal(t, strings.Repeat("x", 100)+"...", remoteErr.Body)
}

func TestRemoteCompiler_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewRemoteCompiler(url, "", 0).Compile(context.Background(), "doc")
	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, 0, remoteErr.Status)
	assert.Contains(t, err.Error(), "remote compile request failed")
}

func TestRemoteCompiler_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	_, err := NewRemoteCompiler(srv.URL, "", 0).Compile(context.Background(), "doc")
	assert.Error(t, err)
}

func TestPreviewBody_HTML(t *testing.T) {
	html := `<html><head><style>body{}</style></head><body><h1>Compilation failed</h1>
<pre>! Undefined control sequence.</pre><script>x()</script></body></html>`
	got := previewBody([]byte(html), "text/html; charset=utf-8", 500)
	assert.Equal(t, "Compilation failed ! Undefined control sequence.", got)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abc", 2))
	assert.Equal(t, "αβ...", truncate("αβγ", 2))
}
