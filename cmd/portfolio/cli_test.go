package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio/internal/buildinfo"
	"github.com/jonathan/portfolio/internal/config"
	"github.com/jonathan/portfolio/internal/server"
)

const sampleResume = `{
  "name": "Jane O'Brien / CV",
  "title": "Software Engineer",
  "email": "jane@example.com",
  "github": "https://github.com/jane",
  "education": [],
  "experience": [
    {"company": "Acme & Co", "position": "Engineer", "startDate": "2021", "achievements": ["Cut costs by 50%"]}
  ]
}`

// isolateEnv clears every variable the config reads so a developer .env
// cannot leak backends into tests.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "CORS_ORIGIN", "JWT_SECRET", "JWT_EXPIRATION_HOURS",
		"LATEX_COMPILER_PATH", "LATEX_REMOTE_URL", "LATEX_REMOTE_DISABLED",
		"EXPORT_TEMP_DIR", "TEMPLATES_DIR", "REDIS_URL", "ARCHIVE_BUCKET",
		"DATABASE_URL", "RATE_LIMIT_ENABLED", "RATE_LIMIT_WHITELIST",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("TEMPLATES_DIR", filepath.Join("..", "..", "templates"))
	t.Setenv("EXPORT_TEMP_DIR", t.TempDir())
}

func runCmd(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeResume(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleResume), 0o644))
	return path
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runCmd(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "version: "+buildinfo.Version)
	assert.Contains(t, out, "runtime: "+buildinfo.Runtime())
}

func TestVersionFlag(t *testing.T) {
	out, _, err := runCmd(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "portfolio version "+buildinfo.Version)
}

func TestRenderCommand(t *testing.T) {
	isolateEnv(t)

	out, _, err := runCmd(t, "", "render", "--in", writeResume(t))
	require.NoError(t, err)

	assert.Contains(t, out, `\begin{document}`)
	assert.Contains(t, out, `Jane O'Brien / CV`)
	assert.Contains(t, out, `Acme \& Co`)
	assert.Contains(t, out, `Cut costs by 50\%`)
	assert.Contains(t, out, "2021 -- Present")
	assert.Contains(t, out, `\href{mailto:jane@example.com}`)
	assert.NotContains(t, out, "{{", "every placeholder is substituted")
}

func TestRenderCommand_Stdin(t *testing.T) {
	isolateEnv(t)
	outFile := filepath.Join(t.TempDir(), "resume.tex")

	_, _, err := runCmd(t, sampleResume, "render", "--in", "-", "--out", outFile)
	require.NoError(t, err)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `\section{Experience}`)
}

func TestRenderCommand_MissingInclude(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	main, err := os.ReadFile(filepath.Join("..", "..", "templates", "resume.tex"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "resume.tex"), main, 0o644))
	t.Setenv("TEMPLATES_DIR", dir)

	_, stderr, err := runCmd(t, "", "render", "--in", writeResume(t))
	require.Error(t, err)
	assert.Contains(t, stderr, "EXPORT FAILED")
	assert.Contains(t, stderr, "glyphtounicode.tex")
}

func TestRenderCommand_InvalidResume(t *testing.T) {
	isolateEnv(t)

	_, _, err := runCmd(t, `{"title":"no name"}`, "render", "--in", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid resume")
}

func TestRenderCommand_RequiresIn(t *testing.T) {
	_, _, err := runCmd(t, "", "render")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "in" not set`)
}

func TestExportCommand_RemoteFallback(t *testing.T) {
	isolateEnv(t)
	pdf := []byte("%PDF-1.4\n%%EOF\n")
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pdflatex", r.URL.Query().Get("command"))
		assert.Contains(t, r.URL.Query().Get("text"), `\begin{document}`)
		_, _ = w.Write(pdf)
	}))
	defer remote.Close()
	t.Setenv("LATEX_COMPILER_PATH", filepath.Join(t.TempDir(), "no-such-tectonic"))
	t.Setenv("LATEX_REMOTE_URL", remote.URL)
	outDir := t.TempDir()

	out, _, err := runCmd(t, "", "export", "--in", writeResume(t), "--dir", outDir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "Jane_O_Brien___CV.pdf"))
	require.NoError(t, err)
	assert.Equal(t, pdf, data)
	assert.Contains(t, out, "EXPORT COMPLETE")
	assert.Contains(t, out, "remote")
}

func TestExportCommand_FailurePrintsDiagnostic(t *testing.T) {
	isolateEnv(t)
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
	}))
	defer remote.Close()
	t.Setenv("LATEX_COMPILER_PATH", filepath.Join(t.TempDir(), "no-such-tectonic"))
	t.Setenv("LATEX_REMOTE_URL", remote.URL)

	out, _, err := runCmd(t, "", "export", "--in", writeResume(t), "--dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export failed")
	assert.Contains(t, out, "EXPORT FAILED")
	assert.Contains(t, out, "compiler not found")
	assert.Contains(t, out, "HTTP 503")
}

func TestTokenCommand(t *testing.T) {
	isolateEnv(t)
	secret := "cli-test-secret-with-enough-length"
	t.Setenv("JWT_SECRET", secret)

	out, _, err := runCmd(t, "", "token", "--subject", "owner")
	require.NoError(t, err)

	claims, err := server.NewJWTService(&config.JWTConfig{Secret: secret, ExpirationHours: 24}).
		ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "owner", claims.Subject)
}

func TestTokenCommand_NoSecret(t *testing.T) {
	isolateEnv(t)

	_, _, err := runCmd(t, "", "token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no JWT secret configured")
}

func TestImportCommand_NoStore(t *testing.T) {
	isolateEnv(t)

	_, _, err := runCmd(t, "", "import", "--in", writeResume(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no resume store configured")
}

func TestConfigFlag_BadFile(t *testing.T) {
	isolateEnv(t)

	_, _, err := runCmd(t, "", "render", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "--in", writeResume(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrConfigNotFound)
}
