package rendering

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio/internal/types"
)

func TestLoadTemplate_NotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.tex")
	_, err := LoadTemplate(path)
	require.Error(t, err)

	var tmplErr *TemplateError
	require.ErrorAs(t, err, &tmplErr)
	assert.Equal(t, path, tmplErr.Path)
	assert.Contains(t, err.Error(), "template file not found")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRenderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.tex")
	require.NoError(t, os.WriteFile(path, []byte(`\name{{{NAME}}}`), 0o644))

	got, err := RenderFile(path, &types.Resume{Name: "Jane_Doe"})
	require.NoError(t, err)
	assert.Equal(t, `\name{Jane\_Doe}`, got)
}

func TestRenderFile_NilResume(t *testing.T) {
	_, err := RenderFile("unused.tex", nil)
	var renderErr *RenderError
	assert.ErrorAs(t, err, &renderErr)
}
