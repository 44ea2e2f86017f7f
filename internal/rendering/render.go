package rendering

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jonathan/portfolio/internal/types"
)

// LoadTemplate reads the placeholder template at path.
func LoadTemplate(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &TemplateError{
				Path:    path,
				Message: fmt.Sprintf("template file not found: %s", path),
				Cause:   err,
			}
		}
		return "", &TemplateError{
			Path:    path,
			Message: fmt.Sprintf("failed to read template file: %s", path),
			Cause:   err,
		}
	}
	return string(content), nil
}

// RenderFile loads the template at templatePath and composes r into it.
func RenderFile(templatePath string, r *types.Resume) (string, error) {
	if r == nil {
		return "", &RenderError{Message: "resume is nil"}
	}
	tmpl, err := LoadTemplate(templatePath)
	if err != nil {
		return "", err
	}
	return Compose(tmpl, r), nil
}
