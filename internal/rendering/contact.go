package rendering

import (
	"strings"

	"github.com/jonathan/portfolio/internal/types"
)

// BuildContactLine joins the title, phone, email and profile links with
// LinkDelimiter. Empty entries are left out.
func BuildContactLine(r *types.Resume) string {
	if r == nil {
		return ""
	}

	var parts []string
	if s := strings.TrimSpace(r.Title); s != "" {
		parts = append(parts, EscapeLaTeX(s))
	}
	if s := strings.TrimSpace(r.Phone); s != "" {
		parts = append(parts, EscapeLaTeX(s))
	}
	if s := strings.TrimSpace(r.Email); s != "" {
		parts = append(parts, href("mailto:"+s, s))
	}
	for _, profile := range []string{r.LinkedIn, r.GitHub, r.Website} {
		if s := strings.TrimSpace(profile); s != "" {
			parts = append(parts, href(WithScheme(s), DisplayURL(s)))
		}
	}
	return strings.Join(parts, LinkDelimiter)
}
