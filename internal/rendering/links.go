package rendering

import (
	"net/url"
	"strings"

	"github.com/jonathan/portfolio/internal/types"
)

// LinkDelimiter separates inline links and contact entries.
const LinkDelimiter = ` $|$ `

// WithScheme prepends https:// to URLs that carry no scheme.
func WithScheme(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.Contains(raw, "://") || strings.HasPrefix(raw, "mailto:") {
		return raw
	}
	return "https://" + raw
}

// DisplayURL strips the protocol, a leading "www." and any trailing slash.
func DisplayURL(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	s = strings.TrimPrefix(s, "www.")
	return strings.TrimRight(s, "/")
}

// HostLabel returns the hostname of raw without "www.", used when a link has
// no label. Unparseable input falls back to DisplayURL.
func HostLabel(raw string) string {
	u, err := url.Parse(WithScheme(raw))
	if err != nil || u.Hostname() == "" {
		return DisplayURL(raw)
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// href renders a hyperlink. Both the target and the label are escaped.
func href(target, label string) string {
	return `\href{` + EscapeLaTeX(target) + `}{\underline{` + EscapeLaTeX(label) + `}}`
}

func renderLink(l types.Link) string {
	label := strings.TrimSpace(l.Label)
	if label == "" {
		label = HostLabel(l.URL)
	}
	return href(WithScheme(l.URL), label)
}

// inlineLinks renders links for appending to a heading. It returns an empty
// string when there is nothing to show, otherwise the links prefixed by the
// delimiter.
func inlineLinks(links []types.Link) string {
	var parts []string
	for _, l := range links {
		if strings.TrimSpace(l.URL) == "" {
			continue
		}
		parts = append(parts, renderLink(l))
	}
	if len(parts) == 0 {
		return ""
	}
	return LinkDelimiter + strings.Join(parts, LinkDelimiter)
}
