package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/portfolio/internal/types"
)

// PresentMarker replaces an absent end date.
const PresentMarker = "Present"

const (
	subHeadingListStart = "\\resumeSubHeadingListStart\n"
	subHeadingListEnd   = "\\resumeSubHeadingListEnd\n"
	itemListStart       = "      \\resumeItemListStart\n"
	itemListEnd         = "      \\resumeItemListEnd\n"
)

// dateRange formats "start -- end" with end defaulting to Present. Dates are
// emitted as given, after escaping. With no dates at all it returns "".
func dateRange(start, end string) string {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	if start == "" && end == "" {
		return ""
	}
	if end == "" {
		end = PresentMarker
	} else {
		end = EscapeLaTeX(end)
	}
	if start == "" {
		return end
	}
	return EscapeLaTeX(start) + " -- " + end
}

// writeItems writes the bullet block. The block is always emitted so the
// surrounding markup stays balanced when there are no bullets.
func writeItems(b *strings.Builder, items []string) {
	b.WriteString(itemListStart)
	for _, item := range escapeAll(items) {
		fmt.Fprintf(b, "        \\resumeItem{%s}\n", item)
	}
	b.WriteString(itemListEnd)
}

func writeSubheading(b *strings.Builder, topLeft, topRight, bottomLeft, bottomRight string) {
	fmt.Fprintf(b, "    \\resumeSubheading\n      {%s}{%s}\n      {%s}{%s}\n",
		topLeft, topRight, bottomLeft, bottomRight)
}

func writeProjectHeading(b *strings.Builder, left, right string) {
	fmt.Fprintf(b, "    \\resumeProjectHeading\n      {%s}{%s}\n", left, right)
}

// joinNonEmpty joins the non-blank parts with sep.
func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// RenderEducation renders the education section.
func RenderEducation(entries []types.Education) string {
	var b strings.Builder
	b.WriteString(subHeadingListStart)
	for _, e := range entries {
		degree := EscapeLaTeX(e.Degree)
		if e.Field != "" {
			degree = joinNonEmpty(" in ", degree, EscapeLaTeX(e.Field))
		}
		if e.GPA != "" {
			degree = joinNonEmpty(" -- ", degree, "GPA: "+EscapeLaTeX(e.GPA))
		}
		writeSubheading(&b,
			EscapeLaTeX(e.Institution)+inlineLinks(e.Links),
			EscapeLaTeX(e.Location),
			degree,
			dateRange(e.StartDate, e.EndDate),
		)
		writeItems(&b, e.Achievements)
	}
	b.WriteString(subHeadingListEnd)
	return b.String()
}

// RenderExperience renders the experience section. Technologies, when present,
// are listed as a final bullet.
func RenderExperience(entries []types.Experience) string {
	var b strings.Builder
	b.WriteString(subHeadingListStart)
	for _, e := range entries {
		writeSubheading(&b,
			EscapeLaTeX(e.Position),
			dateRange(e.StartDate, e.EndDate),
			EscapeLaTeX(e.Company)+inlineLinks(e.Links),
			EscapeLaTeX(e.Location),
		)
		items := e.Achievements
		if tech := nonBlank(e.Technologies); len(tech) > 0 {
			items = append(append([]string(nil), items...), "Technologies: "+strings.Join(tech, ", "))
		}
		writeItems(&b, items)
	}
	b.WriteString(subHeadingListEnd)
	return b.String()
}

// RenderProjects renders the projects section. The description becomes the
// first bullet.
func RenderProjects(entries []types.ProjectRef) string {
	var b strings.Builder
	b.WriteString(subHeadingListStart)
	for _, p := range entries {
		heading := `\textbf{` + EscapeLaTeX(p.Title) + `}`
		if tech := escapeAll(p.Technologies); len(tech) > 0 {
			heading += LinkDelimiter + `\emph{` + strings.Join(tech, ", ") + `}`
		}
		heading += inlineLinks(p.Links)
		writeProjectHeading(&b, heading, dateRange(p.StartDate, p.EndDate))

		items := p.Achievements
		if strings.TrimSpace(p.Description) != "" {
			items = append([]string{p.Description}, items...)
		}
		writeItems(&b, items)
	}
	b.WriteString(subHeadingListEnd)
	return b.String()
}

// RenderSkills renders the technical skills section as one line per category.
func RenderSkills(categories []types.SkillCategory) string {
	var b strings.Builder
	b.WriteString(" \\begin{itemize}[leftmargin=0.15in, label={}]\n")
	b.WriteString("    \\small{\\item{\n")
	for i, c := range categories {
		fmt.Fprintf(&b, "     \\textbf{%s}{: %s}", EscapeLaTeX(c.Category), strings.Join(escapeAll(c.Skills), ", "))
		if i < len(categories)-1 {
			b.WriteString(` \\`)
		}
		b.WriteString("\n")
	}
	b.WriteString("    }}\n")
	b.WriteString(" \\end{itemize}\n")
	return b.String()
}

// RenderExtracurriculars renders clubs and activities.
func RenderExtracurriculars(entries []types.Extracurricular) string {
	var b strings.Builder
	b.WriteString(subHeadingListStart)
	for _, e := range entries {
		writeSubheading(&b,
			EscapeLaTeX(e.Title),
			dateRange(e.StartDate, e.EndDate),
			EscapeLaTeX(e.Organization)+inlineLinks(e.Links),
			EscapeLaTeX(e.Location),
		)
		writeItems(&b, e.Achievements)
	}
	b.WriteString(subHeadingListEnd)
	return b.String()
}

// RenderVolunteer renders volunteer roles.
func RenderVolunteer(entries []types.VolunteerWork) string {
	var b strings.Builder
	b.WriteString(subHeadingListStart)
	for _, v := range entries {
		writeSubheading(&b,
			EscapeLaTeX(v.Organization)+inlineLinks(v.Links),
			dateRange(v.StartDate, v.EndDate),
			EscapeLaTeX(v.Role),
			EscapeLaTeX(v.Location),
		)
		writeItems(&b, v.Achievements)
	}
	b.WriteString(subHeadingListEnd)
	return b.String()
}

// RenderCertifications renders certifications. A certificate without an
// expiry date is shown with its issue date only.
func RenderCertifications(entries []types.Certification) string {
	var b strings.Builder
	b.WriteString(subHeadingListStart)
	for _, c := range entries {
		heading := joinNonEmpty(LinkDelimiter, `\textbf{`+EscapeLaTeX(c.Name)+`}`, emph(c.Issuer))
		dates := joinNonEmpty(" -- ", EscapeLaTeX(c.IssueDate), EscapeLaTeX(c.ExpiryDate))
		writeProjectHeading(&b, heading+inlineLinks(c.Links), dates)

		var items []string
		if strings.TrimSpace(c.CredentialID) != "" {
			items = append(items, "Credential ID: "+c.CredentialID)
		}
		writeItems(&b, items)
	}
	b.WriteString(subHeadingListEnd)
	return b.String()
}

// RenderAwards renders honors and prizes.
func RenderAwards(entries []types.Award) string {
	var b strings.Builder
	b.WriteString(subHeadingListStart)
	for _, a := range entries {
		heading := joinNonEmpty(LinkDelimiter, `\textbf{`+EscapeLaTeX(a.Title)+`}`, emph(a.Issuer))
		writeProjectHeading(&b, heading+inlineLinks(a.Links), EscapeLaTeX(a.Date))
		writeItems(&b, []string{a.Description})
	}
	b.WriteString(subHeadingListEnd)
	return b.String()
}

func emph(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return `\emph{` + EscapeLaTeX(s) + `}`
}
