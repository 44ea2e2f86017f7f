package rendering

import (
	"strings"

	"github.com/jonathan/portfolio/internal/types"
)

// Template placeholders. Each may appear any number of times.
const (
	PlaceholderName             = "{{NAME}}"
	PlaceholderContact          = "{{CONTACT}}"
	PlaceholderSummary          = "{{SUMMARY}}"
	PlaceholderEducation        = "{{EDUCATION}}"
	PlaceholderExperience       = "{{EXPERIENCE}}"
	PlaceholderProjects         = "{{PROJECTS}}"
	PlaceholderSkills           = "{{SKILLS}}"
	PlaceholderExtracurriculars = "{{EXTRACURRICULARS}}"
	PlaceholderVolunteer        = "{{VOLUNTEER}}"
	PlaceholderCertifications   = "{{CERTIFICATIONS}}"
	PlaceholderAwards           = "{{AWARDS}}"
)

// Fragments renders every present section of r keyed by its placeholder.
// Sections that are nil have no entry; an empty slice yields the section's
// empty structure.
func Fragments(r *types.Resume) map[string]string {
	f := map[string]string{
		PlaceholderName:    EscapeLaTeX(r.Name),
		PlaceholderContact: BuildContactLine(r),
		PlaceholderSummary: EscapeLaTeX(r.Summary),
	}
	if r.Education != nil {
		f[PlaceholderEducation] = RenderEducation(r.Education)
	}
	if r.Experience != nil {
		f[PlaceholderExperience] = RenderExperience(r.Experience)
	}
	if r.Projects != nil {
		f[PlaceholderProjects] = RenderProjects(r.Projects)
	}
	if r.TechnicalSkills != nil {
		f[PlaceholderSkills] = RenderSkills(r.TechnicalSkills)
	}
	if r.Extracurriculars != nil {
		f[PlaceholderExtracurriculars] = RenderExtracurriculars(r.Extracurriculars)
	}
	if r.VolunteerWork != nil {
		f[PlaceholderVolunteer] = RenderVolunteer(r.VolunteerWork)
	}
	if r.Certifications != nil {
		f[PlaceholderCertifications] = RenderCertifications(r.Certifications)
	}
	if r.Awards != nil {
		f[PlaceholderAwards] = RenderAwards(r.Awards)
	}
	return f
}

// Compose substitutes rendered fragments into template by literal
// find-and-replace. A placeholder whose section is absent is left as is.
// Compose does no I/O.
func Compose(template string, r *types.Resume) string {
	if r == nil {
		return template
	}

	fragments := Fragments(r)
	pairs := make([]string, 0, 2*len(fragments))
	for placeholder, fragment := range fragments {
		pairs = append(pairs, placeholder, fragment)
	}
	// A single pass means text inside a fragment is never substituted again.
	return strings.NewReplacer(pairs...).Replace(template)
}
