// Package types provides type definitions for the resume documents handled by the portfolio service.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// Resume is the structured resume document accepted by the export pipeline.
// Free-text fields may contain any characters; escaping happens only at markup emission.
type Resume struct {
	ID       string `json:"id,omitempty" bson:"_id,omitempty"`
	Name     string `json:"name" bson:"name" validate:"required"`
	Title    string `json:"title,omitempty" bson:"title,omitempty"`
	Email    string `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty" bson:"phone,omitempty"`
	Location string `json:"location,omitempty" bson:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty" bson:"github,omitempty"`
	Website  string `json:"website,omitempty" bson:"website,omitempty"`
	Summary  string `json:"summary,omitempty" bson:"summary,omitempty"`

	Education        []Education       `json:"education" bson:"education" validate:"dive"`
	Experience       []Experience      `json:"experience" bson:"experience" validate:"dive"`
	Projects         []ProjectRef      `json:"projects" bson:"projects" validate:"dive"`
	TechnicalSkills  []SkillCategory   `json:"technicalSkills" bson:"technicalSkills" validate:"dive"`
	Extracurriculars []Extracurricular `json:"extracurriculars" bson:"extracurriculars" validate:"dive"`
	VolunteerWork    []VolunteerWork   `json:"volunteerWork" bson:"volunteerWork" validate:"dive"`
	Certifications   []Certification   `json:"certifications" bson:"certifications" validate:"dive"`
	Awards           []Award           `json:"awards" bson:"awards" validate:"dive"`
}

// Link is a labelled URL. When Label is empty, renderers derive one from the hostname.
type Link struct {
	Label string `json:"label,omitempty" bson:"label,omitempty"`
	URL   string `json:"url" bson:"url" validate:"required"`
}

// Education is a single degree or program entry.
type Education struct {
	Institution  string   `json:"institution" bson:"institution" validate:"required"`
	Degree       string   `json:"degree,omitempty" bson:"degree,omitempty"`
	Field        string   `json:"field,omitempty" bson:"field,omitempty"`
	Location     string   `json:"location,omitempty" bson:"location,omitempty"`
	StartDate    string   `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty" bson:"endDate,omitempty"`
	GPA          string   `json:"gpa,omitempty" bson:"gpa,omitempty"`
	Achievements []string `json:"achievements,omitempty" bson:"achievements,omitempty"`
	Links        []Link   `json:"links,omitempty" bson:"links,omitempty" validate:"dive"`
}

// Experience is a single position held at a company.
type Experience struct {
	Company      string   `json:"company" bson:"company" validate:"required"`
	Position     string   `json:"position,omitempty" bson:"position,omitempty"`
	Location     string   `json:"location,omitempty" bson:"location,omitempty"`
	StartDate    string   `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Achievements []string `json:"achievements,omitempty" bson:"achievements,omitempty"`
	Technologies []string `json:"technologies,omitempty" bson:"technologies,omitempty"`
	Links        []Link   `json:"links,omitempty" bson:"links,omitempty" validate:"dive"`
}

// ProjectRef references a portfolio project shown on the resume.
type ProjectRef struct {
	Title        string   `json:"title" bson:"title" validate:"required"`
	Description  string   `json:"description,omitempty" bson:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty" bson:"technologies,omitempty"`
	StartDate    string   `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Achievements []string `json:"achievements,omitempty" bson:"achievements,omitempty"`
	Links        []Link   `json:"links,omitempty" bson:"links,omitempty" validate:"dive"`
}

// SkillCategory groups skills under a heading such as "Languages".
type SkillCategory struct {
	Category string   `json:"category" bson:"category" validate:"required"`
	Skills   []string `json:"skills" bson:"skills"`
}

// Extracurricular is a club, society, or similar activity.
type Extracurricular struct {
	Title        string   `json:"title" bson:"title" validate:"required"`
	Organization string   `json:"organization,omitempty" bson:"organization,omitempty"`
	Location     string   `json:"location,omitempty" bson:"location,omitempty"`
	StartDate    string   `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Achievements []string `json:"achievements,omitempty" bson:"achievements,omitempty"`
	Links        []Link   `json:"links,omitempty" bson:"links,omitempty" validate:"dive"`
}

// VolunteerWork is an unpaid role at an organization.
type VolunteerWork struct {
	Organization string   `json:"organization" bson:"organization" validate:"required"`
	Role         string   `json:"role,omitempty" bson:"role,omitempty"`
	Location     string   `json:"location,omitempty" bson:"location,omitempty"`
	StartDate    string   `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Achievements []string `json:"achievements,omitempty" bson:"achievements,omitempty"`
	Links        []Link   `json:"links,omitempty" bson:"links,omitempty" validate:"dive"`
}

// Certification is a professional certificate.
type Certification struct {
	Name         string `json:"name" bson:"name" validate:"required"`
	Issuer       string `json:"issuer,omitempty" bson:"issuer,omitempty"`
	IssueDate    string `json:"issueDate,omitempty" bson:"issueDate,omitempty"`
	ExpiryDate   string `json:"expiryDate,omitempty" bson:"expiryDate,omitempty"`
	CredentialID string `json:"credentialId,omitempty" bson:"credentialId,omitempty"`
	Links        []Link `json:"links,omitempty" bson:"links,omitempty" validate:"dive"`
}

// Award is an honor or prize.
type Award struct {
	Title       string `json:"title" bson:"title" validate:"required"`
	Issuer      string `json:"issuer,omitempty" bson:"issuer,omitempty"`
	Date        string `json:"date,omitempty" bson:"date,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Links       []Link `json:"links,omitempty" bson:"links,omitempty" validate:"dive"`
}

// Validate checks required identity fields using the validator.
func (r *Resume) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Normalize replaces absent sections with empty ones so every template slot
// receives a structurally valid fragment.
func (r *Resume) Normalize() {
	if r.Education == nil {
		r.Education = []Education{}
	}
	if r.Experience == nil {
		r.Experience = []Experience{}
	}
	if r.Projects == nil {
		r.Projects = []ProjectRef{}
	}
	if r.TechnicalSkills == nil {
		r.TechnicalSkills = []SkillCategory{}
	}
	if r.Extracurriculars == nil {
		r.Extracurriculars = []Extracurricular{}
	}
	if r.VolunteerWork == nil {
		r.VolunteerWork = []VolunteerWork{}
	}
	if r.Certifications == nil {
		r.Certifications = []Certification{}
	}
	if r.Awards == nil {
		r.Awards = []Award{}
	}
}
