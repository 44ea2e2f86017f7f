package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeSchema_IsValidJSON(t *testing.T) {
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(ResumeSchema()), &v))
	assert.Equal(t, "Resume", v["title"])
}

func TestValidateResume_Valid(t *testing.T) {
	doc := `{
		"name": "Jane Doe",
		"email": "jane@example.com",
		"education": [],
		"experience": [{"company": "Acme", "achievements": ["Shipped 100% of {goals}"]}],
		"projects": [{"title": "Site", "links": [{"url": "https://jane.dev"}]}]
	}`
	assert.NoError(t, ValidateResume([]byte(doc)))
}

func TestValidateResume_MissingRequiredFields(t *testing.T) {
	doc := `{
		"experience": [{"position": "Engineer"}],
		"projects": [{"title": "Site", "links": [{"label": "demo"}]}]
	}`
	err := ValidateResume([]byte(doc))
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	fields := make([]string, 0, len(verr.Errors))
	for _, fe := range verr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "(root)")
	assert.Contains(t, fields, "experience.0")
	assert.Contains(t, fields, "projects.0.links.0")
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidateResume_WrongType(t *testing.T) {
	err := ValidateResume([]byte(`{"name": "Jane", "awards": "none"}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "awards", verr.Errors[0].Field)
}

func TestValidateResume_MalformedDocument(t *testing.T) {
	err := ValidateResume([]byte(`{not json`))
	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidateJSONString_InvalidSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)
	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}
