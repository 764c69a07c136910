package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validProfile = `{
  "name": "Alex Rivera",
  "contact": {"email": "alex@example.com", "code_host": "github.com/alexr"},
  "summary": "Developer.",
  "education": [{"institution": "State University", "degree": "B.Sc.", "dates": "2020 - 2024"}],
  "experience": [{"title": "Developer", "organization": "Freelance", "responsibilities": ["Built things"]}],
  "projects": [{"name": "Purifier", "description": "Air", "technologies": "Python"}],
  "skills": {"Languages": ["Go", "Python"], "Tools": ["Figma"]}
}`

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	var fields []string
	for _, fe := range validationErr.Errors {
		fields = append(fields, fe.Field)
	}
	return fields
}

func TestValidateProfile_Valid(t *testing.T) {
	assert.NoError(t, ValidateProfile([]byte(validProfile)))
}

func TestValidateProfile_MissingName(t *testing.T) {
	err := ValidateProfile([]byte(`{"summary": "x"}`))
	assert.Contains(t, fieldsOf(t, err), "(root)")
}

func TestValidateProfile_EmptyName(t *testing.T) {
	err := ValidateProfile([]byte(`{"name": ""}`))
	assert.Contains(t, fieldsOf(t, err), "name")
}

func TestValidateProfile_BadEmail(t *testing.T) {
	err := ValidateProfile([]byte(`{"name": "A", "contact": {"email": "not-an-email"}}`))
	assert.Contains(t, fieldsOf(t, err), "contact.email")
}

func TestValidateProfile_SkillsMustBeObject(t *testing.T) {
	err := ValidateProfile([]byte(`{"name": "A", "skills": [["Go"]]}`))
	assert.Contains(t, fieldsOf(t, err), "skills")
}

func TestValidateProfile_NestedEducationField(t *testing.T) {
	err := ValidateProfile([]byte(`{"name": "A", "education": [{"institution": "U"}]}`))
	assert.Contains(t, fieldsOf(t, err), "education.0")
}

func TestValidateProfile_UnknownField(t *testing.T) {
	err := ValidateProfile([]byte(`{"name": "A", "phone": "555"}`))
	assert.Error(t, err)
}

func TestValidateProfile_YAML(t *testing.T) {
	doc := `
name: Alex Rivera
contact:
  email: alex@example.com
skills:
  Languages: [Go, Python]
`
	assert.NoError(t, ValidateProfile([]byte(doc)))
}

func TestValidateProfile_YAMLInvalid(t *testing.T) {
	err := ValidateProfile([]byte("name: [unterminated"))
	assert.Contains(t, fieldsOf(t, err), "(root)")
}

func TestValidateProfile_Empty(t *testing.T) {
	assert.Error(t, ValidateProfile(nil))
}

func TestValidateProfileFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.json")
	require.NoError(t, os.WriteFile(path, []byte(validProfile), 0644))

	assert.NoError(t, ValidateProfileFile(path))

	err := ValidateProfileFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestValidateProjects(t *testing.T) {
	valid := `{"projects": [{"id": 1, "title": "Purifier", "categories": ["iot"],
	  "links": [{"kind": "github", "url": "https://github.com/x/y"}]}]}`
	assert.NoError(t, ValidateProjects([]byte(valid)))

	badKind := `{"projects": [{"id": 1, "title": "P", "categories": ["web"], "links": [{"kind": "ftp", "url": "x"}]}]}`
	assert.Contains(t, fieldsOf(t, ValidateProjects([]byte(badKind))), "projects.0.links.0.kind")

	noCategories := `{"projects": [{"id": 2, "title": "P", "categories": []}]}`
	assert.Contains(t, fieldsOf(t, ValidateProjects([]byte(noCategories))), "projects.0.categories")
}

func TestValidateJSONString_Valid(t *testing.T) {
	schema := `{"type": "object", "required": ["a"]}`
	assert.NoError(t, ValidateJSONString(schema, `{"a": 1}`))
}

func TestValidateJSONString_BrokenSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)
	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "name", Message: "is required"},
		{Field: "contact.email", Message: "bad format"},
	}}
	assert.Equal(t, "validation failed:\n  1. name: is required\n  2. contact.email: bad format\n", err.Error())
}
