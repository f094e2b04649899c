package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	embedded "github.com/jonathan/resume-screener/schemas"
)

func TestValidate_Config(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantError bool
	}{
		{name: "empty object", doc: `{}`},
		{name: "full", doc: `{"job":"jd.txt","inputs":["a.pdf","b.zip"],"weights":{"skills":0.5,"experience":0.2,"education":0.2,"keywords":0.1},"delay_ms":0,"format":"csv","verbose":true}`},
		{name: "weight above one", doc: `{"weights":{"skills":1.5}}`, wantError: true},
		{name: "negative delay", doc: `{"delay_ms":-1}`, wantError: true},
		{name: "unknown field", doc: `{"api_key":"x"}`, wantError: true},
		{name: "bad url", doc: `{"job_url":"ftp://example.com"}`, wantError: true},
		{name: "bad format", doc: `{"format":"pdf"}`, wantError: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(embedded.Config, []byte(tt.doc))
			if tt.wantError {
				require.Error(t, err)
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.NotEmpty(t, validationErr.Errors)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("missing.schema.json", []byte(`{}`))
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "missing.schema.json", loadErr.Path)
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(embedded.Config, []byte("{ invalid json }"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse JSON document")
}

func TestValidateValue(t *testing.T) {
	err := ValidateValue(embedded.Config, map[string]any{"delay_ms": 250, "use_browser": true})
	assert.NoError(t, err)

	err = ValidateValue(embedded.Config, map[string]any{"delay_ms": "slow"})
	assert.Error(t, err)
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"output":"out.csv"}`), 0o644))

	assert.NoError(t, ValidateFile(embedded.Config, path))

	err := ValidateFile(embedded.Config, filepath.Join(dir, "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type":"object","required":["name"],"properties":{"name":{"type":"string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"name":"Jane"}`))

	err := ValidateJSONString(schema, `{"name":7}`)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "name", validationErr.Errors[0].Field)

	err = ValidateJSONString(`{"type":`, `{}`)
	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}
