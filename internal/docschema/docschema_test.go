package docschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJSON_ReviewReportAccepted(t *testing.T) {
	doc := []byte(`{
		"total_chunks": 3,
		"by_confidence": {"exact": 2, "synthetic": 1},
		"by_method": {"exact_match": 2, "interpolation": 1},
		"warnings": ["chunk 2 recovered via interpolation"]
	}`)
	diags, err := ValidateJSON(ReviewReport, doc)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestValidateJSON_ReviewReportMissingRequiredField(t *testing.T) {
	doc := []byte(`{"by_confidence": {}, "by_method": {}, "warnings": []}`)
	diags, err := ValidateJSON(ReviewReport, doc)
	require.NoError(t, err)
	assert.NotEmpty(t, diags, "expected a diagnostic for missing total_chunks")
}

func TestValidateJSON_RejectsUnknownAdditionalProperty(t *testing.T) {
	doc := []byte(`{
		"total_chunks": 1,
		"by_confidence": {},
		"by_method": {},
		"warnings": [],
		"unexpected_field": true
	}`)
	diags, err := ValidateJSON(ReviewReport, doc)
	require.NoError(t, err)
	assert.NotEmpty(t, diags, "expected a diagnostic for additionalProperties violation")
}

func TestValidateJSON_VaultManifestAccepted(t *testing.T) {
	doc := []byte(`{
		"document_id": "doc-1",
		"chunk_count": 5,
		"created_at": "2026-07-31T00:00:00Z"
	}`)
	diags, err := ValidateJSON(VaultManifest, doc)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestValidateJSON_UnknownSchemaIDErrors(t *testing.T) {
	_, err := ValidateJSON("does_not_exist", []byte(`{}`))
	assert.Error(t, err)
}

func TestValidateJSON_InvalidJSONErrors(t *testing.T) {
	_, err := ValidateJSON(ReviewReport, []byte(`{not json`))
	assert.Error(t, err)
}
