package compare

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper: decode a JSON document the way the pipeline does
func decodePayload(t *testing.T, raw string) any {
	t.Helper()
	var payload any
	err := json.Unmarshal([]byte(raw), &payload)
	require.NoError(t, err, "test payload should be valid JSON")
	return payload
}

// TestExtractSpecification_FullPath verifies the happy path
func TestExtractSpecification_FullPath(t *testing.T) {
	payload := decodePayload(t, `{"verified":{"specification":{"Wattage":"10W","Lumens":"800lm"}}}`)

	spec := ExtractSpecification(payload)
	assert.Equal(t, map[string]string{"Wattage": "10W", "Lumens": "800lm"}, spec)
}

// TestExtractSpecification_MissingVerified verifies the missing-level case
func TestExtractSpecification_MissingVerified(t *testing.T) {
	payload := decodePayload(t, `{"other":{}}`)

	spec := ExtractSpecification(payload)
	assert.Empty(t, spec, "missing 'verified' should yield an empty mapping")
}

// TestExtractSpecification_MissingSpecification verifies a partial path
func TestExtractSpecification_MissingSpecification(t *testing.T) {
	payload := decodePayload(t, `{"verified":{"status":"ok"}}`)

	spec := ExtractSpecification(payload)
	assert.Empty(t, spec)
}

// TestExtractSpecification_WrongShapes verifies degradation on bad shapes
func TestExtractSpecification_WrongShapes(t *testing.T) {
	cases := []string{
		`"just a string"`,
		`42`,
		`[1, 2, 3]`,
		`null`,
		`{"verified":"not an object"}`,
		`{"verified":{"specification":["not","a","mapping"]}}`,
		`{"verified":{"specification":null}}`,
	}

	for _, raw := range cases {
		spec := ExtractSpecification(decodePayload(t, raw))
		assert.NotNil(t, spec, "extraction should never return nil for %s", raw)
		assert.Empty(t, spec, "payload %s should yield an empty mapping", raw)
	}
}

// TestExtractSpecification_ScalarCoercion verifies non-string values are
// coerced to strings
func TestExtractSpecification_ScalarCoercion(t *testing.T) {
	payload := decodePayload(t, `{"verified":{"specification":{"Wattage":10,"Dimmable":true,"Notes":null}}}`)

	spec := ExtractSpecification(payload)
	assert.Equal(t, "10", spec["Wattage"])
	assert.Equal(t, "true", spec["Dimmable"])
	assert.Equal(t, "", spec["Notes"])
}
