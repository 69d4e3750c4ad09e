package confmerge

import (
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decode normalizes a TOML document for comparison, since key ordering is not
// part of the merge contract.
func decode(t *testing.T, doc string) map[string]any {
	t.Helper()
	var m map[string]any
	_, err := toml.Decode(doc, &m)
	require.NoError(t, err)
	return m
}

const defaultDoc = `
model = "default-model"
temperature = 0.7
verbose = true

[logging]
level = "info"
format = "json"

[runtime]
command = "abk"
`

func TestMergeIdempotent(t *testing.T) {
	merged, err := Merge(defaultDoc, defaultDoc)
	require.NoError(t, err)
	assert.Equal(t, decode(t, defaultDoc), decode(t, merged))
}

func TestMergeDisjointKeys(t *testing.T) {
	override := `
extra = "value"

[tools]
enabled = ["search"]
`
	merged, err := Merge(defaultDoc, override)
	require.NoError(t, err)

	result := decode(t, merged)
	assert.Equal(t, "default-model", result["model"])
	assert.Equal(t, "value", result["extra"])
	assert.Equal(t, map[string]any{"enabled": []any{"search"}}, result["tools"])
	assert.Equal(t, map[string]any{"level": "info", "format": "json"}, result["logging"])
}

func TestMergeOverrideWins(t *testing.T) {
	merged, err := Merge(defaultDoc, "model = \"gpt-x\"\n")
	require.NoError(t, err)

	result := decode(t, merged)
	assert.Equal(t, "gpt-x", result["model"])
	assert.Equal(t, 0.7, result["temperature"])
}

func TestMergeZeroValueOverrideWins(t *testing.T) {
	merged, err := Merge(defaultDoc, "verbose = false\n")
	require.NoError(t, err)

	assert.Equal(t, false, decode(t, merged)["verbose"])
}

func TestMergeNestedOverridePreservesSiblings(t *testing.T) {
	override := `
[logging]
level = "debug"
`
	merged, err := Merge(defaultDoc, override)
	require.NoError(t, err)

	result := decode(t, merged)
	assert.Equal(t, map[string]any{"level": "debug", "format": "json"}, result["logging"])
	assert.Equal(t, map[string]any{"command": "abk"}, result["runtime"])
}

func TestMergeDeterministic(t *testing.T) {
	override := "[logging]\nlevel = \"debug\"\n"

	first, err := Merge(defaultDoc, override)
	require.NoError(t, err)
	second, err := Merge(defaultDoc, override)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMergeEmptyOverride(t *testing.T) {
	merged, err := Merge(defaultDoc, "")
	require.NoError(t, err)
	assert.Equal(t, decode(t, defaultDoc), decode(t, merged))
}

func TestMergeErrors(t *testing.T) {
	tests := []struct {
		name        string
		defaultDoc  string
		overrideDoc string
		stage       string
	}{
		{
			name:        "malformed default",
			defaultDoc:  "not [valid toml",
			overrideDoc: "",
			stage:       "default",
		},
		{
			name:        "malformed override",
			defaultDoc:  defaultDoc,
			overrideDoc: "= broken",
			stage:       "override",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Merge(tt.defaultDoc, tt.overrideDoc)
			require.Error(t, err)

			var mergeErr *MergeError
			require.ErrorAs(t, err, &mergeErr)
			assert.Equal(t, tt.stage, mergeErr.Stage)
		})
	}
}
