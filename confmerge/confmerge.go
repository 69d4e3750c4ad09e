// Package confmerge deep-merges TOML configuration documents. The embedded
// default document is always the base layer and the user-supplied document is
// always the override layer.
package confmerge

import (
	"bytes"
	"fmt"

	"dario.cat/mergo"
	"github.com/BurntSushi/toml"
)

// MergeError reports a failure to parse either input document or to serialize
// the merged result.
type MergeError struct {
	Stage string // "default", "override", "merge" or "encode"
	Err   error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("config merge failed at %s: %v", e.Stage, e.Err)
}

func (e *MergeError) Unwrap() error {
	return e.Err
}

// Merge deep-merges overrideDoc on top of defaultDoc and returns the merged
// document. For keys present in both documents the override value wins; for
// nested tables present in both, merging recurses so a single nested field
// can be overridden without restating the whole table.
//
// The result is deterministic: the encoder emits tables and keys in sorted
// order, so merging the same two inputs always yields identical output. Key
// ordering itself is not a contract.
func Merge(defaultDoc, overrideDoc string) (string, error) {
	var base map[string]any
	if _, err := toml.Decode(defaultDoc, &base); err != nil {
		return "", &MergeError{Stage: "default", Err: err}
	}

	var override map[string]any
	if _, err := toml.Decode(overrideDoc, &override); err != nil {
		return "", &MergeError{Stage: "override", Err: err}
	}

	if base == nil {
		base = make(map[string]any)
	}

	if len(override) > 0 {
		if err := mergo.Merge(&base, override, mergo.WithOverride); err != nil {
			return "", &MergeError{Stage: "merge", Err: err}
		}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(base); err != nil {
		return "", &MergeError{Stage: "encode", Err: err}
	}

	return buf.String(), nil
}
