package tools

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateArgs(t *testing.T) {
	schema := ObjectSchema(map[string]Property{
		"owner":     {Type: "string"},
		"repo":      {Type: "string"},
		"number":    {Type: "number"},
		"private":   {Type: "boolean"},
		"reviewers": {Type: "array", Items: &Property{Type: "string"}},
		"files":     {Type: "array", Items: &Property{Type: "object"}},
	}, "owner", "repo")

	tests := []struct {
		name    string
		args    string
		wantErr bool
	}{
		{"all required present", `{"owner":"o","repo":"r"}`, false},
		{"optional typed correctly", `{"owner":"o","repo":"r","number":3,"private":true}`, false},
		{"missing required", `{"owner":"o"}`, true},
		{"required explicitly null", `{"owner":"o","repo":null}`, true},
		{"wrong type for number", `{"owner":"o","repo":"r","number":"three"}`, true},
		{"wrong type for boolean", `{"owner":"o","repo":"r","private":"yes"}`, true},
		{"wrong type for array", `{"owner":"o","repo":"r","reviewers":"alice"}`, true},
		{"optional null passes", `{"owner":"o","repo":"r","number":null}`, false},
		{"unknown key passes through", `{"owner":"o","repo":"r","extra":1}`, false},
		{"not an object", `[1,2]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArgs(schema, json.RawMessage(tt.args))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateArgsEmptyBundle(t *testing.T) {
	schema := ObjectSchema(map[string]Property{
		"state": {Type: "string"},
	})
	assert.NoError(t, ValidateArgs(schema, nil))
}
