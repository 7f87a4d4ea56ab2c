package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body string) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	return payload
}

func TestCheckRequiredFields(t *testing.T) {
	v := NewValidator()
	required := []string{"username", "password", "name"}

	tests := []struct {
		name    string
		body    string
		missing []string
	}{
		{name: "all present", body: `{"username":"john","password":"pw","name":"John"}`},
		{name: "absent", body: `{"username":"john","name":"John"}`, missing: []string{"password"}},
		{name: "empty string", body: `{"username":"","password":"pw","name":"John"}`, missing: []string{"username"}},
		{name: "null", body: `{"username":"john","password":null,"name":"John"}`, missing: []string{"password"}},
		{name: "zero number", body: `{"username":"john","password":"pw","name":0}`, missing: []string{"name"}},
		{name: "false", body: `{"username":false,"password":"pw","name":"John"}`, missing: []string{"username"}},
		{name: "empty list", body: `{"username":[],"password":"pw","name":"John"}`, missing: []string{"username"}},
		{name: "empty object", body: `{"username":{},"password":"pw","name":"John"}`, missing: []string{"username"}},
		{name: "non-zero number", body: `{"username":"john","password":12345678,"name":"John"}`},
		{name: "non-empty list", body: `{"username":["a"],"password":"pw","name":"John"}`},
		{name: "keeps required order", body: `{"name":""}`, missing: []string{"username", "password", "name"}},
		{name: "empty payload", body: `{}`, missing: []string{"username", "password", "name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckRequiredFields(v, decode(t, tt.body), required...)
			if tt.missing == nil {
				assert.NoError(t, err)
				return
			}

			var mfe *MissingFieldsError
			require.ErrorAs(t, err, &mfe)
			assert.Equal(t, tt.missing, mfe.Fields)
		})
	}
}

func TestMissingFieldsError_Message(t *testing.T) {
	err := CheckRequiredFields(NewValidator(), map[string]any{"password": "x"}, "username", "password", "title")
	require.Error(t, err)
	assert.Equal(t, "Missing required fields: username, title", err.Error())
}

func TestCheckRequiredFields_NilPayload(t *testing.T) {
	err := CheckRequiredFields(NewValidator(), nil, "username")
	require.Error(t, err)
	assert.Equal(t, "Missing required fields: username", err.Error())
}
