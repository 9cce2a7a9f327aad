package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHint_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    Hint
		wantErr bool
	}{
		{name: "string", body: `{"guess_state":"c____"}`, want: "c____"},
		{name: "array", body: `{"guess_state":["c","_","_","_","e"]}`, want: "c___e"},
		{name: "null", body: `{"guess_state":null}`, want: ""},
		{name: "absent", body: `{}`, want: ""},
		{name: "multi-char column", body: `{"guess_state":["ab","_"]}`, wantErr: true},
		{name: "number", body: `{"guess_state":5}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var res GuessResponse
			err := json.Unmarshal([]byte(tt.body), &res)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.GuessState)
		})
	}
}

func TestNewHint(t *testing.T) {
	assert.Equal(t, Hint("a__d"), NewHint([]string{"a", "", "_", "d"}))
}

func TestResetRequest_NullSession(t *testing.T) {
	b, err := json.Marshal(ResetRequest{WordLength: 6, OldWords: []string{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"word_length":6,"old_words":[],"session_id":null}`, string(b))
}
