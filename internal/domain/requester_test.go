package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRequesterNormalizes(t *testing.T) {
	r := NewRequester("  Ana Ruiz ", " ANA.RUIZ@Example.COM ")
	require.Equal(t, "Ana Ruiz", r.Name)
	require.Equal(t, "ana.ruiz@example.com", r.Email)
}

func TestParseRequester(t *testing.T) {
	tests := []struct {
		name      string
		composite string
		want      Requester
	}{
		{"full composite", "Ana Ruiz · ana.ruiz@example.com", Requester{Name: "Ana Ruiz", Email: "ana.ruiz@example.com"}},
		{"upper-cased email", "Ana Ruiz · ANA.RUIZ@EXAMPLE.COM", Requester{Name: "Ana Ruiz", Email: "ana.ruiz@example.com"}},
		{"name only", "Ana Ruiz", Requester{Name: "Ana Ruiz"}},
		{"plain hyphen is not a separator", "Ana Ruiz - ana@example.com", Requester{Name: "Ana Ruiz - ana@example.com"}},
		{"empty", "", Requester{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ParseRequester(tt.composite))
		})
	}
}

func TestRequesterString(t *testing.T) {
	require.Equal(t, "Ana Ruiz · ana.ruiz@example.com", NewRequester("Ana Ruiz", "ana.ruiz@example.com").String())
	require.Equal(t, "Ana Ruiz", NewRequester("Ana Ruiz", "").String(), "no dangling separator without an email")
}

func TestEmailMatches(t *testing.T) {
	r := NewRequester("Ana Ruiz", "ana.ruiz@example.com")
	require.True(t, r.EmailMatches("ana.ruiz@example.com"))
	require.True(t, r.EmailMatches("  ANA.RUIZ@example.com "))
	require.False(t, r.EmailMatches("other@example.com"))
	require.False(t, r.EmailMatches(""))
	require.False(t, Requester{Name: "No Email"}.EmailMatches(""), "empty never matches, even an empty stored email")
}

func TestRequesterJSONRoundTrip(t *testing.T) {
	r := NewRequester("Ana Ruiz", "ana.ruiz@example.com")

	data, err := json.Marshal(r)
	require.NoError(t, err)
	require.JSONEq(t, `"Ana Ruiz · ana.ruiz@example.com"`, string(data))

	var decoded Requester
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, r, decoded)

	require.Error(t, json.Unmarshal([]byte(`{"name":"Ana"}`), &decoded), "only the composite string form is accepted")
}
