package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lwmacct/251019-go-pkg-cfgtpl/pkg/token"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want token.Token
	}{
		{
			name: "plain",
			in:   "__Foo__",
			want: token.Token{Kind: token.Plain, ID: "Foo"},
		},
		{
			name: "plain with inner underscore",
			in:   "__AuthSettings_Domain__",
			want: token.Token{Kind: token.Plain, ID: "AuthSettings_Domain"},
		},
		{
			name: "indexed zero",
			in:   "__Services_0__",
			want: token.Token{Kind: token.Indexed, ID: "Services_0", Base: "Services", Index: 0},
		},
		{
			name: "indexed multi digit",
			in:   "__AGIClientSettings_OpenAIServices_12__",
			want: token.Token{Kind: token.Indexed, ID: "AGIClientSettings_OpenAIServices_12", Base: "AGIClientSettings_OpenAIServices", Index: 12},
		},
		{
			name: "digits only is plain",
			in:   "__42__",
			want: token.Token{Kind: token.Plain, ID: "42"},
		},
		{
			name: "dotted identifier",
			in:   "__Logging.Level__",
			want: token.Token{Kind: token.Plain, ID: "Logging.Level"},
		},
		{name: "embedded is not a token", in: "https://__Host__/api"},
		{name: "empty identifier", in: "____"},
		{name: "too short", in: "__"},
		{name: "leading underscore in identifier", in: "___Foo__"},
		{name: "trailing underscore in identifier", in: "__Foo___"},
		{name: "space in identifier", in: "__Foo Bar__"},
		{name: "plain text", in: "Information"},
		{name: "single underscores", in: "_Foo_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, token.Parse(tt.in))
		})
	}
}

func TestParse_IndexOverflowFallsBackToPlain(t *testing.T) {
	got := token.Parse("__Services_99999999999999999999999__")
	assert.Equal(t, token.Plain, got.Kind)
	assert.Equal(t, "Services_99999999999999999999999", got.ID)
}

func TestFormatRoundTrip(t *testing.T) {
	tok := token.Parse(token.Format("Settings_DbConnectionString"))
	assert.True(t, tok.IsToken())
	assert.Equal(t, "__Settings_DbConnectionString__", tok.String())
	assert.Empty(t, token.Parse("plain").String())
}
