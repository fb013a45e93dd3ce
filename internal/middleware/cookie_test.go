package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCookies(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   map[string]string
	}{
		{
			name:   "empty header",
			header: "",
			want:   map[string]string{},
		},
		{
			name:   "single pair",
			header: "auth_token=abc123",
			want:   map[string]string{"auth_token": "abc123"},
		},
		{
			name:   "malformed pair does not corrupt siblings",
			header: "a=1; b=2; bad; c=3",
			want:   map[string]string{"a": "1", "b": "2", "c": "3"},
		},
		{
			name:   "value split on first equals only",
			header: "token=abc=def; x=1",
			want:   map[string]string{"token": "abc=def", "x": "1"},
		},
		{
			name:   "percent-decoded value",
			header: "name=hello%20world",
			want:   map[string]string{"name": "hello world"},
		},
		{
			name:   "undecodable value falls back to raw",
			header: "name=%zz%; ok=1",
			want:   map[string]string{"name": "%zz%", "ok": "1"},
		},
		{
			name:   "whitespace around keys trimmed",
			header: "  a =1;  b= 2 ",
			want:   map[string]string{"a": "1", "b": "2"},
		},
		{
			name:   "empty key skipped",
			header: "=1; a=2",
			want:   map[string]string{"a": "2"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCookies(tt.header))
		})
	}
}
