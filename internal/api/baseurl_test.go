package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureAPIPath(t *testing.T) {
	cases := map[string]string{
		"http://localhost:8080/api/excel":               "http://localhost:8080/api/excel",
		"http://localhost:8080/api/excel/":              "http://localhost:8080/api/excel",
		"  https://example.com/api/excel/upload  ":      "https://example.com/api/excel",
		"https://example.com/api":                       "https://example.com/api/excel",
		"https://example.com":                           "https://example.com/api/excel",
		"https://example.com/":                          "https://example.com/api/excel",
		"ananas-api-back.onrender.com":                  "ananas-api-back.onrender.com/api/excel",
		"http://10.0.0.5:9000/gateway/api/excel/search": "http://10.0.0.5:9000/gateway/api/excel",
	}
	for in, want := range cases {
		assert.Equal(t, want, EnsureAPIPath(in), in)
	}
}

func TestResolveBaseURL(t *testing.T) {
	assert.Equal(t, "https://custom.example/api/excel", ResolveBaseURL("https://custom.example/", "panel.example.com"))
	assert.Equal(t, LocalBaseURL, ResolveBaseURL("", "localhost"))
	assert.Equal(t, LocalBaseURL, ResolveBaseURL("", "127.0.0.1"))
	assert.Equal(t, LocalBaseURL, ResolveBaseURL("", "192.168.1.20"))
	assert.Equal(t, LocalBaseURL, ResolveBaseURL("", ""))
	assert.Equal(t, HostedBaseURL, ResolveBaseURL("", "panel.example.com"))
}
