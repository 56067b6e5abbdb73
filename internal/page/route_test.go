package page

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryParamString(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{name: "absent", values: nil, want: ""},
		{name: "single", values: []string{"0xabc"}, want: "0xabc"},
		{name: "repeated", values: []string{"0xa", "0xb"}, want: "0xa,0xb"},
		{name: "empty value", values: []string{""}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QueryParamString(tt.values))
		})
	}
}

func TestHashFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/tx?hash=0xquery", nil)
	assert.Equal(t, "0xpath", HashFromRequest(r, "0xpath"))
	assert.Equal(t, "0xquery", HashFromRequest(r, ""))

	r = httptest.NewRequest("GET", "/tx?hash=0xa&hash=0xb", nil)
	assert.Equal(t, "0xa,0xb", HashFromRequest(r, ""))

	r = httptest.NewRequest("GET", "/tx", nil)
	assert.Empty(t, HashFromRequest(r, ""))
}

func TestNewRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/tx/0xabc?tab=logs", nil)
	r.Header.Set("Referer", "https://example.com/txs?page=2")
	r.Header.Set("Sec-CH-UA-Mobile", "?1")

	req := NewRequest(r, "0xabc")
	assert.Equal(t, "0xabc", req.Hash)
	assert.Equal(t, TabLogs, req.Tab)
	assert.Equal(t, "https://example.com/txs?page=2", req.Referrer)
	assert.True(t, req.Mobile)
	assert.Equal(t, "/tx/0xabc", req.URL.Path)
}
