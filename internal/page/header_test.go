package page

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thanhnp/tx-explorer/internal/config"
	"github.com/thanhnp/tx-explorer/internal/stubs"
)

func TestBackLink(t *testing.T) {
	tests := []struct {
		name     string
		referrer string
		want     *Link
	}{
		{
			name:     "from transactions list",
			referrer: "https://example.com/txs",
			want:     &Link{Label: "Back to transactions list", URL: "https://example.com/txs"},
		},
		{name: "from blocks", referrer: "https://example.com/blocks"},
		{name: "no referrer", referrer: ""},
		{
			name:     "fragment anywhere qualifies",
			referrer: "https://example.com/blocks?from=/txs",
			want:     &Link{Label: "Back to transactions list", URL: "https://example.com/blocks?from=/txs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BackLink(tt.referrer))
		})
	}
}

func TestTags(t *testing.T) {
	tx := stubs.TX()
	assert.Empty(t, Tags(tx))
	assert.Empty(t, Tags(nil))

	tx.TxTag = "MEV"
	assert.Equal(t, []Tag{{Label: "MEV", DisplayName: "MEV"}}, Tags(tx))
}

func TestNetworkExplorerLinks(t *testing.T) {
	explorers := []config.ExplorerConfig{
		{Title: "Etherscan", BaseURL: "https://etherscan.io/", Paths: map[string]string{"tx": "/tx/", "address": "/address"}},
		{Title: "Blockchair", BaseURL: "https://blockchair.com", Paths: map[string]string{"tx": "ethereum/transaction"}},
		{Title: "Address only", BaseURL: "https://addr.example", Paths: map[string]string{"address": "/a"}},
	}

	links := NetworkExplorerLinks(explorers, "tx", "0xabc")
	assert.Equal(t, []ExplorerLink{
		{Title: "Etherscan", URL: "https://etherscan.io/tx/0xabc"},
		{Title: "Blockchair", URL: "https://blockchair.com/ethereum/transaction/0xabc"},
	}, links)

	assert.Empty(t, NetworkExplorerLinks(explorers, "tx", ""))
	assert.Empty(t, NetworkExplorerLinks(nil, "tx", "0xabc"))
}

func TestHideExplorerText(t *testing.T) {
	tx := stubs.TX()
	assert.False(t, HideExplorerText(true, tx))

	tx.TxTag = "MEV"
	assert.True(t, HideExplorerText(true, tx))
	assert.False(t, HideExplorerText(false, tx))
}

func TestIsMobile(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    bool
	}{
		{name: "client hint", headers: map[string]string{"Sec-CH-UA-Mobile": "?1"}, want: true},
		{name: "client hint desktop", headers: map[string]string{"Sec-CH-UA-Mobile": "?0"}},
		{
			name:    "mobile user agent",
			headers: map[string]string{"User-Agent": "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Mobile/15E148"},
			want:    true,
		},
		{name: "desktop user agent", headers: map[string]string{"User-Agent": "Mozilla/5.0 (X11; Linux x86_64)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/tx/0x1", nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, IsMobile(r))
		})
	}
}
