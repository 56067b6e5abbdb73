package page

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thanhnp/tx-explorer/internal/models"
	"github.com/thanhnp/tx-explorer/internal/stubs"
)

func tabIDs(tabs []Tab) []string {
	ids := make([]string, len(tabs))
	for i, t := range tabs {
		ids[i] = t.ID
	}
	return ids
}

func TestBuildTabs(t *testing.T) {
	plain := []string{TabIndex, TabTokenTransfers, TabInternal, TabLogs, TabState, TabRawTrace}
	withWrapped := []string{TabIndex, TabWrapped, TabTokenTransfers, TabInternal, TabLogs, TabState, TabRawTrace}

	tests := []struct {
		name         string
		suave        bool
		wrapped      bool
		wantIDs      []string
		wantDetailsT string
	}{
		{name: "flag off, no wrapped", wantIDs: plain, wantDetailsT: "Details"},
		{name: "flag off, wrapped", wrapped: true, wantIDs: plain, wantDetailsT: "Details"},
		{name: "flag on, no wrapped", suave: true, wantIDs: plain, wantDetailsT: "Details"},
		{name: "flag on, wrapped", suave: true, wrapped: true, wantIDs: withWrapped, wantDetailsT: "Confidential compute tx details"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := stubs.TX()
			if tt.wrapped {
				tx.Wrapped = &models.WrappedTransaction{Hash: "0xwrapped", Value: "0"}
			}

			tabs := BuildTabs(tx, tt.suave, Contents{Details: DetailsContent{}})
			assert.Equal(t, tt.wantIDs, tabIDs(tabs))
			assert.Equal(t, tt.wantDetailsT, tabs[0].Title)

			for _, tab := range tabs {
				assert.NotEmpty(t, tab.ID)
				assert.NotEmpty(t, tab.Title)
			}
			if tt.suave && tt.wrapped {
				assert.Equal(t, "Regular tx details", tabs[1].Title)
				require.IsType(t, WrappedContent{}, tabs[1].Content)
				assert.Equal(t, "0xwrapped", tabs[1].Content.(WrappedContent).Data.Hash)
			}
		})
	}
}

func TestBuildTabsTitles(t *testing.T) {
	tabs := BuildTabs(stubs.TX(), false, Contents{})
	titles := make([]string, len(tabs))
	for i, tab := range tabs {
		titles[i] = tab.Title
	}
	assert.Equal(t, []string{"Details", "Token transfers", "Internal txns", "Logs", "State", "Raw trace"}, titles)
}

func TestTabIndexFromQuery(t *testing.T) {
	tabs := BuildTabs(stubs.TX(), false, Contents{})

	assert.Equal(t, 0, TabIndexFromQuery(tabs, ""))
	assert.Equal(t, 0, TabIndexFromQuery(tabs, "index"))
	assert.Equal(t, 3, TabIndexFromQuery(tabs, TabLogs))
	assert.Equal(t, 5, TabIndexFromQuery(tabs, TabRawTrace))
	assert.Equal(t, 0, TabIndexFromQuery(tabs, "unknown"))
	// the wrapped tab is unknown when it was not built
	assert.Equal(t, 0, TabIndexFromQuery(tabs, TabWrapped))
}

func TestTabURL(t *testing.T) {
	u, err := url.Parse("/tx/0xabc?tab=logs&foo=bar")
	require.NoError(t, err)

	assert.Equal(t, "/tx/0xabc?foo=bar", TabURL(*u, TabIndex))
	assert.Equal(t, "/tx/0xabc?foo=bar&tab=state", TabURL(*u, TabState))
	// u itself is untouched
	assert.Equal(t, "tab=logs&foo=bar", u.RawQuery)

	u, err = url.Parse("/tx?hash=0xabc")
	require.NoError(t, err)
	assert.Equal(t, "/tx?hash=0xabc&tab=internal", TabURL(*u, TabInternal))
}
