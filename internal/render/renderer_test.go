package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thanhnp/tx-explorer/internal/page"
	"github.com/thanhnp/tx-explorer/internal/stubs"
)

func testView(loading bool, active page.Section) *page.View {
	tabs := []page.TabView{
		{ID: page.TabIndex, Title: "Details", URL: "/tx/0x1"},
		{ID: page.TabTokenTransfers, Title: "Token transfers", URL: "/tx/0x1?tab=token_transfers"},
		{ID: page.TabInternal, Title: "Internal txns", URL: "/tx/0x1?tab=internal"},
		{ID: page.TabLogs, Title: "Logs", URL: "/tx/0x1?tab=logs"},
		{ID: page.TabState, Title: "State", URL: "/tx/0x1?tab=state"},
		{ID: page.TabRawTrace, Title: "Raw trace", URL: "/tx/0x1?tab=raw_trace"},
	}
	tabs[0].Active = true
	return &page.View{
		Title:   page.Title,
		Hash:    "0x1",
		Loading: loading,
		Tags:    page.TagCluster{Loading: loading},
		Tabs:    tabs,
		Active:  active,
	}
}

func detailsSection(loading bool) page.Section {
	return page.Section{Kind: page.KindDetails, Loading: loading, Data: page.NewDetailsView(stubs.TX())}
}

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	require.NoError(t, err)
	return r
}

func TestLoadingPageShowsSkeleton(t *testing.T) {
	r := newRenderer(t)

	var buf bytes.Buffer
	require.NoError(t, r.Page(&buf, Data{View: testView(true, detailsSection(true)), StreamURL: "/tx/0x1/stream"}))
	html := buf.String()

	assert.Contains(t, html, `class="tabs-skeleton"`)
	assert.NotContains(t, html, `role="tablist"`)
	assert.Contains(t, html, `data-kind="details"`)
	assert.Contains(t, html, "Transaction details")
	assert.Contains(t, html, "EventSource")
	assert.Contains(t, html, `data-stream="/tx/0x1/stream"`)
}

func TestLoadedPageShowsInteractiveTabs(t *testing.T) {
	r := newRenderer(t)

	view := testView(false, detailsSection(false))
	view.BackLink = &page.Link{Label: "Back to transactions list", URL: "https://example.com/txs"}
	view.Ad = &page.AdSlot{Provider: "slise"}
	view.Tags = page.TagCluster{
		Tags:      []page.Tag{{Label: "MEV", DisplayName: "MEV"}},
		Explorers: []page.ExplorerLink{{Title: "Etherscan", URL: "https://etherscan.io/tx/0x1"}},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Page(&buf, Data{View: view, StreamURL: "/tx/0x1/stream"}))
	html := buf.String()

	assert.Contains(t, html, `role="tablist"`)
	assert.NotContains(t, html, `class="tabs-skeleton"`)
	assert.Contains(t, html, `href="/tx/0x1?tab=logs"`)
	assert.Contains(t, html, `aria-selected="true"`)
	assert.Contains(t, html, "Back to transactions list")
	assert.Contains(t, html, `data-provider="slise"`)
	assert.Contains(t, html, ">MEV<")
	assert.Contains(t, html, "https://etherscan.io/tx/0x1")
	assert.Contains(t, html, "Verify with other explorers")
	assert.NotContains(t, html, "EventSource", "resolved pages do not subscribe")
}

func TestHiddenExplorerText(t *testing.T) {
	r := newRenderer(t)

	view := testView(false, detailsSection(false))
	view.Tags = page.TagCluster{
		Explorers:        []page.ExplorerLink{{Title: "Etherscan", URL: "https://etherscan.io/tx/0x1"}},
		HideExplorerText: true,
	}
	body, err := r.Body(view)
	require.NoError(t, err)
	assert.NotContains(t, body, "Verify with other explorers")
	assert.Contains(t, body, "Etherscan")
}

func TestSectionsRender(t *testing.T) {
	sections := []page.Section{
		detailsSection(false),
		{Kind: page.KindTokenTransfers, Data: stubs.TokenTransfers()},
		{Kind: page.KindInternal, Data: stubs.InternalTxs()},
		{Kind: page.KindLogs, Data: stubs.Logs(), HasNextPage: true},
		{Kind: page.KindState, Data: stubs.StateChanges()},
		{Kind: page.KindRawTrace, Data: stubs.RawTrace()},
	}
	r := newRenderer(t)

	for _, s := range sections {
		t.Run(s.Kind, func(t *testing.T) {
			body, err := r.Body(testView(false, s))
			require.NoError(t, err)
			assert.Contains(t, body, `data-kind="`+s.Kind+`"`)
			assert.Equal(t, s.HasNextPage, strings.Contains(body, "More results"))
		})
	}
}

func TestEmptyListRendersNotice(t *testing.T) {
	r := newRenderer(t)
	page0 := stubs.Logs()
	page0.Items = nil

	body, err := r.Body(testView(false, page.Section{Kind: page.KindLogs, Data: page0}))
	require.NoError(t, err)
	assert.Contains(t, body, "There are no logs for this transaction.")
}
