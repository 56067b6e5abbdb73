package page

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thanhnp/tx-explorer/internal/config"
	"github.com/thanhnp/tx-explorer/internal/explorerapi"
	"github.com/thanhnp/tx-explorer/internal/models"
	"github.com/thanhnp/tx-explorer/internal/query"
	"github.com/thanhnp/tx-explorer/internal/storage"
)

const testHash = "0x5c504ed432cb51138bcf09aa5e8a410dd4a1e204ef84bfed1be16dfba1b22060"

// upstream is a fake explorer API that serves fixed bodies by path
type upstream struct {
	mu     sync.Mutex
	bodies map[string]string
	hits   map[string]int
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	u.hits[r.URL.Path]++
	body, ok := u.bodies[r.URL.Path]
	u.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func (u *upstream) totalHits() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	n := 0
	for _, v := range u.hits {
		n += v
	}
	return n
}

func newTestBuilder(t *testing.T, bodies map[string]string, settings Settings) (*Builder, *upstream) {
	t.Helper()
	up := &upstream{bodies: bodies, hits: map[string]int{}}
	srv := httptest.NewServer(up)
	t.Cleanup(srv.Close)

	api, err := explorerapi.NewClient(&config.UpstreamConfig{BaseURL: srv.URL, Timeout: 2 * time.Second})
	require.NoError(t, err)

	db, err := storage.NewMemPebbleDB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	client := query.NewClient(api, storage.NewPebbleStore(db), query.Config{StaleTime: time.Minute, TTL: time.Hour})
	if settings.WaitBudget == 0 {
		settings.WaitBudget = 2 * time.Second
	}
	return NewBuilder(client, settings), up
}

func txPath(suffix string) string {
	return "/api/v2/transactions/" + testHash + suffix
}

func testBodies(tx string) map[string]string {
	return map[string]string{
		txPath(""):                       tx,
		txPath("/token-transfers"):       `{"items":[],"next_page_params":null}`,
		txPath("/internal-transactions"): `{"items":[],"next_page_params":null}`,
		txPath("/logs"):                  `{"items":[{"index":0,"address":{"hash":"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"},"topics":[],"data":"0x"}],"next_page_params":{"index":1}}`,
		txPath("/state-changes"):         `{"items":[],"next_page_params":null}`,
		txPath("/raw-trace"):             `[{"type":"call"}]`,
	}
}

const plainTx = `{"hash":"` + testHash + `","status":"ok","block":100,"value":"1000000000000000000","fee":{"type":"actual","value":"21000"},"gas_price":"1000000000","raw_input":"0x","tx_tag":"MEV"}`

const wrappedTx = `{"hash":"` + testHash + `","status":"ok","block":100,"value":"0","fee":{"type":"actual","value":"0"},"raw_input":"0x","wrapped":{"hash":"0xinner","value":"5","raw_input":"0x"}}`

func pageRequest(t *testing.T, hash, rawURL string) Request {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return Request{Hash: hash, Tab: u.Query().Get("tab"), URL: *u}
}

func TestBuildEmptyHashNeverQueries(t *testing.T) {
	b, up := newTestBuilder(t, testBodies(plainTx), Settings{})

	view, err := b.Build(context.Background(), pageRequest(t, "", "/tx"))
	require.NoError(t, err)

	assert.True(t, view.Loading)
	assert.Equal(t, Title, view.Title)
	assert.Len(t, view.Tabs, 6)
	assert.True(t, view.Active.Loading)
	assert.Equal(t, KindDetails, view.Active.Kind)
	assert.Empty(t, view.Tags.Explorers)
	assert.Zero(t, up.totalHits())
}

func TestBuildResolved(t *testing.T) {
	settings := Settings{
		AdProvider: "coinzilla",
		Explorers: []config.ExplorerConfig{
			{Title: "Etherscan", BaseURL: "https://etherscan.io", Paths: map[string]string{"tx": "/tx"}},
		},
	}
	b, _ := newTestBuilder(t, testBodies(plainTx), settings)

	req := pageRequest(t, testHash, "/tx/"+testHash)
	req.Referrer = "https://explorer.example/txs"
	view, err := b.Build(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, view.Loading)
	require.NotNil(t, view.FetchedAt)
	require.NotNil(t, view.Ad)
	assert.Equal(t, "coinzilla", view.Ad.Provider)
	require.NotNil(t, view.BackLink)
	assert.Equal(t, "Back to transactions list", view.BackLink.Label)

	assert.False(t, view.Tags.Loading)
	assert.Equal(t, []Tag{{Label: "MEV", DisplayName: "MEV"}}, view.Tags.Tags)
	assert.Equal(t, []ExplorerLink{{Title: "Etherscan", URL: "https://etherscan.io/tx/" + testHash}}, view.Tags.Explorers)

	assert.Equal(t, 0, view.ActiveTab)
	assert.True(t, view.Tabs[0].Active)
	assert.Equal(t, "/tx/"+testHash, view.Tabs[0].URL)
	assert.Equal(t, "/tx/"+testHash+"?tab=logs", view.Tabs[3].URL)

	details, ok := view.Active.Data.(*DetailsView)
	require.True(t, ok)
	assert.Equal(t, "1", details.Value)
	assert.Equal(t, "1", details.GasPrice)
	assert.False(t, details.Pending)
}

func TestBuildActiveResourceTab(t *testing.T) {
	b, _ := newTestBuilder(t, testBodies(plainTx), Settings{})

	view, err := b.Build(context.Background(), pageRequest(t, testHash, "/tx/"+testHash+"?tab=logs"))
	require.NoError(t, err)

	assert.Equal(t, 3, view.ActiveTab)
	assert.Equal(t, KindLogs, view.Active.Kind)
	assert.False(t, view.Active.Loading)
	assert.True(t, view.Active.HasNextPage)

	logs, ok := view.Active.Data.(models.Page[models.Log])
	require.True(t, ok)
	require.Len(t, logs.Items, 1)
}

func TestAssemblePlaceholderKeepsSubQueriesDisabled(t *testing.T) {
	b, up := newTestBuilder(t, testBodies(plainTx), Settings{})

	res := query.Result[*models.Transaction]{IsPlaceholderData: true}
	view, err := b.Assemble(context.Background(), pageRequest(t, testHash, "/tx/"+testHash+"?tab=state"), res)
	require.NoError(t, err)

	assert.True(t, view.Loading)
	assert.True(t, view.Tags.Loading)
	assert.Equal(t, KindState, view.Active.Kind)
	assert.True(t, view.Active.Loading)
	assert.Zero(t, up.totalHits())
}

func TestBuildSuaveWrapped(t *testing.T) {
	b, _ := newTestBuilder(t, testBodies(wrappedTx), Settings{SuaveEnabled: true})

	view, err := b.Build(context.Background(), pageRequest(t, testHash, "/tx/"+testHash+"?tab=wrapped"))
	require.NoError(t, err)

	require.Len(t, view.Tabs, 7)
	assert.Equal(t, "Confidential compute tx details", view.Tabs[0].Title)
	assert.Equal(t, TabWrapped, view.Tabs[1].ID)
	assert.Equal(t, 1, view.ActiveTab)
	assert.Equal(t, KindWrapped, view.Active.Kind)

	wrapped, ok := view.Active.Data.(*WrappedView)
	require.True(t, ok)
	assert.Equal(t, "0xinner", wrapped.Hash)
}

func TestBuildAllTabs(t *testing.T) {
	b, _ := newTestBuilder(t, testBodies(plainTx), Settings{})

	req := pageRequest(t, testHash, "/tx/"+testHash)
	req.AllTabs = true
	view, err := b.Build(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, view.Sections, 6)
	for _, tab := range view.Tabs {
		s, ok := view.Sections[tab.ID]
		require.True(t, ok, tab.ID)
		assert.False(t, s.Loading, tab.ID)
	}
	assert.Equal(t, view.Sections[TabIndex].Kind, view.Active.Kind)
}

func TestBuildUnknownTxStaysPlaceholder(t *testing.T) {
	b, _ := newTestBuilder(t, map[string]string{}, Settings{})

	view, err := b.Build(context.Background(), pageRequest(t, testHash, "/tx/"+testHash))
	require.NoError(t, err)
	assert.True(t, view.Loading)
	assert.Nil(t, view.FetchedAt)
}

func TestBuildNullRecordStaysPlaceholder(t *testing.T) {
	b, up := newTestBuilder(t, testBodies("null"), Settings{})

	view, err := b.Build(context.Background(), pageRequest(t, testHash, "/tx/"+testHash+"?tab=logs"))
	require.NoError(t, err)

	assert.True(t, view.Loading)
	assert.True(t, view.Tags.Loading)
	assert.Nil(t, view.FetchedAt)
	assert.Equal(t, KindLogs, view.Active.Kind)
	assert.True(t, view.Active.Loading)
	assert.Equal(t, 1, up.totalHits(), "only the record itself is fetched")
}
