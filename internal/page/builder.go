// Package page assembles the transaction details page from the query
// layer: it binds the route, fetches the record, derives tabs and the
// header, and loads the body of the active tab.
package page

import (
	"context"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/thanhnp/tx-explorer/internal/config"
	"github.com/thanhnp/tx-explorer/internal/explorerapi"
	"github.com/thanhnp/tx-explorer/internal/models"
	"github.com/thanhnp/tx-explorer/internal/query"
	"github.com/thanhnp/tx-explorer/internal/stubs"
)

// Title is the page heading
const Title = "Transaction details"

// maxParallelSections bounds concurrent tab loads of an expanded view
const maxParallelSections = 4

// Request carries the per-request page inputs
type Request struct {
	Hash     string
	Tab      string
	Referrer string
	Mobile   bool
	URL      url.URL // page URL tab links are derived from
	AllTabs  bool    // load every tab body, not only the active one
}

// Settings are the deployment-level page inputs
type Settings struct {
	SuaveEnabled bool
	Explorers    []config.ExplorerConfig
	AdProvider   string
	WaitBudget   time.Duration
}

// SettingsFromConfig extracts page settings from the app configuration
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		SuaveEnabled: cfg.Features.Suave.Enabled,
		Explorers:    cfg.NetworkExplorers,
		AdProvider:   cfg.Ads.TextProvider,
		WaitBudget:   cfg.Render.WaitBudget,
	}
}

// AdSlot is the text advertisement above the title
type AdSlot struct {
	Provider string `json:"provider"`
}

// TabView is a tab bar entry
type TabView struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

// View is the assembled page
type View struct {
	Title     string             `json:"title"`
	Hash      string             `json:"hash"`
	Loading   bool               `json:"loading"`
	Ad        *AdSlot            `json:"ad,omitempty"`
	BackLink  *Link              `json:"back_link,omitempty"`
	Tags      TagCluster         `json:"tags"`
	Tabs      []TabView          `json:"tabs"`
	ActiveTab int                `json:"active_tab"`
	Active    Section            `json:"active"`
	Sections  map[string]Section `json:"sections,omitempty"`
	FetchedAt *time.Time         `json:"fetched_at,omitempty"`
}

// Builder assembles page views
type Builder struct {
	client   *query.Client
	settings Settings
	contents Contents
}

// NewBuilder creates a Builder whose tabs read through client
func NewBuilder(client *query.Client, settings Settings) *Builder {
	return &Builder{
		client:   client,
		settings: settings,
		contents: DefaultContents(client, settings.WaitBudget),
	}
}

// WithContents replaces the fixed tab bodies
func (b *Builder) WithContents(contents Contents) *Builder {
	b.contents = contents
	return b
}

// Client returns the query client the builder reads through
func (b *Builder) Client() *query.Client {
	return b.client
}

// TXParams are the path params of every transaction resource
func TXParams(hash string) explorerapi.PathParams {
	return explorerapi.PathParams{"hash": hash}
}

// TXOptions are the query options of the transaction record. The query
// only runs once a hash is known.
func TXOptions(hash string, wait time.Duration) query.Options[*models.Transaction] {
	return query.Options[*models.Transaction]{
		Enabled:     hash != "",
		Placeholder: stubs.TX,
		Wait:        wait,
	}
}

// Build fetches the record within the wait budget and assembles the page
func (b *Builder) Build(ctx context.Context, req Request) (*View, error) {
	res := query.Fetch(ctx, b.client, explorerapi.ResourceTx, TXParams(req.Hash), TXOptions(req.Hash, b.settings.WaitBudget))
	return b.Assemble(ctx, req, res)
}

// Assemble derives the page from a transaction query result
func (b *Builder) Assemble(ctx context.Context, req Request, res query.Result[*models.Transaction]) (*View, error) {
	tx := res.Data
	loading := res.IsPlaceholderData
	if tx == nil {
		// a null body decodes to no record; keep showing the skeleton
		tx = stubs.TX()
		loading = true
	}

	tabs := BuildTabs(tx, b.settings.SuaveEnabled, b.contents)
	active := TabIndexFromQuery(tabs, req.Tab)

	view := &View{
		Title:     Title,
		Hash:      req.Hash,
		Loading:   loading,
		BackLink:  BackLink(req.Referrer),
		Tags:      buildTagCluster(tx, loading, req, b.settings.Explorers),
		Tabs:      make([]TabView, len(tabs)),
		ActiveTab: active,
	}
	if b.settings.AdProvider != "" && b.settings.AdProvider != "none" {
		view.Ad = &AdSlot{Provider: b.settings.AdProvider}
	}
	if !loading && !res.FetchedAt.IsZero() {
		fetchedAt := res.FetchedAt
		view.FetchedAt = &fetchedAt
	}
	for i, t := range tabs {
		view.Tabs[i] = TabView{ID: t.ID, Title: t.Title, URL: TabURL(req.URL, t.ID), Active: i == active}
	}

	in := Input{Hash: req.Hash, TX: tx, Loading: loading}
	if !req.AllTabs {
		view.Active = tabs[active].Content.Load(ctx, in)
		return view, ctx.Err()
	}

	sections := make([]Section, len(tabs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelSections)
	for i, t := range tabs {
		g.Go(func() error {
			sections[i] = t.Content.Load(gctx, in)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	view.Active = sections[active]
	view.Sections = make(map[string]Section, len(tabs))
	for i, t := range tabs {
		view.Sections[t.ID] = sections[i]
	}
	return view, nil
}
