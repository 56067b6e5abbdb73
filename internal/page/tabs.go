package page

import (
	"net/url"

	"github.com/thanhnp/tx-explorer/internal/models"
)

// Tab ids, as they appear in the tab query parameter
const (
	TabIndex          = "index"
	TabWrapped        = "wrapped"
	TabTokenTransfers = "token_transfers"
	TabInternal       = "internal"
	TabLogs           = "logs"
	TabState          = "state"
	TabRawTrace       = "raw_trace"
)

// Tab is one entry of the page's tab bar
type Tab struct {
	ID      string
	Title   string
	Content Content
}

// Contents are the tab bodies that do not depend on the record shape
type Contents struct {
	Details        Content
	TokenTransfers Content
	Internal       Content
	Logs           Content
	State          Content
	RawTrace       Content
}

// BuildTabs derives the ordered tab list from the record and the
// confidential compute flag. The wrapped tab exists only when the flag is
// on and the record carries a wrapped companion, and it also renames the
// details tab.
func BuildTabs(tx *models.Transaction, suaveEnabled bool, contents Contents) []Tab {
	confidential := suaveEnabled && tx.HasWrapped()

	detailsTitle := "Details"
	var wrapped *Tab
	if confidential {
		detailsTitle = "Confidential compute tx details"
		wrapped = &Tab{ID: TabWrapped, Title: "Regular tx details", Content: WrappedContent{Data: tx.Wrapped}}
	}

	candidates := []*Tab{
		{ID: TabIndex, Title: detailsTitle, Content: contents.Details},
		wrapped,
		{ID: TabTokenTransfers, Title: "Token transfers", Content: contents.TokenTransfers},
		{ID: TabInternal, Title: "Internal txns", Content: contents.Internal},
		{ID: TabLogs, Title: "Logs", Content: contents.Logs},
		{ID: TabState, Title: "State", Content: contents.State},
		{ID: TabRawTrace, Title: "Raw trace", Content: contents.RawTrace},
	}

	tabs := make([]Tab, 0, len(candidates))
	for _, t := range candidates {
		if t != nil {
			tabs = append(tabs, *t)
		}
	}
	return tabs
}

// TabIndexFromQuery returns the position of the tab named by the query,
// or 0 when the id is empty or unknown
func TabIndexFromQuery(tabs []Tab, tab string) int {
	if tab == "" {
		return 0
	}
	for i, t := range tabs {
		if t.ID == tab {
			return i
		}
	}
	return 0
}

// TabURL links to tab id on the page at u. Other query keys are kept;
// the index tab is addressed by leaving tab out.
func TabURL(u url.URL, id string) string {
	q := u.Query()
	q.Del("tab")
	if id != TabIndex {
		q.Set("tab", id)
	}
	u.RawQuery = q.Encode()
	u.Fragment = ""
	return u.RequestURI()
}
