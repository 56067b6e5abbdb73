package page

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/thanhnp/tx-explorer/internal/config"
	"github.com/thanhnp/tx-explorer/internal/models"
)

// Link is a labelled navigation target
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Tag is a badge shown beside the page title
type Tag struct {
	Label       string `json:"label"`
	DisplayName string `json:"display_name"`
}

// ExplorerLink points at the same hash on another explorer
type ExplorerLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// TagCluster is everything rendered after the page title
type TagCluster struct {
	Loading          bool           `json:"loading"`
	Tags             []Tag          `json:"tags"`
	Explorers        []ExplorerLink `json:"explorers"`
	HideExplorerText bool           `json:"hide_explorer_text"`
}

// Tags returns the badges for tx
func Tags(tx *models.Transaction) []Tag {
	if tx == nil || tx.TxTag == "" {
		return nil
	}
	return []Tag{{Label: tx.TxTag, DisplayName: tx.TxTag}}
}

// NetworkExplorerLinks builds links to every explorer that knows how to
// show entities of kind
func NetworkExplorerLinks(explorers []config.ExplorerConfig, kind, hash string) []ExplorerLink {
	if hash == "" {
		return nil
	}

	var links []ExplorerLink
	for _, e := range explorers {
		path, ok := e.Paths[kind]
		if !ok || path == "" {
			continue
		}
		links = append(links, ExplorerLink{
			Title: e.Title,
			URL:   strings.TrimRight(e.BaseURL, "/") + "/" + strings.Trim(path, "/") + "/" + url.PathEscape(hash),
		})
	}
	return links
}

// HideExplorerText reports whether explorer labels give way to a tag on
// narrow screens
func HideExplorerText(mobile bool, tx *models.Transaction) bool {
	return mobile && tx != nil && tx.TxTag != ""
}

// IsMobile guesses a narrow viewport from client hints or the user agent
func IsMobile(r *http.Request) bool {
	if r.Header.Get("Sec-CH-UA-Mobile") == "?1" {
		return true
	}
	return strings.Contains(r.UserAgent(), "Mobi")
}

// BackLink returns the link back to the transactions list when the
// visitor came from it. Any referrer containing /txs qualifies, query
// strings included.
func BackLink(referrer string) *Link {
	if referrer == "" || !strings.Contains(referrer, "/txs") {
		return nil
	}
	return &Link{Label: "Back to transactions list", URL: referrer}
}

func buildTagCluster(tx *models.Transaction, loading bool, req Request, explorers []config.ExplorerConfig) TagCluster {
	return TagCluster{
		Loading:          loading,
		Tags:             Tags(tx),
		Explorers:        NetworkExplorerLinks(explorers, "tx", req.Hash),
		HideExplorerText: HideExplorerText(req.Mobile, tx),
	}
}
