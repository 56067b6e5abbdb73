package handlers

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thanhnp/tx-explorer/internal/explorerapi"
	"github.com/thanhnp/tx-explorer/internal/metrics"
	"github.com/thanhnp/tx-explorer/internal/models"
	"github.com/thanhnp/tx-explorer/internal/page"
	"github.com/thanhnp/tx-explorer/internal/query"
	"github.com/thanhnp/tx-explorer/internal/render"
	"github.com/thanhnp/tx-explorer/pkg/logger"
)

// refParam forwards the page's referrer to its stream request
const refParam = "ref"

// PageHandler serves the transaction details page
type PageHandler struct {
	builder       *page.Builder
	renderer      *render.Renderer
	streamTimeout time.Duration
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(builder *page.Builder, renderer *render.Renderer, streamTimeout time.Duration) *PageHandler {
	if streamTimeout <= 0 {
		streamTimeout = time.Minute
	}
	return &PageHandler{
		builder:       builder,
		renderer:      renderer,
		streamTimeout: streamTimeout,
	}
}

func renderState(v *page.View) string {
	if v.Loading {
		return "loading"
	}
	return "loaded"
}

// pagePath is the canonical page location of hash
func pagePath(hash string) string {
	return "/tx/" + url.PathEscape(hash)
}

// streamURL is where a loading page picks up the resolved render
func streamURL(req page.Request) string {
	if req.Hash == "" {
		return ""
	}
	q := req.URL.Query()
	q.Del("hash")
	if req.Referrer != "" {
		q.Set(refParam, req.Referrer)
	}
	u := url.URL{Path: pagePath(req.Hash) + "/stream", RawQuery: q.Encode()}
	return u.String()
}

// Page renders the HTML page
// GET /tx/:hash, GET /tx?hash=
func (h *PageHandler) Page(c *gin.Context) {
	req := page.NewRequest(c.Request, c.Param("hash"))

	view, err := h.builder.Build(c.Request.Context(), req)
	if err != nil {
		// the client went away while we waited for data
		logger.Debug("page build aborted", "hash", req.Hash, "error", err)
		return
	}

	metrics.PageRenders.WithLabelValues("html", renderState(view)).Inc()
	c.HTML(http.StatusOK, render.PageTemplate, render.Data{View: view, StreamURL: streamURL(req)})
}

// View returns the assembled page as JSON. expand=all loads every tab.
// GET /api/v1/pages/tx/:hash, GET /api/v1/pages/tx?hash=
func (h *PageHandler) View(c *gin.Context) {
	req := page.NewRequest(c.Request, c.Param("hash"))
	req.AllTabs = c.Query("expand") == "all"

	view, err := h.builder.Build(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	metrics.PageRenders.WithLabelValues("json", renderState(view)).Inc()
	c.JSON(http.StatusOK, view)
}

// Stream pushes the page body once the record resolves, then closes
// GET /tx/:hash/stream
func (h *PageHandler) Stream(c *gin.Context) {
	hash := c.Param("hash")
	req := page.NewRequest(c.Request, hash)
	req.Referrer = c.Query(refParam)
	req.URL = pageURL(c.Request.URL, hash)

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.streamTimeout)
	defer cancel()

	obs := query.NewObserver[*models.Transaction](h.builder.Client(), explorerapi.ResourceTx)
	defer obs.Close()
	obs.SetParams(page.TXParams(hash), page.TXOptions(hash, 0))

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case res, ok := <-obs.Updates():
			if !ok {
				return false
			}
			if res.IsPlaceholderData {
				if res.Err == nil {
					return true
				}
				// a failed or disabled query keeps the skeleton
				c.SSEvent("done", "")
				return false
			}

			view, err := h.builder.Assemble(ctx, req, res)
			if err != nil {
				return false
			}
			body, err := h.renderer.Body(view)
			if err != nil {
				logger.Error("failed to render page body", err, "hash", hash)
				return false
			}

			metrics.PageRenders.WithLabelValues("sse", renderState(view)).Inc()
			c.SSEvent("page", body)
			c.SSEvent("done", "")
			return false
		}
	})
}

// pageURL rewrites a stream URL into the page URL it belongs to
func pageURL(u *url.URL, hash string) url.URL {
	q := u.Query()
	q.Del(refParam)
	return url.URL{Path: pagePath(hash), RawQuery: q.Encode()}
}
