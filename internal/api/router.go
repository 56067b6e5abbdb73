package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thanhnp/tx-explorer/internal/api/handlers"
	"github.com/thanhnp/tx-explorer/internal/api/middleware"
	"github.com/thanhnp/tx-explorer/internal/render"
)

// Router wraps the Gin router with handlers
type Router struct {
	engine      *gin.Engine
	pageHandler *handlers.PageHandler
}

// NewRouter creates a new Router with all handlers
func NewRouter(mode string, pageHandler *handlers.PageHandler, renderer *render.Renderer) *Router {
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)

	r := &Router{
		engine:      gin.New(),
		pageHandler: pageHandler,
	}
	r.engine.SetHTMLTemplate(renderer.Template())

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// setupMiddleware configures middleware
func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.Logger())
	r.engine.Use(middleware.CORS())
}

// setupRoutes configures page and API routes
func (r *Router) setupRoutes() {
	// Health check
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Transaction page
	tx := r.engine.Group("/tx")
	{
		tx.GET("", r.pageHandler.Page)
		tx.GET("/:hash", r.pageHandler.Page)
		tx.GET("/:hash/stream", r.pageHandler.Stream)
	}

	// API v1 routes
	v1 := r.engine.Group("/api/v1")
	v1.Use(middleware.ValidateHash())
	{
		pages := v1.Group("/pages")
		{
			pages.GET("/tx", r.pageHandler.View)
			pages.GET("/tx/:hash", r.pageHandler.View)
		}
	}
}

// Engine returns the underlying Gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
