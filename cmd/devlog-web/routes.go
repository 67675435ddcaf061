package main

import (
	"embed"
	"io/fs"
	"net/http"

	"devlog"
	"devlog/internal/feed"
	"devlog/internal/render"
	"devlog/internal/storage"
)

//go:embed templates static
var embedded embed.FS

// newRouter sets up all routes using Go 1.22+ enhanced routing.
func newRouter(engine *devlog.Engine, cfg *storage.Config) http.Handler {
	mux := http.NewServeMux()

	// Static files
	staticFS, _ := fs.Sub(embedded, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	h := &handlers{
		engine:   engine,
		renderer: render.New(),
		feeds:    feed.NewGenerator(cfg.Site.BaseURL, cfg.Site.Title, cfg.Site.Description),
		site:     siteMeta{Title: cfg.Site.Title, Description: cfg.Site.Description},
		pageSize: cfg.Web.PageSize,
	}

	mux.HandleFunc("GET /{$}", h.handleHome)
	mux.HandleFunc("GET /posts", h.handlePosts)
	mux.HandleFunc("GET /posts/{slug}", h.handlePost)
	mux.HandleFunc("GET /categories", h.handleCategories)
	mux.HandleFunc("GET /categories/{slug}", h.handleCategory)
	mux.HandleFunc("GET /tags", h.handleTags)
	mux.HandleFunc("GET /tags/{slug}", h.handleTag)
	mux.HandleFunc("GET /about", h.handleAbout)
	mux.HandleFunc("GET /projects", h.handleProjects)
	mux.HandleFunc("GET /contact", h.handleContact)
	mux.HandleFunc("GET /search", h.handleSearch)
	mux.HandleFunc("GET /rss.xml", h.handleRSS)
	mux.HandleFunc("GET /sitemap.xml", h.handleSitemap)

	return mux
}
