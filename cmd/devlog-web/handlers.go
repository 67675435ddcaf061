package main

import (
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"devlog"
	"devlog/internal/feed"
	"devlog/internal/render"
)

const searchLimit = 20

// handlers holds dependencies for all HTTP handler methods.
type handlers struct {
	engine   *devlog.Engine
	renderer *render.Renderer
	feeds    *feed.Generator
	site     siteMeta
	pageSize int
	initOnce sync.Once
	pages    map[string]*template.Template // per-page template sets
}

type siteMeta struct {
	Title       string
	Description string
}

// init parses templates on first use, guarded so concurrent first
// requests see one parse. Each page gets its own template tree:
// base.html + shared partials + page template. This avoids Go's
// template namespace collision where multiple files defining the same
// block name overwrite each other.
func (h *handlers) init() {
	h.initOnce.Do(func() {
		if h.pageSize < 1 {
			h.pageSize = 10
		}

		funcMap := template.FuncMap{
			"formatDate": formatDate,
			"add":        func(a, b int) int { return a + b },
			"sub":        func(a, b int) int { return a - b },
		}

		tmplFS, _ := fs.Sub(embedded, "templates")

		shared := []string{"base.html", "article_card.html", "error.html"}
		pages := []string{
			"home.html", "posts.html", "post.html", "categories.html",
			"category.html", "tags.html", "tag.html", "about.html",
			"projects.html", "contact.html", "search.html",
		}

		h.pages = make(map[string]*template.Template, len(pages))
		for _, page := range pages {
			files := append(append([]string{}, shared...), page)
			t := template.Must(template.New("").Funcs(funcMap).ParseFS(tmplFS, files...))
			h.pages[page] = t
		}
	})
}

// --- Template data types ---

type pageData struct {
	Site   siteMeta
	Active string
}

type homeData struct {
	pageData
	Featured []devlog.Article
	Latest   []devlog.Article
	Popular  []devlog.Article
}

type postsData struct {
	pageData
	Page *devlog.ArticlePage
}

type postData struct {
	pageData
	Article *devlog.Article
	Body    template.HTML
}

type categoriesData struct {
	pageData
	Categories []devlog.Category
}

type categoryData struct {
	pageData
	Category *devlog.Category
	Articles []devlog.Article
}

type tagsData struct {
	pageData
	Tags []devlog.Tag
}

type tagData struct {
	pageData
	Tag      *devlog.Tag
	Articles []devlog.Article
}

type aboutData struct {
	pageData
	Profile   *devlog.Profile
	Skills    map[string][]devlog.Skill
	Timeline  []devlog.TimelineEntry
	Stats     []devlog.Stat
	SiteStats *devlog.SiteStats
}

type projectsData struct {
	pageData
	Projects []devlog.Project
	Examples []devlog.CodeExample
}

type contactData struct {
	pageData
	Profile *devlog.Profile
}

type searchData struct {
	pageData
	Query   string
	Results []devlog.Article
}

type errorData struct {
	pageData
	Message string
}

// --- Helper methods ---

func (h *handlers) renderPage(w http.ResponseWriter, name string, data any) {
	h.init()

	t, ok := h.pages[name]
	if !ok {
		log.Printf("devlog-web: unknown page template: %s", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("devlog-web: template error: %v", err)
	}
}

func (h *handlers) renderError(w http.ResponseWriter, status int, msg string) {
	h.init()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	for _, t := range h.pages {
		if tmpl := t.Lookup("error"); tmpl != nil {
			tmpl.Execute(w, errorData{pageData: h.meta(""), Message: msg})
			return
		}
	}
}

func (h *handlers) meta(active string) pageData {
	return pageData{Site: h.site, Active: active}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// --- Page handlers ---

func (h *handlers) handleHome(w http.ResponseWriter, r *http.Request) {
	data := homeData{pageData: h.meta("home")}

	// List failures degrade to an empty section, logged not surfaced
	var err error
	if data.Featured, err = h.engine.GetFeaturedArticles(3); err != nil {
		log.Printf("devlog-web: featured articles: %v", err)
	}
	if data.Latest, err = h.engine.GetLatestArticles(5); err != nil {
		log.Printf("devlog-web: latest articles: %v", err)
	}
	if data.Popular, err = h.engine.GetPopularArticles(5); err != nil {
		log.Printf("devlog-web: popular articles: %v", err)
	}

	h.renderPage(w, "home.html", data)
}

func (h *handlers) handlePosts(w http.ResponseWriter, r *http.Request) {
	page := parseIntParam(r, "page", 1)

	h.init()
	result, err := h.engine.GetArticlePage(page, h.pageSize)
	if err != nil {
		log.Printf("devlog-web: article page: %v", err)
		h.renderError(w, http.StatusInternalServerError, "Failed to load posts")
		return
	}

	h.renderPage(w, "posts.html", postsData{pageData: h.meta("posts"), Page: result})
}

func (h *handlers) handlePost(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	article, err := h.engine.GetArticle(slug)
	if err != nil {
		log.Printf("devlog-web: article %q: %v", slug, err)
		h.renderError(w, http.StatusInternalServerError, "Failed to load post")
		return
	}
	if article == nil {
		h.renderError(w, http.StatusNotFound, "Post not found")
		return
	}

	body, err := h.renderer.HTML(article.Content)
	if err != nil {
		log.Printf("devlog-web: render %q: %v", slug, err)
		h.renderError(w, http.StatusInternalServerError, "Failed to render post")
		return
	}

	h.renderPage(w, "post.html", postData{
		pageData: h.meta("posts"),
		Article:  article,
		Body:     body,
	})
}

func (h *handlers) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.engine.GetCategories()
	if err != nil {
		log.Printf("devlog-web: categories: %v", err)
	}
	h.renderPage(w, "categories.html", categoriesData{
		pageData:   h.meta("categories"),
		Categories: categories,
	})
}

func (h *handlers) handleCategory(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	category, err := h.engine.GetCategory(slug)
	if err != nil {
		log.Printf("devlog-web: category %q: %v", slug, err)
		h.renderError(w, http.StatusInternalServerError, "Failed to load category")
		return
	}
	if category == nil {
		h.renderError(w, http.StatusNotFound, "Category not found")
		return
	}

	h.init()
	articles, err := h.engine.GetArticlesByCategory(slug, h.pageSize, 0)
	if err != nil {
		log.Printf("devlog-web: category articles %q: %v", slug, err)
	}

	h.renderPage(w, "category.html", categoryData{
		pageData: h.meta("categories"),
		Category: category,
		Articles: articles,
	})
}

func (h *handlers) handleTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.engine.GetTags()
	if err != nil {
		log.Printf("devlog-web: tags: %v", err)
	}
	h.renderPage(w, "tags.html", tagsData{pageData: h.meta("tags"), Tags: tags})
}

func (h *handlers) handleTag(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	tag, err := h.engine.GetTag(slug)
	if err != nil {
		log.Printf("devlog-web: tag %q: %v", slug, err)
		h.renderError(w, http.StatusInternalServerError, "Failed to load tag")
		return
	}
	if tag == nil {
		h.renderError(w, http.StatusNotFound, "Tag not found")
		return
	}

	h.init()
	articles, err := h.engine.GetArticlesByTag(slug, h.pageSize, 0)
	if err != nil {
		log.Printf("devlog-web: tag articles %q: %v", slug, err)
	}

	h.renderPage(w, "tag.html", tagData{
		pageData: h.meta("tags"),
		Tag:      tag,
		Articles: articles,
	})
}

func (h *handlers) handleAbout(w http.ResponseWriter, r *http.Request) {
	data := aboutData{pageData: h.meta("about")}

	var err error
	if data.Profile, err = h.engine.GetProfile(); err != nil {
		log.Printf("devlog-web: profile: %v", err)
	}
	if skills, err := h.engine.GetSkills(); err != nil {
		log.Printf("devlog-web: skills: %v", err)
	} else {
		data.Skills = groupSkills(skills)
	}
	if data.Timeline, err = h.engine.GetTimeline(); err != nil {
		log.Printf("devlog-web: timeline: %v", err)
	}
	if data.Stats, err = h.engine.GetStats(); err != nil {
		log.Printf("devlog-web: stats: %v", err)
	}
	if data.SiteStats, err = h.engine.GetSiteStats(); err != nil {
		log.Printf("devlog-web: site stats: %v", err)
	}

	h.renderPage(w, "about.html", data)
}

func groupSkills(skills []devlog.Skill) map[string][]devlog.Skill {
	grouped := make(map[string][]devlog.Skill)
	for _, sk := range skills {
		grouped[sk.Category] = append(grouped[sk.Category], sk)
	}
	return grouped
}

func (h *handlers) handleProjects(w http.ResponseWriter, r *http.Request) {
	data := projectsData{pageData: h.meta("projects")}

	var err error
	if data.Projects, err = h.engine.GetProjects(); err != nil {
		log.Printf("devlog-web: projects: %v", err)
	}
	if data.Examples, err = h.engine.GetCodeExamples(""); err != nil {
		log.Printf("devlog-web: code examples: %v", err)
	}

	h.renderPage(w, "projects.html", data)
}

func (h *handlers) handleContact(w http.ResponseWriter, r *http.Request) {
	profile, err := h.engine.GetProfile()
	if err != nil {
		log.Printf("devlog-web: profile: %v", err)
	}
	h.renderPage(w, "contact.html", contactData{
		pageData: h.meta("contact"),
		Profile:  profile,
	})
}

func (h *handlers) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	data := searchData{pageData: h.meta("search"), Query: query}
	if query != "" {
		results, err := h.engine.SearchArticles(query, searchLimit)
		if err != nil {
			log.Printf("devlog-web: search %q: %v", query, err)
		}
		data.Results = results
	}

	h.renderPage(w, "search.html", data)
}

// --- Feed handlers ---

func (h *handlers) handleRSS(w http.ResponseWriter, r *http.Request) {
	articles, err := h.engine.GetAllArticles()
	if err != nil {
		log.Printf("devlog-web: rss articles: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	out, err := h.feeds.RSS(articles)
	if err != nil {
		log.Printf("devlog-web: rss: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Write(out)
}

func (h *handlers) handleSitemap(w http.ResponseWriter, r *http.Request) {
	articles, err := h.engine.GetAllArticles()
	if err != nil {
		log.Printf("devlog-web: sitemap articles: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	categories, err := h.engine.GetCategories()
	if err != nil {
		log.Printf("devlog-web: sitemap categories: %v", err)
	}
	tags, err := h.engine.GetTags()
	if err != nil {
		log.Printf("devlog-web: sitemap tags: %v", err)
	}

	out, err := h.feeds.Sitemap(articles, categories, tags)
	if err != nil {
		log.Printf("devlog-web: sitemap: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write(out)
}
