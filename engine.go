package devlog

import (
	"fmt"
	"log"

	"devlog/internal/content"
	"devlog/internal/storage"
)

// Engine is the public API over the site's content: articles, taxonomy,
// portfolio data, and the markdown synchronizer.
type Engine struct {
	store  storage.Store
	syncer *content.Syncer
}

// NewEngine opens the database at cfg.DBPath and returns an engine.
// With cfg.ReadOnly the database is opened without write access and
// sync operations fail.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	var store *storage.SQLiteStore
	var err error
	if cfg.ReadOnly {
		store, err = storage.NewReadOnlyStore(cfg.DBPath)
	} else {
		store, err = storage.NewStore(cfg.DBPath)
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return &Engine{
		store:  store,
		syncer: content.NewSyncer(store, cfg.ContentDir),
	}, nil
}

// NewEngineWithStore wires an engine around an existing store. Tests and
// callers with custom storage use this.
func NewEngineWithStore(store storage.Store, contentDir string) *Engine {
	return &Engine{
		store:  store,
		syncer: content.NewSyncer(store, contentDir),
	}
}

// Close releases all resources held by the engine.
func (e *Engine) Close() error {
	return e.store.Close()
}

// CheckConnection verifies the database is reachable.
func (e *Engine) CheckConnection() error {
	return e.syncer.CheckConnection()
}

// --- articles ---

// GetArticle returns the published article with the given slug, or nil
// if none exists. Each successful lookup bumps the article's view
// counter; counter failures are logged, never surfaced.
func (e *Engine) GetArticle(slug string) (*Article, error) {
	a, err := e.store.GetArticleBySlug(slug)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, nil
	}

	if err := e.store.IncrementViewCount(slug); err != nil {
		log.Printf("devlog: view count update failed for %q: %v", slug, err)
	}

	result := articleFromInternal(*a)
	return &result, nil
}

// GetArticlePage returns one page of published articles, newest first.
// Pages are 1-based; a page past the end is empty, not an error.
func (e *Engine) GetArticlePage(page, pageSize int) (*ArticlePage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	total, err := e.store.CountArticles()
	if err != nil {
		return nil, err
	}

	articles, err := e.store.ListArticles(pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	return &ArticlePage{
		Articles:   articlesFromInternal(articles),
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: (total + pageSize - 1) / pageSize,
	}, nil
}

// GetAllArticles returns every published article, newest first.
func (e *Engine) GetAllArticles() ([]Article, error) {
	articles, err := e.store.ListAllArticles()
	if err != nil {
		return nil, err
	}
	return articlesFromInternal(articles), nil
}

// GetFeaturedArticles returns up to limit featured articles, newest first.
func (e *Engine) GetFeaturedArticles(limit int) ([]Article, error) {
	articles, err := e.store.GetFeaturedArticles(limit)
	if err != nil {
		return nil, err
	}
	return articlesFromInternal(articles), nil
}

// GetLatestArticles returns the most recently published articles.
func (e *Engine) GetLatestArticles(limit int) ([]Article, error) {
	articles, err := e.store.GetLatestArticles(limit)
	if err != nil {
		return nil, err
	}
	return articlesFromInternal(articles), nil
}

// GetPopularArticles returns the most viewed articles.
func (e *Engine) GetPopularArticles(limit int) ([]Article, error) {
	articles, err := e.store.GetPopularArticles(limit)
	if err != nil {
		return nil, err
	}
	return articlesFromInternal(articles), nil
}

// GetArticlesByCategory returns published articles in a category.
func (e *Engine) GetArticlesByCategory(categorySlug string, limit, offset int) ([]Article, error) {
	articles, err := e.store.GetArticlesByCategory(categorySlug, limit, offset)
	if err != nil {
		return nil, err
	}
	return articlesFromInternal(articles), nil
}

// GetArticlesByTag returns published articles carrying a tag.
func (e *Engine) GetArticlesByTag(tagSlug string, limit, offset int) ([]Article, error) {
	articles, err := e.store.GetArticlesByTag(tagSlug, limit, offset)
	if err != nil {
		return nil, err
	}
	return articlesFromInternal(articles), nil
}

// SearchArticles returns up to limit published articles matching the
// query case-insensitively across title, excerpt, and body.
func (e *Engine) SearchArticles(query string, limit int) ([]Article, error) {
	articles, err := e.store.SearchArticles(query, limit)
	if err != nil {
		return nil, err
	}
	return articlesFromInternal(articles), nil
}

// GetSiteStats returns headline counts across the whole site.
func (e *Engine) GetSiteStats() (*SiteStats, error) {
	stats, err := e.store.GetSiteStats()
	if err != nil {
		return nil, err
	}
	return &SiteStats{
		PublishedArticles: stats.PublishedArticles,
		FeaturedArticles:  stats.FeaturedArticles,
		Categories:        stats.Categories,
		Tags:              stats.Tags,
		TotalViews:        stats.TotalViews,
	}, nil
}

// --- taxonomy ---

// GetCategories returns all categories, most populated first.
func (e *Engine) GetCategories() ([]Category, error) {
	categories, err := e.store.ListCategories()
	if err != nil {
		return nil, err
	}
	out := make([]Category, len(categories))
	for i, c := range categories {
		out[i] = categoryFromInternal(c)
	}
	return out, nil
}

// GetCategory returns the category with the given slug, or nil.
func (e *Engine) GetCategory(slug string) (*Category, error) {
	c, err := e.store.GetCategoryBySlug(slug)
	if err != nil || c == nil {
		return nil, err
	}
	result := categoryFromInternal(*c)
	return &result, nil
}

// GetTags returns all tags, most used first.
func (e *Engine) GetTags() ([]Tag, error) {
	tags, err := e.store.ListTags()
	if err != nil {
		return nil, err
	}
	out := make([]Tag, len(tags))
	for i, t := range tags {
		out[i] = Tag{ID: t.ID, Slug: t.Slug, Name: t.Name, ArticleCount: t.ArticleCount}
	}
	return out, nil
}

// GetTag returns the tag with the given slug, or nil.
func (e *Engine) GetTag(slug string) (*Tag, error) {
	t, err := e.store.GetTagBySlug(slug)
	if err != nil || t == nil {
		return nil, err
	}
	return &Tag{ID: t.ID, Slug: t.Slug, Name: t.Name, ArticleCount: t.ArticleCount}, nil
}

// --- portfolio ---

// GetProjects returns active projects in display order.
func (e *Engine) GetProjects() ([]Project, error) {
	projects, err := e.store.ListProjects()
	if err != nil {
		return nil, err
	}
	return projectsFromInternal(projects), nil
}

// GetFeaturedProjects returns active projects flagged as featured.
func (e *Engine) GetFeaturedProjects() ([]Project, error) {
	projects, err := e.store.GetFeaturedProjects()
	if err != nil {
		return nil, err
	}
	return projectsFromInternal(projects), nil
}

// GetProject returns the project with the given id, or nil.
func (e *Engine) GetProject(id int64) (*Project, error) {
	p, err := e.store.GetProjectByID(id)
	if err != nil || p == nil {
		return nil, err
	}
	return &Project{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Tech:        p.Tech,
		DemoURL:     p.DemoURL,
		GithubURL:   p.GithubURL,
		Featured:    p.Featured,
	}, nil
}

// GetCodeExamples returns code examples, optionally filtered by language.
func (e *Engine) GetCodeExamples(language string) ([]CodeExample, error) {
	examples, err := e.store.ListCodeExamples(language)
	if err != nil {
		return nil, err
	}
	return codeExamplesFromInternal(examples), nil
}

// GetFeaturedCodeExamples returns code examples flagged as featured.
func (e *Engine) GetFeaturedCodeExamples() ([]CodeExample, error) {
	examples, err := e.store.GetFeaturedCodeExamples()
	if err != nil {
		return nil, err
	}
	return codeExamplesFromInternal(examples), nil
}

// GetProfile returns the site owner's profile, or nil if none is seeded.
func (e *Engine) GetProfile() (*Profile, error) {
	p, err := e.store.GetProfile()
	if err != nil || p == nil {
		return nil, err
	}
	return &Profile{
		Name: p.Name, Title: p.Title, Bio: p.Bio, Location: p.Location,
		Email: p.Email, AvatarURL: p.AvatarURL, GithubURL: p.GithubURL,
		LinkedinURL: p.LinkedinURL, WebsiteURL: p.WebsiteURL,
	}, nil
}

// GetSkills returns all skills in display order.
func (e *Engine) GetSkills() ([]Skill, error) {
	skills, err := e.store.ListSkills()
	if err != nil {
		return nil, err
	}
	out := make([]Skill, len(skills))
	for i, sk := range skills {
		out[i] = Skill{Name: sk.Name, Level: sk.Level, Category: sk.Category}
	}
	return out, nil
}

// GetSkillCategories returns the distinct skill categories in display order.
func (e *Engine) GetSkillCategories() ([]string, error) {
	return e.store.ListSkillCategories()
}

// GetTimeline returns the career timeline in display order.
func (e *Engine) GetTimeline() ([]TimelineEntry, error) {
	entries, err := e.store.ListTimeline()
	if err != nil {
		return nil, err
	}
	out := make([]TimelineEntry, len(entries))
	for i, en := range entries {
		out[i] = TimelineEntry{
			Year: en.Year, Title: en.Title,
			Company: en.Company, Description: en.Description,
		}
	}
	return out, nil
}

// GetStats returns the about-page stats in display order.
func (e *Engine) GetStats() ([]Stat, error) {
	stats, err := e.store.ListStats()
	if err != nil {
		return nil, err
	}
	out := make([]Stat, len(stats))
	for i, st := range stats {
		out[i] = Stat{Label: st.Label, Value: st.Value, Icon: st.Icon}
	}
	return out, nil
}

// --- sync ---

// SyncContent syncs every markdown file in the content directory, then
// the category definitions, then refreshes the denormalized counters.
func (e *Engine) SyncContent() (*SyncResult, error) {
	result, err := e.syncer.SyncAll()
	if result == nil {
		return nil, err
	}
	return &SyncResult{
		Synced: result.Synced,
		Failed: result.Failed,
		Errors: result.Errors,
	}, err
}

// SyncContentFile syncs a single markdown file.
func (e *Engine) SyncContentFile(path string) error {
	return e.syncer.SyncFile(path)
}

// RecountArticleCounts refreshes category and tag article counters.
func (e *Engine) RecountArticleCounts() error {
	return e.syncer.RecountArticleCounts()
}

// TableCounts returns per-table row counts for manual inspection.
func (e *Engine) TableCounts() (map[string]int, error) {
	return e.store.TableCounts()
}

// Store exposes the underlying store for maintenance commands.
func (e *Engine) Store() storage.Store {
	return e.store
}

// --- internal type conversion helpers ---

func articleFromInternal(a storage.Article) Article {
	return Article{
		ID:             a.ID,
		Slug:           a.Slug,
		Title:          a.Title,
		Excerpt:        a.Excerpt,
		Content:        a.Content,
		CoverImage:     a.CoverImage,
		Category:       a.Category,
		Tags:           a.Tags,
		Featured:       a.Featured,
		ReadingTime:    a.ReadingTime,
		ViewCount:      a.ViewCount,
		PublishedAt:    a.PublishedAt,
		UpdatedAt:      a.UpdatedAt,
		SEOTitle:       a.SEOTitle,
		SEODescription: a.SEODescription,
		SEOKeywords:    a.SEOKeywords,
	}
}

func articlesFromInternal(articles []storage.Article) []Article {
	out := make([]Article, len(articles))
	for i, a := range articles {
		out[i] = articleFromInternal(a)
	}
	return out
}

func categoryFromInternal(c storage.Category) Category {
	return Category{
		ID:           c.ID,
		Slug:         c.Slug,
		Name:         c.Name,
		Description:  c.Description,
		Color:        c.Color,
		Icon:         c.Icon,
		ArticleCount: c.ArticleCount,
	}
}

func codeExamplesFromInternal(examples []storage.CodeExample) []CodeExample {
	out := make([]CodeExample, len(examples))
	for i, ex := range examples {
		out[i] = CodeExample{
			ID: ex.ID, Title: ex.Title, Description: ex.Description,
			Language: ex.Language, Code: ex.Code, Featured: ex.Featured,
		}
	}
	return out
}

func projectsFromInternal(projects []storage.Project) []Project {
	out := make([]Project, len(projects))
	for i, p := range projects {
		out[i] = Project{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Tech:        p.Tech,
			DemoURL:     p.DemoURL,
			GithubURL:   p.GithubURL,
			Featured:    p.Featured,
		}
	}
	return out
}
