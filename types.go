package devlog

import "time"

// EngineConfig configures the devlog content engine.
type EngineConfig struct {
	DBPath     string
	ContentDir string
	ReadOnly   bool // open the database without write access (web server)
}

// Article is a published blog post.
type Article struct {
	ID             int64      `json:"id"`
	Slug           string     `json:"slug"`
	Title          string     `json:"title"`
	Excerpt        string     `json:"excerpt"`
	Content        string     `json:"content"`
	CoverImage     string     `json:"cover_image,omitempty"`
	Category       string     `json:"category"`
	Tags           []string   `json:"tags"`
	Featured       bool       `json:"featured"`
	ReadingTime    int        `json:"reading_time"`
	ViewCount      int        `json:"view_count"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at"`
	SEOTitle       string     `json:"seo_title,omitempty"`
	SEODescription string     `json:"seo_description,omitempty"`
	SEOKeywords    []string   `json:"seo_keywords,omitempty"`
}

// ArticlePage is one page of an article listing.
type ArticlePage struct {
	Articles   []Article `json:"articles"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	Total      int       `json:"total"`
	TotalPages int       `json:"total_pages"`
}

// Category groups articles by topic.
type Category struct {
	ID           int64  `json:"id"`
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Color        string `json:"color,omitempty"`
	Icon         string `json:"icon,omitempty"`
	ArticleCount int    `json:"article_count"`
}

// Tag is a free-form label attached to articles.
type Tag struct {
	ID           int64  `json:"id"`
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	ArticleCount int    `json:"article_count"`
}

// Project is a portfolio entry.
type Project struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
	DemoURL     string   `json:"demo_url,omitempty"`
	GithubURL   string   `json:"github_url,omitempty"`
	Featured    bool     `json:"featured"`
}

// CodeExample is a highlighted snippet shown on the site.
type CodeExample struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language"`
	Code        string `json:"code"`
	Featured    bool   `json:"featured"`
}

// Profile is the site owner's bio.
type Profile struct {
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Location    string `json:"location,omitempty"`
	Email       string `json:"email,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	GithubURL   string `json:"github_url,omitempty"`
	LinkedinURL string `json:"linkedin_url,omitempty"`
	WebsiteURL  string `json:"website_url,omitempty"`
}

// Skill is a rated technology on the about page.
type Skill struct {
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Category string `json:"category"`
}

// TimelineEntry is one step of the career timeline.
type TimelineEntry struct {
	Year        string `json:"year"`
	Title       string `json:"title"`
	Company     string `json:"company,omitempty"`
	Description string `json:"description,omitempty"`
}

// Stat is a headline figure shown on the about page.
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Icon  string `json:"icon,omitempty"`
}

// SiteStats aggregates counts across the whole site.
type SiteStats struct {
	PublishedArticles int `json:"published_articles"`
	FeaturedArticles  int `json:"featured_articles"`
	Categories        int `json:"categories"`
	Tags              int `json:"tags"`
	TotalViews        int `json:"total_views"`
}

// SyncResult tallies a content sync run.
type SyncResult struct {
	Synced int      `json:"synced"`
	Failed int      `json:"failed"`
	Errors []string `json:"errors,omitempty"`
}
