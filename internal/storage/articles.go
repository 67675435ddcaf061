package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const articleColumns = `id, slug, title, excerpt, content, cover_image, category,
	tags, status, featured, reading_time, view_count, published_at,
	created_at, updated_at, seo_title, seo_description, seo_keywords`

func scanArticle(row interface{ Scan(...any) error }) (*Article, error) {
	var a Article
	var coverImage, seoTitle, seoDescription sql.NullString
	var tagsJSON, keywordsJSON string
	var publishedAt sql.NullTime

	err := row.Scan(
		&a.ID, &a.Slug, &a.Title, &a.Excerpt, &a.Content, &coverImage,
		&a.Category, &tagsJSON, &a.Status, &a.Featured, &a.ReadingTime,
		&a.ViewCount, &publishedAt, &a.CreatedAt, &a.UpdatedAt,
		&seoTitle, &seoDescription, &keywordsJSON,
	)
	if err != nil {
		return nil, err
	}

	a.CoverImage = coverImage.String
	a.SEOTitle = seoTitle.String
	a.SEODescription = seoDescription.String
	a.Tags = decodeJSON(tagsJSON)
	a.SEOKeywords = decodeJSON(keywordsJSON)
	if publishedAt.Valid {
		t := publishedAt.Time
		a.PublishedAt = &t
	}
	return &a, nil
}

func scanArticles(rows *sql.Rows) ([]Article, error) {
	defer rows.Close()
	var articles []Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *a)
	}
	return articles, rows.Err()
}

// UpsertArticle inserts the article or, if the slug already exists,
// replaces the row's content in place. Returns the row id either way.
func (s *SQLiteStore) UpsertArticle(a *Article) (int64, error) {
	publishedAt := time.Now()
	if a.PublishedAt != nil {
		publishedAt = *a.PublishedAt
	}

	var id int64
	err := s.db.QueryRow(`
		INSERT INTO articles (slug, title, excerpt, content, cover_image,
			category, tags, status, featured, reading_time, published_at,
			seo_title, seo_description, seo_keywords)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			title = excluded.title,
			excerpt = excluded.excerpt,
			content = excluded.content,
			cover_image = excluded.cover_image,
			category = excluded.category,
			tags = excluded.tags,
			status = excluded.status,
			featured = excluded.featured,
			reading_time = excluded.reading_time,
			published_at = excluded.published_at,
			seo_title = excluded.seo_title,
			seo_description = excluded.seo_description,
			seo_keywords = excluded.seo_keywords,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id`,
		a.Slug, a.Title, a.Excerpt, a.Content, a.CoverImage,
		a.Category, encodeJSON(a.Tags), a.Status, a.Featured, a.ReadingTime,
		publishedAt, a.SEOTitle, a.SEODescription, encodeJSON(a.SEOKeywords),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert article %q: %w", a.Slug, err)
	}
	return id, nil
}

// GetArticleBySlug returns the published article with the given slug,
// or nil if no such article exists.
func (s *SQLiteStore) GetArticleBySlug(slug string) (*Article, error) {
	row := s.db.QueryRow(
		"SELECT "+articleColumns+" FROM articles WHERE slug = ? AND status = 'published'",
		slug,
	)
	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article %q: %w", slug, err)
	}
	return a, nil
}

// ListArticles returns a page of published articles, newest first.
func (s *SQLiteStore) ListArticles(limit, offset int) ([]Article, error) {
	rows, err := s.db.Query(
		"SELECT "+articleColumns+` FROM articles
		WHERE status = 'published'
		ORDER BY published_at DESC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	return scanArticles(rows)
}

// ListAllArticles returns every published article, newest first. Feed
// and sitemap documents are built from this so they stay complete.
func (s *SQLiteStore) ListAllArticles() ([]Article, error) {
	rows, err := s.db.Query(
		"SELECT " + articleColumns + ` FROM articles
		WHERE status = 'published'
		ORDER BY published_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	return scanArticles(rows)
}

// CountArticles returns the number of published articles.
func (s *SQLiteStore) CountArticles() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM articles WHERE status = 'published'").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return n, nil
}

// GetFeaturedArticles returns published articles flagged as featured, newest first.
func (s *SQLiteStore) GetFeaturedArticles(limit int) ([]Article, error) {
	rows, err := s.db.Query(
		"SELECT "+articleColumns+` FROM articles
		WHERE status = 'published' AND featured = 1
		ORDER BY published_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get featured articles: %w", err)
	}
	return scanArticles(rows)
}

// GetLatestArticles returns the most recently published articles.
func (s *SQLiteStore) GetLatestArticles(limit int) ([]Article, error) {
	return s.ListArticles(limit, 0)
}

// GetPopularArticles returns published articles by view count, most viewed first.
func (s *SQLiteStore) GetPopularArticles(limit int) ([]Article, error) {
	rows, err := s.db.Query(
		"SELECT "+articleColumns+` FROM articles
		WHERE status = 'published'
		ORDER BY view_count DESC, published_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get popular articles: %w", err)
	}
	return scanArticles(rows)
}

// GetArticlesByCategory returns published articles in a category, newest first.
func (s *SQLiteStore) GetArticlesByCategory(categorySlug string, limit, offset int) ([]Article, error) {
	rows, err := s.db.Query(
		"SELECT "+articleColumns+` FROM articles
		WHERE status = 'published' AND category = ?
		ORDER BY published_at DESC LIMIT ? OFFSET ?`,
		categorySlug, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get articles for category %q: %w", categorySlug, err)
	}
	return scanArticles(rows)
}

// GetArticlesByTag returns published articles carrying a tag, newest first.
// The article_tags join table is the source of truth for membership.
func (s *SQLiteStore) GetArticlesByTag(tagSlug string, limit, offset int) ([]Article, error) {
	rows, err := s.db.Query(
		`SELECT a.id, a.slug, a.title, a.excerpt, a.content, a.cover_image,
			a.category, a.tags, a.status, a.featured, a.reading_time,
			a.view_count, a.published_at, a.created_at, a.updated_at,
			a.seo_title, a.seo_description, a.seo_keywords
		FROM articles a
		JOIN article_tags at ON at.article_id = a.id
		JOIN tags t ON t.id = at.tag_id
		WHERE a.status = 'published' AND t.slug = ?
		ORDER BY a.published_at DESC LIMIT ? OFFSET ?`,
		tagSlug, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get articles for tag %q: %w", tagSlug, err)
	}
	return scanArticles(rows)
}

// SearchArticles returns published articles whose title, excerpt, or body
// contains the query, case-insensitively, newest first.
func (s *SQLiteStore) SearchArticles(query string, limit int) ([]Article, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	rows, err := s.db.Query(
		"SELECT "+articleColumns+` FROM articles
		WHERE status = 'published'
		  AND (lower(title) LIKE ? OR lower(excerpt) LIKE ? OR lower(content) LIKE ?)
		ORDER BY published_at DESC LIMIT ?`,
		pattern, pattern, pattern, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search articles: %w", err)
	}
	return scanArticles(rows)
}

// IncrementViewCount bumps an article's view counter by one.
func (s *SQLiteStore) IncrementViewCount(slug string) error {
	_, err := s.db.Exec(
		"UPDATE articles SET view_count = view_count + 1 WHERE slug = ?", slug,
	)
	if err != nil {
		return fmt.Errorf("failed to increment view count for %q: %w", slug, err)
	}
	return nil
}

// GetSiteStats computes headline numbers across the whole site.
func (s *SQLiteStore) GetSiteStats() (*SiteStats, error) {
	var stats SiteStats
	err := s.db.QueryRow(`
		SELECT COUNT(*),
			COALESCE(SUM(featured), 0),
			COALESCE(SUM(view_count), 0)
		FROM articles WHERE status = 'published'`,
	).Scan(&stats.PublishedArticles, &stats.FeaturedArticles, &stats.TotalViews)
	if err != nil {
		return nil, fmt.Errorf("failed to compute article stats: %w", err)
	}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&stats.Categories); err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM tags").Scan(&stats.Tags); err != nil {
		return nil, fmt.Errorf("failed to count tags: %w", err)
	}
	return &stats, nil
}
