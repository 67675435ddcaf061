package storage

import (
	"database/sql"
	"fmt"
)

// UpsertCategory inserts or updates a category keyed on slug.
func (s *SQLiteStore) UpsertCategory(c *Category) error {
	_, err := s.db.Exec(`
		INSERT INTO categories (slug, name, description, color, icon)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			color = excluded.color,
			icon = excluded.icon,
			updated_at = CURRENT_TIMESTAMP`,
		c.Slug, c.Name, c.Description, c.Color, c.Icon,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert category %q: %w", c.Slug, err)
	}
	return nil
}

// GetCategoryBySlug returns the category with the given slug, or nil
// if no such category exists.
func (s *SQLiteStore) GetCategoryBySlug(slug string) (*Category, error) {
	var c Category
	var description, color, icon sql.NullString
	err := s.db.QueryRow(
		"SELECT id, slug, name, description, color, icon, article_count FROM categories WHERE slug = ?",
		slug,
	).Scan(&c.ID, &c.Slug, &c.Name, &description, &color, &icon, &c.ArticleCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category %q: %w", slug, err)
	}
	c.Description = description.String
	c.Color = color.String
	c.Icon = icon.String
	return &c, nil
}

// ListCategories returns all categories, most populated first.
func (s *SQLiteStore) ListCategories() ([]Category, error) {
	rows, err := s.db.Query(
		`SELECT id, slug, name, description, color, icon, article_count
		FROM categories ORDER BY article_count DESC, name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		var description, color, icon sql.NullString
		if err := rows.Scan(&c.ID, &c.Slug, &c.Name, &description, &color, &icon, &c.ArticleCount); err != nil {
			return nil, err
		}
		c.Description = description.String
		c.Color = color.String
		c.Icon = icon.String
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// UpsertTag inserts or updates a tag keyed on slug and returns its id.
func (s *SQLiteStore) UpsertTag(slug, name string) (int64, error) {
	var id int64
	err := s.db.QueryRow(`
		INSERT INTO tags (slug, name)
		VALUES (?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			name = excluded.name,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id`,
		slug, name,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert tag %q: %w", slug, err)
	}
	return id, nil
}

// GetTagBySlug returns the tag with the given slug, or nil if no such
// tag exists.
func (s *SQLiteStore) GetTagBySlug(slug string) (*Tag, error) {
	var t Tag
	err := s.db.QueryRow(
		"SELECT id, slug, name, article_count FROM tags WHERE slug = ?", slug,
	).Scan(&t.ID, &t.Slug, &t.Name, &t.ArticleCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag %q: %w", slug, err)
	}
	return &t, nil
}

// ListTags returns all tags, most used first.
func (s *SQLiteStore) ListTags() ([]Tag, error) {
	rows, err := s.db.Query(
		"SELECT id, slug, name, article_count FROM tags ORDER BY article_count DESC, name ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Slug, &t.Name, &t.ArticleCount); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// SetArticleTags replaces an article's tag set in a single transaction.
// After it returns, the article carries exactly the given tag ids.
func (s *SQLiteStore) SetArticleTags(articleID int64, tagIDs []int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin tag update: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM article_tags WHERE article_id = ?", articleID); err != nil {
		return fmt.Errorf("failed to clear article tags: %w", err)
	}
	for _, tagID := range tagIDs {
		if _, err := tx.Exec(
			"INSERT INTO article_tags (article_id, tag_id) VALUES (?, ?)",
			articleID, tagID,
		); err != nil {
			return fmt.Errorf("failed to link tag %d: %w", tagID, err)
		}
	}
	return tx.Commit()
}

// GetArticleTagSlugs returns the slugs of the tags linked to an article.
func (s *SQLiteStore) GetArticleTagSlugs(articleID int64) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT t.slug FROM tags t
		JOIN article_tags at ON at.tag_id = t.id
		WHERE at.article_id = ? ORDER BY t.slug`,
		articleID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get article tags: %w", err)
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, err
		}
		slugs = append(slugs, slug)
	}
	return slugs, rows.Err()
}

// RecountCategoryArticles recomputes the denormalized article_count of
// every category from the published articles table.
func (s *SQLiteStore) RecountCategoryArticles() error {
	_, err := s.db.Exec(`
		UPDATE categories SET
			article_count = (
				SELECT COUNT(*) FROM articles
				WHERE articles.category = categories.slug
				  AND articles.status = 'published'
			),
			updated_at = CURRENT_TIMESTAMP`,
	)
	if err != nil {
		return fmt.Errorf("failed to recount category articles: %w", err)
	}
	return nil
}

// RecountTagArticles recomputes the denormalized article_count of every
// tag from the article_tags join table.
func (s *SQLiteStore) RecountTagArticles() error {
	_, err := s.db.Exec(`
		UPDATE tags SET
			article_count = (
				SELECT COUNT(*) FROM article_tags at
				JOIN articles a ON a.id = at.article_id
				WHERE at.tag_id = tags.id AND a.status = 'published'
			),
			updated_at = CURRENT_TIMESTAMP`,
	)
	if err != nil {
		return fmt.Errorf("failed to recount tag articles: %w", err)
	}
	return nil
}
