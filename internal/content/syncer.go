package content

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"devlog/internal/storage"
)

// charsPerMinute is the reading speed the reading-time estimate assumes.
const charsPerMinute = 200

var slugPattern = regexp.MustCompile(`[\s\W-]+`)

// Slugify normalizes a name into a URL slug: lowercase, with every run
// of whitespace, punctuation, or hyphens collapsed into a single hyphen.
// Slugify is idempotent: Slugify(Slugify(x)) == Slugify(x).
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ReadingTime estimates reading minutes for a body, rounding up so even
// a one-character article reads as one minute.
func ReadingTime(body string) int {
	n := utf8.RuneCountInString(body)
	if n == 0 {
		return 1
	}
	return (n + charsPerMinute - 1) / charsPerMinute
}

// SyncResult tallies the outcome of a batch sync.
type SyncResult struct {
	Synced int
	Failed int
	Errors []string
}

// Syncer pushes markdown files and category definitions into the store.
type Syncer struct {
	store      storage.Store
	contentDir string
}

// NewSyncer returns a Syncer reading from contentDir and writing to store.
func NewSyncer(store storage.Store, contentDir string) *Syncer {
	return &Syncer{store: store, contentDir: contentDir}
}

// CheckConnection verifies the store is reachable with a trivial read.
func (s *Syncer) CheckConnection() error {
	return s.store.Ping()
}

// SyncFile parses one markdown file and upserts it as an article keyed
// on the slug derived from the file name. Returns an error and writes
// nothing when required front matter (title, excerpt) or the body is
// missing or malformed.
func (s *Syncer) SyncFile(path string) error {
	if !strings.HasSuffix(path, ".md") {
		return fmt.Errorf("not a markdown file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	fm, body, err := ParseFrontMatter(data)
	if err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	slug := Slugify(strings.TrimSuffix(filepath.Base(path), ".md"))
	article, err := buildArticle(slug, fm, body)
	if err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	articleID, err := s.store.UpsertArticle(article)
	if err != nil {
		return err
	}

	return s.syncTags(articleID, fm.Tags)
}

// buildArticle validates front matter and assembles the article row,
// applying the documented defaults for optional fields.
func buildArticle(slug string, fm *FrontMatter, body string) (*storage.Article, error) {
	var missing []string
	if strings.TrimSpace(fm.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(fm.Excerpt) == "" {
		missing = append(missing, "excerpt")
	}
	if strings.TrimSpace(body) == "" {
		missing = append(missing, "body")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	publishedAt, err := fm.publishedTime()
	if err != nil {
		return nil, err
	}

	category := "uncategorized"
	if fm.Category != "" {
		category = Slugify(fm.Category)
	}

	status := "published"
	if fm.Draft {
		status = "draft"
	}

	tagSlugs := make([]string, 0, len(fm.Tags))
	for _, tag := range fm.Tags {
		if slug := Slugify(tag); slug != "" {
			tagSlugs = append(tagSlugs, slug)
		}
	}

	seoTitle := fm.SEOTitle
	if seoTitle == "" {
		seoTitle = fm.Title
	}
	seoDescription := fm.SEODescription
	if seoDescription == "" {
		seoDescription = fm.Excerpt
	}
	seoKeywords := fm.SEOKeywords
	if len(seoKeywords) == 0 {
		seoKeywords = tagSlugs
	}

	return &storage.Article{
		Slug:           slug,
		Title:          fm.Title,
		Excerpt:        fm.Excerpt,
		Content:        body,
		CoverImage:     fm.CoverImage,
		Category:       category,
		Tags:           tagSlugs,
		Status:         status,
		Featured:       fm.Featured,
		ReadingTime:    ReadingTime(body),
		PublishedAt:    &publishedAt,
		SEOTitle:       seoTitle,
		SEODescription: seoDescription,
		SEOKeywords:    seoKeywords,
	}, nil
}

// syncTags upserts each tag row, then replaces the article's tag links
// so the article carries exactly the tags named in its front matter.
func (s *Syncer) syncTags(articleID int64, names []string) error {
	seen := make(map[string]bool, len(names))
	var tagIDs []int64
	for _, name := range names {
		slug := Slugify(name)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true

		tagID, err := s.store.UpsertTag(slug, strings.TrimSpace(name))
		if err != nil {
			return err
		}
		tagIDs = append(tagIDs, tagID)
	}
	return s.store.SetArticleTags(articleID, tagIDs)
}

// SyncAll syncs every *.md file in the content directory, then the
// category definitions, then recomputes the denormalized counters.
// A malformed file fails that file only; the batch continues.
func (s *Syncer) SyncAll() (*SyncResult, error) {
	paths, err := filepath.Glob(filepath.Join(s.contentDir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("failed to list content dir: %w", err)
	}

	result := &SyncResult{}
	for _, path := range paths {
		if err := s.SyncFile(path); err != nil {
			log.Printf("sync: %v", err)
			result.Failed++
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.Synced++
	}

	if err := s.SyncCategories(); err != nil {
		return result, err
	}
	if err := s.RecountArticleCounts(); err != nil {
		return result, err
	}
	return result, nil
}

// categoryFile mirrors the JSON category definition files under
// content/categories/.
type categoryFile struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

// SyncCategories upserts every category defined under
// <contentDir>/categories/*.json. A missing directory is not an error.
func (s *Syncer) SyncCategories() error {
	paths, err := filepath.Glob(filepath.Join(s.contentDir, "categories", "*.json"))
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		var cf categoryFile
		if err := json.Unmarshal(data, &cf); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if cf.Name == "" {
			return fmt.Errorf("%s: category name is required", filepath.Base(path))
		}
		if cf.Slug == "" {
			cf.Slug = Slugify(cf.Name)
		}

		err = s.store.UpsertCategory(&storage.Category{
			Slug:        cf.Slug,
			Name:        cf.Name,
			Description: cf.Description,
			Color:       cf.Color,
			Icon:        cf.Icon,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// RecountArticleCounts refreshes the denormalized article_count columns
// of categories and tags.
func (s *Syncer) RecountArticleCounts() error {
	if err := s.store.RecountCategoryArticles(); err != nil {
		return err
	}
	return s.store.RecountTagArticles()
}
