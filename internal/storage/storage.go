package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

type Article struct {
	ID             int64
	Slug           string
	Title          string
	Excerpt        string
	Content        string
	CoverImage     string
	Category       string
	Tags           []string
	Status         string
	Featured       bool
	ReadingTime    int
	ViewCount      int
	PublishedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	SEOTitle       string
	SEODescription string
	SEOKeywords    []string
}

type Category struct {
	ID           int64
	Slug         string
	Name         string
	Description  string
	Color        string
	Icon         string
	ArticleCount int
}

type Tag struct {
	ID           int64
	Slug         string
	Name         string
	ArticleCount int
}

type Project struct {
	ID          int64
	Title       string
	Description string
	Tech        []string
	DemoURL     string
	GithubURL   string
	Featured    bool
	SortOrder   int
	Status      string
	CreatedAt   time.Time
}

type CodeExample struct {
	ID          int64
	Title       string
	Description string
	Language    string
	Code        string
	Featured    bool
	SortOrder   int
}

type Profile struct {
	ID          int64
	Name        string
	Title       string
	Bio         string
	Location    string
	Email       string
	AvatarURL   string
	GithubURL   string
	LinkedinURL string
	WebsiteURL  string
}

type Skill struct {
	ID        int64
	Name      string
	Level     int
	Category  string
	SortOrder int
}

type TimelineEntry struct {
	ID          int64
	Year        string
	Title       string
	Company     string
	Description string
	SortOrder   int
}

type Stat struct {
	ID        int64
	Label     string
	Value     string
	Icon      string
	SortOrder int
}

// SiteStats aggregates headline numbers for the whole site.
type SiteStats struct {
	PublishedArticles int
	FeaturedArticles  int
	Categories        int
	Tags              int
	TotalViews        int
}

// NewStore opens (or creates) the database at dbPath, initializes the
// schema, and returns a read-write store.
func NewStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath+"?_time_format=sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// NewReadOnlyStore opens an existing database without write access.
// The web server uses this; it never initializes or migrates the schema.
func NewReadOnlyStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath+"?_time_format=sqlite&mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database read-only: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable with a trivial read.
func (s *SQLiteStore) Ping() error {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM articles").Scan(&n); err != nil {
		return fmt.Errorf("connection check failed: %w", err)
	}
	return nil
}

// TableCounts returns the row count of every table, for manual inspection.
func (s *SQLiteStore) TableCounts() (map[string]int, error) {
	tables := []string{
		"articles", "categories", "tags", "article_tags",
		"projects", "code_examples", "profile", "skills", "timeline", "stats",
	}
	counts := make(map[string]int, len(tables))
	for _, table := range tables {
		var n int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}

// encodeJSON marshals a string slice for storage in a TEXT column.
// nil encodes as the empty list so columns never hold SQL NULL.
func encodeJSON(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func decodeJSON(raw string) []string {
	if raw == "" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil
	}
	return values
}
