package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"devlog/internal/storage"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Next.js", "next-js"},
		{"next-js", "next-js"},
		{" next js ", "next-js"},
		{"Go", "go"},
		{"C++ Tips & Tricks", "c-tips-tricks"},
		{"--already--slugged--", "already-slugged"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
		// Idempotence
		if got := Slugify(Slugify(tt.in)); got != tt.want {
			t.Errorf("Slugify not idempotent for %q: got %q", tt.in, got)
		}
	}
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		chars int
		want  int
	}{
		{1, 1},
		{199, 1},
		{200, 1},
		{201, 2},
		{400, 2},
		{600, 3},
	}
	for _, tt := range tests {
		body := strings.Repeat("a", tt.chars)
		if got := ReadingTime(body); got != tt.want {
			t.Errorf("ReadingTime(%d chars) = %d, want %d", tt.chars, got, tt.want)
		}
	}
	if got := ReadingTime(""); got != 1 {
		t.Errorf("ReadingTime of empty body = %d, want 1", got)
	}
	// Multi-byte runes count as single characters
	if got := ReadingTime(strings.Repeat("日", 400)); got != 2 {
		t.Errorf("ReadingTime of 400 runes = %d, want 2", got)
	}
}

func newTestSyncer(t *testing.T) (*Syncer, *storage.SQLiteStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	contentDir := filepath.Join(dir, "content")
	if err := os.MkdirAll(contentDir, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	return NewSyncer(store, contentDir), store, contentDir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile %s: %v", path, err)
	}
}

const helloWorld = `---
title: Hello World
excerpt: A first post
category: Go
tags:
  - Go
  - Testing
publishedAt: 2024-03-01
---
` + "Body text here."

func TestSyncFileHelloWorld(t *testing.T) {
	syncer, store, contentDir := newTestSyncer(t)

	path := filepath.Join(contentDir, "hello-world.md")
	writeFile(t, path, helloWorld)

	if err := syncer.SyncFile(path); err != nil {
		t.Fatalf("SyncFile: %v", err)
	}

	a, err := store.GetArticleBySlug("hello-world")
	if err != nil {
		t.Fatalf("GetArticleBySlug: %v", err)
	}
	if a == nil {
		t.Fatal("article not found after sync")
	}
	if a.Title != "Hello World" {
		t.Errorf("title: got %q", a.Title)
	}
	if a.Category != "go" {
		t.Errorf("category: got %q", a.Category)
	}
	if a.ReadingTime != 1 {
		t.Errorf("reading time: got %d", a.ReadingTime)
	}
	if a.PublishedAt == nil || a.PublishedAt.Format("2006-01-02") != "2024-03-01" {
		t.Errorf("published at: got %v", a.PublishedAt)
	}
	if a.SEOTitle != "Hello World" || a.SEODescription != "A first post" {
		t.Errorf("seo defaults: got %q / %q", a.SEOTitle, a.SEODescription)
	}

	slugs, err := store.GetArticleTagSlugs(a.ID)
	if err != nil {
		t.Fatalf("GetArticleTagSlugs: %v", err)
	}
	if len(slugs) != 2 || slugs[0] != "go" || slugs[1] != "testing" {
		t.Errorf("tags: got %v", slugs)
	}
}

func TestSyncFileIdempotent(t *testing.T) {
	syncer, store, contentDir := newTestSyncer(t)

	path := filepath.Join(contentDir, "hello-world.md")
	writeFile(t, path, helloWorld)

	if err := syncer.SyncFile(path); err != nil {
		t.Fatalf("SyncFile: %v", err)
	}
	if err := syncer.SyncFile(path); err != nil {
		t.Fatalf("SyncFile (again): %v", err)
	}

	n, _ := store.CountArticles()
	if n != 1 {
		t.Errorf("expected 1 article after double sync, got %d", n)
	}
}

func TestSyncFileTagResync(t *testing.T) {
	syncer, store, contentDir := newTestSyncer(t)
	path := filepath.Join(contentDir, "post.md")

	writeFile(t, path, `---
title: Post
excerpt: E
tags: [alpha, beta]
---
Body.`)
	if err := syncer.SyncFile(path); err != nil {
		t.Fatalf("SyncFile: %v", err)
	}

	writeFile(t, path, `---
title: Post
excerpt: E
tags: [beta, gamma]
---
Body.`)
	if err := syncer.SyncFile(path); err != nil {
		t.Fatalf("SyncFile (resync): %v", err)
	}

	a, _ := store.GetArticleBySlug("post")
	slugs, err := store.GetArticleTagSlugs(a.ID)
	if err != nil {
		t.Fatalf("GetArticleTagSlugs: %v", err)
	}
	if len(slugs) != 2 || slugs[0] != "beta" || slugs[1] != "gamma" {
		t.Errorf("expected exactly [beta gamma], got %v", slugs)
	}
}

func TestSyncFileMissingFields(t *testing.T) {
	syncer, store, contentDir := newTestSyncer(t)

	path := filepath.Join(contentDir, "broken.md")
	writeFile(t, path, `---
title: Only A Title
---
`)
	err := syncer.SyncFile(path)
	if err == nil {
		t.Fatal("expected error for missing excerpt and body")
	}
	if !strings.Contains(err.Error(), "excerpt") || !strings.Contains(err.Error(), "body") {
		t.Errorf("error should name the missing fields, got %q", err)
	}

	// Nothing written
	a, _ := store.GetArticleBySlug("broken")
	if a != nil {
		t.Error("malformed file must not create an article")
	}
}

func TestSyncFileRejectsNonMarkdown(t *testing.T) {
	syncer, _, contentDir := newTestSyncer(t)
	path := filepath.Join(contentDir, "notes.txt")
	writeFile(t, path, "not markdown")

	if err := syncer.SyncFile(path); err == nil {
		t.Fatal("expected error for non-markdown file")
	}
}

func TestSyncFileTOMLFrontMatter(t *testing.T) {
	syncer, store, contentDir := newTestSyncer(t)

	path := filepath.Join(contentDir, "toml-post.md")
	writeFile(t, path, `+++
title = "TOML Post"
excerpt = "Front matter in TOML"
tags = ["config"]
+++
Body.`)

	if err := syncer.SyncFile(path); err != nil {
		t.Fatalf("SyncFile: %v", err)
	}
	a, _ := store.GetArticleBySlug("toml-post")
	if a == nil || a.Title != "TOML Post" {
		t.Errorf("TOML front matter not parsed: %+v", a)
	}
}

func TestSyncAll(t *testing.T) {
	syncer, store, contentDir := newTestSyncer(t)

	writeFile(t, filepath.Join(contentDir, "good-one.md"), helloWorld)
	writeFile(t, filepath.Join(contentDir, "good-two.md"), `---
title: Two
excerpt: Second
category: Go
---
Body.`)
	writeFile(t, filepath.Join(contentDir, "bad.md"), "---\ntitle: Broken\n---\n")

	result, err := syncer.SyncAll()
	if err != nil {
		t.Fatalf("SyncAll: %v", err)
	}
	if result.Synced != 2 {
		t.Errorf("synced: got %d, want 2", result.Synced)
	}
	if result.Failed != 1 {
		t.Errorf("failed: got %d, want 1", result.Failed)
	}

	// Counters recomputed at the end of the batch
	tag, err := store.GetTagBySlug("go")
	if err != nil {
		t.Fatalf("GetTagBySlug: %v", err)
	}
	if tag == nil || tag.ArticleCount != 1 {
		t.Errorf("tag count after batch: got %+v", tag)
	}
}

func TestSyncCategories(t *testing.T) {
	syncer, store, contentDir := newTestSyncer(t)

	catDir := filepath.Join(contentDir, "categories")
	if err := os.MkdirAll(catDir, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	writeFile(t, filepath.Join(catDir, "go.json"),
		`{"name": "Go", "description": "The Go language", "color": "#00ADD8"}`)

	if err := syncer.SyncCategories(); err != nil {
		t.Fatalf("SyncCategories: %v", err)
	}

	c, err := store.GetCategoryBySlug("go")
	if err != nil {
		t.Fatalf("GetCategoryBySlug: %v", err)
	}
	if c == nil || c.Name != "Go" || c.Color != "#00ADD8" {
		t.Errorf("category round trip: got %+v", c)
	}
}

func TestCheckConnection(t *testing.T) {
	syncer, _, _ := newTestSyncer(t)
	if err := syncer.CheckConnection(); err != nil {
		t.Errorf("CheckConnection: %v", err)
	}
}

func TestParseFrontMatterNone(t *testing.T) {
	fm, body, err := ParseFrontMatter([]byte("Just a body.\n"))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if fm.Title != "" {
		t.Errorf("expected empty front matter, got %+v", fm)
	}
	if body != "Just a body.\n" {
		t.Errorf("body: got %q", body)
	}
}

func TestParseFrontMatterUnterminated(t *testing.T) {
	_, _, err := ParseFrontMatter([]byte("---\ntitle: X\n"))
	if err == nil {
		t.Fatal("expected error for unterminated front matter")
	}
}

func TestParseFrontMatterCRLF(t *testing.T) {
	doc := "---\r\ntitle: CRLF Post\r\nexcerpt: From a Windows editor\r\n---\r\n\r\nBody text.\r\n"
	fm, body, err := ParseFrontMatter([]byte(doc))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if fm.Title != "CRLF Post" || fm.Excerpt != "From a Windows editor" {
		t.Errorf("front matter: got %+v", fm)
	}
	if body != "Body text.\n" {
		t.Errorf("body: got %q", body)
	}
}
