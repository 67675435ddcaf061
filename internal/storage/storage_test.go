package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewStore(dbPath)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testArticle(slug, title string) *Article {
	now := time.Now()
	return &Article{
		Slug:        slug,
		Title:       title,
		Excerpt:     "An excerpt",
		Content:     "Some body text",
		Category:    "go",
		Status:      "published",
		ReadingTime: 1,
		PublishedAt: &now,
	}
}

func TestUpsertArticleInsertsAndUpdates(t *testing.T) {
	store := newTestStore(t)

	id1, err := store.UpsertArticle(testArticle("hello-world", "Hello World"))
	if err != nil {
		t.Fatalf("UpsertArticle: %v", err)
	}

	updated := testArticle("hello-world", "Hello Again")
	id2, err := store.UpsertArticle(updated)
	if err != nil {
		t.Fatalf("UpsertArticle (update): %v", err)
	}
	if id1 != id2 {
		t.Errorf("upsert created a new row: id %d then %d", id1, id2)
	}

	a, err := store.GetArticleBySlug("hello-world")
	if err != nil {
		t.Fatalf("GetArticleBySlug: %v", err)
	}
	if a == nil {
		t.Fatal("article not found after upsert")
	}
	if a.Title != "Hello Again" {
		t.Errorf("title not updated: got %q", a.Title)
	}

	n, err := store.CountArticles()
	if err != nil {
		t.Fatalf("CountArticles: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 article, got %d", n)
	}
}

func TestGetArticleBySlugNotFound(t *testing.T) {
	store := newTestStore(t)

	a, err := store.GetArticleBySlug("nope")
	if err != nil {
		t.Fatalf("GetArticleBySlug: %v", err)
	}
	if a != nil {
		t.Errorf("expected nil for missing slug, got %+v", a)
	}
}

func TestGetArticleBySlugExcludesDrafts(t *testing.T) {
	store := newTestStore(t)

	draft := testArticle("draft-post", "Draft Post")
	draft.Status = "draft"
	if _, err := store.UpsertArticle(draft); err != nil {
		t.Fatalf("UpsertArticle: %v", err)
	}

	a, err := store.GetArticleBySlug("draft-post")
	if err != nil {
		t.Fatalf("GetArticleBySlug: %v", err)
	}
	if a != nil {
		t.Error("draft article should not be visible by slug")
	}
}

func TestListArticlesPagination(t *testing.T) {
	store := newTestStore(t)

	base := time.Now()
	for i := 0; i < 5; i++ {
		a := testArticle(string(rune('a'+i))+"-post", "Post")
		publishedAt := base.Add(time.Duration(i) * time.Hour)
		a.PublishedAt = &publishedAt
		if _, err := store.UpsertArticle(a); err != nil {
			t.Fatalf("UpsertArticle: %v", err)
		}
	}

	page1, err := store.ListArticles(2, 0)
	if err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
	page2, err := store.ListArticles(2, 2)
	if err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
	if len(page1) != 2 || len(page2) != 2 {
		t.Fatalf("expected 2+2 articles, got %d+%d", len(page1), len(page2))
	}
	// Newest first, pages must not overlap
	if page1[0].Slug != "e-post" {
		t.Errorf("expected newest first, got %q", page1[0].Slug)
	}
	for _, a1 := range page1 {
		for _, a2 := range page2 {
			if a1.Slug == a2.Slug {
				t.Errorf("slug %q appears on both pages", a1.Slug)
			}
		}
	}

	// Offset past the end is empty, not an error
	empty, err := store.ListArticles(2, 100)
	if err != nil {
		t.Fatalf("ListArticles (past end): %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty page past the end, got %d", len(empty))
	}
}

func TestListAllArticles(t *testing.T) {
	store := newTestStore(t)
	for i := 0; i < 30; i++ {
		if _, err := store.UpsertArticle(testArticle(fmt.Sprintf("post-%02d", i), "Post")); err != nil {
			t.Fatalf("UpsertArticle: %v", err)
		}
	}
	draft := testArticle("draft-post", "Draft")
	draft.Status = "draft"
	store.UpsertArticle(draft)

	all, err := store.ListAllArticles()
	if err != nil {
		t.Fatalf("ListAllArticles: %v", err)
	}
	if len(all) != 30 {
		t.Errorf("expected every published article, got %d of 30", len(all))
	}
	for _, a := range all {
		if a.Status != "published" {
			t.Errorf("draft leaked into full listing: %q", a.Slug)
		}
	}
}

func TestSearchArticles(t *testing.T) {
	store := newTestStore(t)

	a := testArticle("go-generics", "Understanding Generics")
	a.Content = "Type parameters arrived in Go 1.18."
	if _, err := store.UpsertArticle(a); err != nil {
		t.Fatalf("UpsertArticle: %v", err)
	}
	b := testArticle("other", "Unrelated")
	b.Content = "Nothing to see here."
	if _, err := store.UpsertArticle(b); err != nil {
		t.Fatalf("UpsertArticle: %v", err)
	}

	results, err := store.SearchArticles("GENERICS", 10)
	if err != nil {
		t.Fatalf("SearchArticles: %v", err)
	}
	if len(results) != 1 || results[0].Slug != "go-generics" {
		t.Errorf("expected single match go-generics, got %+v", results)
	}

	none, err := store.SearchArticles("quantum", 10)
	if err != nil {
		t.Fatalf("SearchArticles: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no matches, got %d", len(none))
	}
}

func TestIncrementViewCount(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.UpsertArticle(testArticle("counted", "Counted")); err != nil {
		t.Fatalf("UpsertArticle: %v", err)
	}
	if err := store.IncrementViewCount("counted"); err != nil {
		t.Fatalf("IncrementViewCount: %v", err)
	}
	if err := store.IncrementViewCount("counted"); err != nil {
		t.Fatalf("IncrementViewCount: %v", err)
	}

	a, _ := store.GetArticleBySlug("counted")
	if a.ViewCount != 2 {
		t.Errorf("expected view count 2, got %d", a.ViewCount)
	}
}

func TestFeaturedAndPopular(t *testing.T) {
	store := newTestStore(t)

	featured := testArticle("featured", "Featured")
	featured.Featured = true
	if _, err := store.UpsertArticle(featured); err != nil {
		t.Fatalf("UpsertArticle: %v", err)
	}
	if _, err := store.UpsertArticle(testArticle("plain", "Plain")); err != nil {
		t.Fatalf("UpsertArticle: %v", err)
	}
	store.IncrementViewCount("plain")

	fa, err := store.GetFeaturedArticles(10)
	if err != nil {
		t.Fatalf("GetFeaturedArticles: %v", err)
	}
	if len(fa) != 1 || fa[0].Slug != "featured" {
		t.Errorf("expected only the featured article, got %+v", fa)
	}

	popular, err := store.GetPopularArticles(1)
	if err != nil {
		t.Fatalf("GetPopularArticles: %v", err)
	}
	if len(popular) != 1 || popular[0].Slug != "plain" {
		t.Errorf("expected most viewed first, got %+v", popular)
	}
}

func TestSetArticleTagsReconciles(t *testing.T) {
	store := newTestStore(t)

	articleID, err := store.UpsertArticle(testArticle("tagged", "Tagged"))
	if err != nil {
		t.Fatalf("UpsertArticle: %v", err)
	}

	tagA, _ := store.UpsertTag("a", "A")
	tagB, _ := store.UpsertTag("b", "B")
	tagC, _ := store.UpsertTag("c", "C")

	if err := store.SetArticleTags(articleID, []int64{tagA, tagB}); err != nil {
		t.Fatalf("SetArticleTags: %v", err)
	}
	if err := store.SetArticleTags(articleID, []int64{tagB, tagC}); err != nil {
		t.Fatalf("SetArticleTags (resync): %v", err)
	}

	slugs, err := store.GetArticleTagSlugs(articleID)
	if err != nil {
		t.Fatalf("GetArticleTagSlugs: %v", err)
	}
	if len(slugs) != 2 || slugs[0] != "b" || slugs[1] != "c" {
		t.Errorf("expected exactly [b c], got %v", slugs)
	}
}

func TestRecounts(t *testing.T) {
	store := newTestStore(t)

	store.UpsertCategory(&Category{Slug: "go", Name: "Go"})
	articleID, _ := store.UpsertArticle(testArticle("one", "One"))
	tagID, _ := store.UpsertTag("testing", "Testing")
	store.SetArticleTags(articleID, []int64{tagID})

	if err := store.RecountCategoryArticles(); err != nil {
		t.Fatalf("RecountCategoryArticles: %v", err)
	}
	if err := store.RecountTagArticles(); err != nil {
		t.Fatalf("RecountTagArticles: %v", err)
	}

	c, _ := store.GetCategoryBySlug("go")
	if c.ArticleCount != 1 {
		t.Errorf("expected category count 1, got %d", c.ArticleCount)
	}
	tag, _ := store.GetTagBySlug("testing")
	if tag.ArticleCount != 1 {
		t.Errorf("expected tag count 1, got %d", tag.ArticleCount)
	}
}

func TestGetArticlesByTag(t *testing.T) {
	store := newTestStore(t)

	id, _ := store.UpsertArticle(testArticle("tagged", "Tagged"))
	store.UpsertArticle(testArticle("untagged", "Untagged"))
	tagID, _ := store.UpsertTag("go", "Go")
	store.SetArticleTags(id, []int64{tagID})

	articles, err := store.GetArticlesByTag("go", 10, 0)
	if err != nil {
		t.Fatalf("GetArticlesByTag: %v", err)
	}
	if len(articles) != 1 || articles[0].Slug != "tagged" {
		t.Errorf("expected only the tagged article, got %+v", articles)
	}
}

func TestSiteStats(t *testing.T) {
	store := newTestStore(t)

	featured := testArticle("f", "F")
	featured.Featured = true
	store.UpsertArticle(featured)
	store.UpsertArticle(testArticle("p", "P"))
	store.IncrementViewCount("p")
	store.UpsertCategory(&Category{Slug: "go", Name: "Go"})
	store.UpsertTag("testing", "Testing")

	stats, err := store.GetSiteStats()
	if err != nil {
		t.Fatalf("GetSiteStats: %v", err)
	}
	if stats.PublishedArticles != 2 {
		t.Errorf("published: got %d", stats.PublishedArticles)
	}
	if stats.FeaturedArticles != 1 {
		t.Errorf("featured: got %d", stats.FeaturedArticles)
	}
	if stats.Categories != 1 || stats.Tags != 1 {
		t.Errorf("categories/tags: got %d/%d", stats.Categories, stats.Tags)
	}
	if stats.TotalViews != 1 {
		t.Errorf("views: got %d", stats.TotalViews)
	}
}

func TestReadOnlyStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	rw, err := NewStore(dbPath)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if _, err := rw.UpsertArticle(testArticle("visible", "Visible")); err != nil {
		t.Fatalf("UpsertArticle: %v", err)
	}
	rw.Close()

	ro, err := NewReadOnlyStore(dbPath)
	if err != nil {
		t.Fatalf("NewReadOnlyStore: %v", err)
	}
	defer ro.Close()

	a, err := ro.GetArticleBySlug("visible")
	if err != nil {
		t.Fatalf("GetArticleBySlug: %v", err)
	}
	if a == nil {
		t.Fatal("read-only store cannot see existing article")
	}

	if _, err := ro.UpsertArticle(testArticle("nope", "Nope")); err == nil {
		t.Error("expected write through read-only store to fail")
	}
}

func TestPortfolioRoundTrip(t *testing.T) {
	store := newTestStore(t)

	err := store.UpsertProject(&Project{
		Title: "devlog", Description: "This site", Tech: []string{"Go", "SQLite"},
		Featured: true, Status: "active",
	})
	if err != nil {
		t.Fatalf("UpsertProject: %v", err)
	}
	// Archived projects stay out of the listing
	store.UpsertProject(&Project{Title: "old", Description: "Gone", Status: "archived"})

	projects, err := store.ListProjects()
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(projects) != 1 || projects[0].Title != "devlog" {
		t.Errorf("expected only active projects, got %+v", projects)
	}
	if len(projects[0].Tech) != 2 {
		t.Errorf("tech list lost in round trip: %v", projects[0].Tech)
	}

	if err := store.UpsertProfile(&Profile{Name: "Dev", Title: "Engineer"}); err != nil {
		t.Fatalf("UpsertProfile: %v", err)
	}
	p, err := store.GetProfile()
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if p == nil || p.Name != "Dev" {
		t.Errorf("profile round trip: got %+v", p)
	}

	got, err := store.GetProjectByID(projects[0].ID)
	if err != nil {
		t.Fatalf("GetProjectByID: %v", err)
	}
	if got == nil || got.Title != "devlog" {
		t.Errorf("project by id: got %+v", got)
	}
	if missing, err := store.GetProjectByID(9999); err != nil || missing != nil {
		t.Errorf("absent project should be nil, nil; got %+v, %v", missing, err)
	}

	store.UpsertSkill(&Skill{Name: "Go", Level: 90, Category: "languages"})
	store.UpsertSkill(&Skill{Name: "SQLite", Level: 80, Category: "databases", SortOrder: 1})
	skills, err := store.ListSkills()
	if err != nil {
		t.Fatalf("ListSkills: %v", err)
	}
	if len(skills) != 2 {
		t.Errorf("skills round trip: got %+v", skills)
	}
	categories, err := store.ListSkillCategories()
	if err != nil {
		t.Fatalf("ListSkillCategories: %v", err)
	}
	if len(categories) != 2 {
		t.Errorf("skill categories: got %v", categories)
	}

	store.UpsertCodeExample(&CodeExample{Title: "demo", Language: "go", Code: "package main", Featured: true})
	store.UpsertCodeExample(&CodeExample{Title: "plain", Language: "go", Code: "package other"})
	featured, err := store.GetFeaturedCodeExamples()
	if err != nil {
		t.Fatalf("GetFeaturedCodeExamples: %v", err)
	}
	if len(featured) != 1 || featured[0].Title != "demo" {
		t.Errorf("featured code examples: got %+v", featured)
	}
}

func TestTableCounts(t *testing.T) {
	store := newTestStore(t)
	store.UpsertArticle(testArticle("one", "One"))

	counts, err := store.TableCounts()
	if err != nil {
		t.Fatalf("TableCounts: %v", err)
	}
	if counts["articles"] != 1 {
		t.Errorf("expected 1 article, got %d", counts["articles"])
	}
	if _, ok := counts["projects"]; !ok {
		t.Error("projects table missing from counts")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error: base URL unset in defaults")
	}
	if got := err.Error(); !strings.Contains(got, "site.base_url") {
		t.Errorf("error should name the missing key, got %q", got)
	}

	cfg.Site.BaseURL = "https://example.com"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Database.Path != "./devlog.db" {
		t.Errorf("defaults not applied: %q", cfg.Database.Path)
	}
}
