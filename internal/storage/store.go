package storage

// Store defines the storage interface for the site's data layer.
type Store interface {
	Close() error
	Ping() error
	TableCounts() (map[string]int, error)

	// Articles
	UpsertArticle(a *Article) (int64, error)
	GetArticleBySlug(slug string) (*Article, error)
	ListArticles(limit, offset int) ([]Article, error)
	ListAllArticles() ([]Article, error)
	CountArticles() (int, error)
	GetFeaturedArticles(limit int) ([]Article, error)
	GetLatestArticles(limit int) ([]Article, error)
	GetPopularArticles(limit int) ([]Article, error)
	GetArticlesByCategory(categorySlug string, limit, offset int) ([]Article, error)
	GetArticlesByTag(tagSlug string, limit, offset int) ([]Article, error)
	SearchArticles(query string, limit int) ([]Article, error)
	IncrementViewCount(slug string) error
	GetSiteStats() (*SiteStats, error)

	// Categories and tags
	UpsertCategory(c *Category) error
	GetCategoryBySlug(slug string) (*Category, error)
	ListCategories() ([]Category, error)
	UpsertTag(slug, name string) (int64, error)
	GetTagBySlug(slug string) (*Tag, error)
	ListTags() ([]Tag, error)
	SetArticleTags(articleID int64, tagIDs []int64) error
	GetArticleTagSlugs(articleID int64) ([]string, error)
	RecountCategoryArticles() error
	RecountTagArticles() error

	// Portfolio
	UpsertProject(p *Project) error
	ListProjects() ([]Project, error)
	GetFeaturedProjects() ([]Project, error)
	GetProjectByID(id int64) (*Project, error)
	UpsertCodeExample(e *CodeExample) error
	ListCodeExamples(language string) ([]CodeExample, error)
	GetFeaturedCodeExamples() ([]CodeExample, error)
	UpsertProfile(p *Profile) error
	GetProfile() (*Profile, error)
	UpsertSkill(sk *Skill) error
	ListSkills() ([]Skill, error)
	ListSkillCategories() ([]string, error)
	UpsertTimelineEntry(e *TimelineEntry) error
	ListTimeline() ([]TimelineEntry, error)
	UpsertStat(st *Stat) error
	ListStats() ([]Stat, error)
}
