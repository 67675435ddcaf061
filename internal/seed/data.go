package seed

import "devlog/internal/storage"

var Profile = storage.Profile{
	Name:      "Alex Chen",
	Title:     "Full-Stack Developer",
	Bio:       "Building web services and developer tooling. Writing about Go, databases, and the craft of shipping software.",
	Location:  "Berlin, Germany",
	Email:     "hello@example.com",
	GithubURL: "https://github.com/example",
}

var Skills = []storage.Skill{
	{Name: "Go", Level: 90, Category: "languages", SortOrder: 1},
	{Name: "TypeScript", Level: 85, Category: "languages", SortOrder: 2},
	{Name: "SQL", Level: 80, Category: "languages", SortOrder: 3},
	{Name: "Python", Level: 70, Category: "languages", SortOrder: 4},
	{Name: "PostgreSQL", Level: 85, Category: "infrastructure", SortOrder: 1},
	{Name: "SQLite", Level: 80, Category: "infrastructure", SortOrder: 2},
	{Name: "Docker", Level: 75, Category: "infrastructure", SortOrder: 3},
	{Name: "Linux", Level: 80, Category: "infrastructure", SortOrder: 4},
	{Name: "React", Level: 75, Category: "frontend", SortOrder: 1},
	{Name: "HTML/CSS", Level: 80, Category: "frontend", SortOrder: 2},
}

var Timeline = []storage.TimelineEntry{
	{Year: "2024", Title: "Senior Developer", Company: "Freelance",
		Description: "Independent consulting on backend systems and developer tooling.", SortOrder: 1},
	{Year: "2021", Title: "Backend Developer", Company: "Cloudworks",
		Description: "Built and operated data pipelines and internal services.", SortOrder: 2},
	{Year: "2019", Title: "Junior Developer", Company: "StartupHub",
		Description: "First full-time role; web applications end to end.", SortOrder: 3},
	{Year: "2018", Title: "Computer Science B.Sc.", Company: "TU Berlin",
		Description: "Focus on distributed systems and databases.", SortOrder: 4},
}

var Stats = []storage.Stat{
	{Label: "Years coding", Value: "8+", Icon: "calendar", SortOrder: 1},
	{Label: "Projects shipped", Value: "30+", Icon: "rocket", SortOrder: 2},
	{Label: "Open source contributions", Value: "120+", Icon: "git-branch", SortOrder: 3},
	{Label: "Coffee per day", Value: "3", Icon: "coffee", SortOrder: 4},
}

var Projects = []storage.Project{
	{
		Title:       "devlog",
		Description: "This site: a server-rendered blog and portfolio backed by SQLite, with a markdown content pipeline.",
		Tech:        []string{"Go", "SQLite", "html/template"},
		GithubURL:   "https://github.com/example/devlog",
		Featured:    true,
		SortOrder:   1,
		Status:      "active",
	},
	{
		Title:       "querybench",
		Description: "A CLI for benchmarking SQL queries across database engines with comparable output.",
		Tech:        []string{"Go", "PostgreSQL", "SQLite"},
		GithubURL:   "https://github.com/example/querybench",
		Featured:    true,
		SortOrder:   2,
		Status:      "active",
	},
	{
		Title:       "shipnotes",
		Description: "Generates release notes from conventional commit history.",
		Tech:        []string{"Go", "Git"},
		GithubURL:   "https://github.com/example/shipnotes",
		SortOrder:   3,
		Status:      "active",
	},
	{
		Title:       "legacy-dashboard",
		Description: "An older metrics dashboard, kept for reference.",
		Tech:        []string{"TypeScript", "React"},
		SortOrder:   9,
		Status:      "archived",
	},
}

var CodeExamples = []storage.CodeExample{
	{
		Title:       "Graceful shutdown",
		Description: "Stopping an HTTP server without dropping in-flight requests.",
		Language:    "go",
		Code: `ctx, stop := signal.NotifyContext(context.Background(),
    os.Interrupt, syscall.SIGTERM)
defer stop()

go srv.ListenAndServe()
<-ctx.Done()

shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
defer cancel()
srv.Shutdown(shutdownCtx)`,
		Featured:  true,
		SortOrder: 1,
	},
	{
		Title:       "Table-driven test",
		Description: "The standard shape for testing pure functions in Go.",
		Language:    "go",
		Code: `tests := []struct {
    in   string
    want string
}{
    {"Next.js", "next-js"},
    {" next js ", "next-js"},
}
for _, tt := range tests {
    if got := Slugify(tt.in); got != tt.want {
        t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
    }
}`,
		SortOrder: 2,
	},
}

var Categories = []storage.Category{
	{Slug: "go", Name: "Go", Description: "The Go programming language", Color: "#00ADD8", Icon: "code"},
	{Slug: "databases", Name: "Databases", Description: "Storage engines, SQL, and data modeling", Color: "#336791", Icon: "database"},
	{Slug: "tooling", Name: "Tooling", Description: "Developer tools and workflows", Color: "#F05032", Icon: "wrench"},
	{Slug: "web", Name: "Web", Description: "Servers, templates, and the web platform", Color: "#E34F26", Icon: "globe"},
	{Slug: "uncategorized", Name: "Uncategorized", Description: "Everything else", Color: "#888888", Icon: "folder"},
}

var Tags = []storage.Tag{
	{Slug: "go", Name: "Go"},
	{Slug: "sqlite", Name: "SQLite"},
	{Slug: "testing", Name: "Testing"},
	{Slug: "performance", Name: "Performance"},
	{Slug: "cli", Name: "CLI"},
	{Slug: "deployment", Name: "Deployment"},
}
