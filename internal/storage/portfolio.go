package storage

import (
	"database/sql"
	"fmt"
)

// UpsertProject inserts or updates a project keyed on title.
func (s *SQLiteStore) UpsertProject(p *Project) error {
	_, err := s.db.Exec(`
		INSERT INTO projects (title, description, tech, demo_url, github_url,
			featured, sort_order, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(title) DO UPDATE SET
			description = excluded.description,
			tech = excluded.tech,
			demo_url = excluded.demo_url,
			github_url = excluded.github_url,
			featured = excluded.featured,
			sort_order = excluded.sort_order,
			status = excluded.status,
			updated_at = CURRENT_TIMESTAMP`,
		p.Title, p.Description, encodeJSON(p.Tech), p.DemoURL, p.GithubURL,
		p.Featured, p.SortOrder, p.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert project %q: %w", p.Title, err)
	}
	return nil
}

func scanProjects(rows *sql.Rows) ([]Project, error) {
	defer rows.Close()
	var projects []Project
	for rows.Next() {
		var p Project
		var techJSON string
		var demoURL, githubURL sql.NullString
		err := rows.Scan(&p.ID, &p.Title, &p.Description, &techJSON,
			&demoURL, &githubURL, &p.Featured, &p.SortOrder, &p.Status, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		p.Tech = decodeJSON(techJSON)
		p.DemoURL = demoURL.String
		p.GithubURL = githubURL.String
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// ListProjects returns active projects in display order.
func (s *SQLiteStore) ListProjects() ([]Project, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, tech, demo_url, github_url,
			featured, sort_order, status, created_at
		FROM projects WHERE status = 'active'
		ORDER BY sort_order ASC, created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return scanProjects(rows)
}

// GetFeaturedProjects returns active projects flagged as featured.
func (s *SQLiteStore) GetFeaturedProjects() ([]Project, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, tech, demo_url, github_url,
			featured, sort_order, status, created_at
		FROM projects WHERE status = 'active' AND featured = 1
		ORDER BY sort_order ASC, created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get featured projects: %w", err)
	}
	return scanProjects(rows)
}

// GetProjectByID returns the project with the given id, or nil.
func (s *SQLiteStore) GetProjectByID(id int64) (*Project, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, tech, demo_url, github_url,
			featured, sort_order, status, created_at
		FROM projects WHERE id = ?`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get project %d: %w", id, err)
	}
	projects, err := scanProjects(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to get project %d: %w", id, err)
	}
	if len(projects) == 0 {
		return nil, nil
	}
	return &projects[0], nil
}

// UpsertCodeExample inserts or updates a code example keyed on title.
func (s *SQLiteStore) UpsertCodeExample(e *CodeExample) error {
	_, err := s.db.Exec(`
		INSERT INTO code_examples (title, description, language, code, featured, sort_order)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(title) DO UPDATE SET
			description = excluded.description,
			language = excluded.language,
			code = excluded.code,
			featured = excluded.featured,
			sort_order = excluded.sort_order,
			updated_at = CURRENT_TIMESTAMP`,
		e.Title, e.Description, e.Language, e.Code, e.Featured, e.SortOrder,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert code example %q: %w", e.Title, err)
	}
	return nil
}

// ListCodeExamples returns all code examples in display order.
// If language is non-empty, only examples in that language are returned.
func (s *SQLiteStore) ListCodeExamples(language string) ([]CodeExample, error) {
	query := `SELECT id, title, description, language, code, featured, sort_order
		FROM code_examples`
	args := []any{}
	if language != "" {
		query += " WHERE language = ?"
		args = append(args, language)
	}
	query += " ORDER BY sort_order ASC, title ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list code examples: %w", err)
	}
	defer rows.Close()

	var examples []CodeExample
	for rows.Next() {
		var e CodeExample
		var description sql.NullString
		if err := rows.Scan(&e.ID, &e.Title, &description, &e.Language,
			&e.Code, &e.Featured, &e.SortOrder); err != nil {
			return nil, err
		}
		e.Description = description.String
		examples = append(examples, e)
	}
	return examples, rows.Err()
}

// GetFeaturedCodeExamples returns code examples flagged as featured.
func (s *SQLiteStore) GetFeaturedCodeExamples() ([]CodeExample, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, language, code, featured, sort_order
		FROM code_examples WHERE featured = 1
		ORDER BY sort_order ASC, title ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get featured code examples: %w", err)
	}
	defer rows.Close()

	var examples []CodeExample
	for rows.Next() {
		var e CodeExample
		var description sql.NullString
		if err := rows.Scan(&e.ID, &e.Title, &description, &e.Language,
			&e.Code, &e.Featured, &e.SortOrder); err != nil {
			return nil, err
		}
		e.Description = description.String
		examples = append(examples, e)
	}
	return examples, rows.Err()
}

// UpsertProfile inserts or updates the profile row keyed on name.
func (s *SQLiteStore) UpsertProfile(p *Profile) error {
	_, err := s.db.Exec(`
		INSERT INTO profile (name, title, bio, location, email, avatar_url,
			github_url, linkedin_url, website_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			title = excluded.title,
			bio = excluded.bio,
			location = excluded.location,
			email = excluded.email,
			avatar_url = excluded.avatar_url,
			github_url = excluded.github_url,
			linkedin_url = excluded.linkedin_url,
			website_url = excluded.website_url,
			updated_at = CURRENT_TIMESTAMP`,
		p.Name, p.Title, p.Bio, p.Location, p.Email, p.AvatarURL,
		p.GithubURL, p.LinkedinURL, p.WebsiteURL,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile %q: %w", p.Name, err)
	}
	return nil
}

// GetProfile returns the profile row, or nil if none has been seeded.
func (s *SQLiteStore) GetProfile() (*Profile, error) {
	var p Profile
	var title, bio, location, email, avatar, github, linkedin, website sql.NullString
	err := s.db.QueryRow(`
		SELECT id, name, title, bio, location, email, avatar_url,
			github_url, linkedin_url, website_url
		FROM profile ORDER BY id LIMIT 1`,
	).Scan(&p.ID, &p.Name, &title, &bio, &location, &email,
		&avatar, &github, &linkedin, &website)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	p.Title = title.String
	p.Bio = bio.String
	p.Location = location.String
	p.Email = email.String
	p.AvatarURL = avatar.String
	p.GithubURL = github.String
	p.LinkedinURL = linkedin.String
	p.WebsiteURL = website.String
	return &p, nil
}

// UpsertSkill inserts or updates a skill keyed on name.
func (s *SQLiteStore) UpsertSkill(sk *Skill) error {
	_, err := s.db.Exec(`
		INSERT INTO skills (name, level, category, sort_order)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			level = excluded.level,
			category = excluded.category,
			sort_order = excluded.sort_order,
			updated_at = CURRENT_TIMESTAMP`,
		sk.Name, sk.Level, sk.Category, sk.SortOrder,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert skill %q: %w", sk.Name, err)
	}
	return nil
}

// ListSkills returns all skills grouped by category in display order.
func (s *SQLiteStore) ListSkills() ([]Skill, error) {
	rows, err := s.db.Query(
		"SELECT id, name, level, category, sort_order FROM skills ORDER BY category, sort_order, name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer rows.Close()

	var skills []Skill
	for rows.Next() {
		var sk Skill
		if err := rows.Scan(&sk.ID, &sk.Name, &sk.Level, &sk.Category, &sk.SortOrder); err != nil {
			return nil, err
		}
		skills = append(skills, sk)
	}
	return skills, rows.Err()
}

// ListSkillCategories returns the distinct skill categories in display order.
func (s *SQLiteStore) ListSkillCategories() ([]string, error) {
	rows, err := s.db.Query(
		"SELECT category FROM skills GROUP BY category ORDER BY MIN(sort_order), category",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list skill categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// UpsertTimelineEntry inserts or updates a timeline entry keyed on (year, title).
func (s *SQLiteStore) UpsertTimelineEntry(e *TimelineEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO timeline (year, title, company, description, sort_order)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(year, title) DO UPDATE SET
			company = excluded.company,
			description = excluded.description,
			sort_order = excluded.sort_order,
			updated_at = CURRENT_TIMESTAMP`,
		e.Year, e.Title, e.Company, e.Description, e.SortOrder,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert timeline entry %q/%q: %w", e.Year, e.Title, err)
	}
	return nil
}

// ListTimeline returns timeline entries in display order, newest year first.
func (s *SQLiteStore) ListTimeline() ([]TimelineEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, year, title, company, description, sort_order
		FROM timeline ORDER BY sort_order ASC, year DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list timeline: %w", err)
	}
	defer rows.Close()

	var entries []TimelineEntry
	for rows.Next() {
		var e TimelineEntry
		var company, description sql.NullString
		if err := rows.Scan(&e.ID, &e.Year, &e.Title, &company, &description, &e.SortOrder); err != nil {
			return nil, err
		}
		e.Company = company.String
		e.Description = description.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// UpsertStat inserts or updates a stat keyed on label.
func (s *SQLiteStore) UpsertStat(st *Stat) error {
	_, err := s.db.Exec(`
		INSERT INTO stats (label, value, icon, sort_order)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(label) DO UPDATE SET
			value = excluded.value,
			icon = excluded.icon,
			sort_order = excluded.sort_order,
			updated_at = CURRENT_TIMESTAMP`,
		st.Label, st.Value, st.Icon, st.SortOrder,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert stat %q: %w", st.Label, err)
	}
	return nil
}

// ListStats returns all stats in display order.
func (s *SQLiteStore) ListStats() ([]Stat, error) {
	rows, err := s.db.Query(
		"SELECT id, label, value, icon, sort_order FROM stats ORDER BY sort_order ASC, label ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list stats: %w", err)
	}
	defer rows.Close()

	var stats []Stat
	for rows.Next() {
		var st Stat
		var icon sql.NullString
		if err := rows.Scan(&st.ID, &st.Label, &st.Value, &icon, &st.SortOrder); err != nil {
			return nil, err
		}
		st.Icon = icon.String
		stats = append(stats, st)
	}
	return stats, rows.Err()
}
