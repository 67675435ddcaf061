// Package seed loads the fixed datasets behind the about and projects
// pages: profile, skills, timeline, stats, projects, code examples, and
// the starting category/tag set. Every write is an upsert, so seeding
// is safe to repeat.
package seed

import (
	"fmt"

	"devlog/internal/storage"
)

// Seeder writes the fixed datasets into a store.
type Seeder struct {
	store storage.Store
}

func New(store storage.Store) *Seeder {
	return &Seeder{store: store}
}

// Run seeds every dataset. It stops at the first failure so a partial
// run is visible in the error rather than silently skipped.
func (s *Seeder) Run() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"profile", s.seedProfile},
		{"skills", s.seedSkills},
		{"timeline", s.seedTimeline},
		{"stats", s.seedStats},
		{"projects", s.seedProjects},
		{"code examples", s.seedCodeExamples},
		{"categories", s.seedCategories},
		{"tags", s.seedTags},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("seed %s: %w", step.name, err)
		}
	}
	return nil
}

func (s *Seeder) seedProfile() error {
	return s.store.UpsertProfile(&Profile)
}

func (s *Seeder) seedSkills() error {
	for i := range Skills {
		if err := s.store.UpsertSkill(&Skills[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedTimeline() error {
	for i := range Timeline {
		if err := s.store.UpsertTimelineEntry(&Timeline[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedStats() error {
	for i := range Stats {
		if err := s.store.UpsertStat(&Stats[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedProjects() error {
	for i := range Projects {
		if err := s.store.UpsertProject(&Projects[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedCodeExamples() error {
	for i := range CodeExamples {
		if err := s.store.UpsertCodeExample(&CodeExamples[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedCategories() error {
	for i := range Categories {
		if err := s.store.UpsertCategory(&Categories[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedTags() error {
	for _, t := range Tags {
		if _, err := s.store.UpsertTag(t.Slug, t.Name); err != nil {
			return err
		}
	}
	return nil
}
