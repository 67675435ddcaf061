package content

import (
	"bytes"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FrontMatter holds the metadata block at the top of a markdown file.
type FrontMatter struct {
	Title          string   `yaml:"title" toml:"title"`
	Excerpt        string   `yaml:"excerpt" toml:"excerpt"`
	Category       string   `yaml:"category" toml:"category"`
	Tags           []string `yaml:"tags" toml:"tags"`
	CoverImage     string   `yaml:"coverImage" toml:"coverImage"`
	PublishedAt    string   `yaml:"publishedAt" toml:"publishedAt"`
	Featured       bool     `yaml:"featured" toml:"featured"`
	Draft          bool     `yaml:"draft" toml:"draft"`
	SEOTitle       string   `yaml:"seoTitle" toml:"seoTitle"`
	SEODescription string   `yaml:"seoDescription" toml:"seoDescription"`
	SEOKeywords    []string `yaml:"seoKeywords" toml:"seoKeywords"`
}

var (
	yamlDelim = []byte("---")
	tomlDelim = []byte("+++")
)

// ParseFrontMatter splits a markdown document into its front matter and
// body. YAML blocks are delimited by "---", TOML blocks by "+++". A file
// with no front matter returns an empty FrontMatter and the full body.
// CRLF line endings are normalized so Windows-authored files parse.
func ParseFrontMatter(data []byte) (*FrontMatter, string, error) {
	var fm FrontMatter

	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))

	delim, decode := frontMatterFormat(data)
	if delim == nil {
		return &fm, string(bytes.TrimLeft(data, "\r\n")), nil
	}

	rest := data[len(delim):]
	end := bytes.Index(rest, []byte("\n"+string(delim)))
	if end < 0 {
		return nil, "", fmt.Errorf("unterminated front matter block")
	}

	block := rest[:end]
	body := rest[end+1+len(delim):]
	if err := decode(block, &fm); err != nil {
		return nil, "", fmt.Errorf("failed to parse front matter: %w", err)
	}

	return &fm, string(bytes.TrimLeft(body, "\r\n")), nil
}

func frontMatterFormat(data []byte) ([]byte, func([]byte, *FrontMatter) error) {
	switch {
	case bytes.HasPrefix(data, []byte("---\n")):
		return yamlDelim, func(b []byte, fm *FrontMatter) error {
			return yaml.Unmarshal(b, fm)
		}
	case bytes.HasPrefix(data, []byte("+++\n")):
		return tomlDelim, func(b []byte, fm *FrontMatter) error {
			return toml.Unmarshal(b, fm)
		}
	}
	return nil, nil
}

// publishedTime parses the front matter's publish date. Empty means "now".
// Accepts full RFC 3339 timestamps and bare dates.
func (fm *FrontMatter) publishedTime() (time.Time, error) {
	if fm.PublishedAt == "" {
		return time.Now(), nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, fm.PublishedAt); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid publishedAt %q", fm.PublishedAt)
}
