// Package feed renders the site's RSS channel and XML sitemap.
package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"devlog"
)

// Generator renders feed documents for one site.
type Generator struct {
	BaseURL     string
	Title       string
	Description string
}

// NewGenerator returns a Generator for the site at baseURL. A trailing
// slash on baseURL is dropped so joined paths stay clean.
func NewGenerator(baseURL, title, description string) *Generator {
	return &Generator{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		Title:       title,
		Description: description,
	}
}

type rssDoc struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	AtomNS  string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         cdata      `xml:"title"`
	Link          string     `xml:"link"`
	Description   cdata      `xml:"description"`
	Language      string     `xml:"language"`
	LastBuildDate string     `xml:"lastBuildDate"`
	AtomLink      atomLink   `xml:"atom:link"`
	Items         []rssItem  `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       cdata    `xml:"title"`
	Link        string   `xml:"link"`
	GUID        rssGUID  `xml:"guid"`
	Description cdata    `xml:"description"`
	PubDate     string   `xml:"pubDate,omitempty"`
	Categories  []string `xml:"category"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// cdata wraps text that may contain markup-significant characters.
type cdata struct {
	Value string `xml:",cdata"`
}

// RSS renders the RSS 2.0 channel for the given articles, assumed to be
// in publish order, newest first.
func (g *Generator) RSS(articles []devlog.Article) ([]byte, error) {
	channel := rssChannel{
		Title:         cdata{g.Title},
		Link:          g.BaseURL,
		Description:   cdata{g.Description},
		Language:      "en",
		LastBuildDate: time.Now().Format(time.RFC1123Z),
		AtomLink: atomLink{
			Href: g.BaseURL + "/rss.xml",
			Rel:  "self",
			Type: "application/rss+xml",
		},
	}

	for _, a := range articles {
		link := g.articleURL(a.Slug)
		item := rssItem{
			Title:       cdata{a.Title},
			Link:        link,
			GUID:        rssGUID{IsPermaLink: true, Value: link},
			Description: cdata{a.Excerpt},
			Categories:  append([]string{a.Category}, a.Tags...),
		}
		if a.PublishedAt != nil {
			item.PubDate = a.PublishedAt.Format(time.RFC1123Z)
		}
		channel.Items = append(channel.Items, item)
	}

	return marshalDoc(rssDoc{
		Version: "2.0",
		AtomNS:  "http://www.w3.org/2005/Atom",
		Channel: channel,
	})
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	XMLNS   string     `xml:"xmlns,attr"`
	URLs    []siteURL  `xml:"url"`
}

type siteURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Sitemap renders the XML sitemap: static pages first, then articles,
// categories, and tags.
func (g *Generator) Sitemap(articles []devlog.Article, categories []devlog.Category, tags []devlog.Tag) ([]byte, error) {
	set := urlSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}

	set.URLs = append(set.URLs,
		siteURL{Loc: g.BaseURL, ChangeFreq: "daily", Priority: "1.0"},
		siteURL{Loc: g.BaseURL + "/posts", ChangeFreq: "daily", Priority: "0.9"},
		siteURL{Loc: g.BaseURL + "/about", ChangeFreq: "monthly", Priority: "0.8"},
		siteURL{Loc: g.BaseURL + "/projects", ChangeFreq: "weekly", Priority: "0.8"},
		siteURL{Loc: g.BaseURL + "/categories", ChangeFreq: "weekly", Priority: "0.7"},
		siteURL{Loc: g.BaseURL + "/tags", ChangeFreq: "weekly", Priority: "0.6"},
		siteURL{Loc: g.BaseURL + "/contact", ChangeFreq: "monthly", Priority: "0.5"},
	)

	for _, a := range articles {
		set.URLs = append(set.URLs, siteURL{
			Loc:        g.articleURL(a.Slug),
			LastMod:    a.UpdatedAt.Format("2006-01-02"),
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
	}
	for _, c := range categories {
		set.URLs = append(set.URLs, siteURL{
			Loc:        g.BaseURL + "/categories/" + c.Slug,
			ChangeFreq: "weekly",
			Priority:   "0.6",
		})
	}
	for _, t := range tags {
		set.URLs = append(set.URLs, siteURL{
			Loc:        g.BaseURL + "/tags/" + t.Slug,
			ChangeFreq: "weekly",
			Priority:   "0.5",
		})
	}

	return marshalDoc(set)
}

func (g *Generator) articleURL(slug string) string {
	return g.BaseURL + "/posts/" + slug
}

func marshalDoc(doc any) ([]byte, error) {
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal feed: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
