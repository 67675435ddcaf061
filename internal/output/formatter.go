package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"devlog"
)

type Format string

const (
	FormatJSON  Format = "json"
	FormatText  Format = "text"
	FormatHuman Format = "human"
)

type Formatter struct {
	format Format
	out    io.Writer
	err    io.Writer
}

// NewFormatter creates a new output formatter
func NewFormatter(format Format) *Formatter {
	return &Formatter{
		format: format,
		out:    os.Stdout,
		err:    os.Stderr,
	}
}

// NewFormatterWithWriters creates a formatter with custom output writers for testability
func NewFormatterWithWriters(format Format, out, errW io.Writer) *Formatter {
	return &Formatter{
		format: format,
		out:    out,
		err:    errW,
	}
}

// OutputSyncResult outputs a content sync tally in the configured format
func (f *Formatter) OutputSyncResult(result *devlog.SyncResult) error {
	switch f.format {
	case FormatJSON:
		return json.NewEncoder(f.out).Encode(result)
	case FormatText:
		fmt.Fprintf(f.out, "synced=%d\n", result.Synced)
		fmt.Fprintf(f.out, "failed=%d\n", result.Failed)
		return nil
	case FormatHuman:
		fmt.Fprintf(f.out, "Synced %d article(s)\n", result.Synced)
		if result.Failed > 0 {
			fmt.Fprintf(f.out, "Failed %d file(s):\n", result.Failed)
			for _, e := range result.Errors {
				fmt.Fprintf(f.out, "  - %s\n", e)
			}
		}
		return nil
	}
	return fmt.Errorf("unknown format: %s", f.format)
}

// OutputTableCounts outputs per-table row counts
func (f *Formatter) OutputTableCounts(counts map[string]int) error {
	switch f.format {
	case FormatJSON:
		return json.NewEncoder(f.out).Encode(counts)
	case FormatText, FormatHuman:
		tables := make([]string, 0, len(counts))
		for table := range counts {
			tables = append(tables, table)
		}
		sort.Strings(tables)
		for _, table := range tables {
			if f.format == FormatText {
				fmt.Fprintf(f.out, "table=%s\tcount=%d\n", table, counts[table])
			} else {
				fmt.Fprintf(f.out, "%-15s %d\n", table, counts[table])
			}
		}
		return nil
	}
	return fmt.Errorf("unknown format: %s", f.format)
}

// OutputSiteStats outputs the aggregate site numbers
func (f *Formatter) OutputSiteStats(stats *devlog.SiteStats) error {
	switch f.format {
	case FormatJSON:
		return json.NewEncoder(f.out).Encode(stats)
	case FormatText:
		fmt.Fprintf(f.out, "published=%d\tfeatured=%d\tcategories=%d\ttags=%d\tviews=%d\n",
			stats.PublishedArticles, stats.FeaturedArticles,
			stats.Categories, stats.Tags, stats.TotalViews)
		return nil
	case FormatHuman:
		fmt.Fprintf(f.out, "Published articles: %d (%d featured)\n",
			stats.PublishedArticles, stats.FeaturedArticles)
		fmt.Fprintf(f.out, "Categories: %d, tags: %d\n", stats.Categories, stats.Tags)
		fmt.Fprintf(f.out, "Total views: %d\n", stats.TotalViews)
		return nil
	}
	return fmt.Errorf("unknown format: %s", f.format)
}

// Error outputs an error message to stderr
func (f *Formatter) Error(format string, args ...interface{}) {
	fmt.Fprintf(f.err, format+"\n", args...)
}

// Warning outputs a warning message to stderr
func (f *Formatter) Warning(format string, args ...interface{}) {
	fmt.Fprintf(f.err, "Warning: "+format+"\n", args...)
}
