package content

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_content.yml
var defaultContent []byte

const defaultMaxVideos = 6

var validFilterFields = map[string]bool{
	"title":       true,
	"description": true,
	"link":        true,
}

// Loader reads site copy from a YAML file, or the built-in copy when no
// file is configured.
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

func (l *Loader) Load() (*Site, error) {
	data := defaultContent
	source := "embedded"

	if l.path != "" {
		fileData, err := os.ReadFile(l.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read content file: %w", err)
		}
		data = fileData
		source = l.path
	}

	site, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid content %s: %w", source, err)
	}

	slog.Info("Site content loaded", "source", source, "timeline", len(site.Timeline), "sections", len(site.Sections))
	return site, nil
}

// Default returns the built-in site copy.
func Default() *Site {
	site, err := Parse(defaultContent)
	if err != nil {
		panic(fmt.Sprintf("embedded content is invalid: %v", err))
	}
	return site
}

func Parse(data []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	setDefaults(&site)

	if err := validate(&site); err != nil {
		return nil, err
	}

	return &site, nil
}

func setDefaults(site *Site) {
	if site.Channel.MaxVideos == 0 {
		site.Channel.MaxVideos = defaultMaxVideos
	}
	if site.Brand.Language == "" {
		site.Brand.Language = "en-in"
	}
	if site.Blog.Title == "" {
		site.Blog.Title = "Community Blog"
	}
}

func validate(site *Site) error {
	if site.Brand.Name == "" {
		return fmt.Errorf("brand name is required")
	}
	if site.Channel.MaxVideos < 0 {
		return fmt.Errorf("channel max_videos must be non-negative")
	}

	for i, m := range site.Timeline {
		if m.Year == "" || m.Title == "" {
			return fmt.Errorf("timeline entry %d needs a year and a title", i)
		}
	}

	for i, s := range site.Sections {
		if s.Title == "" || s.Path == "" {
			return fmt.Errorf("section %d needs a title and a path", i)
		}
	}

	for i, filter := range site.Channel.Filters {
		if !validFilterFields[filter.Field] {
			return fmt.Errorf("invalid filter field at index %d: %s", i, filter.Field)
		}
		if len(filter.Includes) == 0 && len(filter.Excludes) == 0 {
			return fmt.Errorf("filter at index %d must have at least one include or exclude rule", i)
		}
	}

	return nil
}
