package feed

import (
	"time"
)

// Channel describes the RSS channel written for the blog export.
type Channel struct {
	Title       string
	Link        string
	Description string
	Language    string
}

// Metadata is what the creator's video channel says about itself.
type Metadata struct {
	Title           string
	Link            string
	Description     string
	FeedPublishedAt *time.Time
}

type Video struct {
	ID           string
	Title        string
	Link         string
	Description  string
	ThumbnailURL string
	PublishedAt  time.Time
}

// FilterRule keeps or drops videos by case-insensitive substring match.
type FilterRule struct {
	Field    string   `yaml:"field"`
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}
