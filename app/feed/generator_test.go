package feed

import (
	"strings"
	"testing"

	"github.com/mmcdole/gofeed"

	"github.com/lysyi3m/fitbhaskar/app/blog"
	"github.com/lysyi3m/fitbhaskar/app/cfg"
)

func setupTestConfig() {
	cfg.Set(&cfg.Cfg{Port: "8080", Version: "test"})
}

func samplePosts() []blog.Post {
	return []blog.Post{
		{
			Row:      2,
			DateTime: "2024-01-15T10:00:00Z",
			Email:    "asha@example.com",
			Name:     "Asha",
			Subject:  "Week one & beyond",
			Content:  "Squats <every> morning",
			Approved: "Yes",
		},
		{
			Row:      3,
			Name:     "Ravi",
			Subject:  "Hidden",
			Content:  "not yet",
			Approved: "No",
		},
		{
			Row:      4,
			DateTime: "whenever",
			Name:     "Priya",
			Subject:  "Meal prep",
			Approved: " yes ",
		},
	}
}

func TestGenerateRSS(t *testing.T) {
	setupTestConfig()
	generator := NewGenerator()

	rss, err := generator.Run(Channel{Title: "FitBhaskar Blog", Language: "en-in"}, samplePosts())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !strings.Contains(rss, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Error("RSS should contain XML declaration")
	}

	if !strings.Contains(rss, `<rss version="2.0"`) {
		t.Error("RSS should contain RSS 2.0 declaration")
	}

	if !strings.Contains(rss, "<title>FitBhaskar Blog</title>") {
		t.Error("RSS should contain channel title")
	}

	if !strings.Contains(rss, "<link>http://localhost:8080/blog</link>") {
		t.Error("RSS should default channel link to the blog page")
	}

	if !strings.Contains(rss, `<atom:link href="http://localhost:8080/blog/feed.xml" rel="self" type="application/rss+xml" />`) {
		t.Error("RSS should contain atom:link self reference")
	}

	if !strings.Contains(rss, "<generator>FitBhaskar/test</generator>") {
		t.Error("RSS should contain generator with version")
	}

	if !strings.Contains(rss, "<language>en-in</language>") {
		t.Error("RSS should contain language")
	}

	if !strings.Contains(rss, `<guid isPermaLink="true">http://localhost:8080/blog#post-2</guid>`) {
		t.Error("RSS should contain permalink GUID")
	}

	if !strings.Contains(rss, "<title>Week one &amp; beyond</title>") {
		t.Error("RSS should escape item title")
	}

	if !strings.Contains(rss, "<description>Squats &lt;every&gt; morning</description>") {
		t.Error("RSS should escape item description")
	}

	if !strings.Contains(rss, "<author>asha@example.com (Asha)</author>") {
		t.Error("RSS should contain author in email (name) form")
	}

	if !strings.Contains(rss, "<pubDate>Mon, 15 Jan 2024") {
		t.Error("RSS should contain parsed pubDate")
	}

	if strings.Contains(rss, "Hidden") {
		t.Error("RSS must never contain unapproved posts")
	}

	if !strings.Contains(rss, "<title>Meal prep</title>") {
		t.Error("RSS should contain approved post with loose approval value")
	}

	if !strings.Contains(rss, "<description>No description available</description>") {
		t.Error("RSS should fall back for empty content")
	}
}

func TestGenerateRSS_BaseURL(t *testing.T) {
	cfg.Set(&cfg.Cfg{Port: "8080", BaseUrl: "https://fitbhaskar.example", Version: "test"})
	defer setupTestConfig()

	rss, err := NewGenerator().Run(Channel{Title: "Blog"}, samplePosts()[:1])
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !strings.Contains(rss, `<atom:link href="https://fitbhaskar.example/blog/feed.xml"`) {
		t.Error("RSS should use the configured base URL")
	}
}

func TestGenerateRSS_ParsesWithGofeed(t *testing.T) {
	setupTestConfig()

	rss, err := NewGenerator().Run(Channel{Title: "FitBhaskar Blog"}, samplePosts())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	parsed, err := gofeed.NewParser().ParseString(rss)
	if err != nil {
		t.Fatalf("Generated RSS should be parseable, got: %v", err)
	}

	if parsed.Title != "FitBhaskar Blog" {
		t.Errorf("Expected title 'FitBhaskar Blog', got: %s", parsed.Title)
	}
	if len(parsed.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(parsed.Items))
	}
	if parsed.Items[0].Title != "Week one & beyond" {
		t.Errorf("Expected unescaped title, got: %s", parsed.Items[0].Title)
	}
	if parsed.Items[0].PublishedParsed == nil {
		t.Error("Expected first item to have a parsed pubDate")
	}
	if parsed.Items[1].PublishedParsed != nil {
		t.Error("Expected no pubDate for an unparseable date")
	}
}

func TestGenerateRSS_Empty(t *testing.T) {
	setupTestConfig()

	rss, err := NewGenerator().Run(Channel{Title: "Blog"}, nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if strings.Contains(rss, "<item>") {
		t.Error("RSS should not contain items")
	}
	if !strings.Contains(rss, "<lastBuildDate>") {
		t.Error("RSS should always contain lastBuildDate")
	}
}
