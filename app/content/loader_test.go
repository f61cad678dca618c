package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultContent(t *testing.T) {
	site := Default()

	if site.Brand.Name != "TheFitBhaskar" {
		t.Errorf("Expected brand 'TheFitBhaskar', got: %s", site.Brand.Name)
	}
	if len(site.Timeline) != 5 {
		t.Errorf("Expected 5 timeline entries, got %d", len(site.Timeline))
	}
	if len(site.Sections) != 6 {
		t.Errorf("Expected 6 sections, got %d", len(site.Sections))
	}
	if len(site.About.DailyRoutine) != 10 {
		t.Errorf("Expected 10 routine slots, got %d", len(site.About.DailyRoutine))
	}
	if len(site.About.Rules) != 6 || len(site.About.Reasons) != 6 {
		t.Errorf("Expected 6 rules and 6 reasons, got %d and %d", len(site.About.Rules), len(site.About.Reasons))
	}
	if site.Channel.MaxVideos != 6 {
		t.Errorf("Expected 6 max videos, got %d", site.Channel.MaxVideos)
	}
}

func TestLoad_EmbeddedWhenNoPath(t *testing.T) {
	site, err := NewLoader("").Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if site.About.Title != "From 92 kg to 68 kg" {
		t.Errorf("Unexpected about title: %s", site.About.Title)
	}
}

func TestLoad_FileWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yml")
	data := `
brand:
  name: "Test Brand"
timeline:
  - year: "2024"
    title: "Start"
channel:
  filters:
    - field: "title"
      excludes: ["#shorts"]
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	site, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if site.Brand.Name != "Test Brand" {
		t.Errorf("Expected brand 'Test Brand', got: %s", site.Brand.Name)
	}
	if site.Brand.Language != "en-in" {
		t.Errorf("Expected default language, got: %s", site.Brand.Language)
	}
	if site.Channel.MaxVideos != defaultMaxVideos {
		t.Errorf("Expected default max videos, got %d", site.Channel.MaxVideos)
	}
	if site.Blog.Title != "Community Blog" {
		t.Errorf("Expected default blog title, got: %s", site.Blog.Title)
	}
	if len(site.Channel.Filters) != 1 || site.Channel.Filters[0].Excludes[0] != "#shorts" {
		t.Errorf("Unexpected filters: %+v", site.Channel.Filters)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "missing.yml")).Load()
	if err == nil {
		t.Error("Expected error for missing content file")
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"bad yaml", "brand: [", "failed to parse YAML"},
		{"missing brand", "hero:\n  badge: x\n", "brand name is required"},
		{"negative max videos", "brand:\n  name: x\nchannel:\n  max_videos: -1\n", "max_videos"},
		{"timeline without year", "brand:\n  name: x\ntimeline:\n  - title: y\n", "timeline entry 0"},
		{"section without path", "brand:\n  name: x\nsections:\n  - title: y\n", "section 0"},
		{"invalid filter field", "brand:\n  name: x\nchannel:\n  filters:\n    - field: views\n      excludes: [a]\n", "invalid filter field"},
		{"empty filter", "brand:\n  name: x\nchannel:\n  filters:\n    - field: title\n", "at least one include or exclude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got: %v", tt.wantErr, err)
			}
		})
	}
}
