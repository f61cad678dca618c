package feed

import (
	"testing"
)

func TestFilterer_Run(t *testing.T) {
	videos := []Video{
		{ID: "1", Title: "Full Body Workout", Link: "https://www.youtube.com/watch?v=1"},
		{ID: "2", Title: "Morning stretch #Shorts", Link: "https://www.youtube.com/shorts/2"},
		{ID: "3", Title: "Diet Q&A", Description: "Protein questions", Link: "https://www.youtube.com/watch?v=3"},
	}

	tests := []struct {
		name  string
		rules []FilterRule
		want  []string
	}{
		{
			name: "no rules keeps everything",
			want: []string{"1", "2", "3"},
		},
		{
			name:  "exclude is case-insensitive",
			rules: []FilterRule{{Field: "title", Excludes: []string{"#shorts"}}},
			want:  []string{"1", "3"},
		},
		{
			name:  "exclude by link",
			rules: []FilterRule{{Field: "link", Excludes: []string{"/shorts/"}}},
			want:  []string{"1", "3"},
		},
		{
			name:  "include requires a match",
			rules: []FilterRule{{Field: "description", Includes: []string{"protein"}}},
			want:  []string{"3"},
		},
		{
			name: "rules combine",
			rules: []FilterRule{
				{Field: "title", Includes: []string{"workout", "stretch"}},
				{Field: "link", Excludes: []string{"shorts"}},
			},
			want: []string{"1"},
		},
		{
			name:  "unknown field never matches includes",
			rules: []FilterRule{{Field: "duration", Includes: []string{"10"}}},
			want:  []string{},
		},
	}

	filterer := NewFilterer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterer.Run(videos, tt.rules)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d videos, got %d", len(tt.want), len(got))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("Expected video %s at %d, got %s", id, i, got[i].ID)
				}
			}
		})
	}
}
