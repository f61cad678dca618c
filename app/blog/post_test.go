package blog

import (
	"encoding/json"
	"testing"

	"github.com/lysyi3m/fitbhaskar/app/gateway"
)

func decodeRaw(t *testing.T, data string) gateway.RawPost {
	t.Helper()
	var raw gateway.RawPost
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		t.Fatalf("Failed to decode raw post: %v", err)
	}
	return raw
}

func TestNormalize_Defaults(t *testing.T) {
	post := Normalize(decodeRaw(t, `{"row": 3, "content": "hello"}`))

	if post.Subject != "Untitled" {
		t.Errorf("Expected subject 'Untitled', got %q", post.Subject)
	}
	if post.Name != "Anonymous" {
		t.Errorf("Expected name 'Anonymous', got %q", post.Name)
	}
	if post.Row != 3 {
		t.Errorf("Expected row 3, got %d", post.Row)
	}
	if post.DateTime != "" || post.Email != "" || post.Approved != "" {
		t.Errorf("Expected empty optional fields, got %+v", post)
	}
}

func TestNormalize_FallbackChains(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Post
	}{
		{
			name:  "primary fields",
			input: `{"row": 1, "dateTime": "2024-03-01", "name": "Asha", "subject": "Hi", "approved": "Yes"}`,
			want:  Post{Row: 1, DateTime: "2024-03-01", Name: "Asha", Subject: "Hi", Approved: "Yes"},
		},
		{
			name:  "alternate fields",
			input: `{"row": "2", "date": "2024-03-02", "author": "Ravi", "title": "Legs"}`,
			want:  Post{Row: 2, DateTime: "2024-03-02", Name: "Ravi", Subject: "Legs"},
		},
		{
			name:  "empty primary falls through",
			input: `{"name": "", "author": "Ravi", "subject": null, "title": "Legs"}`,
			want:  Post{Name: "Ravi", Subject: "Legs"},
		},
		{
			name:  "falsy values use defaults",
			input: `{"row": "abc", "name": 0, "subject": false}`,
			want:  Post{Name: "Anonymous", Subject: "Untitled"},
		},
		{
			name:  "numbers are stringified",
			input: `{"subject": 42, "approved": true}`,
			want:  Post{Name: "Anonymous", Subject: "42", Approved: "true"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(decodeRaw(t, tt.input))
			if got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestIsApproved(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"Yes", true},
		{" yes ", true},
		{"YES", true},
		{"no", false},
		{"", false},
		{"pending", false},
		{"yes please", false},
	}

	for _, tt := range tests {
		if got := IsApproved(tt.value); got != tt.want {
			t.Errorf("IsApproved(%q) = %t, want %t", tt.value, got, tt.want)
		}
	}
}

func TestFilterApproved_PreservesOrder(t *testing.T) {
	posts := []Post{
		{Row: 5, Approved: "yes"},
		{Row: 1, Approved: "no"},
		{Row: 3, Approved: "YES"},
		{Row: 2},
	}

	got := FilterApproved(posts)
	if len(got) != 2 || got[0].Row != 5 || got[1].Row != 3 {
		t.Errorf("Expected rows [5 3], got %+v", got)
	}
}

func TestBadge(t *testing.T) {
	if got := (Post{Approved: "Yes"}).Badge(); got != "Approved (Yes)" {
		t.Errorf("Unexpected badge for approved post: %q", got)
	}
	if got := (Post{Approved: "No"}).Badge(); got != "Not Approved (No)" {
		t.Errorf("Unexpected badge for hidden post: %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2024-01-15", "15 January 2024"},
		{"2024-01-10 18:30:00", "10 January 2024"},
		{"", "Unknown date"},
		{"sometime last week", "sometime last week"},
	}

	for _, tt := range tests {
		if got := FormatDate(tt.input); got != tt.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestReadingTime(t *testing.T) {
	long := ""
	for i := 0; i < 401; i++ {
		long += "word "
	}

	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 1},
		{"short", "one two three", 1},
		{"exactly 200 words", repeatWords(200), 1},
		{"201 words", repeatWords(201), 2},
		{"trailing space counts", long, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReadingTime(tt.content); got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}

func repeatWords(n int) string {
	words := make([]byte, 0, n*2)
	for i := 0; i < n; i++ {
		if i > 0 {
			words = append(words, ' ')
		}
		words = append(words, 'w')
	}
	return string(words)
}

func TestFallbackPosts(t *testing.T) {
	posts := FallbackPosts()
	if len(posts) != 2 {
		t.Fatalf("Expected 2 fallback posts, got %d", len(posts))
	}
	if posts[0].Name != "Rahul Sharma" || posts[1].Name != "Priya Patel" {
		t.Errorf("Unexpected fallback authors: %q, %q", posts[0].Name, posts[1].Name)
	}
	for _, p := range posts {
		if !p.IsApproved() {
			t.Errorf("Fallback post %d must be approved", p.Row)
		}
	}
}
