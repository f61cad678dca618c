package blog

import (
	"cmp"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/lysyi3m/fitbhaskar/app/gateway"
)

const (
	DefaultName    = "Anonymous"
	DefaultSubject = "Untitled"

	wordsPerMinute = 200
	dateLayout     = "2 January 2006"
)

type Post struct {
	Row      int    `json:"row"`
	DateTime string `json:"dateTime"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Subject  string `json:"subject"`
	Content  string `json:"content"`
	Approved string `json:"approved"`
}

// IsApproved is the single visibility rule shared by every view.
func IsApproved(value string) bool {
	return strings.ToLower(strings.TrimSpace(value)) == "yes"
}

func (p Post) IsApproved() bool {
	return IsApproved(p.Approved)
}

// Badge is the moderation label shown next to a post in the admin list.
func (p Post) Badge() string {
	if p.IsApproved() {
		return "Approved (Yes)"
	}
	return "Not Approved (No)"
}

func (p Post) FormattedDate() string {
	return FormatDate(p.DateTime)
}

func (p Post) ReadingTime() int {
	return ReadingTime(p.Content)
}

func (p Post) PublishedAt() (time.Time, bool) {
	return ParseDate(p.DateTime)
}

func Normalize(raw gateway.RawPost) Post {
	return Post{
		Row:      raw.Row.Int(),
		DateTime: firstOf(raw.DateTime, raw.Date),
		Email:    firstOf(raw.Email),
		Name:     cmp.Or(firstOf(raw.Name, raw.Author), DefaultName),
		Subject:  cmp.Or(firstOf(raw.Subject, raw.Title), DefaultSubject),
		Content:  firstOf(raw.Content),
		Approved: firstOf(raw.Approved),
	}
}

func NormalizeAll(raws []gateway.RawPost) []Post {
	posts := make([]Post, 0, len(raws))
	for _, raw := range raws {
		posts = append(posts, Normalize(raw))
	}
	return posts
}

// FilterApproved keeps approved posts in the order received.
func FilterApproved(posts []Post) []Post {
	approved := make([]Post, 0, len(posts))
	for _, post := range posts {
		if post.IsApproved() {
			approved = append(approved, post)
		}
	}
	return approved
}

func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(value, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func FormatDate(value string) string {
	t, ok := ParseDate(value)
	if !ok {
		return cmp.Or(value, "Unknown date")
	}
	return t.In(time.Local).Format(dateLayout)
}

// ReadingTime estimates minutes at 200 words per minute, never less than one.
func ReadingTime(content string) int {
	words := len(strings.Split(content, " "))
	return max(1, (words+wordsPerMinute-1)/wordsPerMinute)
}

func firstOf(values ...gateway.LooseValue) string {
	for _, v := range values {
		if v.Truthy() {
			return v.String()
		}
	}
	return ""
}

// FallbackPosts is what the public feed shows when the gateway is unreachable.
func FallbackPosts() []Post {
	return []Post{
		{
			Row:      1,
			Subject:  "My 6-Month Transformation Journey",
			Name:     "Rahul Sharma",
			Email:    "rahul@example.com",
			Content:  "When I started my fitness journey, I weighed 95kg and could barely run for 5 minutes. Six months later, I've lost 20kg and completed my first 10K run. The key was consistency, showing up every day even when I didn't feel like it.",
			DateTime: "2024-01-15",
			Approved: "Yes",
		},
		{
			Row:      2,
			Subject:  "How Meal Prep Changed Everything",
			Name:     "Priya Patel",
			Email:    "priya@example.com",
			Content:  "Meal prep on Sundays keeps my week clean and budget friendly. Energy levels have skyrocketed, and I've finally broken through my weight loss plateau.",
			DateTime: "2024-01-10",
			Approved: "Yes",
		},
	}
}
