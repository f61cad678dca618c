package feed

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"html"
	"time"

	"github.com/lysyi3m/fitbhaskar/app/blog"
	"github.com/lysyi3m/fitbhaskar/app/cfg"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Run writes approved posts as RSS 2.0. Callers pass posts already filtered
// for visibility; anything unapproved is skipped regardless.
func (g *Generator) Run(channel Channel, posts []blog.Post) (string, error) {
	var buf bytes.Buffer

	siteURL := g.siteURL()

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", channel.Title, 4)
	g.writeElement(&buf, "link", cmp.Or(channel.Link, siteURL+"/blog"), 4)
	g.writeElement(&buf, "description", cmp.Or(channel.Description, "Community stories from "+channel.Title), 4)

	selfLink := fmt.Sprintf("%s/blog/feed.xml", siteURL)
	buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
		html.EscapeString(selfLink)))

	lastBuildDate := time.Now().In(time.Local)
	for _, post := range posts {
		if published, ok := post.PublishedAt(); ok {
			lastBuildDate = published
			break
		}
	}

	g.writeElement(&buf, "lastBuildDate", lastBuildDate.Format(time.RFC1123Z), 4)
	g.writeElement(&buf, "generator", fmt.Sprintf("FitBhaskar/%s", cfg.Get().Version), 4)
	if channel.Language != "" {
		g.writeElement(&buf, "language", channel.Language, 4)
	}

	for _, post := range posts {
		if !post.IsApproved() {
			continue
		}
		g.writeItem(&buf, siteURL, post)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String(), nil
}

func (g *Generator) writeItem(buf *bytes.Buffer, siteURL string, post blog.Post) {
	buf.WriteString("    <item>\n")

	link := fmt.Sprintf("%s/blog#post-%d", siteURL, post.Row)

	buf.WriteString("      <guid isPermaLink=\"true\">")
	xml.EscapeText(buf, []byte(link))
	buf.WriteString("</guid>\n")

	g.writeElement(buf, "title", post.Subject, 6)
	g.writeElement(buf, "link", link, 6)
	g.writeElement(buf, "description", cmp.Or(post.Content, "No description available"), 6)

	if published, ok := post.PublishedAt(); ok {
		g.writeElement(buf, "pubDate", published.Format(time.RFC1123Z), 6)
	}

	g.writeElement(buf, "author", g.formatAuthor(post.Name, post.Email), 6)

	buf.WriteString("    </item>\n")
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

// formatAuthor follows the RSS 2.0 "email (name)" convention.
func (g *Generator) formatAuthor(name, email string) string {
	if email != "" && name != "" {
		return fmt.Sprintf("%s (%s)", email, name)
	}
	return cmp.Or(email, name)
}

func (g *Generator) siteURL() string {
	if base := cfg.Get().BaseUrl; base != "" {
		return base
	}
	return fmt.Sprintf("http://localhost:%s", cfg.Get().Port)
}
