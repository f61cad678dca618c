package feed

import (
	"bytes"
	"cmp"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

// ChannelParser reads the creator's video channel feed (RSS or Atom).
type ChannelParser struct {
	gofeedParser *gofeed.Parser
}

func NewChannelParser() *ChannelParser {
	return &ChannelParser{
		gofeedParser: gofeed.NewParser(),
	}
}

func (p *ChannelParser) Run(data []byte) (*Metadata, []Video, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	metadata := &Metadata{
		Title:       feed.Title,
		Link:        feed.Link,
		Description: feed.Description,
	}

	if feed.PublishedParsed != nil {
		metadata.FeedPublishedAt = feed.PublishedParsed
	} else if feed.UpdatedParsed != nil {
		metadata.FeedPublishedAt = feed.UpdatedParsed
	}

	videos := make([]Video, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		videos = append(videos, p.normalizeItem(item))
	}

	return metadata, videos, nil
}

func (p *ChannelParser) normalizeItem(item *gofeed.Item) Video {
	video := Video{
		ID:          cmp.Or(extensionValue(item.Extensions, "yt", "videoId"), item.GUID, item.Link),
		Title:       strings.TrimSpace(item.Title),
		Link:        item.Link,
		Description: item.Description,
	}

	if item.PublishedParsed != nil {
		video.PublishedAt = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		video.PublishedAt = *item.UpdatedParsed
	}

	if item.Image != nil {
		video.ThumbnailURL = item.Image.URL
	}
	if video.ThumbnailURL == "" {
		video.ThumbnailURL = mediaThumbnail(item.Extensions)
	}

	if video.Description == "" {
		video.Description = mediaDescription(item.Extensions)
	}

	return video
}

func extensionValue(exts ext.Extensions, namespace, name string) string {
	for _, e := range exts[namespace][name] {
		if v := strings.TrimSpace(e.Value); v != "" {
			return v
		}
	}
	return ""
}

// mediaThumbnail looks for media:thumbnail either at item level or inside
// media:group, which is where video channels put it.
func mediaThumbnail(exts ext.Extensions) string {
	media := exts["media"]
	for _, thumb := range media["thumbnail"] {
		if url := thumb.Attrs["url"]; url != "" {
			return url
		}
	}
	for _, group := range media["group"] {
		for _, thumb := range group.Children["thumbnail"] {
			if url := thumb.Attrs["url"]; url != "" {
				return url
			}
		}
	}
	return ""
}

func mediaDescription(exts ext.Extensions) string {
	for _, group := range exts["media"]["group"] {
		for _, desc := range group.Children["description"] {
			if v := strings.TrimSpace(desc.Value); v != "" {
				return v
			}
		}
	}
	return ""
}
