package feed

import (
	"strings"
)

type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

// Run drops videos that any rule excludes, keeping the original order.
func (f *Filterer) Run(videos []Video, rules []FilterRule) []Video {
	if len(rules) == 0 {
		return videos
	}

	kept := make([]Video, 0, len(videos))
	for _, video := range videos {
		if !f.excluded(video, rules) {
			kept = append(kept, video)
		}
	}

	return kept
}

func (f *Filterer) excluded(video Video, rules []FilterRule) bool {
	for _, rule := range rules {
		value := f.getFieldValue(video, rule.Field)

		for _, exclude := range rule.Excludes {
			if f.matchesFilter(value, exclude) {
				return true
			}
		}

		if len(rule.Includes) > 0 {
			matched := false
			for _, include := range rule.Includes {
				if f.matchesFilter(value, include) {
					matched = true
					break
				}
			}
			if !matched {
				return true
			}
		}
	}

	return false
}

func (f *Filterer) matchesFilter(value, pattern string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(pattern))
}

func (f *Filterer) getFieldValue(video Video, field string) string {
	switch field {
	case "title":
		return video.Title
	case "description":
		return video.Description
	case "link":
		return video.Link
	default:
		return ""
	}
}
