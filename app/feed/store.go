package feed

import (
	"sync"
	"time"
)

// VideoStore holds the latest videos for the Home page.
type VideoStore struct {
	mu        sync.RWMutex
	videos    []Video
	updatedAt time.Time
}

func NewVideoStore() *VideoStore {
	return &VideoStore{}
}

// Replace swaps in a new list, keeping at most limit videos when limit > 0.
func (s *VideoStore) Replace(videos []Video, limit int) {
	if limit > 0 && len(videos) > limit {
		videos = videos[:limit]
	}

	copied := make([]Video, len(videos))
	copy(copied, videos)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.videos = copied
	s.updatedAt = time.Now()
}

func (s *VideoStore) Latest() []Video {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Video, len(s.videos))
	copy(out, s.videos)
	return out
}

func (s *VideoStore) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}
