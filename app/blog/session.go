package blog

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lysyi3m/fitbhaskar/app/gateway"
)

// AdminSession is the LoggedIn state of one moderator. Credentials live
// only here, in process memory.
type AdminSession struct {
	Token string

	mu       sync.Mutex
	creds    gateway.Credentials
	posts    []Post
	lastSeen time.Time

	// listings counts admin listing requests started; postsGen is the
	// request that produced posts.
	listings uint64
	postsGen uint64
}

func (s *AdminSession) AdminID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds.ID
}

// Posts returns a copy of the unfiltered admin listing.
func (s *AdminSession) Posts() []Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Post, len(s.posts))
	copy(out, s.posts)
	return out
}

func (s *AdminSession) credentials() gateway.Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds
}

// beginListing numbers a listing request before it is sent.
func (s *AdminSession) beginListing() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings++
	return s.listings
}

// setPosts stores the listing from request gen unless a later request has
// already been stored.
func (s *AdminSession) setPosts(gen uint64, posts []Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen < s.postsGen {
		return
	}
	s.postsGen = gen
	s.posts = posts
}

func (s *AdminSession) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *AdminSession) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*AdminSession
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore keeps sessions until they have been idle for ttl. A zero
// ttl disables expiry.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*AdminSession),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (st *SessionStore) Create(creds gateway.Credentials, posts []Post) *AdminSession {
	s := &AdminSession{
		Token:    uuid.NewString(),
		creds:    creds,
		posts:    posts,
		lastSeen: st.now(),
	}

	st.mu.Lock()
	st.sessions[s.Token] = s
	st.mu.Unlock()

	return s
}

// Get returns the live session for token, or nil when it is unknown or has
// expired.
func (st *SessionStore) Get(token string) *AdminSession {
	if token == "" {
		return nil
	}

	st.mu.RLock()
	s, ok := st.sessions[token]
	st.mu.RUnlock()
	if !ok {
		return nil
	}

	now := st.now()
	if st.expired(s, now) {
		st.Delete(token)
		return nil
	}

	s.touch(now)
	return s
}

func (st *SessionStore) Delete(token string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, token)
}

// Sweep drops every expired session and returns how many were removed.
func (st *SessionStore) Sweep() int {
	now := st.now()

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for token, s := range st.sessions {
		if st.expired(s, now) {
			delete(st.sessions, token)
			removed++
		}
	}
	return removed
}

func (st *SessionStore) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

func (st *SessionStore) expired(s *AdminSession, now time.Time) bool {
	return st.ttl > 0 && now.Sub(s.idleSince()) > st.ttl
}
