package blog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/lysyi3m/fitbhaskar/app/gateway"
	"github.com/lysyi3m/fitbhaskar/app/metrics"
)

// Moderator drives the admin panel. A nil session is the LoggedOut state.
type Moderator struct {
	gateway  Gateway
	sessions *SessionStore
	feed     *FeedLoader
	metrics  *metrics.Registry
	group    singleflight.Group
}

func NewModerator(gw Gateway, sessions *SessionStore, feed *FeedLoader, registry *metrics.Registry) *Moderator {
	return &Moderator{
		gateway:  gw,
		sessions: sessions,
		feed:     feed,
		metrics:  registry,
	}
}

func (m *Moderator) Session(token string) *AdminSession {
	return m.sessions.Get(token)
}

// Login verifies the credentials by listing posts with them. Only a
// successful listing creates a session.
func (m *Moderator) Login(ctx context.Context, id, pass string) (*AdminSession, error) {
	creds := gateway.Credentials{ID: strings.TrimSpace(id), Pass: strings.TrimSpace(pass)}
	if creds.Empty() {
		return nil, ErrCredentialsRequired
	}

	resp, err := m.gateway.ListPosts(ctx, &creds)
	if err != nil {
		slog.Warn("Admin login failed", "admin_id", creds.ID, "error", err)
		return nil, err
	}

	s := m.sessions.Create(creds, NormalizeAll(resp.Posts))
	slog.Info("Admin logged in", "admin_id", creds.ID, "posts", len(resp.Posts))
	return s, nil
}

func (m *Moderator) Logout(s *AdminSession) {
	if s == nil {
		return
	}
	m.sessions.Delete(s.Token)
	slog.Info("Admin logged out", "admin_id", s.AdminID())
}

// Refresh re-reads the admin listing. On failure the previous listing is
// kept.
func (m *Moderator) Refresh(ctx context.Context, s *AdminSession) error {
	return m.refresh(ctx, s, false)
}

// refresh shares an in-flight listing for the session unless fresh is set.
// A fresh read never joins a request that started before the caller's write.
func (m *Moderator) refresh(ctx context.Context, s *AdminSession, fresh bool) error {
	if s == nil {
		return ErrNotLoggedIn
	}

	key := "admin:" + s.Token
	if fresh {
		m.group.Forget(key)
	}

	flightCtx := context.WithoutCancel(ctx)
	_, err, _ := m.group.Do(key, func() (interface{}, error) {
		gen := s.beginListing()
		creds := s.credentials()
		resp, err := m.gateway.ListPosts(flightCtx, &creds)
		if err != nil {
			return nil, err
		}
		s.setPosts(gen, NormalizeAll(resp.Posts))
		return nil, nil
	})
	if err != nil {
		slog.Warn("Admin refresh failed", "admin_id", s.AdminID(), "error", err)
		return err
	}

	return nil
}

// SetApproval writes the approval flag and then re-reads both listings with
// fresh requests. The refreshed public feed is returned. Local state is never
// changed ahead of the gateway.
func (m *Moderator) SetApproval(ctx context.Context, s *AdminSession, row int, approved string) (LoadResult, error) {
	if s == nil {
		return LoadResult{}, ErrNotLoggedIn
	}
	if approved != gateway.ApprovedYes && approved != gateway.ApprovedNo {
		return LoadResult{}, ErrInvalidApproval
	}

	_, err := m.gateway.SetApproval(ctx, s.credentials(), row, approved)
	m.metrics.ObserveApproval(approved, err)
	if err != nil {
		slog.Error("Approval update failed", "row", row, "approved", approved, "error", err)
		return LoadResult{}, fmt.Errorf("failed to update approval for row %d: %w", row, err)
	}

	slog.Info("Approval updated", "row", row, "approved", approved, "admin_id", s.AdminID())

	if err := m.refresh(ctx, s, true); err != nil {
		slog.Warn("Admin listing not refreshed after approval", "row", row, "error", err)
	}

	return m.feed.ReloadApprovedPosts(ctx), nil
}
