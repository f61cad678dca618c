package tasks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/lysyi3m/fitbhaskar/app/feed"
)

const channelFetchTimeout = 30 * time.Second

type RefreshChannelTask struct {
	Task
	URL        string
	Rules      []feed.FilterRule
	MaxVideos  int
	httpClient *http.Client
	parser     *feed.ChannelParser
	filterer   *feed.Filterer
	store      *feed.VideoStore
	userAgent  string
}

func NewRefreshChannelTask(url string, rules []feed.FilterRule, maxVideos int, httpClient *http.Client, parser *feed.ChannelParser, filterer *feed.Filterer, store *feed.VideoStore, userAgent string) *RefreshChannelTask {
	return &RefreshChannelTask{
		Task:       NewTask(TaskTypeRefreshChannel, url),
		URL:        url,
		Rules:      rules,
		MaxVideos:  maxVideos,
		httpClient: httpClient,
		parser:     parser,
		filterer:   filterer,
		store:      store,
		userAgent:  userAgent,
	}
}

func (t *RefreshChannelTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	data, err := t.fetchFeed(ctx, t.URL)
	if err != nil {
		return fmt.Errorf("failed to fetch channel feed: %w", err)
	}

	metadata, videos, err := t.parser.Run(data)
	if err != nil {
		return fmt.Errorf("failed to parse channel feed: %w", err)
	}

	kept := t.filterer.Run(videos, t.Rules)
	t.store.Replace(kept, t.MaxVideos)

	slog.Info("Task completed",
		"type", "RefreshChannel",
		"channel", metadata.Title,
		"duration", t.GetDuration(),
		"total", len(videos),
		"filtered", len(videos)-len(kept),
		"stored", len(t.store.Latest()))

	return nil
}

func (t *RefreshChannelTask) fetchFeed(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, channelFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
