package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/lysyi3m/fitbhaskar/app/cfg"
	"github.com/lysyi3m/fitbhaskar/app/content"
	"github.com/lysyi3m/fitbhaskar/app/feed"
	"github.com/lysyi3m/fitbhaskar/app/metrics"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

// Deps are the collaborators background tasks run against. Outbox and
// Submitter are nil when the outbox is disabled; ChannelFeedURL empty
// disables channel refreshes.
type Deps struct {
	Site       *content.Site
	HTTPClient *http.Client
	Parser     *feed.ChannelParser
	Filterer   *feed.Filterer
	Videos     *feed.VideoStore
	Outbox     OutboxStore
	Submitter  PostSubmitter
	Sessions   SessionSweeper
	Limiters   LimiterSweeper
	Metrics    *metrics.Registry
}

type Scheduler struct {
	deps        Deps
	channelURL  string
	userAgent   string
	interval    time.Duration
	workerCount int
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface
}

func NewScheduler(deps Deps) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		deps:        deps,
		channelURL:  cfg.ChannelFeedURL,
		userAgent:   cfg.UserAgent,
		interval:    time.Duration(cfg.SchedulerInterval) * time.Second,
		workerCount: cfg.WorkerCount,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, 100),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueueTasks()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueTasks()
			}
		}
	}()
}

// Stop cancels running tasks and waits for the workers. The queue is left
// open so that a pending retry can never send on a closed channel.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

// dueTasks lists the periodic work for one tick.
func (s *Scheduler) dueTasks() []TaskInterface {
	var due []TaskInterface

	if s.channelURL != "" && s.deps.Videos != nil {
		var rules []feed.FilterRule
		maxVideos := 0
		if s.deps.Site != nil {
			rules = s.deps.Site.Channel.Filters
			maxVideos = s.deps.Site.Channel.MaxVideos
		}
		due = append(due, NewRefreshChannelTask(s.channelURL, rules, maxVideos,
			s.deps.HTTPClient, s.deps.Parser, s.deps.Filterer, s.deps.Videos, s.userAgent))
	} else {
		slog.Debug("Channel feed not configured, skipping RefreshChannelTask")
	}

	if s.deps.Outbox != nil && s.deps.Submitter != nil {
		due = append(due, NewReplayOutboxTask(s.deps.Outbox, s.deps.Submitter))
	}

	if s.deps.Sessions != nil {
		due = append(due, NewSweepSessionsTask(s.deps.Sessions))
	}

	if s.deps.Limiters != nil {
		due = append(due, NewSweepLimitersTask(s.deps.Limiters))
	}

	return due
}

func (s *Scheduler) enqueueTasks() {
	for _, task := range s.dueTasks() {
		if err := s.EnqueueTask(task); err != nil {
			slog.Warn("Failed to enqueue task", "type", string(task.GetType()), "target", task.GetTarget(), "error", err)
		}
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)
	s.deps.Metrics.ObserveTask(string(task.GetType()), err)

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

		if task.CanRetry() {
			task.IncrementRetryCount()
			delay := retryDelay(task.GetRetryCount())

			slog.Warn("Task retry scheduled", "type", string(task.GetType()), "target", task.GetTarget(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", delay.String())

			go func() {
				select {
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
					return
				case <-time.After(delay):
					if retryErr := s.EnqueueTask(task); retryErr != nil {
						slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
					}
				}
			}()
		} else {
			slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		}
	}
}
