package blog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lysyi3m/fitbhaskar/app/gateway"
	"github.com/lysyi3m/fitbhaskar/app/gateway/gatewaytest"
)

func newGateway(t *testing.T, fake *gatewaytest.Fake) *gateway.Client {
	t.Helper()
	client, err := gateway.NewClient(fake.URL(), nil, "FitBhaskar/test", 2*time.Second, nil)
	if err != nil {
		t.Fatalf("Failed to create gateway client: %v", err)
	}
	return client
}

func scenarioFake() *gatewaytest.Fake {
	return gatewaytest.New(
		gatewaytest.Row{Row: 1, Subject: "X", Name: "A", Content: "first", Approved: "yes"},
		gatewaytest.Row{Row: 2, Subject: "Y", Name: "B", Content: "second", Approved: "no"},
	)
}

type recordingOutbox struct {
	mu      sync.Mutex
	entries []gateway.Submission
	reasons []string
	err     error
}

func (o *recordingOutbox) Enqueue(ctx context.Context, s gateway.Submission, reason string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return o.err
	}
	o.entries = append(o.entries, s)
	o.reasons = append(o.reasons, reason)
	return nil
}

// blockingGateway holds ListPosts until release is closed.
type blockingGateway struct {
	release chan struct{}
	started chan struct{}
	once    sync.Once

	mu    sync.Mutex
	calls int
	resp  *gateway.ListResponse
	err   error
}

func newBlockingGateway(resp *gateway.ListResponse, err error) *blockingGateway {
	return &blockingGateway{
		release: make(chan struct{}),
		started: make(chan struct{}),
		resp:    resp,
		err:     err,
	}
}

func (g *blockingGateway) ListPosts(ctx context.Context, creds *gateway.Credentials) (*gateway.ListResponse, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
	g.once.Do(func() { close(g.started) })
	<-g.release
	return g.resp, g.err
}

func (g *blockingGateway) SubmitPost(ctx context.Context, s gateway.Submission) (*gateway.WriteResponse, error) {
	return nil, errors.New("not implemented")
}

func (g *blockingGateway) SetApproval(ctx context.Context, creds gateway.Credentials, row int, approved string) (*gateway.WriteResponse, error) {
	return nil, errors.New("not implemented")
}

func (g *blockingGateway) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// slowFirstReadGateway reads the first public (or admin) listing from the
// wrapped gateway right away but returns it only once release is closed.
// Every other call passes straight through.
type slowFirstReadGateway struct {
	Gateway
	admin   bool
	release chan struct{}
	started chan struct{}
	once    sync.Once
}

func newSlowFirstReadGateway(gw Gateway, admin bool) *slowFirstReadGateway {
	return &slowFirstReadGateway{
		Gateway: gw,
		admin:   admin,
		release: make(chan struct{}),
		started: make(chan struct{}),
	}
}

func (g *slowFirstReadGateway) ListPosts(ctx context.Context, creds *gateway.Credentials) (*gateway.ListResponse, error) {
	first := false
	if (creds != nil) == g.admin {
		g.once.Do(func() { first = true })
	}

	resp, err := g.Gateway.ListPosts(ctx, creds)
	if first {
		close(g.started)
		<-g.release
	}
	return resp, err
}
