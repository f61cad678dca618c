package blog

import (
	"context"

	"github.com/lysyi3m/fitbhaskar/app/gateway"
)

type Gateway interface {
	ListPosts(ctx context.Context, creds *gateway.Credentials) (*gateway.ListResponse, error)
	SubmitPost(ctx context.Context, s gateway.Submission) (*gateway.WriteResponse, error)
	SetApproval(ctx context.Context, creds gateway.Credentials, row int, approved string) (*gateway.WriteResponse, error)
}

var _ Gateway = (*gateway.Client)(nil)

// Outbox keeps submissions the gateway did not accept so they can be replayed.
type Outbox interface {
	Enqueue(ctx context.Context, s gateway.Submission, reason string) error
}
