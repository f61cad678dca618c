package blog

import (
	"cmp"
	"context"
	"log/slog"
	"strings"

	"github.com/lysyi3m/fitbhaskar/app/gateway"
	"github.com/lysyi3m/fitbhaskar/app/metrics"
)

const (
	defaultAcceptedMessage = "Your blog has been submitted for review. It will appear once approved."
	maskedFailureMessage   = "Your blog has been recorded and will be reviewed shortly."
	honestFailureMessage   = "We could not save your blog right now. Please try again in a moment."
	invalidMessage         = "Please fill in your name, email, title and story."
)

type SubmissionForm struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Subject string `form:"subject"`
	Content string `form:"content"`
}

func (f *SubmissionForm) Trim() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Subject = strings.TrimSpace(f.Subject)
	f.Content = strings.TrimSpace(f.Content)
}

func (f *SubmissionForm) Validate() error {
	if f.Name == "" || f.Email == "" || f.Subject == "" || f.Content == "" {
		return ErrValidation
	}
	return nil
}

func (f *SubmissionForm) Clear() {
	*f = SubmissionForm{}
}

func (f *SubmissionForm) submission() gateway.Submission {
	return gateway.Submission{
		Name:    f.Name,
		Email:   f.Email,
		Subject: f.Subject,
		Content: f.Content,
	}
}

type Outcome string

const (
	OutcomeAccepted Outcome = "accepted"
	OutcomeFailed   Outcome = "failed"
	OutcomeInvalid  Outcome = "invalid"
)

// SubmitResult always carries the real outcome. Masked is set when the
// visitor is shown a "received" notice for a failed submission.
type SubmitResult struct {
	Outcome Outcome
	Title   string
	Message string
	Masked  bool
	Queued  bool
	Err     error
}

func (r SubmitResult) Accepted() bool {
	return r.Outcome == OutcomeAccepted
}

type Submitter struct {
	gateway      Gateway
	outbox       Outbox
	maskFailures bool
	metrics      *metrics.Registry
}

func NewSubmitter(gw Gateway, outbox Outbox, maskFailures bool, registry *metrics.Registry) *Submitter {
	return &Submitter{
		gateway:      gw,
		outbox:       outbox,
		maskFailures: maskFailures,
		metrics:      registry,
	}
}

// Submit trims and sends the form. The form is cleared when the submission
// was accepted, and also when a failure is masked.
func (s *Submitter) Submit(ctx context.Context, form *SubmissionForm) SubmitResult {
	form.Trim()
	if err := form.Validate(); err != nil {
		s.metrics.ObserveSubmission(string(OutcomeInvalid))
		return SubmitResult{
			Outcome: OutcomeInvalid,
			Title:   "Missing details",
			Message: invalidMessage,
			Err:     err,
		}
	}

	submission := form.submission()
	resp, err := s.gateway.SubmitPost(ctx, submission)
	if err == nil {
		s.metrics.ObserveSubmission(string(OutcomeAccepted))
		slog.Info("Blog submission accepted", "subject", submission.Subject)
		form.Clear()
		return SubmitResult{
			Outcome: OutcomeAccepted,
			Title:   "Blog Submitted!",
			Message: cmp.Or(resp.Message, defaultAcceptedMessage),
		}
	}

	s.metrics.ObserveSubmission(string(OutcomeFailed))
	slog.Error("Blog submission failed", "subject", submission.Subject, "error", err)

	result := SubmitResult{Outcome: OutcomeFailed, Err: err}

	// A rejection would be rejected again on replay.
	if s.outbox != nil && gateway.IsNetworkError(err) {
		if qErr := s.outbox.Enqueue(ctx, submission, err.Error()); qErr != nil {
			slog.Error("Failed to queue submission for replay", "subject", submission.Subject, "error", qErr)
		} else {
			result.Queued = true
		}
	}

	if s.maskFailures {
		form.Clear()
		result.Masked = true
		result.Title = "Submission Received"
		result.Message = maskedFailureMessage
		return result
	}

	result.Title = "Submission failed"
	result.Message = cmp.Or(gateway.RejectionMessage(err), honestFailureMessage)
	return result
}
