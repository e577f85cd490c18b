package errs

import "context"

// Operation is a unit of work whose failure policy is decided by the caller.
type Operation func(context.Context) error

// Surfaced executes op and propagates its error so the caller can present
// UserMessage to the user. User-initiated actions (login, posting, search)
// run under this policy.
func Surfaced(ctx context.Context, op Operation) error {
	if op == nil {
		return nil
	}
	return op(ctx)
}

// BestEffort executes op and swallows any failure, leaving prior state
// unchanged. Background work (poll ticks, badge counts, incremental page
// loads, follow toggles) runs under this policy. The return value reports
// whether op succeeded; callers that need to advance state on success only
// should branch on it rather than on an error.
func BestEffort(ctx context.Context, op Operation) bool {
	if op == nil {
		return true
	}
	return op(ctx) == nil
}
