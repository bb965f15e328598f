// Package workers runs the client's background jobs: periodic sync, retention
// purge of completed queue entries and the pending-count feed.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is cancelled or the job
// fails; cancellation is not an error.
type Worker interface {
	Run(ctx context.Context) error
}
