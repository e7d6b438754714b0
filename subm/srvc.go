package subm

import (
	"context"
	"log/slog"
	"time"

	"github.com/shiplogix/backend/filestore"
	"github.com/shiplogix/backend/notify"
)

// Compressor shrinks a stored PDF in place and returns the new absolute
// path. A failure is recoverable: the pipeline keeps using the original.
type Compressor interface {
	Compress(ctx context.Context, path string) (string, error)
}

// SubmissionSrvc drives submissions from intake to a terminal processing
// status. Intake is synchronous up to the initial persist; compression,
// notification and the outcome write happen in a detached background unit.
type SubmissionSrvc struct {
	logger *slog.Logger

	repo       Repo
	files      *filestore.Store
	compressor Compressor
	notifier   notify.Notifier
	resolver   *notify.Resolver

	stuckAfter time.Duration
	pool       *workerPool
}

type Options struct {
	Repo       Repo
	Files      *filestore.Store
	Compressor Compressor
	Notifier   notify.Notifier
	Resolver   *notify.Resolver

	// StuckAfter is the stuck-detection window for one background unit.
	// Zero means the 120s default.
	StuckAfter time.Duration
	Workers    int
	QueueSize  int
	Logger     *slog.Logger
}

const defaultStuckAfter = 120 * time.Second

func NewSubmissionSrvc(opts Options) *SubmissionSrvc {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("module", "subm")

	stuckAfter := opts.StuckAfter
	if stuckAfter == 0 {
		stuckAfter = defaultStuckAfter
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}
	queueSize := opts.QueueSize
	if queueSize <= 0 {
		queueSize = 64
	}

	return &SubmissionSrvc{
		logger:     logger,
		repo:       opts.Repo,
		files:      opts.Files,
		compressor: opts.Compressor,
		notifier:   opts.Notifier,
		resolver:   opts.Resolver,
		stuckAfter: stuckAfter,
		pool:       newWorkerPool(workers, queueSize, logger),
	}
}

// Drain waits for all in-flight background units to finish, or for ctx to
// expire. Callers must stop accepting new submissions first.
func (s *SubmissionSrvc) Drain(ctx context.Context) error {
	return s.pool.Drain(ctx)
}
