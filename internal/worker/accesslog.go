// Package worker runs the background access-log appends triggered by
// resolution requests.
package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/linkward/linkward/internal/storage"
)

const (
	defaultBuffer = 256
	appendTimeout = 3 * time.Second
)

// Store is the slice of the record store the worker needs.
type Store interface {
	UpdateLink(ctx context.Context, id string, patch storage.LinkPatch) (float64, error)
}

type appendTask struct {
	linkID string
	logKey string
	lines  []string
}

// AccessLogWorker drains a queue of audit-log appends so that resolution
// never waits on its own side effect. Entries are dropped, with a
// diagnostic log line, when the queue is full or the write fails.
type AccessLogWorker struct {
	in     chan appendTask
	store  Store
	logger *zap.Logger
}

func NewAccessLogWorker(logger *zap.Logger, store Store, buffer int) *AccessLogWorker {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &AccessLogWorker{
		in:     make(chan appendTask, buffer),
		store:  store,
		logger: logger,
	}
}

// Enqueue hands one append to the worker without blocking. It reports false
// when the queue is full and the entry was dropped.
func (w *AccessLogWorker) Enqueue(linkID, logKey string, lines []string) bool {
	select {
	case w.in <- appendTask{linkID: linkID, logKey: logKey, lines: lines}:
		return true
	default:
		return false
	}
}

// Run processes appends until ctx is canceled. Meant to be started as a
// goroutine next to the resolver.
func (w *AccessLogWorker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case task := <-w.in:
			w.append(task)
		}
	}
}

func (w *AccessLogWorker) append(task appendTask) {
	ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
	defer cancel()

	patch := storage.LinkPatch{LogKey: task.logKey, LogLines: task.lines}
	if _, err := w.store.UpdateLink(ctx, task.linkID, patch); err != nil {
		w.logger.Warn("unable to append access log",
			zap.String("id", task.linkID),
			zap.Error(err))
	}
}
