package utils

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gramseva/portal/internal/storage"
)

// Janitor deletes orphaned attachments off the request path. Compensating
// cleanup is best-effort: a failed removal must never change the response the
// caller already got, but it must not vanish silently either, so failures are
// logged for operational follow-up.
type Janitor struct {
	store storage.Store
	log   *logrus.Logger
	tasks chan string
	wg    sync.WaitGroup
}

// NewJanitor starts the given number of workers draining the cleanup queue.
func NewJanitor(store storage.Store, log *logrus.Logger, workers int) *Janitor {
	j := &Janitor{
		store: store,
		log:   log,
		tasks: make(chan string, workers*4),
	}
	j.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go j.worker()
	}
	return j
}

func (j *Janitor) worker() {
	defer j.wg.Done()
	for path := range j.tasks {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := j.store.Remove(ctx, path)
		cancel()
		if err != nil {
			j.log.WithField("path", path).WithError(err).Error("attachment cleanup failed")
			continue
		}
		j.log.WithField("path", path).Debug("attachment cleaned up")
	}
}

// Discard queues an attachment for deletion. Blocks only if the queue is
// full, which keeps request handlers effectively fire-and-forget.
func (j *Janitor) Discard(path string) {
	if path == "" {
		return
	}
	j.tasks <- path
}

// Close stops accepting work and waits for queued deletions to finish.
func (j *Janitor) Close() {
	close(j.tasks)
	j.wg.Wait()
}
