package utils

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/gramseva/portal/internal/storage"
)

type recordingStore struct {
	mu      sync.Mutex
	removed []string
	err     error
}

func (s *recordingStore) Save(context.Context, storage.Kind, *multipart.FileHeader) (string, error) {
	return "", errors.New("not implemented")
}

func (s *recordingStore) Remove(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.removed = append(s.removed, path)
	return nil
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestJanitorRemovesQueuedPaths(t *testing.T) {
	store := &recordingStore{}
	janitor := NewJanitor(store, newTestLogger(), 2)

	janitor.Discard("uploads/profiles/a.png")
	janitor.Discard("uploads/notices/b.jpg")
	janitor.Discard("") // no-op
	janitor.Close()

	assert.ElementsMatch(t, []string{"uploads/profiles/a.png", "uploads/notices/b.jpg"}, store.removed)
}

func TestJanitorSwallowsRemovalFailures(t *testing.T) {
	store := &recordingStore{err: errors.New("bucket unreachable")}
	janitor := NewJanitor(store, newTestLogger(), 1)

	// Must not panic or block; the failure is logged only.
	janitor.Discard("uploads/works/c.png")
	janitor.Close()

	assert.Empty(t, store.removed)
}
