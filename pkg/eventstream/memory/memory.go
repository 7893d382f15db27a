//nolint:revive // exported
package memory

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/eventstream"
)

// Large enough that a burst of patches from one editor session does not
// overflow a slow stream consumer.
const defaultSubscriberBuffer = 1024

var ErrStreamerClosed = errors.New("eventstream: streamer closed")

type subscriber[Topic any, Payload any] struct {
	filter eventstream.TopicFilter[Topic]
	ch     chan eventstream.Event[Topic, Payload]
	// stop detaches the context watcher.
	stop func() bool
}

func (sub *subscriber[Topic, Payload]) offer(evt eventstream.Event[Topic, Payload]) bool {
	select {
	case sub.ch <- evt:
		return true
	default:
		return false
	}
}

// streamer fans out under a read lock and closes subscriber channels only
// under the write lock, so a send never races a close.
type streamer[Topic any, Payload any] struct {
	mu     sync.RWMutex
	subs   []*subscriber[Topic, Payload]
	closed bool
	buffer int
}

// NewInMemorySyncStreamer creates a process-local streamer.
func NewInMemorySyncStreamer[Topic any, Payload any]() eventstream.SyncStreamer[Topic, Payload] {
	return NewInMemorySyncStreamerWithBuffer[Topic, Payload](defaultSubscriberBuffer)
}

func NewInMemorySyncStreamerWithBuffer[Topic any, Payload any](buffer int) eventstream.SyncStreamer[Topic, Payload] {
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}
	return &streamer[Topic, Payload]{buffer: buffer}
}

// Publish delivers payloads in order. A subscriber whose buffer fills up
// has missed an event, so it is disconnected instead of being left with a
// gap; a sync client that sees its channel close resubscribes and starts
// from a fresh snapshot.
func (s *streamer[Topic, Payload]) Publish(topic Topic, payloads ...Payload) {
	if len(payloads) == 0 {
		return
	}

	var lagging []*subscriber[Topic, Payload]
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return
	}
	for _, sub := range s.subs {
		if !sub.filter(topic) {
			continue
		}
		for _, payload := range payloads {
			if !sub.offer(eventstream.Event[Topic, Payload]{Topic: topic, Payload: payload}) {
				lagging = append(lagging, sub)
				break
			}
		}
	}
	s.mu.RUnlock()

	for _, sub := range lagging {
		s.drop(sub)
	}
}

func (s *streamer[Topic, Payload]) Subscribe(
	ctx context.Context,
	filter eventstream.TopicFilter[Topic],
) (<-chan eventstream.Event[Topic, Payload], error) {
	if filter == nil {
		filter = func(Topic) bool { return true }
	}
	sub := &subscriber[Topic, Payload]{
		filter: filter,
		ch:     make(chan eventstream.Event[Topic, Payload], s.buffer),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrStreamerClosed
	}
	s.subs = append(s.subs, sub)
	sub.stop = context.AfterFunc(ctx, func() { s.drop(sub) })
	return sub.ch, nil
}

func (s *streamer[Topic, Payload]) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for _, sub := range s.subs {
		sub.stop()
		close(sub.ch)
	}
	s.subs = nil
}

// drop removes sub and closes its channel. Later calls for the same
// subscriber do nothing.
func (s *streamer[Topic, Payload]) drop(sub *subscriber[Topic, Payload]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.Index(s.subs, sub)
	if i < 0 {
		return
	}
	s.subs = slices.Delete(s.subs, i, i+1)
	sub.stop()
	close(sub.ch)
}

func (s *streamer[Topic, Payload]) subscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}
