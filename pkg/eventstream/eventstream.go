package eventstream

import "context"

// Event carries a payload together with the topic it was published on.
type Event[Topic any, Payload any] struct {
	Topic   Topic
	Payload Payload
}

// TopicFilter decides whether a subscriber receives events for a topic.
type TopicFilter[Topic any] func(Topic) bool

// SyncStreamer fans events out to live subscribers.
//
//	streamer := memory.NewInMemorySyncStreamer[DocumentTopic, DocumentEvent]()
//	events, _ := streamer.Subscribe(ctx, nil)
//	streamer.Publish(topic, evt)
//	defer streamer.Shutdown()
type SyncStreamer[Topic any, Payload any] interface {
	// Publish sends payloads to every subscriber whose filter accepts the
	// topic. It never blocks; a subscriber with a full buffer is
	// disconnected and its channel closed.
	Publish(topic Topic, payloads ...Payload)

	// Subscribe returns a channel that is closed when ctx is cancelled or
	// the streamer shuts down. A nil filter accepts every topic.
	Subscribe(ctx context.Context, filter TopicFilter[Topic]) (<-chan Event[Topic, Payload], error)

	Shutdown()
}
