// Package docsync turns committed mutation events into the live document
// feed served by DocumentSync.
package docsync

import (
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/eventstream"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/idwrap"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/model/mdocument"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/mutation"
)

const (
	EventInsert  = "insert"
	EventUpdate  = "update"
	EventDelete  = "delete"
	EventVersion = "version"
)

type Topic struct {
	DocumentID idwrap.IDWrap `json:"documentId"`
}

type Event struct {
	Type          string              `json:"type"`
	DocumentID    idwrap.IDWrap       `json:"documentId"`
	Document      *mdocument.Document `json:"document,omitempty"`
	VersionNumber int64               `json:"versionNumber,omitempty"`
}

type Streamer = eventstream.SyncStreamer[Topic, Event]

// ForDocument returns a filter matching a single document.
func ForDocument(id idwrap.IDWrap) eventstream.TopicFilter[Topic] {
	return func(t Topic) bool { return t.DocumentID == id }
}

type Publisher struct {
	streamer Streamer
}

var _ mutation.Publisher = (*Publisher)(nil)

func NewPublisher(streamer Streamer) *Publisher {
	return &Publisher{streamer: streamer}
}

func (p *Publisher) PublishAll(events []mutation.Event) {
	for _, evt := range events {
		out, ok := convert(evt)
		if !ok {
			continue
		}
		p.streamer.Publish(Topic{DocumentID: out.DocumentID}, out)
	}
}

func convert(evt mutation.Event) (Event, bool) {
	switch evt.Entity {
	case mutation.EntityDocument:
		out := Event{Type: evt.Op.String(), DocumentID: evt.ID}
		if doc, ok := evt.Payload.(mdocument.Document); ok {
			out.Document = &doc
		}
		return out, true
	case mutation.EntityDocumentVersion:
		out := Event{Type: EventVersion, DocumentID: evt.ParentID}
		if v, ok := evt.Payload.(mdocument.Version); ok {
			out.VersionNumber = v.VersionNumber
		}
		return out, true
	default:
		return Event{}, false
	}
}
