package mutation

// Publisher handles automatic event publishing after commit.
type Publisher interface {
	// PublishAll is called by Context.Commit once the transaction is durable.
	PublishAll(events []Event)
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(events []Event)

func (f PublisherFunc) PublishAll(events []Event) {
	f(events)
}
