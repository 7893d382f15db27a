package searchindex

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/idwrap"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/model/mdocument"
)

const DefaultQueueSize = 256

var ErrQueueFull = errors.New("searchindex: queue full")

type jobKind uint8

const (
	jobIndex jobKind = iota
	jobRemove
)

type job struct {
	kind jobKind
	doc  mdocument.Document
	id   idwrap.IDWrap
}

// Worker feeds an Indexer from bounded queues so callers never wait on
// indexing. Enqueue fails fast with ErrQueueFull instead of blocking.
//
// Each document ID maps to one shard, and each shard is drained by a single
// goroutine, so jobs for one document run in the order they were enqueued.
type Worker struct {
	target Indexer
	shards []chan job
	logger *slog.Logger
}

var _ Indexer = (*Worker)(nil)

// NewWorker splits queueSize across workers shards, each holding at least
// one job.
func NewWorker(target Indexer, queueSize, workers int, logger *slog.Logger) *Worker {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	perShard := max(1, queueSize/workers)
	shards := make([]chan job, workers)
	for i := range shards {
		shards[i] = make(chan job, perShard)
	}
	return &Worker{
		target: target,
		shards: shards,
		logger: logger,
	}
}

func (w *Worker) Index(_ context.Context, doc mdocument.Document) error {
	return w.enqueue(job{kind: jobIndex, doc: doc, id: doc.ID})
}

func (w *Worker) Remove(_ context.Context, id idwrap.IDWrap) error {
	return w.enqueue(job{kind: jobRemove, id: id})
}

func (w *Worker) shardFor(id idwrap.IDWrap) chan job {
	return w.shards[xxhash.Sum64(id.Bytes())%uint64(len(w.shards))]
}

func (w *Worker) enqueue(j job) error {
	select {
	case w.shardFor(j.id) <- j:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run drains every shard until ctx is cancelled. Failed jobs are logged and
// dropped.
func (w *Worker) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, shard := range w.shards {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case j := <-shard:
					w.process(ctx, j)
				}
			}
		})
	}
	return g.Wait()
}

func (w *Worker) process(ctx context.Context, j job) {
	var err error
	switch j.kind {
	case jobIndex:
		err = w.target.Index(ctx, j.doc)
	case jobRemove:
		err = w.target.Remove(ctx, j.id)
	}
	if err != nil {
		w.logger.Warn("search index job failed",
			"document_id", j.id.String(),
			"error", err)
	}
}
