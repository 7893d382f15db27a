// Package searchindex keeps a best-effort full-text view of documents.
// It is fed after commits and may lag behind or miss updates; the documents
// table stays the source of truth.
package searchindex

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/idwrap"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/model/mdocument"
)

const (
	DefaultLimit = 20
	snippetRunes = 120
)

// Indexer receives document state after it is committed.
type Indexer interface {
	Index(ctx context.Context, doc mdocument.Document) error
	Remove(ctx context.Context, id idwrap.IDWrap) error
}

type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Hit, error)
}

type Hit struct {
	DocumentID   idwrap.IDWrap
	Title        string
	Snippet      string
	Distance     int
	MatchedTitle bool
	UpdatedAt    time.Time
}

type entry struct {
	title     string
	text      string
	normTitle string
	normText  string
	updatedAt time.Time
}

// MemoryIndex is an in-process index. Removed IDs are remembered so a
// late Index for a deleted document is dropped; document IDs are never
// reused.
type MemoryIndex struct {
	mu      sync.RWMutex
	entries map[idwrap.IDWrap]entry
	removed map[idwrap.IDWrap]struct{}
}

var (
	_ Indexer  = (*MemoryIndex)(nil)
	_ Searcher = (*MemoryIndex)(nil)
)

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		entries: make(map[idwrap.IDWrap]entry),
		removed: make(map[idwrap.IDWrap]struct{}),
	}
}

func (m *MemoryIndex) Index(ctx context.Context, doc mdocument.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	text := PlainText(doc.Content)
	e := entry{
		title:     doc.Title,
		text:      text,
		normTitle: Normalize(doc.Title),
		normText:  Normalize(text),
		updatedAt: doc.UpdatedAt,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, gone := m.removed[doc.ID]; gone {
		return nil
	}
	// Writes arrive in commit order. The timestamp check only guards
	// against a startup warm-up snapshot landing after a live update.
	if cur, ok := m.entries[doc.ID]; ok && cur.updatedAt.After(doc.UpdatedAt) {
		return nil
	}
	m.entries[doc.ID] = e
	return nil
}

func (m *MemoryIndex) Remove(ctx context.Context, id idwrap.IDWrap) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.entries, id)
	m.removed[id] = struct{}{}
	m.mu.Unlock()
	return nil
}

func (m *MemoryIndex) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Search ranks documents whose title or text contains the query's
// characters in order. Title matches rank first, then lower edit distance.
func (m *MemoryIndex) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := Normalize(strings.TrimSpace(query))
	if q == "" {
		return []Hit{}, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	m.mu.RLock()
	hits := make([]Hit, 0)
	for id, e := range m.entries {
		hit := Hit{DocumentID: id, Title: e.title, UpdatedAt: e.updatedAt}
		switch {
		case fuzzy.Match(q, e.normTitle):
			hit.MatchedTitle = true
			hit.Distance = fuzzy.LevenshteinDistance(q, e.normTitle)
			hit.Snippet = snippet(e.text, e.normText, q)
		case strings.Contains(e.normText, q):
			hit.Distance = len(e.normText) - len(q)
			hit.Snippet = snippet(e.text, e.normText, q)
		default:
			continue
		}
		hits = append(hits, hit)
	}
	m.mu.RUnlock()

	sort.Slice(hits, func(i, j int) bool {
		a, b := hits[i], hits[j]
		if a.MatchedTitle != b.MatchedTitle {
			return a.MatchedTitle
		}
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		return a.DocumentID.Compare(b.DocumentID) < 0
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// snippet returns text around the first occurrence of q in the normalized
// text, or the start of the text when it does not occur.
func snippet(text, normText, q string) string {
	source := []rune(text)
	start := 0
	if i := strings.Index(normText, q); i >= 0 {
		// Normalization can change rune counts, so positions are only
		// approximate when the text has decomposable characters.
		start = max(0, len([]rune(normText[:i]))-snippetRunes/4)
	}
	start = min(start, len(source))
	end := min(len(source), start+snippetRunes)
	return string(source[start:end])
}
