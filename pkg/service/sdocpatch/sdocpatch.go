// Package sdocpatch runs document writes end to end: it reads the current
// fields inside a transaction, runs the patch engine, records a version
// snapshot, stores the result and, after commit, publishes events and feeds
// the search index.
package sdocpatch

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/docpatch"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/idwrap"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/model/mdocument"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/mutation"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/patch"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/searchindex"
)

type Service struct {
	db        *sql.DB
	publisher mutation.Publisher
	indexer   searchindex.Indexer
	logger    *slog.Logger

	// handoff keeps index calls in commit order.
	handoff sync.Mutex
}

// New wires the orchestrator. publisher and indexer may be nil.
func New(db *sql.DB, publisher mutation.Publisher, indexer searchindex.Indexer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		db:        db,
		publisher: publisher,
		indexer:   indexer,
		logger:    logger,
	}
}

type PatchRequest struct {
	DocumentID        idwrap.IDWrap
	Changes           []docpatch.Change
	ChangeDescription string
	EditorVersion     string
	Timestamp         *time.Time
	Actor             *idwrap.IDWrap
}

type PatchResult struct {
	Document             mdocument.Document
	AppliedChangeCount   int
	ChangeCounts         map[docpatch.Field]int
	OptimizedChanges     []docpatch.Change
	OptimizedChangeCount int
	VersionNumber        int64
}

type UpdateRequest struct {
	DocumentID        idwrap.IDWrap
	Patch             patch.DocumentPatch
	ChangeDescription string
	Actor             *idwrap.IDWrap
}

type RestoreRequest struct {
	DocumentID    idwrap.IDWrap
	VersionNumber int64
	Actor         *idwrap.IDWrap
}

// WriteResult is returned by the full-value writes.
type WriteResult struct {
	Document      mdocument.Document
	VersionNumber int64
}

func (s *Service) newMutation() *mutation.Context {
	opts := []mutation.Option{mutation.WithLogger(s.logger)}
	if s.publisher != nil {
		opts = append(opts, mutation.WithPublisher(s.publisher))
	}
	return mutation.New(s.db, opts...)
}

// PatchDocument applies a batch of position-based changes. Validation
// failures return *ValidationError and leave no trace; a missing document
// returns sdocument.ErrDocumentNotFound.
func (s *Service) PatchDocument(ctx context.Context, req PatchRequest) (*PatchResult, error) {
	mut := s.newMutation()
	if err := mut.Begin(ctx); err != nil {
		return nil, fmt.Errorf("begin patch: %w", err)
	}
	defer mut.Rollback()

	doc, err := mut.GetDocument(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}
	before := doc.Fields()

	result, outcomes := docpatch.Patch(map[docpatch.Field]string{
		docpatch.FieldTitle:   before.Title,
		docpatch.FieldContent: before.Content,
	}, req.Changes)
	if errs := docpatch.Errors(outcomes); len(errs) > 0 {
		s.logger.Debug("Rejected patch",
			"document_id", req.DocumentID.String(),
			"error_count", len(errs))
		return nil, &ValidationError{Errors: errs}
	}

	version, err := mut.SnapshotDocument(ctx, mutation.DocumentSnapshotItem{
		DocumentID:  req.DocumentID,
		Fields:      before,
		Description: describePatch(req, result.AppliedChangeCount),
		CreatedBy:   req.Actor,
	})
	if err != nil {
		return nil, err
	}

	doc.SetFields(mdocument.Fields{
		Title:   result.Fields[docpatch.FieldTitle],
		Content: result.Fields[docpatch.FieldContent],
	})
	if err := mut.UpdateDocument(ctx, mutation.DocumentUpdateItem{
		Document: doc,
		Patch:    result.OptimizedChanges,
	}); err != nil {
		return nil, err
	}

	if err := s.commitAndIndex(ctx, mut, doc); err != nil {
		return nil, fmt.Errorf("commit patch: %w", err)
	}

	s.logger.Info("Patched document",
		"document_id", req.DocumentID.String(),
		"version_number", version.VersionNumber,
		"applied_change_count", result.AppliedChangeCount,
		"optimized_change_count", result.OptimizedChangeCount)

	optimized := result.OptimizedChanges
	if optimized == nil {
		optimized = []docpatch.Change{}
	}
	counts := result.ChangeCounts
	if counts == nil {
		counts = map[docpatch.Field]int{}
	}
	return &PatchResult{
		Document:             *doc,
		AppliedChangeCount:   result.AppliedChangeCount,
		ChangeCounts:         counts,
		OptimizedChanges:     optimized,
		OptimizedChangeCount: result.OptimizedChangeCount,
		VersionNumber:        version.VersionNumber,
	}, nil
}

// UpdateDocument replaces whole field values. Fields the patch does not set
// keep their value. A snapshot is taken even when nothing changes so every
// write is auditable.
func (s *Service) UpdateDocument(ctx context.Context, req UpdateRequest) (*WriteResult, error) {
	description := req.ChangeDescription
	if description == "" {
		description = "Updated document"
	}
	return s.overwrite(ctx, req.DocumentID, req.Actor, description, func(_ context.Context, _ *mutation.Context, current mdocument.Fields) (mdocument.Fields, any, error) {
		return req.Patch.Apply(current), req.Patch, nil
	})
}

// RestoreVersion snapshots the current state and then copies the fields of
// the requested version back onto the document.
func (s *Service) RestoreVersion(ctx context.Context, req RestoreRequest) (*WriteResult, error) {
	description := fmt.Sprintf("Restored version %d", req.VersionNumber)
	return s.overwrite(ctx, req.DocumentID, req.Actor, description, func(ctx context.Context, mut *mutation.Context, _ mdocument.Fields) (mdocument.Fields, any, error) {
		version, err := mut.GetVersion(ctx, req.DocumentID, req.VersionNumber)
		if err != nil {
			return mdocument.Fields{}, nil, err
		}
		return mdocument.Fields{Title: version.Title, Content: version.Content}, req.VersionNumber, nil
	})
}

type fieldsFunc func(ctx context.Context, mut *mutation.Context, current mdocument.Fields) (mdocument.Fields, any, error)

func (s *Service) overwrite(ctx context.Context, id idwrap.IDWrap, actor *idwrap.IDWrap, description string, next fieldsFunc) (*WriteResult, error) {
	mut := s.newMutation()
	if err := mut.Begin(ctx); err != nil {
		return nil, fmt.Errorf("begin update: %w", err)
	}
	defer mut.Rollback()

	doc, err := mut.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	before := doc.Fields()

	after, patchInfo, err := next(ctx, mut, before)
	if err != nil {
		return nil, err
	}

	version, err := mut.SnapshotDocument(ctx, mutation.DocumentSnapshotItem{
		DocumentID:  id,
		Fields:      before,
		Description: description,
		CreatedBy:   actor,
	})
	if err != nil {
		return nil, err
	}

	doc.SetFields(after)
	if err := mut.UpdateDocument(ctx, mutation.DocumentUpdateItem{Document: doc, Patch: patchInfo}); err != nil {
		return nil, err
	}
	if err := s.commitAndIndex(ctx, mut, doc); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}

	s.logger.Info("Updated document",
		"document_id", id.String(),
		"version_number", version.VersionNumber,
		"description", description)
	return &WriteResult{Document: *doc, VersionNumber: version.VersionNumber}, nil
}

// CreateDocument stores a new document. It has no versions until its first
// change.
func (s *Service) CreateDocument(ctx context.Context, fields mdocument.Fields, actor *idwrap.IDWrap) (*mdocument.Document, error) {
	mut := s.newMutation()
	if err := mut.Begin(ctx); err != nil {
		return nil, fmt.Errorf("begin create: %w", err)
	}
	defer mut.Rollback()

	doc := &mdocument.Document{Title: fields.Title, Content: fields.Content, CreatedBy: actor}
	if err := mut.InsertDocument(ctx, doc); err != nil {
		return nil, err
	}
	if err := s.commitAndIndex(ctx, mut, doc); err != nil {
		return nil, fmt.Errorf("commit create: %w", err)
	}

	s.logger.Info("Created document", "document_id", doc.ID.String())
	return doc, nil
}

// DeleteDocument removes a document together with its versions.
func (s *Service) DeleteDocument(ctx context.Context, id idwrap.IDWrap) error {
	mut := s.newMutation()
	if err := mut.Begin(ctx); err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer mut.Rollback()

	if err := mut.DeleteDocument(ctx, id); err != nil {
		return err
	}
	s.handoff.Lock()
	defer s.handoff.Unlock()
	if err := mut.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}

	s.logger.Info("Deleted document", "document_id", id.String())
	if s.indexer != nil {
		if err := s.indexer.Remove(ctx, id); err != nil {
			s.logger.Warn("Failed to remove document from search index",
				"document_id", id.String(),
				"error", err)
		}
	}
	return nil
}

// commitAndIndex commits mut and hands the committed document to the
// indexer before another write can commit. Index failures are logged and
// never reach the caller.
func (s *Service) commitAndIndex(ctx context.Context, mut *mutation.Context, doc *mdocument.Document) error {
	s.handoff.Lock()
	defer s.handoff.Unlock()
	if err := mut.Commit(ctx); err != nil {
		return err
	}
	if s.indexer == nil {
		return nil
	}
	if err := s.indexer.Index(ctx, *doc); err != nil {
		s.logger.Warn("Failed to index document",
			"document_id", doc.ID.String(),
			"error", err)
	}
	return nil
}

func describePatch(req PatchRequest, applied int) string {
	if req.ChangeDescription != "" {
		return req.ChangeDescription
	}
	description := fmt.Sprintf("Applied %d change(s)", applied)
	if req.EditorVersion != "" {
		description += " from editor " + req.EditorVersion
	}
	if req.Timestamp != nil {
		description += " at " + req.Timestamp.UTC().Format(time.RFC3339)
	}
	return description
}
