package sdocument

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/dbtime"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/idwrap"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/model/mdocument"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/sqlc/gen"
)

// DocumentService reads and writes the documents table.
type DocumentService struct {
	queries *gen.Queries
	logger  *slog.Logger
}

var ErrDocumentNotFound = fmt.Errorf("document not found")

// New creates a new DocumentService
func New(queries *gen.Queries, logger *slog.Logger) *DocumentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentService{
		queries: queries,
		logger:  logger,
	}
}

// TX returns a new service instance with transaction support
func (s *DocumentService) TX(tx *sql.Tx) *DocumentService {
	if tx == nil {
		return s
	}
	return &DocumentService{
		queries: s.queries.WithTx(tx),
		logger:  s.logger,
	}
}

func (s *DocumentService) GetDocument(ctx context.Context, id idwrap.IDWrap) (*mdocument.Document, error) {
	s.logger.Debug("Getting document", "document_id", id.String())

	doc, err := s.queries.GetDocument(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Debug("Document not found", "document_id", id.String())
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return ConvertToModelDocument(doc), nil
}

// GetFields returns only the text fields the patch engine needs.
func (s *DocumentService) GetFields(ctx context.Context, id idwrap.IDWrap) (mdocument.Fields, error) {
	doc, err := s.GetDocument(ctx, id)
	if err != nil {
		return mdocument.Fields{}, err
	}
	return doc.Fields(), nil
}

func (s *DocumentService) ListDocuments(ctx context.Context) ([]mdocument.Document, error) {
	s.logger.Debug("Listing documents")

	docs, err := s.queries.ListDocuments(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []mdocument.Document{}, nil
		}
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	result := make([]mdocument.Document, len(docs))
	for i, doc := range docs {
		result[i] = *ConvertToModelDocument(doc)
	}
	return result, nil
}

// CreateDocument inserts doc. A zero ID or zero timestamps are filled in.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *mdocument.Document) error {
	if doc.ID.IsZero() {
		doc.ID = idwrap.NewNow()
	}
	now := dbtime.DBNow()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = now
	}

	s.logger.Debug("Creating document", "document_id", doc.ID.String())

	dbDoc := ConvertToDBDocument(*doc)
	err := s.queries.CreateDocument(ctx, gen.CreateDocumentParams{
		ID:        dbDoc.ID,
		Title:     dbDoc.Title,
		Content:   dbDoc.Content,
		CreatedBy: dbDoc.CreatedBy,
		CreatedAt: dbDoc.CreatedAt,
		UpdatedAt: dbDoc.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

// UpdateFields overwrites title and content and returns the new updated_at.
func (s *DocumentService) UpdateFields(ctx context.Context, id idwrap.IDWrap, fields mdocument.Fields) (time.Time, error) {
	s.logger.Debug("Updating document fields", "document_id", id.String())

	now := dbtime.DBNow()
	rows, err := s.queries.UpdateDocumentFields(ctx, gen.UpdateDocumentFieldsParams{
		Title:     fields.Title,
		Content:   fields.Content,
		UpdatedAt: now.Unix(),
		ID:        id,
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to update document: %w", err)
	}
	if rows == 0 {
		return time.Time{}, ErrDocumentNotFound
	}
	return now, nil
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id idwrap.IDWrap) error {
	s.logger.Debug("Deleting document", "document_id", id.String())

	rows, err := s.queries.DeleteDocument(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if rows == 0 {
		return ErrDocumentNotFound
	}
	return nil
}
