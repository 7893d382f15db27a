package sdocument

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/idwrap"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/model/mdocument"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/sqlc/gen"
)

// Reader serves read-only queries from the read pool.
type Reader struct {
	queries *gen.Queries
	logger  *slog.Logger
}

func NewReader(db *sql.DB, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{
		queries: gen.New(db),
		logger:  logger,
	}
}

func (r *Reader) GetDocument(ctx context.Context, id idwrap.IDWrap) (*mdocument.Document, error) {
	r.logger.Debug("Getting document", "document_id", id.String())

	doc, err := r.queries.GetDocument(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return ConvertToModelDocument(doc), nil
}

func (r *Reader) ListDocuments(ctx context.Context) ([]mdocument.Document, error) {
	docs, err := r.queries.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	result := make([]mdocument.Document, len(docs))
	for i, doc := range docs {
		result[i] = *ConvertToModelDocument(doc)
	}
	return result, nil
}
