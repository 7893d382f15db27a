package sdocumentversion

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/contenthash"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/dbtime"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/idwrap"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/model/mdocument"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/sqlc/gen"
)

// VersionService stores pre-change snapshots of documents.
type VersionService struct {
	queries *gen.Queries
	logger  *slog.Logger
	hasher  *contenthash.Hasher
}

var ErrVersionNotFound = fmt.Errorf("document version not found")

func New(queries *gen.Queries, logger *slog.Logger) *VersionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &VersionService{
		queries: queries,
		logger:  logger,
		hasher:  contenthash.New(),
	}
}

// TX returns a new service instance with transaction support
func (s *VersionService) TX(tx *sql.Tx) *VersionService {
	if tx == nil {
		return s
	}
	return &VersionService{
		queries: s.queries.WithTx(tx),
		logger:  s.logger,
		hasher:  s.hasher,
	}
}

// CreateSnapshot records fields as the next version of the document. The
// number is one above the current maximum, starting at 1. Callers must run
// it in the same transaction as the update it precedes so numbering cannot
// race.
func (s *VersionService) CreateSnapshot(ctx context.Context, documentID idwrap.IDWrap, fields mdocument.Fields, description string, createdBy *idwrap.IDWrap) (*mdocument.Version, error) {
	maxVersion, err := s.queries.GetMaxDocumentVersionNumber(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest version number: %w", err)
	}

	version := &mdocument.Version{
		ID:                idwrap.NewNow(),
		DocumentID:        documentID,
		VersionNumber:     maxVersion + 1,
		Title:             fields.Title,
		Content:           fields.Content,
		ChangeDescription: description,
		ContentHash:       s.hasher.HashFields(fields.Title, fields.Content),
		CreatedBy:         createdBy,
		CreatedAt:         dbtime.DBNow(),
	}

	err = s.queries.CreateDocumentVersion(ctx, gen.CreateDocumentVersionParams{
		ID:                version.ID,
		DocumentID:        version.DocumentID,
		VersionNumber:     version.VersionNumber,
		Title:             version.Title,
		Content:           version.Content,
		ChangeDescription: version.ChangeDescription,
		ContentHash:       version.ContentHash,
		CreatedBy:         version.CreatedBy,
		CreatedAt:         version.CreatedAt.Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create version snapshot: %w", err)
	}

	s.logger.Debug("Created version snapshot",
		"document_id", documentID.String(),
		"version_number", version.VersionNumber)

	return version, nil
}

// ListVersions returns the document's versions, newest first.
func (s *VersionService) ListVersions(ctx context.Context, documentID idwrap.IDWrap) ([]mdocument.Version, error) {
	rows, err := s.queries.GetDocumentVersionsByDocumentID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}

	result := make([]mdocument.Version, len(rows))
	for i, row := range rows {
		result[i] = *ConvertToModelVersion(row)
	}
	return result, nil
}

func (s *VersionService) GetVersion(ctx context.Context, documentID idwrap.IDWrap, versionNumber int64) (*mdocument.Version, error) {
	row, err := s.queries.GetDocumentVersion(ctx, gen.GetDocumentVersionParams{
		DocumentID:    documentID,
		VersionNumber: versionNumber,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVersionNotFound
		}
		return nil, fmt.Errorf("failed to get version: %w", err)
	}
	return ConvertToModelVersion(row), nil
}

func ConvertToModelVersion(v gen.DocumentVersion) *mdocument.Version {
	return &mdocument.Version{
		ID:                v.ID,
		DocumentID:        v.DocumentID,
		VersionNumber:     v.VersionNumber,
		Title:             v.Title,
		Content:           v.Content,
		ChangeDescription: v.ChangeDescription,
		ContentHash:       v.ContentHash,
		CreatedBy:         v.CreatedBy,
		CreatedAt:         dbtime.FromUnix(v.CreatedAt),
	}
}
