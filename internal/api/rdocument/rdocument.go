//nolint:revive // exported
package rdocument

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/the-dev-tools/dev-tools/packages/docserver/internal/api"
	"github.com/the-dev-tools/dev-tools/packages/docserver/internal/api/middleware/mwauth"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/docsync"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/eventstream"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/idwrap"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/model/mdocument"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/patch"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/searchindex"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/service/sdocpatch"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/service/sdocument"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/service/sdocumentversion"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/sqlc/gen"
	documentv1 "github.com/the-dev-tools/dev-tools/packages/docserver/pkg/spec/api/document/v1"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/spec/api/document/v1/documentv1connect"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/translate/tdocument"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/translate/tgeneric"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/versiondiff"
)

const maxSearchLimit = 100

type DocumentServiceRPC struct {
	reader   *sdocument.Reader
	versions *sdocumentversion.VersionService
	patcher  *sdocpatch.Service
	searcher searchindex.Searcher
	stream   docsync.Streamer
	logger   *slog.Logger
}

// Deps collects the collaborators of the document service. ReadDB serves
// every read; writes go through Patcher. Searcher and Stream may be nil.
type Deps struct {
	ReadDB   *sql.DB
	Patcher  *sdocpatch.Service
	Searcher searchindex.Searcher
	Stream   docsync.Streamer
	Logger   *slog.Logger
}

func New(deps Deps) *DocumentServiceRPC {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentServiceRPC{
		reader:   sdocument.NewReader(deps.ReadDB, logger),
		versions: sdocumentversion.New(gen.New(deps.ReadDB), logger),
		patcher:  deps.Patcher,
		searcher: deps.Searcher,
		stream:   deps.Stream,
		logger:   logger,
	}
}

func CreateService(srv *DocumentServiceRPC, options []connect.HandlerOption) (*api.Service, error) {
	path, handler := documentv1connect.NewDocumentServiceHandler(srv, options...)
	return &api.Service{Path: path, Handler: handler}, nil
}

func parseID(name, value string) (idwrap.IDWrap, error) {
	if value == "" {
		return idwrap.IDWrap{}, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%s is required", name))
	}
	id, err := idwrap.NewText(value)
	if err != nil {
		return idwrap.IDWrap{}, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("invalid %s: %w", name, err))
	}
	return id, nil
}

// toConnectError maps service errors onto Connect codes. Errors that are
// already Connect errors pass through.
func toConnectError(err error) error {
	var connectErr *connect.Error
	switch {
	case errors.As(err, &connectErr):
		return connectErr
	case tdocument.IsSchemaError(err), sdocpatch.IsValidationError(err):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, sdocument.ErrDocumentNotFound),
		errors.Is(err, sdocumentversion.ErrVersionNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func (c *DocumentServiceRPC) DocumentCreate(ctx context.Context, req *connect.Request[documentv1.DocumentCreateRequest]) (*connect.Response[documentv1.DocumentCreateResponse], error) {
	doc, err := c.patcher.CreateDocument(ctx, mdocument.Fields{
		Title:   req.Msg.Title,
		Content: req.Msg.Content,
	}, mwauth.Actor(ctx))
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&documentv1.DocumentCreateResponse{
		Document: tdocument.SerializeDocument(*doc),
	}), nil
}

func (c *DocumentServiceRPC) DocumentGet(ctx context.Context, req *connect.Request[documentv1.DocumentGetRequest]) (*connect.Response[documentv1.DocumentGetResponse], error) {
	id, err := parseID("document id", req.Msg.DocumentID)
	if err != nil {
		return nil, err
	}
	doc, err := c.reader.GetDocument(ctx, id)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&documentv1.DocumentGetResponse{
		Document: tdocument.SerializeDocument(*doc),
	}), nil
}

func (c *DocumentServiceRPC) DocumentList(ctx context.Context, _ *connect.Request[documentv1.DocumentListRequest]) (*connect.Response[documentv1.DocumentListResponse], error) {
	docs, err := c.reader.ListDocuments(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&documentv1.DocumentListResponse{
		Documents: tgeneric.MassConvert(docs, tdocument.SerializeDocument),
	}), nil
}

// DocumentPatch runs a batch of position-based edits. Schema problems are
// rejected here, before the orchestrator opens a transaction.
func (c *DocumentServiceRPC) DocumentPatch(ctx context.Context, req *connect.Request[documentv1.DocumentPatchRequest]) (*connect.Response[documentv1.DocumentPatchResponse], error) {
	id, err := parseID("document id", req.Msg.DocumentID)
	if err != nil {
		return nil, err
	}
	changes, err := tdocument.DeserializeChanges(req.Msg.Changes)
	if err != nil {
		return nil, toConnectError(err)
	}

	result, err := c.patcher.PatchDocument(ctx, sdocpatch.PatchRequest{
		DocumentID:        id,
		Changes:           changes,
		ChangeDescription: req.Msg.ChangeDescription,
		EditorVersion:     req.Msg.EditorVersion,
		Timestamp:         req.Msg.Timestamp,
		Actor:             mwauth.Actor(ctx),
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&documentv1.DocumentPatchResponse{
		Document:             tdocument.SerializeDocument(result.Document),
		AppliedChangeCount:   result.AppliedChangeCount,
		ChangeCounts:         tdocument.SerializeChangeCounts(result.ChangeCounts),
		OptimizedChanges:     tgeneric.MassConvert(result.OptimizedChanges, tdocument.SerializeChange),
		OptimizedChangeCount: result.OptimizedChangeCount,
		VersionNumber:        result.VersionNumber,
	}), nil
}

func (c *DocumentServiceRPC) DocumentUpdate(ctx context.Context, req *connect.Request[documentv1.DocumentUpdateRequest]) (*connect.Response[documentv1.DocumentUpdateResponse], error) {
	id, err := parseID("document id", req.Msg.DocumentID)
	if err != nil {
		return nil, err
	}

	result, err := c.patcher.UpdateDocument(ctx, sdocpatch.UpdateRequest{
		DocumentID: id,
		Patch: patch.DocumentPatch{
			Title:   patch.NewOptionalPtr(req.Msg.Title),
			Content: patch.NewOptionalPtr(req.Msg.Content),
		},
		ChangeDescription: req.Msg.ChangeDescription,
		Actor:             mwauth.Actor(ctx),
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&documentv1.DocumentUpdateResponse{
		Document:      tdocument.SerializeDocument(result.Document),
		VersionNumber: result.VersionNumber,
	}), nil
}

func (c *DocumentServiceRPC) DocumentDelete(ctx context.Context, req *connect.Request[documentv1.DocumentDeleteRequest]) (*connect.Response[documentv1.DocumentDeleteResponse], error) {
	id, err := parseID("document id", req.Msg.DocumentID)
	if err != nil {
		return nil, err
	}
	if err := c.patcher.DeleteDocument(ctx, id); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&documentv1.DocumentDeleteResponse{}), nil
}

func (c *DocumentServiceRPC) DocumentVersionList(ctx context.Context, req *connect.Request[documentv1.DocumentVersionListRequest]) (*connect.Response[documentv1.DocumentVersionListResponse], error) {
	id, err := parseID("document id", req.Msg.DocumentID)
	if err != nil {
		return nil, err
	}
	if _, err := c.reader.GetDocument(ctx, id); err != nil {
		return nil, toConnectError(err)
	}

	versions, err := c.versions.ListVersions(ctx, id)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&documentv1.DocumentVersionListResponse{
		Versions: tgeneric.MassConvert(versions, tdocument.SerializeVersion),
	}), nil
}

func (c *DocumentServiceRPC) DocumentVersionGet(ctx context.Context, req *connect.Request[documentv1.DocumentVersionGetRequest]) (*connect.Response[documentv1.DocumentVersionGetResponse], error) {
	id, err := parseID("document id", req.Msg.DocumentID)
	if err != nil {
		return nil, err
	}
	version, err := c.versions.GetVersion(ctx, id, req.Msg.VersionNumber)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&documentv1.DocumentVersionGetResponse{
		Version: tdocument.SerializeVersion(*version),
	}), nil
}

// DocumentVersionDiff diffs the stored version against the document as it
// is now.
func (c *DocumentServiceRPC) DocumentVersionDiff(ctx context.Context, req *connect.Request[documentv1.DocumentVersionDiffRequest]) (*connect.Response[documentv1.DocumentVersionDiffResponse], error) {
	id, err := parseID("document id", req.Msg.DocumentID)
	if err != nil {
		return nil, err
	}
	doc, err := c.reader.GetDocument(ctx, id)
	if err != nil {
		return nil, toConnectError(err)
	}
	version, err := c.versions.GetVersion(ctx, id, req.Msg.VersionNumber)
	if err != nil {
		return nil, toConnectError(err)
	}

	diff := versiondiff.Fields(
		mdocument.Fields{Title: version.Title, Content: version.Content},
		doc.Fields(),
	)
	return connect.NewResponse(tdocument.SerializeDiff(diff)), nil
}

func (c *DocumentServiceRPC) DocumentVersionRestore(ctx context.Context, req *connect.Request[documentv1.DocumentVersionRestoreRequest]) (*connect.Response[documentv1.DocumentVersionRestoreResponse], error) {
	id, err := parseID("document id", req.Msg.DocumentID)
	if err != nil {
		return nil, err
	}
	result, err := c.patcher.RestoreVersion(ctx, sdocpatch.RestoreRequest{
		DocumentID:    id,
		VersionNumber: req.Msg.VersionNumber,
		Actor:         mwauth.Actor(ctx),
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&documentv1.DocumentVersionRestoreResponse{
		Document:      tdocument.SerializeDocument(result.Document),
		VersionNumber: result.VersionNumber,
	}), nil
}

func (c *DocumentServiceRPC) DocumentSearch(ctx context.Context, req *connect.Request[documentv1.DocumentSearchRequest]) (*connect.Response[documentv1.DocumentSearchResponse], error) {
	if c.searcher == nil {
		return nil, connect.NewError(connect.CodeUnimplemented, errors.New("search is not enabled"))
	}
	if req.Msg.Query == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("query is required"))
	}
	limit := req.Msg.Limit
	if limit < 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("limit cannot be negative"))
	}
	limit = min(limit, maxSearchLimit)

	hits, err := c.searcher.Search(ctx, req.Msg.Query, limit)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&documentv1.DocumentSearchResponse{
		Hits: tgeneric.MassConvert(hits, tdocument.SerializeHit),
	}), nil
}

// DocumentSync streams committed changes. It first sends the current state
// as snapshot events, then every later change. An empty document id follows
// every document.
func (c *DocumentServiceRPC) DocumentSync(ctx context.Context, req *connect.Request[documentv1.DocumentSyncRequest], stream *connect.ServerStream[documentv1.DocumentSyncResponse]) error {
	var filter eventstream.TopicFilter[docsync.Topic]
	snapshot := c.reader.ListDocuments
	if req.Msg.DocumentID != "" {
		id, err := parseID("document id", req.Msg.DocumentID)
		if err != nil {
			return err
		}
		filter = docsync.ForDocument(id)
		snapshot = func(ctx context.Context) ([]mdocument.Document, error) {
			doc, err := c.reader.GetDocument(ctx, id)
			if err != nil {
				return nil, err
			}
			return []mdocument.Document{*doc}, nil
		}
	}
	return c.streamDocumentSync(ctx, filter, snapshot, stream.Send)
}

// errDocumentSyncClosed tells a sync client to resubscribe and start over
// from a fresh snapshot.
var errDocumentSyncClosed = errors.New("document event feed closed; resubscribe to resync")

func (c *DocumentServiceRPC) streamDocumentSync(
	ctx context.Context,
	filter eventstream.TopicFilter[docsync.Topic],
	snapshot func(context.Context) ([]mdocument.Document, error),
	send func(*documentv1.DocumentSyncResponse) error,
) error {
	if c.stream == nil {
		return connect.NewError(connect.CodeUnimplemented, errors.New("sync is not enabled"))
	}

	// Subscribe before reading the snapshot so no commit falls in between.
	events, err := c.stream.Subscribe(ctx, filter)
	if err != nil {
		return connect.NewError(connect.CodeInternal, err)
	}

	docs, err := snapshot(ctx)
	if err != nil {
		return toConnectError(err)
	}
	for _, doc := range docs {
		resp := tdocument.SerializeSyncEvent(docsync.Event{
			Type:       documentv1.SyncTypeSnapshot,
			DocumentID: doc.ID,
			Document:   &doc,
		})
		if err := send(resp); err != nil {
			return err
		}
	}

	for {
		select {
		case evt, ok := <-events:
			if !ok {
				if err := ctx.Err(); err != nil {
					return err
				}
				// Dropped for falling behind, or the streamer shut down.
				return connect.NewError(connect.CodeUnavailable, errDocumentSyncClosed)
			}
			if err := send(tdocument.SerializeSyncEvent(evt.Payload)); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
