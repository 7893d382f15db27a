// Package documentv1connect binds the DocumentService messages to Connect
// handlers and clients.
package documentv1connect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	documentv1 "github.com/the-dev-tools/dev-tools/packages/docserver/pkg/spec/api/document/v1"
)

// DocumentServiceName is the fully-qualified name of the DocumentService service.
const DocumentServiceName = "docserver.document.v1.DocumentService"

// Procedure paths. They are the URL path suffixes served by
// NewDocumentServiceHandler and used by NewDocumentServiceClient.
const (
	DocumentServiceDocumentCreateProcedure         = "/docserver.document.v1.DocumentService/DocumentCreate"
	DocumentServiceDocumentGetProcedure            = "/docserver.document.v1.DocumentService/DocumentGet"
	DocumentServiceDocumentListProcedure           = "/docserver.document.v1.DocumentService/DocumentList"
	DocumentServiceDocumentPatchProcedure          = "/docserver.document.v1.DocumentService/DocumentPatch"
	DocumentServiceDocumentUpdateProcedure         = "/docserver.document.v1.DocumentService/DocumentUpdate"
	DocumentServiceDocumentDeleteProcedure         = "/docserver.document.v1.DocumentService/DocumentDelete"
	DocumentServiceDocumentVersionListProcedure    = "/docserver.document.v1.DocumentService/DocumentVersionList"
	DocumentServiceDocumentVersionGetProcedure     = "/docserver.document.v1.DocumentService/DocumentVersionGet"
	DocumentServiceDocumentVersionDiffProcedure    = "/docserver.document.v1.DocumentService/DocumentVersionDiff"
	DocumentServiceDocumentVersionRestoreProcedure = "/docserver.document.v1.DocumentService/DocumentVersionRestore"
	DocumentServiceDocumentSearchProcedure         = "/docserver.document.v1.DocumentService/DocumentSearch"
	DocumentServiceDocumentSyncProcedure           = "/docserver.document.v1.DocumentService/DocumentSync"
)

// DocumentServiceClient is a client for the docserver.document.v1.DocumentService service.
type DocumentServiceClient interface {
	DocumentCreate(context.Context, *connect.Request[documentv1.DocumentCreateRequest]) (*connect.Response[documentv1.DocumentCreateResponse], error)
	DocumentGet(context.Context, *connect.Request[documentv1.DocumentGetRequest]) (*connect.Response[documentv1.DocumentGetResponse], error)
	DocumentList(context.Context, *connect.Request[documentv1.DocumentListRequest]) (*connect.Response[documentv1.DocumentListResponse], error)
	DocumentPatch(context.Context, *connect.Request[documentv1.DocumentPatchRequest]) (*connect.Response[documentv1.DocumentPatchResponse], error)
	DocumentUpdate(context.Context, *connect.Request[documentv1.DocumentUpdateRequest]) (*connect.Response[documentv1.DocumentUpdateResponse], error)
	DocumentDelete(context.Context, *connect.Request[documentv1.DocumentDeleteRequest]) (*connect.Response[documentv1.DocumentDeleteResponse], error)
	DocumentVersionList(context.Context, *connect.Request[documentv1.DocumentVersionListRequest]) (*connect.Response[documentv1.DocumentVersionListResponse], error)
	DocumentVersionGet(context.Context, *connect.Request[documentv1.DocumentVersionGetRequest]) (*connect.Response[documentv1.DocumentVersionGetResponse], error)
	DocumentVersionDiff(context.Context, *connect.Request[documentv1.DocumentVersionDiffRequest]) (*connect.Response[documentv1.DocumentVersionDiffResponse], error)
	DocumentVersionRestore(context.Context, *connect.Request[documentv1.DocumentVersionRestoreRequest]) (*connect.Response[documentv1.DocumentVersionRestoreResponse], error)
	DocumentSearch(context.Context, *connect.Request[documentv1.DocumentSearchRequest]) (*connect.Response[documentv1.DocumentSearchResponse], error)
	DocumentSync(context.Context, *connect.Request[documentv1.DocumentSyncRequest]) (*connect.ServerStreamForClient[documentv1.DocumentSyncResponse], error)
}

// NewDocumentServiceClient constructs a client for the
// docserver.document.v1.DocumentService service. baseURL is the scheme, host
// and optional path prefix of the server, for example "http://localhost:8080".
//
// Callers must pass the same JSON codec the server registers, see
// mwcodec.WithJSONCodecClient.
func NewDocumentServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) DocumentServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	return &documentServiceClient{
		documentCreate: connect.NewClient[documentv1.DocumentCreateRequest, documentv1.DocumentCreateResponse](
			httpClient,
			baseURL+DocumentServiceDocumentCreateProcedure,
			opts...,
		),
		documentGet: connect.NewClient[documentv1.DocumentGetRequest, documentv1.DocumentGetResponse](
			httpClient,
			baseURL+DocumentServiceDocumentGetProcedure,
			opts...,
		),
		documentList: connect.NewClient[documentv1.DocumentListRequest, documentv1.DocumentListResponse](
			httpClient,
			baseURL+DocumentServiceDocumentListProcedure,
			opts...,
		),
		documentPatch: connect.NewClient[documentv1.DocumentPatchRequest, documentv1.DocumentPatchResponse](
			httpClient,
			baseURL+DocumentServiceDocumentPatchProcedure,
			opts...,
		),
		documentUpdate: connect.NewClient[documentv1.DocumentUpdateRequest, documentv1.DocumentUpdateResponse](
			httpClient,
			baseURL+DocumentServiceDocumentUpdateProcedure,
			opts...,
		),
		documentDelete: connect.NewClient[documentv1.DocumentDeleteRequest, documentv1.DocumentDeleteResponse](
			httpClient,
			baseURL+DocumentServiceDocumentDeleteProcedure,
			opts...,
		),
		documentVersionList: connect.NewClient[documentv1.DocumentVersionListRequest, documentv1.DocumentVersionListResponse](
			httpClient,
			baseURL+DocumentServiceDocumentVersionListProcedure,
			opts...,
		),
		documentVersionGet: connect.NewClient[documentv1.DocumentVersionGetRequest, documentv1.DocumentVersionGetResponse](
			httpClient,
			baseURL+DocumentServiceDocumentVersionGetProcedure,
			opts...,
		),
		documentVersionDiff: connect.NewClient[documentv1.DocumentVersionDiffRequest, documentv1.DocumentVersionDiffResponse](
			httpClient,
			baseURL+DocumentServiceDocumentVersionDiffProcedure,
			opts...,
		),
		documentVersionRestore: connect.NewClient[documentv1.DocumentVersionRestoreRequest, documentv1.DocumentVersionRestoreResponse](
			httpClient,
			baseURL+DocumentServiceDocumentVersionRestoreProcedure,
			opts...,
		),
		documentSearch: connect.NewClient[documentv1.DocumentSearchRequest, documentv1.DocumentSearchResponse](
			httpClient,
			baseURL+DocumentServiceDocumentSearchProcedure,
			opts...,
		),
		documentSync: connect.NewClient[documentv1.DocumentSyncRequest, documentv1.DocumentSyncResponse](
			httpClient,
			baseURL+DocumentServiceDocumentSyncProcedure,
			opts...,
		),
	}
}

type documentServiceClient struct {
	documentCreate         *connect.Client[documentv1.DocumentCreateRequest, documentv1.DocumentCreateResponse]
	documentGet            *connect.Client[documentv1.DocumentGetRequest, documentv1.DocumentGetResponse]
	documentList           *connect.Client[documentv1.DocumentListRequest, documentv1.DocumentListResponse]
	documentPatch          *connect.Client[documentv1.DocumentPatchRequest, documentv1.DocumentPatchResponse]
	documentUpdate         *connect.Client[documentv1.DocumentUpdateRequest, documentv1.DocumentUpdateResponse]
	documentDelete         *connect.Client[documentv1.DocumentDeleteRequest, documentv1.DocumentDeleteResponse]
	documentVersionList    *connect.Client[documentv1.DocumentVersionListRequest, documentv1.DocumentVersionListResponse]
	documentVersionGet     *connect.Client[documentv1.DocumentVersionGetRequest, documentv1.DocumentVersionGetResponse]
	documentVersionDiff    *connect.Client[documentv1.DocumentVersionDiffRequest, documentv1.DocumentVersionDiffResponse]
	documentVersionRestore *connect.Client[documentv1.DocumentVersionRestoreRequest, documentv1.DocumentVersionRestoreResponse]
	documentSearch         *connect.Client[documentv1.DocumentSearchRequest, documentv1.DocumentSearchResponse]
	documentSync           *connect.Client[documentv1.DocumentSyncRequest, documentv1.DocumentSyncResponse]
}

func (c *documentServiceClient) DocumentCreate(ctx context.Context, req *connect.Request[documentv1.DocumentCreateRequest]) (*connect.Response[documentv1.DocumentCreateResponse], error) {
	return c.documentCreate.CallUnary(ctx, req)
}

func (c *documentServiceClient) DocumentGet(ctx context.Context, req *connect.Request[documentv1.DocumentGetRequest]) (*connect.Response[documentv1.DocumentGetResponse], error) {
	return c.documentGet.CallUnary(ctx, req)
}

func (c *documentServiceClient) DocumentList(ctx context.Context, req *connect.Request[documentv1.DocumentListRequest]) (*connect.Response[documentv1.DocumentListResponse], error) {
	return c.documentList.CallUnary(ctx, req)
}

func (c *documentServiceClient) DocumentPatch(ctx context.Context, req *connect.Request[documentv1.DocumentPatchRequest]) (*connect.Response[documentv1.DocumentPatchResponse], error) {
	return c.documentPatch.CallUnary(ctx, req)
}

func (c *documentServiceClient) DocumentUpdate(ctx context.Context, req *connect.Request[documentv1.DocumentUpdateRequest]) (*connect.Response[documentv1.DocumentUpdateResponse], error) {
	return c.documentUpdate.CallUnary(ctx, req)
}

func (c *documentServiceClient) DocumentDelete(ctx context.Context, req *connect.Request[documentv1.DocumentDeleteRequest]) (*connect.Response[documentv1.DocumentDeleteResponse], error) {
	return c.documentDelete.CallUnary(ctx, req)
}

func (c *documentServiceClient) DocumentVersionList(ctx context.Context, req *connect.Request[documentv1.DocumentVersionListRequest]) (*connect.Response[documentv1.DocumentVersionListResponse], error) {
	return c.documentVersionList.CallUnary(ctx, req)
}

func (c *documentServiceClient) DocumentVersionGet(ctx context.Context, req *connect.Request[documentv1.DocumentVersionGetRequest]) (*connect.Response[documentv1.DocumentVersionGetResponse], error) {
	return c.documentVersionGet.CallUnary(ctx, req)
}

func (c *documentServiceClient) DocumentVersionDiff(ctx context.Context, req *connect.Request[documentv1.DocumentVersionDiffRequest]) (*connect.Response[documentv1.DocumentVersionDiffResponse], error) {
	return c.documentVersionDiff.CallUnary(ctx, req)
}

func (c *documentServiceClient) DocumentVersionRestore(ctx context.Context, req *connect.Request[documentv1.DocumentVersionRestoreRequest]) (*connect.Response[documentv1.DocumentVersionRestoreResponse], error) {
	return c.documentVersionRestore.CallUnary(ctx, req)
}

func (c *documentServiceClient) DocumentSearch(ctx context.Context, req *connect.Request[documentv1.DocumentSearchRequest]) (*connect.Response[documentv1.DocumentSearchResponse], error) {
	return c.documentSearch.CallUnary(ctx, req)
}

func (c *documentServiceClient) DocumentSync(ctx context.Context, req *connect.Request[documentv1.DocumentSyncRequest]) (*connect.ServerStreamForClient[documentv1.DocumentSyncResponse], error) {
	return c.documentSync.CallServerStream(ctx, req)
}

// DocumentServiceHandler is implemented by the server side of the
// docserver.document.v1.DocumentService service.
type DocumentServiceHandler interface {
	DocumentCreate(context.Context, *connect.Request[documentv1.DocumentCreateRequest]) (*connect.Response[documentv1.DocumentCreateResponse], error)
	DocumentGet(context.Context, *connect.Request[documentv1.DocumentGetRequest]) (*connect.Response[documentv1.DocumentGetResponse], error)
	DocumentList(context.Context, *connect.Request[documentv1.DocumentListRequest]) (*connect.Response[documentv1.DocumentListResponse], error)
	DocumentPatch(context.Context, *connect.Request[documentv1.DocumentPatchRequest]) (*connect.Response[documentv1.DocumentPatchResponse], error)
	DocumentUpdate(context.Context, *connect.Request[documentv1.DocumentUpdateRequest]) (*connect.Response[documentv1.DocumentUpdateResponse], error)
	DocumentDelete(context.Context, *connect.Request[documentv1.DocumentDeleteRequest]) (*connect.Response[documentv1.DocumentDeleteResponse], error)
	DocumentVersionList(context.Context, *connect.Request[documentv1.DocumentVersionListRequest]) (*connect.Response[documentv1.DocumentVersionListResponse], error)
	DocumentVersionGet(context.Context, *connect.Request[documentv1.DocumentVersionGetRequest]) (*connect.Response[documentv1.DocumentVersionGetResponse], error)
	DocumentVersionDiff(context.Context, *connect.Request[documentv1.DocumentVersionDiffRequest]) (*connect.Response[documentv1.DocumentVersionDiffResponse], error)
	DocumentVersionRestore(context.Context, *connect.Request[documentv1.DocumentVersionRestoreRequest]) (*connect.Response[documentv1.DocumentVersionRestoreResponse], error)
	DocumentSearch(context.Context, *connect.Request[documentv1.DocumentSearchRequest]) (*connect.Response[documentv1.DocumentSearchResponse], error)
	DocumentSync(context.Context, *connect.Request[documentv1.DocumentSyncRequest], *connect.ServerStream[documentv1.DocumentSyncResponse]) error
}

// NewDocumentServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewDocumentServiceHandler(svc DocumentServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	documentCreateHandler := connect.NewUnaryHandler(
		DocumentServiceDocumentCreateProcedure,
		svc.DocumentCreate,
		opts...,
	)
	documentGetHandler := connect.NewUnaryHandler(
		DocumentServiceDocumentGetProcedure,
		svc.DocumentGet,
		opts...,
	)
	documentListHandler := connect.NewUnaryHandler(
		DocumentServiceDocumentListProcedure,
		svc.DocumentList,
		opts...,
	)
	documentPatchHandler := connect.NewUnaryHandler(
		DocumentServiceDocumentPatchProcedure,
		svc.DocumentPatch,
		opts...,
	)
	documentUpdateHandler := connect.NewUnaryHandler(
		DocumentServiceDocumentUpdateProcedure,
		svc.DocumentUpdate,
		opts...,
	)
	documentDeleteHandler := connect.NewUnaryHandler(
		DocumentServiceDocumentDeleteProcedure,
		svc.DocumentDelete,
		opts...,
	)
	documentVersionListHandler := connect.NewUnaryHandler(
		DocumentServiceDocumentVersionListProcedure,
		svc.DocumentVersionList,
		opts...,
	)
	documentVersionGetHandler := connect.NewUnaryHandler(
		DocumentServiceDocumentVersionGetProcedure,
		svc.DocumentVersionGet,
		opts...,
	)
	documentVersionDiffHandler := connect.NewUnaryHandler(
		DocumentServiceDocumentVersionDiffProcedure,
		svc.DocumentVersionDiff,
		opts...,
	)
	documentVersionRestoreHandler := connect.NewUnaryHandler(
		DocumentServiceDocumentVersionRestoreProcedure,
		svc.DocumentVersionRestore,
		opts...,
	)
	documentSearchHandler := connect.NewUnaryHandler(
		DocumentServiceDocumentSearchProcedure,
		svc.DocumentSearch,
		opts...,
	)
	documentSyncHandler := connect.NewServerStreamHandler(
		DocumentServiceDocumentSyncProcedure,
		svc.DocumentSync,
		opts...,
	)
	return "/docserver.document.v1.DocumentService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case DocumentServiceDocumentCreateProcedure:
			documentCreateHandler.ServeHTTP(w, r)
		case DocumentServiceDocumentGetProcedure:
			documentGetHandler.ServeHTTP(w, r)
		case DocumentServiceDocumentListProcedure:
			documentListHandler.ServeHTTP(w, r)
		case DocumentServiceDocumentPatchProcedure:
			documentPatchHandler.ServeHTTP(w, r)
		case DocumentServiceDocumentUpdateProcedure:
			documentUpdateHandler.ServeHTTP(w, r)
		case DocumentServiceDocumentDeleteProcedure:
			documentDeleteHandler.ServeHTTP(w, r)
		case DocumentServiceDocumentVersionListProcedure:
			documentVersionListHandler.ServeHTTP(w, r)
		case DocumentServiceDocumentVersionGetProcedure:
			documentVersionGetHandler.ServeHTTP(w, r)
		case DocumentServiceDocumentVersionDiffProcedure:
			documentVersionDiffHandler.ServeHTTP(w, r)
		case DocumentServiceDocumentVersionRestoreProcedure:
			documentVersionRestoreHandler.ServeHTTP(w, r)
		case DocumentServiceDocumentSearchProcedure:
			documentSearchHandler.ServeHTTP(w, r)
		case DocumentServiceDocumentSyncProcedure:
			documentSyncHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
