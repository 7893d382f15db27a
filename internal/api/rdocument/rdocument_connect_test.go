package rdocument

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/the-dev-tools/dev-tools/packages/docserver/internal/api"
	"github.com/the-dev-tools/dev-tools/packages/docserver/internal/api/middleware/mwauth"
	"github.com/the-dev-tools/dev-tools/packages/docserver/internal/api/middleware/mwcodec"
	"github.com/the-dev-tools/dev-tools/packages/docserver/internal/api/middleware/mwcompress"
	"github.com/the-dev-tools/dev-tools/packages/docserver/internal/api/middleware/mwlog"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/brcompress"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/idwrap"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/logger/mocklogger"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/stoken"
	documentv1 "github.com/the-dev-tools/dev-tools/packages/docserver/pkg/spec/api/document/v1"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/spec/api/document/v1/documentv1connect"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/zstdcompress"
)

var testSecret = []byte("rdocument-test-secret")

func newConnectServer(t *testing.T) (documentv1connect.DocumentServiceClient, *documentFixture) {
	t.Helper()
	return newConnectServerSending(t, zstdcompress.Name)
}

func newConnectServerSending(t *testing.T, encoding string) (documentv1connect.DocumentServiceClient, *documentFixture) {
	t.Helper()
	f := newDocumentFixture(t)
	logger := mocklogger.NewMockLogger()

	options := []connect.HandlerOption{
		mwcodec.WithJSONCodec(),
		mwcompress.WithZstd(),
		mwcompress.WithBrotli(),
		connect.WithInterceptors(
			mwlog.NewLogInterceptor(logger),
			mwauth.NewCrashInterceptor(logger),
			mwauth.NewAuthInterceptor(testSecret),
		),
	}
	service, err := CreateService(f.rpc, options)
	require.NoError(t, err)

	srv := httptest.NewServer(api.NewHandler([]api.Service{*service}, logger))
	t.Cleanup(srv.Close)

	client := documentv1connect.NewDocumentServiceClient(
		srv.Client(),
		srv.URL,
		mwcodec.WithJSONCodecClient(),
		mwcompress.WithZstd(),
		mwcompress.WithBrotli(),
		connect.WithSendCompression(encoding),
	)
	return client, f
}

func authed[T any](t *testing.T, userID idwrap.IDWrap, msg *T) *connect.Request[T] {
	t.Helper()
	token, err := stoken.NewJWT(userID.String(), stoken.AccessToken, time.Hour, testSecret)
	require.NoError(t, err)
	req := connect.NewRequest(msg)
	req.Header().Set(stoken.TokenHeaderKey, "Bearer "+token)
	return req
}

func TestConnectPatchRoundTrip(t *testing.T) {
	t.Parallel()
	client, _ := newConnectServer(t)
	ctx := context.Background()
	userID := idwrap.NewNow()

	created, err := client.DocumentCreate(ctx, authed(t, userID, &documentv1.DocumentCreateRequest{
		Title:   "Test Document",
		Content: baseContent,
	}))
	require.NoError(t, err)
	assert.Equal(t, userID.String(), created.Msg.Document.CreatedBy)
	assert.NotEmpty(t, created.Header().Get(mwlog.RequestIDHeader))

	patched, err := client.DocumentPatch(ctx, authed(t, userID, &documentv1.DocumentPatchRequest{
		DocumentID: created.Msg.Document.DocumentID,
		Changes: []documentv1.Change{
			{Type: "insert", Field: "content", Position: 46, Text: strPtr(" Appended")},
		},
		EditorVersion: "1.4.0",
	}))
	require.NoError(t, err)
	assert.Equal(t, baseContent+" Appended", patched.Msg.Document.Content)
	assert.Equal(t, 1, patched.Msg.AppliedChangeCount)
	assert.Equal(t, documentv1.ChangeCounts{Content: 1}, patched.Msg.ChangeCounts)
	assert.EqualValues(t, 1, patched.Msg.VersionNumber)

	versions, err := client.DocumentVersionList(ctx, authed(t, userID, &documentv1.DocumentVersionListRequest{
		DocumentID: created.Msg.Document.DocumentID,
	}))
	require.NoError(t, err)
	require.Len(t, versions.Msg.Versions, 1)
	assert.Equal(t, "Applied 1 change(s) from editor 1.4.0", versions.Msg.Versions[0].ChangeDescription)
	assert.Equal(t, userID.String(), versions.Msg.Versions[0].CreatedBy)
}

func TestConnectBrotliRequests(t *testing.T) {
	t.Parallel()
	client, _ := newConnectServerSending(t, brcompress.Name)
	ctx := context.Background()
	userID := idwrap.NewNow()

	content := strings.Repeat("<p>Quarterly planning notes.</p>", 200)
	created, err := client.DocumentCreate(ctx, authed(t, userID, &documentv1.DocumentCreateRequest{
		Title:   "Brotli Document",
		Content: content,
	}))
	require.NoError(t, err)

	got, err := client.DocumentGet(ctx, authed(t, userID, &documentv1.DocumentGetRequest{
		DocumentID: created.Msg.Document.DocumentID,
	}))
	require.NoError(t, err)
	assert.Equal(t, content, got.Msg.Document.Content)
}

func TestConnectErrorCodes(t *testing.T) {
	t.Parallel()
	client, _ := newConnectServer(t)
	ctx := context.Background()
	userID := idwrap.NewNow()

	created, err := client.DocumentCreate(ctx, authed(t, userID, &documentv1.DocumentCreateRequest{
		Title:   "Test Document",
		Content: baseContent,
	}))
	require.NoError(t, err)

	_, err = client.DocumentPatch(ctx, authed(t, userID, &documentv1.DocumentPatchRequest{
		DocumentID: created.Msg.Document.DocumentID,
		Changes: []documentv1.Change{
			{Type: "delete", Field: "content", Position: 1000, Length: intPtr(5)},
		},
	}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	assert.Contains(t, err.Error(), "Change 0: position 1000 exceeds text length 46 for delete operation")

	_, err = client.DocumentGet(ctx, authed(t, userID, &documentv1.DocumentGetRequest{
		DocumentID: idwrap.NewNow().String(),
	}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	_, err = client.DocumentList(ctx, connect.NewRequest(&documentv1.DocumentListRequest{}))
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
}

func TestConnectDocumentSync(t *testing.T) {
	t.Parallel()
	client, _ := newConnectServer(t)
	userID := idwrap.NewNow()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	created, err := client.DocumentCreate(ctx, authed(t, userID, &documentv1.DocumentCreateRequest{
		Title:   "Live",
		Content: "hello",
	}))
	require.NoError(t, err)
	docID := created.Msg.Document.DocumentID

	stream, err := client.DocumentSync(ctx, authed(t, userID, &documentv1.DocumentSyncRequest{DocumentID: docID}))
	require.NoError(t, err)
	defer stream.Close()

	require.True(t, stream.Receive(), "snapshot: %v", stream.Err())
	assert.Equal(t, documentv1.SyncTypeSnapshot, stream.Msg().Type)

	_, err = client.DocumentUpdate(ctx, authed(t, userID, &documentv1.DocumentUpdateRequest{
		DocumentID: docID,
		Title:      strPtr("Live (edited)"),
	}))
	require.NoError(t, err)

	require.True(t, stream.Receive(), "version: %v", stream.Err())
	assert.Equal(t, documentv1.SyncTypeVersion, stream.Msg().Type)

	require.True(t, stream.Receive(), "update: %v", stream.Err())
	msg := stream.Msg()
	assert.Equal(t, documentv1.SyncTypeUpdate, msg.Type)
	require.NotNil(t, msg.Document)
	assert.Equal(t, "Live (edited)", msg.Document.Title)
}
