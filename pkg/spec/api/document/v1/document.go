// Package documentv1 holds the JSON messages of the
// docserver.document.v1.DocumentService API.
package documentv1

import "time"

// Change types.
const (
	ChangeTypeInsert  = "insert"
	ChangeTypeDelete  = "delete"
	ChangeTypeReplace = "replace"
)

// Change fields.
const (
	ChangeFieldTitle   = "title"
	ChangeFieldContent = "content"
)

// Sync event types.
const (
	SyncTypeSnapshot = "snapshot"
	SyncTypeInsert   = "insert"
	SyncTypeUpdate   = "update"
	SyncTypeDelete   = "delete"
	SyncTypeVersion  = "version"
)

type Document struct {
	DocumentID string    `json:"documentId"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedBy  string    `json:"createdBy,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Change is a single edit. Length is required for delete and replace, Text
// for insert and replace.
type Change struct {
	Type     string  `json:"type"`
	Field    string  `json:"field"`
	Position int     `json:"position"`
	Length   *int    `json:"length,omitempty"`
	Text     *string `json:"text,omitempty"`
}

type ChangeCounts struct {
	Title   int `json:"title"`
	Content int `json:"content"`
}

type Version struct {
	VersionID         string    `json:"versionId"`
	DocumentID        string    `json:"documentId"`
	VersionNumber     int64     `json:"versionNumber"`
	Title             string    `json:"title"`
	Content           string    `json:"content"`
	ChangeDescription string    `json:"changeDescription"`
	ContentHash       string    `json:"contentHash"`
	CreatedBy         string    `json:"createdBy,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

type DiffSegment struct {
	Op   string `json:"op"`
	Text string `json:"text"`
}

type DiffStats struct {
	Inserted int `json:"inserted"`
	Deleted  int `json:"deleted"`
}

type SearchHit struct {
	DocumentID   string    `json:"documentId"`
	Title        string    `json:"title"`
	Snippet      string    `json:"snippet"`
	MatchedTitle bool      `json:"matchedTitle"`
	Distance     int       `json:"distance"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type DocumentCreateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type DocumentCreateResponse struct {
	Document Document `json:"document"`
}

type DocumentGetRequest struct {
	DocumentID string `json:"documentId"`
}

type DocumentGetResponse struct {
	Document Document `json:"document"`
}

type DocumentListRequest struct{}

type DocumentListResponse struct {
	Documents []Document `json:"documents"`
}

type DocumentPatchRequest struct {
	DocumentID        string     `json:"documentId"`
	Changes           []Change   `json:"changes"`
	ChangeDescription string     `json:"changeDescription,omitempty"`
	EditorVersion     string     `json:"editorVersion,omitempty"`
	Timestamp         *time.Time `json:"timestamp,omitempty"`
}

type DocumentPatchResponse struct {
	Document             Document     `json:"document"`
	AppliedChangeCount   int          `json:"appliedChangeCount"`
	ChangeCounts         ChangeCounts `json:"changeCounts"`
	OptimizedChanges     []Change     `json:"optimizedChanges"`
	OptimizedChangeCount int          `json:"optimizedChangeCount"`
	VersionNumber        int64        `json:"versionNumber"`
}

// DocumentUpdateRequest replaces whole field values. Omitted fields are
// left untouched.
type DocumentUpdateRequest struct {
	DocumentID        string  `json:"documentId"`
	Title             *string `json:"title,omitempty"`
	Content           *string `json:"content,omitempty"`
	ChangeDescription string  `json:"changeDescription,omitempty"`
}

type DocumentUpdateResponse struct {
	Document      Document `json:"document"`
	VersionNumber int64    `json:"versionNumber"`
}

type DocumentDeleteRequest struct {
	DocumentID string `json:"documentId"`
}

type DocumentDeleteResponse struct{}

type DocumentVersionListRequest struct {
	DocumentID string `json:"documentId"`
}

type DocumentVersionListResponse struct {
	Versions []Version `json:"versions"`
}

type DocumentVersionGetRequest struct {
	DocumentID    string `json:"documentId"`
	VersionNumber int64  `json:"versionNumber"`
}

type DocumentVersionGetResponse struct {
	Version Version `json:"version"`
}

type DocumentVersionDiffRequest struct {
	DocumentID    string `json:"documentId"`
	VersionNumber int64  `json:"versionNumber"`
}

// DocumentVersionDiffResponse describes how to get from the version to the
// current document.
type DocumentVersionDiffResponse struct {
	Title   []DiffSegment `json:"title"`
	Content []DiffSegment `json:"content"`
	Stats   DiffStats     `json:"stats"`
}

type DocumentVersionRestoreRequest struct {
	DocumentID    string `json:"documentId"`
	VersionNumber int64  `json:"versionNumber"`
}

type DocumentVersionRestoreResponse struct {
	Document      Document `json:"document"`
	VersionNumber int64    `json:"versionNumber"`
}

type DocumentSearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

type DocumentSearchResponse struct {
	Hits []SearchHit `json:"hits"`
}

// DocumentSyncRequest subscribes to one document, or to all of them when
// DocumentID is empty.
type DocumentSyncRequest struct {
	DocumentID string `json:"documentId,omitempty"`
}

type DocumentSyncResponse struct {
	Type          string    `json:"type"`
	DocumentID    string    `json:"documentId"`
	Document      *Document `json:"document,omitempty"`
	VersionNumber int64     `json:"versionNumber,omitempty"`
}
