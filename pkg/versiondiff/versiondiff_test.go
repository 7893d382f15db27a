package versiondiff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/model/mdocument"
)

func rebuild(segments []Segment, keep Op) string {
	var b strings.Builder
	for _, s := range segments {
		if s.Op == OpEqual || s.Op == keep {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

func TestTextReconstructsBothSides(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from, to string
	}{
		{"identical", "same text", "same text"},
		{"insert", "Hello", "Hello World"},
		{"delete", "Original content", "Original"},
		{"replace", "Original content for testing", "Updated content for testing"},
		{"unicode", "héllo wörld", "héllo 世界"},
		{"multiline", "line one\nline two\n", "line one\nline 2\nline three\n"},
		{"from empty", "", "new"},
		{"to empty", "old", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			segs := Text(tt.from, tt.to)
			assert.Equal(t, tt.from, rebuild(segs, OpDelete))
			assert.Equal(t, tt.to, rebuild(segs, OpInsert))
		})
	}
}

func TestIdenticalTextHasOnlyEqualSegments(t *testing.T) {
	t.Parallel()

	for _, seg := range Text("abc", "abc") {
		assert.Equal(t, OpEqual, seg.Op)
	}
	assert.Empty(t, Text("", ""))
}

func TestFieldsStats(t *testing.T) {
	t.Parallel()

	result := Fields(
		mdocument.Fields{Title: "Title", Content: "abc"},
		mdocument.Fields{Title: "Title", Content: "abcdé"},
	)
	assert.Equal(t, Stats{Inserted: 2, Deleted: 0}, result.Stats())
	assert.Equal(t, "Title", rebuild(result.Title, OpInsert))
}
