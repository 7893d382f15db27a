// Package versiondiff compares a stored document version with another state
// of the same document.
package versiondiff

import (
	"strings"
	"unicode/utf8"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/model/mdocument"
)

type Op string

const (
	OpEqual  Op = "equal"
	OpInsert Op = "insert"
	OpDelete Op = "delete"
)

// Segment is one run of a diff. Concatenating the equal and delete
// segments yields the old text; equal and insert yields the new text.
type Segment struct {
	Op   Op     `json:"op"`
	Text string `json:"text"`
}

type Result struct {
	Title   []Segment `json:"title"`
	Content []Segment `json:"content"`
}

// Stats counts inserted and deleted code points.
type Stats struct {
	Inserted int `json:"inserted"`
	Deleted  int `json:"deleted"`
}

func Fields(from, to mdocument.Fields) Result {
	return Result{
		Title:   Text(from.Title, to.Title),
		Content: Text(from.Content, to.Content),
	}
}

// Text returns a semantically cleaned-up character diff from -> to.
func Text(from, to string) []Segment {
	dmp := diffpatch.New()
	multiLine := strings.Contains(from, "\n") && strings.Contains(to, "\n")
	diffs := dmp.DiffMain(from, to, multiLine)
	diffs = dmp.DiffCleanupSemantic(diffs)

	segments := make([]Segment, 0, len(diffs))
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		var op Op
		switch d.Type {
		case diffpatch.DiffInsert:
			op = OpInsert
		case diffpatch.DiffDelete:
			op = OpDelete
		default:
			op = OpEqual
		}
		segments = append(segments, Segment{Op: op, Text: d.Text})
	}
	return segments
}

func (r Result) Stats() Stats {
	var s Stats
	for _, segs := range [][]Segment{r.Title, r.Content} {
		for _, seg := range segs {
			switch seg.Op {
			case OpInsert:
				s.Inserted += utf8.RuneCountInString(seg.Text)
			case OpDelete:
				s.Deleted += utf8.RuneCountInString(seg.Text)
			}
		}
	}
	return s
}
