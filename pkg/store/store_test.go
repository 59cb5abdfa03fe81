package store

import (
	"testing"

	"github.com/google/uuid"

	"github.com/expogrid/hallplan/pkg/layout"
	"github.com/expogrid/hallplan/pkg/validate"
)

func TestNewDocument(t *testing.T) {
	l := &layout.Layout{Report: &validate.Report{}}

	doc := NewDocument(l, "abc123")

	if _, err := uuid.Parse(doc.ID); err != nil {
		t.Errorf("document id %q is not a UUID: %v", doc.ID, err)
	}
	if doc.PlanHash != "abc123" {
		t.Errorf("PlanHash = %q", doc.PlanHash)
	}
	if doc.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
	if !doc.Passed {
		t.Error("empty report should mark the document passed")
	}

	// Ids are random per document.
	if NewDocument(l, "abc123").ID == doc.ID {
		t.Error("two documents share an id")
	}
}
