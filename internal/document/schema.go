// Package document is the persisted {wbs, tasks} JSON shape and its
// conversion to and from the domain dataset.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Document is the top-level persisted structure.
type Document struct {
	WBS   []NodeRecord `json:"wbs"`
	Tasks []TaskRecord `json:"tasks"`
}

// NodeRecord is one WBS node as stored on disk. Dates are YYYY-MM-DD or null.
type NodeRecord struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Parent          *string `json:"parent"`
	StartDate       *string `json:"start_date"`
	EndDate         *string `json:"end_date"`
	ActualStartDate *string `json:"actual_start_date"`
	ActualEndDate   *string `json:"actual_end_date"`
}

// TaskRecord is one task as stored on disk.
type TaskRecord struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Status      string  `json:"status"`
	WBSID       *string `json:"wbs_id"`
	Priority    string  `json:"priority,omitempty"`
	Due         *string `json:"due"`
	Description string  `json:"description"`
}

// Empty returns a document with both collections present.
func Empty() *Document {
	return &Document{WBS: []NodeRecord{}, Tasks: []TaskRecord{}}
}

// Decode parses a document. Missing collections decode as empty ones.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return Empty(), nil
		}
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	if doc.WBS == nil {
		doc.WBS = []NodeRecord{}
	}
	if doc.Tasks == nil {
		doc.Tasks = []TaskRecord{}
	}
	return &doc, nil
}

// Encode renders the document as indented JSON with non-ASCII names kept
// readable.
func Encode(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return buf.Bytes(), nil
}

// LoadFile reads and parses a document file.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
