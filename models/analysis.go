package models

import (
	"database/sql/driver"
	"encoding/json"
)

// PageAnalysis is the structured extraction result for a single page.
// Entity collections are kept loosely typed ([]any) because the oracle
// sometimes returns bare strings where objects were requested; the
// validator guarantees the slices are non-nil and the merger knows how
// to key both shapes.
type PageAnalysis struct {
	DocumentType      string  `json:"document_type"`
	Confidence        float64 `json:"confidence"`
	Title             *string `json:"title"`
	Summary           string  `json:"summary"`
	People            []any   `json:"people"`
	Organizations     []any   `json:"organizations"`
	Locations         []any   `json:"locations"`
	Dates             []any   `json:"dates"`
	Numbers           []any   `json:"numbers"`
	SignatureDetected bool    `json:"signature_detected"`

	PageNumber int `json:"page_number,omitempty"`

	// Error carries a page-level failure description. A page record with a
	// non-empty Error still participates in merging with zero confidence.
	Error       string `json:"error,omitempty"`
	RawResponse string `json:"raw_response,omitempty"`
}

// MergedAnalysis is the document-level aggregate of all page records.
type MergedAnalysis struct {
	PageAnalysis
	TotalPages int            `json:"total_pages"`
	Pages      []PageAnalysis `json:"pages"`
}

// Value implements driver.Valuer for JSONB storage
func (m MergedAnalysis) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Scan implements sql.Scanner for JSONB storage
func (m *MergedAnalysis) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	if len(bytes) == 0 {
		return nil
	}

	return json.Unmarshal(bytes, m)
}
