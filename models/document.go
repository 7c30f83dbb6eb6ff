package models

import (
	"time"

	"github.com/google/uuid"
)

// DocumentStatus represents the processing status of a document
type DocumentStatus string

const (
	DocumentStatusNotStarted DocumentStatus = "NOT_STARTED"
	DocumentStatusProcessing DocumentStatus = "PROCESSING"
	DocumentStatusDone       DocumentStatus = "DONE"
	DocumentStatusError      DocumentStatus = "ERROR"
)

// Document represents an uploaded document and its extraction results
type Document struct {
	ID       uuid.UUID      `json:"id"`
	UserID   uuid.UUID      `json:"user_id"`
	Filename string         `json:"filename"`
	Status   DocumentStatus `json:"status"`

	// Extraction results, filled in as the pipeline runs
	AnalysisResult  *MergedAnalysis `json:"analysis_result,omitempty"`
	MarkdownContent *string         `json:"markdown_content,omitempty"`
	PersonData      *string         `json:"person_data,omitempty"`  // JSON-encoded PersonInfo
	VehicleData     *string         `json:"vehicle_data,omitempty"` // JSON-encoded VehicleInfo

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Page represents a single page image of a document
type Page struct {
	ID          uuid.UUID `json:"id"`
	DocumentID  uuid.UUID `json:"document_id"`
	PageIndex   int       `json:"page_index"`
	StoragePath string    `json:"storage_path"`
	CreatedAt   time.Time `json:"created_at"`
}
