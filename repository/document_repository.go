package repository

import (
	"context"

	"ade-insurance-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DocumentRepository handles database operations for documents
type DocumentRepository struct {
	db *pgxpool.Pool
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create creates a new document
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := `
		INSERT INTO documents (user_id, filename, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRow(
		ctx, query,
		doc.UserID,
		doc.Filename,
		doc.Status,
	).Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)
}

// GetByID retrieves a document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	doc := &models.Document{}
	query := `
		SELECT id, user_id, filename, status, analysis_result,
			markdown_content, person_data, vehicle_data, created_at, updated_at
		FROM documents
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&doc.UserID,
		&doc.Filename,
		&doc.Status,
		&doc.AnalysisResult,
		&doc.MarkdownContent,
		&doc.PersonData,
		&doc.VehicleData,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ListByUser retrieves all documents for a user, newest first
func (r *DocumentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Document, error) {
	query := `
		SELECT id, user_id, filename, status, analysis_result,
			markdown_content, person_data, vehicle_data, created_at, updated_at
		FROM documents
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		doc := &models.Document{}
		err := rows.Scan(
			&doc.ID,
			&doc.UserID,
			&doc.Filename,
			&doc.Status,
			&doc.AnalysisResult,
			&doc.MarkdownContent,
			&doc.PersonData,
			&doc.VehicleData,
			&doc.CreatedAt,
			&doc.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// UpdateStatus updates a document's processing status
func (r *DocumentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.DocumentStatus) error {
	query := `UPDATE documents SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, status, id)
	return err
}

// SaveAnalysis stores the merged analysis result and extracted markdown
func (r *DocumentRepository) SaveAnalysis(ctx context.Context, id uuid.UUID, analysis *models.MergedAnalysis, markdown *string) error {
	query := `
		UPDATE documents
		SET analysis_result = $1, markdown_content = $2, updated_at = NOW()
		WHERE id = $3`
	_, err := r.db.Exec(ctx, query, analysis, markdown, id)
	return err
}

// UpdateMarkdown replaces the document's markdown content
func (r *DocumentRepository) UpdateMarkdown(ctx context.Context, id uuid.UUID, markdown string) error {
	query := `UPDATE documents SET markdown_content = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, markdown, id)
	return err
}

// SavePersonData stores the extracted identity record as JSON
func (r *DocumentRepository) SavePersonData(ctx context.Context, id uuid.UUID, data string) error {
	query := `UPDATE documents SET person_data = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, data, id)
	return err
}

// SaveVehicleData stores the extracted vehicle record as JSON
func (r *DocumentRepository) SaveVehicleData(ctx context.Context, id uuid.UUID, data string) error {
	query := `UPDATE documents SET vehicle_data = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, data, id)
	return err
}

// Delete removes a document
func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM documents WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
