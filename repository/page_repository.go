package repository

import (
	"context"

	"ade-insurance-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PageRepository handles database operations for document pages
type PageRepository struct {
	db *pgxpool.Pool
}

// NewPageRepository creates a new page repository
func NewPageRepository(db *pgxpool.Pool) *PageRepository {
	return &PageRepository{db: db}
}

// Create creates a new page
func (r *PageRepository) Create(ctx context.Context, page *models.Page) error {
	query := `
		INSERT INTO pages (document_id, page_index, storage_path)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	return r.db.QueryRow(
		ctx, query,
		page.DocumentID,
		page.PageIndex,
		page.StoragePath,
	).Scan(&page.ID, &page.CreatedAt)
}

// ListByDocument retrieves a document's pages in page order
func (r *PageRepository) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]*models.Page, error) {
	query := `
		SELECT id, document_id, page_index, storage_path, created_at
		FROM pages
		WHERE document_id = $1
		ORDER BY page_index ASC`

	rows, err := r.db.Query(ctx, query, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*models.Page
	for rows.Next() {
		page := &models.Page{}
		err := rows.Scan(
			&page.ID,
			&page.DocumentID,
			&page.PageIndex,
			&page.StoragePath,
			&page.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, rows.Err()
}

// DeleteByDocument removes all pages of a document
func (r *PageRepository) DeleteByDocument(ctx context.Context, documentID uuid.UUID) error {
	query := `DELETE FROM pages WHERE document_id = $1`
	_, err := r.db.Exec(ctx, query, documentID)
	return err
}
