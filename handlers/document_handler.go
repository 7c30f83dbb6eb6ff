package handlers

import (
	"fmt"
	"net/http"

	"ade-insurance-backend/models"
	"ade-insurance-backend/repository"
	"ade-insurance-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DocumentHandler handles HTTP requests for document upload and retrieval
type DocumentHandler struct {
	documentRepo     *repository.DocumentRepository
	pageRepo         *repository.PageRepository
	storage          storage.Storage
	maxFileSize      int64
	allowedMimeTypes map[string]bool
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentRepo *repository.DocumentRepository, pageRepo *repository.PageRepository, store storage.Storage) *DocumentHandler {
	return &DocumentHandler{
		documentRepo: documentRepo,
		pageRepo:     pageRepo,
		storage:      store,
		maxFileSize:  10 * 1024 * 1024, // 10MB per page
		allowedMimeTypes: map[string]bool{
			"image/jpeg": true,
			"image/png":  true,
			"image/webp": true,
		},
	}
}

// Upload handles POST /api/documents/upload
// Accepts one or more page images under the "files" form field; each image
// becomes one page of a single new document.
func (h *DocumentHandler) Upload(c *gin.Context) {
	userID := CurrentUserID(c)

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FORM",
				"message": "Expected multipart form data",
			},
		})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILES",
				"message": "At least one page image is required",
			},
		})
		return
	}

	for _, fh := range files {
		if fh.Size > h.maxFileSize {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FILE_TOO_LARGE",
					"message": fmt.Sprintf("File %s exceeds maximum of %d bytes", fh.Filename, h.maxFileSize),
				},
			})
			return
		}
		contentType := fh.Header.Get("Content-Type")
		if !h.allowedMimeTypes[contentType] {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNSUPPORTED_TYPE",
					"message": fmt.Sprintf("File %s has unsupported type %s (want JPEG, PNG, or WebP)", fh.Filename, contentType),
				},
			})
			return
		}
	}

	doc := &models.Document{
		UserID:   userID,
		Filename: files[0].Filename,
		Status:   models.DocumentStatusNotStarted,
	}
	if err := h.documentRepo.Create(c.Request.Context(), doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CREATE_FAILED",
				"message": "Failed to create document",
			},
		})
		return
	}

	var pages []*models.Page
	for i, fh := range files {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "READ_FAILED",
					"message": fmt.Sprintf("Failed to read file %s", fh.Filename),
				},
			})
			return
		}

		pageID := uuid.New()
		storagePath, err := h.storage.Upload(c.Request.Context(), pageID, fh.Filename, f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "STORAGE_FAILED",
					"message": fmt.Sprintf("Failed to store file %s", fh.Filename),
				},
			})
			return
		}

		page := &models.Page{
			ID:          pageID,
			DocumentID:  doc.ID,
			PageIndex:   i,
			StoragePath: storagePath,
		}
		if err := h.pageRepo.Create(c.Request.Context(), page); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CREATE_FAILED",
					"message": "Failed to record page",
				},
			})
			return
		}
		pages = append(pages, page)
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"document": doc,
			"pages":    pages,
		},
	})
}

// List handles GET /api/documents
func (h *DocumentHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	docs, err := h.documentRepo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LIST_FAILED",
				"message": "Failed to list documents",
			},
		})
		return
	}
	if docs == nil {
		docs = []*models.Document{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    docs,
	})
}

// Get handles GET /api/documents/:id
func (h *DocumentHandler) Get(c *gin.Context) {
	doc, ok := h.ownedDocument(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    doc,
	})
}

// GetMarkdown handles GET /api/documents/:id/markdown
func (h *DocumentHandler) GetMarkdown(c *gin.Context) {
	doc, ok := h.ownedDocument(c)
	if !ok {
		return
	}
	markdown := ""
	if doc.MarkdownContent != nil {
		markdown = *doc.MarkdownContent
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"document_id": doc.ID,
			"markdown":    markdown,
		},
	})
}

// UpdateMarkdownRequest is the body of PUT /api/documents/:id/markdown
type UpdateMarkdownRequest struct {
	Markdown string `json:"markdown" binding:"required"`
}

// UpdateMarkdown handles PUT /api/documents/:id/markdown — manual
// corrections to the extracted content.
func (h *DocumentHandler) UpdateMarkdown(c *gin.Context) {
	doc, ok := h.ownedDocument(c)
	if !ok {
		return
	}

	var req UpdateMarkdownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	if err := h.documentRepo.UpdateMarkdown(c.Request.Context(), doc.ID, req.Markdown); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPDATE_FAILED",
				"message": "Failed to update markdown",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"document_id": doc.ID,
		},
	})
}

// Delete handles DELETE /api/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	doc, ok := h.ownedDocument(c)
	if !ok {
		return
	}

	pages, err := h.pageRepo.ListByDocument(c.Request.Context(), doc.ID)
	if err == nil {
		for _, page := range pages {
			if err := h.storage.Delete(c.Request.Context(), page.StoragePath); err != nil {
				// Orphaned blobs are preferable to a failed delete.
				continue
			}
		}
	}

	if err := h.pageRepo.DeleteByDocument(c.Request.Context(), doc.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DELETE_FAILED",
				"message": "Failed to delete pages",
			},
		})
		return
	}
	if err := h.documentRepo.Delete(c.Request.Context(), doc.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DELETE_FAILED",
				"message": "Failed to delete document",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"document_id": doc.ID,
		},
	})
}

// ownedDocument loads the :id document and enforces ownership. On failure
// it writes the error response and returns ok=false.
func (h *DocumentHandler) ownedDocument(c *gin.Context) (*models.Document, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_DOCUMENT_ID",
				"message": "Invalid document ID format",
			},
		})
		return nil, false
	}

	doc, err := h.documentRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DOCUMENT_NOT_FOUND",
				"message": "Document not found",
			},
		})
		return nil, false
	}

	if doc.UserID != CurrentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not own this document",
			},
		})
		return nil, false
	}
	return doc, true
}
