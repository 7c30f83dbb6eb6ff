package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"ade-insurance-backend/models"
	"ade-insurance-backend/repository"
	"ade-insurance-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AnalysisHandler handles HTTP requests for document analysis and
// structured extraction
type AnalysisHandler struct {
	analysisService *service.AnalysisService
	documentRepo    *repository.DocumentRepository
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisService *service.AnalysisService, documentRepo *repository.DocumentRepository) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		documentRepo:    documentRepo,
	}
}

// StartAnalysis handles POST /api/documents/:id/analyze
// Creates an analysis job and processes it in the background; the client
// polls the job endpoint for progress.
func (h *AnalysisHandler) StartAnalysis(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_DOCUMENT_ID",
				"message": "Invalid document ID format",
			},
		})
		return
	}

	result, err := h.analysisService.StartAnalysis(c.Request.Context(), service.StartAnalysisRequest{DocumentID: id})
	if err != nil {
		status := http.StatusInternalServerError
		code := "ANALYSIS_START_FAILED"
		switch {
		case errors.Is(err, service.ErrDocumentNotFound):
			status = http.StatusNotFound
			code = "DOCUMENT_NOT_FOUND"
		case errors.Is(err, service.ErrNoPages):
			status = http.StatusBadRequest
			code = "NO_PAGES"
		}
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	go func() {
		if err := h.analysisService.ProcessAnalysis(context.Background(), result.JobID); err != nil {
			log.Printf("background analysis failed for job %s: %v", result.JobID, err)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"data": gin.H{
			"job_id": result.JobID,
		},
	})
}

// GetJob handles GET /api/jobs/:id
func (h *AnalysisHandler) GetJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_JOB_ID",
				"message": "Invalid job ID format",
			},
		})
		return
	}

	job, err := h.analysisService.GetJobStatus(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "JOB_NOT_FOUND",
				"message": "Analysis job not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    job,
	})
}

// ExtractPersonInfo handles POST /api/extract/person-info
// Accepts a single ID-document image and returns the extracted identity
// record. When quota is exhausted the record degrades to a manual-entry
// placeholder rather than an error.
func (h *AnalysisHandler) ExtractPersonInfo(c *gin.Context) {
	data, ok := h.formImage(c)
	if !ok {
		return
	}

	person := h.analysisService.ExtractPersonInfo(c.Request.Context(), data)

	if docID, ok := h.optionalDocumentID(c); ok {
		if raw, err := json.Marshal(person); err == nil {
			if err := h.documentRepo.SavePersonData(c.Request.Context(), docID, string(raw)); err != nil {
				log.Printf("failed to save person data for document %s: %v", docID, err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    person,
	})
}

// ExtractVehicleInfo handles POST /api/extract/vehicle-info
func (h *AnalysisHandler) ExtractVehicleInfo(c *gin.Context) {
	data, ok := h.formImage(c)
	if !ok {
		return
	}

	vehicle := h.analysisService.ExtractVehicleInfo(c.Request.Context(), data)

	if docID, ok := h.optionalDocumentID(c); ok {
		if raw, err := json.Marshal(vehicle); err == nil {
			if err := h.documentRepo.SaveVehicleData(c.Request.Context(), docID, string(raw)); err != nil {
				log.Printf("failed to save vehicle data for document %s: %v", docID, err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    vehicle,
	})
}

// RecommendInsurance handles POST /api/extract/recommendation
// Reads address and place of origin off a document image and returns
// region-based package recommendations.
func (h *AnalysisHandler) RecommendInsurance(c *gin.Context) {
	data, ok := h.formImage(c)
	if !ok {
		return
	}

	result := h.analysisService.RecommendInsurance(c.Request.Context(), data)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// RecommendFromPerson handles POST /api/recommendations
// Derives recommendations from an already-extracted identity record, with
// no oracle call.
func (h *AnalysisHandler) RecommendFromPerson(c *gin.Context) {
	var person models.PersonInfo
	if err := c.ShouldBindJSON(&person); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	result := h.analysisService.RecommendFromPersonInfo(person)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// formImage reads the uploaded "file" form field into memory. On failure
// it writes the error response and returns ok=false.
func (h *AnalysisHandler) formImage(c *gin.Context) ([]byte, bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "An image file is required",
			},
		})
		return nil, false
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "READ_FAILED",
				"message": "Failed to read uploaded file",
			},
		})
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "READ_FAILED",
				"message": "Failed to read uploaded file",
			},
		})
		return nil, false
	}
	return data, true
}

func (h *AnalysisHandler) optionalDocumentID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.PostForm("document_id")
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
