package handlers

import (
	"net/http"

	"ade-insurance-backend/models"
	"ade-insurance-backend/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PurchaseHandler handles HTTP requests for insurance purchases
type PurchaseHandler struct {
	purchaseRepo *repository.PurchaseRepository
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchaseRepo *repository.PurchaseRepository) *PurchaseHandler {
	return &PurchaseHandler{purchaseRepo: purchaseRepo}
}

// CreatePurchaseRequest is the body of POST /api/purchases
type CreatePurchaseRequest struct {
	PackageName      string  `json:"package_name" binding:"required"`
	PackageType      string  `json:"package_type" binding:"required"`
	InsuranceCompany *string `json:"insurance_company"`

	CustomerName     string  `json:"customer_name" binding:"required"`
	CustomerPhone    string  `json:"customer_phone" binding:"required"`
	CustomerEmail    *string `json:"customer_email"`
	CustomerAddress  *string `json:"customer_address"`
	CustomerIDNumber *string `json:"customer_id_number"`

	CoverageAmount   *string `json:"coverage_amount"`
	PremiumAmount    string  `json:"premium_amount" binding:"required"`
	PaymentFrequency *string `json:"payment_frequency"`
	StartDate        *string `json:"start_date"`
	EndDate          *string `json:"end_date"`

	BeneficiaryName         *string `json:"beneficiary_name"`
	BeneficiaryRelationship *string `json:"beneficiary_relationship"`

	VehicleType  *string `json:"vehicle_type"`
	LicensePlate *string `json:"license_plate"`

	PaymentMethod *string `json:"payment_method"`

	DocumentID   *uuid.UUID `json:"document_id"`
	PolicyNumber *string    `json:"policy_number"`

	AdditionalData models.AdditionalData `json:"additional_data"`
}

// Create handles POST /api/purchases
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req CreatePurchaseRequest
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

	purchase := &models.InsurancePurchase{
		UserID:                  CurrentUserID(c),
		PackageName:             req.PackageName,
		PackageType:             req.PackageType,
		InsuranceCompany:        req.InsuranceCompany,
		CustomerName:            req.CustomerName,
		CustomerPhone:           req.CustomerPhone,
		CustomerEmail:           req.CustomerEmail,
		CustomerAddress:         req.CustomerAddress,
		CustomerIDNumber:        req.CustomerIDNumber,
		CoverageAmount:          req.CoverageAmount,
		PremiumAmount:           req.PremiumAmount,
		PaymentFrequency:        req.PaymentFrequency,
		StartDate:               req.StartDate,
		EndDate:                 req.EndDate,
		BeneficiaryName:         req.BeneficiaryName,
		BeneficiaryRelationship: req.BeneficiaryRelationship,
		VehicleType:             req.VehicleType,
		LicensePlate:            req.LicensePlate,
		PaymentMethod:           req.PaymentMethod,
		PaymentStatus:           models.PaymentStatusPending,
		DocumentID:              req.DocumentID,
		PolicyNumber:            req.PolicyNumber,
		Status:                  models.PurchaseStatusActive,
		AdditionalData:          req.AdditionalData,
	}

	if err := h.purchaseRepo.Create(c.Request.Context(), purchase); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CREATE_FAILED",
				"message": "Failed to create purchase",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    purchase,
	})
}

// List handles GET /api/purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	purchases, err := h.purchaseRepo.ListByUser(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LIST_FAILED",
				"message": "Failed to list purchases",
			},
		})
		return
	}
	if purchases == nil {
		purchases = []*models.InsurancePurchase{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    purchases,
	})
}

// Get handles GET /api/purchases/:id
func (h *PurchaseHandler) Get(c *gin.Context) {
	purchase, ok := h.ownedPurchase(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    purchase,
	})
}

// UpdatePaymentRequest is the body of PUT /api/purchases/:id/payment
type UpdatePaymentRequest struct {
	PaymentStatus models.PaymentStatus `json:"payment_status" binding:"required"`
	TransactionID *string              `json:"transaction_id"`
}

// UpdatePayment handles PUT /api/purchases/:id/payment
func (h *PurchaseHandler) UpdatePayment(c *gin.Context) {
	purchase, ok := h.ownedPurchase(c)
	if !ok {
		return
	}

	var req UpdatePaymentRequest
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

	switch req.PaymentStatus {
	case models.PaymentStatusPending, models.PaymentStatusPaid, models.PaymentStatusFailed:
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_PAYMENT_STATUS",
				"message": "payment_status must be PENDING, PAID, or FAILED",
			},
		})
		return
	}

	if err := h.purchaseRepo.UpdatePaymentStatus(c.Request.Context(), purchase.ID, req.PaymentStatus, req.TransactionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPDATE_FAILED",
				"message": "Failed to update payment status",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"purchase_id": purchase.ID,
		},
	})
}

// Cancel handles POST /api/purchases/:id/cancel
func (h *PurchaseHandler) Cancel(c *gin.Context) {
	purchase, ok := h.ownedPurchase(c)
	if !ok {
		return
	}

	if err := h.purchaseRepo.UpdateStatus(c.Request.Context(), purchase.ID, models.PurchaseStatusCancelled); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPDATE_FAILED",
				"message": "Failed to cancel purchase",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"purchase_id": purchase.ID,
		},
	})
}

func (h *PurchaseHandler) ownedPurchase(c *gin.Context) (*models.InsurancePurchase, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_PURCHASE_ID",
				"message": "Invalid purchase ID format",
			},
		})
		return nil, false
	}

	purchase, err := h.purchaseRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PURCHASE_NOT_FOUND",
				"message": "Purchase not found",
			},
		})
		return nil, false
	}

	if purchase.UserID != CurrentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not own this purchase",
			},
		})
		return nil, false
	}
	return purchase, true
}
