package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PurchaseStatus represents the lifecycle status of an insurance purchase
type PurchaseStatus string

const (
	PurchaseStatusActive    PurchaseStatus = "ACTIVE"
	PurchaseStatusExpired   PurchaseStatus = "EXPIRED"
	PurchaseStatusCancelled PurchaseStatus = "CANCELLED"
)

// PaymentStatus represents the payment state of a purchase
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// AdditionalData holds free-form extra purchase fields as JSONB
type AdditionalData map[string]any

// Value implements driver.Valuer for JSONB
func (a AdditionalData) Value() (driver.Value, error) {
	if a == nil {
		return json.Marshal(map[string]any{})
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for JSONB
func (a *AdditionalData) Scan(value interface{}) error {
	if value == nil {
		*a = make(AdditionalData)
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
		*a = make(AdditionalData)
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// InsurancePurchase represents a purchased insurance package
type InsurancePurchase struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`

	// Package
	PackageName      string  `json:"package_name"`
	PackageType      string  `json:"package_type"`
	InsuranceCompany *string `json:"insurance_company,omitempty"`

	// Customer
	CustomerName     string  `json:"customer_name"`
	CustomerPhone    string  `json:"customer_phone"`
	CustomerEmail    *string `json:"customer_email,omitempty"`
	CustomerAddress  *string `json:"customer_address,omitempty"`
	CustomerIDNumber *string `json:"customer_id_number,omitempty"`

	// Coverage
	CoverageAmount   *string `json:"coverage_amount,omitempty"`
	PremiumAmount    string  `json:"premium_amount"`
	PaymentFrequency *string `json:"payment_frequency,omitempty"`
	StartDate        *string `json:"start_date,omitempty"` // DD/MM/YYYY
	EndDate          *string `json:"end_date,omitempty"`   // DD/MM/YYYY

	// Beneficiary
	BeneficiaryName         *string `json:"beneficiary_name,omitempty"`
	BeneficiaryRelationship *string `json:"beneficiary_relationship,omitempty"`

	// Vehicle (for vehicle insurance)
	VehicleType  *string `json:"vehicle_type,omitempty"`
	LicensePlate *string `json:"license_plate,omitempty"`

	// Payment
	PaymentMethod *string       `json:"payment_method,omitempty"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	TransactionID *string       `json:"transaction_id,omitempty"`

	// References
	DocumentID   *uuid.UUID `json:"document_id,omitempty"`
	PolicyNumber *string    `json:"policy_number,omitempty"`

	Status         PurchaseStatus `json:"status"`
	AdditionalData AdditionalData `json:"additional_data,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
