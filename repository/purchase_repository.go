package repository

import (
	"context"

	"ade-insurance-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PurchaseRepository handles database operations for insurance purchases
type PurchaseRepository struct {
	db *pgxpool.Pool
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

const purchaseColumns = `
	id, user_id, package_name, package_type, insurance_company,
	customer_name, customer_phone, customer_email, customer_address, customer_id_number,
	coverage_amount, premium_amount, payment_frequency, start_date, end_date,
	beneficiary_name, beneficiary_relationship,
	vehicle_type, license_plate,
	payment_method, payment_status, transaction_id,
	document_id, policy_number, status, additional_data,
	created_at, updated_at`

// Create creates a new insurance purchase
func (r *PurchaseRepository) Create(ctx context.Context, p *models.InsurancePurchase) error {
	query := `
		INSERT INTO insurance_purchases (
			user_id, package_name, package_type, insurance_company,
			customer_name, customer_phone, customer_email, customer_address, customer_id_number,
			coverage_amount, premium_amount, payment_frequency, start_date, end_date,
			beneficiary_name, beneficiary_relationship,
			vehicle_type, license_plate,
			payment_method, payment_status, transaction_id,
			document_id, policy_number, status, additional_data
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25
		) RETURNING id, created_at, updated_at`

	return r.db.QueryRow(
		ctx, query,
		p.UserID,
		p.PackageName,
		p.PackageType,
		p.InsuranceCompany,
		p.CustomerName,
		p.CustomerPhone,
		p.CustomerEmail,
		p.CustomerAddress,
		p.CustomerIDNumber,
		p.CoverageAmount,
		p.PremiumAmount,
		p.PaymentFrequency,
		p.StartDate,
		p.EndDate,
		p.BeneficiaryName,
		p.BeneficiaryRelationship,
		p.VehicleType,
		p.LicensePlate,
		p.PaymentMethod,
		p.PaymentStatus,
		p.TransactionID,
		p.DocumentID,
		p.PolicyNumber,
		p.Status,
		p.AdditionalData,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func scanPurchase(row interface{ Scan(...any) error }) (*models.InsurancePurchase, error) {
	p := &models.InsurancePurchase{}
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.PackageName,
		&p.PackageType,
		&p.InsuranceCompany,
		&p.CustomerName,
		&p.CustomerPhone,
		&p.CustomerEmail,
		&p.CustomerAddress,
		&p.CustomerIDNumber,
		&p.CoverageAmount,
		&p.PremiumAmount,
		&p.PaymentFrequency,
		&p.StartDate,
		&p.EndDate,
		&p.BeneficiaryName,
		&p.BeneficiaryRelationship,
		&p.VehicleType,
		&p.LicensePlate,
		&p.PaymentMethod,
		&p.PaymentStatus,
		&p.TransactionID,
		&p.DocumentID,
		&p.PolicyNumber,
		&p.Status,
		&p.AdditionalData,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID retrieves a purchase by ID
func (r *PurchaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.InsurancePurchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM insurance_purchases WHERE id = $1`
	return scanPurchase(r.db.QueryRow(ctx, query, id))
}

// ListByUser retrieves all purchases for a user, newest first
func (r *PurchaseRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.InsurancePurchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM insurance_purchases WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []*models.InsurancePurchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

// UpdateStatus updates a purchase's lifecycle status
func (r *PurchaseRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.PurchaseStatus) error {
	query := `UPDATE insurance_purchases SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, status, id)
	return err
}

// UpdatePaymentStatus updates a purchase's payment status and transaction reference
func (r *PurchaseRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus, transactionID *string) error {
	query := `
		UPDATE insurance_purchases
		SET payment_status = $1, transaction_id = $2, updated_at = NOW()
		WHERE id = $3`
	_, err := r.db.Exec(ctx, query, status, transactionID, id)
	return err
}

// Delete removes a purchase
func (r *PurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM insurance_purchases WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
