package service

import (
	"encoding/json"

	"ade-insurance-backend/models"
)

// ValidateAnalysis coerces a raw oracle document into a PageAnalysis,
// filling defaults for anything missing or mistyped. Nothing here rejects:
// a partially broken response still yields a usable record.
func ValidateAnalysis(doc map[string]any) models.PageAnalysis {
	return models.PageAnalysis{
		DocumentType:      stringOr(doc["document_type"], "Unknown Document"),
		Confidence:        clampConfidence(floatOr(doc["confidence"], 0)),
		Title:             optionalString(doc["title"]),
		Summary:           stringOr(doc["summary"], ""),
		People:            listOr(doc["people"]),
		Organizations:     listOr(doc["organizations"]),
		Locations:         listOr(doc["locations"]),
		Dates:             listOr(doc["dates"]),
		Numbers:           listOr(doc["numbers"]),
		SignatureDetected: boolOr(doc["signature_detected"]),
	}
}

// ValidatePersonInfo decodes a raw oracle document into a PersonInfo,
// dropping non-string values and defaulting documentType.
func ValidatePersonInfo(doc map[string]any) models.PersonInfo {
	p := models.PersonInfo{
		FullName:      optionalString(doc["fullName"]),
		DateOfBirth:   optionalString(doc["dateOfBirth"]),
		Gender:        optionalString(doc["gender"]),
		IDNumber:      optionalString(doc["idNumber"]),
		Address:       optionalString(doc["address"]),
		Phone:         optionalString(doc["phone"]),
		Email:         optionalString(doc["email"]),
		PlaceOfOrigin: optionalString(doc["placeOfOrigin"]),
		Nationality:   optionalString(doc["nationality"]),
		IssueDate:     optionalString(doc["issueDate"]),
		ExpiryDate:    optionalString(doc["expiryDate"]),
		DocumentType:  optionalString(doc["documentType"]),
	}
	if p.DocumentType == nil {
		dt := "Unknown"
		p.DocumentType = &dt
	}
	return p
}

// ValidateVehicleInfo decodes a raw oracle document into a VehicleInfo.
func ValidateVehicleInfo(doc map[string]any) models.VehicleInfo {
	v := models.VehicleInfo{
		VehicleType:       optionalString(doc["vehicleType"]),
		LicensePlate:      optionalString(doc["licensePlate"]),
		ChassisNumber:     optionalString(doc["chassisNumber"]),
		EngineNumber:      optionalString(doc["engineNumber"]),
		Brand:             optionalString(doc["brand"]),
		Model:             optionalString(doc["model"]),
		ManufacturingYear: optionalString(doc["manufacturingYear"]),
		Color:             optionalString(doc["color"]),
		EngineCapacity:    optionalString(doc["engineCapacity"]),
		RegistrationDate:  optionalString(doc["registrationDate"]),
		OwnerName:         optionalString(doc["ownerName"]),
		OwnerAddress:      optionalString(doc["ownerAddress"]),
		DocumentType:      optionalString(doc["documentType"]),
	}
	if v.DocumentType == nil {
		dt := "Vehicle Registration"
		v.DocumentType = &dt
	}
	return v
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

func stringOr(v any, def string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}

func optionalString(v any) *string {
	switch s := v.(type) {
	case string:
		if s == "" {
			return nil
		}
		return &s
	case json.Number:
		str := s.String()
		return &str
	case float64:
		// Years and capacities sometimes come back as bare numbers.
		b, _ := json.Marshal(s)
		str := string(b)
		return &str
	default:
		return nil
	}
}

func floatOr(v any, def float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f
		}
	case int:
		return float64(n)
	}
	return def
}

func listOr(v any) []any {
	if l, ok := v.([]any); ok {
		return l
	}
	return []any{}
}

func boolOr(v any) bool {
	b, ok := v.(bool)
	return ok && b
}
