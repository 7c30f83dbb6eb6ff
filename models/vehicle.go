package models

// VehicleInfo holds fields extracted from Vietnamese vehicle registration
// documents (Giấy đăng ký xe / Cà vẹt).
type VehicleInfo struct {
	VehicleType       *string `json:"vehicleType"`
	LicensePlate      *string `json:"licensePlate"`
	ChassisNumber     *string `json:"chassisNumber"`
	EngineNumber      *string `json:"engineNumber"`
	Brand             *string `json:"brand"`
	Model             *string `json:"model"`
	ManufacturingYear *string `json:"manufacturingYear"`
	Color             *string `json:"color"`
	EngineCapacity    *string `json:"engineCapacity"`
	RegistrationDate  *string `json:"registrationDate"`
	OwnerName         *string `json:"ownerName"`
	OwnerAddress      *string `json:"ownerAddress"`
	DocumentType      *string `json:"documentType"`

	ExtractionStatus string `json:"extractionStatus,omitempty"`
	Message          string `json:"message,omitempty"`
	Error            string `json:"error,omitempty"`
	RawResponse      string `json:"raw_response,omitempty"`
}
