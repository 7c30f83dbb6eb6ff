package models

// PersonInfo holds identity fields extracted from CCCD/CMND/driver
// license/passport images. Dates are DD/MM/YYYY strings; ExpiryDate may be
// the literal "Không thời hạn" when the document has no expiry.
type PersonInfo struct {
	FullName      *string `json:"fullName"`
	DateOfBirth   *string `json:"dateOfBirth"`
	Gender        *string `json:"gender"`
	IDNumber      *string `json:"idNumber"`
	Address       *string `json:"address"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	PlaceOfOrigin *string `json:"placeOfOrigin"`
	Nationality   *string `json:"nationality"`
	IssueDate     *string `json:"issueDate"`
	ExpiryDate    *string `json:"expiryDate"`
	DocumentType  *string `json:"documentType"`

	// ExtractionStatus is "success", "quota_exceeded", or "error".
	// Degraded records keep their shape so clients can always render them.
	ExtractionStatus string `json:"extractionStatus,omitempty"`
	Message          string `json:"message,omitempty"`
	Error            string `json:"error,omitempty"`
	RawResponse      string `json:"raw_response,omitempty"`
}
