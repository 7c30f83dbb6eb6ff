package models

// Region is a Vietnamese macro-region tag derived from an address or
// place-of-origin string.
type Region string

const (
	RegionBac     Region = "Bac"
	RegionTrung   Region = "Trung"
	RegionNam     Region = "Nam"
	RegionUnknown Region = "Unknown"
)

// AddressInfo is the current-residence part of a recommendation result.
// Type is "thuong_tru", "tam_tru" or "unknown".
type AddressInfo struct {
	Text   string `json:"text"`
	Type   string `json:"type"`
	Region Region `json:"region"`
}

// OriginInfo is the place-of-origin part of a recommendation result.
type OriginInfo struct {
	Text   string `json:"text"`
	Region Region `json:"region"`
}

// RecommendationPackage is one recommended insurance package. Instances are
// produced only from the fixed rule table, never assembled ad hoc.
type RecommendationPackage struct {
	Name     string  `json:"name"`
	Reason   string  `json:"reason"`
	Priority float64 `json:"priority"`
}

// RecommendationResult is the region analysis plus the recommended package
// list. RecommendedPackages is either the full 3-package set or empty.
type RecommendationResult struct {
	Address             AddressInfo             `json:"address"`
	PlaceOfOrigin       OriginInfo              `json:"place_of_origin"`
	RecommendedPackages []RecommendationPackage `json:"recommended_packages"`

	Error       string `json:"error,omitempty"`
	RawResponse string `json:"raw_response,omitempty"`
}
