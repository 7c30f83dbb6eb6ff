package service

import (
	"strings"

	"ade-insurance-backend/models"
)

// Province and city names grouped by region. Matching is substring-based
// against the full address text. North and central carry full province
// tables; south is a deliberately small keyword fallback, so southern
// provinces outside it (Cà Mau, Tây Ninh, ...) classify Unknown.
var (
	northProvinces = []string{
		"Hà Nội", "Hải Phòng", "Quảng Ninh", "Hải Dương", "Hưng Yên",
		"Bắc Ninh", "Vĩnh Phúc", "Phú Thọ", "Thái Nguyên", "Bắc Giang",
		"Lạng Sơn", "Cao Bằng", "Lào Cai", "Yên Bái", "Tuyên Quang",
		"Hòa Bình", "Sơn La", "Lai Châu", "Điện Biên", "Hà Giang",
		"Ninh Bình", "Nam Định", "Thái Bình",
	}
	centralProvinces = []string{
		"Thanh Hóa", "Nghệ An", "Hà Tĩnh", "Quảng Bình", "Quảng Trị",
		"Thừa Thiên Huế", "Đà Nẵng", "Quảng Nam", "Quảng Ngãi",
		"Bình Định", "Phú Yên", "Khánh Hòa", "Ninh Thuận", "Bình Thuận",
		"Kon Tum", "Gia Lai", "Đắk Lắk", "Đắk Nông", "Lâm Đồng",
	}
	southKeywords = []string{
		"sài gòn", "tp.hcm", "hồ chí minh", "đồng nai", "bình dương",
		"long an", "tiền giang", "cần thơ", "an giang",
	}
)

// ClassifyRegion maps a free-text Vietnamese address or place of origin to
// a region. The north table is checked first, then central, then south;
// the first table with a match wins. Empty or unmatched text is Unknown.
func ClassifyRegion(text string) models.Region {
	if strings.TrimSpace(text) == "" {
		return models.RegionUnknown
	}
	lower := strings.ToLower(text)
	for _, p := range northProvinces {
		if strings.Contains(lower, strings.ToLower(p)) {
			return models.RegionBac
		}
	}
	for _, p := range centralProvinces {
		if strings.Contains(lower, strings.ToLower(p)) {
			return models.RegionTrung
		}
	}
	for _, kw := range southKeywords {
		if strings.Contains(lower, kw) {
			return models.RegionNam
		}
	}
	return models.RegionUnknown
}
