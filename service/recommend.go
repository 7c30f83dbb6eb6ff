package service

import (
	"fmt"

	"ade-insurance-backend/models"
)

// Fixed reason templates. The %s slot carries the region code (Bac/Trung)
// exactly as classified; the strings are constants of the rule table and
// must not be regenerated per call.
const (
	originFloodReason  = "Quê quán tại miền %s thường xuyên chịu ảnh hưởng bởi bão và mưa lũ. Gói bảo hiểm này bảo vệ tài sản khỏi thiệt hại do ngập lụt, lũ quét."
	addressFloodReason = "Địa chỉ thường trú tại miền %s thường xuyên chịu ảnh hưởng bởi bão và mưa lũ. Gói bảo hiểm này bảo vệ tài sản khỏi thiệt hại do ngập lụt, lũ quét."
	stormHomeReason    = "Bão và gió mạnh thường xảy ra tại miền %s, gây hư hại cho mái nhà, cửa sổ, tường. Gói này đảm bảo chi phí sửa chữa hoặc xây dựng lại."
	vehicleReason      = "Xe máy, ô tô dễ bị ngập nước khi mưa lớn hoặc lũ lụt. Gói này giúp bồi thường chi phí sửa chữa động cơ, hệ thống điện bị hư hỏng do nước."
)

func disasterPackages(floodReason string, region models.Region) []models.RecommendationPackage {
	return []models.RecommendationPackage{
		{Name: "Bảo hiểm thiên tai ngập lụt", Reason: fmt.Sprintf(floodReason, region), Priority: 0.95},
		{Name: "Bảo hiểm nhà cửa trước bão", Reason: fmt.Sprintf(stormHomeReason, region), Priority: 0.90},
		{Name: "Bảo hiểm phương tiện ngập nước", Reason: vehicleReason, Priority: 0.85},
	}
}

// Recommend applies the region rule table: place of origin is decisive when
// it is north or central; otherwise the residential address decides. Two
// southern (or two unknown) signals produce no recommendation — the result
// is always either the full three-package set or empty.
func Recommend(origin models.OriginInfo, address models.AddressInfo) []models.RecommendationPackage {
	switch origin.Region {
	case models.RegionBac, models.RegionTrung:
		return disasterPackages(originFloodReason, origin.Region)
	}
	switch address.Region {
	case models.RegionBac, models.RegionTrung:
		return disasterPackages(addressFloodReason, address.Region)
	}
	return []models.RecommendationPackage{}
}

// RecommendFromTexts classifies both inputs and runs the rule table. The
// address is treated as a permanent residence when non-empty.
func RecommendFromTexts(originText, addressText string) models.RecommendationResult {
	origin := models.OriginInfo{
		Text:   originText,
		Region: ClassifyRegion(originText),
	}
	addrType := "unknown"
	if addressText != "" {
		addrType = "thuong_tru"
	}
	address := models.AddressInfo{
		Text:   addressText,
		Type:   addrType,
		Region: ClassifyRegion(addressText),
	}
	return models.RecommendationResult{
		Address:             address,
		PlaceOfOrigin:       origin,
		RecommendedPackages: Recommend(origin, address),
	}
}
