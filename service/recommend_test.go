package service

import (
	"strings"
	"testing"

	"ade-insurance-backend/models"
)

func TestRecommendFromTextsScenarios(t *testing.T) {
	tests := []struct {
		name         string
		origin       string
		address      string
		wantPackages int
		wantRegion   models.Region // region named in reasons, when packages exist
	}{
		{
			name:         "central origin recommends regardless of address",
			origin:       "Hà Tĩnh",
			address:      "Cần Thơ",
			wantPackages: 3,
			wantRegion:   models.RegionTrung,
		},
		{
			name:         "southern origin with northern address recommends",
			origin:       "TP.HCM",
			address:      "Hà Nội",
			wantPackages: 3,
			wantRegion:   models.RegionBac,
		},
		{
			name:         "both southern gives nothing",
			origin:       "TP.HCM",
			address:      "Cần Thơ",
			wantPackages: 0,
		},
		{
			name:         "unknown origin falls back to address",
			origin:       "",
			address:      "Nghệ An",
			wantPackages: 3,
			wantRegion:   models.RegionTrung,
		},
		{
			name:         "both unknown gives nothing",
			origin:       "",
			address:      "",
			wantPackages: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RecommendFromTexts(tt.origin, tt.address)

			if len(result.RecommendedPackages) != tt.wantPackages {
				t.Fatalf("got %d packages, want %d", len(result.RecommendedPackages), tt.wantPackages)
			}
			if tt.wantPackages == 0 {
				return
			}

			wantNames := []string{
				"Bảo hiểm thiên tai ngập lụt",
				"Bảo hiểm nhà cửa trước bão",
				"Bảo hiểm phương tiện ngập nước",
			}
			wantPriorities := []float64{0.95, 0.90, 0.85}
			for i, pkg := range result.RecommendedPackages {
				if pkg.Name != wantNames[i] {
					t.Errorf("package %d name = %q, want %q", i, pkg.Name, wantNames[i])
				}
				if pkg.Priority != wantPriorities[i] {
					t.Errorf("package %d priority = %v, want %v", i, pkg.Priority, wantPriorities[i])
				}
			}
			for _, pkg := range result.RecommendedPackages[:2] {
				if !strings.Contains(pkg.Reason, string(tt.wantRegion)) {
					t.Errorf("reason %q should name region %s", pkg.Reason, tt.wantRegion)
				}
			}
		})
	}
}

func TestRecommendFromTextsResultFields(t *testing.T) {
	result := RecommendFromTexts("Hà Tĩnh", "Hà Nội")

	if result.PlaceOfOrigin.Text != "Hà Tĩnh" || result.PlaceOfOrigin.Region != models.RegionTrung {
		t.Errorf("PlaceOfOrigin = %+v", result.PlaceOfOrigin)
	}
	if result.Address.Text != "Hà Nội" || result.Address.Region != models.RegionBac {
		t.Errorf("Address = %+v", result.Address)
	}
	if result.Address.Type != "thuong_tru" {
		t.Errorf("Address.Type = %q, want thuong_tru", result.Address.Type)
	}

	empty := RecommendFromTexts("", "")
	if empty.Address.Type != "unknown" {
		t.Errorf("empty address Type = %q, want unknown", empty.Address.Type)
	}
}

func TestRecommendOriginReasonsDifferFromAddressReasons(t *testing.T) {
	byOrigin := RecommendFromTexts("Nghệ An", "")
	byAddress := RecommendFromTexts("", "Nghệ An")

	if !strings.HasPrefix(byOrigin.RecommendedPackages[0].Reason, "Quê quán tại miền Trung") {
		t.Errorf("origin-driven reason = %q", byOrigin.RecommendedPackages[0].Reason)
	}
	if !strings.HasPrefix(byAddress.RecommendedPackages[0].Reason, "Địa chỉ thường trú tại miền Trung") {
		t.Errorf("address-driven reason = %q", byAddress.RecommendedPackages[0].Reason)
	}
}
