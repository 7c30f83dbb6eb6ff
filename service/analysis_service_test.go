package service

import (
	"context"
	"fmt"
	"testing"

	"ade-insurance-backend/models"
)

func TestAnalyzePageParsesFencedResponse(t *testing.T) {
	oracle := &fakeOracle{
		visionResponse: "```json\n{\"document_type\": \"Insurance Policy\", \"confidence\": 0.88, \"summary\": \"A policy.\", \"signature_detected\": true}\n```",
	}
	svc := NewAnalysisService(AnalysisWithOracle(oracle))

	analysis := svc.AnalyzePage(context.Background(), encodePNG(t, 100, 100), 2)

	if analysis.DocumentType != "Insurance Policy" {
		t.Errorf("DocumentType = %q", analysis.DocumentType)
	}
	if analysis.Confidence != 0.88 {
		t.Errorf("Confidence = %v", analysis.Confidence)
	}
	if analysis.PageNumber != 2 {
		t.Errorf("PageNumber = %d, want 2", analysis.PageNumber)
	}
	if !analysis.SignatureDetected {
		t.Error("SignatureDetected = false")
	}
	if analysis.Error != "" {
		t.Errorf("Error = %q, want empty", analysis.Error)
	}
	if oracle.visionCalls != 1 {
		t.Errorf("oracle called %d times, want 1", oracle.visionCalls)
	}
}

func TestAnalyzePageInvalidJSONBecomesErrorRecord(t *testing.T) {
	oracle := &fakeOracle{visionResponse: "I could not read this document, sorry."}
	svc := NewAnalysisService(AnalysisWithOracle(oracle))

	analysis := svc.AnalyzePage(context.Background(), encodePNG(t, 100, 100), 1)

	if analysis.DocumentType != "Error" {
		t.Errorf("DocumentType = %q, want Error", analysis.DocumentType)
	}
	if analysis.Error == "" {
		t.Error("Error should be set")
	}
	if analysis.RawResponse == "" {
		t.Error("RawResponse should carry the oracle text for debugging")
	}
	if analysis.PageNumber != 1 {
		t.Errorf("PageNumber = %d, want 1", analysis.PageNumber)
	}
}

func TestAnalyzePageOracleFailureBecomesErrorRecord(t *testing.T) {
	oracle := &fakeOracle{visionErr: fmt.Errorf("network down")}
	svc := NewAnalysisService(AnalysisWithOracle(oracle))

	analysis := svc.AnalyzePage(context.Background(), encodePNG(t, 100, 100), 3)

	if analysis.DocumentType != "Error" || analysis.Error == "" {
		t.Errorf("expected error record, got %+v", analysis)
	}
}

func TestExtractPersonInfoSuccess(t *testing.T) {
	oracle := &fakeOracle{
		visionResponse: `{"fullName": "Nguyễn Văn A", "placeOfOrigin": "Hà Tĩnh", "documentType": "CCCD"}`,
	}
	svc := NewAnalysisService(AnalysisWithOracle(oracle))

	person := svc.ExtractPersonInfo(context.Background(), encodePNG(t, 100, 100))

	if person.ExtractionStatus != "success" {
		t.Errorf("ExtractionStatus = %q", person.ExtractionStatus)
	}
	if person.FullName == nil || *person.FullName != "Nguyễn Văn A" {
		t.Errorf("FullName = %v", person.FullName)
	}
}

func TestExtractPersonInfoQuotaPlaceholder(t *testing.T) {
	oracle := &fakeOracle{visionErr: fmt.Errorf("generate: %w", ErrQuotaExceeded)}
	svc := NewAnalysisService(AnalysisWithOracle(oracle))

	person := svc.ExtractPersonInfo(context.Background(), encodePNG(t, 100, 100))

	if person.ExtractionStatus != "quota_exceeded" {
		t.Errorf("ExtractionStatus = %q, want quota_exceeded", person.ExtractionStatus)
	}
	if person.Nationality == nil || *person.Nationality != "Việt Nam" {
		t.Errorf("Nationality = %v, want Việt Nam", person.Nationality)
	}
	if person.DocumentType == nil || *person.DocumentType != "CCCD" {
		t.Errorf("DocumentType = %v, want CCCD", person.DocumentType)
	}
	if person.Message != quotaMessage {
		t.Errorf("Message = %q", person.Message)
	}
	if person.Error != "" {
		t.Errorf("quota degradation is not an error, got %q", person.Error)
	}
}

func TestExtractVehicleInfoQuotaPlaceholder(t *testing.T) {
	oracle := &fakeOracle{visionErr: ErrQuotaExceeded}
	svc := NewAnalysisService(AnalysisWithOracle(oracle))

	vehicle := svc.ExtractVehicleInfo(context.Background(), encodePNG(t, 100, 100))

	if vehicle.ExtractionStatus != "quota_exceeded" {
		t.Errorf("ExtractionStatus = %q", vehicle.ExtractionStatus)
	}
	if vehicle.DocumentType == nil || *vehicle.DocumentType != "Vehicle Registration" {
		t.Errorf("DocumentType = %v", vehicle.DocumentType)
	}
	if vehicle.Message != quotaMessage {
		t.Errorf("Message = %q", vehicle.Message)
	}
}

func TestRecommendInsuranceRuleTableOverridesOracle(t *testing.T) {
	// Oracle claims no packages for a central-origin customer; the
	// deterministic rule table must win.
	oracle := &fakeOracle{
		visionResponse: `{
			"address": {"text": "Cần Thơ", "type": "thuong_tru", "region": "Nam"},
			"place_of_origin": {"text": "Nghệ An", "region": "Nam"},
			"recommended_packages": []
		}`,
	}
	svc := NewAnalysisService(AnalysisWithOracle(oracle))

	result := svc.RecommendInsurance(context.Background(), encodePNG(t, 100, 100))

	if result.PlaceOfOrigin.Region != models.RegionTrung {
		t.Errorf("origin region = %v, want Trung (reclassified)", result.PlaceOfOrigin.Region)
	}
	if len(result.RecommendedPackages) != 3 {
		t.Errorf("got %d packages, want 3", len(result.RecommendedPackages))
	}
	if result.Address.Type != "thuong_tru" {
		t.Errorf("Address.Type = %q, want thuong_tru", result.Address.Type)
	}
}

func TestRecommendInsuranceOracleFailure(t *testing.T) {
	oracle := &fakeOracle{visionErr: fmt.Errorf("boom")}
	svc := NewAnalysisService(AnalysisWithOracle(oracle))

	result := svc.RecommendInsurance(context.Background(), encodePNG(t, 100, 100))

	if result.Error == "" {
		t.Error("Error should be set")
	}
	if result.PlaceOfOrigin.Region != models.RegionUnknown || result.Address.Region != models.RegionUnknown {
		t.Errorf("regions should be Unknown, got %+v", result)
	}
	if len(result.RecommendedPackages) != 0 {
		t.Errorf("no packages expected, got %v", result.RecommendedPackages)
	}
}

func TestRecommendFromPersonInfo(t *testing.T) {
	origin := "Thanh Hóa"
	address := "TP.HCM"
	svc := NewAnalysisService()

	result := svc.RecommendFromPersonInfo(models.PersonInfo{
		PlaceOfOrigin: &origin,
		Address:       &address,
	})

	if result.PlaceOfOrigin.Region != models.RegionTrung {
		t.Errorf("origin region = %v, want Trung", result.PlaceOfOrigin.Region)
	}
	if len(result.RecommendedPackages) != 3 {
		t.Errorf("got %d packages, want 3", len(result.RecommendedPackages))
	}

	empty := svc.RecommendFromPersonInfo(models.PersonInfo{})
	if len(empty.RecommendedPackages) != 0 {
		t.Errorf("nil fields should give no packages, got %v", empty.RecommendedPackages)
	}
}
