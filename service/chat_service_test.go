package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"ade-insurance-backend/models"
)

func TestChatPlainQuestion(t *testing.T) {
	oracle := &fakeOracle{textResponse: "  Chào bạn! Tôi có thể giúp gì? \n"}
	svc := NewChatService(ChatWithOracle(oracle))

	result := svc.Chat(context.Background(), ChatRequest{Message: "Bảo hiểm xe máy giá bao nhiêu?"})

	if result.Reply != "Chào bạn! Tôi có thể giúp gì?" {
		t.Errorf("Reply = %q", result.Reply)
	}
	if result.HasContext {
		t.Error("HasContext = true without recommendation")
	}
	if result.Region != nil {
		t.Errorf("Region = %v, want nil", *result.Region)
	}
	if !strings.Contains(oracle.lastPrompt, "Bảo hiểm xe máy giá bao nhiêu?") {
		t.Error("user question missing from prompt")
	}
}

func TestChatInjectsRegionContext(t *testing.T) {
	oracle := &fakeOracle{textResponse: "ok"}
	svc := NewChatService(ChatWithOracle(oracle))

	rec := models.RecommendationResult{
		PlaceOfOrigin: models.OriginInfo{Text: "Nghệ An", Region: models.RegionTrung},
		Address:       models.AddressInfo{Text: "TP.HCM", Region: models.RegionNam, Type: "thuong_tru"},
		RecommendedPackages: []models.RecommendationPackage{
			{Name: "Bảo hiểm thiên tai ngập lụt", Reason: "vùng bão lũ", Priority: 0.95},
		},
	}
	result := svc.Chat(context.Background(), ChatRequest{
		Message:        "Tôi nên mua gói nào?",
		Recommendation: &rec,
	})

	if !result.HasContext {
		t.Error("HasContext = false")
	}
	if result.Region == nil || *result.Region != "Trung" {
		t.Errorf("Region = %v, want Trung", result.Region)
	}
	if !strings.Contains(oracle.lastPrompt, "Vùng miền: Trung") {
		t.Error("region missing from prompt context")
	}
	if !strings.Contains(oracle.lastPrompt, "Bảo hiểm thiên tai ngập lụt") {
		t.Error("recommended package missing from prompt context")
	}
	// Raw address must never reach the prompt.
	if strings.Contains(oracle.lastPrompt, "TP.HCM") {
		t.Error("raw address leaked into prompt")
	}
}

func TestChatHistoryTruncatedToFive(t *testing.T) {
	oracle := &fakeOracle{textResponse: "ok"}
	svc := NewChatService(ChatWithOracle(oracle))

	var history []ChatMessage
	for i := 1; i <= 8; i++ {
		history = append(history, ChatMessage{Role: "user", Content: fmt.Sprintf("msg-%d", i)})
	}
	svc.Chat(context.Background(), ChatRequest{Message: "q", History: history})

	if strings.Contains(oracle.lastPrompt, "msg-3") {
		t.Error("history older than five turns should be dropped")
	}
	if !strings.Contains(oracle.lastPrompt, "msg-4") || !strings.Contains(oracle.lastPrompt, "msg-8") {
		t.Error("last five history turns should be kept")
	}
}

func TestChatOracleFailureFallsBack(t *testing.T) {
	oracle := &fakeOracle{textErr: fmt.Errorf("unavailable")}
	svc := NewChatService(ChatWithOracle(oracle))

	result := svc.Chat(context.Background(), ChatRequest{Message: "hi"})

	if result.Reply != chatFallbackReply {
		t.Errorf("Reply = %q, want fallback", result.Reply)
	}
	if result.Error == "" {
		t.Error("Error should carry the cause")
	}
	if result.HasContext {
		t.Error("HasContext should be false on failure")
	}
}
