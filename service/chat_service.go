package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"ade-insurance-backend/models"
)

// ChatService answers insurance questions with the oracle, optionally
// grounded on a customer's recommendation result. Sensitive identity
// fields never enter the prompt: only the region and package names do.
type ChatService struct {
	oracle Oracle
}

// ChatServiceOption is a functional option for ChatService
type ChatServiceOption func(*ChatService)

// ChatWithOracle sets the conversation oracle
func ChatWithOracle(oracle Oracle) ChatServiceOption {
	return func(s *ChatService) {
		s.oracle = oracle
	}
}

// NewChatService creates a new chat service
func NewChatService(opts ...ChatServiceOption) *ChatService {
	s := &ChatService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

const chatFallbackReply = "Xin lỗi, tôi đang gặp sự cố kỹ thuật. Bạn có thể thử lại hoặc liên hệ hotline 1900-xxxx để được tư vấn trực tiếp."

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest carries the user's question plus optional context.
type ChatRequest struct {
	Message        string
	Recommendation *models.RecommendationResult
	History        []ChatMessage
}

// ChatResult is the advisor's reply.
type ChatResult struct {
	Reply      string  `json:"reply"`
	HasContext bool    `json:"has_context"`
	Region     *string `json:"region,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// Chat builds the advisor prompt and asks the oracle. Oracle failures
// degrade to a fixed apology reply rather than an error, so the chat UI
// never breaks.
func (s *ChatService) Chat(ctx context.Context, req ChatRequest) ChatResult {
	region := "chưa xác định"
	var contextBlock string

	if req.Recommendation != nil {
		rec := req.Recommendation
		if rec.PlaceOfOrigin.Region != "" {
			region = string(rec.PlaceOfOrigin.Region)
		} else if rec.Address.Region != "" {
			region = string(rec.Address.Region)
		}

		if region != "chưa xác định" && region != string(models.RegionUnknown) {
			var sb strings.Builder
			sb.WriteString("\n📍 THÔNG TIN KHÁCH HÀNG (CHỈ SỬ DỤNG NỘI BỘ - KHÔNG TIẾT LỘ):\n")
			fmt.Fprintf(&sb, "- Vùng miền: %s\n", region)
			if len(rec.RecommendedPackages) > 0 {
				sb.WriteString("- Gói bảo hiểm được đề xuất:\n")
				for i, pkg := range rec.RecommendedPackages {
					if i >= 3 {
						break
					}
					fmt.Fprintf(&sb, "  • %s: %s\n", pkg.Name, pkg.Reason)
				}
			}
			sb.WriteString("\n💡 Hãy tư vấn dựa trên thông tin này (KHÔNG NÊU RA SỐ GIẤY TỜ)")
			contextBlock = sb.String()
		}
	}

	var historyBlock string
	if len(req.History) > 0 {
		var sb strings.Builder
		sb.WriteString("\n📜 LỊCH SỬ HỘI THOẠI GẦN ĐÂY:\n")
		history := req.History
		if len(history) > 5 {
			history = history[len(history)-5:]
		}
		for _, msg := range history {
			role := "AI"
			if msg.Role == "user" {
				role = "Khách hàng"
			}
			fmt.Fprintf(&sb, "%s: %s\n", role, msg.Content)
		}
		historyBlock = sb.String()
	}

	prompt := promptInsuranceChat + contextBlock + historyBlock + "\n\nCâu hỏi: " + req.Message

	reply, err := s.oracle.GenerateText(ctx, prompt, chatSettings)
	if err != nil {
		log.Printf("chat oracle call failed: %v", err)
		return ChatResult{
			Reply:      chatFallbackReply,
			HasContext: false,
			Error:      err.Error(),
		}
	}

	result := ChatResult{
		Reply:      strings.TrimSpace(reply),
		HasContext: req.Recommendation != nil,
	}
	if req.Recommendation != nil {
		result.Region = &region
	}
	return result
}
