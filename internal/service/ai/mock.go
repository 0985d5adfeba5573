package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/zhouzirui/travel-policy/backend/internal/model/policy"
	"github.com/zhouzirui/travel-policy/backend/internal/model/quiz"
)

// MockGateway is an offline Gateway with canned policy answers, used for
// local development (AI_PROVIDER=mock) and tests.
type MockGateway struct{}

// NewMockGateway creates a new mock gateway.
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

// Ensure implementations satisfy Gateway.
var (
	_ Gateway = (*MockGateway)(nil)
	_ Gateway = (*GeminiGateway)(nil)
	_ Gateway = (*ArkGateway)(nil)
)

type mockSession struct{ id string }

func (s *mockSession) ID() string { return s.id }

// CreateChatSession returns a fresh handle.
func (m *MockGateway) CreateChatSession(_ context.Context, _ string) (Session, error) {
	return &mockSession{id: "mock-" + uuid.NewString()}, nil
}

// SendChatTurn answers from a small keyword table.
func (m *MockGateway) SendChatTurn(ctx context.Context, session Session, text string) (string, error) {
	if s, ok := session.(*mockSession); !ok || s == nil {
		return "", ErrSessionUninitialized
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return mockAnswer(text) + policy.Disclaimer, nil
}

// GenerateQuiz returns the fixed question bank.
func (m *MockGateway) GenerateQuiz(ctx context.Context) ([]quiz.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuizGeneration, err)
	}
	return MockQuestions(), nil
}

func mockAnswer(text string) string {
	switch {
	case strings.Contains(text, "住宿"):
		return "每晚住宿費上限為新台幣 2000 元，須檢據核實報支；當日往返者不得報支住宿費。"
	case strings.Contains(text, "林口"):
		return "林口廠出差應由板橋高鐵站搭車，計程車費定額 410 元；若改由台北站搭車，須扣除 40 元票價差額。"
	case strings.Contains(text, "麥寮"):
		return "麥寮廠出差應優先搭乘交通車並入住招待所；客滿經確認者，始得報支計程車費或外部旅館住宿費。"
	case strings.Contains(text, "膳") || strings.Contains(text, "餐"):
		return "出差全日者每日膳雜費 500 元；未滿 4 小時者不得報支，主辦單位供餐者每餐扣減 100 元。"
	case strings.Contains(text, "手冊") || strings.Contains(text, "影片"):
		return fmt.Sprintf("請參考[操作手冊下載點](%s)或[影片觀賞](%s)。", policy.ManualURL, policy.VideoURL)
	default:
		return "出差結束後請於 10 個工作天內於系統提出申請。"
	}
}

// MockQuestions returns quiz.QuestionCount well-formed questions.
func MockQuestions() []quiz.Question {
	bank := []quiz.Question{
		{Question: "每晚住宿費的報支上限是多少？", Options: []string{"1500 元", "2000 元", "2500 元", "3000 元"}, Answer: "2000 元", Explanation: "每晚住宿費上限新台幣 2000 元，檢據核實報支。"},
		{Question: "林口廠出差應由哪個高鐵站搭車？", Options: []string{"台北站", "板橋站", "桃園站", "南港站"}, Answer: "板橋站", Explanation: "林口廠出差應由距離最近的板橋高鐵站搭車。"},
		{Question: "林口廠至板橋高鐵站的計程車費如何報支？", Options: []string{"實支實付", "定額 410 元", "定額 300 元", "不得報支"}, Answer: "定額 410 元", Explanation: "林口廠至板橋高鐵站計程車費以 410 元定額報支。"},
		{Question: "林口廠出差改由台北站搭車，高鐵票價須扣除多少？", Options: []string{"20 元", "40 元", "60 元", "不需扣除"}, Answer: "40 元", Explanation: "須扣除台北至板橋的票價差額 40 元。"},
		{Question: "麥寮廠出差何時可以報支計程車費？", Options: []string{"任何時候", "交通車客滿經確認者", "下雨時", "攜帶行李時"}, Answer: "交通車客滿經確認者", Explanation: "應優先搭乘交通車，客滿經確認者始得報支計程車費。"},
		{Question: "麥寮廠出差應優先入住哪裡？", Options: []string{"外部旅館", "廠區招待所", "同事家", "任意地點"}, Answer: "廠區招待所", Explanation: "應優先入住廠區招待所，客滿經確認者始得入住外部旅館。"},
		{Question: "當日往返的出差可以報支住宿費嗎？", Options: []string{"可以", "不可以", "主管同意即可", "限 1000 元"}, Answer: "不可以", Explanation: "當日往返者不得報支住宿費。"},
		{Question: "出差全日者每日膳雜費為多少？", Options: []string{"300 元", "400 元", "500 元", "600 元"}, Answer: "500 元", Explanation: "出差全日者每日膳雜費新台幣 500 元。"},
		{Question: "主辦單位提供餐點時，每餐扣減多少膳雜費？", Options: []string{"50 元", "100 元", "150 元", "不扣減"}, Answer: "100 元", Explanation: "由主辦單位提供餐點者，每餐扣減 100 元。"},
		{Question: "出差結束後應於多久內提出報支？", Options: []string{"5 個工作天", "10 個工作天", "30 天", "無期限"}, Answer: "10 個工作天", Explanation: "出差結束後 10 個工作天內於系統提出申請。"},
	}

	questions := make([]quiz.Question, len(bank))
	for i, q := range bank {
		questions[i] = q.Clone()
	}
	return questions
}
