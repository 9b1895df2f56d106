package llm

import "context"

// ===== 对话与模型调用的通用类型（供 server 与 brain 共同使用） =====

// Role 表示对话中一条消息的身份。
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message 是对话的一条消息，类似 OpenAI 的 chat message。
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Prompt 对应一次调用的完整输入。
// Model 是带 provider 前缀的完整模型标识（如 groq/moonshotai/kimi-k2-instruct-0905），
// Temperature 由调用方按用途指定（问答 0.2、改写 0.1）。
type Prompt struct {
	Model       string
	Messages    []Message
	Temperature float64
}

// LLMMessage 表示一次完整调用返回的一条 assistant 消息。
type LLMMessage struct {
	Role    Role
	Content string
}

// LLMResult 是 Complete 返回的结构化结果。
type LLMResult struct {
	Message LLMMessage
}

// LLMClient 抽象一个“模型客户端”：
//   - Complete 执行一次完整调用，不做任何重试；
//   - 失败以 error 返回，由上层决定如何呈现给调用方。
type LLMClient interface {
	Complete(ctx context.Context, p Prompt) (*LLMResult, error)
}
