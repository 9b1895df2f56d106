package llm

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"external-brain/config"
)

// RouterClient 按模型标识的 provider 前缀路由到对应的 OpenAI 兼容端点，
// 使用官方 openai-go SDK 的 Chat Completions API 与模型交互。
// 标识格式与 litellm 一致：provider/作者/模型名，
// 例如 openrouter/zhipu/glm-4-flash、groq/moonshotai/kimi-k2-instruct-0905。
type RouterClient struct {
	entries map[string]*providerEntry
}

type providerEntry struct {
	cfg    providerConfig
	client *openai.Client
}

// NewRouterClient 从全局配置构造 RouterClient。
// 每个配置了 API Key 的 provider 对应一个长期复用的 SDK 客户端。
func NewRouterClient() *RouterClient {
	return newRouterClient(loadProviderConfigs(config.Get()))
}

func newRouterClient(configs map[string]providerConfig) *RouterClient {
	entries := make(map[string]*providerEntry, len(configs))
	for name, pc := range configs {
		c := openai.NewClient(
			option.WithAPIKey(pc.APIKey),
			option.WithBaseURL(pc.BaseURL),
			option.WithHTTPClient(newHTTPClient(pc.Timeout)),
		)
		entries[name] = &providerEntry{cfg: pc, client: &c}
	}
	return &RouterClient{entries: entries}
}

// Complete 调用 Chat Completions API 获取完整回复，只尝试一次。
func (c *RouterClient) Complete(ctx context.Context, p Prompt) (*LLMResult, error) {
	provider, model, err := splitModelID(p.Model)
	if err != nil {
		return nil, err
	}

	entry, ok := c.entries[provider]
	if !ok {
		return nil, fmt.Errorf("provider %s 未配置（缺少 API Key 或不受支持）", provider)
	}

	start := time.Now()
	logRequest(provider, model, len(p.Messages), p.Temperature)

	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(model),
		Messages:    buildMessages(p.Messages),
		Temperature: openai.Float(p.Temperature),
	}

	resp, err := entry.client.Chat.Completions.New(ctx, params)
	if err != nil {
		log.Printf("[llm] Completions API error: %v (elapsed=%s)", err, time.Since(start))
		return nil, wrapNetworkError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("Completions API returned no choices")
	}

	choice := resp.Choices[0]
	log.Printf("[llm] success provider=%s model=%s elapsed=%s", provider, model, time.Since(start))

	return &LLMResult{
		Message: LLMMessage{
			Role:    Role(choice.Message.Role),
			Content: choice.Message.Content,
		},
	}, nil
}

// splitModelID 把完整模型标识拆成 provider 和上游模型名两部分。
func splitModelID(id string) (provider, model string, err error) {
	id = strings.TrimSpace(id)
	idx := strings.Index(id, "/")
	if idx <= 0 || idx == len(id)-1 {
		return "", "", fmt.Errorf("模型标识 %q 缺少 provider 前缀（期望 provider/模型名）", id)
	}
	return strings.ToLower(id[:idx]), id[idx+1:], nil
}

// buildMessages 将内部消息列表转换为 SDK 所需的格式。
func buildMessages(msgs []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case RoleUser:
			out = append(out, openai.UserMessage(m.Content))
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			log.Printf("[llm] skip message with unknown role %q", m.Role)
		}
	}
	return out
}
