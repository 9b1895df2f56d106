package llm

import (
	"strings"
	"time"

	"external-brain/config"
)

const (
	defaultTimeout = 300 * time.Second

	defaultOpenRouterBaseURL  = "https://openrouter.ai/api/v1"
	defaultGroqBaseURL        = "https://api.groq.com/openai/v1"
	defaultHuggingFaceBaseURL = "https://router.huggingface.co/v1"

	ProviderOpenRouter  = "openrouter"
	ProviderGroq        = "groq"
	ProviderHuggingFace = "huggingface"
)

// providerConfig 描述一个 OpenAI 兼容的上游 provider。
type providerConfig struct {
	Name    string
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// loadProviderConfigs 从全局配置构造各 provider 的连接参数。
// 没有配置 API Key 的 provider 不会出现在结果中，
// 调用时命中缺失的 provider 会得到明确的错误。
func loadProviderConfigs(env *config.Config) map[string]providerConfig {
	out := make(map[string]providerConfig)

	if env.OpenRouterAPIKey != "" {
		out[ProviderOpenRouter] = providerConfig{
			Name:    ProviderOpenRouter,
			BaseURL: baseURLOrDefault(env.OpenRouterBaseURL, defaultOpenRouterBaseURL),
			APIKey:  env.OpenRouterAPIKey,
			Timeout: defaultTimeout,
		}
	}
	if env.GroqAPIKey != "" {
		out[ProviderGroq] = providerConfig{
			Name:    ProviderGroq,
			BaseURL: baseURLOrDefault(env.GroqBaseURL, defaultGroqBaseURL),
			APIKey:  env.GroqAPIKey,
			Timeout: defaultTimeout,
		}
	}
	if env.HuggingFaceAPIKey != "" {
		out[ProviderHuggingFace] = providerConfig{
			Name:    ProviderHuggingFace,
			BaseURL: baseURLOrDefault(env.HuggingFaceBase, defaultHuggingFaceBaseURL),
			APIKey:  env.HuggingFaceAPIKey,
			Timeout: defaultTimeout,
		}
	}

	return out
}

func baseURLOrDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}
