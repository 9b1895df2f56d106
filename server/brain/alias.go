package brain

import "strings"

// builtinAliases 把简短别名映射到带 provider 前缀的完整模型标识。
// key 一律小写。
var builtinAliases = map[string]string{
	"glm":              "openrouter/zhipu/glm-4-flash",
	"kimi":             "openrouter/moonshotai/kimi-k2",
	"minimax":          "openrouter/minimax/minimax-01",
	"kimi-k2":          "groq/moonshotai/kimi-k2-instruct-0905",
	"hf-minimax":       "huggingface/MiniMaxAI/MiniMax-M2.1",
	"hf-glm":           "huggingface/zai-org/GLM-4.7",
	"hf-kimi-thinking": "huggingface/moonshotai/Kimi-K2-Thinking",
	"hf-kimi":          "huggingface/moonshotai/Kimi-K2-Instruct-0905",
}

// ResolveModel 把别名解析为完整模型标识。
// 查表前会去掉首尾空白并转小写；查不到时原样返回输入，
// 这样调用方可以直接传入完整标识。该函数没有失败路径。
func (b *Brain) ResolveModel(alias string) string {
	clean := strings.ToLower(strings.TrimSpace(alias))
	if resolved, ok := b.aliases[clean]; ok {
		return resolved
	}
	return alias
}
