// Package brain 实现 External Brain 的核心逻辑：
// 别名解析、上下文拼装、模型调度以及草稿改写。
// MCP 传输层在 server 包中，模型调用在 server/llm 包中，
// 本包只负责把两者之间的字符串加工串起来。
package brain

import (
	"strings"

	"external-brain/server/llm"
)

// 安全限制与默认值。这些都是进程级静态配置，运行期不会变化。
const (
	// MaxFileSizeBytes 单个上下文文件的字节数上限（512KB）。
	MaxFileSizeBytes = 512 * 1024
	// MaxTotalChars 上下文 blob 的总字符数上限（约 10 万 token）。
	MaxTotalChars = 400000

	// DefaultModelAlias 未指定模型时使用的别名。
	DefaultModelAlias = "kimi-k2"

	// 问答用较低的采样温度，改写用更低的温度保证贴合指令。
	askTemperature   = 0.2
	draftTemperature = 0.1
)

// DefaultExperts 是 compare_experts 未指定专家列表时的默认组合。
var DefaultExperts = []string{"kimi-k2", "hf-glm"}

// Brain 持有模型客户端和别名表。构造之后只读，可被并发调用。
type Brain struct {
	client  llm.LLMClient
	aliases map[string]string
}

// New 构造 Brain。extraAliases 来自用户配置文件，会覆盖同名的内置别名；
// key 在合并时统一转为小写。
func New(client llm.LLMClient, extraAliases map[string]string) *Brain {
	aliases := make(map[string]string, len(builtinAliases)+len(extraAliases))
	for k, v := range builtinAliases {
		aliases[k] = v
	}
	for k, v := range extraAliases {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || strings.TrimSpace(v) == "" {
			continue
		}
		aliases[k] = strings.TrimSpace(v)
	}
	return &Brain{client: client, aliases: aliases}
}
