package brain

import (
	"context"
	"fmt"
	"log"
	"strings"

	"external-brain/server/llm"
	"external-brain/server/prompt"
)

// AskExpert 向外部专家模型发起一次问答调用。
//
// modelAlias 先经过别名解析；contextFiles 拼成上下文 blob 后
// 作为 system 消息放在用户提问之前（blob 为空则不发 system 消息）。
// 只尝试一次，任何失败都格式化成字符串返回，绝不向调用方抛错。
func (b *Brain) AskExpert(ctx context.Context, question, modelAlias string, contextFiles []string) string {
	resolved := b.ResolveModel(modelAlias)
	log.Printf("[brain] model: %s", resolved)

	contextBlob := ReadContextFiles(contextFiles)

	var msgs []llm.Message
	if contextBlob != "" {
		msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: prompt.AskSystem(contextBlob)})
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: question})

	res, err := b.client.Complete(ctx, llm.Prompt{
		Model:       resolved,
		Messages:    msgs,
		Temperature: askTemperature,
	})
	if err != nil {
		log.Printf("[brain] dispatch failed model=%s network=%v err=%v", resolved, llm.IsNetworkError(err), err)
		return fmt.Sprintf("Error using %s: %v", resolved, err)
	}
	return res.Message.Content
}

// CompareExperts 依次向多个专家发起同一个问题，并把结果拼成对比报告。
//
// 串行执行；每个专家的失败都被 AskExpert 隔离在各自的小节里，
// 不影响后续专家。experts 为空时使用 DefaultExperts。
func (b *Brain) CompareExperts(ctx context.Context, question string, contextFiles, experts []string) string {
	if len(experts) == 0 {
		experts = DefaultExperts
	}

	results := make([]string, 0, len(experts))
	for _, alias := range experts {
		res := b.AskExpert(ctx, question, alias, contextFiles)
		results = append(results, fmt.Sprintf("## Expert: %s\n\n%s\n", strings.ToUpper(alias), res))
	}

	return strings.Join(results, "\n---")
}
