package brain

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"unicode/utf8"

	"external-brain/server/llm"
	"external-brain/server/prompt"
)

// draftSuffix 追加在目标路径之后，得到草稿文件路径（foo.py -> foo.py.draft）。
const draftSuffix = ".draft"

// DraftEditor 让专家模型按指令改写一个文件，结果写入同目录的草稿文件。
//
// 目标文件只读不写；成功时把清洗后的输出写到 <目标路径>.draft。
// 目标文件不存在或不可读时直接短路返回错误字符串，不会发起模型调用。
func (b *Brain) DraftEditor(ctx context.Context, filePath, instruction, modelAlias string, contextFiles []string) string {
	resolved := b.ResolveModel(modelAlias)

	target, err := filepath.Abs(filePath)
	if err != nil {
		target = filePath
	}
	info, err := os.Stat(target)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Sprintf("Error: Target file %s does not exist.", target)
	}

	log.Printf("[brain] editing %s with %s", target, resolved)

	data, err := os.ReadFile(target)
	if err != nil {
		return fmt.Sprintf("Error reading target file: %v", err)
	}
	if !utf8.Valid(data) {
		return fmt.Sprintf("Error reading target file: %s is not valid UTF-8 text", target)
	}
	currentContent := string(data)

	// 目标文件在 user 消息里单独呈现，这里只拼其余的参考文件。
	additionalContext := ReadContextFiles(contextFiles)

	msgs := []llm.Message{
		{Role: llm.RoleSystem, Content: prompt.DraftSystem(additionalContext)},
		{Role: llm.RoleUser, Content: prompt.DraftUser(filepath.Base(target), currentContent, instruction)},
	}

	res, err := b.client.Complete(ctx, llm.Prompt{
		Model:       resolved,
		Messages:    msgs,
		Temperature: draftTemperature,
	})
	if err != nil {
		log.Printf("[brain] draft failed model=%s network=%v err=%v", resolved, llm.IsNetworkError(err), err)
		return fmt.Sprintf("Error generating draft using %s: %v", resolved, err)
	}

	newContent := CleanCodeBlock(res.Message.Content)

	draftPath := target + draftSuffix
	if err := os.WriteFile(draftPath, []byte(newContent), 0o644); err != nil {
		return fmt.Sprintf("Error writing draft file: %v", err)
	}

	return fmt.Sprintf("Draft saved to: %s\nReview it and apply if correct.", draftPath)
}
