package brain

import "strings"

// CleanCodeBlock 去掉模型输出首尾的 markdown 代码围栏。
//
// 以 ``` 开头时丢掉第一行（可能带语言标记），
// 若结尾仍是 ``` 再丢掉结尾围栏，最后去掉首尾空白。
// 对已经干净的输入是幂等的。
func CleanCodeBlock(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		if idx := strings.Index(content, "\n"); idx != -1 {
			content = content[idx+1:]
		}
		if strings.HasSuffix(content, "```") {
			content = content[:len(content)-3]
		}
	}
	return strings.TrimSpace(content)
}
