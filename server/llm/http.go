package llm

import (
	"log"
	"net/http"
	"time"
)

// logRequest 记录发送请求的摘要。完整的消息内容可能包含大量文件上下文，
// 这里只记录规模信息，避免把日志文件撑爆。
func logRequest(provider, model string, messages int, temperature float64) {
	log.Printf("[llm] request provider=%s model=%s messages=%d temperature=%.2f", provider, model, messages, temperature)
}

// newHTTPClient 构造带超时的 HTTP 客户端。
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
