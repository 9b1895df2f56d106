package llm

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"external-brain/config"
)

// InitLogger 初始化日志输出位置。
//
// 服务器通过 stdout 与宿主进行 MCP 通信，因此日志绝不能写到 stdout。
// 默认行为：为每次会话生成一个 SessionID，并把日志写到
// ~/.external-brain/logs/external-brain-<SessionID>.log；
// 如需覆盖默认路径，可通过环境变量 EXTERNAL_BRAIN_LOG_FILE 指定完整文件名。
// 日志文件不可用时退回 stderr。
//
// 注意：这里使用标准库 log 作为输出后端，log.SetOutput 是进程级别的，
// 本服务器按单会话模式运行，因此该行为是可以接受的。
func InitLogger() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)

	path := resolveLogFilePath()
	if path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Printf("[llm] 创建日志目录失败: %v", err)
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Printf("[llm] 打开日志文件失败: %v", err)
		return
	}
	log.SetOutput(f)
	log.Printf("[llm] 使用日志文件: %s", path)
}

// resolveLogFilePath 计算日志输出路径。
func resolveLogFilePath() string {
	path := config.Get().LogFile
	if path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".external-brain", "logs", fmt.Sprintf("external-brain-%s.log", newSessionID()))
}

// newSessionID 生成用于日志文件的会话标识。
func newSessionID() string {
	now := time.Now()
	datePart := now.Format("20060102-150405")
	rnd := rand.New(rand.NewSource(now.UnixNano()))
	return fmt.Sprintf("%s-%04d", datePart, rnd.Intn(10000))
}
