package brain

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// ReadContextFiles 按顺序读取一组文件，拼成一个上下文 blob。
//
// 每个文件渲染成一个片段：成功时是
// <file path='绝对路径'>\n内容\n</file>，
// 失败时是 <error file='路径'>原因</error>，片段之间以空行分隔。
// 单个文件的任何失败都不会中断整批处理；
// 总长度超过 MaxTotalChars 时追加一条截断片段并停止，后续路径直接丢弃。
func ReadContextFiles(paths []string) string {
	var parts []string
	total := 0

	for _, raw := range paths {
		res := readContextFile(raw, total)
		if res.fragment != "" {
			parts = append(parts, res.fragment)
		}
		total += res.charge
		if res.stop {
			break
		}
	}

	return strings.Join(parts, "\n\n")
}

// contextResult 是单个路径的处理结果。
// charge 只在成功片段上非零：错误片段不计入总长度。
type contextResult struct {
	fragment string
	charge   int
	stop     bool
}

func readContextFile(raw string, total int) contextResult {
	abs, err := filepath.Abs(raw)
	if err != nil {
		return contextResult{fragment: errorFragment(raw, err.Error())}
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[brain] 上下文文件不存在，跳过: %s", abs)
			return contextResult{}
		}
		return contextResult{fragment: errorFragment(raw, err.Error())}
	}
	if !info.Mode().IsRegular() {
		return contextResult{}
	}

	// 二进制快速探测：前 1KB 内出现 NUL 即认为是二进制。
	binary, err := probeBinary(abs)
	if err != nil {
		return contextResult{fragment: errorFragment(raw, err.Error())}
	}
	if binary {
		log.Printf("[brain] 跳过二进制文件: %s", abs)
		return contextResult{fragment: errorFragment(abs, "Skipped binary file")}
	}

	if info.Size() > MaxFileSizeBytes {
		return contextResult{fragment: errorFragment(abs, "File too large (exceeds 512KB)")}
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return contextResult{fragment: errorFragment(raw, err.Error())}
	}
	// 非法 UTF-8 用替换符兜底，而不是报错。
	content := strings.ToValidUTF8(string(data), "�")

	frag := fileFragment(abs, content)
	if total+len(frag) > MaxTotalChars {
		return contextResult{
			fragment: errorFragment(abs, "Context limit reached. File truncated."),
			stop:     true,
		}
	}
	return contextResult{fragment: frag, charge: len(frag)}
}

func fileFragment(path, content string) string {
	return fmt.Sprintf("<file path='%s'>\n%s\n</file>", path, content)
}

func errorFragment(path, reason string) string {
	return fmt.Sprintf("<error file='%s'>%s</error>", path, reason)
}

// probeBinary 读取文件开头至多 1024 字节，检查是否含有 NUL 字节。
func probeBinary(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf := make([]byte, 1024)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return false, err
	}
	return bytes.IndexByte(buf[:n], 0) >= 0, nil
}
