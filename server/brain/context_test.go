package brain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestReadContextFiles_Empty(t *testing.T) {
	if got := ReadContextFiles(nil); got != "" {
		t.Fatalf("empty input should yield empty blob, got %q", got)
	}
	if got := ReadContextFiles([]string{}); got != "" {
		t.Fatalf("empty slice should yield empty blob, got %q", got)
	}
}

func TestReadContextFiles_MissingFileSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.go")
	if got := ReadContextFiles([]string{path}); got != "" {
		t.Fatalf("missing file should produce no fragment, got %q", got)
	}
}

func TestReadContextFiles_DirectorySkipped(t *testing.T) {
	if got := ReadContextFiles([]string{t.TempDir()}); got != "" {
		t.Fatalf("directory should be skipped silently, got %q", got)
	}
}

func TestReadContextFiles_WrapsContent(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "a.go", "package a\n")

	abs, _ := filepath.Abs(path)
	want := fmt.Sprintf("<file path='%s'>\npackage a\n\n</file>", abs)
	if got := ReadContextFiles([]string{path}); got != want {
		t.Fatalf("unexpected blob:\n got: %q\nwant: %q", got, want)
	}
}

func TestReadContextFiles_OrderAndSeparator(t *testing.T) {
	dir := t.TempDir()
	p1 := writeTempFile(t, dir, "a.txt", "first")
	p2 := writeTempFile(t, dir, "b.txt", "second")

	blob := ReadContextFiles([]string{p1, p2})
	i1 := strings.Index(blob, "first")
	i2 := strings.Index(blob, "second")
	if i1 < 0 || i2 < 0 || i1 > i2 {
		t.Fatalf("fragments out of order: %q", blob)
	}
	if !strings.Contains(blob, "</file>\n\n<file") {
		t.Fatalf("fragments should be joined by a blank line: %q", blob)
	}
}

func TestReadContextFiles_BinarySkipped(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "bin.dat", "GIF89a\x00\x01\x02payload")

	blob := ReadContextFiles([]string{path})
	if !strings.Contains(blob, "Skipped binary file") {
		t.Fatalf("expect binary error fragment, got %q", blob)
	}
	if strings.Contains(blob, "payload") {
		t.Fatalf("binary content must not leak into blob: %q", blob)
	}
	if !strings.Contains(blob, "<error file='") {
		t.Fatalf("expect error markup, got %q", blob)
	}
}

func TestReadContextFiles_FileTooLarge(t *testing.T) {
	dir := t.TempDir()
	big := strings.Repeat("x", MaxFileSizeBytes+1)
	path := writeTempFile(t, dir, "big.txt", big)

	blob := ReadContextFiles([]string{path})
	if !strings.Contains(blob, "File too large (exceeds 512KB)") {
		t.Fatalf("expect size error fragment, got %q", blob)
	}
	if strings.Contains(blob, "xxxx") {
		t.Fatalf("oversized content must not be read into blob")
	}
}

func TestReadContextFiles_AggregateCeiling(t *testing.T) {
	dir := t.TempDir()
	p1 := writeTempFile(t, dir, "one.txt", strings.Repeat("a", 399000))
	p2 := writeTempFile(t, dir, "two.txt", strings.Repeat("b", 2000))
	p3 := writeTempFile(t, dir, "three.txt", "ccc-marker")

	blob := ReadContextFiles([]string{p1, p2, p3})

	if !strings.Contains(blob, "Context limit reached. File truncated.") {
		t.Fatalf("expect truncation fragment")
	}
	if strings.Contains(blob, "bbbb") {
		t.Fatalf("content beyond the ceiling must be omitted")
	}
	// 截断后剩余路径被静默丢弃：既无内容也无片段
	if strings.Contains(blob, "ccc-marker") || strings.Contains(blob, "three.txt") {
		t.Fatalf("paths after truncation should be dropped silently: %q", blob)
	}
	if len(blob) > MaxTotalChars {
		t.Fatalf("blob length %d exceeds ceiling %d", len(blob), MaxTotalChars)
	}
}

func TestReadContextFiles_BadPathIsolated(t *testing.T) {
	dir := t.TempDir()
	good := writeTempFile(t, dir, "ok.txt", "still here")
	missing := filepath.Join(dir, "gone.txt")

	blob := ReadContextFiles([]string{missing, good})
	if !strings.Contains(blob, "still here") {
		t.Fatalf("one bad path must not abort the batch: %q", blob)
	}
}
