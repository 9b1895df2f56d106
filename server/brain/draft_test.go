package brain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"external-brain/server/llm"
)

func TestDraftEditor_MissingTarget(t *testing.T) {
	fc := &fakeClient{reply: "should not be used"}
	b := New(fc, nil)

	target := filepath.Join(t.TempDir(), "gone.py")
	got := b.DraftEditor(context.Background(), target, "do it", "kimi-k2", nil)

	want := fmt.Sprintf("Error: Target file %s does not exist.", target)
	if got != want {
		t.Fatalf("DraftEditor = %q, want %q", got, want)
	}
	// 短路：不调用模型，也不产生草稿文件
	if len(fc.prompts) != 0 {
		t.Errorf("missing target must not trigger a model call")
	}
	if _, err := os.Stat(target + ".draft"); !os.IsNotExist(err) {
		t.Errorf("draft file must not be created")
	}
}

func TestDraftEditor_DirectoryTarget(t *testing.T) {
	fc := &fakeClient{}
	b := New(fc, nil)

	dir := t.TempDir()
	got := b.DraftEditor(context.Background(), dir, "do it", "kimi-k2", nil)
	if !strings.HasPrefix(got, "Error: Target file ") {
		t.Fatalf("directory target should be rejected, got %q", got)
	}
	if len(fc.prompts) != 0 {
		t.Errorf("directory target must not trigger a model call")
	}
}

func TestDraftEditor_Success(t *testing.T) {
	dir := t.TempDir()
	target := writeTempFile(t, dir, "main.py", "print('old')\n")

	fc := &fakeClient{reply: "```python\nprint('new')\n```"}
	b := New(fc, nil)

	got := b.DraftEditor(context.Background(), target, "say new instead", "kimi-k2", nil)

	draftPath := target + ".draft"
	want := fmt.Sprintf("Draft saved to: %s\nReview it and apply if correct.", draftPath)
	if got != want {
		t.Fatalf("DraftEditor = %q, want %q", got, want)
	}

	// 草稿内容是剥掉围栏后的回复
	data, err := os.ReadFile(draftPath)
	if err != nil {
		t.Fatalf("read draft: %v", err)
	}
	if string(data) != "print('new')" {
		t.Errorf("draft content = %q, want fences stripped", string(data))
	}

	// 原文件保持不变
	orig, _ := os.ReadFile(target)
	if string(orig) != "print('old')\n" {
		t.Errorf("original file was modified: %q", string(orig))
	}

	// 调用形态：system+user，温度 0.1，user 消息带原文和指令
	if len(fc.prompts) != 1 {
		t.Fatalf("expect exactly one call, got %d", len(fc.prompts))
	}
	p := fc.prompts[0]
	if p.Model != "groq/moonshotai/kimi-k2-instruct-0905" {
		t.Errorf("model not resolved: %q", p.Model)
	}
	if p.Temperature != 0.1 {
		t.Errorf("temperature = %v, want 0.1", p.Temperature)
	}
	if len(p.Messages) != 2 || p.Messages[0].Role != llm.RoleSystem || p.Messages[1].Role != llm.RoleUser {
		t.Fatalf("unexpected message shape: %+v", p.Messages)
	}
	user := p.Messages[1].Content
	for _, frag := range []string{
		"--- ORIGINAL FILE: main.py ---",
		"print('old')",
		"--- END ORIGINAL FILE ---",
		"INSTRUCTION: say new instead",
	} {
		if !strings.Contains(user, frag) {
			t.Errorf("user message missing %q:\n%s", frag, user)
		}
	}
}

func TestDraftEditor_ContextFilesInSystemMessage(t *testing.T) {
	dir := t.TempDir()
	target := writeTempFile(t, dir, "a.go", "package a\n")
	ref := writeTempFile(t, dir, "b.go", "package b\n")

	fc := &fakeClient{reply: "package a"}
	b := New(fc, nil)

	b.DraftEditor(context.Background(), target, "tidy", "glm", []string{ref})

	sys := fc.prompts[0].Messages[0].Content
	if !strings.Contains(sys, "package b") {
		t.Errorf("reference file content missing from system message: %q", sys)
	}
	// 目标文件不在上下文块里，只在 user 消息里出现
	if strings.Contains(sys, "--- ORIGINAL FILE") {
		t.Errorf("system message should not embed the target file markers")
	}
}

func TestDraftEditor_ModelFailure(t *testing.T) {
	dir := t.TempDir()
	target := writeTempFile(t, dir, "c.txt", "content")

	fc := &fakeClient{err: errors.New("timeout")}
	b := New(fc, nil)

	got := b.DraftEditor(context.Background(), target, "do it", "kimi-k2", nil)
	want := "Error generating draft using groq/moonshotai/kimi-k2-instruct-0905: timeout"
	if got != want {
		t.Fatalf("DraftEditor = %q, want %q", got, want)
	}
	if _, err := os.Stat(target + ".draft"); !os.IsNotExist(err) {
		t.Errorf("failed call must not leave a draft file")
	}
}

func TestDraftEditor_NonUTF8Target(t *testing.T) {
	dir := t.TempDir()
	target := writeTempFile(t, dir, "bin.txt", "ok \xff\xfe bad")

	fc := &fakeClient{}
	b := New(fc, nil)

	got := b.DraftEditor(context.Background(), target, "do it", "kimi-k2", nil)
	if !strings.HasPrefix(got, "Error reading target file: ") || !strings.Contains(got, "not valid UTF-8") {
		t.Fatalf("expect UTF-8 error string, got %q", got)
	}
	if len(fc.prompts) != 0 {
		t.Errorf("invalid target must not trigger a model call")
	}
}
