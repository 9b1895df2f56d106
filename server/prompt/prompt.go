package prompt

import (
	"bytes"
	_ "embed"
	"log"
	"strings"
	"text/template"
)

//go:embed ask_system.md
var askSystemRaw string

//go:embed draft_system.md
var draftSystemRaw string

//go:embed draft_user.md
var draftUserRaw string

// 各模板在包初始化时解析完毕。模板文本是固定的，数据只是纯字符串字段，
// 因此 Execute 实际不会失败；万一失败会记录日志并返回已生成的部分。
var (
	askSystemTmpl   = mustParse("ask_system", askSystemRaw)
	draftSystemTmpl = mustParse("draft_system", draftSystemRaw)
	draftUserTmpl   = mustParse("draft_user", draftUserRaw)
)

type contextData struct {
	Context string
}

type draftUserData struct {
	Name        string
	Content     string
	Instruction string
}

// AskSystem 渲染问答调用的 system 消息：固定前言加上下文 blob。
func AskSystem(contextBlob string) string {
	return render(askSystemTmpl, contextData{Context: contextBlob})
}

// DraftSystem 渲染文件改写调用的 system 消息。
// 前言要求模型只输出新文件内容，不输出围栏和闲聊。
func DraftSystem(contextBlob string) string {
	return render(draftSystemTmpl, contextData{Context: contextBlob})
}

// DraftUser 渲染文件改写调用的 user 消息，
// 原文件内容嵌在 ORIGINAL FILE 标记之间。
func DraftUser(fileName, content, instruction string) string {
	return render(draftUserTmpl, draftUserData{
		Name:        fileName,
		Content:     content,
		Instruction: instruction,
	})
}

func mustParse(name, raw string) *template.Template {
	// 模板文件以换行结尾，渲染结果不应带这个换行。
	return template.Must(template.New(name).Parse(strings.TrimSuffix(raw, "\n")))
}

func render(tmpl *template.Template, data any) string {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		log.Printf("[prompt] 渲染模板 %s 失败: %v", tmpl.Name(), err)
	}
	return buf.String()
}
