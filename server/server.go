// Package server 把 brain 的三个操作暴露为一个 stdio MCP 服务器。
// 进程的启动、凭证注入和传输细节都由宿主负责，这里只注册工具并转发调用。
package server

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"external-brain/config"
	"external-brain/server/brain"
	"external-brain/server/llm"
)

const (
	// ServerName 是 MCP initialize 返回的服务器名称。
	ServerName = "External Brain"
	// Version 是服务器版本号。
	Version = "0.1.0"
)

// Server 包装 MCP 服务器和 brain 核心。
type Server struct {
	brain        *brain.Brain
	defaultModel string
	mcpServer    *mcpserver.MCPServer
}

// New 构造 Server：合并配置中的额外别名，注册三个工具。
func New(client llm.LLMClient) *Server {
	cfg := config.Get()

	var extraAliases map[string]string
	if cfg.FileConfig != nil {
		extraAliases = cfg.FileConfig.Aliases
	}

	s := &Server{
		brain:        brain.New(client, extraAliases),
		defaultModel: resolveDefaultModel(cfg),
	}

	s.mcpServer = mcpserver.NewMCPServer(
		ServerName,
		Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)
	s.registerTools()
	return s
}

// resolveDefaultModel 决定 model 参数缺省时使用的别名。
// 优先级：环境变量 > 配置文件 > 内置默认。
func resolveDefaultModel(cfg *config.Config) string {
	if cfg.DefaultModel != "" {
		return cfg.DefaultModel
	}
	if cfg.FileConfig != nil && strings.TrimSpace(cfg.FileConfig.DefaultModel) != "" {
		return strings.TrimSpace(cfg.FileConfig.DefaultModel)
	}
	return brain.DefaultModelAlias
}

// readOnlyTool 构造只读工具（不写文件、不开放外界副作用）。
func readOnlyTool(name string, opts ...mcp.ToolOption) mcp.Tool {
	opts = append(opts, mcp.WithToolAnnotation(mcp.ToolAnnotation{
		ReadOnlyHint:    mcp.ToBoolPtr(true),
		DestructiveHint: mcp.ToBoolPtr(false),
		OpenWorldHint:   mcp.ToBoolPtr(true),
	}))
	return mcp.NewTool(name, opts...)
}

// defaultTool 构造会写文件但不破坏已有内容的工具。
// draft_editor 只新建/覆盖草稿文件，从不改写原文件。
func defaultTool(name string, opts ...mcp.ToolOption) mcp.Tool {
	opts = append(opts, mcp.WithToolAnnotation(mcp.ToolAnnotation{
		ReadOnlyHint:    mcp.ToBoolPtr(false),
		DestructiveHint: mcp.ToBoolPtr(false),
		OpenWorldHint:   mcp.ToBoolPtr(true),
	}))
	return mcp.NewTool(name, opts...)
}

// registerTools 注册全部 MCP 工具。
func (s *Server) registerTools() {
	stringItems := map[string]any{"type": "string"}

	s.mcpServer.AddTool(
		readOnlyTool("ask_expert",
			mcp.WithDescription("Query an external 'Coding Expert' model with project context."),
			mcp.WithString("prompt",
				mcp.Description("The task or question."),
				mcp.Required(),
			),
			mcp.WithString("model",
				mcp.Description("Model alias (e.g. 'kimi-k2', 'hf-glm', 'minimax'). Defaults to 'kimi-k2' (Groq)."),
			),
			mcp.WithArray("context_files",
				mcp.Description("List of absolute file paths to include as context."),
				mcp.Items(stringItems),
			),
		), s.handleAskExpert)

	s.mcpServer.AddTool(
		readOnlyTool("compare_experts",
			mcp.WithDescription("Get and compare coding solutions from multiple experts."),
			mcp.WithString("prompt",
				mcp.Description("The task or question."),
				mcp.Required(),
			),
			mcp.WithArray("context_files",
				mcp.Description("List of absolute file paths to include as context."),
				mcp.Items(stringItems),
			),
			mcp.WithArray("experts",
				mcp.Description("Expert aliases to compare. Defaults to 'kimi-k2' and 'hf-glm'."),
				mcp.Items(stringItems),
			),
		), s.handleCompareExperts)

	s.mcpServer.AddTool(
		defaultTool("draft_editor",
			mcp.WithDescription("Ask an expert model to rewrite a file based on instructions. Saves the result to {file_path}.draft for review; the original file is never modified."),
			mcp.WithString("file_path",
				mcp.Description("The file to edit."),
				mcp.Required(),
			),
			mcp.WithString("instruction",
				mcp.Description("What changes to make."),
				mcp.Required(),
			),
			mcp.WithString("model",
				mcp.Description("Expert alias (default: kimi-k2)."),
			),
			mcp.WithArray("context_files",
				mcp.Description("Additional context files (optional)."),
				mcp.Items(stringItems),
			),
		), s.handleDraftEditor)
}

// ===== 工具 handler =====
//
// handler 只做参数提取和缺参校验；brain 层的一切失败都已经
// 格式化成普通文本结果，这里永远不返回 error。

func (s *Server) handleAskExpert(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	question, ok := args["prompt"].(string)
	if !ok || strings.TrimSpace(question) == "" {
		return mcp.NewToolResultError("prompt parameter is required"), nil
	}

	model, _ := args["model"].(string)
	if strings.TrimSpace(model) == "" {
		model = s.defaultModel
	}
	contextFiles := stringSliceArg(args["context_files"])

	return mcp.NewToolResultText(s.brain.AskExpert(ctx, question, model, contextFiles)), nil
}

func (s *Server) handleCompareExperts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	question, ok := args["prompt"].(string)
	if !ok || strings.TrimSpace(question) == "" {
		return mcp.NewToolResultError("prompt parameter is required"), nil
	}

	contextFiles := stringSliceArg(args["context_files"])
	experts := stringSliceArg(args["experts"])

	return mcp.NewToolResultText(s.brain.CompareExperts(ctx, question, contextFiles, experts)), nil
}

func (s *Server) handleDraftEditor(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	filePath, ok := args["file_path"].(string)
	if !ok || strings.TrimSpace(filePath) == "" {
		return mcp.NewToolResultError("file_path parameter is required"), nil
	}
	instruction, ok := args["instruction"].(string)
	if !ok || strings.TrimSpace(instruction) == "" {
		return mcp.NewToolResultError("instruction parameter is required"), nil
	}

	model, _ := args["model"].(string)
	if strings.TrimSpace(model) == "" {
		model = s.defaultModel
	}
	contextFiles := stringSliceArg(args["context_files"])

	return mcp.NewToolResultText(s.brain.DraftEditor(ctx, filePath, instruction, model, contextFiles)), nil
}

// stringSliceArg 把 JSON 数组参数转换为 []string，忽略非字符串元素。
func stringSliceArg(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Run 启动 stdio MCP 服务器，并处理优雅退出。
func (s *Server) Run() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	errChan := make(chan error, 1)
	go func() {
		// ServeStdio 在 stdin 关闭（EOF）或出错时返回
		errChan <- mcpserver.ServeStdio(s.mcpServer)
	}()

	log.Printf("[server] %s v%s 已启动", ServerName, Version)

	select {
	case <-sigChan:
		log.Printf("[server] 收到退出信号，停止服务")
		return nil
	case err := <-errChan:
		if err != nil {
			log.Printf("[server] 服务器错误: %v", err)
			return fmt.Errorf("server error: %w", err)
		}
		log.Printf("[server] 连接已关闭，正常退出")
		return nil
	}
}
