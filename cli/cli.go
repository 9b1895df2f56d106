// Package cli 负责进程启动：解析命令行参数、加载配置、
// 初始化日志，然后把控制权交给 server 包。
package cli

import (
	"flag"
	"fmt"
	"log"
	"os"

	"external-brain/config"
	"external-brain/server"
	"external-brain/server/llm"
)

// Run 是程序的实际入口。
func Run() {
	showVersion := flag.Bool("version", false, "打印版本号后退出")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s v%s\n", server.ServerName, server.Version)
		return
	}

	cfg := config.Get()
	llm.InitLogger()
	log.Printf("[cli] 配置: %s", cfg.Summary())

	srv := server.New(llm.NewRouterClient())
	if err := srv.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "external-brain: %v\n", err)
		os.Exit(1)
	}
}
