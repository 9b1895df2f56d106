package main

// 程序入口。
// 主要职责是把控制权交给 cli 包，由 cli.Run 完成配置加载、
// 日志初始化以及 MCP 服务器的启动。
import "external-brain/cli"

func main() {
	cli.Run()
}
