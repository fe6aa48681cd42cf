package main

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/Zacy-Sokach/PolyChat/internal/api"
	"github.com/Zacy-Sokach/PolyChat/internal/config"
	"github.com/Zacy-Sokach/PolyChat/internal/session"
	"github.com/Zacy-Sokach/PolyChat/internal/tui"
)

var (
	Version = "dev"
)

func main() {
	// 处理命令行参数
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "-v", "--version":
			fmt.Printf("PolyChat %s\n", Version)
			os.Exit(0)
		case "-h", "--help":
			fmt.Println("PolyChat - 终端聊天客户端")
			fmt.Println()
			fmt.Println("Usage:")
			fmt.Println("  polychat                 Start the interactive TUI")
			fmt.Println("  polychat -v, --version   Show version information")
			fmt.Println("  polychat -h, --help      Show help information")
			fmt.Println()
			fmt.Println("Environment:")
			fmt.Println("  POLYCHAT_BASE_URL        Override the chat service base URL")
			fmt.Println()
			fmt.Println("Commands in TUI:")
			fmt.Println("  /temp /topp /topk /effort  Adjust sampling parameters")
			fmt.Println("  /params                    Show current parameters")
			fmt.Println("  /clear                     Clear the conversation")
			fmt.Println("  /check-update, /update     Check for / install updates")
			os.Exit(0)
		}
	}

	// 添加panic恢复
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("程序发生panic: %v\n", r)
			fmt.Println("堆栈跟踪:")
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	// .env 可选，缺失时忽略
	godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 首次运行：确认服务地址并保存配置文件
	configExists, err := config.Exists()
	if err != nil {
		fmt.Printf("检查配置失败: %v\n", err)
		os.Exit(1)
	}
	if !configExists && isTerminal() {
		fmt.Println(lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Render("欢迎使用 PolyChat!"))
		fmt.Println("首次使用需要确认聊天服务地址")
		fmt.Printf("请输入服务地址（直接回车使用 %s）: ", cfg.BaseURL)

		var baseURL string
		fmt.Scanln(&baseURL)

		if baseURL != "" {
			cfg.BaseURL = baseURL
		}
		if err := config.SaveConfig(cfg); err != nil {
			fmt.Printf("保存配置失败: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("配置已保存!"))
	}

	if !isTerminal() {
		// 非交互式环境，使用简单模式
		fmt.Println("PolyChat 需要在交互式终端中运行")
		fmt.Printf("当前服务地址: %s\n", cfg.BaseURL)
		os.Exit(1)
	}

	client := api.NewClient(cfg.BaseURL)
	controller := session.NewController(client, cfg.GenerationParams())

	tui.Version = Version
	model := tui.InitialModel(controller, cfg.Model)
	p := tea.NewProgram(&model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("程序运行错误: %v\n", err)
		os.Exit(1)
	}
}

func isTerminal() bool {
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
