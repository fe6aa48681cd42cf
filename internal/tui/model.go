package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zacy-Sokach/PolyChat/internal/params"
	"github.com/Zacy-Sokach/PolyChat/internal/session"
	"github.com/Zacy-Sokach/PolyChat/internal/update"
)

// Version 是当前的 PolyChat 版本，由 main 包设置
var Version = "dev"

func welcomeView(model string) string {
	return fmt.Sprintf("欢迎使用 PolyChat - 终端聊天客户端（模型: %s）\n输入 /help 查看可用命令\n\n", model)
}

var (
	userLabelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	assistantLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	timestampStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	violationStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	noticeStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	helpStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	pendingStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

type Model struct {
	viewport   viewport.Model
	textarea   textarea.Model
	controller *session.Controller
	parser     *CommandParser
	renderer   *MarkdownRenderer
	model      string
	notice     string
	ready      bool
}

// InitialModel 创建初始模型
// model: 配置中的模型标签，仅用于展示
func InitialModel(controller *session.Controller, model string) Model {
	ta := textarea.New()
	ta.Placeholder = "输入你的消息..."
	ta.Focus()
	ta.CharLimit = 0
	ta.SetWidth(80)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)

	vp := viewport.New(80, 20)
	vp.SetContent(welcomeView(model))

	return Model{
		viewport:   vp,
		textarea:   ta,
		controller: controller,
		parser:     NewCommandParser(),
		renderer:   GetMarkdownRenderer(),
		model:      model,
	}
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleEnter()
		}

	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-6)
			m.viewport.YPosition = 0
			m.viewport.SetContent(welcomeView(m.model))
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 6
		}
		m.textarea.SetWidth(msg.Width)

	case CompletionMsg:
		m.controller.Resolve(msg.Result)
		return m, m.updateViewport()

	case CommandResultMsg:
		m.notice = msg.Content
		return m, m.updateViewport()
	}

	m.textarea, cmd = m.textarea.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleEnter 处理回车：命令直接执行，普通输入走提交流程
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := m.textarea.Value()

	if cmd := m.parser.Parse(input); cmd != nil {
		m.textarea.Reset()
		return m, m.handleCommand(cmd)
	}

	// 请求在途时禁止提交，草稿原样保留
	if m.controller.Pending() {
		return m, nil
	}

	m.controller.SetDraft(input)
	call := m.controller.Submit()
	if call == nil {
		// 守卫拒绝：草稿为空或参数校验失败，违规信息显示在输入框上方
		return m, nil
	}

	m.notice = ""
	m.textarea.Reset()
	return m, tea.Batch(
		m.updateViewport(),
		func() tea.Msg {
			return CompletionMsg{Result: call()}
		},
	)
}

// handleCommand 处理命令
func (m *Model) handleCommand(cmd *Command) tea.Cmd {
	switch cmd.Type {
	case CommandTypeTemperature:
		return m.handleTemperatureCommand(cmd.Value)
	case CommandTypeTopP:
		return m.handleTopPCommand(cmd.Value)
	case CommandTypeTopK:
		return m.handleTopKCommand(cmd.Value)
	case CommandTypeEffort:
		return m.handleEffortCommand(cmd.Value)
	case CommandTypeShowParams:
		return commandResult(fmt.Sprintf("model: %s\n%s", m.model, m.controller.Params().Describe()))
	case CommandTypeClear:
		m.controller.Clear()
		return commandResult("对话已清空。")
	case CommandTypeCheckUpdate:
		return handleCheckUpdateCommand()
	case CommandTypeUpdate:
		return handleUpdateCommand()
	case CommandTypeHelp:
		return commandResult(helpText())
	default:
		return commandResult(fmt.Sprintf("未知命令: %s", cmd.Raw))
	}
}

func (m *Model) handleTemperatureCommand(value string) tea.Cmd {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return commandResult(fmt.Sprintf("无法解析温度值 %q", value))
	}
	m.controller.SetTemperature(v)
	return commandResult(fmt.Sprintf("temperature 已设置为 %g", v))
}

func (m *Model) handleTopPCommand(value string) tea.Cmd {
	if strings.EqualFold(value, "off") {
		m.controller.ClearTopP()
		return commandResult("top_p 已取消设置")
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return commandResult(fmt.Sprintf("无法解析 top_p 值 %q", value))
	}
	m.controller.SetTopP(v)
	return commandResult(fmt.Sprintf("top_p 已设置为 %g（top_k 已清除）", v))
}

func (m *Model) handleTopKCommand(value string) tea.Cmd {
	if strings.EqualFold(value, "off") {
		m.controller.ClearTopK()
		return commandResult("top_k 已取消设置")
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return commandResult(fmt.Sprintf("无法解析 top_k 值 %q", value))
	}
	m.controller.SetTopK(v)
	return commandResult(fmt.Sprintf("top_k 已设置为 %g（top_p 已清除）", v))
}

func (m *Model) handleEffortCommand(value string) tea.Cmd {
	m.controller.SetReasoningEffort(strings.ToLower(value))
	if !params.ValidEffort(strings.ToLower(value)) {
		return commandResult(fmt.Sprintf("推理力度 %q 不是合法值，提交前需要修正", value))
	}
	return commandResult(fmt.Sprintf("reasoning_effort 已设置为 %s", strings.ToLower(value)))
}

// handleCheckUpdateCommand 处理检查更新命令
func handleCheckUpdateCommand() tea.Cmd {
	return func() tea.Msg {
		checker := update.NewChecker()

		hasUpdate, latestVersion, err := checker.CheckForUpdate(Version)
		if err != nil {
			return CommandResultMsg{Content: fmt.Sprintf("检查更新失败: %v", err)}
		}

		if hasUpdate {
			return CommandResultMsg{
				Content: fmt.Sprintf("发现新版本 %s（当前 %s），输入 /update 开始更新", latestVersion, Version),
			}
		}
		return CommandResultMsg{Content: fmt.Sprintf("当前已是最新版本 (%s)", Version)}
	}
}

// handleUpdateCommand 处理更新命令
func handleUpdateCommand() tea.Cmd {
	return func() tea.Msg {
		updater := update.NewUpdater()

		if err := updater.Update(Version); err != nil {
			return CommandResultMsg{Content: fmt.Sprintf("更新失败: %v", err)}
		}
		return CommandResultMsg{Content: "更新成功! 请重启 PolyChat 以使用新版本。"}
	}
}

func commandResult(content string) tea.Cmd {
	return func() tea.Msg {
		return CommandResultMsg{Content: content}
	}
}

func (m Model) View() string {
	if !m.ready {
		return "初始化中..."
	}

	var sb strings.Builder
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")

	if block := m.violationsView(); block != "" {
		sb.WriteString(block)
		sb.WriteString("\n")
	}
	if m.notice != "" {
		sb.WriteString(noticeStyle.Render(m.notice))
		sb.WriteString("\n")
	}

	sb.WriteString(m.textarea.View())
	sb.WriteString("\n")
	sb.WriteString(m.helpView())

	return sb.String()
}

// violationsView 渲染当前参数的校验违规信息，合法时返回空串
func (m Model) violationsView() string {
	violations := m.controller.Violations()
	if len(violations) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, v := range violations {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(violationStyle.Render("⚠ " + v))
	}
	return sb.String()
}

func (m Model) helpView() string {
	if m.controller.Pending() {
		return pendingStyle.Render("AI 正在回复中...")
	}
	return helpStyle.Render("Enter: 发送消息 • /params 查看参数 • /clear 清空对话 • /help 帮助 • Ctrl+C: 退出")
}

func (m *Model) updateViewport() tea.Cmd {
	m.viewport.SetContent(m.formatMessages())
	m.viewport.GotoBottom()
	return nil
}

func (m Model) formatMessages() string {
	messages := m.controller.Messages()
	if len(messages) == 0 && !m.controller.Pending() {
		return welcomeView(m.model)
	}

	var sb strings.Builder
	sb.Grow(len(messages) * 200)

	for _, msg := range messages {
		timestamp := timestampStyle.Render(msg.CreatedAt.Format("[15:04:05]"))
		switch msg.Origin {
		case session.OriginUser:
			sb.WriteString(userLabelStyle.Render("你 "))
			sb.WriteString(timestamp)
			sb.WriteString("\n")
			sb.WriteString(msg.Content)
		case session.OriginAssistant:
			sb.WriteString(assistantLabelStyle.Render("AI "))
			sb.WriteString(timestamp)
			sb.WriteString("\n")
			sb.WriteString(m.renderer.Render(msg.Content))
		}
		sb.WriteString("\n\n")
	}

	if m.controller.Pending() {
		sb.WriteString(pendingStyle.Render("AI 正在思考中..."))
		sb.WriteString("\n")
	}

	return sb.String()
}

func helpText() string {
	return strings.Join([]string{
		"可用命令:",
		"  /temp <值>        设置 temperature（0 到 2）",
		"  /topp <值|off>    设置或取消 top_p（0 到 1，与 top_k 互斥）",
		"  /topk <值|off>    设置或取消 top_k（0 到 20 的整数，与 top_p 互斥）",
		"  /effort <级别>    设置推理力度（high/medium/low/minimal）",
		"  /params           查看当前参数",
		"  /clear            清空对话",
		"  /check-update     检查更新",
		"  /update           更新到最新版本",
	}, "\n")
}
