package tui

import (
	"github.com/Zacy-Sokach/PolyChat/internal/session"
)

// Message types for tea.Model

// CompletionMsg 一次补全调用结束（成功或失败）
type CompletionMsg struct {
	Result session.Result
}

// CommandResultMsg 命令执行结果，显示在输入框上方的提示区
type CommandResultMsg struct {
	Content string
}
