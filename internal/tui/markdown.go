package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/russross/blackfriday/v2"
)

// 全局Markdown渲染器单例
var (
	globalMarkdownRenderer *MarkdownRenderer
	rendererOnce           sync.Once
)

// GetMarkdownRenderer 获取Markdown渲染器单例
func GetMarkdownRenderer() *MarkdownRenderer {
	rendererOnce.Do(func() {
		globalMarkdownRenderer = NewMarkdownRenderer()
	})
	return globalMarkdownRenderer
}

// MarkdownRenderer 把助手回复中的 Markdown 渲染为带终端样式的纯文本
type MarkdownRenderer struct {
	headingStyle lipgloss.Style
	codeStyle    lipgloss.Style
	strongStyle  lipgloss.Style
	emphStyle    lipgloss.Style
	linkStyle    lipgloss.Style
	quoteStyle   lipgloss.Style
}

// NewMarkdownRenderer 创建新的 Markdown 渲染器
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{
		headingStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		codeStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")),
		strongStyle:  lipgloss.NewStyle().Bold(true),
		emphStyle:    lipgloss.NewStyle().Italic(true),
		linkStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true),
		quoteStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Render 渲染 Markdown 文本。遍历 blackfriday 的 AST，
// 行内样式通过样式栈下发到文本节点。
func (r *MarkdownRenderer) Render(src string) string {
	md := blackfriday.New(blackfriday.WithExtensions(blackfriday.CommonExtensions))
	root := md.Parse([]byte(src))

	var sb strings.Builder
	sb.Grow(len(src) + len(src)/4)

	var styleStack []lipgloss.Style
	push := func(s lipgloss.Style) { styleStack = append(styleStack, s) }
	pop := func() {
		if len(styleStack) > 0 {
			styleStack = styleStack[:len(styleStack)-1]
		}
	}

	root.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		switch node.Type {
		case blackfriday.Text:
			text := string(node.Literal)
			if len(styleStack) > 0 {
				text = styleStack[len(styleStack)-1].Render(text)
			}
			sb.WriteString(text)

		case blackfriday.Heading:
			if entering {
				push(r.headingStyle)
			} else {
				pop()
				sb.WriteString("\n\n")
			}

		case blackfriday.Paragraph:
			if !entering {
				// 列表项内的段落只换一行
				if node.Parent != nil && node.Parent.Type == blackfriday.Item {
					sb.WriteString("\n")
				} else {
					sb.WriteString("\n\n")
				}
			}

		case blackfriday.Strong:
			if entering {
				push(r.strongStyle)
			} else {
				pop()
			}

		case blackfriday.Emph:
			if entering {
				push(r.emphStyle)
			} else {
				pop()
			}

		case blackfriday.Del:
			if entering {
				push(r.quoteStyle)
			} else {
				pop()
			}

		case blackfriday.Link:
			if entering {
				push(r.linkStyle)
			} else {
				pop()
				if dest := string(node.LinkData.Destination); dest != "" {
					sb.WriteString(r.quoteStyle.Render(" (" + dest + ")"))
				}
			}

		case blackfriday.Code:
			sb.WriteString(r.codeStyle.Render(string(node.Literal)))

		case blackfriday.CodeBlock:
			code := strings.TrimRight(string(node.Literal), "\n")
			for _, line := range strings.Split(code, "\n") {
				sb.WriteString("  ")
				sb.WriteString(r.codeStyle.Render(line))
				sb.WriteString("\n")
			}
			sb.WriteString("\n")

		case blackfriday.BlockQuote:
			if entering {
				push(r.quoteStyle)
				sb.WriteString("▌ ")
			} else {
				pop()
			}

		case blackfriday.Item:
			if entering {
				sb.WriteString("  • ")
			}

		case blackfriday.List:
			if !entering {
				sb.WriteString("\n")
			}

		case blackfriday.HorizontalRule:
			sb.WriteString("────────────────\n\n")

		case blackfriday.Softbreak, blackfriday.Hardbreak:
			sb.WriteString("\n")
		}

		return blackfriday.GoToNext
	})

	return strings.TrimRight(sb.String(), "\n")
}
