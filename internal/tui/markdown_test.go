package tui

import (
	"strings"
	"testing"
)

func TestRenderPlainText(t *testing.T) {
	r := NewMarkdownRenderer()

	out := r.Render("你好，世界")
	if !strings.Contains(out, "你好，世界") {
		t.Errorf("Plain text should pass through, got %q", out)
	}
}

func TestRenderHeadingAndParagraph(t *testing.T) {
	r := NewMarkdownRenderer()

	out := r.Render("# 标题\n\n正文内容")
	if !strings.Contains(out, "标题") {
		t.Errorf("Heading text missing from %q", out)
	}
	if !strings.Contains(out, "正文内容") {
		t.Errorf("Paragraph text missing from %q", out)
	}
}

func TestRenderCodeBlock(t *testing.T) {
	r := NewMarkdownRenderer()

	out := r.Render("```go\nfmt.Println(\"hi\")\n```")
	if !strings.Contains(out, `fmt.Println("hi")`) {
		t.Errorf("Code block content missing from %q", out)
	}
}

func TestRenderInlineSpans(t *testing.T) {
	r := NewMarkdownRenderer()

	out := r.Render("有 **加粗**、*斜体* 和 `代码`。")
	for _, want := range []string{"加粗", "斜体", "代码"} {
		if !strings.Contains(out, want) {
			t.Errorf("Inline span %q missing from %q", want, out)
		}
	}
}

func TestRenderList(t *testing.T) {
	r := NewMarkdownRenderer()

	out := r.Render("- 第一项\n- 第二项")
	if !strings.Contains(out, "第一项") || !strings.Contains(out, "第二项") {
		t.Errorf("List items missing from %q", out)
	}
	if !strings.Contains(out, "•") {
		t.Errorf("List bullets missing from %q", out)
	}
}

func TestRenderLinkShowsDestination(t *testing.T) {
	r := NewMarkdownRenderer()

	out := r.Render("[示例](https://example.com)")
	if !strings.Contains(out, "示例") {
		t.Errorf("Link text missing from %q", out)
	}
	if !strings.Contains(out, "https://example.com") {
		t.Errorf("Link destination missing from %q", out)
	}
}

func TestGetMarkdownRendererSingleton(t *testing.T) {
	if GetMarkdownRenderer() != GetMarkdownRenderer() {
		t.Error("GetMarkdownRenderer should return the same instance")
	}
}
