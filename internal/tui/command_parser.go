package tui

import (
	"regexp"
	"strings"
)

// CommandType 命令类型
type CommandType int

const (
	CommandTypeUnknown CommandType = iota
	CommandTypeTemperature
	CommandTypeTopP
	CommandTypeTopK
	CommandTypeEffort
	CommandTypeShowParams
	CommandTypeClear
	CommandTypeCheckUpdate
	CommandTypeUpdate
	CommandTypeHelp
)

// Command 解析后的命令
type Command struct {
	Type  CommandType
	Raw   string
	Value string
}

// CommandParser 命令解析器
type CommandParser struct {
	temperaturePatterns []*regexp.Regexp
	topPPatterns        []*regexp.Regexp
	topKPatterns        []*regexp.Regexp
	effortPatterns      []*regexp.Regexp
	showParamsPatterns  []*regexp.Regexp
	clearPatterns       []*regexp.Regexp
	checkUpdatePatterns []*regexp.Regexp
	updatePatterns      []*regexp.Regexp
	helpPatterns        []*regexp.Regexp
}

// NewCommandParser 创建新的命令解析器
func NewCommandParser() *CommandParser {
	parser := &CommandParser{}
	parser.initializePatterns()
	return parser
}

// initializePatterns 初始化正则表达式模式
func (p *CommandParser) initializePatterns() {
	// 温度设置模式
	p.temperaturePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^/temp(?:erature)?\s+(\S+)$`),
		regexp.MustCompile(`^温度\s+(\S+)$`),
	}

	// top_p 设置模式（值为 off 时取消设置）
	p.topPPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^/top_?p\s+(\S+)$`),
	}

	// top_k 设置模式（值为 off 时取消设置）
	p.topKPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^/top_?k\s+(\S+)$`),
	}

	// 推理力度设置模式
	p.effortPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^/effort\s+(\S+)$`),
		regexp.MustCompile(`^推理力度\s+(\S+)$`),
	}

	// 查看参数模式
	p.showParamsPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^/params$`),
		regexp.MustCompile(`^参数$`),
	}

	// 清空对话模式
	p.clearPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^/clear$`),
		regexp.MustCompile(`^清空$`),
		regexp.MustCompile(`^清空对话$`),
	}

	// 检查更新模式
	p.checkUpdatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^/check-?update$`),
		regexp.MustCompile(`(?i)^check\s+update$`),
	}

	// 更新模式
	p.updatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^/update$`),
	}

	// 帮助模式
	p.helpPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^/help$`),
		regexp.MustCompile(`^帮助$`),
	}
}

// Parse 解析命令字符串，非命令输入返回 nil
func (p *CommandParser) Parse(input string) *Command {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	valued := []struct {
		patterns []*regexp.Regexp
		cmdType  CommandType
	}{
		{p.temperaturePatterns, CommandTypeTemperature},
		{p.topPPatterns, CommandTypeTopP},
		{p.topKPatterns, CommandTypeTopK},
		{p.effortPatterns, CommandTypeEffort},
	}
	for _, group := range valued {
		for _, pattern := range group.patterns {
			if matches := pattern.FindStringSubmatch(input); matches != nil {
				return &Command{
					Type:  group.cmdType,
					Raw:   input,
					Value: strings.TrimSpace(matches[1]),
				}
			}
		}
	}

	bare := []struct {
		patterns []*regexp.Regexp
		cmdType  CommandType
	}{
		{p.showParamsPatterns, CommandTypeShowParams},
		{p.clearPatterns, CommandTypeClear},
		{p.checkUpdatePatterns, CommandTypeCheckUpdate},
		{p.updatePatterns, CommandTypeUpdate},
		{p.helpPatterns, CommandTypeHelp},
	}
	for _, group := range bare {
		for _, pattern := range group.patterns {
			if pattern.MatchString(input) {
				return &Command{
					Type: group.cmdType,
					Raw:  input,
				}
			}
		}
	}

	return nil
}

// IsCommand 检查字符串是否为命令
func (p *CommandParser) IsCommand(input string) bool {
	return p.Parse(input) != nil
}
