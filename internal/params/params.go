package params

import (
	"fmt"
	"math"
	"strings"
)

// 推理力度级别，与服务端约定的四个枚举值
const (
	EffortHigh    = "high"
	EffortMedium  = "medium"
	EffortLow     = "low"
	EffortMinimal = "minimal"
)

// 采样参数的取值范围
const (
	TemperatureMin = 0.0
	TemperatureMax = 2.0
	TopPMin        = 0.0
	TopPMax        = 1.0
	TopKMin        = 0.0
	TopKMax        = 20.0
)

// GenerationParams 描述一次补全请求的采样配置。
// TopP 和 TopK 互斥：nil 表示未设置，0 是合法的已设置值，两者不能混淆。
// TopK 用 float64 承载，这样 UI 输入的非整数值也能进入校验流程并得到
// 明确的违规提示，而不是在解析阶段被静默截断。
type GenerationParams struct {
	Temperature     float64  `json:"temperature"`
	TopP            *float64 `json:"top_p"`
	TopK            *float64 `json:"top_k"`
	ReasoningEffort string   `json:"reasoning_effort"`
}

// Default 返回默认采样配置
func Default() GenerationParams {
	return GenerationParams{
		Temperature:     0.7,
		ReasoningEffort: EffortMedium,
	}
}

// ValidEffort 检查推理力度是否为四个合法枚举值之一
func ValidEffort(effort string) bool {
	switch effort {
	case EffortHigh, EffortMedium, EffortLow, EffortMinimal:
		return true
	}
	return false
}

// Validate 校验采样参数，返回所有违规信息。
// 每条规则独立检查，不短路，用户一次就能看到全部问题；
// 返回顺序与规则顺序一致。空切片表示参数合法。
func (p GenerationParams) Validate() []string {
	var violations []string

	if !isFinite(p.Temperature) || p.Temperature < TemperatureMin || p.Temperature > TemperatureMax {
		violations = append(violations,
			fmt.Sprintf("temperature 必须是 %g 到 %g 之间的数值", TemperatureMin, TemperatureMax))
	}

	if p.TopP != nil {
		if v := *p.TopP; !isFinite(v) || v < TopPMin || v > TopPMax {
			violations = append(violations,
				fmt.Sprintf("top_p 必须是 %g 到 %g 之间的数值", TopPMin, TopPMax))
		}
	}

	if p.TopK != nil {
		v := *p.TopK
		if !isFinite(v) || v != math.Trunc(v) {
			violations = append(violations, "top_k 必须是整数")
		} else if v < TopKMin || v > TopKMax {
			violations = append(violations,
				fmt.Sprintf("top_k 必须在 %g 到 %g 之间", TopKMin, TopKMax))
		}
	}

	// 互斥规则独立于各自的取值范围检查
	if p.TopP != nil && p.TopK != nil {
		violations = append(violations, "top_p 和 top_k 不能同时设置")
	}

	if !ValidEffort(p.ReasoningEffort) {
		violations = append(violations,
			fmt.Sprintf("reasoning_effort 必须是 %s 之一", strings.Join(
				[]string{EffortHigh, EffortMedium, EffortLow, EffortMinimal}, "/")))
	}

	return violations
}

// Describe 返回当前参数的可读描述，用于 /params 命令
func (p GenerationParams) Describe() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "temperature: %g\n", p.Temperature)
	if p.TopP != nil {
		fmt.Fprintf(&sb, "top_p: %g\n", *p.TopP)
	} else {
		sb.WriteString("top_p: 未设置\n")
	}
	if p.TopK != nil {
		fmt.Fprintf(&sb, "top_k: %g\n", *p.TopK)
	} else {
		sb.WriteString("top_k: 未设置\n")
	}
	fmt.Fprintf(&sb, "reasoning_effort: %s", p.ReasoningEffort)
	return sb.String()
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
