package api

import (
	"github.com/Zacy-Sokach/PolyChat/internal/params"
)

// CompletionRequest 补全请求体。Params 始终携带全部四个字段，
// 未设置的 top_p/top_k 序列化为 null。
type CompletionRequest struct {
	Input  string                   `json:"input"`
	Params *params.GenerationParams `json:"params,omitempty"`
}

// CompletionResponse 补全响应体。message 优先于 content。
type CompletionResponse struct {
	Message string `json:"message"`
	Content string `json:"content"`
}

// Text 返回响应中可用的文本字段，message 优先；两者都缺失时返回空串，
// 由调用方决定占位行为。
func (r CompletionResponse) Text() string {
	if r.Message != "" {
		return r.Message
	}
	return r.Content
}

// errorResponse 失败响应中可选的错误描述
type errorResponse struct {
	Error string `json:"error"`
}
