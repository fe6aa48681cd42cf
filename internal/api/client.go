package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Zacy-Sokach/PolyChat/internal/params"
	"github.com/Zacy-Sokach/PolyChat/internal/utils"
)

// DefaultBaseURL 默认的聊天服务地址，可通过配置或 POLYCHAT_BASE_URL 覆盖
const DefaultBaseURL = "http://localhost:3001"

const completionPath = "/api/chat"

// APIError 表示 API 请求错误，包含状态码和错误信息
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API请求失败 (状态码: %d): %s", e.StatusCode, e.Message)
}

// 全局共享的HTTP客户端，实现连接池化
var (
	sharedHTTPClient *http.Client
	httpClientOnce   sync.Once
)

// getSharedHTTPClient 返回共享的HTTP客户端实例。
// 不设置整体超时：请求跟随底层传输直到成功或失败，
// 在途请求由会话层的 pending 标记保证最多一个。
func getSharedHTTPClient() *http.Client {
	httpClientOnce.Do(func() {
		sharedHTTPClient = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
				DisableCompression:  false,
				MaxConnsPerHost:     50,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		}
	})
	return sharedHTTPClient
}

// Client 聊天服务客户端
type Client struct {
	baseURL string
	client  utils.Doer
}

// NewClient 创建新的聊天服务客户端
// baseURL: 服务地址，空串时使用 DefaultBaseURL
func NewClient(baseURL string) *Client {
	return NewClientWithDoer(baseURL, getSharedHTTPClient())
}

// NewClientWithDoer 创建使用指定 Doer 的客户端，测试用
func NewClientWithDoer(baseURL string, doer utils.Doer) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  doer,
	}
}

// Complete 发送一次同步补全请求。
// 成功时返回响应文本（message 优先于 content，可能为空串）；
// 非成功状态码转换为 *APIError，错误描述取自响应体的 error 字段，
// 响应体不可解析时使用通用描述。没有重试。
func (c *Client) Complete(input string, p params.GenerationParams) (string, error) {
	req := CompletionRequest{
		Input:  input,
		Params: &p,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("序列化请求失败: %w", err)
	}

	httpReq, err := http.NewRequest("POST", c.baseURL+completionPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("创建请求失败: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", c.readError(resp)
	}

	var completion CompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("解析响应失败: %w", err)
	}

	return completion.Text(), nil
}

// readError 从失败响应中提取错误描述
func (c *Client) readError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    "服务端未返回错误信息",
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiErr
	}

	var errResp errorResponse
	if err := json.Unmarshal(bodyBytes, &errResp); err == nil && errResp.Error != "" {
		apiErr.Message = errResp.Error
	}

	return apiErr
}
