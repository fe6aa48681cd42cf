package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/Zacy-Sokach/PolyChat/internal/params"
	"github.com/google/uuid"
)

// Origin 消息来源
type Origin string

const (
	OriginUser      Origin = "user"
	OriginAssistant Origin = "assistant"
)

// ChatMessage 会话中的一条消息，创建后不再修改
type ChatMessage struct {
	ID        string
	Content   string
	Origin    Origin
	CreatedAt time.Time
}

// Completer 外部补全协作者，一次调用对应一次同步的补全请求
type Completer interface {
	Complete(input string, p params.GenerationParams) (string, error)
}

// Result 一次补全调用的结果
type Result struct {
	Text string
	Err  error
}

// 响应没有可用文本字段时的占位回复
const fallbackReply = "（没有收到回复内容）"

// 错误没有可读描述时的兜底说明
const genericFailure = "未知错误"

// Controller 管理一个会话的全部状态：消息历史、草稿、采样参数
// 和在途请求标记。pending 标记本身就是唯一的并发保护——同一时间
// 最多只有一个在途请求。
type Controller struct {
	completer Completer
	messages  []ChatMessage
	draft     string
	genParams params.GenerationParams
	pending   bool
}

// NewController 创建空会话
func NewController(completer Completer, defaults params.GenerationParams) *Controller {
	return &Controller{
		completer: completer,
		genParams: defaults,
	}
}

// Submit 尝试提交当前草稿。通过守卫后：追加用户消息、清空草稿、
// 进入在途状态，并返回恰好执行一次网络调用的回调，调用完成后必须
// 把 Result 交给 Resolve。守卫不通过（草稿为空、已有在途请求或参数
// 校验失败）时返回 nil 且不改变任何状态。
func (c *Controller) Submit() func() Result {
	input := strings.TrimSpace(c.draft)
	if input == "" || c.pending {
		return nil
	}
	if len(c.genParams.Validate()) > 0 {
		return nil
	}

	c.append(OriginUser, input)
	c.draft = ""
	c.pending = true

	// 拷贝参数快照，回调执行期间编辑参数不影响本次请求
	p := c.genParams
	return func() Result {
		text, err := c.completer.Complete(input, p)
		return Result{Text: text, Err: err}
	}
}

// Resolve 处理补全结果，追加助手消息并回到空闲状态。
// 失败被本地吸收为一条可见的错误消息，不会向上抛出。
func (c *Controller) Resolve(r Result) {
	c.pending = false

	if r.Err != nil {
		desc := r.Err.Error()
		if desc == "" {
			desc = genericFailure
		}
		c.append(OriginAssistant, fmt.Sprintf("❌ 请求失败: %s", desc))
		return
	}

	text := r.Text
	if text == "" {
		text = fallbackReply
	}
	c.append(OriginAssistant, text)
}

// Clear 清空消息历史。草稿、参数和在途状态不受影响，任何状态下调用都安全。
func (c *Controller) Clear() {
	c.messages = nil
}

// Messages 返回消息历史
func (c *Controller) Messages() []ChatMessage {
	return c.messages
}

// Pending 是否有在途请求
func (c *Controller) Pending() bool {
	return c.pending
}

// Draft 当前草稿
func (c *Controller) Draft() string {
	return c.draft
}

// SetDraft 更新草稿
func (c *Controller) SetDraft(text string) {
	c.draft = text
}

// Params 当前采样参数
func (c *Controller) Params() params.GenerationParams {
	return c.genParams
}

// Violations 当前参数的校验违规信息，供视图展示
func (c *Controller) Violations() []string {
	return c.genParams.Validate()
}

// SetTemperature 设置温度
func (c *Controller) SetTemperature(v float64) {
	c.genParams.Temperature = v
}

// SetTopP 设置 top_p 并清除 top_k（互斥，后写覆盖）
func (c *Controller) SetTopP(v float64) {
	c.genParams.TopP = &v
	c.genParams.TopK = nil
}

// SetTopK 设置 top_k 并清除 top_p（互斥，后写覆盖）
func (c *Controller) SetTopK(v float64) {
	c.genParams.TopK = &v
	c.genParams.TopP = nil
}

// ClearTopP 取消 top_p
func (c *Controller) ClearTopP() {
	c.genParams.TopP = nil
}

// ClearTopK 取消 top_k
func (c *Controller) ClearTopK() {
	c.genParams.TopK = nil
}

// SetReasoningEffort 设置推理力度
func (c *Controller) SetReasoningEffort(effort string) {
	c.genParams.ReasoningEffort = effort
}

func (c *Controller) append(origin Origin, content string) {
	c.messages = append(c.messages, ChatMessage{
		ID:        uuid.NewString(),
		Content:   content,
		Origin:    origin,
		CreatedAt: time.Now(),
	})
}
