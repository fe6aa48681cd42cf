package utils

import "net/http"

// Doer 接口，api.Client 通过它发送请求，测试时可以注入假实现
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}
