package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// NewServiceClient 创建调用内部服务的 Resty 客户端
// 不开启重试：调用方自行决定失败策略
func NewServiceClient(baseURL string, timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "Sleepwell-Store/1.0")
}
