// Package platform 封装各社交平台的取数适配器。
// 每个适配器由显式的凭据配置构造；凭据缺失意味着功能未启用，而不是错误。
package platform

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"
)

// ExternalPost 是平台原生记录统一后的外部载荷形态，交由导入管道归一化。
type ExternalPost struct {
	Title           string     `json:"title"`
	Excerpt         string     `json:"excerpt"`
	Content         string     `json:"content"`
	Source          string     `json:"source"`
	Category        string     `json:"category,omitempty"`
	Tags            []string   `json:"tags,omitempty"`
	Slug            string     `json:"slug,omitempty"`
	HeroImage       string     `json:"heroImage,omitempty"`
	ExternalID      string     `json:"externalId,omitempty"`
	ExternalURL     string     `json:"externalUrl,omitempty"`
	ReadTimeMinutes float64    `json:"readTimeMinutes,omitempty"`
	Status          string     `json:"status,omitempty"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
}

// FetchResult 是一次平台取数的完整结果。
// Enabled 为 false 时 Posts 为空，MissingKeys 列出缺失的配置键。
type FetchResult struct {
	Source      string         `json:"source"`
	Enabled     bool           `json:"enabled"`
	MissingKeys []string       `json:"missingKeys"`
	Posts       []ExternalPost `json:"posts"`
	Message     string         `json:"message,omitempty"`
}

// Adapter is the capability interface the import orchestrator depends on.
// Fetch never returns an error for "not configured"; real network failures are
// returned as errors and contained to the platform they came from.
type Adapter interface {
	Source() string
	Fetch(ctx context.Context) (FetchResult, error)
}

// disabledResult 构造一个“未启用”结果。
func disabledResult(source string, missingKeys []string) FetchResult {
	return FetchResult{
		Source:      source,
		Enabled:     false,
		MissingKeys: missingKeys,
		Posts:       nil,
		Message:     "missing configuration, platform disabled",
	}
}

// excerptOf 从正文截取一段摘要，按词边界截断。
func excerptOf(content string) string {
	const maxWords = 32
	words := strings.Fields(content)
	if len(words) <= maxWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:maxWords], " ") + "…"
}

// newHTTPClient 构造带超时约束的 HTTP 客户端，供需要真实取数的适配器使用。
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout: 5 * time.Second,
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
