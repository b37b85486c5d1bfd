package service

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

// NormalizeSlug 将任意标题或 slug 文本转换为 URL 安全的标识符。
// 结果为小写、去除非法字符、空白折叠为单个连字符。归一化后为空视为校验失败。
func NormalizeSlug(raw string) (string, error) {
	normalized := slug.Make(strings.TrimSpace(raw))
	if normalized == "" {
		return "", fmt.Errorf("%w: slug cannot be empty after normalization", ErrValidation)
	}
	return normalized, nil
}
