package service

import "errors"

var (
	// ErrValidation 标记所有由调用方输入导致的校验失败。
	ErrValidation = errors.New("invalid post input")
	// ErrSlugConflict 标记 slug 与已有文章冲突，调用方可提示换一个 slug。
	ErrSlugConflict = errors.New("slug already exists")
	// ErrPostNotFound 表示目标文章不存在，属于正常结果而非异常。
	ErrPostNotFound = errors.New("post not found")
)
